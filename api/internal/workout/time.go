package workout

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidTimeFormat is returned for text that is not MM:SS or has seconds >= 60.
var ErrInvalidTimeFormat = errors.New("invalid time format, want MM:SS")

var reTime = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)

// TimeValue is a split minutes/seconds duration as typed on a scoreboard.
type TimeValue struct {
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`
}

// ParseTime accepts "M:SS" or "MM:SS" (one outer trim, nothing else).
func ParseTime(s string) (TimeValue, error) {
	m := reTime.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return TimeValue{}, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	minutes, _ := strconv.Atoi(m[1])
	seconds, _ := strconv.Atoi(m[2])

	t := TimeValue{Minutes: minutes, Seconds: seconds}
	if !t.Valid() {
		return TimeValue{}, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	return t, nil
}

// ParseTimeOrZero is the lenient form used for model output: anything
// ParseTime rejects becomes 00:00.
func ParseTimeOrZero(s string) TimeValue {
	t, err := ParseTime(s)
	if err != nil {
		return TimeValue{}
	}
	return t
}

// FromSeconds splits n (n >= 0) into minutes and seconds.
func FromSeconds(n int) TimeValue {
	return TimeValue{Minutes: n / 60, Seconds: n % 60}
}

// FormatSeconds renders a seconds total as MM:SS.
func FormatSeconds(n int) string {
	return FromSeconds(n).String()
}

// Valid reports whether both fields are non-negative and seconds < 60.
func (t TimeValue) Valid() bool {
	return t.Minutes >= 0 && t.Seconds >= 0 && t.Seconds < 60
}

func (t TimeValue) IsZero() bool { return t.Minutes == 0 && t.Seconds == 0 }

// TotalSeconds is minutes*60 + seconds.
func (t TimeValue) TotalSeconds() int {
	return t.Minutes*60 + t.Seconds
}

// String zero-pads both fields to two digits; minutes >= 100 print wider.
func (t TimeValue) String() string {
	return fmt.Sprintf("%02d:%02d", t.Minutes, t.Seconds)
}
