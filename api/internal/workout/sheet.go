package workout

import (
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/google/uuid"
)

var ErrEntryNotFound = errors.New("entry not found")

// Sheet is the calculator's editable state: running entries, one entry per
// station and the roxzone time. Safe for concurrent use.
type Sheet struct {
	mu      sync.Mutex
	entries []Entry
	roxzone TimeValue
}

// NewSheet returns a blank sheet with eight runs and every station.
func NewSheet() *Sheet {
	s := &Sheet{}
	s.reset()
	return s
}

func (s *Sheet) reset() {
	s.entries = make([]Entry, 0, RunningSegments+len(Stations))
	for i := 1; i <= RunningSegments; i++ {
		s.entries = append(s.entries, Entry{ID: "running-" + strconv.Itoa(i), Exercise: Running})
	}
	for _, st := range Stations {
		s.entries = append(s.entries, Entry{ID: "station-" + string(st), Exercise: st})
	}
	s.roxzone = TimeValue{}
}

// Reset clears every time back to 00:00 and restores the default entries.
func (s *Sheet) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
}

// Entries returns a copy of the current entries.
func (s *Sheet) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Entry(nil), s.entries...)
}

func (s *Sheet) Roxzone() TimeValue {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.roxzone
}

// Summary recomputes the totals from the current state.
func (s *Sheet) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Compute(s.entries, s.roxzone.TotalSeconds())
}

// SetTime parses text and stores it on entry id. On a parse error the entry
// keeps its previous value.
func (s *Sheet) SetTime(id, text string) error {
	t, err := ParseTime(text)
	if err != nil {
		return err
	}
	return s.Set(id, t)
}

func (s *Sheet) Set(id string, t TimeValue) error {
	if !t.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidTimeFormat, t)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrEntryNotFound, id)
	}
	s.entries[i].Time = t
	return nil
}

func (s *Sheet) SetRoxzone(text string) error {
	t, err := ParseTime(text)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.roxzone = t
	s.mu.Unlock()
	return nil
}

// AddRunning appends an extra running entry with a fresh id.
func (s *Sheet) AddRunning() Entry {
	e := Entry{ID: "running-" + uuid.New().String(), Exercise: Running}
	s.mu.Lock()
	defer s.mu.Unlock()

	// keep runs grouped ahead of the stations
	last := -1
	for i, x := range s.entries {
		if x.Exercise == Running {
			last = i
		}
	}
	s.entries = append(s.entries, Entry{})
	copy(s.entries[last+2:], s.entries[last+1:])
	s.entries[last+1] = e
	return e
}

func (s *Sheet) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrEntryNotFound, id)
	}
	s.entries = append(s.entries[:i], s.entries[i+1:]...)
	return nil
}

// Apply overwrites the sheet in one step: runs by position, stations by
// key, roxzone unconditionally. Anything missing becomes 00:00.
func (s *Sheet) Apply(running []TimeValue, stations map[Exercise]TimeValue, roxzone TimeValue) {
	s.mu.Lock()
	defer s.mu.Unlock()

	run := 0
	for i := range s.entries {
		e := &s.entries[i]
		switch {
		case e.Exercise == Running:
			e.Time = TimeValue{}
			if run < len(running) {
				e.Time = running[run]
			}
			run++
		case e.Exercise.IsStation():
			e.Time = stations[e.Exercise]
		}
	}
	s.roxzone = roxzone
}

func (s *Sheet) indexOf(id string) int {
	for i, e := range s.entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}
