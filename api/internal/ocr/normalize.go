package ocr

import (
	"encoding/json"
	"fmt"
	"strings"

	"hyrox-calc/api/internal/workout"
)

// Normalize turns free model text into an Extraction. Only a missing or
// unparsable JSON object is an error; bad or absent times become 00:00.
func Normalize(raw string) (Extraction, error) {
	span, ok := locateJSON(raw)
	if !ok {
		return Extraction{}, ErrNoJSONFound
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal([]byte(span), &doc); err != nil {
		return Extraction{}, fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}

	x := Extraction{
		Stations: make(map[workout.Exercise]workout.TimeValue),
		RawText:  raw,
	}

	// running: positional, padded and truncated by the fixed-size array
	var running []json.RawMessage
	_ = json.Unmarshal(doc["running"], &running)
	for i := 0; i < len(running) && i < len(x.Running); i++ {
		x.Running[i] = lenientTime(running[i])
	}

	var stations map[string]json.RawMessage
	_ = json.Unmarshal(doc["stations"], &stations)
	for key, v := range stations {
		ex, err := workout.ParseExercise(key)
		if err != nil || !ex.IsStation() {
			continue
		}
		var s string
		if json.Unmarshal(v, &s) != nil {
			continue
		}
		x.Stations[ex] = workout.ParseTimeOrZero(s)
	}

	x.Roxzone = lenientTime(doc["roxzone"])

	applyConfidencePolicy(&x)
	return x, nil
}

// locateJSON returns the span from the first '{' to the last '}'. An opening
// brace with no closing one after it yields the unterminated tail, which then
// fails to decode as malformed.
func locateJSON(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}
	end := strings.LastIndexByte(s, '}')
	if end < start {
		return s[start:], true
	}
	return s[start : end+1], true
}

// lenientTime reads a JSON string time; anything else is 00:00.
func lenientTime(v json.RawMessage) workout.TimeValue {
	var s string
	if len(v) == 0 || json.Unmarshal(v, &s) != nil {
		return workout.TimeValue{}
	}
	return workout.ParseTimeOrZero(s)
}
