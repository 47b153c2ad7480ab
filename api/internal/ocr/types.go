package ocr

import "hyrox-calc/api/internal/workout"

type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Extraction is the normalized result of one scoreboard photo.
// Stations only holds keys the model reported; Running is always full length.
type Extraction struct {
	Running    [workout.RunningSegments]workout.TimeValue `json:"running"`
	Stations   map[workout.Exercise]workout.TimeValue     `json:"stations"`
	Roxzone    workout.TimeValue                          `json:"roxzone"`
	RawText    string                                     `json:"rawText"`
	Confidence Confidence                                 `json:"confidence"`
}

// ApplyTo overwrites the sheet with the extracted times.
func (x Extraction) ApplyTo(s *workout.Sheet) {
	s.Apply(x.Running[:], x.Stations, x.Roxzone)
}

func (x Extraction) hasRunning() bool {
	for _, t := range x.Running {
		if !t.IsZero() {
			return true
		}
	}
	return false
}
