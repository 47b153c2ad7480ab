package handle

import (
	"encoding/json"
	"fmt"
	"net/http"

	"hyrox-calc/api/internal/workout"
)

// SummaryRequest mirrors the calculator form: every time is MM:SS text.
type SummaryRequest struct {
	Running  []string          `json:"running"`
	Stations map[string]string `json:"stations"`
	Roxzone  string            `json:"roxzone"`
}

type SummaryResponse struct {
	workout.Summary
	Formatted FormattedSummary      `json:"formatted"`
	Lines     []workout.SummaryLine `json:"lines"`
}

type FormattedSummary struct {
	RunningTotal string `json:"runningTotal"`
	StationTotal string `json:"stationTotal"`
	RoxzoneTime  string `json:"roxzoneTime"`
	OverallTotal string `json:"overallTotal"`
}

// Summary computes totals for a filled-in form. Any malformed time is a 400
// naming the offending field.
func (h *Handle) Summary(w http.ResponseWriter, r *http.Request) {
	var req SummaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json: "+err.Error())
		return
	}

	entries, roxzone, err := req.entries()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s := workout.Compute(entries, roxzone.TotalSeconds())
	writeJSON(w, http.StatusOK, SummaryResponse{
		Summary: s,
		Formatted: FormattedSummary{
			RunningTotal: workout.FormatSeconds(s.RunningTotal),
			StationTotal: workout.FormatSeconds(s.StationTotal),
			RoxzoneTime:  workout.FormatSeconds(s.RoxzoneTime),
			OverallTotal: workout.FormatSeconds(s.OverallTotal),
		},
		Lines: s.Lines(),
	})
}

func (req SummaryRequest) entries() ([]workout.Entry, workout.TimeValue, error) {
	entries := make([]workout.Entry, 0, len(req.Running)+len(req.Stations))

	for i, txt := range req.Running {
		t, err := workout.ParseTime(txt)
		if err != nil {
			return nil, workout.TimeValue{}, fmt.Errorf("running[%d]: %w", i, err)
		}
		entries = append(entries, workout.Entry{
			ID:       fmt.Sprintf("running-%d", i+1),
			Exercise: workout.Running,
			Time:     t,
		})
	}

	// race order keeps error messages deterministic
	for _, st := range workout.Stations {
		txt, ok := req.Stations[string(st)]
		if !ok {
			continue
		}
		t, err := workout.ParseTime(txt)
		if err != nil {
			return nil, workout.TimeValue{}, fmt.Errorf("stations.%s: %w", st, err)
		}
		entries = append(entries, workout.Entry{ID: "station-" + string(st), Exercise: st, Time: t})
	}
	for key := range req.Stations {
		if ex, err := workout.ParseExercise(key); err != nil || !ex.IsStation() {
			return nil, workout.TimeValue{}, fmt.Errorf("stations.%s: unknown station", key)
		}
	}

	var roxzone workout.TimeValue
	if req.Roxzone != "" {
		t, err := workout.ParseTime(req.Roxzone)
		if err != nil {
			return nil, workout.TimeValue{}, fmt.Errorf("roxzone: %w", err)
		}
		roxzone = t
	}
	return entries, roxzone, nil
}
