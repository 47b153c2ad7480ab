package ocr

// Thresholds are heuristic and user-visible; keep them literal.
const (
	highStations   = 6
	mediumStations = 3
)

// applyConfidencePolicy grades how much of the scoreboard was recognized.
func applyConfidencePolicy(x *Extraction) {
	n := len(x.Stations)
	switch {
	case n >= highStations && x.hasRunning():
		x.Confidence = ConfidenceHigh
	case n >= mediumStations:
		x.Confidence = ConfidenceMedium
	default:
		x.Confidence = ConfidenceLow
	}
}
