package workout

// Entry is one timed line of the calculator. ID only identifies the entry
// inside its list.
type Entry struct {
	ID       string    `json:"id"`
	Exercise Exercise  `json:"exercise"`
	Time     TimeValue `json:"time"`
}

// Summary holds totals in seconds. OverallTotal is always the sum of the other three.
type Summary struct {
	RunningTotal int `json:"runningTotal"`
	StationTotal int `json:"stationTotal"`
	RoxzoneTime  int `json:"roxzoneTime"`
	OverallTotal int `json:"overallTotal"`
}

// Compute sums running and station entries and adds the transition time.
// Entries of any other category are skipped.
func Compute(entries []Entry, roxzoneSeconds int) Summary {
	var running, stations int
	for _, e := range entries {
		sec := e.Time.TotalSeconds()
		switch {
		case e.Exercise == Running:
			running += sec
		case e.Exercise.IsStation():
			stations += sec
		}
	}
	return Summary{
		RunningTotal: running,
		StationTotal: stations,
		RoxzoneTime:  roxzoneSeconds,
		OverallTotal: running + stations + roxzoneSeconds,
	}
}

// SummaryLine is one labelled row of a rendered summary.
type SummaryLine struct {
	Label   string `json:"label"`
	Seconds int    `json:"seconds"`
	Text    string `json:"text"`
}

// Lines breaks the summary into display rows, total last.
func (s Summary) Lines() []SummaryLine {
	row := func(label string, sec int) SummaryLine {
		return SummaryLine{Label: label, Seconds: sec, Text: FormatSeconds(sec)}
	}
	return []SummaryLine{
		row(Running.Label(), s.RunningTotal),
		row("Stations", s.StationTotal),
		row(Roxzone.Label(), s.RoxzoneTime),
		row("Total", s.OverallTotal),
	}
}
