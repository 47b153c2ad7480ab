package workout

import "fmt"

// Exercise is a scoreboard category. The string value is the wire key used
// in OCR payloads and API requests.
type Exercise string

const (
	Running Exercise = "running"

	Ski             Exercise = "ski"
	SledPush        Exercise = "sledPush"
	SledPull        Exercise = "sledPull"
	BurpeeBroadJump Exercise = "burpeeBroadJump"
	Rowing          Exercise = "rowing"
	FarmersCarry    Exercise = "farmersCarry"
	SandbagLunges   Exercise = "sandbagLunges"
	WallBall        Exercise = "wallBall"

	// Roxzone is a display label only; transition time never enters Compute as an entry.
	Roxzone Exercise = "roxzone"
)

// RunningSegments is the number of runs in a race.
const RunningSegments = 8

// Stations lists the station categories in race order.
var Stations = [...]Exercise{
	Ski,
	SledPush,
	SledPull,
	BurpeeBroadJump,
	Rowing,
	FarmersCarry,
	SandbagLunges,
	WallBall,
}

var labels = map[Exercise]string{
	Running:         "Running",
	Ski:             "SkiErg",
	SledPush:        "Sled Push",
	SledPull:        "Sled Pull",
	BurpeeBroadJump: "Burpee Broad Jump",
	Rowing:          "Rowing",
	FarmersCarry:    "Farmers Carry",
	SandbagLunges:   "Sandbag Lunges",
	WallBall:        "Wall Balls",
	Roxzone:         "Roxzone",
}

// Label returns the human-readable name, or the raw key for unknown values.
func (e Exercise) Label() string {
	if l, ok := labels[e]; ok {
		return l
	}
	return string(e)
}

func (e Exercise) IsStation() bool {
	for _, s := range Stations {
		if s == e {
			return true
		}
	}
	return false
}

// ParseExercise maps a wire key to an Exercise.
func ParseExercise(key string) (Exercise, error) {
	e := Exercise(key)
	if _, ok := labels[e]; !ok {
		return "", fmt.Errorf("unknown exercise %q", key)
	}
	return e, nil
}
