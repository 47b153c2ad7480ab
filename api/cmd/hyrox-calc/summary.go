package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"hyrox-calc/api/internal/workout"
)

func newSummaryCmd() *cobra.Command {
	var (
		runs     []string
		stations []string
		roxzone  string
	)

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Add up split times",
		Example: `  hyrox-calc summary --run 04:30 --run 04:45 --station ski=03:20 --roxzone 08:30
  hyrox-calc summary --station sledPush=02:55 --station wallBall=06:10`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sheet, err := buildSheet(runs, stations, roxzone)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), renderSheet(sheet))
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&runs, "run", nil, "running split MM:SS, in order (repeatable)")
	cmd.Flags().StringArrayVar(&stations, "station", nil, "station split key=MM:SS (repeatable)")
	cmd.Flags().StringVar(&roxzone, "roxzone", "", "total roxzone time MM:SS")
	return cmd
}

// buildSheet fills a fresh sheet strictly: any malformed value is an error
// naming the flag it came from.
func buildSheet(runs, stations []string, roxzone string) (*workout.Sheet, error) {
	sheet := workout.NewSheet()

	for i, txt := range runs {
		id := fmt.Sprintf("running-%d", i+1)
		if i >= workout.RunningSegments {
			id = sheet.AddRunning().ID
		}
		if err := sheet.SetTime(id, txt); err != nil {
			return nil, fmt.Errorf("--run #%d: %w", i+1, err)
		}
	}

	for _, kv := range stations {
		key, txt, ok := strings.Cut(kv, "=")
		if !ok {
			return nil, fmt.Errorf("--station %q: want key=MM:SS", kv)
		}
		ex, err := workout.ParseExercise(strings.TrimSpace(key))
		if err != nil || !ex.IsStation() {
			return nil, fmt.Errorf("--station %q: unknown station, want one of %s", key, stationKeys())
		}
		if err := sheet.SetTime("station-"+string(ex), txt); err != nil {
			return nil, fmt.Errorf("--station %s: %w", ex, err)
		}
	}

	if roxzone != "" {
		if err := sheet.SetRoxzone(roxzone); err != nil {
			return nil, fmt.Errorf("--roxzone: %w", err)
		}
	}
	return sheet, nil
}

func stationKeys() string {
	keys := make([]string, len(workout.Stations))
	for i, s := range workout.Stations {
		keys[i] = string(s)
	}
	return strings.Join(keys, ", ")
}
