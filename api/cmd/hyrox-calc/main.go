package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "hyrox-calc",
		Short: "HYROX race time calculator",
		Long: `hyrox-calc adds up HYROX split times: eight runs, eight stations and the
roxzone transition time. It can also read a scoreboard photo through the
configured vision model, or re-run the normalizer over a saved model answer.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newSummaryCmd(), newNormalizeCmd(), newScanCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, StyleRed.Render("error: ")+err.Error())
		os.Exit(1)
	}
}
