package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"hyrox-calc/api/internal/app"
	"hyrox-calc/api/internal/config"
	"hyrox-calc/api/internal/logging"
	"hyrox-calc/api/internal/ocr"
	"hyrox-calc/api/internal/util"
)

func newScanCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "scan <image>",
		Short: "Read a scoreboard photo with the configured vision model",
		Long: `scan sends one image to the vision model configured through the
environment (GEMINI_API_KEY, GEMINI_MODEL, optional DATABASE_URL cache) and
prints the extracted times.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			img, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			cfg := config.Load()
			log := logging.New(cfg.LogLevel, "console")

			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.OCRTimeout)
			defer cancel()

			engines, closeEngines, err := app.Engines(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer closeEngines()

			eng, err := engines.GetEngine("")
			if err != nil {
				return err
			}
			x, err := ocr.ExtractWorkout(ctx, eng, img, util.PickMIME("", "", img))
			if err != nil {
				return err
			}
			return printExtraction(cmd.OutOrStdout(), x, asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the extraction as JSON")
	return cmd
}
