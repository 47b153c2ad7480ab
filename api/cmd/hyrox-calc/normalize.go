package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"hyrox-calc/api/internal/ocr"
	"hyrox-calc/api/internal/workout"
)

func newNormalizeCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "normalize <file|->",
		Short: "Normalize a saved vision model answer",
		Long: `normalize reads raw model text (a file, or stdin for "-"), extracts the
JSON object from it and prints the resulting times and confidence.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			x, err := ocr.Normalize(string(raw))
			if err != nil {
				return err
			}
			return printExtraction(cmd.OutOrStdout(), x, asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the extraction as JSON")
	return cmd
}

func readInput(stdin io.Reader, name string) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(name)
}

func printExtraction(w io.Writer, x ocr.Extraction, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(x)
	}
	sheet := workout.NewSheet()
	x.ApplyTo(sheet)
	_, err := fmt.Fprint(w, renderConfidence(x.Confidence)+"\n"+renderSheet(sheet))
	return err
}
