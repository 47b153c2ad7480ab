package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hyrox-calc/api/internal/ocr"
	"hyrox-calc/api/internal/workout"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestSummaryCmd(t *testing.T) {
	out, err := execute(t, "", "summary",
		"--run", "04:30", "--run", "4:45",
		"--station", "ski=03:20",
		"--roxzone", "08:30")
	require.NoError(t, err)

	assert.Contains(t, out, "Run 1")
	assert.Contains(t, out, "04:30")
	assert.Contains(t, out, "SkiErg")
	assert.Contains(t, out, "09:15")
	assert.Contains(t, out, "21:05")
}

func TestSummaryCmd_Errors(t *testing.T) {
	cases := map[string][]string{
		"--run #2":         {"summary", "--run", "04:30", "--run", "4:5"},
		"want key=MM:SS":   {"summary", "--station", "ski"},
		"unknown station":  {"summary", "--station", "bench=01:00"},
		"--station rowing": {"summary", "--station", "rowing=01:75"},
		"--roxzone":        {"summary", "--roxzone", "eight"},
	}
	for want, args := range cases {
		_, err := execute(t, "", args...)
		require.Error(t, err, want)
		assert.Contains(t, err.Error(), want)
	}
}

func TestBuildSheet_ExtraRuns(t *testing.T) {
	runs := make([]string, 10)
	for i := range runs {
		runs[i] = "01:00"
	}
	sheet, err := buildSheet(runs, nil, "")
	require.NoError(t, err)

	assert.Equal(t, 600, sheet.Summary().RunningTotal)
	assert.Len(t, sheet.Entries(), 10+len(workout.Stations))
}

func TestBuildSheet_BadTimeIsInvalidFormat(t *testing.T) {
	_, err := buildSheet([]string{"ab:cd"}, nil, "")
	assert.True(t, errors.Is(err, workout.ErrInvalidTimeFormat))
}

func TestNormalizeCmd_Stdin(t *testing.T) {
	raw := "Here you go:\n```json\n{\"running\":[\"04:30\"],\"stations\":{\"ski\":\"03:20\",\"rowing\":\"04:10\",\"wallBall\":\"05:00\"},\"roxzone\":\"06:00\"}\n```"
	out, err := execute(t, raw, "normalize", "-")
	require.NoError(t, err)

	assert.Contains(t, out, "Confidence: medium")
	assert.Contains(t, out, "Wall Balls")
	assert.Contains(t, out, "06:00")
}

func TestNormalizeCmd_JSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "answer.txt")
	require.NoError(t, os.WriteFile(path, []byte(`{"roxzone":"01:02"}`), 0o600))

	out, err := execute(t, "", "normalize", "--json", path)
	require.NoError(t, err)

	var x ocr.Extraction
	require.NoError(t, json.Unmarshal([]byte(out), &x))
	assert.Equal(t, workout.TimeValue{Minutes: 1, Seconds: 2}, x.Roxzone)
	assert.Equal(t, ocr.ConfidenceLow, x.Confidence)
}

func TestNormalizeCmd_NoJSON(t *testing.T) {
	_, err := execute(t, "sorry, no scoreboard here", "normalize", "-")
	assert.True(t, errors.Is(err, ocr.ErrNoJSONFound))
}
