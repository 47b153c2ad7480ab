package telegram

import (
	"fmt"
	"strings"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"hyrox-calc/api/internal/ocr"
	"hyrox-calc/api/internal/workout"
)

const (
	cbReset = "sheet_reset"
	cbRaw   = "sheet_raw"

	// Telegram caps a message at 4096 characters.
	maxRawChars = 3900
)

func sheetKeyboard(withRaw bool) tgbotapi.InlineKeyboardMarkup {
	row := tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("Reset", cbReset))
	if withRaw {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("Model answer", cbRaw))
	}
	return tgbotapi.NewInlineKeyboardMarkup(row)
}

func extractionHeader(x ocr.Extraction) string {
	h := fmt.Sprintf("Scoreboard read, confidence: %s.", x.Confidence)
	if x.Confidence == ocr.ConfidenceLow {
		h += "\nSome times are probably missing. Fix them with /set <field> MM:SS."
	}
	return h
}

// formatSheet renders every entry and the totals as a Markdown code block.
func formatSheet(s *workout.Sheet) string {
	var b strings.Builder
	b.WriteString("```\n")

	run := 0
	for _, e := range s.Entries() {
		label := e.Exercise.Label()
		if e.Exercise == workout.Running {
			run++
			label = fmt.Sprintf("Run %d", run)
		}
		writeRow(&b, label, e.Time.String())
	}
	writeRow(&b, workout.Roxzone.Label(), s.Roxzone().String())

	b.WriteString(strings.Repeat("-", 26) + "\n")
	for _, l := range s.Summary().Lines() {
		writeRow(&b, l.Label, l.Text)
	}
	b.WriteString("```")
	return b.String()
}

func writeRow(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "%-18s %7s\n", label, value)
}

// codeBlock wraps free text for Markdown, dropping backticks that would end it.
func codeBlock(s string) string {
	s = strings.ReplaceAll(s, "`", "'")
	if len(s) > maxRawChars {
		n := maxRawChars
		for n > 0 && !utf8.RuneStart(s[n]) {
			n--
		}
		s = s[:n] + "…"
	}
	return "```\n" + s + "\n```"
}
