// Package engine implements the edge-detection core: locating stat rows in a
// raw spreadsheet grid, projecting a stat from per-game history, and scoring
// candidate lines against bookmaker odds. The package is purely functional
// and performs no I/O; malformed input degrades to fewer results, never to an
// error.
package engine

import (
	"strconv"
	"strings"

	"github.com/yourusername/prop-hammer/internal/models"
)

// statLabels is the recognized stat vocabulary. A cell matches when its
// trimmed text contains one of these substrings.
var statLabels = []string{"Points", "Rebounds", "Assists", "3 Pointer", "Pts+"}

// labelSearchWidth bounds how many leading cells are checked for a stat
// label. Hand-maintained sheets shift the label column around, but never
// this far.
const labelSearchWidth = 5

// maxLabelLength rejects long cells that merely mention a stat name, such as
// free-text notes.
const maxLabelLength = 20

// ScanGrid extracts stat rows from a raw grid. Rows that do not match the
// label/history pattern are skipped, never reported. The scan is a pure
// function of its input and can be re-run on the same grid for identical
// results.
func ScanGrid(grid [][]string) []models.StatRow {
	var rows []models.StatRow
	for _, cells := range grid {
		if row, ok := scanRow(cells); ok {
			rows = append(rows, row)
		}
	}
	return rows
}

// scanRow attempts to interpret a single grid row as a stat row. Returns
// ok=false when the row has no recognizable label, no comma-separated
// history, or a history with no usable numeric tokens.
func scanRow(cells []string) (models.StatRow, bool) {
	labelIdx := -1
	var label string

	limit := len(cells)
	if limit > labelSearchWidth {
		limit = labelSearchWidth
	}
	for i := 0; i < limit; i++ {
		text := strings.TrimSpace(cells[i])
		if len(text) >= maxLabelLength {
			continue
		}
		if containsStatLabel(text) {
			labelIdx = i
			label = text
			break
		}
	}
	if labelIdx == -1 || labelIdx+1 >= len(cells) {
		return models.StatRow{}, false
	}

	historyCell := cells[labelIdx+1]
	if !strings.Contains(historyCell, ",") {
		return models.StatRow{}, false
	}

	history := parseHistory(historyCell)
	if len(history) == 0 {
		return models.StatRow{}, false
	}

	return models.StatRow{
		Label:          label,
		HistoryValues:  history,
		CandidateCells: cells[labelIdx+2:],
	}, true
}

func containsStatLabel(text string) bool {
	for _, label := range statLabels {
		if strings.Contains(text, label) {
			return true
		}
	}
	return false
}

// parseHistory splits a comma-separated history cell into numeric values.
// Tokens survive only if, after removing at most one decimal point, they are
// entirely digits. This rejects negative numbers and malformed tokens; stat
// histories are non-negative so nothing legitimate is lost.
func parseHistory(cell string) []float64 {
	var values []float64
	for _, piece := range strings.Split(cell, ",") {
		token := strings.TrimSpace(piece)
		if !isUnsignedNumeric(token) {
			continue
		}
		value, err := strconv.ParseFloat(token, 64)
		if err != nil {
			continue
		}
		values = append(values, value)
	}
	return values
}

func isUnsignedNumeric(token string) bool {
	if token == "" {
		return false
	}
	digits := 0
	seenDot := false
	for _, r := range token {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '.' && !seenDot:
			seenDot = true
		default:
			return false
		}
	}
	return digits > 0
}
