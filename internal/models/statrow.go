package models

// StatRow represents a single recognized stat line extracted from the raw
// grid: a stat label, its parsed per-game history, and whatever cells follow
// the history field. Constructed once per matching grid row, never mutated.
type StatRow struct {
	Label          string    `json:"label"`
	HistoryValues  []float64 `json:"history_values"`
	CandidateCells []string  `json:"candidate_cells"`
}

// LineQuote represents a parsed betting quote of the form <line>/<odds>
type LineQuote struct {
	Line         float64 `json:"line"`
	AmericanOdds float64 `json:"american_odds"`
}
