package models

import "fmt"

// Verdict represents the confidence tier assigned to an opportunity
type Verdict string

const (
	VerdictPass   Verdict = "PASS"
	VerdictBet    Verdict = "BET"
	VerdictHammer Verdict = "HAMMER"
)

// Opportunity represents a candidate line whose modeled win probability
// exceeds the bookmaker-implied probability by more than the inclusion
// threshold. Immutable once created.
type Opportunity struct {
	StatLabel         string  `json:"stat_label" validate:"required"`
	Line              float64 `json:"line"`
	AmericanOdds      int     `json:"american_odds"`
	Projection        float64 `json:"projection"` // rounded to 1 decimal place
	WinProbabilityPct int     `json:"win_probability_pct"`
	EdgePct           int     `json:"edge_pct"`
	Verdict           Verdict `json:"verdict" validate:"required,oneof=PASS BET HAMMER"`

	// RawEdge is the unrounded edge, retained only for sort ordering.
	RawEdge float64 `json:"-"`
}

// String renders a single-line summary suitable for CLI output
func (o Opportunity) String() string {
	return fmt.Sprintf("%-12s %6.1f @ %+d  proj %.1f  win %d%%  edge %d%%  %s",
		o.StatLabel, o.Line, o.AmericanOdds, o.Projection, o.WinProbabilityPct, o.EdgePct, o.Verdict)
}
