package engine

import (
	"math"

	"github.com/yourusername/prop-hammer/internal/models"
)

// Params holds the engine's tunable constants. The values are heuristics
// with no derivation behind them, so they are configuration with documented
// defaults rather than hard-coded invariants.
type Params struct {
	// CoV is the coefficient of variation assumed for a player's stat:
	// stdDev = projection * CoV.
	CoV float64
	// MinEdge is the inclusion bar; candidates at or below it are discarded.
	MinEdge float64
	// BetEdge and HammerEdge split included candidates into verdict tiers.
	BetEdge    float64
	HammerEdge float64
}

// DefaultParams returns the stock tuning: 20% coefficient of variation and
// the 2/5/15-point edge tiers.
func DefaultParams() Params {
	return Params{
		CoV:        0.20,
		MinEdge:    0.02,
		BetEdge:    0.05,
		HammerEdge: 0.15,
	}
}

// Engine evaluates a raw grid against bookmaker quotes. It holds only its
// parameters, so a single instance is safe to share across goroutines.
type Engine struct {
	params Params
}

// New creates an engine with the given parameters
func New(params Params) *Engine {
	return &Engine{params: params}
}

// Params returns the engine's parameters
func (e *Engine) Params() Params {
	return e.params
}

// ComputeEdge models the realized stat as normally distributed around the
// projection with stdDev = projection * CoV, and returns the probability of
// exceeding the line together with the edge over the bookmaker-implied
// probability. Degenerate inputs (zero projection, non-finite arithmetic)
// return the (0, 0) sentinel, which falls below the inclusion threshold and
// drops silently.
func (e *Engine) ComputeEdge(projection, line, americanOdds float64) (trueProb, edge float64) {
	stdDev := projection * e.params.CoV
	if stdDev == 0 || math.IsNaN(stdDev) || math.IsInf(stdDev, 0) {
		return 0, 0
	}
	z := (line - projection) / stdDev
	trueProb = 1 - normalCDF(z)

	decimalOdds := AmericanToDecimal(americanOdds)
	implied := 0.0
	if decimalOdds > 0 {
		implied = 1 / decimalOdds
	}
	edge = trueProb - implied
	if math.IsNaN(trueProb) || math.IsNaN(edge) {
		return 0, 0
	}
	return trueProb, edge
}

// Evaluate scans the grid and scores every candidate quote cell of every
// recognized stat row. The result is unordered; callers sort by RawEdge.
// Parse failures at row or cell level are skipped, never surfaced.
func (e *Engine) Evaluate(grid [][]string, multiplier float64) []models.Opportunity {
	var opportunities []models.Opportunity
	for _, row := range ScanGrid(grid) {
		projection := Project(row.HistoryValues, multiplier)
		for _, cell := range row.CandidateCells {
			quote, ok := ParseQuote(cell)
			if !ok {
				continue
			}
			trueProb, edge := e.ComputeEdge(projection, quote.Line, quote.AmericanOdds)
			if edge <= e.params.MinEdge {
				continue
			}
			opportunities = append(opportunities, models.Opportunity{
				StatLabel:    row.Label,
				Line:         quote.Line,
				AmericanOdds: int(quote.AmericanOdds),
				Projection:   math.Round(projection*10) / 10,
				// Truncating casts reproduce the displayed values of the
				// spreadsheet tool this replaces.
				WinProbabilityPct: int(trueProb * 100),
				EdgePct:           int(edge * 100),
				Verdict:           e.verdict(edge),
				RawEdge:           edge,
			})
		}
	}
	return opportunities
}

func (e *Engine) verdict(edge float64) models.Verdict {
	switch {
	case edge > e.params.HammerEdge:
		return models.VerdictHammer
	case edge > e.params.BetEdge:
		return models.VerdictBet
	default:
		return models.VerdictPass
	}
}
