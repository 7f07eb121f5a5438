package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/prop-hammer/internal/models"
)

func TestProject(t *testing.T) {
	assert.InDelta(t, 23.5, Project([]float64{22, 25, 28, 19}, 1.0), 1e-9)
	assert.InDelta(t, 23.5*1.08, Project([]float64{22, 25, 28, 19}, 1.08), 1e-9)
	assert.Equal(t, 0.0, Project(nil, 1.0))
}

func TestComputeEdgeAtTheLine(t *testing.T) {
	e := New(DefaultParams())
	trueProb, _ := e.ComputeEdge(23.5, 23.5, -110)
	assert.InDelta(t, 0.5, trueProb, 1e-9)
}

func TestComputeEdgeMonotonicInLine(t *testing.T) {
	e := New(DefaultParams())
	prev := 1.1
	for line := 15.0; line <= 35.0; line += 0.5 {
		trueProb, _ := e.ComputeEdge(23.5, line, -110)
		assert.Less(t, trueProb, prev, "line %v", line)
		prev = trueProb
	}
}

func TestComputeEdgeZeroProjectionSentinel(t *testing.T) {
	e := New(DefaultParams())
	trueProb, edge := e.ComputeEdge(0, 27.5, -110)
	assert.Equal(t, 0.0, trueProb)
	assert.Equal(t, 0.0, edge)
}

func TestComputeEdgeKnownValues(t *testing.T) {
	// History "22, 25, 28, 19" at multiplier 1.0: projection 23.5, stdDev 4.7.
	// Quote 27.5/-110: z ~ 0.851, trueProb ~ 0.1974, implied ~ 0.5238.
	e := New(DefaultParams())
	projection := Project([]float64{22, 25, 28, 19}, 1.0)
	require.InDelta(t, 23.5, projection, 1e-9)

	trueProb, edge := e.ComputeEdge(projection, 27.5, -110)
	assert.InDelta(t, 0.1974, trueProb, 1e-3)
	assert.InDelta(t, -0.3264, edge, 1e-3)
}

func TestVerdictTiers(t *testing.T) {
	e := New(DefaultParams())
	tests := []struct {
		edge float64
		want models.Verdict
	}{
		{0.0201, models.VerdictPass},
		{0.05, models.VerdictPass},
		{0.05001, models.VerdictBet},
		{0.15, models.VerdictBet},
		{0.15001, models.VerdictHammer},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, e.verdict(tt.edge), "edge %v", tt.edge)
	}
}

func TestEvaluateInclusionBoundaryIsExclusive(t *testing.T) {
	grid := [][]string{
		{"Points", "22, 25, 28, 19", "21.5/+150"},
	}

	// Pin the inclusion bar to the exact computed edge: the candidate must
	// be excluded, then included once the bar drops below it.
	base := New(DefaultParams())
	_, edge := base.ComputeEdge(23.5, 21.5, 150)
	require.Greater(t, edge, 0.0)

	params := DefaultParams()
	params.MinEdge = edge
	assert.Empty(t, New(params).Evaluate(grid, 1.0))

	params.MinEdge = edge - 1e-12
	assert.Len(t, New(params).Evaluate(grid, 1.0), 1)
}

func TestEvaluateNegativeEdgeExcluded(t *testing.T) {
	// The canonical worked example: edge ~ -0.326, well below the bar.
	grid := [][]string{
		{"ignore", "Points", "22, 25, 28, 19", "27.5/-110"},
	}
	assert.Empty(t, New(DefaultParams()).Evaluate(grid, 1.0))
}

func TestEvaluateGarbageQuoteNeverProduces(t *testing.T) {
	grid := [][]string{
		{"Points", "22, 25, 28, 19", "abc/xyz"},
	}
	for _, multiplier := range []float64{0.92, 1.0, 1.08, 5.0} {
		assert.Empty(t, New(DefaultParams()).Evaluate(grid, multiplier))
	}
}

func TestEvaluateProducesRoundedDisplayFields(t *testing.T) {
	grid := [][]string{
		{"Points", "22, 25, 28, 19", "18.5/-110"},
	}

	opportunities := New(DefaultParams()).Evaluate(grid, 1.0)
	require.Len(t, opportunities, 1)

	opp := opportunities[0]
	assert.Equal(t, "Points", opp.StatLabel)
	assert.Equal(t, 18.5, opp.Line)
	assert.Equal(t, -110, opp.AmericanOdds)
	assert.Equal(t, 23.5, opp.Projection)
	// Percent fields are truncated, not rounded: z ~ -1.064 gives a win
	// probability of ~85.6% and an edge of ~33.3%.
	assert.Equal(t, 85, opp.WinProbabilityPct)
	assert.Equal(t, 33, opp.EdgePct)
	assert.InDelta(t, 0.3325, opp.RawEdge, 1e-3)
	assert.Equal(t, models.VerdictHammer, opp.Verdict)
}

func TestEvaluateIdempotent(t *testing.T) {
	grid := [][]string{
		{"Points", "22, 25, 28, 19", "18.5/-110", "20+/-500", "27.5/-110"},
		{"Rebounds", "8, 10, 7, 12", "7.5/-120"},
		{"not a stat row"},
	}

	first := New(DefaultParams()).Evaluate(grid, 1.0)
	second := New(DefaultParams()).Evaluate(grid, 1.0)
	assert.Equal(t, first, second)
}
