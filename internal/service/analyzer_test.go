package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/prop-hammer/internal/config"
	"github.com/yourusername/prop-hammer/internal/engine"
)

// stubSource serves a fixed grid without touching the network
type stubSource struct {
	grid [][]string
	err  error
}

func (s *stubSource) FetchGrid(ctx context.Context) ([][]string, error) {
	return s.grid, s.err
}

func (s *stubSource) Name() string    { return "stub" }
func (s *stubSource) IsEnabled() bool { return true }

func testMatchups() config.MatchupConfig {
	return config.MatchupConfig{Neutral: 1.00, Soft: 1.08, Tough: 0.92}
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func TestAnalyzeRanksByEdgeDescending(t *testing.T) {
	source := &stubSource{grid: [][]string{
		{"Points", "22, 25, 28, 19", "21.5/-110", "18.5/-110"},
		{"Rebounds", "8, 10, 7, 12", "6.5/-120"},
	}}
	analyzer := NewAnalyzer(source, engine.New(engine.DefaultParams()), testMatchups(), quietLogger())

	result, err := analyzer.Analyze(context.Background(), "neutral")
	require.NoError(t, err)
	require.NotEmpty(t, result.Opportunities)

	for i := 1; i < len(result.Opportunities); i++ {
		assert.GreaterOrEqual(t,
			result.Opportunities[i-1].RawEdge,
			result.Opportunities[i].RawEdge,
			"opportunities must be sorted best edge first")
	}
	assert.Equal(t, "neutral", result.Matchup)
	assert.Equal(t, 1.0, result.Multiplier)
	assert.Equal(t, 2, result.RowsScanned)
	assert.Equal(t, 2, result.RowsMatched)
}

func TestAnalyzeMatchupCategories(t *testing.T) {
	source := &stubSource{grid: [][]string{
		{"Points", "22, 25, 28, 19", "18.5/-110"},
	}}
	analyzer := NewAnalyzer(source, engine.New(engine.DefaultParams()), testMatchups(), quietLogger())

	soft, err := analyzer.Analyze(context.Background(), "soft")
	require.NoError(t, err)
	tough, err := analyzer.Analyze(context.Background(), "tough")
	require.NoError(t, err)

	assert.Equal(t, 1.08, soft.Multiplier)
	assert.Equal(t, 0.92, tough.Multiplier)

	// A softer matchup raises the projection and with it the edge over the
	// same line.
	require.NotEmpty(t, soft.Opportunities)
	require.NotEmpty(t, tough.Opportunities)
	assert.Greater(t, soft.Opportunities[0].RawEdge, tough.Opportunities[0].RawEdge)
}

func TestAnalyzeUnknownMatchupFallsBackToNeutral(t *testing.T) {
	source := &stubSource{grid: [][]string{
		{"Points", "22, 25, 28, 19", "18.5/-110"},
	}}
	analyzer := NewAnalyzer(source, engine.New(engine.DefaultParams()), testMatchups(), quietLogger())

	result, err := analyzer.Analyze(context.Background(), "mystery")
	require.NoError(t, err)
	assert.Equal(t, 1.0, result.Multiplier)
}

func TestAnalyzeWithMultiplierRejectsNonPositive(t *testing.T) {
	analyzer := NewAnalyzer(&stubSource{}, engine.New(engine.DefaultParams()), testMatchups(), quietLogger())

	_, err := analyzer.AnalyzeWithMultiplier(context.Background(), 0)
	assert.Error(t, err)
	_, err = analyzer.AnalyzeWithMultiplier(context.Background(), -1.1)
	assert.Error(t, err)
}

func TestAnalyzePropagatesSourceError(t *testing.T) {
	source := &stubSource{err: errors.New("sheet unreachable")}
	analyzer := NewAnalyzer(source, engine.New(engine.DefaultParams()), testMatchups(), quietLogger())

	_, err := analyzer.Analyze(context.Background(), "neutral")
	assert.Error(t, err)
}

func TestAnalyzeEmptyGridYieldsNoOpportunities(t *testing.T) {
	source := &stubSource{grid: [][]string{}}
	analyzer := NewAnalyzer(source, engine.New(engine.DefaultParams()), testMatchups(), quietLogger())

	result, err := analyzer.Analyze(context.Background(), "neutral")
	require.NoError(t, err)
	assert.Empty(t, result.Opportunities)
}

func TestPreviewTruncatesCellsAndRows(t *testing.T) {
	grid := [][]string{
		{"Points", "22, 25, 28, 19, 31, 27, 24, 29, 26, 22, 25, 28", "27.5/-110"},
		{"Rebounds", "8, 10", "9.5/-115"},
		{"Assists", "5, 7", "6.5/+100"},
	}

	preview := Preview(grid, 2)
	require.Len(t, preview, 2)
	assert.LessOrEqual(t, len(preview[0][1]), previewCellLimit+len("…"))

	assert.Nil(t, Preview(grid, 0))
	assert.Nil(t, Preview(nil, 5))

	// Preview must not alias the snapshot.
	preview[1][0] = "mutated"
	assert.Equal(t, "Rebounds", grid[1][0])
}

func TestPreviewKeepsCellsValidUTF8(t *testing.T) {
	long := strings.Repeat("é", previewCellLimit+5)
	grid := [][]string{{long, "Points"}}

	preview := Preview(grid, 1)
	require.Len(t, preview, 1)

	cell := preview[0][0]
	assert.True(t, utf8.ValidString(cell))
	assert.Equal(t, previewCellLimit+1, utf8.RuneCountInString(cell))
	assert.Equal(t, strings.Repeat("é", previewCellLimit)+"…", cell)

	// Short cells pass through untouched.
	assert.Equal(t, "Points", preview[0][1])
}
