// Package service orchestrates the engine, the sheet source, and the ticket
// store into the operations the API and CLI expose.
package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/prop-hammer/internal/config"
	"github.com/yourusername/prop-hammer/internal/engine"
	"github.com/yourusername/prop-hammer/internal/metrics"
	"github.com/yourusername/prop-hammer/internal/models"
	"github.com/yourusername/prop-hammer/internal/sheet"
)

// AnalysisResult is one complete pass over the current sheet snapshot,
// ranked best edge first.
type AnalysisResult struct {
	Opportunities []models.Opportunity `json:"opportunities"`
	Matchup       string               `json:"matchup"`
	Multiplier    float64              `json:"multiplier"`
	RowsScanned   int                  `json:"rows_scanned"`
	RowsMatched   int                  `json:"rows_matched"`
	GeneratedAt   time.Time            `json:"generated_at"`
}

// Analyzer runs the edge engine against the live sheet snapshot. The engine
// itself is stateless; all freshness concerns belong to the grid source.
type Analyzer struct {
	source   sheet.GridSource
	engine   *engine.Engine
	matchups config.MatchupConfig
	logger   *logrus.Logger
}

// NewAnalyzer creates a new analyzer
func NewAnalyzer(source sheet.GridSource, eng *engine.Engine, matchups config.MatchupConfig, logger *logrus.Logger) *Analyzer {
	return &Analyzer{
		source:   source,
		engine:   eng,
		matchups: matchups,
		logger:   logger,
	}
}

// Analyze fetches the current grid and evaluates it under the named matchup
// category (neutral, soft, tough; unknown names resolve to neutral).
func (a *Analyzer) Analyze(ctx context.Context, matchup string) (*AnalysisResult, error) {
	result, err := a.analyze(ctx, a.matchups.MultiplierFor(matchup))
	if err != nil {
		return nil, err
	}
	result.Matchup = matchup
	return result, nil
}

// AnalyzeWithMultiplier evaluates the current grid under an explicit
// projection multiplier, bypassing the matchup categories.
func (a *Analyzer) AnalyzeWithMultiplier(ctx context.Context, multiplier float64) (*AnalysisResult, error) {
	if multiplier <= 0 {
		return nil, fmt.Errorf("multiplier must be positive, got %v", multiplier)
	}
	return a.analyze(ctx, multiplier)
}

func (a *Analyzer) analyze(ctx context.Context, multiplier float64) (*AnalysisResult, error) {
	start := time.Now()

	grid, err := a.source.FetchGrid(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch grid: %w", err)
	}

	statRows := engine.ScanGrid(grid)
	metrics.RecordScan(len(grid), len(statRows))

	opportunities := a.engine.Evaluate(grid, multiplier)
	sort.SliceStable(opportunities, func(i, j int) bool {
		return opportunities[i].RawEdge > opportunities[j].RawEdge
	})

	for _, opp := range opportunities {
		metrics.RecordOpportunity(string(opp.Verdict))
	}
	metrics.RecordAnalysis(time.Since(start).Seconds(), len(opportunities))

	a.logger.WithFields(logrus.Fields{
		"rows_scanned":  len(grid),
		"rows_matched":  len(statRows),
		"opportunities": len(opportunities),
		"multiplier":    multiplier,
	}).Info("Analysis complete")

	return &AnalysisResult{
		Opportunities: opportunities,
		Multiplier:    multiplier,
		RowsScanned:   len(grid),
		RowsMatched:   len(statRows),
		GeneratedAt:   time.Now().UTC(),
	}, nil
}
