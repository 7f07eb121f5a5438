// Package metrics provides the centralized Prometheus metrics registry for
// the prop finder.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	AnalysisRunsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "prop_hammer",
		Name:      "analysis_runs_total",
		Help:      "Total number of analysis runs",
	})
	RowsScannedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "prop_hammer",
		Name:      "rows_scanned_total",
		Help:      "Total number of grid rows scanned",
	})
	RowsSkippedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "prop_hammer",
		Name:      "rows_skipped_total",
		Help:      "Total number of grid rows that yielded no stat row",
	})
	OpportunitiesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "prop_hammer",
		Name:      "opportunities_total",
		Help:      "Total number of opportunities surfaced, by verdict",
	}, []string{"verdict"})
	SheetFetchesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "prop_hammer",
		Name:      "sheet_fetches_total",
		Help:      "Total number of sheet snapshot fetches",
	})
	SheetFetchErrorsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "prop_hammer",
		Name:      "sheet_fetch_errors_total",
		Help:      "Total number of failed sheet fetches",
	})
	TicketLegsStagedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "prop_hammer",
		Name:      "ticket_legs_staged_total",
		Help:      "Total number of legs staged onto tickets",
	})
)

// Gauge metrics
var (
	SheetCacheHitRatio = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "prop_hammer",
		Name:      "sheet_cache_hit_ratio",
		Help:      "Hit ratio of the sheet snapshot cache",
	})
	LastAnalysisOpportunities = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "prop_hammer",
		Name:      "last_analysis_opportunities",
		Help:      "Number of opportunities in the most recent analysis",
	})
	StagedTicketLegs = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "prop_hammer",
		Name:      "staged_ticket_legs",
		Help:      "Number of legs currently staged on the session ticket",
	})
)

// Histogram metrics
var (
	SheetFetchDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "prop_hammer",
		Name:      "sheet_fetch_duration_seconds",
		Help:      "Duration of sheet snapshot fetches in seconds",
		Buckets:   prometheus.DefBuckets,
	})
	AnalysisDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "prop_hammer",
		Name:      "analysis_duration_seconds",
		Help:      "Duration of full analysis runs in seconds",
		Buckets:   prometheus.DefBuckets,
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		// Register counter metrics
		registry.MustRegister(AnalysisRunsTotal)
		registry.MustRegister(RowsScannedTotal)
		registry.MustRegister(RowsSkippedTotal)
		registry.MustRegister(OpportunitiesTotal)
		registry.MustRegister(SheetFetchesTotal)
		registry.MustRegister(SheetFetchErrorsTotal)
		registry.MustRegister(TicketLegsStagedTotal)

		// Register gauge metrics
		registry.MustRegister(SheetCacheHitRatio)
		registry.MustRegister(LastAnalysisOpportunities)
		registry.MustRegister(StagedTicketLegs)

		// Register histogram metrics
		registry.MustRegister(SheetFetchDuration)
		registry.MustRegister(AnalysisDuration)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordAnalysis records a completed analysis run.
func RecordAnalysis(durationSeconds float64, opportunities int) {
	AnalysisRunsTotal.Inc()
	AnalysisDuration.Observe(durationSeconds)
	LastAnalysisOpportunities.Set(float64(opportunities))
}

// RecordScan records row counts from a grid scan.
func RecordScan(scanned, matched int) {
	RowsScannedTotal.Add(float64(scanned))
	if skipped := scanned - matched; skipped > 0 {
		RowsSkippedTotal.Add(float64(skipped))
	}
}

// RecordOpportunity records a surfaced opportunity by verdict.
func RecordOpportunity(verdict string) {
	OpportunitiesTotal.WithLabelValues(verdict).Inc()
}

// RecordSheetFetch records a sheet fetch attempt.
func RecordSheetFetch(durationSeconds float64, err error) {
	SheetFetchesTotal.Inc()
	SheetFetchDuration.Observe(durationSeconds)
	if err != nil {
		SheetFetchErrorsTotal.Inc()
	}
}

// RecordTicketLegStaged records a staged ticket leg.
func RecordTicketLegStaged(currentLegs int) {
	TicketLegsStagedTotal.Inc()
	StagedTicketLegs.Set(float64(currentLegs))
}
