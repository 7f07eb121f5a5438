// Package main provides a one-shot CLI scan over a stat sheet.
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/prop-hammer/internal/config"
	"github.com/yourusername/prop-hammer/internal/engine"
	"github.com/yourusername/prop-hammer/internal/logger"
	"github.com/yourusername/prop-hammer/internal/service"
	"github.com/yourusername/prop-hammer/internal/sheet"
)

var (
	configFile string
	filePath   string
	sheetURL   string
	matchup    string
	multiplier float64

	appLog *logrus.Logger
	cfg    *config.Config
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.Flags().StringVarP(&filePath, "file", "f", "", "Read the sheet from a local CSV file instead of the configured URL")
	rootCmd.Flags().StringVarP(&sheetURL, "url", "u", "", "Override the configured sheet URL")
	rootCmd.Flags().StringVarP(&matchup, "matchup", "m", "", "Matchup category: neutral, soft, or tough")
	rootCmd.Flags().Float64Var(&multiplier, "multiplier", 0, "Explicit projection multiplier (overrides --matchup)")
}

var rootCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Scan a stat sheet for player-prop edges",
	Long: `Fetches a stat sheet, scans it for player-prop rows, and prints the
candidate lines whose modeled win probability beats the bookmaker-implied
probability, ranked best edge first.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadWithDefaults(configFile)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if filePath != "" {
			// Local file scans do not need the remote source configured.
			cfg.Sheet.Enabled = false
		}
		if err := config.Validate(cfg); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		appLog = logger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAnalysis(cmd.Context())
	},
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func buildSource() (sheet.GridSource, func(), error) {
	if filePath != "" {
		return sheet.NewFileSource(filePath), func() {}, nil
	}

	url := cfg.Sheet.URL
	if sheetURL != "" {
		url = sheetURL
	}
	if url == "" {
		return nil, nil, fmt.Errorf("no sheet source: set sheet.url in config or pass --file/--url")
	}

	httpCfg := sheet.DefaultHTTPClientConfig()
	httpCfg.Timeout = time.Duration(cfg.Sheet.TimeoutSeconds) * time.Second
	httpCfg.MaxRetries = cfg.Sheet.MaxRetries
	httpCfg.RateLimit = cfg.Sheet.RateLimitPerSec
	httpClient := sheet.NewRetryingHTTPClient(httpCfg, appLog)

	source := sheet.NewCSVSource(httpClient, url, cfg.Sheet.AuthToken, true, appLog)
	return source, func() { httpClient.Close() }, nil
}

func runAnalysis(ctx context.Context) error {
	source, cleanup, err := buildSource()
	if err != nil {
		return err
	}
	defer cleanup()

	eng := engine.New(engine.Params{
		CoV:        cfg.Engine.CoV,
		MinEdge:    cfg.Engine.MinEdge,
		BetEdge:    cfg.Engine.BetEdge,
		HammerEdge: cfg.Engine.HammerEdge,
	})
	analyzer := service.NewAnalyzer(source, eng, cfg.Matchups, appLog)

	var result *service.AnalysisResult
	if multiplier > 0 {
		result, err = analyzer.AnalyzeWithMultiplier(ctx, multiplier)
	} else {
		result, err = analyzer.Analyze(ctx, matchup)
	}
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	printResult(result)
	return nil
}

func printResult(result *service.AnalysisResult) {
	fmt.Printf("Scanned %d rows, matched %d stat rows (multiplier %.2f)\n\n",
		result.RowsScanned, result.RowsMatched, result.Multiplier)

	if len(result.Opportunities) == 0 {
		fmt.Println("No edges found above the inclusion threshold.")
		return
	}

	for i, opp := range result.Opportunities {
		fmt.Printf("%2d. %s\n", i+1, opp)
	}
}
