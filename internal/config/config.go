// Package config provides configuration management for the prop finder.
package config

import (
	"fmt"
	"time"
)

// Config represents the complete application configuration
type Config struct {
	App      AppConfig      `mapstructure:"app" validate:"required"`
	Sheet    SheetConfig    `mapstructure:"sheet" validate:"required"`
	Engine   EngineConfig   `mapstructure:"engine" validate:"required"`
	Matchups MatchupConfig  `mapstructure:"matchups" validate:"required"`
	Database DatabaseConfig `mapstructure:"database"`
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Metrics  MetricsConfig  `mapstructure:"metrics" validate:"required"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// SheetConfig represents the stat-sheet source configuration
type SheetConfig struct {
	URL             string  `mapstructure:"url" validate:"omitempty,url"`
	AuthToken       string  `mapstructure:"auth_token"`
	Enabled         bool    `mapstructure:"enabled"`
	CacheTTLSeconds int     `mapstructure:"cache_ttl_seconds" validate:"required,gt=0"`
	RefreshCron     string  `mapstructure:"refresh_cron" validate:"required"`
	TimeoutSeconds  int     `mapstructure:"timeout_seconds" validate:"required,gt=0"`
	MaxRetries      int     `mapstructure:"max_retries" validate:"gte=0"`
	RateLimitPerSec float64 `mapstructure:"rate_limit_per_sec" validate:"required,gt=0"`
	PreviewRows     int     `mapstructure:"preview_rows" validate:"gte=0"`
}

// EngineConfig represents edge-engine tuning. The defaults mirror the
// spreadsheet tool this replaces; none of the constants have a derivation,
// so they are configuration rather than invariants.
type EngineConfig struct {
	CoV        float64 `mapstructure:"cov" validate:"required,gt=0,lt=1"`
	MinEdge    float64 `mapstructure:"min_edge" validate:"gte=0"`
	BetEdge    float64 `mapstructure:"bet_edge" validate:"required,gt=0"`
	HammerEdge float64 `mapstructure:"hammer_edge" validate:"required,gt=0"`
}

// MatchupConfig maps opponent-strength categories to projection multipliers.
// These are caller-side knobs; the engine accepts any positive multiplier.
type MatchupConfig struct {
	Neutral float64 `mapstructure:"neutral" validate:"required,gt=0"`
	Soft    float64 `mapstructure:"soft" validate:"required,gt=0"`
	Tough   float64 `mapstructure:"tough" validate:"required,gt=0"`
}

// MultiplierFor resolves a matchup category name to its multiplier. Unknown
// categories fall back to neutral.
func (m MatchupConfig) MultiplierFor(category string) float64 {
	switch category {
	case "soft":
		return m.Soft
	case "tough":
		return m.Tough
	default:
		return m.Neutral
	}
}

// DatabaseConfig represents ticket-store connection configuration. The
// database is optional; with Enabled false tickets live in memory for the
// session only.
type DatabaseConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	Name           string `mapstructure:"name"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	SSLMode        string `mapstructure:"ssl_mode" validate:"omitempty,oneof=disable require verify-full"`
	MaxConnections int    `mapstructure:"max_connections" validate:"omitempty,gt=0"`
}

// ServerConfig represents the dashboard API server configuration
type ServerConfig struct {
	Port                int `mapstructure:"port" validate:"required,min=1,max=65535"`
	ReadTimeoutSeconds  int `mapstructure:"read_timeout_seconds" validate:"required,gt=0"`
	WriteTimeoutSeconds int `mapstructure:"write_timeout_seconds" validate:"required,gt=0"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path" validate:"required"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// CacheTTL returns the sheet cache TTL as a duration
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Sheet.CacheTTLSeconds) * time.Second
}

// GetDatabaseDSN returns a PostgreSQL DSN string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}
