// Package config provides configuration management for the prop finder.
package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// CustomValidator wraps the validator with custom validation rules
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new validator with custom validation functions
func NewValidator() *CustomValidator {
	v := validator.New()

	v.RegisterValidation("environment", validateEnvironment)
	v.RegisterValidation("loglevel", validateLogLevel)

	return &CustomValidator{validator: v}
}

// Validate validates the entire configuration
func Validate(cfg *Config) error {
	cv := NewValidator()
	return cv.Validate(cfg)
}

// Validate validates the configuration using registered validation rules
func (cv *CustomValidator) Validate(cfg *Config) error {
	err := cv.validator.Struct(cfg)
	if err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			return formatValidationErrors(validationErrors)
		}
		return fmt.Errorf("validation failed: %w", err)
	}

	return validateCrossField(cfg)
}

// validateEnvironment validates the environment field
func validateEnvironment(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "development", "staging", "production":
		return true
	default:
		return false
	}
}

// validateLogLevel validates the log level field
func validateLogLevel(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

// validateCrossField applies validations that span multiple fields
func validateCrossField(cfg *Config) error {
	if cfg.Engine.BetEdge <= cfg.Engine.MinEdge {
		return fmt.Errorf("engine.bet_edge (%v) must exceed engine.min_edge (%v)",
			cfg.Engine.BetEdge, cfg.Engine.MinEdge)
	}
	if cfg.Engine.HammerEdge <= cfg.Engine.BetEdge {
		return fmt.Errorf("engine.hammer_edge (%v) must exceed engine.bet_edge (%v)",
			cfg.Engine.HammerEdge, cfg.Engine.BetEdge)
	}

	if cfg.Sheet.Enabled && cfg.Sheet.URL == "" {
		return fmt.Errorf("sheet.url is required when the sheet source is enabled")
	}

	if cfg.Database.Enabled {
		if cfg.Database.Host == "" || cfg.Database.Name == "" || cfg.Database.User == "" {
			return fmt.Errorf("database.host, database.name and database.user are required when the database is enabled")
		}
		if cfg.Database.Port == 0 {
			return fmt.Errorf("database.port is required when the database is enabled")
		}
	}

	return nil
}

func formatValidationErrors(errs validator.ValidationErrors) error {
	msg := "configuration validation failed:"
	for _, e := range errs {
		msg += fmt.Sprintf("\n  - field %q failed on the %q rule", e.Namespace(), e.Tag())
	}
	return fmt.Errorf("%s", msg)
}
