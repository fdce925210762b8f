package config

import (
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

// Validate checks the configuration for required fields and valid values.
func (c *Config) Validate() error {
	var errors ValidationErrors

	errors = append(errors, c.validateSource()...)

	if c.Table == "" {
		errors = append(errors, ValidationError{
			Field:   "table",
			Message: "table is required",
		})
	}

	errors = append(errors, c.validateAnalysis()...)
	errors = append(errors, c.validateReport()...)
	errors = append(errors, c.validateLogging()...)

	if len(errors) > 0 {
		return errors
	}
	return nil
}

func (c *Config) validateSource() ValidationErrors {
	var errors ValidationErrors
	src := &c.Source

	switch src.Driver {
	case "sqlite", "":
		if src.Path == "" {
			errors = append(errors, ValidationError{
				Field:   "source.path",
				Message: "path is required for the sqlite driver",
			})
		}
		return errors
	case "mysql", "postgres":
	default:
		return append(errors, ValidationError{
			Field:   "source.driver",
			Message: "driver must be 'sqlite', 'mysql', or 'postgres'",
		})
	}

	if src.Host == "" {
		errors = append(errors, ValidationError{
			Field:   "source.host",
			Message: "host is required",
		})
	}

	if src.Port <= 0 || src.Port > 65535 {
		errors = append(errors, ValidationError{
			Field:   "source.port",
			Message: "port must be between 1 and 65535",
		})
	}

	if src.User == "" {
		errors = append(errors, ValidationError{
			Field:   "source.user",
			Message: "user is required",
		})
	}

	if src.Database == "" {
		errors = append(errors, ValidationError{
			Field:   "source.database",
			Message: "database name is required",
		})
	}

	validTLS := map[string]bool{"disable": true, "preferred": true, "required": true, "": true}
	if src.Driver == "mysql" && !validTLS[src.TLS] {
		errors = append(errors, ValidationError{
			Field:   "source.tls",
			Message: "tls must be 'disable', 'preferred', or 'required'",
		})
	}

	if src.MaxConnections < 0 {
		errors = append(errors, ValidationError{
			Field:   "source.max_connections",
			Message: "max_connections cannot be negative",
		})
	}

	return errors
}

func (c *Config) validateAnalysis() ValidationErrors {
	var errors ValidationErrors

	if c.Analysis.MissingThreshold < 0 || c.Analysis.MissingThreshold > 100 {
		errors = append(errors, ValidationError{
			Field:   "analysis.missing_threshold",
			Message: "missing_threshold must be between 0 and 100",
		})
	}

	if c.Analysis.OutlierThreshold <= 0 {
		errors = append(errors, ValidationError{
			Field:   "analysis.outlier_threshold",
			Message: "outlier_threshold must be positive",
		})
	}

	if c.Analysis.IDColumn == "" {
		errors = append(errors, ValidationError{
			Field:   "analysis.id_column",
			Message: "id_column is required",
		})
	}

	return errors
}

func (c *Config) validateReport() ValidationErrors {
	var errors ValidationErrors

	if c.Report.Path == "" {
		errors = append(errors, ValidationError{
			Field:   "report.path",
			Message: "path is required",
		})
	}

	if c.Report.DetailedLimit < 0 {
		errors = append(errors, ValidationError{
			Field:   "report.detailed_limit",
			Message: "detailed_limit cannot be negative",
		})
	}

	if c.Report.DuplicateLimit < 0 {
		errors = append(errors, ValidationError{
			Field:   "report.duplicate_limit",
			Message: "duplicate_limit cannot be negative",
		})
	}

	if c.Report.Schedule != "" {
		if _, err := cron.ParseStandard(c.Report.Schedule); err != nil {
			errors = append(errors, ValidationError{
				Field:   "report.schedule",
				Message: fmt.Sprintf("invalid schedule: %v", err),
			})
		}
	}

	return errors
}

func (c *Config) validateLogging() ValidationErrors {
	var errors ValidationErrors

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true, "": true}
	if !validLevels[c.Logging.Level] {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Message: "level must be 'debug', 'info', 'warn', or 'error'",
		})
	}

	validFormats := map[string]bool{"json": true, "text": true, "": true}
	if !validFormats[c.Logging.Format] {
		errors = append(errors, ValidationError{
			Field:   "logging.format",
			Message: "format must be 'json' or 'text'",
		})
	}

	return errors
}
