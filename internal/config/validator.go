package config

import (
	"fmt"
	"slices"
	"strings"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "monitor.tick_interval_seconds")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

var validLogLevels = []string{"DEBUG", "INFO", "WARN", "ERROR"}

// Validate checks the configuration for invalid values and returns all
// failures found.
func (c *Config) Validate() []ValidationError {
	var errs []ValidationError

	if c.Session.GraceDelayMs < 0 {
		errs = append(errs, ValidationError{
			Field:   "session.grace_delay_ms",
			Value:   c.Session.GraceDelayMs,
			Message: "must not be negative",
		})
	}
	if c.Session.DefaultQuestionCount < 1 {
		errs = append(errs, ValidationError{
			Field:   "session.default_question_count",
			Value:   c.Session.DefaultQuestionCount,
			Message: "must be at least 1",
		})
	}
	if c.Session.DefaultTimeLimitSeconds < 0 {
		errs = append(errs, ValidationError{
			Field:   "session.default_time_limit_seconds",
			Value:   c.Session.DefaultTimeLimitSeconds,
			Message: "must not be negative",
		})
	}
	if c.Monitor.TickIntervalSeconds < 1 {
		errs = append(errs, ValidationError{
			Field:   "monitor.tick_interval_seconds",
			Value:   c.Monitor.TickIntervalSeconds,
			Message: "must be at least 1",
		})
	}
	if c.Monitor.InactivityTimeoutMinutes < 1 {
		errs = append(errs, ValidationError{
			Field:   "monitor.inactivity_timeout_minutes",
			Value:   c.Monitor.InactivityTimeoutMinutes,
			Message: "must be at least 1",
		})
	}
	if !slices.Contains(validLogLevels, strings.ToUpper(c.Logging.Level)) {
		errs = append(errs, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of %s", strings.Join(validLogLevels, ", ")),
		})
	}

	return errs
}
