package config

import (
	"strings"
	"testing"
)

func TestDefault_IsValid(t *testing.T) {
	if errs := Default().Validate(); len(errs) != 0 {
		t.Errorf("Default config should validate, got: %v", ValidationErrors(errs))
	}
}

func TestValidate_CollectsAllFailures(t *testing.T) {
	cfg := Default()
	cfg.Session.GraceDelayMs = -1
	cfg.Monitor.TickIntervalSeconds = 0
	cfg.Logging.Level = "LOUD"

	errs := cfg.Validate()
	if len(errs) != 3 {
		t.Fatalf("Expected 3 validation errors, got %d: %v", len(errs), ValidationErrors(errs))
	}

	fields := make(map[string]bool)
	for _, e := range errs {
		fields[e.Field] = true
	}
	for _, want := range []string{"session.grace_delay_ms", "monitor.tick_interval_seconds", "logging.level"} {
		if !fields[want] {
			t.Errorf("Expected a validation error for %s", want)
		}
	}
}

func TestValidate_LogLevelCaseInsensitive(t *testing.T) {
	cfg := Default()
	cfg.Logging.Level = "debug"

	if errs := cfg.Validate(); len(errs) != 0 {
		t.Errorf("Lowercase log level should validate, got: %v", ValidationErrors(errs))
	}
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "a", Value: 1, Message: "bad"},
		{Field: "b", Value: 2, Message: "worse"},
	}

	msg := errs.Error()
	if !strings.Contains(msg, "2 validation errors") {
		t.Errorf("Expected a count header, got %q", msg)
	}
	if !strings.Contains(msg, "a: bad (got: 1)") {
		t.Errorf("Expected individual errors listed, got %q", msg)
	}
}

func TestStoragePath_Default(t *testing.T) {
	cfg := Default()
	if !strings.HasSuffix(cfg.StoragePath(), "sessions.db") {
		t.Errorf("Default storage path should end with sessions.db, got %q", cfg.StoragePath())
	}

	cfg.Storage.Path = "/tmp/custom.db"
	if cfg.StoragePath() != "/tmp/custom.db" {
		t.Errorf("Explicit storage path should win, got %q", cfg.StoragePath())
	}
}
