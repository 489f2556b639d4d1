package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewLogger_WritesToFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "logs", "prepdeck.log")

	logger, err := NewLogger(path, LevelInfo)
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}

	logger.Info("session created", "session_id", "sess-1")
	if err := logger.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(string(data))), &entry); err != nil {
		t.Fatalf("Log entry is not valid JSON: %v", err)
	}

	if entry["msg"] != "session created" {
		t.Errorf("Expected msg 'session created', got %v", entry["msg"])
	}
	if entry["session_id"] != "sess-1" {
		t.Errorf("Expected session_id 'sess-1', got %v", entry["session_id"])
	}
}

func TestNewLogger_LevelFiltering(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prepdeck.log")

	logger, err := NewLogger(path, LevelWarn)
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	if err := logger.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}

	content := string(data)
	if strings.Contains(content, "debug message") || strings.Contains(content, "info message") {
		t.Error("Messages below WARN should be filtered")
	}
	if !strings.Contains(content, "warn message") {
		t.Error("WARN message should be logged")
	}
}

func TestParseLevel_Unrecognized(t *testing.T) {
	if parseLevel("bogus") != parseLevel(LevelInfo) {
		t.Error("Unrecognized level should default to INFO")
	}
}

func TestLogger_WithSession(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prepdeck.log")

	logger, err := NewLogger(path, LevelInfo)
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}

	child := logger.WithSession("sess-9").WithOwner("u1")
	child.Info("answer submitted")
	if err := logger.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(string(data))), &entry); err != nil {
		t.Fatalf("Log entry is not valid JSON: %v", err)
	}
	if entry["session_id"] != "sess-9" {
		t.Errorf("Expected session_id 'sess-9', got %v", entry["session_id"])
	}
	if entry["owner_id"] != "u1" {
		t.Errorf("Expected owner_id 'u1', got %v", entry["owner_id"])
	}
}

func TestNopLogger(t *testing.T) {
	logger := NopLogger()

	// Must not panic and must tolerate Close.
	logger.Info("discarded")
	if err := logger.Close(); err != nil {
		t.Errorf("Close on NopLogger should not fail: %v", err)
	}
}
