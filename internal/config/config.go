package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config represents the complete prepdeck configuration
type Config struct {
	Session SessionConfig `mapstructure:"session"`
	Monitor MonitorConfig `mapstructure:"monitor"`
	Storage StorageConfig `mapstructure:"storage"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// SessionConfig controls session lifecycle behavior
type SessionConfig struct {
	// GraceDelayMs is how long a terminal session stays readable in the
	// live slot before it is cleared
	GraceDelayMs int `mapstructure:"grace_delay_ms"`
	// DefaultQuestionCount is the number of questions drawn for a new session
	DefaultQuestionCount int `mapstructure:"default_question_count"`
	// DefaultTimeLimitSeconds is the total duration of timed-mode sessions
	DefaultTimeLimitSeconds int `mapstructure:"default_time_limit_seconds"`
}

// MonitorConfig controls the abandonment and timer monitor
type MonitorConfig struct {
	// TickIntervalSeconds is how often the periodic check runs
	TickIntervalSeconds int `mapstructure:"tick_interval_seconds"`
	// InactivityTimeoutMinutes is the number of minutes without activity
	// before an active session is abandoned (and the recovery threshold
	// for persisted snapshots)
	InactivityTimeoutMinutes int `mapstructure:"inactivity_timeout_minutes"`
}

// StorageConfig controls session snapshot persistence
type StorageConfig struct {
	// Path is the location of the snapshot database file.
	// Empty means {data dir}/sessions.db
	Path string `mapstructure:"path"`
}

// LoggingConfig controls structured logging
type LoggingConfig struct {
	// Level is one of DEBUG, INFO, WARN, ERROR
	Level string `mapstructure:"level"`
	// File is the log file path. Empty means stderr
	File string `mapstructure:"file"`
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Session: SessionConfig{
			GraceDelayMs:            3000,
			DefaultQuestionCount:    10,
			DefaultTimeLimitSeconds: 600,
		},
		Monitor: MonitorConfig{
			TickIntervalSeconds:      5,
			InactivityTimeoutMinutes: 30, // 30 minutes of no activity
		},
		Storage: StorageConfig{
			Path: "",
		},
		Logging: LoggingConfig{
			Level: "INFO",
			File:  "",
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	// Session defaults
	viper.SetDefault("session.grace_delay_ms", defaults.Session.GraceDelayMs)
	viper.SetDefault("session.default_question_count", defaults.Session.DefaultQuestionCount)
	viper.SetDefault("session.default_time_limit_seconds", defaults.Session.DefaultTimeLimitSeconds)

	// Monitor defaults
	viper.SetDefault("monitor.tick_interval_seconds", defaults.Monitor.TickIntervalSeconds)
	viper.SetDefault("monitor.inactivity_timeout_minutes", defaults.Monitor.InactivityTimeoutMinutes)

	// Storage defaults
	viper.SetDefault("storage.path", defaults.Storage.Path)

	// Logging defaults
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.file", defaults.Logging.File)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "prepdeck")
	}
	// Fall back to ~/.config/prepdeck
	home, err := os.UserHomeDir()
	if err != nil {
		return ".prepdeck"
	}
	return filepath.Join(home, ".config", "prepdeck")
}

// DataDir returns the path to the user's data directory
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "prepdeck")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".prepdeck"
	}
	return filepath.Join(home, ".local", "share", "prepdeck")
}

// StoragePath resolves the snapshot database path, applying the default
// location when unset.
func (c *Config) StoragePath() string {
	if c.Storage.Path != "" {
		return c.Storage.Path
	}
	return filepath.Join(DataDir(), "sessions.db")
}
