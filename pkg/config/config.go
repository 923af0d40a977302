// Package config loads door simulator configuration from YAML files.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults.
const (
	// DefaultTimeout matches the classic four-unit door.
	DefaultTimeout = 4 * time.Second

	// DefaultLogLevel is the operational log level.
	DefaultLogLevel = "info"
)

// ErrInvalidConfig is wrapped by validation failures.
var ErrInvalidConfig = errors.New("invalid configuration")

// DoorConfig configures the simulated door.
type DoorConfig struct {
	// ID names the door in events. Generated if empty.
	ID string `yaml:"id"`

	// Timeout is how long the door may stay open.
	Timeout time.Duration `yaml:"timeout"`
}

// Config is the top-level configuration.
type Config struct {
	Door DoorConfig `yaml:"door"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// EventLog is the CBOR event log path. Empty disables it.
	EventLog string `yaml:"event_log"`

	// AutoLock wires the timer to lock the door on timeout.
	AutoLock bool `yaml:"auto_lock"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Door:     DoorConfig{Timeout: DefaultTimeout},
		LogLevel: DefaultLogLevel,
	}
}

// LoadError reports a configuration file that could not be used.
type LoadError struct {
	// File is the path to the file that failed to load.
	File string

	// Message describes the error.
	Message string

	// Cause is the underlying error, if any.
	Cause error
}

func (e *LoadError) Error() string {
	msg := e.Message
	if e.File != "" {
		msg = e.File + ": " + msg
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// Parse parses YAML on top of the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, &LoadError{Message: "failed to parse YAML", Cause: err}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, &LoadError{Message: "validation failed", Cause: err}
	}
	return cfg, nil
}

// Load reads and parses a configuration file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, &LoadError{File: path, Message: "failed to read file", Cause: err}
	}

	cfg, err := Parse(data)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.File = path
		}
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for consistency.
func (c Config) Validate() error {
	if c.Door.Timeout < 0 {
		return fmt.Errorf("%w: door timeout must not be negative, got %v", ErrInvalidConfig, c.Door.Timeout)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// ParseLevel converts a level name to an slog.Level.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("%w: unknown log level %q (valid: debug, info, warn, error)", ErrInvalidConfig, level)
	}
}
