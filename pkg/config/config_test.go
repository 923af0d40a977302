package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, DefaultTimeout, cfg.Door.Timeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.AutoLock)
	assert.NoError(t, cfg.Validate())
}

func TestParseFull(t *testing.T) {
	cfg, err := Parse([]byte(`
door:
  id: front
  timeout: 1500ms
log_level: debug
event_log: /tmp/door.dlog
auto_lock: true
`))
	require.NoError(t, err)

	assert.Equal(t, "front", cfg.Door.ID)
	assert.Equal(t, 1500*time.Millisecond, cfg.Door.Timeout)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/tmp/door.dlog", cfg.EventLog)
	assert.True(t, cfg.AutoLock)
}

func TestParseKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte("auto_lock: true\n"))
	require.NoError(t, err)

	assert.Equal(t, DefaultTimeout, cfg.Door.Timeout)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
}

func TestParseRejectsNegativeTimeout(t *testing.T) {
	_, err := Parse([]byte("door:\n  timeout: -1s\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestParseRejectsUnknownLevel(t *testing.T) {
	_, err := Parse([]byte("log_level: chatty\n"))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestParseInvalidYAML(t *testing.T) {
	_, err := Parse([]byte("door: [unterminated"))
	require.Error(t, err)

	var le *LoadError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, "failed to parse YAML", le.Message)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "door.yaml")
	require.NoError(t, os.WriteFile(path, []byte("door:\n  timeout: 4s\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4*time.Second, cfg.Door.Timeout)
}

func TestLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.yaml")

	_, err := Load(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), path)
}

func TestLoadReportsFileOnValidationError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: loud\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)

	var le *LoadError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, path, le.File)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
		{"warn", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"trace", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
