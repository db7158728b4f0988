package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew_FileOutputJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rtgo.log")

	logger, err := New(Config{Level: "debug", Format: "json", Output: path})
	require.NoError(t, err)

	logger.Debug("scenario evaluated", zap.String("regime", "mei"))
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	line := strings.TrimSpace(string(data))
	assert.Contains(t, line, `"msg":"scenario evaluated"`)
	assert.Contains(t, line, `"regime":"mei"`)
	assert.Contains(t, line, `"timestamp"`)
}

func TestNew_LevelFiltering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rtgo.log")

	logger, err := New(Config{Level: "not-a-level", Format: "json", Output: path})
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("shown")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), "shown")
}

func TestNew_BadPath(t *testing.T) {
	_, err := New(Config{Output: filepath.Join(t.TempDir(), "missing", "dir", "x.log")})
	assert.Error(t, err)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, "stderr", cfg.Output)
	assert.False(t, cfg.Development)
}

func TestEngineLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	el := NewEngineLogger(zap.New(core))

	el.Debugf("evaluating %d activities", 2)
	el.Infof("best scenario: %s", "MEI")
	el.Warnf("no eligible scenario")
	el.Errorf("failed: %v", "boom")

	entries := logs.All()
	require.Len(t, entries, 4)
	assert.Equal(t, "evaluating 2 activities", entries[0].Message)
	assert.Equal(t, zapcore.InfoLevel, entries[1].Level)
	assert.Equal(t, "failed: boom", entries[3].Message)

	assert.NotPanics(t, func() { NewEngineLogger(nil).Infof("discarded") })
}
