package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/tsawler/docxedit/internal/config"
)

func TestNew_WritesLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.log")
	logger, err := New(config.LoggingConfig{Level: "info", File: path, Encoding: "json"}, false)
	require.NoError(t, err)

	logger.Named("tools").Info("document opened")
	logger.Debug("hidden")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"document opened"`)
	assert.Contains(t, string(data), `"logger":"tools"`)
	assert.NotContains(t, string(data), "hidden")
}

func TestNew_Verbose(t *testing.T) {
	logger, err := New(config.LoggingConfig{Level: "warn"}, true)
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))

	logger, err = New(config.LoggingConfig{Level: "warn"}, false)
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
}

func TestNew_BadLevel(t *testing.T) {
	_, err := New(config.LoggingConfig{Level: "loud"}, false)
	assert.Error(t, err)
}
