package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew_EmptyPathIsNop(t *testing.T) {
	logger, err := New(Options{})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zap.ErrorLevel))
}

func TestNew_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "desk.log")

	logger, err := New(Options{Path: path, Level: "info"})
	require.NoError(t, err)
	logger.Debug("hidden")
	logger.Info("loaded contracts", zap.Int("count", 3))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, `"msg":"loaded contracts"`)
	assert.Contains(t, out, `"count":3`)
	assert.Contains(t, out, `"logger":"contractdesk"`)
	assert.NotContains(t, out, "hidden")
}

func TestNew_VerboseEnablesDebug(t *testing.T) {
	path := filepath.Join(t.TempDir(), "desk.log")

	logger, err := New(Options{Path: path, Level: "warn", Verbose: true})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zap.DebugLevel))
}

func TestNew_RejectsUnknownLevel(t *testing.T) {
	_, err := New(Options{Path: filepath.Join(t.TempDir(), "x.log"), Level: "loud"})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "parse log level"))
}
