// Package logging builds the zap logger used by contractdesk. The terminal
// belongs to the TUI, so logs go to a file.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options selects the destination and level.
type Options struct {
	// Path is the log file. Empty disables logging.
	Path string
	// Level is a zap level name ("debug", "info", "warn", "error").
	Level string
	// Verbose forces debug level.
	Verbose bool
}

// New returns a JSON file logger, or a no-op logger when no path is set.
func New(opts Options) (*zap.Logger, error) {
	path := strings.TrimSpace(opts.Path)
	if path == "" {
		return zap.NewNop(), nil
	}

	level, err := parseLevel(opts.Level)
	if err != nil {
		return nil, err
	}
	if opts.Verbose {
		level = zapcore.DebugLevel
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(level)
	config.OutputPaths = []string{path}
	config.ErrorOutputPaths = []string{path}
	config.EncoderConfig.TimeKey = "time"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger.Named("contractdesk"), nil
}

func parseLevel(name string) (zapcore.Level, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return zapcore.InfoLevel, nil
	}
	level, err := zapcore.ParseLevel(name)
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("parse log level: %w", err)
	}
	return level, nil
}
