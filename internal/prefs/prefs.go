// Package prefs persists contractdesk user preferences.
// Preferences are stored in ~/.config/contractdesk/prefs.toml.
package prefs

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Prefs holds user preferences that survive restarts.
type Prefs struct {
	Theme          string `toml:"theme"`
	FiltersVisible bool   `toml:"filters_visible"`
}

const (
	defaultPrefsPath = "~/.config/contractdesk/prefs.toml"
	defaultTheme     = "Nightfox"
)

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// Default returns the preferences used on first run.
func Default() Prefs {
	return Prefs{Theme: defaultTheme, FiltersVisible: true}
}

// Load reads preferences from the given path, falling back to defaults if
// missing or unreadable. An unresolvable path returns defaults and an error.
func Load(path string) (Prefs, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Default(), fmt.Errorf("resolve prefs path: %w", err)
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Default(), nil // Graceful degradation
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Default(), nil // Graceful degradation
	}

	prefs := Default()
	if err := toml.Unmarshal(bytes, &prefs); err != nil {
		return Default(), nil // Graceful degradation
	}

	prefs.Theme = strings.TrimSpace(prefs.Theme)
	if prefs.Theme == "" {
		prefs.Theme = defaultTheme
	}

	return prefs, nil
}

// Save writes preferences to the given path, creating directories as needed.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	bytes, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	if err := os.WriteFile(resolved, bytes, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}

	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		path = defaultPrefsPath
	}
	trimmed := strings.TrimSpace(path)
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
