package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the settings contractdesk reads at startup.
type Config struct {
	APIURL            string
	Timeout           time.Duration
	LogFile           string
	LogLevel          string
	Locale            string
	Currency          string
	CompletionKeyword string
}

const (
	defaultConfigPath        = "~/.config/contractdesk/config.toml"
	defaultAPIURL            = "http://localhost/api/v1/contracts/"
	defaultTimeoutSeconds    = 10
	defaultLogFile           = "~/.local/state/contractdesk/contractdesk.log"
	defaultLogLevel          = "info"
	defaultLocale            = "ru-RU"
	defaultCurrency          = "₽"
	defaultCompletionKeyword = "заверш"
)

// Environment variables that take precedence over the file.
const (
	EnvAPIURL   = "CONTRACTDESK_API_URL"
	EnvLogLevel = "CONTRACTDESK_LOG_LEVEL"
	EnvLogFile  = "CONTRACTDESK_LOG_FILE"
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		APIURL:            defaultAPIURL,
		Timeout:           defaultTimeoutSeconds * time.Second,
		LogFile:           mustExpand(defaultLogFile),
		LogLevel:          defaultLogLevel,
		Locale:            defaultLocale,
		Currency:          defaultCurrency,
		CompletionKeyword: defaultCompletionKeyword,
	}
}

// LoadDotEnv seeds the process environment from the given .env files.
// Variables already set win, and missing files are skipped.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if strings.TrimSpace(p) == "" {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load env file %s: %w", p, err)
		}
	}
	return nil
}

// Load parses the config file, falling back to defaults when it is missing,
// then applies environment overrides.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return applyEnv(cfg), nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIURL            string `toml:"api_url"`
		TimeoutSeconds    int    `toml:"timeout_seconds"`
		LogFile           string `toml:"log_file"`
		LogLevel          string `toml:"log_level"`
		Locale            string `toml:"locale"`
		Currency          string `toml:"currency"`
		CompletionKeyword string `toml:"completion_keyword"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if raw.TimeoutSeconds < 0 {
		return Config{}, fmt.Errorf("parse config: timeout_seconds must be positive, got %d", raw.TimeoutSeconds)
	}
	if raw.TimeoutSeconds > 0 {
		cfg.Timeout = time.Duration(raw.TimeoutSeconds) * time.Second
	}

	cfg.APIURL = orDefault(raw.APIURL, defaultAPIURL)
	cfg.LogFile = mustExpand(orDefault(raw.LogFile, defaultLogFile))
	cfg.LogLevel = strings.ToLower(orDefault(raw.LogLevel, defaultLogLevel))
	cfg.Locale = orDefault(raw.Locale, defaultLocale)
	cfg.Currency = orDefault(raw.Currency, defaultCurrency)
	cfg.CompletionKeyword = orDefault(raw.CompletionKeyword, defaultCompletionKeyword)

	return applyEnv(cfg), nil
}

func applyEnv(cfg Config) Config {
	if v := strings.TrimSpace(os.Getenv(EnvAPIURL)); v != "" {
		cfg.APIURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.LogFile = mustExpand(v)
	}
	return cfg
}

func orDefault(value, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

// ExpandPath resolves a leading ~ and makes path absolute.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
