package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvAPIURL, EnvLogLevel, EnvLogFile} {
		t.Setenv(k, "")
	}
}

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	clearEnv(t)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIURL != defaultAPIURL {
		t.Fatalf("APIURL = %q, want %q", cfg.APIURL, defaultAPIURL)
	}
	if cfg.Timeout != 10*time.Second {
		t.Fatalf("Timeout = %v, want 10s", cfg.Timeout)
	}
	wantLog, err := expandPath(defaultLogFile)
	if err != nil {
		t.Fatalf("expandPath(defaultLogFile) returned error: %v", err)
	}
	if cfg.LogFile != wantLog {
		t.Fatalf("LogFile = %q, want %q", cfg.LogFile, wantLog)
	}
	if cfg.Locale != "ru-RU" || cfg.Currency != "₽" || cfg.CompletionKeyword != "заверш" {
		t.Fatalf("unexpected locale defaults: %#v", cfg)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
api_url = "  https://contracts.example.com/api/v1/contracts/  "
timeout_seconds = 3
log_file = "  ~/logs/desk.log  "
log_level = " DEBUG "
locale = "en-US"
currency = "$"
completion_keyword = "done"
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIURL != "https://contracts.example.com/api/v1/contracts/" {
		t.Fatalf("APIURL = %q", cfg.APIURL)
	}
	if cfg.Timeout != 3*time.Second {
		t.Fatalf("Timeout = %v, want 3s", cfg.Timeout)
	}
	if !strings.HasPrefix(cfg.LogFile, home) {
		t.Fatalf("LogFile = %q, want it under HOME %q", cfg.LogFile, home)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("LogLevel = %q, want %q", cfg.LogLevel, "debug")
	}
	if cfg.Locale != "en-US" || cfg.Currency != "$" || cfg.CompletionKeyword != "done" {
		t.Fatalf("unexpected locale settings: %#v", cfg)
	}
}

func TestLoad_EmptyValuesUseDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
api_url = "   "
completion_keyword = ""
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIURL != defaultAPIURL {
		t.Fatalf("APIURL = %q, want %q", cfg.APIURL, defaultAPIURL)
	}
	if cfg.CompletionKeyword != defaultCompletionKeyword {
		t.Fatalf("CompletionKeyword = %q, want %q", cfg.CompletionKeyword, defaultCompletionKeyword)
	}
}

func TestLoad_RejectsBadInput(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	clearEnv(t)

	cases := map[string]string{
		"malformed": "api_url = [",
		"negative":  "timeout_seconds = -1",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
				t.Fatalf("WriteFile: %v", err)
			}
			if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "parse config") {
				t.Fatalf("Load error = %v, want parse config error", err)
			}
		})
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(EnvAPIURL, "http://env.example/api/v1/contracts/")
	t.Setenv(EnvLogLevel, "WARN")
	t.Setenv(EnvLogFile, "~/env.log")

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`api_url = "http://file.example/"`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIURL != "http://env.example/api/v1/contracts/" {
		t.Fatalf("APIURL = %q, want env value", cfg.APIURL)
	}
	if cfg.LogLevel != "warn" {
		t.Fatalf("LogLevel = %q, want warn", cfg.LogLevel)
	}
	if cfg.LogFile != filepath.Join(home, "env.log") {
		t.Fatalf("LogFile = %q, want %q", cfg.LogFile, filepath.Join(home, "env.log"))
	}
}

func TestLoadDotEnv_DoesNotOverrideExisting(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	if err := os.WriteFile(envFile, []byte("CONTRACTDESK_API_URL=http://dotenv/\nCONTRACTDESK_LOG_LEVEL=debug\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	t.Setenv(EnvAPIURL, "http://already-set/")
	t.Setenv(EnvLogLevel, "")
	os.Unsetenv(EnvLogLevel)

	if err := LoadDotEnv(filepath.Join(dir, "missing.env"), envFile); err != nil {
		t.Fatalf("LoadDotEnv returned error: %v", err)
	}
	if got := os.Getenv(EnvAPIURL); got != "http://already-set/" {
		t.Fatalf("%s = %q, want existing value kept", EnvAPIURL, got)
	}
	if got := os.Getenv(EnvLogLevel); got != "debug" {
		t.Fatalf("%s = %q, want value from .env", EnvLogLevel, got)
	}
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := ExpandPath("~/x/y")
	if err != nil {
		t.Fatalf("ExpandPath returned error: %v", err)
	}
	if got != filepath.Join(home, "x", "y") {
		t.Fatalf("ExpandPath = %q, want %q", got, filepath.Join(home, "x", "y"))
	}
	if _, err := ExpandPath("  "); err == nil {
		t.Fatalf("ExpandPath on blank path should fail")
	}
}
