package app

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/five82/contractdesk/internal/config"
	"github.com/five82/contractdesk/internal/contracts"
	"github.com/five82/contractdesk/internal/logging"
	"github.com/five82/contractdesk/internal/prefs"
	"github.com/five82/contractdesk/internal/ui"
)

// Options configure a contractdesk run.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/contractdesk/prefs.toml
	APIURL     string // overrides config and environment when set
	EnvFile    string // optional .env seeded before config is read
	Verbose    bool
}

// Env is everything a command needs once startup succeeded.
type Env struct {
	Config    config.Config
	Logger    *zap.Logger
	Client    *contracts.Client
	Formatter contracts.Formatter
}

// Setup loads configuration, opens the log file and builds the API client.
func Setup(opts Options) (*Env, error) {
	if err := config.LoadDotEnv(opts.EnvFile); err != nil {
		return nil, err
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if v := strings.TrimSpace(opts.APIURL); v != "" {
		cfg.APIURL = v
	}

	logger, err := logging.New(logging.Options{
		Path:    cfg.LogFile,
		Level:   cfg.LogLevel,
		Verbose: opts.Verbose,
	})
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	client, err := contracts.NewClient(cfg.APIURL,
		contracts.WithTimeout(cfg.Timeout),
		contracts.WithLogger(logger),
	)
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("init contracts client: %w", err)
	}

	logger.Debug("startup complete",
		zap.String("api_url", client.BaseURL()),
		zap.Duration("timeout", cfg.Timeout),
	)

	return &Env{
		Config:    cfg,
		Logger:    logger,
		Client:    client,
		Formatter: contracts.NewFormatter(cfg.Locale, cfg.Currency),
	}, nil
}

// Close flushes buffered log entries.
func (e *Env) Close() {
	if e != nil && e.Logger != nil {
		_ = e.Logger.Sync()
	}
}

// Run boots the contractdesk TUI until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	env, err := Setup(opts)
	if err != nil {
		return err
	}
	defer env.Close()

	userPrefs := loadPrefs(opts.PrefsPath, env.Logger)

	return ui.Run(ui.Options{
		Context:           ctx,
		Service:           env.Client,
		Logger:            env.Logger,
		Formatter:         env.Formatter,
		CompletionKeyword: env.Config.CompletionKeyword,
		APIURL:            env.Client.BaseURL(),
		ThemeName:         userPrefs.Theme,
		FiltersVisible:    userPrefs.FiltersVisible,
		PrefsPath:         opts.PrefsPath,
	})
}

// loadPrefs returns the saved preferences, or defaults when they cannot be
// located.
func loadPrefs(path string, logger *zap.Logger) prefs.Prefs {
	p, err := prefs.Load(path)
	if err != nil {
		logger.Debug("load prefs failed, using defaults", zap.Error(err))
		return prefs.Default()
	}
	return p
}
