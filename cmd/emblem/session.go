package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"emblem/internal/config"
	"emblem/internal/driver"
	"emblem/internal/logging"
)

// session holds everything a command needs after flags and emblem.toml
// have been merged.
type session struct {
	ctx     context.Context
	logger  *log.Logger
	cfg     config.Config
	cfgPath string
	opts    driver.Options
	color   bool
	quiet   bool
	timings bool
}

func newSession(cmd *cobra.Command) (*session, error) {
	flags := cmd.Root().PersistentFlags()

	level, err := flags.GetString("log-level")
	if err != nil {
		return nil, fmt.Errorf("failed to get log-level flag: %w", err)
	}
	if !logging.ValidLevel(level) {
		return nil, fmt.Errorf("invalid --log-level %q (expected debug|info|warn|error)", level)
	}
	logger := logging.NewWithWriter(cmd.ErrOrStderr(), level)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logging.WithLogger(ctx, logger)

	cfg, cfgPath, err := loadConfig(flags.Lookup("config").Value.String())
	if err != nil {
		return nil, err
	}
	if cfgPath != "" {
		logger.Debug("config loaded", logging.FieldConfig, cfgPath)
	}

	s := &session{ctx: ctx, logger: logger, cfg: cfg, cfgPath: cfgPath}
	s.opts = driver.OptionsFromConfig(cfg)

	if s.quiet, err = flags.GetBool("quiet"); err != nil {
		return nil, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if s.timings, err = flags.GetBool("timings"); err != nil {
		return nil, fmt.Errorf("failed to get timings flag: %w", err)
	}
	s.opts.Timings = s.timings
	if s.opts.MaxDiagnostics, err = flags.GetInt("max-diagnostics"); err != nil {
		return nil, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if flags.Changed("fatal-warnings") {
		if s.opts.FatalWarnings, err = flags.GetBool("fatal-warnings"); err != nil {
			return nil, fmt.Errorf("failed to get fatal-warnings flag: %w", err)
		}
	}

	mode := cfg.Output.Color
	if flags.Changed("color") {
		if mode, err = config.ParseColorMode(flags.Lookup("color").Value.String()); err != nil {
			return nil, err
		}
	}
	s.color = resolveColor(mode, cmd.ErrOrStderr())

	noCache, err := flags.GetBool("no-cache")
	if err != nil {
		return nil, fmt.Errorf("failed to get no-cache flag: %w", err)
	}
	if cfg.Cache.Enabled && !noCache {
		cache, cacheErr := driver.OpenDiskCache("emblem", cfg.Cache.Dir)
		if cacheErr != nil {
			// кэш не обязателен
			logger.Warn("cache disabled", logging.FieldError, cacheErr)
		} else {
			s.opts.Cache = cache
			logger.Debug("cache opened", logging.FieldCacheDir, cache.Dir())
		}
	}
	return s, nil
}

func loadConfig(explicit string) (config.Config, string, error) {
	if explicit != "" {
		cfg, err := config.LoadFile(explicit)
		return cfg, explicit, err
	}
	wd, err := os.Getwd()
	if err != nil {
		return config.Config{}, "", fmt.Errorf("failed to get working directory: %w", err)
	}
	return config.Load(wd)
}

// resolveColor turns a colour mode into a decision for w. NO_COLOR wins
// over auto.
func resolveColor(mode config.ColorMode, w io.Writer) bool {
	switch mode {
	case config.ColorOn:
		return true
	case config.ColorOff:
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := w.(*os.File)
	return ok && isTerminal(f)
}
