package app

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/five82/flightdeck/internal/config"
	"github.com/five82/flightdeck/internal/djilog"
	"github.com/five82/flightdeck/internal/loader"
	"github.com/five82/flightdeck/internal/prefs"
	"github.com/five82/flightdeck/internal/ui"
)

// Options configure the flightdeck application.
type Options struct {
	ConfigPath  string // empty uses default ~/.config/flightdeck/settings.toml
	PrefsPath   string // empty uses default ~/.config/flightdeck/prefs.toml
	LogPath     string // shown by the log overlay
	InitialFile string // loaded as if dropped on start
	Logger      *log.Logger
}

// Run boots the flightdeck TUI until the context is cancelled or the user quits.
func Run(ctx context.Context, opts Options) error {
	settings, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	settingsPath, err := config.ResolvePath(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("resolve settings path: %w", err)
	}

	userPrefs, _ := prefs.Load(opts.PrefsPath)

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	updates, err := config.Watch(ctx, settingsPath)
	if err != nil {
		logger.Warn("settings watch disabled", "err", err)
	}

	logger.Info("starting", "settings", settingsPath, "endpoint", settings.Endpoint)

	return ui.Run(ui.Options{
		Context:         ctx,
		Logger:          logger,
		Decoder:         loader.NewDJIDecoder(djilog.NewClient(nil)),
		Settings:        settings,
		SettingsPath:    settingsPath,
		SettingsUpdates: updates,
		Prefs:           userPrefs,
		PrefsPath:       opts.PrefsPath,
		LogPath:         opts.LogPath,
		InitialFile:     opts.InitialFile,
	})
}
