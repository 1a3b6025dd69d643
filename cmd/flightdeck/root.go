package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/five82/flightdeck/internal/app"
	"github.com/five82/flightdeck/internal/logging"
)

type rootFlags struct {
	configPath string
	prefsPath  string
	logPath    string
	logLevel   string
}

// isTerminal is replaced in tests.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "flightdeck [flight-log]",
		Short:         "Open and inspect DJI flight logs in the terminal",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var initial string
			if len(args) == 1 {
				initial = args[0]
			}
			return runTUI(cmd, flags, initial)
		},
	}

	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "settings file (default ~/.config/flightdeck/settings.toml)")
	cmd.PersistentFlags().StringVar(&flags.prefsPath, "prefs", "", "preferences file (default ~/.config/flightdeck/prefs.toml)")
	cmd.PersistentFlags().StringVar(&flags.logPath, "log-file", "", "log file (default ~/.local/state/flightdeck/flightdeck.log)")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "debug, info, warn or error")

	cmd.AddCommand(newDecodeCmd(flags))
	cmd.AddCommand(newSettingsCmd(flags))

	return cmd
}

func runTUI(cmd *cobra.Command, flags *rootFlags, initial string) error {
	if !isTerminal() {
		return errors.New("the interactive viewer needs a terminal; use 'flightdeck decode' instead")
	}

	file, logPath, err := logging.Open(flags.logPath)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	level := flags.logLevel
	if level == "" {
		level = "info"
	}
	logger, err := logging.New(logging.Options{Writer: file, Level: level})
	if err != nil {
		return err
	}

	return app.Run(cmd.Context(), app.Options{
		ConfigPath:  flags.configPath,
		PrefsPath:   flags.prefsPath,
		LogPath:     logPath,
		InitialFile: initial,
		Logger:      logger,
	})
}
