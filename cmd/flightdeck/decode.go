package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/five82/flightdeck/internal/app"
	"github.com/five82/flightdeck/internal/config"
	"github.com/five82/flightdeck/internal/flightdata"
	"github.com/five82/flightdeck/internal/logging"
)

// createOutput is replaced in tests.
var createOutput = func(path string) (io.WriteCloser, error) {
	return os.Create(path)
}

type decodeOptions struct {
	format string
	output string
}

func newDecodeCmd(rootFlags *rootFlags) *cobra.Command {
	opts := &decodeOptions{}

	cmd := &cobra.Command{
		Use:   "decode <flight-log>",
		Short: "Decode a flight log and print its frames",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDecode(cmd, rootFlags, opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", flightdata.FormatJSON, "output format: json, yaml or csv")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write to a file instead of stdout")

	return cmd
}

func runDecode(cmd *cobra.Command, rootFlags *rootFlags, opts *decodeOptions, path string) (err error) {
	if err := flightdata.CheckFormat(opts.format); err != nil {
		return err
	}

	settings, err := config.Load(rootFlags.configPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	level := rootFlags.logLevel
	if level == "" {
		level = "warn"
	}
	logger, err := logging.New(logging.Options{Writer: cmd.ErrOrStderr(), Level: level, Component: "decode"})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.output != "" {
		file, createErr := createOutput(opts.output)
		if createErr != nil {
			return fmt.Errorf("create output: %w", createErr)
		}
		defer func() {
			if cerr := file.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("close output: %w", cerr)
			}
		}()
		out = file
	}

	return app.Decode(cmd.Context(), app.DecodeOptions{
		Path:     path,
		Format:   opts.format,
		Out:      out,
		Settings: settings,
		Logger:   logger,
	})
}
