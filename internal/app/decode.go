package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/five82/flightdeck/internal/config"
	"github.com/five82/flightdeck/internal/djilog"
	"github.com/five82/flightdeck/internal/flightdata"
	"github.com/five82/flightdeck/internal/loader"
)

// DecodeOptions configure a headless decode.
type DecodeOptions struct {
	Path     string
	Format   string
	Out      io.Writer
	Settings config.Settings
	Decoder  loader.Decoder // nil uses the DJI decoder
	Logger   *log.Logger
}

// ErrLoadFailed marks a load that ended in the Error status.
var ErrLoadFailed = errors.New("load failed")

// Decode runs one load outside the TUI and exports the result. It drives the
// same Loader as the TUI, with a channel standing in for the redraw loop.
func Decode(ctx context.Context, opts DecodeOptions) error {
	// Checked up front so a bad format never costs a keychain fetch.
	if err := flightdata.CheckFormat(opts.Format); err != nil {
		return err
	}

	data, err := os.ReadFile(opts.Path)
	if err != nil {
		return fmt.Errorf("read %s: %w", opts.Path, err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	decoder := opts.Decoder
	if decoder == nil {
		decoder = loader.NewDJIDecoder(djilog.NewClient(nil))
	}
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	wake := make(chan struct{}, 1)
	l := loader.FromBytes(ctx, filepath.Base(opts.Path), data, loader.Options{
		Decoder:  decoder,
		Settings: loader.Settings{Endpoint: opts.Settings.Endpoint, APIKey: opts.Settings.APIKey},
		Waker: loader.WakerFunc(func() {
			select {
			case wake <- struct{}{}:
			default:
			}
		}),
		Logger: logger,
	})

	last := l.Status().Kind
	for {
		status := l.Poll()
		if status.Kind != last {
			logger.Info("status", "load", l.ID(), "status", status.Kind)
			last = status.Kind
		}

		switch status.Kind {
		case loader.Success:
			record, _ := l.TakeFlightData()
			summary := record.Summary()
			logger.Info("decoded", "load", l.ID(), "frames", summary.Frames, "distance_m", int(summary.Distance))
			return record.Export(out, opts.Format)
		case loader.Error:
			return fmt.Errorf("%w: %s", ErrLoadFailed, status.Message)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-wake:
		}
	}
}
