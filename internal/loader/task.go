package loader

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/five82/flightdeck/internal/djilog"
	"github.com/five82/flightdeck/internal/flightdata"
)

// task is the goroutine side of a Loader. It owns the only sender.
type task struct {
	name     string
	decoder  Decoder
	settings Settings
	waker    Waker
	out      chan<- Status
	log      *log.Logger
}

// send never blocks: the channel holds every status a task can send.
func (t *task) send(s Status) {
	t.log.Debug("status", "status", s.Kind)
	t.out <- s
}

func (t *task) fail(step string, err error) {
	t.log.Error("load failed", "step", step, "err", err)
	t.send(errorStatus(err))
	t.waker.Wake()
}

func (t *task) pickAndDecode(ctx context.Context, picker Picker) {
	if picker == nil {
		t.log.Warn("no file picker configured")
		return
	}
	file, ok := picker.Pick(ctx)
	if !ok {
		t.log.Info("file selection cancelled")
		return
	}
	t.name = file.Name
	t.log = t.log.With("file", file.Name)

	data, err := readPicked(file)
	if err != nil {
		t.fail("read", err)
		return
	}
	t.log.Info("file selected", "size", len(data))
	t.decode(ctx, data)
}

func readPicked(file PickedFile) ([]byte, error) {
	if file.Reader == nil {
		return nil, fmt.Errorf("read %s: no reader", file.Name)
	}
	if closer, ok := file.Reader.(io.Closer); ok {
		defer func() { _ = closer.Close() }()
	}
	data, err := io.ReadAll(file.Reader)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", file.Name, err)
	}
	return data, nil
}

func (t *task) decode(ctx context.Context, data []byte) {
	t.send(statusOf(Parsing))

	if t.decoder == nil {
		t.fail("header", fmt.Errorf("no decoder configured"))
		return
	}
	header, err := t.decoder.DecodeHeader(data)
	if err != nil {
		t.fail("header", err)
		return
	}
	version := header.Version()
	t.log.Debug("header decoded", "version", version)

	var keychains djilog.Keychains
	if version >= keychainVersion {
		t.send(statusOf(FetchingKeychains))
		// Nothing else arrives until the fetch returns.
		t.waker.Wake()

		req, err := header.KeychainRequest()
		if err != nil {
			t.fail("keychain request", err)
			return
		}
		keychains, err = req.Fetch(ctx, t.settings.APIKey, t.settings.Endpoint)
		if err != nil {
			t.fail("keychain fetch", err)
			return
		}
		t.log.Debug("keychains fetched", "groups", len(keychains))
	}

	t.waker.Wake()

	frames, err := header.Frames(keychains)
	if err != nil {
		t.fail("frames", err)
		return
	}

	t.log.Info("load finished", "frames", len(frames))
	t.send(successStatus(flightdata.New(t.name, frames)))
	t.waker.Wake()
}
