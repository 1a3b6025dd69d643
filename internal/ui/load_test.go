package ui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/flightdeck/internal/config"
	"github.com/five82/flightdeck/internal/djilog"
	"github.com/five82/flightdeck/internal/flightdata"
	"github.com/five82/flightdeck/internal/loader"
)

// gatedDecoder decodes any input as an encrypted file whose keychain request
// is held until release is closed.
type gatedDecoder struct {
	building chan struct{}
	release  chan struct{}
	fetched  chan config.Settings
}

func newGatedDecoder() *gatedDecoder {
	return &gatedDecoder{
		building: make(chan struct{}, 1),
		release:  make(chan struct{}),
		fetched:  make(chan config.Settings, 1),
	}
}

func (d *gatedDecoder) DecodeHeader([]byte) (loader.Header, error) {
	return gatedHeader{d: d}, nil
}

type gatedHeader struct {
	d *gatedDecoder
}

func (h gatedHeader) Version() int { return djilog.KeychainVersion + 1 }

func (h gatedHeader) KeychainRequest() (loader.KeychainRequest, error) {
	h.d.building <- struct{}{}
	<-h.d.release
	return gatedRequest{d: h.d}, nil
}

func (h gatedHeader) Frames(djilog.Keychains) ([]flightdata.Frame, error) {
	return []flightdata.Frame{{Latitude: 46.5, Longitude: 7.5}}, nil
}

type gatedRequest struct {
	d *gatedDecoder
}

func (r gatedRequest) Fetch(_ context.Context, apiKey, endpoint string) (djilog.Keychains, error) {
	r.d.fetched <- config.Settings{Endpoint: endpoint, APIKey: apiKey}
	return djilog.Keychains{}, nil
}

func TestInFlightLoadKeepsSettingsSnapshot(t *testing.T) {
	m, msgs := newTestModel(t)
	dec := newGatedDecoder()
	m.decoder = dec
	m.settings = config.Settings{Endpoint: "https://old.example/keys", APIKey: "original"}

	m = update(t, m, droppedFileMsg{path: "/logs/flight.txt", data: []byte("payload")})

	select {
	case <-dec.building:
	case <-time.After(5 * time.Second):
		t.Fatal("load never reached the keychain step")
	}

	m = update(t, m, settingsSavedMsg{settings: config.Settings{Endpoint: "https://new.example/keys", APIKey: "new"}})
	close(dec.release)

	m = pump(t, m, msgs, func(m Model) bool { return m.flight != nil })

	got := <-dec.fetched
	if got.APIKey != "original" || got.Endpoint != "https://old.example/keys" {
		t.Fatalf("fetch used %+v, want the settings from load start", got)
	}
	if m.loaderOptions().Settings.APIKey != "new" {
		t.Fatal("next load should use the saved settings")
	}
}

func TestPickRequestWaitsForOpenModal(t *testing.T) {
	m, msgs := newTestModel(t)

	m = update(t, m, runes("o"))
	m = update(t, m, runes("s"))
	if _, ok := m.modal.(settingsModal); !ok {
		t.Fatalf("modal = %T, want settingsModal", m.modal)
	}

	var req pickRequestMsg
	select {
	case msg := <-msgs:
		var ok bool
		if req, ok = msg.(pickRequestMsg); !ok {
			t.Fatalf("got %T, want pickRequestMsg", msg)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no pick request")
	}

	m = update(t, m, req)
	if _, ok := m.modal.(settingsModal); !ok {
		t.Fatalf("pick request replaced the settings modal with %T", m.modal)
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if _, ok := m.modal.(pickerModal); !ok {
		t.Fatalf("modal = %T, want pickerModal after settings closed", m.modal)
	}
	if m.pendingPick != nil {
		t.Fatal("pending pick not cleared")
	}
}

func TestNewLoadCancelsPendingPick(t *testing.T) {
	m, _ := newTestModel(t)
	m = update(t, m, runes("s"))

	reply := make(chan pickResult, 1)
	m.loadSeq++
	m.load = loader.FromPicker(context.Background(), loader.PickerFunc(func(context.Context) (loader.PickedFile, bool) {
		return loader.PickedFile{}, false
	}), m.loaderOptions())
	m = update(t, m, pickRequestMsg{seq: m.loadSeq, reply: reply})
	if m.pendingPick == nil {
		t.Fatal("request should wait behind the settings modal")
	}

	m = update(t, m, droppedFileMsg{path: "/logs/a.txt", data: legacyFlight()})
	select {
	case r := <-reply:
		if r.ok {
			t.Fatal("superseded pick should be cancelled")
		}
	default:
		t.Fatal("superseded pick was not answered")
	}
	if m.pendingPick != nil {
		t.Fatal("pending pick not cleared")
	}
}
