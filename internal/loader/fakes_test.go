package loader

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/five82/flightdeck/internal/djilog"
	"github.com/five82/flightdeck/internal/flightdata"
)

var (
	errHeader   = errors.New("unrecognized byte stream")
	errRequest  = errors.New("missing key storage metadata")
	errFetch    = errors.New("status 401: invalid api key")
	errFrames   = errors.New("corrupt frame body")
	testKeys    = djilog.Keychains{{{FeaturePoint: "FR_Standardization_Feature_Base_1", AESKey: "a2V5", AESIV: "aXY="}}}
	threeFrames = []flightdata.Frame{{Index: 0}, {Index: 1}, {Index: 2}}
)

type fakeDecoder struct {
	header    *fakeHeader
	headerErr error
}

func (d *fakeDecoder) DecodeHeader(data []byte) (Header, error) {
	if d.headerErr != nil {
		return nil, d.headerErr
	}
	return d.header, nil
}

type fakeHeader struct {
	version   int
	reqErr    error
	fetch     func(ctx context.Context, apiKey, endpoint string) (djilog.Keychains, error)
	frames    []flightdata.Frame
	framesErr error

	requestCalls atomic.Int32

	mu           sync.Mutex
	gotKeychains djilog.Keychains
	framesCalled bool
	gotAPIKey    string
	gotEndpoint  string
}

func (h *fakeHeader) Version() int { return h.version }

func (h *fakeHeader) KeychainRequest() (KeychainRequest, error) {
	h.requestCalls.Add(1)
	if h.reqErr != nil {
		return nil, h.reqErr
	}
	return fakeRequest{h: h}, nil
}

func (h *fakeHeader) Frames(keychains djilog.Keychains) ([]flightdata.Frame, error) {
	h.mu.Lock()
	h.gotKeychains = keychains
	h.framesCalled = true
	h.mu.Unlock()
	if h.framesErr != nil {
		return nil, h.framesErr
	}
	return h.frames, nil
}

func (h *fakeHeader) framesInput() (djilog.Keychains, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.gotKeychains, h.framesCalled
}

type fakeRequest struct {
	h *fakeHeader
}

func (r fakeRequest) Fetch(ctx context.Context, apiKey, endpoint string) (djilog.Keychains, error) {
	r.h.mu.Lock()
	r.h.gotAPIKey = apiKey
	r.h.gotEndpoint = endpoint
	r.h.mu.Unlock()
	if r.h.fetch != nil {
		return r.h.fetch(ctx, apiKey, endpoint)
	}
	return testKeys, nil
}

// wakeCounter counts Wake calls and signals each one.
type wakeCounter struct {
	n  atomic.Int32
	ch chan struct{}
}

func newWakeCounter() *wakeCounter {
	return &wakeCounter{ch: make(chan struct{}, 16)}
}

func (w *wakeCounter) Wake() {
	w.n.Add(1)
	select {
	case w.ch <- struct{}{}:
	default:
	}
}

func (w *wakeCounter) count() int {
	return int(w.n.Load())
}
