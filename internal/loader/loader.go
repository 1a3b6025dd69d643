package loader

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/five82/flightdeck/internal/flightdata"
)

// statusBuffer covers every status one task can send (Parsing,
// FetchingKeychains and a terminal status), so sends never block.
const statusBuffer = 3

// Options carries the collaborators of a load.
type Options struct {
	Decoder  Decoder
	Settings Settings
	Waker    Waker
	Logger   *log.Logger
}

// Loader tracks one load attempt. It is not safe for concurrent use; the
// foreground loop owns it.
type Loader struct {
	id       string
	statuses <-chan Status
	status   Status
}

// FromBytes starts decoding a file whose contents are already in memory.
func FromBytes(ctx context.Context, name string, data []byte, opts Options) *Loader {
	l, t := newLoader(name, opts, Parsing)
	t.log.Info("load started", "source", "bytes", "size", len(data))
	go t.decode(ctx, data)
	return l
}

// FromPicker asks picker for a file and decodes it. The Loader stays at
// WaitingForInput until a file is chosen, and forever if the user cancels.
func FromPicker(ctx context.Context, picker Picker, opts Options) *Loader {
	l, t := newLoader("", opts, WaitingForInput)
	t.log.Info("load started", "source", "picker")
	go t.pickAndDecode(ctx, picker)
	return l
}

func newLoader(name string, opts Options, initial StatusKind) (*Loader, *task) {
	ch := make(chan Status, statusBuffer)
	id := uuid.NewString()

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	logger = logger.With("load", id)
	if name != "" {
		logger = logger.With("file", name)
	}

	waker := opts.Waker
	if waker == nil {
		waker = WakerFunc(func() {})
	}

	t := &task{
		name:     name,
		decoder:  opts.Decoder,
		settings: opts.Settings,
		waker:    waker,
		out:      ch,
		log:      logger,
	}
	return &Loader{id: id, statuses: ch, status: statusOf(initial)}, t
}

// ID identifies the load in logs.
func (l *Loader) ID() string {
	return l.id
}

// Status returns the current status without polling.
func (l *Loader) Status() Status {
	return l.status
}

// Poll adopts every status sent since the last call, keeping the latest, and
// returns it. Polling with nothing pending leaves the status unchanged.
func (l *Loader) Poll() Status {
	for {
		select {
		case s := <-l.statuses:
			l.status = s
		default:
			return l.status
		}
	}
}

// TakeFlightData moves the record out of a Success status. Later calls
// return false.
func (l *Loader) TakeFlightData() (*flightdata.FlightData, bool) {
	if !l.status.HasFlightData() {
		return nil, false
	}
	data := l.status.data
	l.status.data = nil
	return data, true
}

// Dismiss acknowledges an Error status, moving it to ClosedAfterError. It
// reports whether the status changed.
func (l *Loader) Dismiss() bool {
	if l.status.Kind != Error {
		return false
	}
	l.status = statusOf(ClosedAfterError)
	return true
}

// Finished reports whether the caller should drop the Loader.
func (l *Loader) Finished() bool {
	switch l.status.Kind {
	case Success, ClosedAfterError:
		return true
	default:
		return false
	}
}
