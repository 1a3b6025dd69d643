package loader

import (
	"context"
	"io"

	"github.com/five82/flightdeck/internal/djilog"
	"github.com/five82/flightdeck/internal/flightdata"
)

// keychainVersion is the first header version that needs remote keychains.
const keychainVersion = djilog.KeychainVersion

// Decoder turns raw bytes into a parse handle.
type Decoder interface {
	DecodeHeader(data []byte) (Header, error)
}

// Header is a successfully decoded file header.
type Header interface {
	Version() int
	KeychainRequest() (KeychainRequest, error)
	Frames(keychains djilog.Keychains) ([]flightdata.Frame, error)
}

// KeychainRequest fetches the keychains a header needs.
type KeychainRequest interface {
	Fetch(ctx context.Context, apiKey, endpoint string) (djilog.Keychains, error)
}

// PickedFile is a file chosen through a Picker.
type PickedFile struct {
	Name   string
	Reader io.Reader // closed after reading when it is an io.Closer
}

// Picker asks the user for a file. It returns false when the user cancels.
type Picker interface {
	Pick(ctx context.Context) (PickedFile, bool)
}

// PickerFunc adapts a function to Picker.
type PickerFunc func(ctx context.Context) (PickedFile, bool)

// Pick calls f.
func (f PickerFunc) Pick(ctx context.Context) (PickedFile, bool) {
	return f(ctx)
}

// Waker asks the consumer to poll again.
type Waker interface {
	Wake()
}

// WakerFunc adapts a function to Waker.
type WakerFunc func()

// Wake calls f.
func (f WakerFunc) Wake() {
	f()
}

// Settings is the part of the user settings a load reads. It is copied when
// the load starts.
type Settings struct {
	Endpoint string
	APIKey   string
}
