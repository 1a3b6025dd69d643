package loader

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/five82/flightdeck/internal/djilog"
	"github.com/five82/flightdeck/internal/djilog/djilogtest"
	"github.com/five82/flightdeck/internal/flightdata"
)

func TestDJIDecoder_EndToEnd(t *testing.T) {
	key := []byte("0123456789abcdef0123456789abcdef")
	iv := []byte("fedcba9876543210")
	file := djilogtest.New(14).
		Keychain(key, iv).
		OSD(flightdata.Frame{Latitude: 47, Longitude: 8, Altitude: 10}).
		OSD(flightdata.Frame{Latitude: 47.001, Longitude: 8, Altitude: 20})

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Api-Key") != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"code": 0, "data": file.Keychains()})
	}))
	t.Cleanup(server.Close)

	decoder := NewDJIDecoder(djilog.NewClient(server.Client()))

	l := FromBytes(context.Background(), "DJIFlightRecord.txt", file.Bytes(), Options{
		Decoder:  decoder,
		Settings: Settings{Endpoint: server.URL, APIKey: "secret"},
	})
	require.Equal(t, []StatusKind{Parsing, FetchingKeychains, Success}, collect(t, l))
	data, ok := l.TakeFlightData()
	require.True(t, ok)
	require.Equal(t, 2, data.Len())

	denied := FromBytes(context.Background(), "DJIFlightRecord.txt", file.Bytes(), Options{
		Decoder:  decoder,
		Settings: Settings{Endpoint: server.URL, APIKey: "wrong"},
	})
	require.Equal(t, []StatusKind{Parsing, FetchingKeychains, Error}, collect(t, denied))
	require.Contains(t, denied.Status().Message, "status 401")
}

func TestDJIDecoder_LegacyFileNeedsNoClient(t *testing.T) {
	file := djilogtest.New(9).OSD(flightdata.Frame{Latitude: 1, Longitude: 2})
	l := FromBytes(context.Background(), "old.txt", file.Bytes(), Options{Decoder: NewDJIDecoder(nil)})
	require.Equal(t, []StatusKind{Parsing, Success}, collect(t, l))
}

func TestDJIDecoder_MissingClient(t *testing.T) {
	file := djilogtest.New(13).Keychain([]byte("0123456789abcdef"), []byte("fedcba9876543210"))
	h, err := NewDJIDecoder(nil).DecodeHeader(file.Bytes())
	require.NoError(t, err)
	req, err := h.KeychainRequest()
	require.NoError(t, err)
	_, err = req.Fetch(context.Background(), "key", "")
	var fetchErr *djilog.FetchError
	require.True(t, errors.As(err, &fetchErr))
}
