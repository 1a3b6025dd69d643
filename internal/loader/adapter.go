package loader

import (
	"context"

	"github.com/five82/flightdeck/internal/djilog"
	"github.com/five82/flightdeck/internal/flightdata"
)

// NewDJIDecoder adapts package djilog to Decoder, fetching keychains through
// fetcher.
func NewDJIDecoder(fetcher djilog.KeychainFetcher) Decoder {
	return djiDecoder{fetcher: fetcher}
}

type djiDecoder struct {
	fetcher djilog.KeychainFetcher
}

func (d djiDecoder) DecodeHeader(data []byte) (Header, error) {
	p, err := djilog.Parse(data)
	if err != nil {
		return nil, err
	}
	return djiHeader{parser: p, fetcher: d.fetcher}, nil
}

type djiHeader struct {
	parser  *djilog.Parser
	fetcher djilog.KeychainFetcher
}

func (h djiHeader) Version() int {
	return h.parser.Version()
}

func (h djiHeader) KeychainRequest() (KeychainRequest, error) {
	req, err := h.parser.KeychainRequest()
	if err != nil {
		return nil, err
	}
	return djiKeychainRequest{req: req, fetcher: h.fetcher}, nil
}

func (h djiHeader) Frames(keychains djilog.Keychains) ([]flightdata.Frame, error) {
	return h.parser.Frames(keychains)
}

type djiKeychainRequest struct {
	req     *djilog.KeychainRequest
	fetcher djilog.KeychainFetcher
}

func (r djiKeychainRequest) Fetch(ctx context.Context, apiKey, endpoint string) (djilog.Keychains, error) {
	if r.fetcher == nil {
		return nil, &djilog.FetchError{Message: "no keychain client configured"}
	}
	return r.fetcher.FetchKeychains(ctx, endpoint, apiKey, r.req)
}
