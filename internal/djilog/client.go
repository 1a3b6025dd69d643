package djilog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// DefaultEndpoint is DJI's keychain service.
const DefaultEndpoint = "https://dev.dji.com/openapi/v1/flight-records/keychains"

const defaultUserAgent = "flightdeck/0.1"

// KeychainFetcher resolves a keychain request against a service endpoint.
// This interface is implemented by *Client and can be used for testing.
type KeychainFetcher interface {
	FetchKeychains(ctx context.Context, endpoint, apiKey string, req *KeychainRequest) (Keychains, error)
}

// Ensure Client implements KeychainFetcher at compile time.
var _ KeychainFetcher = (*Client)(nil)

// Client talks to the keychain service over HTTP.
type Client struct {
	http      *http.Client
	userAgent string
}

// NewClient builds a Client. A nil httpClient uses a client without a
// timeout; callers bound the request through its context.
func NewClient(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{http: httpClient, userAgent: defaultUserAgent}
}

type keychainResponse struct {
	Code    int       `json:"code"`
	Message string    `json:"message"`
	Data    Keychains `json:"data"`
}

// FetchKeychains posts req to endpoint, authenticating with apiKey.
func (c *Client) FetchKeychains(ctx context.Context, endpoint, apiKey string, req *KeychainRequest) (Keychains, error) {
	if c == nil {
		return nil, &FetchError{Err: fmt.Errorf("client is nil")}
	}
	if req == nil {
		return nil, &FetchError{Err: fmt.Errorf("keychain request is nil")}
	}
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, &FetchError{Message: "api key is not configured"}
	}
	target, err := parseEndpoint(endpoint)
	if err != nil {
		return nil, &FetchError{Err: err}
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, &FetchError{Err: fmt.Errorf("encode request: %w", err)}
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, target.String(), bytes.NewReader(body))
	if err != nil {
		return nil, &FetchError{Err: fmt.Errorf("create request: %w", err)}
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)
	httpReq.Header.Set("Api-Key", apiKey)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, &FetchError{Err: fmt.Errorf("execute request: %w", err)}
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{StatusCode: resp.StatusCode, Err: fmt.Errorf("read response: %w", err)}
	}

	var payload keychainResponse
	decodeErr := json.Unmarshal(raw, &payload)
	if resp.StatusCode >= 400 {
		return nil, &FetchError{StatusCode: resp.StatusCode, Code: payload.Code, Message: payload.Message}
	}
	if decodeErr != nil {
		return nil, &FetchError{StatusCode: resp.StatusCode, Err: fmt.Errorf("decode response: %w", decodeErr)}
	}
	if payload.Code != 0 {
		return nil, &FetchError{StatusCode: resp.StatusCode, Code: payload.Code, Message: payload.Message}
	}
	if len(payload.Data) != len(req.Keychains) {
		return nil, &FetchError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("expected %d keychain groups, got %d", len(req.Keychains), len(payload.Data)),
		}
	}
	return payload.Data, nil
}

func parseEndpoint(endpoint string) (*url.URL, error) {
	trimmed := strings.TrimSpace(endpoint)
	if trimmed == "" {
		trimmed = DefaultEndpoint
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint %q: %w", endpoint, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("endpoint %q has no host", endpoint)
	}
	u.Fragment = ""
	return u, nil
}
