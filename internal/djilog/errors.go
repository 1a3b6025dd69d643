package djilog

import "fmt"

// HeaderError reports a malformed or unrecognized byte stream.
type HeaderError struct {
	Offset int
	Reason string
}

func newHeaderError(offset int, format string, args ...any) error {
	return &HeaderError{Offset: offset, Reason: fmt.Sprintf(format, args...)}
}

func (e *HeaderError) Error() string {
	if e == nil {
		return ""
	}
	if e.Offset > 0 {
		return fmt.Sprintf("decode header: offset %d: %s", e.Offset, e.Reason)
	}
	return fmt.Sprintf("decode header: %s", e.Reason)
}

// KeychainError reports that no keychain request can be built.
type KeychainError struct {
	Reason string
}

func (e *KeychainError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("build keychain request: %s", e.Reason)
}

// FetchError reports a failed keychain service round-trip.
type FetchError struct {
	StatusCode int    // HTTP status, zero when no response arrived
	Code       int    // service result code, zero when unknown
	Message    string // service message, if any
	Err        error
}

func (e *FetchError) Error() string {
	if e == nil {
		return ""
	}
	switch {
	case e.Err != nil:
		return fmt.Sprintf("fetch keychains: %v", e.Err)
	case e.StatusCode >= 400 && e.Message != "":
		return fmt.Sprintf("fetch keychains: status %d: %s", e.StatusCode, e.Message)
	case e.StatusCode >= 400:
		return fmt.Sprintf("fetch keychains: status %d", e.StatusCode)
	case e.Code != 0:
		return fmt.Sprintf("fetch keychains: service code %d: %s", e.Code, e.Message)
	default:
		return fmt.Sprintf("fetch keychains: %s", e.Message)
	}
}

// Unwrap exposes the transport error.
func (e *FetchError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// FrameError reports a record body that could not be decoded.
type FrameError struct {
	Record int // record index within the records area
	Err    error
}

func (e *FrameError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("decode frames: record %d: %v", e.Record, e.Err)
}

// Unwrap exposes the underlying error.
func (e *FrameError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
