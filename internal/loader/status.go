package loader

import "github.com/five82/flightdeck/internal/flightdata"

// StatusKind enumerates the steps of a load.
type StatusKind int

const (
	// WaitingForInput means no file has been chosen yet.
	WaitingForInput StatusKind = iota
	// Parsing means the file header is being decoded.
	Parsing
	// FetchingKeychains means the keychain service round-trip is running.
	FetchingKeychains
	// Success means the flight data is ready to be taken.
	Success
	// Error means a step failed; Status.Message says which.
	Error
	// ClosedAfterError means the user acknowledged the error.
	ClosedAfterError
)

func (k StatusKind) String() string {
	switch k {
	case WaitingForInput:
		return "waiting_for_input"
	case Parsing:
		return "parsing"
	case FetchingKeychains:
		return "fetching_keychains"
	case Success:
		return "success"
	case Error:
		return "error"
	case ClosedAfterError:
		return "closed_after_error"
	default:
		return "unknown"
	}
}

// Status is one observable step of a load.
type Status struct {
	Kind    StatusKind
	Message string // set for Error

	data *flightdata.FlightData // set for Success until taken
}

// HasFlightData reports whether a Success status still carries its record.
func (s Status) HasFlightData() bool {
	return s.Kind == Success && s.data != nil
}

func (s Status) String() string {
	if s.Kind == Error && s.Message != "" {
		return s.Kind.String() + ": " + s.Message
	}
	return s.Kind.String()
}

func statusOf(kind StatusKind) Status {
	return Status{Kind: kind}
}

func errorStatus(err error) Status {
	return Status{Kind: Error, Message: err.Error()}
}

func successStatus(data *flightdata.FlightData) Status {
	return Status{Kind: Success, data: data}
}
