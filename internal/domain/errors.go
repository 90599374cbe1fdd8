package domain

import (
	"errors"
	"fmt"
)

// Request validation sentinels.
var (
	ErrMissingDeparture = errors.New("departure point is required")
	ErrMissingRegion    = errors.New("at least one region is required")
	ErrNoRooms          = errors.New("at least one room is required")
	ErrNoAdults         = errors.New("each room needs at least one adult")
)

// TransportError is a network or HTTP-layer failure before any envelope was
// decoded.
type TransportError struct {
	Endpoint string
	Status   int // 0 when the request never completed
	Err      error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: http %d", e.Endpoint, e.Status)
	}
	return fmt.Sprintf("%s: %v", e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// AuthError is a rejected login or a token the remote no longer accepts.
type AuthError struct {
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "authentication failed"
}

func (e *AuthError) Unwrap() error { return e.Err }

// EnvelopeError is a transport-level success whose response header reported
// failure. Message carries the remote-supplied reason when present.
type EnvelopeError struct {
	Endpoint string
	Message  string
}

func (e *EnvelopeError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Endpoint + ": request rejected"
}

// Location resolution kinds.
const (
	ResolveDeparture = "departure"
	ResolveArrival   = "arrival"
)

// ResolutionError is a departure or arrival id that mapped to nothing.
type ResolutionError struct {
	Kind string
	ID   string
}

func (e *ResolutionError) Error() string {
	if e.Kind == ResolveDeparture {
		return "Departure location not found for: " + e.ID
	}
	return "Arrival location not found"
}

// ErrOfferNotFound signals a detail lookup that returned nothing usable.
var ErrOfferNotFound = errors.New("offer details not available")

// ErrNoDepartureCities signals a departures fetch that contained no city-type
// entries to anchor the arrivals lookup on.
var ErrNoDepartureCities = errors.New("no departure cities found")

// IsAuthFailure reports whether err should trigger the gateway's bounded
// re-authentication retry: an explicit AuthError or a 401 transport status.
func IsAuthFailure(err error) bool {
	var ae *AuthError
	if errors.As(err, &ae) {
		return true
	}
	var te *TransportError
	return errors.As(err, &te) && te.Status == 401
}
