package domain

import "context"

// Authenticator performs one login call and returns the resulting session.
type Authenticator interface {
	Authenticate(ctx context.Context, cred Credential) (*Session, error)
}

// TokenSource hands out a currently valid bearer token, re-authenticating
// behind the scenes when the held session has expired.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
	// Refresh forces a re-authentication regardless of the held session.
	Refresh(ctx context.Context) (string, error)
}

// BookingClient is the outbound surface of the holiday-package API.
type BookingClient interface {
	GetDepartures(ctx context.Context) ([]Location, error)
	GetArrivals(ctx context.Context, departure Location) ([]Location, error)
	GetCheckinDates(ctx context.Context, departure string, regions []int) ([]string, error)
	GetNights(ctx context.Context, departure string, regions []int, checkIn string) ([]int, error)
	PriceSearch(ctx context.Context, q PriceSearchQuery) ([]Hotel, error)
	GetOfferDetails(ctx context.Context, offerID string) (*OfferDetail, error)
}

// PriceSearchQuery is the resolved input to a pricesearch call. Products
// narrows the search to specific hotel ids when non-empty.
type PriceSearchQuery struct {
	Departure   Location
	Arrival     Location
	CheckIn     string
	Night       int
	Rooms       []Room
	Products    []string
	Nationality string
	Currency    string
	Culture     string
}

// SnapshotStore holds the single location snapshot. Get returns false when no
// fresh snapshot exists; Set replaces the snapshot wholesale.
type SnapshotStore interface {
	Get(ctx context.Context) (*Snapshot, bool)
	Set(ctx context.Context, departures, arrivals []Location)
	Clear(ctx context.Context)
}
