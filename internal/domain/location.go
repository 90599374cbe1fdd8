package domain

import "time"

// Location types as used by the product service.
const (
	LocationTypeRegion = 1
	LocationTypeCity   = 2
)

// Location is a departure point or arrival region. Identity is ID; departure
// points additionally carry an airport-style Code used as a lookup fallback.
type Location struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Type      int    `json:"type"`
	Code      string `json:"code,omitempty"`
	ParentID  string `json:"parentId,omitempty"`
	CountryID string `json:"countryId,omitempty"`
	Latitude  string `json:"latitude,omitempty"`
	Longitude string `json:"longitude,omitempty"`
}

// Snapshot is one complete dual fetch of departures and arrivals. Both lists
// are always stored together; a partial snapshot never exists.
type Snapshot struct {
	Departures []Location `json:"departures"`
	Arrivals   []Location `json:"arrivals"`
	FetchedAt  time.Time  `json:"fetchedAt"`
}

// SnapshotTTL is how long a snapshot stays servable.
const SnapshotTTL = 30 * time.Minute

// Fresh reports whether the snapshot is still within its validity window.
func (s *Snapshot) Fresh(now time.Time) bool {
	return s != nil && now.Sub(s.FetchedAt) < SnapshotTTL
}

// FindDeparture matches a departure by primary id, falling back to the
// airport code.
func (s *Snapshot) FindDeparture(id string) (Location, bool) {
	for _, d := range s.Departures {
		if d.ID == id || (d.Code != "" && d.Code == id) {
			return d, true
		}
	}
	return Location{}, false
}

// FindArrival matches an arrival by primary id only.
func (s *Snapshot) FindArrival(id string) (Location, bool) {
	for _, a := range s.Arrivals {
		if a.ID == id {
			return a, true
		}
	}
	return Location{}, false
}
