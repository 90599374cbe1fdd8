package domain

// Room describes occupancy for a single room. Child count is implied by the
// length of ChildAges; only the ages travel on the wire.
type Room struct {
	Adult     int   `json:"Adult"`
	ChildAges []int `json:"ChildAges"`
}

// SearchRequest is a storefront search as submitted by the UI.
type SearchRequest struct {
	DeparturePoint string `json:"departurePoint"`
	RegionList     []int  `json:"regionList"`
	CheckIn        string `json:"checkIn"` // YYYY-MM-DD
	Duration       int    `json:"duration"`
	Rooms          []Room `json:"rooms"`
	Nationality    string `json:"nationality"`
	Currency       string `json:"currency"`
	Language       string `json:"language"`
}

// Validate enforces the structural constraints on room composition.
func (r SearchRequest) Validate() error {
	if r.DeparturePoint == "" {
		return ErrMissingDeparture
	}
	if len(r.RegionList) == 0 {
		return ErrMissingRegion
	}
	if len(r.Rooms) == 0 {
		return ErrNoRooms
	}
	for _, room := range r.Rooms {
		if room.Adult < 1 {
			return ErrNoAdults
		}
	}
	return nil
}

// Price is a monetary amount in a named currency.
type Price struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// Offer is one priced, bookable room/board combination.
type Offer struct {
	OfferID   string `json:"offerId"`
	Night     int    `json:"night,omitempty"`
	CheckIn   string `json:"checkIn,omitempty"`
	Price     Price  `json:"price"`
	Rooms     []any  `json:"rooms,omitempty"`
	Board     string `json:"board,omitempty"`
	Available bool   `json:"isAvailable,omitempty"`
}

// Hotel is a priced search hit carrying its offers.
type Hotel struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Stars     string    `json:"stars,omitempty"`
	Town      *NamedRef `json:"town,omitempty"`
	City      *NamedRef `json:"city,omitempty"`
	Country   *NamedRef `json:"country,omitempty"`
	Thumbnail string    `json:"thumbnailFull,omitempty"`
	Offers    []Offer   `json:"offers"`
}

// NamedRef is an id/name pair embedded in hotel location fields.
type NamedRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// OfferDetail is the stay detail behind a single offer id.
type OfferDetail struct {
	OfferID  string  `json:"offerId"`
	CheckIn  string  `json:"checkIn"`
	CheckOut string  `json:"checkOut"`
	Night    int     `json:"night,omitempty"`
	Price    Price   `json:"price"`
	Hotels   []Hotel `json:"hotels"`
}

// PriceRange is the min/max offer amount over a search window.
type PriceRange struct {
	PriceMin float64 `json:"PriceMin"`
	PriceMax float64 `json:"PriceMax"`
	Currency string  `json:"Currency"`
}
