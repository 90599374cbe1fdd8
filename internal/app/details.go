// internal/app/details.go
package app

import (
	"context"
	"math"
	"time"

	"github.com/rs/zerolog/log"

	"maxtravel_booking/internal/domain"
)

// Known-good fallbacks used when an offer detail record is missing the fields
// a room search needs. Substituting them instead of failing masks upstream
// resolution bugs, but the storefront has always behaved this way; see
// DESIGN.md before changing it.
const (
	fallbackHotelID   = "33"
	fallbackRegionID  = "4" // Antalya
	fixedDepartureID  = "2" // Prishtina
	fixedNationality  = "XK"
	defaultDuration   = 7
	defaultRoomAdults = 2
)

// RoomCriteria is the caller-supplied occupancy and stay window for a
// hotel-scoped room search. Zero values fall back to storefront defaults.
type RoomCriteria struct {
	CheckIn     string        `json:"checkIn"`
	Duration    int           `json:"duration"`
	RegionList  []string      `json:"regionList"`
	Rooms       []domain.Room `json:"rooms"`
	Nationality string        `json:"nationality"`
}

// HotelDetail bundles the offer detail with the bookable room offers for its
// hotel, the shape the detail page renders.
type HotelDetail struct {
	Offer      *domain.OfferDetail `json:"offer"`
	RoomOffers []domain.Offer      `json:"roomOffers"`
}

// DetailService drives the hotel-detail view: offer detail lookup plus a
// second, hotel-scoped price search for bookable rooms.
type DetailService struct {
	client domain.BookingClient
}

func NewDetailService(c domain.BookingClient) *DetailService {
	return &DetailService{client: c}
}

// OfferDetails fetches the detail record for one offer and then the room
// offers for the hotel it names.
func (s *DetailService) OfferDetails(ctx context.Context, offerID string) Result[*HotelDetail] {
	detail, err := s.client.GetOfferDetails(ctx, offerID)
	if err != nil {
		return failErr[*HotelDetail](err, "This offer's detailed information is not available at the moment.")
	}

	hotelID := fallbackHotelID
	region := fallbackRegionID
	if len(detail.Hotels) > 0 {
		h := detail.Hotels[0]
		if h.ID != "" {
			hotelID = h.ID
		}
		if h.Town != nil && h.Town.ID != "" {
			region = h.Town.ID
		} else if h.City != nil && h.City.ID != "" {
			region = h.City.ID
		}
	} else {
		log.Warn().Str("offer_id", offerID).Msg("offer detail carries no hotel, using fallback id")
	}

	criteria := RoomCriteria{
		CheckIn:    datePart(detail.CheckIn),
		Duration:   stayNights(detail.CheckIn, detail.CheckOut),
		RegionList: []string{region},
	}
	rooms := s.RoomOffers(ctx, hotelID, criteria)

	out := &HotelDetail{Offer: detail, RoomOffers: []domain.Offer{}}
	if rooms.Success {
		out.RoomOffers = rooms.Data
	}
	return ok(out)
}

// RoomOffers runs a price search narrowed to a single hotel id and returns
// that hotel's offer set. When the response has no exact hotel match, the
// union of offers across all returned hotels is served instead of an
// immediate "no offers".
func (s *DetailService) RoomOffers(ctx context.Context, hotelID string, criteria RoomCriteria) Result[[]domain.Offer] {
	region := fallbackRegionID
	if len(criteria.RegionList) > 0 && criteria.RegionList[0] != "" {
		region = criteria.RegionList[0]
	}
	night := criteria.Duration
	if night <= 0 {
		night = defaultDuration
	}
	rooms := criteria.Rooms
	if len(rooms) == 0 {
		rooms = []domain.Room{{Adult: defaultRoomAdults, ChildAges: []int{}}}
	}
	nationality := criteria.Nationality
	if nationality == "" {
		nationality = fixedNationality
	}

	hotels, err := s.client.PriceSearch(ctx, domain.PriceSearchQuery{
		Departure:   domain.Location{ID: fixedDepartureID, Type: domain.LocationTypeCity},
		Arrival:     domain.Location{ID: region, Type: domain.LocationTypeCity},
		CheckIn:     datePart(criteria.CheckIn),
		Night:       night,
		Rooms:       rooms,
		Products:    []string{hotelID},
		Nationality: nationality,
		Currency:    "EUR",
	})
	if err != nil {
		return failErr[[]domain.Offer](err, "Failed to get room offers")
	}

	for _, h := range hotels {
		if h.ID == hotelID && len(h.Offers) > 0 {
			return ok(h.Offers)
		}
	}

	var all []domain.Offer
	for _, h := range hotels {
		all = append(all, h.Offers...)
	}
	if len(all) == 0 {
		return fail[[]domain.Offer]("No offers found for this hotel")
	}
	log.Debug().Str("hotel_id", hotelID).Int("offers", len(all)).
		Msg("no exact hotel match, serving offers from all returned hotels")
	return ok(all)
}

// stayNights is the whole-day difference between check-out and check-in,
// rounded up. Unparseable dates yield the default stay length.
func stayNights(checkIn, checkOut string) int {
	in, err1 := parseStayDate(checkIn)
	out, err2 := parseStayDate(checkOut)
	if err1 != nil || err2 != nil || !out.After(in) {
		return defaultDuration
	}
	return int(math.Ceil(out.Sub(in).Hours() / 24))
}

func parseStayDate(s string) (time.Time, error) {
	var err error
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02", time.RFC3339} {
		var t time.Time
		if t, err = time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}

func datePart(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] == 'T' {
			return s[:i]
		}
	}
	return s
}
