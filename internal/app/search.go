// internal/app/search.go
package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"maxtravel_booking/internal/domain"
)

// SearchService turns a storefront search request into a priced offer list.
// It reads the location snapshot but never populates it; that belongs to the
// LocationService.
type SearchService struct {
	client domain.BookingClient
	snaps  domain.SnapshotStore
}

func NewSearchService(c domain.BookingClient, s domain.SnapshotStore) *SearchService {
	return &SearchService{client: c, snaps: s}
}

// Search resolves the departure and region ids, then issues the price search.
// The remote hotel list is returned verbatim; ordering and filtering are the
// UI's concern.
func (s *SearchService) Search(ctx context.Context, req domain.SearchRequest) Result[[]domain.Hotel] {
	if err := req.Validate(); err != nil {
		return failErr[[]domain.Hotel](err, "Invalid search request")
	}

	regionID := fmt.Sprint(req.RegionList[0])
	dep, arr, err := s.resolve(ctx, req.DeparturePoint, regionID)
	if err != nil {
		log.Warn().Str("departure", req.DeparturePoint).Str("region", regionID).
			Err(err).Msg("location resolution failed")
		return failErr[[]domain.Hotel](err, "Search failed")
	}

	hotels, err := s.client.PriceSearch(ctx, domain.PriceSearchQuery{
		Departure:   dep,
		Arrival:     arr,
		CheckIn:     req.CheckIn,
		Night:       req.Duration,
		Rooms:       req.Rooms,
		Nationality: req.Nationality,
		Currency:    req.Currency,
		Culture:     cultureFor(req.Language),
	})
	if err != nil {
		return failErr[[]domain.Hotel](err, "No packages found")
	}
	if hotels == nil {
		hotels = []domain.Hotel{}
	}
	return ok(hotels)
}

// resolve maps the request ids onto full Location records, preferring the
// snapshot and falling back to a live two-step lookup. A partial resolution
// never reaches the price search.
func (s *SearchService) resolve(ctx context.Context, departureID, regionID string) (domain.Location, domain.Location, error) {
	if snap, cached := s.snaps.Get(ctx); cached {
		dep, okDep := snap.FindDeparture(departureID)
		arr, okArr := snap.FindArrival(regionID)
		if okDep && okArr {
			return dep, arr, nil
		}
	}

	locations, err := s.client.GetDepartures(ctx)
	if err != nil {
		return domain.Location{}, domain.Location{}, err
	}
	dep, found := findByIDOrCode(locations, departureID)
	if !found {
		return domain.Location{}, domain.Location{}, &domain.ResolutionError{Kind: domain.ResolveDeparture, ID: departureID}
	}

	arrivals, err := s.client.GetArrivals(ctx, dep)
	if err != nil {
		return domain.Location{}, domain.Location{}, err
	}
	for _, a := range arrivals {
		if a.ID == regionID {
			return dep, a, nil
		}
	}
	return domain.Location{}, domain.Location{}, &domain.ResolutionError{Kind: domain.ResolveArrival, ID: regionID}
}

func findByIDOrCode(locations []domain.Location, id string) (domain.Location, bool) {
	for _, l := range locations {
		if l.ID == id || (l.Code != "" && l.Code == id) {
			return l, true
		}
	}
	return domain.Location{}, false
}

func cultureFor(language string) string {
	// the storefront is English-only today; keep the hook for later markets
	return "en-US"
}
