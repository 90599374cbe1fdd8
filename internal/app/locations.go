// internal/app/locations.go
package app

import (
	"context"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"maxtravel_booking/internal/domain"
)

// DepartureOption and RegionOption are the dropdown shapes the search form
// consumes.
type DepartureOption struct {
	Code string `json:"Code"`
	Name string `json:"Name"`
}

type RegionOption struct {
	Code int    `json:"Code"`
	Name string `json:"Name"`
}

// LocationService owns the location snapshot: it serves departures and
// regions from the cache and performs the dual fetch that populates it. It is
// the only component that writes the snapshot.
type LocationService struct {
	client domain.BookingClient
	snaps  domain.SnapshotStore
}

func NewLocationService(c domain.BookingClient, s domain.SnapshotStore) *LocationService {
	return &LocationService{client: c, snaps: s}
}

// Departures lists the valid departure cities for the search form.
func (s *LocationService) Departures(ctx context.Context) Result[[]DepartureOption] {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return failErr[[]DepartureOption](err, "Failed to fetch departure airports")
	}
	out := make([]DepartureOption, 0, len(snap.Departures))
	for _, d := range snap.Departures {
		out = append(out, DepartureOption{Code: d.ID, Name: d.Name})
	}
	return ok(out)
}

// Regions lists the bookable arrival regions for the search form.
func (s *LocationService) Regions(ctx context.Context) Result[[]RegionOption] {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return failErr[[]RegionOption](err, "Failed to fetch regions")
	}
	out := make([]RegionOption, 0, len(snap.Arrivals))
	for _, a := range snap.Arrivals {
		code, cerr := strconv.Atoi(a.ID)
		if cerr != nil {
			log.Warn().Str("id", a.ID).Msg("non-numeric region id skipped")
			continue
		}
		out = append(out, RegionOption{Code: code, Name: a.Name})
	}
	return ok(out)
}

// CheckinDates returns the bookable stay-start dates for a departure/region
// combination.
func (s *LocationService) CheckinDates(ctx context.Context, departure string, regions []int) Result[[]string] {
	dates, err := s.client.GetCheckinDates(ctx, departure, regions)
	if err != nil {
		return failErr[[]string](err, "Failed to fetch check-in dates")
	}
	if len(dates) == 0 {
		return fail[[]string]("No available check-in dates for the selected departure and destination.")
	}
	return ok(dates)
}

// Nights returns the valid stay durations for a chosen check-in date.
func (s *LocationService) Nights(ctx context.Context, departure string, regions []int, checkIn string) Result[[]int] {
	nights, err := s.client.GetNights(ctx, departure, regions, checkIn)
	if err != nil {
		return failErr[[]int](err, "Failed to fetch available nights")
	}
	if len(nights) == 0 {
		return fail[[]int]("No available durations for your selected options.")
	}
	return ok(nights)
}

// PriceRange probes the cheapest and dearest offer amount for the window,
// used to seed the price filter slider.
func (s *LocationService) PriceRange(ctx context.Context, departure string, regions []int, checkIn string, nights int) Result[domain.PriceRange] {
	arrival := ""
	if len(regions) > 0 {
		arrival = strconv.Itoa(regions[0])
	}
	hotels, err := s.client.PriceSearch(ctx, domain.PriceSearchQuery{
		Departure:   domain.Location{ID: departure, Type: domain.LocationTypeCity},
		Arrival:     domain.Location{ID: arrival, Type: domain.LocationTypeCity},
		CheckIn:     checkIn,
		Night:       nights,
		Rooms:       []domain.Room{{Adult: 2, ChildAges: []int{}}},
		Nationality: fixedNationality,
		Currency:    "EUR",
	})
	if err != nil {
		return failErr[domain.PriceRange](err, "Failed to fetch price range")
	}

	pr := domain.PriceRange{Currency: "EUR"}
	found := false
	for _, h := range hotels {
		for _, o := range h.Offers {
			if o.Price.Amount <= 0 {
				continue
			}
			if !found || o.Price.Amount < pr.PriceMin {
				pr.PriceMin = o.Price.Amount
			}
			if !found || o.Price.Amount > pr.PriceMax {
				pr.PriceMax = o.Price.Amount
			}
			if o.Price.Currency != "" {
				pr.Currency = o.Price.Currency
			}
			found = true
		}
	}
	if !found {
		return fail[domain.PriceRange]("No packages available in the selected range.")
	}
	return ok(pr)
}

// snapshot serves the cached snapshot or performs the dual fetch and stores
// it. The departures list is fetched once and reused for both halves.
func (s *LocationService) snapshot(ctx context.Context) (*domain.Snapshot, error) {
	if snap, cached := s.snaps.Get(ctx); cached {
		return snap, nil
	}

	raw, err := s.client.GetDepartures(ctx)
	if err != nil {
		return nil, err
	}
	departures := make([]domain.Location, 0, len(raw))
	var first *domain.Location
	for _, l := range raw {
		if l.Type != domain.LocationTypeCity {
			continue
		}
		departures = append(departures, l)
		if first == nil {
			f := l
			first = &f
		}
	}
	if first == nil {
		return nil, domain.ErrNoDepartureCities
	}

	rawArrivals, err := s.client.GetArrivals(ctx, *first)
	if err != nil {
		return nil, err
	}
	arrivals := make([]domain.Location, 0, len(rawArrivals))
	for _, l := range rawArrivals {
		if l.Type == domain.LocationTypeRegion || l.Type == domain.LocationTypeCity {
			arrivals = append(arrivals, l)
		}
	}

	// Storing is best effort: a store that fails to persist (the redis
	// adapter logs and drops write errors) must not cost the caller the
	// lists it already fetched.
	s.snaps.Set(ctx, departures, arrivals)
	log.Info().Int("departures", len(departures)).Int("arrivals", len(arrivals)).
		Msg("location snapshot refreshed")
	return &domain.Snapshot{Departures: departures, Arrivals: arrivals, FetchedAt: time.Now()}, nil
}
