package app_test

import (
	"context"

	"maxtravel_booking/internal/domain"
)

// fakeClient is a scripted BookingClient shared by the orchestrator tests.
type fakeClient struct {
	departures []domain.Location
	arrivals   []domain.Location
	hotels     []domain.Hotel
	dates      []string
	nights     []int
	detail     *domain.OfferDetail

	errDepartures error
	errArrivals   error
	errSearch     error
	errDetail     error

	departureCalls int
	arrivalCalls   int
	searchCalls    int
	detailCalls    int
	lastQuery      domain.PriceSearchQuery
}

func (f *fakeClient) GetDepartures(ctx context.Context) ([]domain.Location, error) {
	f.departureCalls++
	return f.departures, f.errDepartures
}

func (f *fakeClient) GetArrivals(ctx context.Context, dep domain.Location) ([]domain.Location, error) {
	f.arrivalCalls++
	return f.arrivals, f.errArrivals
}

func (f *fakeClient) GetCheckinDates(ctx context.Context, departure string, regions []int) ([]string, error) {
	return f.dates, nil
}

func (f *fakeClient) GetNights(ctx context.Context, departure string, regions []int, checkIn string) ([]int, error) {
	return f.nights, nil
}

func (f *fakeClient) PriceSearch(ctx context.Context, q domain.PriceSearchQuery) ([]domain.Hotel, error) {
	f.searchCalls++
	f.lastQuery = q
	return f.hotels, f.errSearch
}

func (f *fakeClient) GetOfferDetails(ctx context.Context, offerID string) (*domain.OfferDetail, error) {
	f.detailCalls++
	if f.errDetail != nil {
		return nil, f.errDetail
	}
	return f.detail, nil
}

func oneHotelFixture(hotelID string, amount float64) []domain.Hotel {
	return []domain.Hotel{{
		ID:   hotelID,
		Name: "Club Sera",
		Offers: []domain.Offer{{
			OfferID: "off-1",
			Night:   7,
			Price:   domain.Price{Amount: amount, Currency: "EUR"},
		}},
	}}
}
