package app_test

import (
	"context"
	"testing"

	"maxtravel_booking/internal/app"
	"maxtravel_booking/internal/domain"
)

func detailFixture(hotelID string) *domain.OfferDetail {
	d := &domain.OfferDetail{
		OfferID:  "off-1",
		CheckIn:  "2025-09-12T00:00:00",
		CheckOut: "2025-09-19T00:00:00",
		Price:    domain.Price{Amount: 450, Currency: "EUR"},
	}
	if hotelID != "" {
		d.Hotels = []domain.Hotel{{
			ID:   hotelID,
			Name: "Club Sera",
			Town: &domain.NamedRef{ID: "604", Name: "Lara"},
		}}
	}
	return d
}

func TestOfferDetails_RoomSearchScopedToHotel(t *testing.T) {
	fc := &fakeClient{
		detail: detailFixture("77"),
		hotels: oneHotelFixture("77", 520),
	}
	svc := app.NewDetailService(fc)

	res := svc.OfferDetails(context.Background(), "off-1")
	if !res.Success {
		t.Fatalf("failure: %s", res.Message)
	}
	if len(res.Data.RoomOffers) != 1 || res.Data.RoomOffers[0].Price.Amount != 520 {
		t.Fatalf("room offers: %+v", res.Data.RoomOffers)
	}

	q := fc.lastQuery
	if len(q.Products) != 1 || q.Products[0] != "77" {
		t.Fatalf("products filter: %+v", q.Products)
	}
	if q.Night != 7 {
		t.Fatalf("night should be the whole-day stay difference, got %d", q.Night)
	}
	if q.CheckIn != "2025-09-12" {
		t.Fatalf("check-in: %q", q.CheckIn)
	}
	if q.Arrival.ID != "604" {
		t.Fatalf("region should come from the hotel's town, got %q", q.Arrival.ID)
	}
}

func TestOfferDetails_MissingHotelFallsBackToDefaultID(t *testing.T) {
	fc := &fakeClient{
		detail: detailFixture(""),
		hotels: oneHotelFixture("33", 300),
	}
	svc := app.NewDetailService(fc)

	res := svc.OfferDetails(context.Background(), "off-1")
	if !res.Success {
		t.Fatalf("failure: %s", res.Message)
	}
	if len(fc.lastQuery.Products) != 1 || fc.lastQuery.Products[0] != "33" {
		t.Fatalf("expected fallback hotel id, got %+v", fc.lastQuery.Products)
	}
	if fc.lastQuery.Arrival.ID != "4" {
		t.Fatalf("expected fallback region, got %q", fc.lastQuery.Arrival.ID)
	}
	if len(res.Data.RoomOffers) != 1 {
		t.Fatalf("room search must proceed on the fallback id: %+v", res.Data.RoomOffers)
	}
}

func TestOfferDetails_LookupFailure(t *testing.T) {
	fc := &fakeClient{errDetail: domain.ErrOfferNotFound}
	svc := app.NewDetailService(fc)

	res := svc.OfferDetails(context.Background(), "off-404")
	if res.Success {
		t.Fatal("expected failure")
	}
	if fc.searchCalls != 0 {
		t.Fatal("no room search after a failed detail lookup")
	}
}

func TestRoomOffers_UnionFallbackWhenNoExactMatch(t *testing.T) {
	fc := &fakeClient{hotels: []domain.Hotel{
		{ID: "10", Offers: []domain.Offer{{OfferID: "a", Price: domain.Price{Amount: 100}}}},
		{ID: "11", Offers: []domain.Offer{{OfferID: "b", Price: domain.Price{Amount: 200}}}},
	}}
	svc := app.NewDetailService(fc)

	res := svc.RoomOffers(context.Background(), "99", app.RoomCriteria{
		CheckIn:  "2025-09-12",
		Duration: 7,
	})
	if !res.Success {
		t.Fatalf("failure: %s", res.Message)
	}
	if len(res.Data) != 2 {
		t.Fatalf("expected union of all offers, got %+v", res.Data)
	}
}

func TestRoomOffers_NoOffersAnywhere(t *testing.T) {
	fc := &fakeClient{hotels: []domain.Hotel{{ID: "10"}}}
	svc := app.NewDetailService(fc)

	res := svc.RoomOffers(context.Background(), "99", app.RoomCriteria{})
	if res.Success {
		t.Fatal("expected failure")
	}
	if res.Message != "No offers found for this hotel" {
		t.Fatalf("message: %q", res.Message)
	}
}

func TestRoomOffers_DefaultCriteria(t *testing.T) {
	fc := &fakeClient{hotels: oneHotelFixture("99", 300)}
	svc := app.NewDetailService(fc)

	res := svc.RoomOffers(context.Background(), "99", app.RoomCriteria{})
	if !res.Success {
		t.Fatalf("failure: %s", res.Message)
	}
	q := fc.lastQuery
	if q.Night != 7 {
		t.Fatalf("default duration: %d", q.Night)
	}
	if len(q.Rooms) != 1 || q.Rooms[0].Adult != 2 || len(q.Rooms[0].ChildAges) != 0 {
		t.Fatalf("default rooms: %+v", q.Rooms)
	}
	if q.Nationality != "XK" {
		t.Fatalf("nationality: %q", q.Nationality)
	}
	if q.Departure.ID != "2" {
		t.Fatalf("departure: %q", q.Departure.ID)
	}
}
