package tourvisio_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"maxtravel_booking/internal/adapters/tourvisio"
	"maxtravel_booking/internal/domain"
)

type fakeTokens struct {
	token     string
	refreshes atomic.Int32
}

func (f *fakeTokens) Token(ctx context.Context) (string, error) { return f.token, nil }
func (f *fakeTokens) Refresh(ctx context.Context) (string, error) {
	f.refreshes.Add(1)
	return f.token, nil
}

func okEnvelope(body any) map[string]any {
	return map[string]any{
		"header": map[string]any{"requestId": "r1", "success": true, "messages": []any{}},
		"body":   body,
	}
}

func failEnvelope(msg string) map[string]any {
	return map[string]any{
		"header": map[string]any{
			"requestId": "r1",
			"success":   false,
			"messages":  []any{map[string]any{"id": 1, "code": "E", "messageType": 2, "message": msg}},
		},
	}
}

func newClient(t *testing.T, base string, ts domain.TokenSource) *tourvisio.Client {
	t.Helper()
	cl, err := tourvisio.New(base, 100) // high RPS for tests
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	cl.SetTokenSource(ts)
	return cl
}

func TestGetDepartures_401RetriesOnceAfterRefresh(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) == 1 {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("bearer header: %q", got)
		}
		_ = json.NewEncoder(w).Encode(okEnvelope(map[string]any{
			"locations": []any{map[string]any{"id": "2", "name": "Prishtina", "type": 2, "code": "PRN"}},
		}))
	}))
	defer srv.Close()

	tokens := &fakeTokens{token: "tok"}
	cl := newClient(t, srv.URL, tokens)

	locs, err := cl.GetDepartures(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(locs) != 1 || locs[0].Code != "PRN" {
		t.Fatalf("locations: %+v", locs)
	}
	if got := tokens.refreshes.Load(); got != 1 {
		t.Fatalf("expected exactly 1 re-authentication, got %d", got)
	}
	if atomic.LoadInt32(&hits) != 2 {
		t.Fatalf("expected 2 calls, got %d", hits)
	}
}

func TestGetDepartures_SecondAuthFailurePropagates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	tokens := &fakeTokens{token: "tok"}
	cl := newClient(t, srv.URL, tokens)

	_, err := cl.GetDepartures(context.Background())
	var te *domain.TransportError
	if !errors.As(err, &te) || te.Status != http.StatusUnauthorized {
		t.Fatalf("expected 401 transport error, got %v", err)
	}
	if got := tokens.refreshes.Load(); got != 1 {
		t.Fatalf("retry must be bounded to one refresh, got %d", got)
	}
}

func TestPriceSearch_EnvelopeFailureCarriesRemoteMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(failEnvelope("No packages found"))
	}))
	defer srv.Close()

	cl := newClient(t, srv.URL, &fakeTokens{token: "tok"})

	_, err := cl.PriceSearch(context.Background(), domain.PriceSearchQuery{
		Departure: domain.Location{ID: "2", Type: 2},
		Arrival:   domain.Location{ID: "4", Type: 2},
		CheckIn:   "2025-09-12",
		Night:     7,
		Rooms:     []domain.Room{{Adult: 2}},
	})
	var ee *domain.EnvelopeError
	if !errors.As(err, &ee) || ee.Message != "No packages found" {
		t.Fatalf("expected envelope error with remote message, got %v", err)
	}
}

func TestPriceSearch_SendsDerivedAgesNotChildCount(t *testing.T) {
	var captured map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&captured)
		_ = json.NewEncoder(w).Encode(okEnvelope(map[string]any{"hotels": []any{}}))
	}))
	defer srv.Close()

	cl := newClient(t, srv.URL, &fakeTokens{token: "tok"})
	_, err := cl.PriceSearch(context.Background(), domain.PriceSearchQuery{
		Departure:   domain.Location{ID: "2", Type: 2},
		Arrival:     domain.Location{ID: "4", Type: 2},
		CheckIn:     "2025-09-12",
		Night:       7,
		Rooms:       []domain.Room{{Adult: 2, ChildAges: []int{4, 9}}},
		Nationality: "XK",
		Currency:    "EUR",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	rooms, _ := captured["RoomCriteria"].([]any)
	if len(rooms) != 1 {
		t.Fatalf("RoomCriteria: %+v", captured["RoomCriteria"])
	}
	room := rooms[0].(map[string]any)
	if _, has := room["Child"]; has {
		t.Fatal("child count must not be sent, only derived ages")
	}
	ages := room["ChildAges"].([]any)
	if len(ages) != 2 {
		t.Fatalf("ChildAges: %+v", ages)
	}
}

func TestAuthenticate_ParsesSessionAndRemoteRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req["Agency"] != "B2B" {
			_ = json.NewEncoder(w).Encode(failEnvelope("Invalid agency credentials"))
			return
		}
		_ = json.NewEncoder(w).Encode(okEnvelope(map[string]any{
			"token":     "tok-42",
			"expiresOn": "2099-01-02T15:04:05",
			"tokenId":   7,
			"userInfo":  map[string]any{"code": "GPT", "name": "Storefront"},
		}))
	}))
	defer srv.Close()

	cl := newClient(t, srv.URL, &fakeTokens{})

	s, err := cl.Authenticate(context.Background(), domain.Credential{Agency: "B2B", User: "GPT", Password: "x"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if s.Token != "tok-42" || s.ExpiresOn.Year() != 2099 || s.UserInfo.Code != "GPT" {
		t.Fatalf("session: %+v", s)
	}

	_, err = cl.Authenticate(context.Background(), domain.Credential{Agency: "WRONG"})
	var ae *domain.AuthError
	if !errors.As(err, &ae) || ae.Message != "Invalid agency credentials" {
		t.Fatalf("expected auth error with remote message, got %v", err)
	}
}

func TestGetCheckinDates_TruncatesTimestamps(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(okEnvelope(map[string]any{
			"dates": []string{"2025-09-12T00:00:00", "2025-09-19T00:00:00"},
		}))
	}))
	defer srv.Close()

	cl := newClient(t, srv.URL, &fakeTokens{token: "tok"})
	dates, err := cl.GetCheckinDates(context.Background(), "2", []int{4})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(dates) != 2 || dates[0] != "2025-09-12" {
		t.Fatalf("dates: %+v", dates)
	}
}

func TestGetOfferDetails_EmptyBodyIsNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(okEnvelope(map[string]any{"offerDetails": []any{}}))
	}))
	defer srv.Close()

	cl := newClient(t, srv.URL, &fakeTokens{token: "tok"})
	_, err := cl.GetOfferDetails(context.Background(), "offer-1")
	if !errors.Is(err, domain.ErrOfferNotFound) {
		t.Fatalf("expected ErrOfferNotFound, got %v", err)
	}
}
