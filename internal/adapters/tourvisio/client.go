// internal/adapters/tourvisio/client.go
package tourvisio

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"maxtravel_booking/internal/adapters/observability"
	"maxtravel_booking/internal/domain"
)

// Remote endpoints this layer depends on.
const (
	epLogin        = "/api/authenticationservice/login"
	epDepartures   = "/api/productservice/getdepartures"
	epArrivals     = "/api/productservice/getarrivals"
	epCheckinDates = "/api/productservice/getcheckindates"
	epNights       = "/api/productservice/getnights"
	epPriceSearch  = "/api/productservice/pricesearch"
	epOfferDetails = "/api/productservice/getofferdetails"
)

// productTypeHolidayPackage is the only product family the storefront sells.
const productTypeHolidayPackage = 1

const defaultCulture = "en-US"

// Client is the gateway to the holiday-package API. Every product call carries
// the bearer token from the token source; a single bounded retry after forced
// re-authentication absorbs token-expiry races.
type Client struct {
	base   string
	hc     *http.Client
	tokens domain.TokenSource
	rl     *rate.Limiter
}

// New builds a Client. The token source may be nil only until SetTokenSource
// is called; this breaks the construction cycle with the session manager,
// which needs the client as its Authenticator.
func New(base string, rps int) (*Client, error) {
	if base == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{Timeout: 20 * time.Second},
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

func (c *Client) SetTokenSource(ts domain.TokenSource) { c.tokens = ts }

// Authenticate implements domain.Authenticator. Login is the one call that
// goes out without a bearer header.
func (c *Client) Authenticate(ctx context.Context, cred domain.Credential) (*domain.Session, error) {
	var body loginBody
	err := c.do(ctx, epLogin, loginRequest{
		Agency:   cred.Agency,
		User:     cred.User,
		Password: cred.Password,
	}, &body, "")
	if err != nil {
		var env *domain.EnvelopeError
		if errors.As(err, &env) {
			return nil, &domain.AuthError{Message: env.Message, Err: err}
		}
		return nil, &domain.AuthError{Message: "Authentication failed", Err: err}
	}
	exp, perr := parseExpiry(body.ExpiresOn)
	if perr != nil {
		return nil, &domain.AuthError{Message: "Authentication failed", Err: perr}
	}
	return &domain.Session{Token: body.Token, ExpiresOn: exp, UserInfo: body.UserInfo}, nil
}

func (c *Client) GetDepartures(ctx context.Context) ([]domain.Location, error) {
	var body locationsBody
	req := departuresRequest{ProductType: productTypeHolidayPackage, Culture: defaultCulture}
	if err := c.post(ctx, epDepartures, req, &body); err != nil {
		return nil, err
	}
	return body.Locations, nil
}

func (c *Client) GetArrivals(ctx context.Context, departure domain.Location) ([]domain.Location, error) {
	var body locationsBody
	req := arrivalsRequest{
		ProductType:        productTypeHolidayPackage,
		DepartureLocations: []locationRef{{ID: departure.ID, Type: departure.Type}},
		Culture:            defaultCulture,
	}
	if err := c.post(ctx, epArrivals, req, &body); err != nil {
		return nil, err
	}
	return body.Locations, nil
}

func (c *Client) GetCheckinDates(ctx context.Context, departure string, regions []int) ([]string, error) {
	var body datesBody
	req := checkinDatesRequest{
		ProductType:         productTypeHolidayPackage,
		DepartureLocations:  []locationRef{{ID: departure, Type: domain.LocationTypeCity}},
		ArrivalLocations:    regionRefs(regions),
		IncludeSubLocations: true,
		Culture:             defaultCulture,
	}
	if err := c.post(ctx, epCheckinDates, req, &body); err != nil {
		return nil, err
	}
	// dates arrive as timestamps; the storefront only wants the date part
	out := make([]string, 0, len(body.Dates))
	for _, d := range body.Dates {
		if i := strings.IndexByte(d, 'T'); i > 0 {
			d = d[:i]
		}
		out = append(out, d)
	}
	return out, nil
}

func (c *Client) GetNights(ctx context.Context, departure string, regions []int, checkIn string) ([]int, error) {
	var body nightsBody
	req := nightsRequest{
		ProductType:         productTypeHolidayPackage,
		DepartureLocations:  []locationRef{{ID: departure, Type: domain.LocationTypeCity}},
		ArrivalLocations:    regionRefs(regions),
		IncludeSubLocations: true,
		CheckIn:             checkIn,
		Culture:             defaultCulture,
	}
	if err := c.post(ctx, epNights, req, &body); err != nil {
		return nil, err
	}
	return body.Nights, nil
}

func (c *Client) PriceSearch(ctx context.Context, q domain.PriceSearchQuery) ([]domain.Hotel, error) {
	culture := q.Culture
	if culture == "" {
		culture = defaultCulture
	}
	rooms := make([]roomCriteria, 0, len(q.Rooms))
	for _, r := range q.Rooms {
		ages := r.ChildAges
		if ages == nil {
			ages = []int{}
		}
		rooms = append(rooms, roomCriteria{Adult: r.Adult, ChildAges: ages})
	}
	var body priceSearchBody
	req := priceSearchRequest{
		ProductType:         productTypeHolidayPackage,
		DepartureLocations:  []locationRef{{ID: q.Departure.ID, Type: q.Departure.Type}},
		ArrivalLocations:    []locationRef{{ID: q.Arrival.ID, Type: q.Arrival.Type}},
		IncludeSubLocations: true,
		CheckIn:             q.CheckIn,
		Night:               q.Night,
		Products:            q.Products,
		RoomCriteria:        rooms,
		Nationality:         q.Nationality,
		Currency:            q.Currency,
		Culture:             culture,
	}
	if err := c.post(ctx, epPriceSearch, req, &body); err != nil {
		return nil, err
	}
	return body.Hotels, nil
}

func (c *Client) GetOfferDetails(ctx context.Context, offerID string) (*domain.OfferDetail, error) {
	var body offerDetailsBody
	req := offerDetailsRequest{
		OfferIDs:       []string{offerID},
		GetProductInfo: true,
		Currency:       "EUR",
		Culture:        defaultCulture,
	}
	if err := c.post(ctx, epOfferDetails, req, &body); err != nil {
		return nil, err
	}
	if len(body.OfferDetails) == 0 {
		return nil, domain.ErrOfferNotFound
	}
	return &body.OfferDetails[0], nil
}

// ---- Internals ----

// post sends one authenticated request. On a typed auth failure it forces a
// re-authentication and retries exactly once; anything else, or a second auth
// failure, propagates immediately.
func (c *Client) post(ctx context.Context, endpoint string, payload, out any) error {
	tok, err := c.tokens.Token(ctx)
	if err != nil {
		return err
	}
	err = c.do(ctx, endpoint, payload, out, tok)
	if err == nil || !domain.IsAuthFailure(err) {
		return err
	}

	tok, rerr := c.tokens.Refresh(ctx)
	if rerr != nil {
		return rerr
	}
	return c.do(ctx, endpoint, payload, out, tok)
}

func (c *Client) do(ctx context.Context, endpoint string, payload, out any, token string) error {
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}

	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+endpoint, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal("tourvisio", endpoint, 0, time.Since(start))
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return &domain.TransportError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()
	observability.ObserveExternal("tourvisio", endpoint, resp.StatusCode, time.Since(start))

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return &domain.TransportError{Endpoint: endpoint, Status: resp.StatusCode}
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return &domain.TransportError{Endpoint: endpoint, Err: err}
	}
	if !env.Header.Success {
		return &domain.EnvelopeError{Endpoint: endpoint, Message: env.firstMessage()}
	}
	if out != nil && len(env.Body) > 0 {
		if err := json.Unmarshal(env.Body, out); err != nil {
			return &domain.TransportError{Endpoint: endpoint, Err: err}
		}
	}
	return nil
}

func regionRefs(regions []int) []locationRef {
	refs := make([]locationRef, 0, len(regions))
	for _, r := range regions {
		refs = append(refs, locationRef{ID: fmt.Sprint(r), Type: domain.LocationTypeCity})
	}
	return refs
}

// parseExpiry accepts the timestamp forms the login service has been seen to
// emit, with and without a zone offset.
func parseExpiry(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized expiry %q", s)
}
