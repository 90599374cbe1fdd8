// internal/adapters/http_server/handlers.go
package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"maxtravel_booking/internal/adapters/observability"
	"maxtravel_booking/internal/app"
	"maxtravel_booking/internal/auth"
	"maxtravel_booking/internal/domain"
)

type Handlers struct {
	Auth      *auth.Manager
	Search    *app.SearchService
	Details   *app.DetailService
	Locations *app.LocationService
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Post("/v1/session/login", h.login)
	s.mux.Post("/v1/session/logout", h.logout)
	s.mux.Get("/v1/session", h.session)

	s.mux.Get("/v1/locations/departures", h.departures)
	s.mux.Get("/v1/locations/regions", h.regions)
	s.mux.Post("/v1/locations/checkindates", h.checkinDates)
	s.mux.Post("/v1/locations/nights", h.nights)
	s.mux.Post("/v1/locations/pricerange", h.priceRange)

	s.mux.Post("/v1/search", h.search)
	s.mux.Get("/v1/offers/{id}", h.offerDetails)
	s.mux.Post("/v1/hotels/{id}/rooms", h.roomOffers)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeResult serves orchestrator results. Failures stay HTTP 200; the UI
// keys off the success flag and renders the message.
func writeResult(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON result failed")
	}
}

// ---- session ----

type loginPayload struct {
	Agency   string `json:"agency"`
	User     string `json:"user"`
	Password string `json:"password"`
}

type sessionView struct {
	Authenticated bool             `json:"authenticated"`
	ExpiresOn     string           `json:"expiresOn,omitempty"`
	UserInfo      *domain.UserInfo `json:"userInfo,omitempty"`
}

func (h *Handlers) login(w http.ResponseWriter, r *http.Request) {
	var p loginPayload
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			writeProblem(w, http.StatusBadRequest, "Invalid body", "expected a JSON credential")
			return
		}
	}

	var cred *domain.Credential
	if p.Agency != "" || p.User != "" || p.Password != "" {
		cred = &domain.Credential{Agency: p.Agency, User: p.User, Password: p.Password}
	}

	s, err := h.Auth.Login(r.Context(), cred)
	observability.ObserveLogin(err)
	if err != nil {
		writeResult(w, app.Result[*sessionView]{Success: false, Message: err.Error()})
		return
	}
	writeResult(w, app.Result[*sessionView]{Success: true, Data: &sessionView{
		Authenticated: true,
		ExpiresOn:     s.ExpiresOn.Format("2006-01-02T15:04:05"),
		UserInfo:      &s.UserInfo,
	}})
}

func (h *Handlers) logout(w http.ResponseWriter, r *http.Request) {
	h.Auth.Logout()
	writeResult(w, app.Result[struct{}]{Success: true})
}

func (h *Handlers) session(w http.ResponseWriter, r *http.Request) {
	writeResult(w, sessionView{Authenticated: h.Auth.IsAuthenticated()})
}

// ---- locations ----

type locationQuery struct {
	DeparturePoint string `json:"departurePoint"`
	RegionList     []int  `json:"regionList"`
	CheckIn        string `json:"checkIn"`
	Duration       int    `json:"duration"`
}

func (h *Handlers) departures(w http.ResponseWriter, r *http.Request) {
	writeResult(w, h.Locations.Departures(r.Context()))
}

func (h *Handlers) regions(w http.ResponseWriter, r *http.Request) {
	writeResult(w, h.Locations.Regions(r.Context()))
}

func (h *Handlers) checkinDates(w http.ResponseWriter, r *http.Request) {
	q, httpErr := decodeLocationQuery(r)
	if httpErr != "" {
		writeProblem(w, http.StatusBadRequest, "Invalid body", httpErr)
		return
	}
	writeResult(w, h.Locations.CheckinDates(r.Context(), q.DeparturePoint, q.RegionList))
}

func (h *Handlers) nights(w http.ResponseWriter, r *http.Request) {
	q, httpErr := decodeLocationQuery(r)
	if httpErr != "" {
		writeProblem(w, http.StatusBadRequest, "Invalid body", httpErr)
		return
	}
	writeResult(w, h.Locations.Nights(r.Context(), q.DeparturePoint, q.RegionList, q.CheckIn))
}

func (h *Handlers) priceRange(w http.ResponseWriter, r *http.Request) {
	q, httpErr := decodeLocationQuery(r)
	if httpErr != "" {
		writeProblem(w, http.StatusBadRequest, "Invalid body", httpErr)
		return
	}
	writeResult(w, h.Locations.PriceRange(r.Context(), q.DeparturePoint, q.RegionList, q.CheckIn, q.Duration))
}

func decodeLocationQuery(r *http.Request) (locationQuery, string) {
	var q locationQuery
	if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
		return q, "expected a JSON location query"
	}
	if q.DeparturePoint == "" || len(q.RegionList) == 0 {
		return q, "departurePoint and regionList are required"
	}
	return q, ""
}

// ---- search & details ----

func (h *Handlers) search(w http.ResponseWriter, r *http.Request) {
	var req domain.SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid body", "expected a JSON search request")
		return
	}
	writeResult(w, h.Search.Search(r.Context(), req))
}

func (h *Handlers) offerDetails(w http.ResponseWriter, r *http.Request) {
	offerID := chi.URLParam(r, "id")
	if offerID == "" {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "offer id is required")
		return
	}
	writeResult(w, h.Details.OfferDetails(r.Context(), offerID))
}

func (h *Handlers) roomOffers(w http.ResponseWriter, r *http.Request) {
	hotelID := chi.URLParam(r, "id")
	if hotelID == "" {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "hotel id is required")
		return
	}
	var criteria app.RoomCriteria
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&criteria); err != nil {
			writeProblem(w, http.StatusBadRequest, "Invalid body", "expected JSON room criteria")
			return
		}
	}
	writeResult(w, h.Details.RoomOffers(r.Context(), hotelID, criteria))
}
