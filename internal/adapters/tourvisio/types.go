package tourvisio

import (
	"encoding/json"

	"maxtravel_booking/internal/domain"
)

// Every response is wrapped in this header/body envelope; header.success=false
// is the request-level failure signal and the first message carries the
// user-facing reason.
type envelope struct {
	Header struct {
		RequestID string `json:"requestId"`
		Success   bool   `json:"success"`
		Messages  []struct {
			ID          int    `json:"id"`
			Code        string `json:"code"`
			MessageType int    `json:"messageType"`
			Message     string `json:"message"`
		} `json:"messages"`
	} `json:"header"`
	Body json.RawMessage `json:"body"`
}

func (e *envelope) firstMessage() string {
	if len(e.Header.Messages) > 0 {
		return e.Header.Messages[0].Message
	}
	return ""
}

type loginRequest struct {
	Agency   string `json:"Agency"`
	User     string `json:"User"`
	Password string `json:"Password"`
}

type loginBody struct {
	Token     string          `json:"token"`
	ExpiresOn string          `json:"expiresOn"`
	TokenID   int             `json:"tokenId"`
	UserInfo  domain.UserInfo `json:"userInfo"`
}

type locationRef struct {
	ID   string `json:"Id"`
	Type int    `json:"Type"`
}

type departuresRequest struct {
	ProductType int    `json:"ProductType"`
	Culture     string `json:"culture"`
}

type arrivalsRequest struct {
	ProductType        int           `json:"ProductType"`
	DepartureLocations []locationRef `json:"DepartureLocations"`
	Culture            string        `json:"culture"`
}

type locationsBody struct {
	Locations []domain.Location `json:"locations"`
}

type checkinDatesRequest struct {
	ProductType         int           `json:"ProductType"`
	DepartureLocations  []locationRef `json:"DepartureLocations"`
	ArrivalLocations    []locationRef `json:"ArrivalLocations"`
	IncludeSubLocations bool          `json:"IncludeSubLocations"`
	Culture             string        `json:"culture"`
}

type datesBody struct {
	Dates []string `json:"dates"`
}

type nightsRequest struct {
	ProductType         int           `json:"ProductType"`
	DepartureLocations  []locationRef `json:"DepartureLocations"`
	ArrivalLocations    []locationRef `json:"ArrivalLocations"`
	IncludeSubLocations bool          `json:"IncludeSubLocations"`
	CheckIn             string        `json:"CheckIn"`
	Culture             string        `json:"culture"`
}

type nightsBody struct {
	Nights []int `json:"nights"`
}

type roomCriteria struct {
	Adult     int   `json:"Adult"`
	ChildAges []int `json:"ChildAges"`
}

type priceSearchRequest struct {
	ProductType         int            `json:"ProductType"`
	DepartureLocations  []locationRef  `json:"DepartureLocations"`
	ArrivalLocations    []locationRef  `json:"ArrivalLocations"`
	IncludeSubLocations bool           `json:"IncludeSubLocations"`
	CheckIn             string         `json:"CheckIn"`
	Night               int            `json:"Night"`
	Products            []string       `json:"Products,omitempty"`
	RoomCriteria        []roomCriteria `json:"RoomCriteria"`
	CheckAllotment      bool           `json:"CheckAllotment"`
	CheckStopSale       bool           `json:"CheckStopSale"`
	Nationality         string         `json:"Nationality"`
	Currency            string         `json:"currency"`
	Culture             string         `json:"culture"`
}

type priceSearchBody struct {
	Hotels []domain.Hotel `json:"hotels"`
}

type offerDetailsRequest struct {
	OfferIDs       []string `json:"offerIds"`
	GetProductInfo bool     `json:"getProductInfo"`
	Currency       string   `json:"currency"`
	Culture        string   `json:"culture"`
}

type offerDetailsBody struct {
	OfferDetails []domain.OfferDetail `json:"offerDetails"`
}
