package domain

import "time"

// Credential is the agency login triple sent to the authentication service.
type Credential struct {
	Agency   string
	User     string
	Password string
}

// UserInfo is the agency/operator profile returned alongside a token.
type UserInfo struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Agency struct {
		Code         string `json:"code"`
		Name         string `json:"name"`
		RegisterCode string `json:"registerCode"`
	} `json:"agency"`
	Office struct {
		Code string `json:"code"`
		Name string `json:"name"`
	} `json:"office"`
	Operator struct {
		Code      string `json:"code"`
		Name      string `json:"name"`
		Thumbnail string `json:"thumbnail"`
	} `json:"operator"`
	Market struct {
		Code    string `json:"code"`
		Name    string `json:"name"`
		Favicon string `json:"favicon"`
	} `json:"market"`
}

// Session holds one issued bearer token. Sessions are never mutated; a
// re-authentication produces a replacement.
type Session struct {
	Token     string
	ExpiresOn time.Time
	UserInfo  UserInfo
}

// Valid reports whether the token can still be presented at time now.
func (s *Session) Valid(now time.Time) bool {
	return s != nil && s.Token != "" && now.Before(s.ExpiresOn)
}
