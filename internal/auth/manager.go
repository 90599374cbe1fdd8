// internal/auth/manager.go
package auth

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"maxtravel_booking/internal/domain"
)

// Manager owns the process-wide session. It lazily authenticates with the
// current credential and replaces the held session wholesale on every
// successful login. Concurrent callers racing an expired session may each
// trigger a login; the last successful one wins.
type Manager struct {
	auth       domain.Authenticator
	defaultCrd domain.Credential

	mu      sync.Mutex
	current domain.Credential
	session *domain.Session
	now     func() time.Time
}

func NewManager(a domain.Authenticator, def domain.Credential) *Manager {
	return &Manager{auth: a, defaultCrd: def, current: def, now: time.Now}
}

// Token returns a token guaranteed non-expired at the instant of return.
func (m *Manager) Token(ctx context.Context) (string, error) {
	m.mu.Lock()
	if m.session.Valid(m.now()) {
		tok := m.session.Token
		m.mu.Unlock()
		return tok, nil
	}
	m.mu.Unlock()
	return m.Refresh(ctx)
}

// Refresh authenticates with the current credential unconditionally.
func (m *Manager) Refresh(ctx context.Context) (string, error) {
	m.mu.Lock()
	cred := m.current
	m.mu.Unlock()

	s, err := m.auth.Authenticate(ctx, cred)
	if err != nil {
		return "", err
	}

	m.mu.Lock()
	m.session = s
	m.mu.Unlock()

	log.Debug().Time("expires_on", s.ExpiresOn).Msg("session refreshed")
	return s.Token, nil
}

// Login authenticates explicitly. A nil credential means the default. This is
// the only path that changes which credential later refreshes use.
func (m *Manager) Login(ctx context.Context, cred *domain.Credential) (*domain.Session, error) {
	c := m.defaultCrd
	if cred != nil {
		c = *cred
	}
	s, err := m.auth.Authenticate(ctx, c)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.current = c
	m.session = s
	m.mu.Unlock()

	log.Info().Str("agency", c.Agency).Str("user", c.User).Msg("logged in")
	return s, nil
}

// Logout drops the session and reverts to the default credential.
func (m *Manager) Logout() {
	m.mu.Lock()
	m.session = nil
	m.current = m.defaultCrd
	m.mu.Unlock()
	log.Info().Msg("logged out")
}

// IsAuthenticated reports whether an unexpired session is held.
func (m *Manager) IsAuthenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session.Valid(m.now())
}

// Session returns the held session, or nil. Callers must not mutate it.
func (m *Manager) Session() *domain.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session
}
