package session

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/unus-solutions/propdocs/pkg/cookie"
	"github.com/unus-solutions/propdocs/pkg/jwt"
)

// claims is the token payload: sub carries the username.
type claims struct {
	jwt.RegisteredClaims
	Name string `json:"name,omitempty"`
}

// Manager issues, resolves and clears sessions.
type Manager struct {
	tokens        *jwt.Service
	transport     Transport
	cookieManager *cookie.Manager
	cookieOptions []cookie.Option
	ttl           time.Duration
	now           func() time.Time
}

// New creates a Manager that stores tokens in the cookie named cookieName,
// signed with signingKey.
func New(cookieName, signingKey string, opts ...Option) (*Manager, error) {
	if strings.TrimSpace(cookieName) == "" || signingKey == "" {
		return nil, ErrInvalidConfig
	}

	m := &Manager{
		ttl: DefaultTTL,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}

	tokens, err := jwt.NewFromString(signingKey, jwt.WithTimeFunc(func() time.Time { return m.now() }))
	if err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}
	m.tokens = tokens

	if m.transport == nil {
		if m.cookieManager == nil {
			m.cookieManager = cookie.New()
		}
		m.transport = NewCookieTransport(m.cookieManager, cookieName, m.cookieOptions...)
	}

	return m, nil
}

// TTL returns the lifetime of issued sessions.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Issue creates an authenticated session for username and writes its token.
func (m *Manager) Issue(w http.ResponseWriter, username, displayName string) (Session, error) {
	now := m.now()
	exp := now.Add(m.ttl)

	token, err := m.tokens.Generate(&claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		Name: displayName,
	})
	if err != nil {
		return Unauthenticated(), errors.Join(ErrTokenGeneration, err)
	}

	if err := m.transport.SetToken(w, token, m.ttl); err != nil {
		return Unauthenticated(), err
	}

	return Session{
		Status:      StatusAuthenticated,
		Username:    username,
		DisplayName: displayName,
		Token:       token,
		IssuedAt:    now.Truncate(time.Second),
		ExpiresAt:   exp.Truncate(time.Second),
	}, nil
}

// Verify parses a token into an authenticated Session.
func (m *Manager) Verify(token string) (Session, error) {
	if token == "" {
		return Unauthenticated(), ErrSessionNotFound
	}

	var c claims
	if err := m.tokens.Parse(token, &c); err != nil {
		if errors.Is(err, jwt.ErrExpiredToken) {
			return Unauthenticated(), ErrSessionExpired
		}
		return Unauthenticated(), errors.Join(ErrInvalidSession, err)
	}
	if c.Subject == "" {
		return Unauthenticated(), ErrInvalidSession
	}

	s := Session{
		Status:      StatusAuthenticated,
		Username:    c.Subject,
		DisplayName: c.Name,
		Token:       token,
	}
	if c.IssuedAt != nil {
		s.IssuedAt = c.IssuedAt.Time
	}
	if c.ExpiresAt != nil {
		s.ExpiresAt = c.ExpiresAt.Time
	}
	return s, nil
}

// Resolve returns the session carried by r. Missing, invalid or expired
// tokens yield an unauthenticated session.
func (m *Manager) Resolve(r *http.Request) Session {
	token, err := m.transport.GetToken(r)
	if err != nil {
		return Unauthenticated()
	}
	s, err := m.Verify(token)
	if err != nil {
		return Unauthenticated()
	}
	return s
}

// Clear removes the session token and returns a fresh unauthenticated session.
func (m *Manager) Clear(w http.ResponseWriter) Session {
	_ = m.transport.ClearToken(w)
	return Unauthenticated()
}
