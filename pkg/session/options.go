package session

import (
	"time"

	"github.com/unus-solutions/propdocs/pkg/cookie"
)

// DefaultTTL is the session lifetime when WithTTL is not given.
const DefaultTTL = 30 * 24 * time.Hour

type Option func(*Manager)

// WithTTL sets how long an issued session stays valid.
func WithTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.ttl = ttl
		}
	}
}

// WithTransport replaces the default cookie transport.
func WithTransport(t Transport) Option {
	return func(m *Manager) {
		m.transport = t
	}
}

// WithCookieManager sets the cookie manager used by the default transport.
func WithCookieManager(cm *cookie.Manager, opts ...cookie.Option) Option {
	return func(m *Manager) {
		m.cookieManager = cm
		m.cookieOptions = opts
	}
}

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}
