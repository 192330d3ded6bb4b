// Package auth gates the portal: it checks login attempts against the
// credential document and turns the outcome into a session.
package auth

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/unus-solutions/propdocs/pkg/cookie"
	"github.com/unus-solutions/propdocs/pkg/credentials"
	"github.com/unus-solutions/propdocs/pkg/logger"
	"github.com/unus-solutions/propdocs/pkg/session"
)

// CredentialStore verifies a username/password pair.
type CredentialStore interface {
	Authenticate(username, password string) (credentials.Record, error)
}

// SessionManager issues and clears session tokens.
type SessionManager interface {
	Issue(w http.ResponseWriter, username, displayName string) (session.Session, error)
	Resolve(r *http.Request) session.Session
	Clear(w http.ResponseWriter) session.Session
}

// Authenticator implements login and logout on top of a CredentialStore and a SessionManager.
type Authenticator struct {
	store    CredentialStore
	sessions SessionManager
	logger   *slog.Logger
}

type Option func(*Authenticator)

func WithLogger(l *slog.Logger) Option {
	return func(a *Authenticator) {
		if l != nil {
			a.logger = l
		}
	}
}

func New(store CredentialStore, sessions SessionManager, opts ...Option) *Authenticator {
	a := &Authenticator{
		store:    store,
		sessions: sessions,
		logger:   logger.Discard(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// NewSessionManager builds a session.Manager from the cookie section of the
// credential document: cookie name, signing key and expiry.
func NewSessionManager(store *credentials.Store, cm *cookie.Manager) (*session.Manager, error) {
	c := store.Cookie()
	return session.New(c.Name, c.Key,
		session.WithTTL(c.Expiry()),
		session.WithCookieManager(cm),
	)
}

// Login checks username and password. A match issues a session cookie and
// returns an authenticated Session. A mismatch returns a failed Session.
// An empty submission leaves the session unauthenticated.
// The error is non-nil only when the session cannot be issued.
func (a *Authenticator) Login(ctx context.Context, w http.ResponseWriter, username, password string) (session.Session, error) {
	if username == "" && password == "" {
		return session.Unauthenticated(), nil
	}

	rec, err := a.store.Authenticate(username, password)
	if err != nil {
		a.logger.InfoContext(ctx, "login rejected",
			logger.Event("login_failed"),
			logger.Component("auth"),
		)
		return session.Failed(), nil
	}

	s, err := a.sessions.Issue(w, rec.Username, rec.DisplayName)
	if err != nil {
		a.logger.ErrorContext(ctx, "failed to issue session",
			logger.UserID(rec.Username),
			logger.Error(err),
			logger.Component("auth"),
		)
		return session.Unauthenticated(), err
	}

	a.logger.InfoContext(ctx, "login succeeded",
		logger.UserID(rec.Username),
		logger.Event("login"),
		logger.Component("auth"),
	)
	return s, nil
}

// Logout discards the session and returns a fresh unauthenticated one.
func (a *Authenticator) Logout(ctx context.Context, w http.ResponseWriter) session.Session {
	if username, ok := session.UsernameFromContext(ctx); ok {
		a.logger.InfoContext(ctx, "logout",
			logger.UserID(username),
			logger.Event("logout"),
			logger.Component("auth"),
		)
	}
	return a.sessions.Clear(w)
}

// Current returns the session carried by r.
func (a *Authenticator) Current(r *http.Request) session.Session {
	return a.sessions.Resolve(r)
}
