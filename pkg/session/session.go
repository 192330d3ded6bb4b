package session

import "time"

// Status is the authentication state of a Session.
type Status string

const (
	StatusUnauthenticated Status = "unauthenticated"
	StatusAuthenticated   Status = "authenticated"
	StatusFailed          Status = "failed"
)

// Session is the per-request view of the login state.
type Session struct {
	Status      Status
	Username    string
	DisplayName string
	Token       string
	IssuedAt    time.Time
	ExpiresAt   time.Time
}

// Unauthenticated returns the initial session state.
func Unauthenticated() Session {
	return Session{Status: StatusUnauthenticated}
}

// Failed returns the state after a rejected login attempt.
func Failed() Session {
	return Session{Status: StatusFailed}
}

func (s Session) IsAuthenticated() bool {
	return s.Status == StatusAuthenticated && s.Username != ""
}

func (s Session) IsFailed() bool {
	return s.Status == StatusFailed
}

// IsExpired reports whether an authenticated session is past its expiry at now.
func (s Session) IsExpired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}
