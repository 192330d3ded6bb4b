package session

import (
	"context"
	"log/slog"

	"github.com/unus-solutions/propdocs/pkg/logger"
)

type sessionContextKey struct{}

// WithSession adds a session to the context.
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, s)
}

// FromContext returns the session stored in ctx, or an unauthenticated one.
func FromContext(ctx context.Context) Session {
	if ctx == nil {
		return Unauthenticated()
	}
	s, ok := ctx.Value(sessionContextKey{}).(Session)
	if !ok {
		return Unauthenticated()
	}
	return s
}

// UsernameFromContext returns the authenticated username, if any.
func UsernameFromContext(ctx context.Context) (string, bool) {
	s := FromContext(ctx)
	if !s.IsAuthenticated() {
		return "", false
	}
	return s.Username, true
}

// LoggerExtractor returns a ContextExtractor for the logger.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if username, ok := UsernameFromContext(ctx); ok {
			return logger.UserID(username), true
		}
		return slog.Attr{}, false
	}
}
