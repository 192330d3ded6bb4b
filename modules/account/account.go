// Package account serves the login and logout actions.
package account

import (
	"context"
	"net/http"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"github.com/unus-solutions/propdocs/handler"
	"github.com/unus-solutions/propdocs/pkg/binder"
	"github.com/unus-solutions/propdocs/pkg/session"
	"github.com/unus-solutions/propdocs/views"
)

// Authenticator is the subset of auth.Authenticator the module needs.
type Authenticator interface {
	Login(ctx context.Context, w http.ResponseWriter, username, password string) (session.Session, error)
	Logout(ctx context.Context, w http.ResponseWriter) session.Session
}

// Views renders the login screen.
type Views struct {
	LoginPage func(views.LoginParams) templ.Component
	LoginForm func(views.LoginParams) templ.Component
}

type Service struct {
	auth         Authenticator
	views        *Views
	errorHandler handler.ErrorHandler[handler.Context]
	homeURL      string
	loginGuards  []func(http.Handler) http.Handler
}

type Option func(*Service)

// WithLoginMiddleware wraps only POST /login, e.g. with a rate limiter.
func WithLoginMiddleware(mw ...func(http.Handler) http.Handler) Option {
	return func(s *Service) { s.loginGuards = append(s.loginGuards, mw...) }
}

func NewService(auth Authenticator, v *Views, errorHandler handler.ErrorHandler[handler.Context], opts ...Option) *Service {
	s := &Service{
		auth:         auth,
		views:        v,
		errorHandler: errorHandler,
		homeURL:      "/",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register adds POST /login and POST /logout to r.
func (s *Service) Register(r chi.Router) {
	r.With(s.loginGuards...).Post("/login", handler.Wrap(s.login,
		handler.WithBinders[handler.Context, LoginRequest](binder.Form(), binder.Signals()),
		handler.WithErrorHandler[handler.Context, LoginRequest](s.errorHandler),
	))
	r.Post("/logout", handler.Wrap(s.logout,
		handler.WithErrorHandler[handler.Context, struct{}](s.errorHandler),
	))
}

// LoginRequest accepts a plain form post or datastar signals.
type LoginRequest struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}

func (s *Service) login(ctx handler.Context, req LoginRequest) handler.Response {
	sess, err := s.auth.Login(ctx, ctx.ResponseWriter(), req.Username, req.Password)
	if err != nil {
		return handler.Fail(err)
	}
	if sess.IsAuthenticated() {
		return handler.Redirect(s.homeURL)
	}

	params := views.LoginParams{
		Username: req.Username,
		Failed:   sess.IsFailed(),
	}
	return handler.TemplPartial(
		s.views.LoginForm(params),
		s.views.LoginPage(params),
		handler.WithTarget("#login-form"),
	)
}

func (s *Service) logout(ctx handler.Context, _ struct{}) handler.Response {
	s.auth.Logout(ctx, ctx.ResponseWriter())
	return handler.Redirect(s.homeURL)
}
