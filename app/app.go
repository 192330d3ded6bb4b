// Package app assembles the portal: configuration, storage, sessions,
// translations and routes.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/unus-solutions/propdocs/handler"
	"github.com/unus-solutions/propdocs/modules/account"
	"github.com/unus-solutions/propdocs/modules/proposals"
	"github.com/unus-solutions/propdocs/pkg/archive"
	"github.com/unus-solutions/propdocs/pkg/clientip"
	"github.com/unus-solutions/propdocs/pkg/cookie"
	"github.com/unus-solutions/propdocs/pkg/credentials"
	"github.com/unus-solutions/propdocs/pkg/environment"
	"github.com/unus-solutions/propdocs/pkg/file"
	"github.com/unus-solutions/propdocs/pkg/httpserver"
	"github.com/unus-solutions/propdocs/pkg/i18n"
	"github.com/unus-solutions/propdocs/pkg/logger"
	"github.com/unus-solutions/propdocs/pkg/ratelimiter"
	"github.com/unus-solutions/propdocs/pkg/requestid"
	"github.com/unus-solutions/propdocs/pkg/session"
	"github.com/unus-solutions/propdocs/svc/auth"
	"github.com/unus-solutions/propdocs/svc/documents"
	"github.com/unus-solutions/propdocs/views"
)

var (
	ErrLoadCredentials = errors.New("app: failed to load credentials")
	ErrStorage         = errors.New("app: failed to initialize storage")
	ErrTranslations    = errors.New("app: failed to load translations")
	ErrSessions        = errors.New("app: failed to initialize sessions")
	ErrRateLimiter     = errors.New("app: failed to initialize login rate limiter")
)

// App holds the assembled HTTP handler and the server that runs it.
type App struct {
	cfg       Config
	log       *slog.Logger
	handler   http.Handler
	server    *httpserver.Server
	closers   []func()
	closeOnce sync.Once
}

type options struct {
	logger     *slog.Logger
	store      *credentials.Store
	s3Options  []file.S3Option
	middleware []func(http.Handler) http.Handler
}

type Option func(*options)

func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithCredentials uses store instead of reading Config.CredentialsFile.
func WithCredentials(store *credentials.Store) Option {
	return func(o *options) { o.store = store }
}

// WithS3Options passes extra options to file.NewS3Storage, e.g. a custom client.
func WithS3Options(opts ...file.S3Option) Option {
	return func(o *options) { o.s3Options = append(o.s3Options, opts...) }
}

// WithMiddleware appends middleware after the built-in chain.
func WithMiddleware(mw ...func(http.Handler) http.Handler) Option {
	return func(o *options) { o.middleware = append(o.middleware, mw...) }
}

// New wires every component from cfg.
func New(ctx context.Context, cfg Config, opts ...Option) (*App, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	env := environment.Parse(cfg.Env)
	log := o.logger
	if log == nil {
		log = logger.New(
			logger.WithEnvironment(string(env), cfg.Name),
			logger.WithContextExtractors(
				requestid.LoggerExtractor(),
				clientip.LoggerExtractor(),
				session.LoggerExtractor(),
			),
		)
	}

	store := o.store
	if store == nil {
		var err error
		store, err = credentials.LoadFile(cfg.CredentialsFile)
		if err != nil {
			return nil, errors.Join(ErrLoadCredentials, err)
		}
	}

	s3cfg := cfg.S3
	s3cfg.Bucket = documents.Bucket
	storage, err := file.NewS3Storage(ctx, s3cfg, o.s3Options...)
	if err != nil {
		return nil, errors.Join(ErrStorage, err)
	}

	translator, err := i18n.NewTranslator(ctx,
		i18n.NewFSAdapter(i18n.NewYAMLParser(), views.Locales, views.LocalesDir),
		i18n.WithDefaultLanguage(cfg.DefaultLanguage),
		i18n.WithLogger(log.With(logger.Component("i18n"))),
		i18n.WithMissingTranslationsLogging(env != environment.Production),
	)
	if err != nil {
		return nil, errors.Join(ErrTranslations, err)
	}

	sessions, err := auth.NewSessionManager(store, cookie.NewFromConfig(cfg.Cookie))
	if err != nil {
		return nil, errors.Join(ErrSessions, err)
	}

	v := views.New(translator)
	errorHandler := handler.NewErrorHandler(log, handler.ErrorHandlerConfig{
		ErrorPage:  v.ErrorPage,
		ErrorToast: v.ErrorToast,
		Translate:  translator.Tc,
	})

	var (
		closers     []func()
		accountOpts []account.Option
	)
	if cfg.LoginRateLimit > 0 {
		attempts := ratelimiter.NewMemoryStore()
		closers = append(closers, attempts.Close)
		bucket, err := ratelimiter.NewBucket(attempts, ratelimiter.Config{
			Capacity:       cfg.LoginRateLimit,
			RefillRate:     1,
			RefillInterval: cfg.LoginRateInterval,
		})
		if err != nil {
			attempts.Close()
			return nil, errors.Join(ErrRateLimiter, err)
		}
		accountOpts = append(accountOpts, account.WithLoginMiddleware(
			ratelimiter.Middleware(bucket, ratelimiter.ClientIPKey("login"),
				ratelimiter.WithLimitedHandler(fail(handler.ErrTooManyRequests, errorHandler)),
				ratelimiter.WithLogger(log),
			),
		))
	}

	authenticator := auth.New(store, sessions, auth.WithLogger(log.With(logger.Component("auth"))))
	docs := documents.NewService(storage,
		documents.WithLinkTTL(cfg.LinkTTL),
		documents.WithLogger(log.With(logger.Component("documents"))),
	)
	builder := archive.NewBuilder(storage,
		archive.WithScratchDir(cfg.ScratchDir),
		archive.WithLogger(log.With(logger.Component("archive"))),
	)

	r := chi.NewRouter()
	r.Use(
		requestid.Middleware,
		clientip.Middleware,
		middleware.Recoverer,
		environment.Middleware(env),
		i18n.Middleware(translator),
		sessions.Middleware,
	)
	r.Use(o.middleware...)

	account.NewService(authenticator, &account.Views{
		LoginPage: v.LoginPage,
		LoginForm: v.LoginForm,
	}, errorHandler, accountOpts...).Register(r)

	proposals.NewService(docs, builder, &proposals.Views{
		LoginPage:  v.LoginPage,
		SearchPage: v.SearchPage,
		Results:    v.Results,
	}, errorHandler, proposals.WithLogger(log.With(logger.Component("proposals")))).Register(r)

	r.NotFound(fail(handler.ErrNotFound, errorHandler))
	r.MethodNotAllowed(fail(handler.ErrMethodNotAllowed, errorHandler))

	log.InfoContext(ctx, "application initialized",
		slog.String("bucket", documents.Bucket),
		slog.String("namespace", documents.Namespace),
		logger.Count(len(store.Usernames())),
		slog.Any("languages", translator.SupportedLanguages()),
	)

	a := &App{
		cfg:     cfg,
		log:     log,
		handler: r,
		closers: closers,
	}
	a.server = httpserver.NewFromConfig(cfg.HTTP,
		httpserver.WithLogger(log),
		httpserver.WithStopHook(func(context.Context, *slog.Logger) { a.Close() }),
	)
	return a, nil
}

func fail(err handler.HTTPError, eh handler.ErrorHandler[handler.Context]) http.HandlerFunc {
	return handler.Wrap(func(handler.Context, struct{}) handler.Response {
		return handler.Fail(err)
	}, handler.WithErrorHandler[handler.Context, struct{}](eh))
}

// Handler returns the root HTTP handler.
func (a *App) Handler() http.Handler {
	return a.handler
}

// Close releases background resources. It is safe to call more than once.
func (a *App) Close() {
	a.closeOnce.Do(func() {
		for _, c := range a.closers {
			c()
		}
	})
}

// Run serves until ctx is cancelled or a termination signal arrives.
func (a *App) Run(ctx context.Context) error {
	if err := a.server.Run(ctx, a.handler); err != nil {
		return fmt.Errorf("run %s: %w", a.cfg.Name, err)
	}
	a.log.InfoContext(ctx, "application stopped")
	return nil
}
