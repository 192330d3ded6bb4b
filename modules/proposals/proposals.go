// Package proposals serves the search page and the download-all archive.
package proposals

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"github.com/unus-solutions/propdocs/handler"
	"github.com/unus-solutions/propdocs/pkg/archive"
	"github.com/unus-solutions/propdocs/pkg/binder"
	"github.com/unus-solutions/propdocs/pkg/logger"
	"github.com/unus-solutions/propdocs/pkg/session"
	"github.com/unus-solutions/propdocs/svc/documents"
	"github.com/unus-solutions/propdocs/views"
)

// Lister is the subset of documents.Service the module needs.
type Lister interface {
	List(ctx context.Context, proposal string) ([]documents.Document, error)
	Keys(ctx context.Context, proposal string) ([]string, error)
	LinkTTL() time.Duration
}

// ArchiveBuilder is implemented by archive.Builder.
type ArchiveBuilder interface {
	Build(ctx context.Context, name string, keys []string) (*archive.Archive, error)
}

type Views struct {
	LoginPage  func(views.LoginParams) templ.Component
	SearchPage func(views.SearchParams) templ.Component
	Results    func(views.ResultsParams) templ.Component
}

type Service struct {
	lister       Lister
	builder      ArchiveBuilder
	views        *Views
	errorHandler handler.ErrorHandler[handler.Context]
	logger       *slog.Logger
	homeURL      string
}

type Option func(*Service)

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

func NewService(lister Lister, builder ArchiveBuilder, v *Views, errorHandler handler.ErrorHandler[handler.Context], opts ...Option) *Service {
	s := &Service{
		lister:       lister,
		builder:      builder,
		views:        v,
		errorHandler: errorHandler,
		logger:       logger.Discard(),
		homeURL:      "/",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register adds GET / and GET /proposals/{proposal}/archive to r.
// The session middleware must run before these routes.
func (s *Service) Register(r chi.Router) {
	r.Get("/", handler.Wrap(s.index,
		handler.WithBinders[handler.Context, SearchRequest](binder.Query(), binder.Signals()),
		handler.WithErrorHandler[handler.Context, SearchRequest](s.errorHandler),
	))

	r.With(session.RequireAuth(s.homeURL)).Get("/proposals/{proposal}/archive", handler.Wrap(s.archive,
		handler.WithBinders[handler.Context, ArchiveRequest](binder.Path(chi.URLParam)),
		handler.WithErrorHandler[handler.Context, ArchiveRequest](s.errorHandler),
	))
}

// SearchRequest carries the proposal number from the query string or the
// datastar "proposta" signal.
type SearchRequest struct {
	Proposal string `query:"proposta" json:"proposta"`
}

type ArchiveRequest struct {
	Proposal string `path:"proposal"`
}

func (s *Service) index(ctx handler.Context, req SearchRequest) handler.Response {
	sess := session.FromContext(ctx)
	if !sess.IsAuthenticated() {
		if handler.IsDataStar(ctx.Request()) {
			return handler.Redirect(s.homeURL)
		}
		return handler.Templ(s.views.LoginPage(views.LoginParams{}))
	}

	results := s.results(ctx, req.Proposal)
	return handler.TemplPartial(
		s.views.Results(results),
		s.views.SearchPage(views.SearchParams{DisplayName: displayName(sess), Results: results}),
		handler.WithTarget("#results"),
	)
}

func (s *Service) archive(ctx handler.Context, req ArchiveRequest) handler.Response {
	proposal, err := documents.NormalizeProposal(req.Proposal)
	if err != nil {
		return s.archiveFailed(ctx, http.StatusBadRequest, req.Proposal, "")
	}

	keys, err := s.lister.Keys(ctx, proposal)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list proposal for archive",
			logger.Proposal(proposal),
			logger.Error(err),
		)
		return s.archiveFailed(ctx, http.StatusBadGateway, proposal, "errors.storage")
	}

	a, err := s.builder.Build(ctx, proposal, keys)
	switch {
	case errors.Is(err, archive.ErrNoObjects):
		return s.archiveFailed(ctx, http.StatusNotFound, proposal, "")
	case err != nil:
		s.logger.ErrorContext(ctx, "failed to build archive",
			logger.Proposal(proposal),
			logger.Count(len(keys)),
			logger.Error(err),
		)
		return s.archiveFailed(ctx, http.StatusBadGateway, proposal, "errors.archive")
	}

	return handler.Attachment(a.Path, a.Name,
		handler.WithContentType("application/zip"),
		handler.WithCleanup(func() {
			if err := a.Cleanup(); err != nil {
				s.logger.ErrorContext(ctx, "failed to remove archive scratch directory",
					logger.Proposal(proposal),
					logger.Error(err),
				)
			}
		}),
	)
}

// archiveFailed re-renders the search page for proposal with errorKey on top.
func (s *Service) archiveFailed(ctx handler.Context, status int, proposal, errorKey string) handler.Response {
	results := s.results(ctx, proposal)
	if results.ErrorKey == "" {
		results.ErrorKey = errorKey
	}
	page := s.views.SearchPage(views.SearchParams{
		DisplayName: displayName(session.FromContext(ctx)),
		Results:     results,
	})
	return handler.TemplWithStatus(status, page)
}

func (s *Service) results(ctx context.Context, proposal string) views.ResultsParams {
	p := views.ResultsParams{
		Proposal: strings.TrimSpace(proposal),
		LinkTTL:  s.lister.LinkTTL(),
	}
	if p.Proposal == "" {
		return p
	}

	docs, err := s.lister.List(ctx, p.Proposal)
	switch {
	case errors.Is(err, documents.ErrInvalidProposal):
		p.Invalid = true
	case err != nil:
		s.logger.ErrorContext(ctx, "failed to list proposal",
			logger.Proposal(p.Proposal),
			logger.Error(err),
		)
		p.ErrorKey = "errors.storage"
	default:
		p.Documents = docs
	}
	return p
}

func displayName(s session.Session) string {
	if s.DisplayName != "" {
		return s.DisplayName
	}
	return s.Username
}
