// Package documents resolves proposal numbers to the documents stored under
// them and produces presigned download links.
//
// Objects live in a single bucket under "<Namespace>/<proposal>/". Listing is
// recursive, so nested folders such as "contracts/" show up in labels.
package documents

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/unus-solutions/propdocs/pkg/file"
	"github.com/unus-solutions/propdocs/pkg/logger"
)

const (
	// Bucket holds every proposal document.
	Bucket = "unus-solutions"
	// Namespace is the fixed first key segment inside Bucket.
	Namespace = "viavante_docs"
	// DefaultLinkTTL is the lifetime of presigned links.
	DefaultLinkTTL = time.Hour
)

var (
	ErrEmptyProposal   = errors.New("documents: proposal number is empty")
	ErrInvalidProposal = errors.New("documents: invalid proposal number")
	ErrOutsideProposal = errors.New("documents: key is outside the proposal prefix")
)

// Storage is the subset of file.S3Storage the service needs.
type Storage interface {
	ListObjects(ctx context.Context, prefix string) ([]file.Object, error)
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
}

// Document is one listed object with its display label and signed link.
type Document struct {
	Key          string
	Label        string
	URL          string
	Size         int64
	LastModified time.Time
}

// HumanSize formats Size for display, e.g. "1.2 MB".
func (d Document) HumanSize() string {
	return humanize.Bytes(uint64(max(d.Size, 0)))
}

// Name returns the base file name of the document.
func (d Document) Name() string {
	return file.SanitizeFilename(d.Key)
}

type Service struct {
	storage Storage
	linkTTL time.Duration
	logger  *slog.Logger
}

type Option func(*Service)

// WithLinkTTL sets the presigned link lifetime. Non-positive values are ignored.
func WithLinkTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.linkTTL = ttl
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

func NewService(storage Storage, opts ...Option) *Service {
	s := &Service{
		storage: storage,
		linkTTL: DefaultLinkTTL,
		logger:  logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LinkTTL returns the configured presigned link lifetime.
func (s *Service) LinkTTL() time.Duration {
	return s.linkTTL
}

// NormalizeProposal trims the input and rejects values that could address
// another proposal's prefix.
func NormalizeProposal(proposal string) (string, error) {
	proposal = strings.TrimSpace(proposal)
	if proposal == "" {
		return "", ErrEmptyProposal
	}
	if strings.ContainsAny(proposal, "/\\") || strings.Contains(proposal, "..") {
		return "", fmt.Errorf("%w: %q", ErrInvalidProposal, proposal)
	}
	return proposal, nil
}

// Prefix returns the key prefix of a proposal, with trailing slash.
func Prefix(proposal string) string {
	return Namespace + "/" + proposal + "/"
}

// Label strips the namespace and proposal segments from key.
// It reports false when key does not lie under the proposal.
func Label(proposal, key string) (string, bool) {
	prefix := Prefix(proposal)
	if !strings.HasPrefix(key, prefix) || len(key) == len(prefix) {
		return "", false
	}
	return key[len(prefix):], true
}

// Keys returns the object keys stored under proposal, in backend order.
func (s *Service) Keys(ctx context.Context, proposal string) ([]string, error) {
	proposal, err := NormalizeProposal(proposal)
	if err != nil {
		return nil, err
	}

	objects, err := s.storage.ListObjects(ctx, Prefix(proposal))
	if err != nil {
		return nil, fmt.Errorf("list proposal %s: %w", proposal, err)
	}

	keys := make([]string, 0, len(objects))
	for _, obj := range objects {
		if _, ok := Label(proposal, obj.Key); ok {
			keys = append(keys, obj.Key)
		}
	}
	return keys, nil
}

// List returns the documents of proposal with presigned links. An empty
// result means the proposal does not exist and is not an error.
func (s *Service) List(ctx context.Context, proposal string) ([]Document, error) {
	proposal, err := NormalizeProposal(proposal)
	if err != nil {
		return nil, err
	}

	objects, err := s.storage.ListObjects(ctx, Prefix(proposal))
	if err != nil {
		return nil, fmt.Errorf("list proposal %s: %w", proposal, err)
	}

	docs := make([]Document, 0, len(objects))
	for _, obj := range objects {
		label, ok := Label(proposal, obj.Key)
		if !ok {
			s.logger.WarnContext(ctx, "skipping key outside proposal prefix",
				logger.Proposal(proposal),
				logger.ObjectKey(obj.Key),
			)
			continue
		}

		url, err := s.storage.PresignGet(ctx, obj.Key, s.linkTTL)
		if err != nil {
			return nil, fmt.Errorf("sign %s: %w", obj.Key, err)
		}

		docs = append(docs, Document{
			Key:          obj.Key,
			Label:        label,
			URL:          url,
			Size:         obj.Size,
			LastModified: obj.LastModified,
		})
	}

	s.logger.DebugContext(ctx, "proposal listed",
		logger.Proposal(proposal),
		logger.Count(len(docs)),
	)
	return docs, nil
}

// Sign returns a fresh presigned link for a key of proposal.
func (s *Service) Sign(ctx context.Context, proposal, key string) (string, error) {
	proposal, err := NormalizeProposal(proposal)
	if err != nil {
		return "", err
	}
	if _, ok := Label(proposal, key); !ok {
		return "", fmt.Errorf("%w: %s", ErrOutsideProposal, key)
	}
	return s.storage.PresignGet(ctx, key, s.linkTTL)
}
