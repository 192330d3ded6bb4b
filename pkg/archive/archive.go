package archive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/klauspost/compress/zip"

	"github.com/unus-solutions/propdocs/pkg/file"
	"github.com/unus-solutions/propdocs/pkg/logger"
)

// FileName is the archive file name inside the scratch directory.
const FileName = "download.zip"

var (
	ErrNoObjects      = errors.New("archive: no objects to bundle")
	ErrDownloadFailed = errors.New("archive: object download failed")
	ErrBuildFailed    = errors.New("archive: build failed")
)

// Downloader fetches one object into a local file.
type Downloader interface {
	DownloadFile(ctx context.Context, key, localPath string) error
}

// Archive is a built zip file together with the scratch directory holding it.
type Archive struct {
	Name    string // download file name, e.g. "12345.zip"
	Path    string
	Size    int64
	Entries []string

	scratch *file.Scratch
}

// Open opens the zip for reading.
func (a *Archive) Open() (*os.File, error) {
	return os.Open(a.Path)
}

// Dir returns the scratch directory that holds the archive.
func (a *Archive) Dir() string {
	return a.scratch.Dir()
}

// Cleanup removes the scratch directory with the archive and every downloaded file.
// It is safe to call more than once.
func (a *Archive) Cleanup() error {
	return a.scratch.Remove()
}

// Builder builds archives from storage objects.
type Builder struct {
	storage Downloader
	baseDir string
	logger  *slog.Logger
}

type Option func(*Builder)

// WithScratchDir sets the parent of per-build scratch directories. Default is os.TempDir().
func WithScratchDir(dir string) Option {
	return func(b *Builder) { b.baseDir = dir }
}

func WithLogger(l *slog.Logger) Option {
	return func(b *Builder) {
		if l != nil {
			b.logger = l
		}
	}
}

func NewBuilder(storage Downloader, opts ...Option) *Builder {
	b := &Builder{
		storage: storage,
		logger:  logger.Discard(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build downloads keys and zips them under their basenames. name becomes the
// download file name with a ".zip" suffix.
func (b *Builder) Build(ctx context.Context, name string, keys []string) (*Archive, error) {
	if len(keys) == 0 {
		return nil, ErrNoObjects
	}

	scratch, err := file.NewScratch(b.baseDir, "archive-*")
	if err != nil {
		return nil, errors.Join(ErrBuildFailed, err)
	}

	start := time.Now()
	a, err := b.build(ctx, scratch, keys)
	if err != nil {
		if rmErr := scratch.Remove(); rmErr != nil {
			b.logger.ErrorContext(ctx, "failed to remove scratch directory",
				slog.String("dir", scratch.Dir()),
				logger.Error(rmErr),
			)
		}
		return nil, err
	}
	a.Name = file.SanitizeFilename(name) + ".zip"

	b.logger.InfoContext(ctx, "archive built",
		slog.String("archive", a.Name),
		logger.Count(len(a.Entries)),
		slog.Int64("size", a.Size),
		logger.Duration(time.Since(start)),
	)
	return a, nil
}

func (b *Builder) build(ctx context.Context, scratch *file.Scratch, keys []string) (*Archive, error) {
	zipPath, err := scratch.Path(FileName)
	if err != nil {
		return nil, errors.Join(ErrBuildFailed, err)
	}

	out, err := os.OpenFile(zipPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return nil, errors.Join(ErrBuildFailed, err)
	}
	defer func() { _ = out.Close() }()

	zw := zip.NewWriter(out)
	entries := make([]string, 0, len(keys))

	for _, key := range keys {
		if err := ctx.Err(); err != nil {
			return nil, errors.Join(ErrDownloadFailed, err)
		}

		base := file.SanitizeFilename(key)
		local, err := scratch.Path("files", base)
		if err != nil {
			return nil, errors.Join(ErrBuildFailed, err)
		}

		if err := b.storage.DownloadFile(ctx, key, local); err != nil {
			b.logger.WarnContext(ctx, "archive download failed",
				logger.ObjectKey(key),
				logger.Error(err),
			)
			return nil, fmt.Errorf("%w: %s: %w", ErrDownloadFailed, key, err)
		}

		if err := addFile(zw, local, base); err != nil {
			return nil, errors.Join(ErrBuildFailed, err)
		}
		entries = append(entries, base)
	}

	if err := zw.Close(); err != nil {
		return nil, errors.Join(ErrBuildFailed, err)
	}
	if err := out.Close(); err != nil {
		return nil, errors.Join(ErrBuildFailed, err)
	}

	info, err := os.Stat(zipPath)
	if err != nil {
		return nil, errors.Join(ErrBuildFailed, err)
	}

	return &Archive{
		Path:    zipPath,
		Size:    info.Size(),
		Entries: entries,
		scratch: scratch,
	}, nil
}

func addFile(zw *zip.Writer, path, name string) error {
	src, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = src.Close() }()

	info, err := src.Stat()
	if err != nil {
		return err
	}

	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}
	header.Name = name
	header.Method = zip.Deflate

	w, err := zw.CreateHeader(header)
	if err != nil {
		return err
	}
	_, err = io.Copy(w, src)
	return err
}

// WithArchive builds an archive, passes it to fn and removes it afterwards,
// whatever fn returns.
func WithArchive(ctx context.Context, b *Builder, name string, keys []string, fn func(*Archive) error) (err error) {
	a, err := b.Build(ctx, name, keys)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := a.Cleanup(); cerr != nil {
			err = errors.Join(err, cerr)
		}
	}()
	return fn(a)
}
