package handler

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"os"
)

var ErrAttachmentNotRegular = errors.New("attachment is not a regular file")

type attachmentResponse struct {
	path        string
	filename    string
	contentType string
	cleanup     func()
}

type AttachmentOption func(*attachmentResponse)

// WithContentType overrides the default application/octet-stream.
func WithContentType(ct string) AttachmentOption {
	return func(a *attachmentResponse) {
		if ct != "" {
			a.contentType = ct
		}
	}
}

// WithCleanup registers fn to run once the response is done, whether the file
// was streamed fully, partially or not at all.
func WithCleanup(fn func()) AttachmentOption {
	return func(a *attachmentResponse) { a.cleanup = fn }
}

func (a attachmentResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if a.cleanup != nil {
		defer a.cleanup()
	}

	f, err := os.Open(a.path)
	if err != nil {
		return fmt.Errorf("open attachment: %w", err)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat attachment: %w", err)
	}
	if !info.Mode().IsRegular() {
		return ErrAttachmentNotRegular
	}

	h := w.Header()
	h.Set("Content-Type", a.contentType)
	h.Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": a.filename}))
	h.Set("Cache-Control", "no-store")

	http.ServeContent(w, r, a.filename, info.ModTime(), f)
	return nil
}

// Attachment streams the file at path as a download named filename.
//
//	return handler.Attachment(a.Path, "12345.zip",
//		handler.WithContentType("application/zip"),
//		handler.WithCleanup(func() { _ = a.Cleanup() }),
//	)
func Attachment(path, filename string, opts ...AttachmentOption) Response {
	a := attachmentResponse{
		path:        path,
		filename:    filename,
		contentType: "application/octet-stream",
	}
	for _, opt := range opts {
		opt(&a)
	}
	return a
}
