package file

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Scratch is a private temporary directory for one unit of work.
// Every path it returns stays inside the directory; Remove deletes it with all contents.
type Scratch struct {
	dir  string
	once sync.Once
	err  error
}

// NewScratch creates a fresh directory under baseDir (os.TempDir() when empty)
// named after pattern, as os.MkdirTemp does.
func NewScratch(baseDir, pattern string) (*Scratch, error) {
	if baseDir != "" {
		if err := os.MkdirAll(baseDir, 0o700); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFailedToCreateDirectory, err)
		}
	}

	dir, err := os.MkdirTemp(baseDir, pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToCreateDirectory, err)
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		_ = os.RemoveAll(dir)
		return nil, fmt.Errorf("%w: %v", ErrFailedToGetAbsolutePath, err)
	}

	return &Scratch{dir: abs}, nil
}

// Dir returns the absolute scratch directory path.
func (s *Scratch) Dir() string {
	return s.dir
}

// Path joins elem onto the scratch directory and creates missing parent
// directories. Paths escaping the directory are rejected with ErrInvalidPath.
func (s *Scratch) Path(elem ...string) (string, error) {
	rel := filepath.Clean(filepath.Join(elem...))
	abs := filepath.Join(s.dir, rel)

	if !strings.HasPrefix(abs, s.dir+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrInvalidPath, rel)
	}

	if err := os.MkdirAll(filepath.Dir(abs), 0o700); err != nil {
		return "", fmt.Errorf("%w: %v", ErrFailedToCreateDirectory, err)
	}
	return abs, nil
}

// Exists reports whether the scratch directory is still on disk.
func (s *Scratch) Exists() bool {
	_, err := os.Stat(s.dir)
	return err == nil
}

// Remove deletes the scratch directory. Repeated calls return the first result.
func (s *Scratch) Remove() error {
	s.once.Do(func() {
		if err := os.RemoveAll(s.dir); err != nil && !errors.Is(err, fs.ErrNotExist) {
			s.err = fmt.Errorf("%w: %v", ErrFailedToDeleteDirectory, err)
		}
	})
	return s.err
}
