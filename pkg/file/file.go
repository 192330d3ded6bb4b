package file

import (
	"path"
	"path/filepath"
	"strings"
	"time"
)

// Object describes a single stored object returned by a listing.
type Object struct {
	Key          string
	Size         int64
	LastModified time.Time
}

// Name returns the last path segment of the key.
func (o Object) Name() string {
	return path.Base(o.Key)
}

// SanitizeFilename removes any path components and dangerous characters from a filename.
// Returns "unnamed" for empty or special directory references.
//
//	safe := file.SanitizeFilename("../../../etc/passwd") // Returns "passwd"
//	safe = file.SanitizeFilename("C:\\Windows\\file.txt") // Returns "file.txt"
func SanitizeFilename(filename string) string {
	filename = strings.ReplaceAll(filename, "\\", "/")
	filename = filepath.Base(filename)
	filename = strings.ReplaceAll(filename, "\x00", "")

	if filename == "." || filename == ".." || filename == "" || filename == "/" {
		filename = "unnamed"
	}

	return filename
}

// IsPlaceholder reports whether key is a zero-byte "folder" marker.
func IsPlaceholder(key string) bool {
	return strings.HasSuffix(key, "/")
}

// cleanKey strips a leading slash and rejects keys with parent references.
func cleanKey(key string) (string, error) {
	key = strings.TrimPrefix(key, "/")
	for seg := range strings.SplitSeq(key, "/") {
		if seg == ".." {
			return "", ErrInvalidPath
		}
	}
	return key, nil
}
