package storage

import (
	"context"
	"io"
	"strings"
)

type FileStorage interface {
	// Upload stores file under path and returns the stored path/key
	Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error)

	// Delete removes a file; deleting a missing file is not an error
	Delete(ctx context.Context, path string) error

	// URL returns the public URL of a stored path
	URL(path string) string

	// PathFromURL maps a public URL produced by URL back to its path.
	// ok is false for URLs this storage does not own.
	PathFromURL(url string) (path string, ok bool)
}

// trimOwnedPrefix returns the remainder of url after prefix + "/".
func trimOwnedPrefix(url, prefix string) (string, bool) {
	prefix = strings.TrimRight(prefix, "/") + "/"
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}
	rest := strings.TrimPrefix(url, prefix)
	if rest == "" {
		return "", false
	}
	return rest, true
}
