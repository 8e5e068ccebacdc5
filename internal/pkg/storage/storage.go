package storage

import (
	"context"
	"errors"
	"io"
)

var ErrInvalidPath = errors.New("path escapes the archive root")

// FileStorage keeps raw import sources for audit.
type FileStorage interface {
	// Save writes the content under path and returns the stored key
	Save(ctx context.Context, content io.Reader, path string) (string, error)

	// Open retrieves a stored file
	Open(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes a file; deleting a missing file is not an error
	Delete(ctx context.Context, path string) error

	// Exists checks if file exists
	Exists(ctx context.Context, path string) (bool, error)
}
