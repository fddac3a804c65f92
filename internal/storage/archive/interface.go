// internal/storage/archive/interface.go
package archive

import (
	"context"
	"errors"
	"io"
)

// ErrInvalidPath is returned for paths that are empty, absolute or escape the storage root.
var ErrInvalidPath = errors.New("archive: invalid path")

// Storage defines the interface for corpus storage backends.
//
// Missing paths are reported with errors matching fs.ErrNotExist and
// exclusive creates of existing paths with errors matching fs.ErrExist.
type Storage interface {
	// Create opens path for writing, truncating any existing data.
	// Data is durable once the returned writer is closed.
	Create(ctx context.Context, path string) (io.WriteCloser, error)

	// CreateExclusive is like Create but fails if path already exists.
	CreateExclusive(ctx context.Context, path string) (io.WriteCloser, error)

	// Open opens path for reading
	Open(ctx context.Context, path string) (io.ReadCloser, error)

	// List returns all paths matching the prefix
	List(ctx context.Context, prefix string) ([]string, error)

	// Delete removes the data at the given path
	Delete(ctx context.Context, path string) error

	// Exists checks if data exists at the given path
	Exists(ctx context.Context, path string) (bool, error)
}
