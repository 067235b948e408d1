package storage

import (
	"context"
	"io"
)

// Store abstracts where uploaded files end up so services do not care
// whether the backing store is local disk or an object store.
type Store interface {
	// Save writes the contents of r under the given filename and returns
	// the public path clients can use to fetch it.
	Save(ctx context.Context, filename string, r io.Reader) (string, error)
	// Open returns a reader for a previously stored file.
	Open(ctx context.Context, filename string) (io.ReadCloser, error)
	// Remove deletes a stored file. Removing a missing file is not an error.
	Remove(ctx context.Context, filename string) error
}
