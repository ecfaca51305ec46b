// Package blob defines the binary object storage interface for Cubby.
//
// A blob store holds raw file content addressed by an opaque object key.
// Metadata about the content (name, size, folder membership) lives in the
// metadata store; the drive coordinator keeps the two in step.
package blob

import (
	"context"
	"errors"
	"io"
)

// ErrObjectNotFound is returned by Get when no object exists under the key.
var ErrObjectNotFound = errors.New("object not found")

// Store is the binary object storage interface.
//
// Implementations must be safe for concurrent use. Delete is idempotent:
// deleting a key that holds no object succeeds.
type Store interface {
	// Put stores data under key with the given content type, replacing any
	// existing object.
	Put(ctx context.Context, key string, data []byte, contentType string) error

	// Get returns a reader for the object under key. The caller must close
	// the returned reader. Returns ErrObjectNotFound if no object exists.
	Get(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes the object under key. Absent objects are not an error.
	Delete(ctx context.Context, key string) error

	// Ping verifies the store is reachable (used by readiness probes).
	Ping(ctx context.Context) error
}
