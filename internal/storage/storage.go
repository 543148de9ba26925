package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned when an object key does not exist.
var ErrNotFound = errors.New("object not found")

// ObjectStore is the blob backend for gallery images. Production uses an
// S3-compatible bucket (R2, MinIO); tests use the in-memory store.
type ObjectStore interface {
	// Put writes an object. Implementations must respect ctx deadlines;
	// a timed-out write is reported as an error, never retried here.
	Put(ctx context.Context, key, contentType string, data []byte) error
	// Get reads a whole object.
	Get(ctx context.Context, key string) ([]byte, error)
	// Delete removes an object. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
