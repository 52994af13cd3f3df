// Package store is the persistence port: an opaque key-value interface the
// repository snapshots order collections into.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key has never been written.
var ErrNotFound = errors.New("key not found")

// Store is a minimal key-value interface. Values are opaque strings; the
// repository serializes collections to JSON before handing them over.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}
