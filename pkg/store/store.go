// Package store defines the key/value seam used to persist the last funnel
// plan between sessions, plus an in-memory implementation. Durable backends
// live in sub-packages.
package store

import (
	"context"
	"errors"
)

var (
	// ErrNotFound reports that no value is stored under the key.
	ErrNotFound = errors.New("store: key not found")
	// ErrQuotaExceeded reports that a write would exceed the store's capacity.
	ErrQuotaExceeded = errors.New("store: quota exceeded")
	// ErrUnavailable reports that the backing store cannot be reached.
	ErrUnavailable = errors.New("store: unavailable")
)

// Store gets and sets string values by key.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}
