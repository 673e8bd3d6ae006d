// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"
)

// ErrClosed is returned by stores that have already been closed.
var ErrClosed = errors.New("storage: store closed")

// KV defines the interface for the durable key-value records the roster keeps.
// This abstraction allows swapping storage backends (SQLite, in-memory, etc.)
// without changing the roster layer.
type KV interface {
	// Get returns the value stored under key.
	// found is false (with a nil error) when the key has never been written.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Close releases any resources held by the store.
	Close() error
}
