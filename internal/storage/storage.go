// Package storage defines the durable key-value interface used to persist task lists.
package storage

import (
	"context"
	"errors"
)

var (
	// ErrValueTooLarge is returned when a backend refuses a value because of its size.
	ErrValueTooLarge = errors.New("value exceeds storage quota")

	// ErrUnauthorized is returned when a backend rejects the stored credentials.
	ErrUnauthorized = errors.New("not authorized")
)

// Store is a durable string-keyed store of text values.
// Backends live in subpackages; commands never import them directly.
type Store interface {
	// Get returns the value stored under key.
	// ok is false if the key has never been written.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set writes value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Close releases backend resources.
	Close() error
}

// BatchSetter is implemented by stores that can write several keys in one
// atomic step. Either every entry is written or none is.
type BatchSetter interface {
	SetMany(ctx context.Context, entries map[string]string) error
}

// Watchable is implemented by stores backed by a local file that can be watched
// for changes made by other processes.
type Watchable interface {
	Path() string
}
