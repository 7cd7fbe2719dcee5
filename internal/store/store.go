// Package store defines the key-value persistence contract used by the
// repositories, with file, redis and in-memory backends.
//
// Stores hold opaque byte values. They provide no transactions and no
// compare-and-swap: concurrent writers to one key race and the last write wins.
package store

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is returned by Get when the key is absent
var ErrNotFound = errors.New("store: key not found")

// Store is a key-value store
type Store interface {
	// Get returns the value stored under key, or ErrNotFound
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, replacing any previous value
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the store
	Close() error
}

// Kind selects a backend in Open
type Kind string

const (
	KindFile   Kind = "file"
	KindRedis  Kind = "redis"
	KindMemory Kind = "memory"
)

// Options configures Open
type Options struct {
	Kind     Kind
	Path     string
	RedisURL string
}

// Open creates the store selected by opts
func Open(opts Options) (Store, error) {
	switch opts.Kind {
	case KindFile:
		return NewFileStore(opts.Path)
	case KindRedis:
		return NewRedisStore(RedisConfig{URL: opts.RedisURL})
	case KindMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store: %s", opts.Kind)
	}
}
