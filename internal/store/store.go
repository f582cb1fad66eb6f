// Package store wraps the flat key-value namespace backing the service.
// Every record lives under a string key (user:*, cards:*, username:*,
// analytics:*) and is stored as a JSON string value.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key does not exist.
var ErrNotFound = errors.New("store: key not found")

// Store is the key-value surface both batch jobs and the handlers consume.
type Store interface {
	// Get returns the raw string value, or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Del(ctx context.Context, keys ...string) error
	// Keys lists every key matching the glob pattern.
	Keys(ctx context.Context, pattern string) ([]string, error)
	// LRange returns the full list stored at key (empty slice when absent).
	LRange(ctx context.Context, key string) ([]string, error)
	RPush(ctx context.Context, key, value string) error
	// Incr atomically increments the integer at key and returns the new value.
	Incr(ctx context.Context, key string) (int64, error)
	Ping(ctx context.Context) error
}
