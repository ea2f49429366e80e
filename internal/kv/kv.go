// Package kv holds the key-value blob stores that back the persisted session.
//
// Every backend stores opaque strings under string keys. A missing key is
// reported as ErrMiss so callers can tell "absent" apart from a backend fault.
package kv

import (
	"context"
	"errors"
)

var ErrMiss = errors.New("kv: key not found")

// Store is the blob store contract consumed by the session layer.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// HealthChecker is implemented by backends that can report connectivity.
type HealthChecker interface {
	Ping(ctx context.Context) error
}
