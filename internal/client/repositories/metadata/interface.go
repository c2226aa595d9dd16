// Package metadata stores small named slots (session token, onboarding flag,
// cached profile fields) in the local SQLite database.
package metadata

import (
	"context"
)

// Repository is a key/value slot store. Get returns (nil, nil) for a missing
// key.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
