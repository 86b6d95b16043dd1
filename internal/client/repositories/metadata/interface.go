// Package metadata is a small key/value store on top of the local SQLite
// database. The CLI keeps its persisted session here.
package metadata

import "context"

// Repository stores opaque byte values under string keys.
// Get returns (nil, nil) for a missing key; callers treat nil as "absent".
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
