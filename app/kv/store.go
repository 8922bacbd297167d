package kv

import "context"

// Store is a JSON-valued key-value store. A missing key is reported as
// found == false with a nil error.
type Store interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Close() error
}
