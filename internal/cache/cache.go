package cache

import (
	"context"
	"time"
)

// Store is a key/value store with per-entry expiry. Values are opaque bytes;
// callers are expected to JSON-encode whatever they put in so the memory and
// redis engines stay interchangeable.
//
// A store is best-effort: a Set that cannot be persisted is not an error, the
// next Get simply misses and the caller re-fetches from origin.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
}
