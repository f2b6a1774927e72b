package ports

import (
	"context"
	"time"
)

// Storage é o contador compartilhado que guarda todo o estado entre requisições.
// Implementations must provide atomic increment-with-expiry semantics.
type Storage interface {
	// CountSliding records an attempt at now and returns how many attempts fall
	// inside the trailing window, plus the oldest surviving attempt.
	CountSliding(ctx context.Context, key string, window time.Duration, now time.Time) (count int64, oldest time.Time, err error)

	// Increment adds one to the counter at key and refreshes its TTL.
	Increment(ctx context.Context, key string, ttl time.Duration) (int64, error)

	// GetCount reads a counter; absent keys read as zero.
	GetCount(ctx context.Context, key string) (int64, error)

	// Append stores an immutable record under key with the given retention.
	Append(ctx context.Context, key string, value []byte, ttl time.Duration) error

	Close() error
}
