package usecase

import (
	"context"
	"time"
)

// Cache is the slice of the redis client the usecases need. A nil or
// unavailable cache is always safe: reads miss, writes are dropped.
type Cache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
	InvalidateJobCaches(ctx context.Context) error
}
