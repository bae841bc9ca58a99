package repository

import (
	"context"
	"time"
)

// CacheRepository stores serialized calculator results. A miss is reported
// through the bool, not as an error.
type CacheRepository interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Ping(ctx context.Context) error
}
