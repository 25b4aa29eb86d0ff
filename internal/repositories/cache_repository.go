package repositories

import (
	"context"
	"time"
)

// CacheRepositoryInterface — абстракция над кэшем для недолговечных агрегатов.
type CacheRepositoryInterface interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}
