package cache

import (
	"context"
	"time"
)

// Cache is the optional read-through cache in front of the doctor directory.
type Cache interface {
	GetJSON(ctx context.Context, key string, dst any) (hit bool, err error)
	SetJSON(ctx context.Context, key string, val any, ttl time.Duration) error
}
