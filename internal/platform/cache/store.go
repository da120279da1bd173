package cache

import (
	"context"
	"errors"
	"time"
)

// ErrLockHeld is returned by Lock when another holder owns the key.
var ErrLockHeld = errors.New("cache lock is held by another owner")

// Store is the ephemeral key-value cache shared by every server instance.
// Values are JSON documents; a zero ttl means no expiry.
type Store interface {
	GetJSON(ctx context.Context, key string, dst any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	// Lock acquires key for ttl and returns a release func that only frees
	// the key if this caller still owns it.
	Lock(ctx context.Context, key string, ttl time.Duration) (func(context.Context) error, error)
}
