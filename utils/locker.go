package utils

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// ErrLockNotAcquired is returned when another writer holds the lock past the retry budget.
var ErrLockNotAcquired = errors.New("lock not acquired")

// Deletes the key only while it still carries our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisSpaceLocker serializes writers per space with SET NX + TTL.
type RedisSpaceLocker struct {
	Client     *redis.Client
	TTL        time.Duration
	Retries    int
	RetryDelay time.Duration
}

// NewRedisSpaceLocker returns a locker with sane retry defaults.
func NewRedisSpaceLocker(client *redis.Client, ttl time.Duration) *RedisSpaceLocker {
	if ttl <= 0 {
		ttl = 10 * time.Second
	}
	return &RedisSpaceLocker{
		Client:     client,
		TTL:        ttl,
		Retries:    20,
		RetryDelay: 50 * time.Millisecond,
	}
}

func spaceLockKey(space string) string {
	return "lock:space:" + space
}

// Acquire takes the lock for space and returns its release function.
func (l *RedisSpaceLocker) Acquire(ctx context.Context, space string) (func(context.Context) error, error) {
	key := spaceLockKey(space)
	token := uuid.New().String()

	for attempt := 0; attempt <= l.Retries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ok, err := l.Client.SetNX(ctx, key, token, l.TTL).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to acquire lock for space %s: %w", space, err)
		}
		if ok {
			release := func(ctx context.Context) error {
				if err := releaseScript.Run(ctx, l.Client, []string{key}, token).Err(); err != nil && !errors.Is(err, redis.Nil) {
					return fmt.Errorf("failed to release lock for space %s: %w", space, err)
				}
				return nil
			}
			return release, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(l.RetryDelay):
		}
	}
	return nil, ErrLockNotAcquired
}
