// Package lock serializes booking attempts per provider and calendar day.
// The create path is a read-then-write sequence (capacity, conflicts,
// availability, insert); without mutual exclusion two concurrent requests
// can both pass their checks and double-book. A short-TTL Redis lock keyed
// by provider and day closes that window.
package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var ErrLockNotAcquired = errors.New("schedule lock not acquired")

// ScheduleLocker guards the booking critical section for one provider-day.
type ScheduleLocker interface {
	WithScheduleLock(ctx context.Context, providerID uuid.UUID, day time.Time, fn func(ctx context.Context) error) error
}

type redisScheduleLocker struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisScheduleLocker(client *redis.Client, ttl time.Duration) ScheduleLocker {
	return &redisScheduleLocker{client: client, ttl: ttl}
}

func (l *redisScheduleLocker) WithScheduleLock(ctx context.Context, providerID uuid.UUID, day time.Time, fn func(ctx context.Context) error) error {
	key := fmt.Sprintf("lock:schedule:%s:%s", providerID, day.Format("2006-01-02"))
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return fmt.Errorf("acquire schedule lock: %w", err)
	}
	if !ok {
		return ErrLockNotAcquired
	}

	defer func() {
		_ = l.release(ctx, key, token)
	}()

	lockCtx, cancel := context.WithTimeout(ctx, l.ttl)
	defer cancel()

	return fn(lockCtx)
}

// Release only deletes the key when it still holds our token, so an expired
// lock re-acquired by another request is never released by us.
var unlockScript = redis.NewScript(`
local val = redis.call("GET", KEYS[1])
if val == ARGV[1] then
  return redis.call("DEL", KEYS[1])
else
  return 0
end
`)

func (l *redisScheduleLocker) release(ctx context.Context, key, token string) error {
	_, err := unlockScript.Run(ctx, l.client, []string{key}, token).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("release schedule lock: %w", err)
	}
	return nil
}

// NewRedisClient dials Redis and verifies connectivity before returning.
func NewRedisClient(addr, username, password string, db, poolSize int, readTimeout, writeTimeout time.Duration) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Username:     username,
		Password:     password,
		DB:           db,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		PoolSize:     poolSize,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return rdb, nil
}
