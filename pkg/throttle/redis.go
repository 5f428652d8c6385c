package throttle

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "orders:throttle:"

// Connect opens a Redis client and verifies it with a ping. On failure the
// client is closed and nil is returned so the caller can fall back to Memory.
func Connect(ctx context.Context, addr, password string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("throttle: redis ping: %w", err)
	}
	return rdb, nil
}

// Redis is a Limiter whose counters live in Redis, one key per client and
// window.
type Redis struct {
	client redis.Cmdable
	max    int
	window time.Duration
	now    func() time.Time
}

func NewRedis(client redis.Cmdable, max int, window time.Duration) *Redis {
	return &Redis{client: client, max: max, window: window, now: time.Now}
}

func (r *Redis) Store() string { return "redis" }

func (r *Redis) Allow(ctx context.Context, key string) (bool, error) {
	k := r.key(key)

	n, err := r.client.Incr(ctx, k).Result()
	if err != nil {
		return false, fmt.Errorf("throttle: incr %s: %w", k, err)
	}
	if n == 1 {
		if err := r.client.Expire(ctx, k, r.window).Err(); err != nil {
			return false, fmt.Errorf("throttle: expire %s: %w", k, err)
		}
	}
	return n <= int64(r.max), nil
}

// key buckets requests into fixed windows aligned to the epoch, so every
// replica agrees on the window boundaries.
func (r *Redis) key(client string) string {
	slot := r.now().UnixNano() / int64(r.window)
	return fmt.Sprintf("%s%s:%d", keyPrefix, client, slot)
}
