package lock

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	pkglock "blog-backend/pkg/lock"
)

// releaseScript deletes the key only if it still holds our token, so an
// expired lock re-acquired by someone else is never released by us.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type RedisLocker struct {
	Client *redis.Client

	ttl          time.Duration
	pollInterval time.Duration
}

var _ pkglock.Locker = (*RedisLocker)(nil)

func NewRedisLocker(host, password string, db int, ttl time.Duration) *RedisLocker {
	return &RedisLocker{
		Client: redis.NewClient(&redis.Options{
			Addr:         host,
			Password:     password,
			DB:           db,
			PoolSize:     10,
			MinIdleConns: 2,
			MaxRetries:   3,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		}),
		ttl:          ttl,
		pollInterval: 25 * time.Millisecond,
	}
}

func (r *RedisLocker) Connect(ctx context.Context) error {
	log.Println("[REDIS] Connecting to Redis...")

	if err := r.Client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}

	log.Println("[REDIS] Connected successfully")
	return nil
}

// Acquire polls SET NX PX until it wins, ctx is done, or one TTL has passed.
func (r *RedisLocker) Acquire(ctx context.Context, key string) (func(context.Context) error, error) {
	token := uuid.NewString()
	deadline := time.Now().Add(r.ttl)

	for {
		ok, err := r.Client.SetNX(ctx, key, token, r.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("acquire %s: %w", key, err)
		}
		if ok {
			return func(releaseCtx context.Context) error {
				if err := releaseScript.Run(releaseCtx, r.Client, []string{key}, token).Err(); err != nil {
					return fmt.Errorf("release %s: %w", key, err)
				}
				return nil
			}, nil
		}

		if time.Now().After(deadline) {
			return nil, fmt.Errorf("%s: %w", key, pkglock.ErrNotAcquired)
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("acquire %s: %w", key, ctx.Err())
		case <-time.After(r.pollInterval):
		}
	}
}

func (r *RedisLocker) Close() error {
	if r.Client != nil {
		return r.Client.Close()
	}
	return nil
}
