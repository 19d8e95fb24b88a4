package cache

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Redis is a Store backed by a redis instance, for deployments where several
// replicas should share one cache. Errors are logged and reported as misses;
// the caller re-fetches from origin.
type Redis struct {
	rc     *redis.Client
	Logger *zap.SugaredLogger
}

func NewRedis(addr string, logger *zap.SugaredLogger) *Redis {
	return &Redis{
		rc:     redis.NewClient(&redis.Options{Addr: addr}),
		Logger: logger,
	}
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := r.rc.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			r.Logger.Warnw("redis get failed", "key", key, "error", err.Error())
		}
		return nil, false
	}
	return val, true
}

func (r *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if err := r.rc.Set(ctx, key, value, ttl).Err(); err != nil {
		r.Logger.Warnw("redis set failed", "key", key, "error", err.Error())
	}
}
