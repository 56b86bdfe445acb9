package ratelimit

import (
	"context"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"
)

// RedisLimiter counts requests per client in fixed one-minute windows shared by all replicas
type RedisLimiter struct {
	redis *redis.Client
	rpm   int
	now   func() time.Time
}

// NewRedisLimiter creates a limiter allowing rpm requests per client per minute
func NewRedisLimiter(client *redis.Client, rpm int) *RedisLimiter {
	return &RedisLimiter{redis: client, rpm: rpm, now: time.Now}
}

func (l *RedisLimiter) Allow(ctx context.Context, clientID string) (bool, int, error) {
	now := l.now().UTC()
	window := now.Unix() / 60
	key := fmt.Sprintf("rl:%s:%d", clientID, window)

	pipe := l.redis.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, time.Minute)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, err
	}

	if int(incr.Val()) > l.rpm {
		secPassed := int(now.Unix() % 60)
		return false, 60 - secPassed, nil
	}
	return true, 0, nil
}
