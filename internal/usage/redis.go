package usage

import (
	"context"
	"strconv"
	"time"

	redis "github.com/redis/go-redis/v9"
)

// retention keeps a day's hash long enough for a monthly flush to catch up
const retention = 35 * 24 * time.Hour

// RedisRecorder keeps one hash per day: usage:<yyyymmdd> with fields <kind>:<outcome>
type RedisRecorder struct {
	redis *redis.Client
}

// NewRedisRecorder creates a recorder over an existing client
func NewRedisRecorder(client *redis.Client) *RedisRecorder {
	return &RedisRecorder{redis: client}
}

func dayKey(t time.Time) string { return "usage:" + DayKey(t) }

func (r *RedisRecorder) Record(ctx context.Context, e Event) error {
	key := dayKey(e.At)
	pipe := r.redis.TxPipeline()
	pipe.HIncrBy(ctx, key, e.Field(), 1)
	pipe.Expire(ctx, key, retention)
	_, err := pipe.Exec(ctx)
	return err
}

func (r *RedisRecorder) Snapshot(ctx context.Context, day time.Time) (map[string]int, error) {
	raw, err := r.redis.HGetAll(ctx, dayKey(day)).Result()
	if err != nil {
		return nil, err
	}

	out := make(map[string]int, len(raw))
	for field, v := range raw {
		n, err := strconv.Atoi(v)
		if err != nil {
			continue
		}
		out[field] = n
	}
	return out, nil
}

func (r *RedisRecorder) Health(ctx context.Context) error {
	return r.redis.Ping(ctx).Err()
}
