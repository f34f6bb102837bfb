package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "gigmarket:gateway-event:"

type redisCommands interface {
	Exists(ctx context.Context, keys ...string) *redis.IntCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// RedisLedger stores event ids as expiring redis keys.
type RedisLedger struct {
	client redisCommands
	ttl    time.Duration
}

// NewRedisLedger wraps a redis client.
func NewRedisLedger(client redisCommands, ttl time.Duration) *RedisLedger {
	return &RedisLedger{client: client, ttl: ttl}
}

// Seen reports whether the event key exists.
func (l *RedisLedger) Seen(ctx context.Context, eventID string) (bool, error) {
	n, err := l.client.Exists(ctx, redisKeyPrefix+eventID).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists: %w", err)
	}
	return n > 0, nil
}

// Mark sets the event key with the ledger TTL.
func (l *RedisLedger) Mark(ctx context.Context, eventID string) error {
	if err := l.client.Set(ctx, redisKeyPrefix+eventID, time.Now().UTC().Format(time.RFC3339), l.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}
