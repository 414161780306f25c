package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// DefaultQueueKey is the Redis list audit entries are pushed onto.
const DefaultQueueKey = "audit:jobs"

// RedisQueue pushes JSON encoded entries onto a Redis list. Consumers pop from the other end.
type RedisQueue struct {
	client redis.Cmdable
	key    string
}

// NewRedisQueue creates a queue on the given list key.
func NewRedisQueue(client redis.Cmdable, key string) *RedisQueue {
	if key == "" {
		key = DefaultQueueKey
	}
	return &RedisQueue{client: client, key: key}
}

// Enqueue pushes the entry onto the list.
func (q *RedisQueue) Enqueue(ctx context.Context, entry Entry) error {
	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode audit entry: %w", err)
	}
	if err := q.client.LPush(ctx, q.key, payload).Err(); err != nil {
		return fmt.Errorf("push audit entry: %w", err)
	}
	return nil
}

// DialRedis connects to the Redis server at url and checks the connection.
func DialRedis(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return client, nil
}
