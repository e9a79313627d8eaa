package mailer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// listPusher is the slice of the redis client the outbox needs.
type listPusher interface {
	LPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
}

// RedisOutbox enqueues messages as JSON onto a Redis list consumed by a
// separate delivery worker (BRPOP on the same key).
type RedisOutbox struct {
	client listPusher
	key    string
}

func NewRedisOutbox(client listPusher, key string) *RedisOutbox {
	return &RedisOutbox{client: client, key: key}
}

func (o *RedisOutbox) Send(ctx context.Context, msg Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode mail message: %w", err)
	}
	if err := o.client.LPush(ctx, o.key, payload).Err(); err != nil {
		return fmt.Errorf("enqueue mail message: %w", err)
	}
	return nil
}

// NewRedisClient connects and pings so a bad address fails at startup.
// Timeouts not set on opts get the outbox defaults.
func NewRedisClient(ctx context.Context, opts *redis.Options) (*redis.Client, error) {
	if opts.DialTimeout == 0 {
		opts.DialTimeout = 5 * time.Second
	}
	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = 3 * time.Second
	}
	if opts.WriteTimeout == 0 {
		opts.WriteTimeout = 3 * time.Second
	}
	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return rdb, nil
}
