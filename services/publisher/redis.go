package publisher

import (
	"context"
	"encoding/base64"

	"github.com/redis/go-redis/v9"
)

// RedisPublisher implements Publisher using a Redis stream
type RedisPublisher struct {
	client *redis.Client
	ctx    context.Context
	stream string
}

// NewRedisPublisher creates a new Redis publisher
func NewRedisPublisher(ctx context.Context, addr string, db int, stream string) *RedisPublisher {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})

	return &RedisPublisher{
		client: client,
		ctx:    ctx,
		stream: stream,
	}
}

// Publish appends one record to the stream. The record JSON is base64
// encoded before publishing.
func (p *RedisPublisher) Publish(name string, record []byte) error {
	encoded := base64.StdEncoding.EncodeToString(record)

	return p.client.XAdd(p.ctx, &redis.XAddArgs{
		Stream: p.stream,
		Values: map[string]interface{}{
			"name":   name,
			"record": encoded,
		},
	}).Err()
}

// Close closes the Redis connection
func (p *RedisPublisher) Close() error {
	return p.client.Close()
}
