package publisher

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestRedisPublisher(t *testing.T) {
	ctx := context.Background()

	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   0,
	})
	defer client.Close()

	// Test if Redis is available
	if _, err := client.Ping(ctx).Result(); err != nil {
		t.Skip("Redis is not available, skipping test")
	}

	const stream = "test_operators_stream"
	client.Del(ctx, stream)

	pub := NewRedisPublisher(ctx, "localhost:6379", 0, stream)
	defer pub.Close()

	record := []byte(`{"name":"Amiya"}`)
	err := pub.Publish("Amiya", record)
	assert.NoError(t, err)

	messages, err := client.XRange(ctx, stream, "-", "+").Result()
	assert.NoError(t, err)
	assert.Len(t, messages, 1)
	assert.Equal(t, "Amiya", messages[0].Values["name"])
	assert.Equal(t, base64.StdEncoding.EncodeToString(record), messages[0].Values["record"])

	client.Del(ctx, stream)
}
