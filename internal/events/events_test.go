package events

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestNewRedisClient_BadURL(t *testing.T) {
	_, err := NewRedisClient(context.Background(), "not a url")
	assert.Error(t, err)
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	_, err := NewRedisClient(ctx, "redis://127.0.0.1:1/0")
	assert.Error(t, err)
}

func TestRecorder(t *testing.T) {
	r := &Recorder{}
	r.Publish(context.Background(), ContactReceived, map[string]string{"id": "1"})
	r.Publish(context.Background(), BlogPublished, nil)
	assert.Equal(t, []string{ContactReceived, BlogPublished}, r.Types())
}

func TestRedisPublisher_UnreachableBrokerOnlyLogs(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1, DialTimeout: 200 * time.Millisecond})
	t.Cleanup(func() { _ = rdb.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	start := time.Now()
	assert.NotPanics(t, func() {
		NewRedisPublisher(rdb).Publish(ctx, ContactReceived, map[string]string{"id": "1"})
	})
	assert.Less(t, time.Since(start), 2*time.Second)
}
