// Package events публикует доменные события в Redis pub/sub.
// Публикация не блокирует основной сценарий: ошибки только логируются.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"triveni_backend/internal/logger"

	"github.com/redis/go-redis/v9"
)

const (
	ApplicationSubmitted     = "APPLICATION_SUBMITTED"
	ApplicationStatusChanged = "APPLICATION_STATUS_CHANGED"
	ContactReceived          = "CONTACT_RECEIVED"
	BlogPublished            = "BLOG_PUBLISHED"
)

// Event - конверт события. Канал совпадает с Type.
type Event struct {
	Type       string            `json:"type"`
	Data       map[string]string `json:"data"`
	OccurredAt time.Time         `json:"occurredAt"`
}

type Publisher interface {
	Publish(ctx context.Context, eventType string, data map[string]string)
}

// NewRedisClient creates and verifies a Redis client connection.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis.ParseURL: %w", err)
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return rdb, nil
}

type RedisPublisher struct {
	rdb *redis.Client
	now func() time.Time
}

func NewRedisPublisher(rdb *redis.Client) *RedisPublisher {
	return &RedisPublisher{rdb: rdb, now: time.Now}
}

func (p *RedisPublisher) Publish(ctx context.Context, eventType string, data map[string]string) {
	payload, err := json.Marshal(Event{Type: eventType, Data: data, OccurredAt: p.now().UTC()})
	if err != nil {
		logger.CtxWithError(ctx, "Event encoding failed", err, "event", eventType)
		return
	}
	if err := p.rdb.Publish(ctx, eventType, payload).Err(); err != nil {
		logger.CtxWithError(ctx, "Event publish failed", err, "event", eventType)
	}
}

// NoopPublisher - когда Redis не настроен.
type NoopPublisher struct{}

func (NoopPublisher) Publish(ctx context.Context, eventType string, data map[string]string) {
	logger.CtxDebug(ctx, "Event dropped, no broker configured", "event", eventType)
}

// Recorder запоминает события, удобно в тестах сервисов.
type Recorder struct {
	mu     sync.Mutex
	Events []Event
}

func (r *Recorder) Publish(ctx context.Context, eventType string, data map[string]string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Events = append(r.Events, Event{Type: eventType, Data: data})
}

// Types возвращает типы опубликованных событий по порядку.
func (r *Recorder) Types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	types := make([]string, 0, len(r.Events))
	for _, e := range r.Events {
		types = append(types, e.Type)
	}
	return types
}
