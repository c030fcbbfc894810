package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/thebenkogan/ufcstats/internal/model"
)

const (
	eventListKey     = "events:completed"
	eventReportKeyNS = "event:"
)

// EventCacheRepository stores the event listing and scraped event reports.
// A miss is (nil, nil).
type EventCacheRepository interface {
	GetEvents(ctx context.Context) ([]model.EventSummary, error)
	SetEvents(ctx context.Context, events []model.EventSummary, ttl time.Duration) error
	GetReport(ctx context.Context, url string) (*model.EventReport, error)
	SetReport(ctx context.Context, url string, report *model.EventReport, ttl time.Duration) error
}

type RedisEventCache struct {
	client *redis.Client
}

func NewRedisEventCache(client *redis.Client) *RedisEventCache {
	return &RedisEventCache{
		client: client,
	}
}

func (r *RedisEventCache) GetEvents(ctx context.Context) ([]model.EventSummary, error) {
	var events []model.EventSummary
	found, err := r.get(ctx, eventListKey, &events)
	if err != nil || !found {
		return nil, err
	}
	return events, nil
}

func (r *RedisEventCache) SetEvents(ctx context.Context, events []model.EventSummary, ttl time.Duration) error {
	return r.set(ctx, eventListKey, events, ttl)
}

func (r *RedisEventCache) GetReport(ctx context.Context, url string) (*model.EventReport, error) {
	var report model.EventReport
	found, err := r.get(ctx, eventReportKeyNS+url, &report)
	if err != nil || !found {
		return nil, err
	}
	return &report, nil
}

// SetReport stores report under its event URL. A zero ttl keeps it forever.
func (r *RedisEventCache) SetReport(ctx context.Context, url string, report *model.EventReport, ttl time.Duration) error {
	return r.set(ctx, eventReportKeyNS+url, report, ttl)
}

func (r *RedisEventCache) get(ctx context.Context, key string, v any) (bool, error) {
	raw, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return false, err
	}
	return true, nil
}

func (r *RedisEventCache) set(ctx context.Context, key string, v any, ttl time.Duration) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, key, string(raw), ttl).Err(); err != nil {
		return err
	}
	return nil
}

// NopEventCache never stores anything; it is used when no Redis is configured.
type NopEventCache struct{}

func (NopEventCache) GetEvents(context.Context) ([]model.EventSummary, error) {
	return nil, nil
}

func (NopEventCache) SetEvents(context.Context, []model.EventSummary, time.Duration) error {
	return nil
}

func (NopEventCache) GetReport(context.Context, string) (*model.EventReport, error) {
	return nil, nil
}

func (NopEventCache) SetReport(context.Context, string, *model.EventReport, time.Duration) error {
	return nil
}
