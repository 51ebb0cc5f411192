package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/unity-app/unity-engine/internal/core/domain"
)

var _ domain.ReportCache = (*RedisReportCache)(nil)

const DefaultReportTTL = 6 * time.Hour

// CacheObserver counts lookups. The metrics adapter implements it.
type CacheObserver interface {
	CacheLookup(cache string, hit bool)
}

type noopObserver struct{}

func (noopObserver) CacheLookup(string, bool) {}

type RedisReportCache struct {
	client   *redis.Client
	ttl      time.Duration
	observer CacheObserver
}

func NewRedisReportCache(client *redis.Client, ttl time.Duration, observer CacheObserver) *RedisReportCache {
	if ttl <= 0 {
		ttl = DefaultReportTTL
	}
	if observer == nil {
		observer = noopObserver{}
	}
	return &RedisReportCache{
		client:   client,
		ttl:      ttl,
		observer: observer,
	}
}

func reportKey(goalID string) string {
	return fmt.Sprintf("reports:%s", goalID)
}

func (c *RedisReportCache) Get(ctx context.Context, goalID string) (*domain.ConsistencyReport, error) {
	key := reportKey(goalID)

	val, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		c.observer.CacheLookup("reports", false)
		return nil, domain.ErrReportNotCached
	}
	if err != nil {
		return nil, fmt.Errorf("redis read error: %w", err)
	}

	var report domain.ConsistencyReport
	if err := json.Unmarshal(val, &report); err != nil {
		log.Printf("[CACHE] Corrupted report for goal %s, cleaning up key", goalID)
		c.client.Del(ctx, key)
		c.observer.CacheLookup("reports", false)
		return nil, domain.ErrReportNotCached
	}

	c.observer.CacheLookup("reports", true)
	return &report, nil
}

func (c *RedisReportCache) Set(ctx context.Context, report *domain.ConsistencyReport) error {
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return c.client.Set(ctx, reportKey(report.GoalID), data, c.ttl).Err()
}

func (c *RedisReportCache) Invalidate(ctx context.Context, goalID string) error {
	return c.client.Del(ctx, reportKey(goalID)).Err()
}
