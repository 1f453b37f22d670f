package service

import (
	"context"
	"encoding/json"
	"errors"
	"habit_tracker_backend/pkg/logger"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// SummaryCache 汇总结果缓存，读写失败不影响主流程
type SummaryCache interface {
	Get(ctx context.Context) ([]SummaryItem, bool, error)
	Set(ctx context.Context, items []SummaryItem, ttl time.Duration) error
	Invalidate(ctx context.Context) error
}

const summaryCacheKey = "habit_tracker:summary"

type RedisSummaryCache struct {
	Client *redis.Client
	Key    string
}

func NewRedisSummaryCache(client *redis.Client) *RedisSummaryCache {
	return &RedisSummaryCache{Client: client, Key: summaryCacheKey}
}

func (c *RedisSummaryCache) Get(ctx context.Context) ([]SummaryItem, bool, error) {
	data, err := c.Client.Get(ctx, c.Key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var items []SummaryItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, false, err
	}
	return items, true, nil
}

func (c *RedisSummaryCache) Set(ctx context.Context, items []SummaryItem, ttl time.Duration) error {
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return c.Client.Set(ctx, c.Key, data, ttl).Err()
}

func (c *RedisSummaryCache) Invalidate(ctx context.Context) error {
	return c.Client.Del(ctx, c.Key).Err()
}

func invalidateSummary(ctx context.Context, cache SummaryCache) {
	if cache == nil {
		return
	}
	if err := cache.Invalidate(ctx); err != nil {
		logger.Log.Warn("Summary cache invalidation failed", zap.Error(err))
	}
}
