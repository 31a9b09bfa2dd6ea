package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/SamuelSmthSmth/ExeterCourseNodeGraph/pkg/metrics"
)

const graphCachePrefix = "graph:"

// graphCache 对 GraphCache 的薄封装：记录命中指标，缓存故障只告警不影响请求
type graphCache struct {
	cache  GraphCache
	ttl    time.Duration
	logger *zap.Logger
}

func newGraphCache(cache GraphCache, ttl time.Duration, logger *zap.Logger) *graphCache {
	return &graphCache{cache: cache, ttl: ttl, logger: logger}
}

func (c *graphCache) enabled() bool {
	return c != nil && c.cache != nil && c.ttl > 0
}

// get kind = course | chain
func (c *graphCache) get(ctx context.Context, kind, key string, dest interface{}) bool {
	if !c.enabled() {
		return false
	}
	hit, err := c.cache.GetJSON(ctx, graphCachePrefix+key, dest)
	switch {
	case err != nil:
		metrics.GraphCacheTotal.WithLabelValues(kind, "error").Inc()
		c.logger.Warn("读取图缓存失败", zap.String("key", key), zap.Error(err))
		return false
	case hit:
		metrics.GraphCacheTotal.WithLabelValues(kind, "hit").Inc()
		return true
	default:
		metrics.GraphCacheTotal.WithLabelValues(kind, "miss").Inc()
		return false
	}
}

func (c *graphCache) set(ctx context.Context, key string, value interface{}) {
	if !c.enabled() {
		return
	}
	if err := c.cache.SetJSON(ctx, graphCachePrefix+key, value, c.ttl); err != nil {
		c.logger.Warn("写入图缓存失败", zap.String("key", key), zap.Error(err))
	}
}

// invalidate 目录变更后清空全部图缓存
func (c *graphCache) invalidate(ctx context.Context) {
	if !c.enabled() {
		return
	}
	n, err := c.cache.DeleteByPrefix(ctx, graphCachePrefix)
	if err != nil {
		c.logger.Warn("清理图缓存失败", zap.Error(err))
		return
	}
	c.logger.Info("图缓存已清理", zap.Int("keys", n))
}
