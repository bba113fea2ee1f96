package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/autofix-digital/template-base/internal/constants"
	"github.com/autofix-digital/template-base/internal/model"
	"github.com/autofix-digital/template-base/pkg/cache"
	ctxutil "github.com/autofix-digital/template-base/pkg/context"
	"github.com/autofix-digital/template-base/pkg/logger"
	"github.com/autofix-digital/template-base/pkg/redis"
)

const configCacheTTL = 5 * time.Minute

// ConfigCache caches configuration rows in redis. When redis is
// disabled it falls back to a small in-process store so reads still
// avoid the database between writes.
type ConfigCache struct {
	client *redis.Client
	memory *cache.Store
}

func NewConfigCache(client *redis.Client, enabled bool) *ConfigCache {
	if enabled && client != nil {
		return &ConfigCache{client: client}
	}
	return &ConfigCache{memory: cache.NewStore()}
}

func (c *ConfigCache) key(configKey string) string {
	return constants.CacheKeyPrefix + "config:" + configKey
}

// Get returns the cached configuration, or (nil, false) on a miss.
func (c *ConfigCache) Get(ctx context.Context, configKey string) (*model.Configuration, bool) {
	var (
		data []byte
		ok   bool
	)
	if c.client != nil {
		var err error
		data, err = c.client.Get(ctx, c.key(configKey))
		ok = err == nil && data != nil
	} else {
		data, ok = c.memory.Get(c.key(configKey))
	}
	if !ok {
		return nil, false
	}

	var cfg model.Configuration
	if err := json.Unmarshal(data, &cfg); err != nil {
		logger.WarnWithContext(ctx, "Corrupt configuration cache entry dropped").
			String("key", configKey).
			Err(err).
			Log()
		c.Invalidate(ctx, configKey)
		return nil, false
	}
	return &cfg, true
}

func (c *ConfigCache) Set(ctx context.Context, cfg *model.Configuration) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Set")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "cache")

	data, err := json.Marshal(cfg)
	if err != nil {
		return
	}
	if c.client != nil {
		if err := c.client.Set(ctx, c.key(cfg.Key), data, configCacheTTL); err != nil {
			logger.WarnWithContext(ctx, "Failed to cache configuration").
				String("key", cfg.Key).
				Err(err).
				Log()
		}
		return
	}
	c.memory.Set(c.key(cfg.Key), data, configCacheTTL)
}

// Invalidate drops a single cached key.
func (c *ConfigCache) Invalidate(ctx context.Context, configKey string) {
	if c.client != nil {
		_ = c.client.Delete(ctx, c.key(configKey))
		return
	}
	c.memory.Delete(c.key(configKey))
}

// InvalidateAll drops every cached configuration.
func (c *ConfigCache) InvalidateAll(ctx context.Context) {
	if c.client != nil {
		_ = c.client.DeleteByPattern(ctx, constants.CacheKeyPrefix+"config:*")
		return
	}
	c.memory.DeleteByPrefix(constants.CacheKeyPrefix + "config:")
}
