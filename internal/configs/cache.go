package config

import (
	"time"

	"github.com/charmbracelet/log"

	"task-management.com/task-management/internal/cache"
)

// NewCache builds the cache selected by CACHE_DRIVER. The returned close
// function releases whatever the cache holds open.
func NewCache(cfg Config, logger *log.Logger) (cache.Cache, func(), error) {
	if cfg.CacheDriver == CacheDriverRedis {
		client, err := NewRedisClient(cfg.RedisAddr)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("using redis cache", "addr", cfg.RedisAddr)
		return cache.NewRedis(client, cfg.RedisKeyPrefix), client.Close, nil
	}

	sweep := time.Duration(cfg.CacheSweepIntervalSeconds) * time.Second
	memory := cache.NewMemory(sweep, cache.WithLogger(logger))
	logger.Info("using in-memory cache", "sweep_interval", sweep)
	return memory, memory.Close, nil
}
