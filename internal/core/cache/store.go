// Package cache 外部來源回應的快取，支援記憶體與 Redis 兩種後端
package cache

import (
	"context"
	"errors"
	"fmt"

	"recipe-matcher/internal/infrastructure/config"
	"recipe-matcher/internal/pkg/common"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// ErrCacheMiss 快取未命中或已過期
var ErrCacheMiss = errors.New("cache miss")

// ErrCacheFull 清理後仍然沒有空間
var ErrCacheFull = errors.New("cache is full")

// Store 快取介面
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Stats() map[string]interface{}
	Close() error
}

// NewStore 依設定建立快取，停用時回傳 nil
func NewStore(cfg *config.Config, client *redis.Client) (Store, error) {
	if !cfg.Cache.Enabled {
		common.LogInfo("Cache disabled")
		return nil, nil
	}

	switch cfg.Cache.Backend {
	case config.BackendRedis:
		if client == nil {
			return nil, fmt.Errorf("redis cache requires a redis client")
		}
		common.LogInfo("使用 Redis 快取", zap.String("addr", cfg.Redis.Addr))
		return NewRedisStore(client, cfg.Redis.Prefix, cfg.Cache.TTL), nil
	default:
		return NewManager(Options{
			MaxSize:         cfg.Cache.MaxSize,
			TTL:             cfg.Cache.TTL,
			CleanupInterval: cfg.Cache.CleanupInterval,
		}), nil
	}
}
