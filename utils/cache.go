// File: utils/cache.go
package utils

import (
	"context"
	"time"

	"smartstay/config"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// CacheClient is the snapshot cache client. Nil when Redis is unreachable;
// callers degrade to in-memory state only.
var CacheClient *redis.Client

// InitCache initializes the Redis snapshot cache client.
func InitCache() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		GetLogger().Warn("Redis unavailable, snapshot cache disabled", zap.Error(err))
		return
	}
	CacheClient = client
}

// GetCacheClient returns the snapshot cache client, or nil when disabled.
func GetCacheClient() *redis.Client {
	return CacheClient
}
