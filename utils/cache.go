package utils

import (
	"context"
	"time"

	"hotelops/config"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// CacheClient backs idempotency keys and other short-lived state.
var CacheClient *redis.Client

// InitCache initializes the generic Redis cache client.
func InitCache() {
	CacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := CacheClient.Ping(ctx).Err(); err != nil {
		GetLogger().Fatal("failed to connect to Redis (cache)", zap.String("addr", config.AppConfig.RedisAddr), zap.Error(err))
	}
}

// GetCacheClient returns the generic cache client.
func GetCacheClient() *redis.Client {
	if CacheClient == nil {
		InitCache()
	}
	return CacheClient
}
