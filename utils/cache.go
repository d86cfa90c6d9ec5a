// File: utils/cache.go
package utils

import (
	"context"
	"fmt"
	"time"

	"taskly/config"

	"github.com/go-redis/redis/v8"
)

// CacheClient is the generic cache client. It stays nil when Redis is not configured.
var CacheClient *redis.Client

// InitCache initializes the generic Redis cache client. An empty REDIS_ADDR
// disables caching and returns a nil client without error.
func InitCache(ctx context.Context) (*redis.Client, error) {
	if config.AppConfig.RedisAddr == "" {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis (Cache): %w", err)
	}

	CacheClient = client
	return CacheClient, nil
}
