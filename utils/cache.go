// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"whenfree/config"
)

// LimiterClient is the Redis client backing the per-caller request windows.
var LimiterClient *redis.Client

// InitLimiterStore initializes the Redis client for rate-limit accounting.
func InitLimiterStore() {
	LimiterClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisLimiterDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := LimiterClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Limiter): %v", err)
	}
}

// GetLimiterClient returns the Redis client for rate-limit accounting.
func GetLimiterClient() *redis.Client {
	if LimiterClient == nil {
		InitLimiterStore()
	}
	return LimiterClient
}
