// File: utils/cache.go
package utils

import (
	"context"
	"fmt"
	"time"

	"cowork/config"

	"github.com/go-redis/redis/v8"
)

// RedisClient backs health checks and shares its DB with the reminder queue.
var RedisClient *redis.Client

// InitRedis connects to the queue DB and verifies it with a ping.
func InitRedis() error {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	RedisClient = client
	return nil
}

// RedisPing adapts a redis client to a health check.
func RedisPing(client redis.UniversalClient) HealthCheck {
	return func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	}
}
