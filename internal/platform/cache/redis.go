package cache

import (
	"context"
	"fmt"
	"staff_attendance/internal/platform/config"
	"time"

	"github.com/redis/go-redis/v9"
)

// Connect opens a Redis client and verifies it with a ping. Redis backs the
// auth endpoint rate limiter.
func Connect(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}

// Healthy reports whether the Redis connection is currently serving.
func Healthy(ctx context.Context, client *redis.Client) bool {
	return client.Ping(ctx).Err() == nil
}
