// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"workspot/config"

	"github.com/go-redis/redis/v8"
)

// LockClient is the Redis client backing per-space booking locks.
var LockClient *redis.Client

// InitLockClient initializes the Redis client for booking locks (using the lock DB from AppConfig).
func InitLockClient() {
	LockClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisLockDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := LockClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Lock): %v", err)
	}
}

// GetLockClient returns the booking lock client.
func GetLockClient() *redis.Client {
	if LockClient == nil {
		InitLockClient()
	}
	return LockClient
}
