package cache

import (
	"context"

	"taskhub/internal/platform/config"
	"taskhub/internal/platform/logging"

	"github.com/redis/go-redis/v9"
)

var RDB *redis.Client

func ConnectRedis() {
	RDB = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisDB,
	})

	ctx := context.Background()
	if _, err := RDB.Ping(ctx).Result(); err != nil {
		logging.Log.Fatalf("Could not connect to Redis: %v", err)
	}
	logging.Log.Info("Successfully connected to Redis")
}

func CloseRedis() {
	if RDB != nil {
		RDB.Close()
		logging.Log.Info("Redis connection closed")
	}
}
