package database

import (
	"context"
	"log"

	"game_marketplace/config"

	"github.com/redis/go-redis/v9"
)

var Redis *redis.Client

// ConnectRedis: cache currency mặc định + pubsub kênh order events
func ConnectRedis() {
	addr := config.Config("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	Redis = redis.NewClient(&redis.Options{Addr: addr})

	if err := Redis.Ping(context.Background()).Err(); err != nil {
		// không chặn app, cache miss sẽ fallback về DB
		log.Printf("⚠️ Redis không kết nối được (%v), chạy không cache", err)
	}
}
