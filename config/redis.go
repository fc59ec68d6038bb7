package config

import (
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisClient stays nil when Redis is not reachable at startup.
var RedisClient *redis.Client

// ConnectRedis sets RedisClient. Redis only backs rate limiting, so a missing or unreachable
// server leaves RedisClient nil and the limiter lets traffic through.
func ConnectRedis() {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
		log.Println("⚠️  REDIS_URL not set, using local Redis:", redisURL)
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("❌ invalid REDIS_URL, rate limiting disabled: %v", err)
		return
	}

	opt.DialTimeout = 3 * time.Second
	opt.ReadTimeout = 500 * time.Millisecond
	opt.WriteTimeout = 500 * time.Millisecond
	client := redis.NewClient(opt)

	ctx, cancel := WithCustomTimeout(5 * time.Second)
	defer cancel()
	res, err := client.Ping(ctx).Result()
	if err != nil {
		log.Printf("❌ failed to connect to Redis, rate limiting disabled: %v", err)
		_ = client.Close()
		return
	}
	RedisClient = client
	log.Println("✅ Connected to Redis:", res)
}

func CloseRedis() {
	if RedisClient != nil {
		_ = RedisClient.Close()
	}
}
