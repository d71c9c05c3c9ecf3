package config

// Redis backs the login rate limiter and the response cache for public and
// dashboard reads. Connection parameters come from the environment. When the
// connection cannot be established at startup this returns nil and callers
// disable both features rather than failing the whole API.

import (
	"context"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient instantiates a Redis client using environment variables:
//
//	REDIS_ADDR     - host:port (default "localhost:6379")
//	REDIS_PASSWORD - optional password
//	REDIS_DB       - database number (default 0)
//
// The returned client is nil if the server does not answer a ping.
func NewRedisClient() *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	dbNum := 0
	if s := os.Getenv("REDIS_DB"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			dbNum = n
		}
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       dbNum,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil
	}
	return client
}
