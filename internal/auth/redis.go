package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"ticketly-gateway/internal/logger"
)

// InitializeTokenCache connects to Redis for shared token caching and
// verifies the connection before use.
func InitializeTokenCache(redisAddr string, log *logger.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		PoolSize: 10,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Error("AUTH", fmt.Sprintf("Failed to connect to Redis at %s: %v", redisAddr, err))
		return nil, err
	}

	log.Info("AUTH", fmt.Sprintf("Connected to Redis at %s for token caching", redisAddr))
	return client, nil
}
