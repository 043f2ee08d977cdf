package database

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Radpid/radGPT/pkg/common/config"
	"github.com/Radpid/radGPT/pkg/common/logger"
	"github.com/redis/go-redis/v9"
)

var (
	redisClient *redis.Client
	redisOnce   sync.Once
)

// GetRedis returns the shared Redis client. The client is created lazily; a
// failed ping only logs a warning since the statistics cache is optional and
// callers degrade to the database when Redis is away.
func GetRedis() *redis.Client {
	redisOnce.Do(func() {
		cfg := config.Load()
		redisClient = redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort),
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Log.WithError(err).Warn("redis unreachable, statistics cache degraded")
		} else {
			logger.Log.Info("connected to redis")
		}
	})

	return redisClient
}

func CloseRedis() error {
	if redisClient == nil {
		return nil
	}
	return redisClient.Close()
}
