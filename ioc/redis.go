package ioc

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/to404hanga/codestudio_arena/config"
)

func newRedis() redis.Cmdable {
	var cfg config.RedisConfig
	if err := config.Load(&cfg); err != nil {
		log.Panicf("load redis config failed: %v", err)
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Panicf("ping redis failed: %v", err)
	}
	return client
}
