package client

import (
	"context"
	"fmt"
	"time"

	"Brandi/config"
	"Brandi/pkg/log"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NewRedisClient Redis 只做缓存，连不上时服务照常启动，读请求回源数据库
func NewRedisClient(conf *config.Config) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", conf.Redis.Address, conf.Redis.Port),
		Password:     conf.Redis.Password,
		Username:     conf.Redis.Username,
		DB:           conf.Redis.Database,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		log.L.Warn("connect redis error, catalog cache disabled until it recovers", zap.Error(err))
		return client
	}
	log.L.Info("redis client success")
	return client
}
