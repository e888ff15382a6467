package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"Brandi/config"
	"Brandi/dao"
	"Brandi/models"
	"Brandi/pkg/log"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	keyPrefix         = "brandi:catalog:"
	defaultCatalogTTL = 10 * time.Minute
)

// CatalogStorage 基础数据的旁路缓存。Redis 出错时直接读库，只记录告警。
type CatalogStorage struct {
	redis *redis.Client
	ref   *dao.Reference
	ttl   time.Duration
}

func NewCatalogStorage(rds *redis.Client, conf *config.Config, ref *dao.Reference) *CatalogStorage {
	ttl := defaultCatalogTTL
	if conf.Redis != nil && conf.Redis.CatalogTTL > 0 {
		ttl = conf.Redis.CatalogTTL
	}
	return &CatalogStorage{redis: rds, ref: ref, ttl: ttl}
}

func (c *CatalogStorage) Colors(ctx context.Context) ([]*models.Color, error) {
	return load(ctx, c, keyPrefix+"colors", c.ref.Colors)
}

func (c *CatalogStorage) Sizes(ctx context.Context) ([]*models.Size, error) {
	return load(ctx, c, keyPrefix+"sizes", c.ref.Sizes)
}

func (c *CatalogStorage) MainCategories(ctx context.Context) ([]*models.MainCategory, error) {
	return load(ctx, c, keyPrefix+"main_categories", c.ref.MainCategories)
}

func (c *CatalogStorage) SubCategories(ctx context.Context, mainCategoryID uint64) ([]*models.SubCategory, error) {
	return load(ctx, c, keyPrefix+"sub_categories:"+strconv.FormatUint(mainCategoryID, 10),
		func(ctx context.Context) ([]*models.SubCategory, error) {
			return c.ref.SubCategories(ctx, mainCategoryID)
		})
}

// Invalidate 删除全部基础数据缓存
func (c *CatalogStorage) Invalidate(ctx context.Context) error {
	if c.redis == nil {
		return nil
	}
	var cursor uint64
	for {
		keys, next, err := c.redis.Scan(ctx, cursor, keyPrefix+"*", 100).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.redis.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}

func load[T any](ctx context.Context, c *CatalogStorage, key string, fetch func(ctx context.Context) (T, error)) (T, error) {
	if c.redis != nil {
		raw, err := c.redis.Get(ctx, key).Bytes()
		switch {
		case err == nil:
			var v T
			if err := json.Unmarshal(raw, &v); err == nil {
				return v, nil
			}
			log.L.Warn("catalog cache: bad payload", zap.String("key", key))
		case !errors.Is(err, redis.Nil):
			log.L.Warn("catalog cache: get failed", zap.String("key", key), zap.Error(err))
		}
	}

	v, err := fetch(ctx)
	if err != nil {
		return v, err
	}

	if c.redis != nil {
		if data, err := json.Marshal(v); err == nil {
			if err := c.redis.Set(ctx, key, data, c.ttl).Err(); err != nil {
				log.L.Warn("catalog cache: set failed", zap.String("key", key), zap.Error(err))
			}
		}
	}
	return v, nil
}
