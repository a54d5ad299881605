package cache

import (
	"context"
	"encoding/json"
	"time"

	redis "github.com/redis/go-redis/v9"

	"tokomart/internal/domain"
)

const (
	productsKey   = "catalog:products"
	promotionsKey = "catalog:promotions"
)

type RedisCatalogCache struct {
	client *redis.Client
}

func NewRedisCatalogCache(addr string, password string, db int) *RedisCatalogCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	return &RedisCatalogCache{client: client}
}

func (c *RedisCatalogCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCatalogCache) Close() error {
	return c.client.Close()
}

func (c *RedisCatalogCache) GetProducts(ctx context.Context) ([]domain.ProductRow, bool, error) {
	var rows []domain.ProductRow
	found, err := c.get(ctx, productsKey, &rows)
	return rows, found, err
}

func (c *RedisCatalogCache) SetProducts(ctx context.Context, rows []domain.ProductRow, ttl time.Duration) error {
	return c.set(ctx, productsKey, rows, ttl)
}

func (c *RedisCatalogCache) GetPromotions(ctx context.Context) ([]domain.PromotionRow, bool, error) {
	var rows []domain.PromotionRow
	found, err := c.get(ctx, promotionsKey, &rows)
	return rows, found, err
}

func (c *RedisCatalogCache) SetPromotions(ctx context.Context, rows []domain.PromotionRow, ttl time.Duration) error {
	return c.set(ctx, promotionsKey, rows, ttl)
}

func (c *RedisCatalogCache) get(ctx context.Context, key string, out any) (bool, error) {
	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(val), out); err != nil {
		return false, err
	}
	return true, nil
}

func (c *RedisCatalogCache) set(ctx context.Context, key string, value any, ttl time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, payload, ttl).Err()
}
