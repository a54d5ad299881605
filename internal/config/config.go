package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	ProductsFile           string
	PromotionsFile         string
	DatabaseURL            string
	RedisAddr              string
	RedisPassword          string
	RedisDB                int
	CatalogCacheTTLSeconds int
	NowDate                string
}

func Load() Config {
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	ttl, err := strconv.Atoi(getEnv("CATALOG_CACHE_TTL_SECONDS", "60"))
	if err != nil || ttl < 1 {
		ttl = 60
	}

	cfg := Config{
		ProductsFile:           getEnv("PRODUCTS_FILE", "data/products.md"),
		PromotionsFile:         getEnv("PROMOTIONS_FILE", "data/promotions.md"),
		DatabaseURL:            os.Getenv("DATABASE_URL"),
		RedisAddr:              os.Getenv("REDIS_ADDR"),
		RedisPassword:          os.Getenv("REDIS_PASSWORD"),
		RedisDB:                redisDB,
		CatalogCacheTTLSeconds: ttl,
		NowDate:                strings.TrimSpace(os.Getenv("NOW_DATE")),
	}

	return cfg
}

func getEnv(key string, fallback string) string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	return val
}
