package main

import (
	"context"
	"errors"
	"io"
	"log"
	"os"
	"time"

	"tokomart/internal/cache"
	"tokomart/internal/cli"
	"tokomart/internal/config"
	"tokomart/internal/service"
	"tokomart/internal/store"
	"tokomart/internal/store/file"
	pgstore "tokomart/internal/store/postgres"
)

func main() {
	cfg := config.Load()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var src store.CatalogSource
	closers := make([]func() error, 0, 2)

	if cfg.DatabaseURL != "" {
		pg, err := pgstore.New(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("postgres unavailable (%v) and DATABASE_URL is set; refusing to start with file fallback", err)
		}
		src = pg
		closers = append(closers, pg.Close)
		log.Println("catalog: postgres")
	} else {
		src = file.New(cfg.ProductsFile, cfg.PromotionsFile)
		log.Println("catalog: file")
	}

	catalogCache := cache.CatalogCache(cache.NoopCatalogCache{})
	if cfg.RedisAddr != "" {
		redisCache := cache.NewRedisCatalogCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := redisCache.Ping(ctx); err != nil {
			log.Printf("redis unavailable (%v), using noop cache", err)
		} else {
			catalogCache = redisCache
			closers = append(closers, redisCache.Close)
			log.Println("cache: redis")
		}
	} else {
		log.Println("cache: noop")
	}

	cached := store.NewCachedSource(src, catalogCache, time.Duration(cfg.CatalogCacheTTLSeconds)*time.Second)

	products, err := cached.LoadProducts(ctx)
	if err != nil {
		log.Fatalf("load products: %v", err)
	}
	promotions, err := cached.LoadPromotions(ctx)
	if err != nil {
		log.Fatalf("load promotions: %v", err)
	}

	inventory, err := service.NewInventory(products)
	if err != nil {
		log.Fatalf("build inventory: %v", err)
	}
	manager, err := service.NewPromotionManager(promotions, clock(cfg.NowDate))
	if err != nil {
		log.Fatalf("build promotions: %v", err)
	}

	console := cli.NewConsole(os.Stdin, os.Stdout)
	checkout, err := service.NewCheckout(inventory, manager, console, console)
	if err != nil {
		log.Fatalf("catalog integrity: %v", err)
	}

	runErr := checkout.Run(context.Background())

	for _, closeFn := range closers {
		if err := closeFn(); err != nil {
			log.Printf("close error: %v", err)
		}
	}

	// A closed stdin mid-prompt is a normal way to leave the session.
	if runErr != nil && !errors.Is(runErr, io.EOF) {
		log.Fatalf("checkout: %v", runErr)
	}
}

// clock returns the promotion-window clock. NOW_DATE pins it to a fixed
// date for testing promotion windows; empty means wall clock.
func clock(nowDate string) func() time.Time {
	if nowDate == "" {
		return nil
	}
	fixed, err := time.Parse("2006-01-02", nowDate)
	if err != nil {
		log.Fatalf("invalid NOW_DATE %q: %v", nowDate, err)
	}
	return func() time.Time { return fixed }
}
