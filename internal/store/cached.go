package store

import (
	"context"
	"log"
	"time"

	"tokomart/internal/cache"
	"tokomart/internal/domain"
)

// CachedSource wraps another CatalogSource with a cache-aside snapshot.
// Cache failures fall through to the underlying source.
type CachedSource struct {
	src   CatalogSource
	cache cache.CatalogCache
	ttl   time.Duration
}

func NewCachedSource(src CatalogSource, c cache.CatalogCache, ttl time.Duration) *CachedSource {
	return &CachedSource{src: src, cache: c, ttl: ttl}
}

func (s *CachedSource) LoadProducts(ctx context.Context) ([]domain.ProductRow, error) {
	rows, found, err := s.cache.GetProducts(ctx)
	if err != nil {
		log.Printf("[catalog] WARN: product cache read failed: %v", err)
	}
	if found {
		return rows, nil
	}

	rows, err = s.src.LoadProducts(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.SetProducts(ctx, rows, s.ttl); err != nil {
		log.Printf("[catalog] WARN: product cache write failed: %v", err)
	}
	return rows, nil
}

func (s *CachedSource) LoadPromotions(ctx context.Context) ([]domain.PromotionRow, error) {
	rows, found, err := s.cache.GetPromotions(ctx)
	if err != nil {
		log.Printf("[catalog] WARN: promotion cache read failed: %v", err)
	}
	if found {
		return rows, nil
	}

	rows, err = s.src.LoadPromotions(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.SetPromotions(ctx, rows, s.ttl); err != nil {
		log.Printf("[catalog] WARN: promotion cache write failed: %v", err)
	}
	return rows, nil
}
