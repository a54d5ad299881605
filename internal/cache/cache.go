package cache

import (
	"context"
	"time"

	"tokomart/internal/domain"
)

// CatalogCache holds a parsed snapshot of the catalog so repeated
// sessions against a slow source (network database) skip the reload.
type CatalogCache interface {
	GetProducts(ctx context.Context) ([]domain.ProductRow, bool, error)
	SetProducts(ctx context.Context, rows []domain.ProductRow, ttl time.Duration) error
	GetPromotions(ctx context.Context) ([]domain.PromotionRow, bool, error)
	SetPromotions(ctx context.Context, rows []domain.PromotionRow, ttl time.Duration) error
}

type NoopCatalogCache struct{}

func (NoopCatalogCache) GetProducts(_ context.Context) ([]domain.ProductRow, bool, error) {
	return nil, false, nil
}

func (NoopCatalogCache) SetProducts(_ context.Context, _ []domain.ProductRow, _ time.Duration) error {
	return nil
}

func (NoopCatalogCache) GetPromotions(_ context.Context) ([]domain.PromotionRow, bool, error) {
	return nil, false, nil
}

func (NoopCatalogCache) SetPromotions(_ context.Context, _ []domain.PromotionRow, _ time.Duration) error {
	return nil
}
