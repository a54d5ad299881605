package store

import (
	"context"
	"errors"

	"tokomart/internal/domain"
)

var (
	ErrUnknownProduct      = errors.New("unknown product")
	ErrInsufficientStock   = errors.New("insufficient stock")
	ErrUnknownPromotion    = errors.New("unknown promotion")
	ErrBadCatalogData      = errors.New("bad catalog data")
	ErrInvalidNumericValue = errors.New("invalid numeric value")
)

// CatalogSource supplies the raw product and promotion rows the engine
// is built from. Row order is preserved: the checkout presents the
// inventory in catalog order, and later rows for the same product name
// merge into earlier ones.
type CatalogSource interface {
	LoadProducts(ctx context.Context) ([]domain.ProductRow, error)
	LoadPromotions(ctx context.Context) ([]domain.PromotionRow, error)
}
