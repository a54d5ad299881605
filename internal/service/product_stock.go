package service

import (
	"fmt"
	"strings"

	"tokomart/internal/domain"
	"tokomart/internal/store"
)

type stockBucket struct {
	price         int
	quantity      int
	promotionName string
}

// ProductStock is one product's split inventory: a normal bucket sold
// at the regular price and an optional promotional bucket. A product
// whose catalog rows are promotional-only still carries a zero-quantity
// normal bucket so plain-price lookups never fail.
type ProductStock struct {
	name   string
	normal *stockBucket
	promo  *stockBucket
}

func NewProductStock(row domain.ProductRow) (*ProductStock, error) {
	ps := &ProductStock{name: row.Name}
	if err := ps.ApplyRow(row); err != nil {
		return nil, err
	}
	return ps, nil
}

// ApplyRow merges one catalog row into the stock. A second row for the
// same product fills in the other bucket rather than overwriting.
func (ps *ProductStock) ApplyRow(row domain.ProductRow) error {
	if row.Price < 0 || row.Quantity < 0 {
		return fmt.Errorf("%w: product %q price=%d quantity=%d", store.ErrInvalidNumericValue, row.Name, row.Price, row.Quantity)
	}
	promotion := strings.TrimSpace(row.PromotionName)
	if promotion == "" {
		return fmt.Errorf("%w: product %q has an empty promotion name", store.ErrBadCatalogData, row.Name)
	}

	if promotion == domain.NoPromotion {
		ps.normal = &stockBucket{price: row.Price, quantity: row.Quantity}
		return nil
	}

	ps.promo = &stockBucket{price: row.Price, quantity: row.Quantity, promotionName: promotion}
	if ps.normal == nil {
		ps.normal = &stockBucket{price: row.Price}
	}
	return nil
}

func (ps *ProductStock) Name() string {
	return ps.name
}

func (ps *ProductStock) Price() int {
	if ps.normal != nil {
		return ps.normal.price
	}
	if ps.promo != nil {
		return ps.promo.price
	}
	return 0
}

func (ps *ProductStock) TotalQuantity() int {
	return ps.NormalQuantity() + ps.PromotionQuantity()
}

func (ps *ProductStock) NormalQuantity() int {
	if ps.normal == nil {
		return 0
	}
	return ps.normal.quantity
}

func (ps *ProductStock) PromotionQuantity() int {
	if ps.promo == nil {
		return 0
	}
	return ps.promo.quantity
}

// PromotionName returns the promotion this product's promotional bucket
// belongs to, or "" when the product has none.
func (ps *ProductStock) PromotionName() string {
	if ps.promo == nil {
		return ""
	}
	return ps.promo.promotionName
}

// Decrease deducts amount units, draining the preferred bucket first
// and spilling the remainder into the other. The caller guarantees
// TotalQuantity() >= amount via a prior availability check.
func (ps *ProductStock) Decrease(amount int, preferPromotion bool) {
	primaryBucket, otherBucket := ps.normal, ps.promo
	if preferPromotion {
		primaryBucket, otherBucket = ps.promo, ps.normal
	}

	primary := min(bucketQuantity(primaryBucket), amount)
	extra := amount - primary
	takeFrom(primaryBucket, primary)
	takeFrom(otherBucket, extra)
}

func bucketQuantity(b *stockBucket) int {
	if b == nil {
		return 0
	}
	return b.quantity
}

func takeFrom(b *stockBucket, n int) {
	if b == nil || n == 0 {
		return
	}
	b.quantity -= n
}
