package service

import (
	"fmt"
	"strings"
	"sync"

	"tokomart/internal/domain"
	"tokomart/internal/store"
)

// StockView is a read-only snapshot of one product's stock, taken under
// the inventory lock. Callers resolve promotions against the snapshot
// and come back to DecreaseStock for the mutation.
type StockView struct {
	ProductName       string
	Price             int
	TotalQuantity     int
	NormalQuantity    int
	PromotionQuantity int
	PromotionName     string
}

// Inventory owns the catalog of ProductStock entries. It is the only
// component that mutates stock; all mutation is serialized behind mu.
type Inventory struct {
	mu     sync.RWMutex
	stocks map[string]*ProductStock
	order  []string
}

// NewInventory folds the catalog rows into a stock map, merging rows
// that share a product name instead of clobbering the earlier one.
func NewInventory(rows []domain.ProductRow) (*Inventory, error) {
	inv := &Inventory{
		stocks: make(map[string]*ProductStock, len(rows)),
		order:  make([]string, 0, len(rows)),
	}

	for _, row := range rows {
		name := strings.TrimSpace(row.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: product row with empty name", store.ErrBadCatalogData)
		}
		row.Name = name

		if existing, ok := inv.stocks[name]; ok {
			if err := existing.ApplyRow(row); err != nil {
				return nil, err
			}
			continue
		}
		ps, err := NewProductStock(row)
		if err != nil {
			return nil, err
		}
		inv.stocks[name] = ps
		inv.order = append(inv.order, name)
	}

	return inv, nil
}

// CheckAvailability returns the product's stock snapshot, or
// ErrUnknownProduct / ErrInsufficientStock. It never mutates, so
// repeated calls without an intervening deduction agree.
func (inv *Inventory) CheckAvailability(productName string, quantity int) (StockView, error) {
	inv.mu.RLock()
	defer inv.mu.RUnlock()

	ps, ok := inv.stocks[productName]
	if !ok {
		return StockView{}, fmt.Errorf("%w: %q", store.ErrUnknownProduct, productName)
	}
	if ps.TotalQuantity() < quantity {
		return StockView{}, fmt.Errorf("%w: %q has %d, requested %d", store.ErrInsufficientStock, productName, ps.TotalQuantity(), quantity)
	}
	return viewOf(ps), nil
}

// DecreaseStock deducts quantity units from the product, draining the
// promotional bucket first when preferPromotion is set.
func (inv *Inventory) DecreaseStock(productName string, quantity int, preferPromotion bool) error {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	ps, ok := inv.stocks[productName]
	if !ok {
		return fmt.Errorf("%w: %q", store.ErrUnknownProduct, productName)
	}
	if ps.TotalQuantity() < quantity {
		return fmt.Errorf("%w: %q has %d, requested %d", store.ErrInsufficientStock, productName, ps.TotalQuantity(), quantity)
	}
	ps.Decrease(quantity, preferPromotion)
	return nil
}

func (inv *Inventory) PriceOf(productName string) (int, error) {
	inv.mu.RLock()
	defer inv.mu.RUnlock()

	ps, ok := inv.stocks[productName]
	if !ok {
		return 0, fmt.Errorf("%w: %q", store.ErrUnknownProduct, productName)
	}
	return ps.Price(), nil
}

func (inv *Inventory) PromotionNameOf(productName string) (string, error) {
	inv.mu.RLock()
	defer inv.mu.RUnlock()

	ps, ok := inv.stocks[productName]
	if !ok {
		return "", fmt.Errorf("%w: %q", store.ErrUnknownProduct, productName)
	}
	return ps.PromotionName(), nil
}

// PromotionNames lists every promotion referenced by the catalog, for
// referential validation against the promotion catalog at load time.
func (inv *Inventory) PromotionNames() []string {
	inv.mu.RLock()
	defer inv.mu.RUnlock()

	names := make([]string, 0, len(inv.order))
	for _, productName := range inv.order {
		if promo := inv.stocks[productName].PromotionName(); promo != "" {
			names = append(names, promo)
		}
	}
	return names
}

// Snapshot renders the inventory in catalog order, promotional bucket
// before the normal one, for the session-start listing.
func (inv *Inventory) Snapshot() []domain.InventoryLine {
	inv.mu.RLock()
	defer inv.mu.RUnlock()

	lines := make([]domain.InventoryLine, 0, len(inv.order)*2)
	for _, productName := range inv.order {
		ps := inv.stocks[productName]
		if ps.PromotionName() != "" {
			lines = append(lines, domain.InventoryLine{
				ProductName:   productName,
				Price:         ps.Price(),
				Quantity:      ps.PromotionQuantity(),
				PromotionName: ps.PromotionName(),
			})
		}
		lines = append(lines, domain.InventoryLine{
			ProductName: productName,
			Price:       ps.Price(),
			Quantity:    ps.NormalQuantity(),
		})
	}
	return lines
}

func viewOf(ps *ProductStock) StockView {
	return StockView{
		ProductName:       ps.Name(),
		Price:             ps.Price(),
		TotalQuantity:     ps.TotalQuantity(),
		NormalQuantity:    ps.NormalQuantity(),
		PromotionQuantity: ps.PromotionQuantity(),
		PromotionName:     ps.PromotionName(),
	}
}
