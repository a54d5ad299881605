package service

import (
	"context"
	"fmt"
	"time"

	"tokomart/internal/domain"
	"tokomart/internal/store"
)

// Decider answers the two yes/no questions the promotion protocol can
// raise for a purchase line. Implementations block on user input.
type Decider interface {
	// ConfirmPartialPromotion asks whether to proceed with exceed units
	// charged at full price because promotional stock cannot cover them.
	ConfirmPartialPromotion(ctx context.Context, productName string, exceed int) (bool, error)
	// ConfirmBonusAddition asks whether to add bonus free units by
	// completing the promotion tier.
	ConfirmBonusAddition(ctx context.Context, productName string, bonus int) (bool, error)
}

// PromotionManager owns the promotion catalog and runs the interactive
// resolution protocol for each purchase line.
type PromotionManager struct {
	promotions map[string]*Promotion
	now        func() time.Time
}

func NewPromotionManager(rows []domain.PromotionRow, now func() time.Time) (*PromotionManager, error) {
	if now == nil {
		now = time.Now
	}
	pm := &PromotionManager{
		promotions: make(map[string]*Promotion, len(rows)),
		now:        now,
	}
	for _, row := range rows {
		promo, err := NewPromotion(row)
		if err != nil {
			return nil, err
		}
		pm.promotions[promo.Name()] = promo
	}
	return pm, nil
}

// ValidateReferences fails with ErrUnknownPromotion when any referenced
// promotion name is missing from the catalog. A broken reference is a
// data-integrity error, fatal at load time.
func (pm *PromotionManager) ValidateReferences(names []string) error {
	for _, name := range names {
		if _, ok := pm.promotions[name]; !ok {
			return fmt.Errorf("%w: %q", store.ErrUnknownPromotion, name)
		}
	}
	return nil
}

// IsAvailable reports whether the named promotion exists and is inside
// its validity window right now. An empty name is never available.
func (pm *PromotionManager) IsAvailable(promotionName string) bool {
	promo, ok := pm.promotions[promotionName]
	return ok && promo.IsAvailable(pm.now())
}

// Resolve runs the full protocol for one purchase line and returns the
// authoritative split. promoStock is the product's current promotional
// bucket quantity; promotionName may be empty for plain products.
//
// The shortfall and bonus prompts are mutually exclusive: the bonus
// branch is reached only when the shortfall is zero.
func (pm *PromotionManager) Resolve(ctx context.Context, line domain.PurchaseLine, promoStock int, promotionName string, decider Decider) (domain.LineResolution, error) {
	res := domain.LineResolution{ProductName: line.ProductName}

	promo, ok := pm.promotions[promotionName]
	if !ok || !promo.IsAvailable(pm.now()) {
		res.NonPromo = line.Quantity
		return res, nil
	}

	maxApp := promo.MaxApplication(line.Quantity, promoStock)
	exceed := promo.NonPromoRemainder(line.Quantity, maxApp)

	if exceed > 0 && line.Quantity >= promo.Buy() {
		confirmed, err := decider.ConfirmPartialPromotion(ctx, line.ProductName, exceed)
		if err != nil {
			return domain.LineResolution{}, err
		}
		covered := line.Quantity - exceed
		fitted := promo.FittedApplication(covered, promoStock)
		res.Promo = fitted.Promo
		res.Free = fitted.Free
		res.NonPromo = covered - fitted.Total()
		if confirmed {
			res.NonPromo += exceed
		}
		return res, nil
	}

	target := line.Quantity
	if maxApp.Total() > line.Quantity {
		bonus := maxApp.Total() - line.Quantity
		confirmed, err := decider.ConfirmBonusAddition(ctx, line.ProductName, bonus)
		if err != nil {
			return domain.LineResolution{}, err
		}
		if confirmed {
			target = maxApp.Total()
		}
	}

	fitted := promo.FittedApplication(target, promoStock)
	res.Promo = fitted.Promo
	res.Free = fitted.Free
	res.NonPromo = target - fitted.Total()
	return res, nil
}
