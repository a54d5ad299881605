package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"tokomart/internal/domain"
	"tokomart/internal/store"
)

type scriptedDecider struct {
	partialAnswer bool
	bonusAnswer   bool
	partialCalls  int
	bonusCalls    int
}

func (d *scriptedDecider) ConfirmPartialPromotion(_ context.Context, _ string, _ int) (bool, error) {
	d.partialCalls++
	return d.partialAnswer, nil
}

func (d *scriptedDecider) ConfirmBonusAddition(_ context.Context, _ string, _ int) (bool, error) {
	d.bonusCalls++
	return d.bonusAnswer, nil
}

func fixedClock(t *testing.T, date string) func() time.Time {
	t.Helper()
	d := mustDate(t, date)
	return func() time.Time { return d }
}

func newTestManager(t *testing.T, rows []domain.PromotionRow, today string) *PromotionManager {
	t.Helper()
	pm, err := NewPromotionManager(rows, fixedClock(t, today))
	if err != nil {
		t.Fatalf("new promotion manager: %v", err)
	}
	return pm
}

func promoRows(t *testing.T) []domain.PromotionRow {
	t.Helper()
	return []domain.PromotionRow{
		{Name: "Carbonated2+1", Buy: 2, Get: 1, StartDate: mustDate(t, "2024-01-01"), EndDate: mustDate(t, "2026-12-31")},
		{Name: "Bundle3+1", Buy: 3, Get: 1, StartDate: mustDate(t, "2024-01-01"), EndDate: mustDate(t, "2026-12-31")},
		{Name: "MD Special", Buy: 1, Get: 1, StartDate: mustDate(t, "2024-01-01"), EndDate: mustDate(t, "2026-12-31")},
		{Name: "Flash Sale", Buy: 1, Get: 1, StartDate: mustDate(t, "2026-11-01"), EndDate: mustDate(t, "2026-11-30")},
	}
}

func TestValidateReferencesRejectsUnknownPromotion(t *testing.T) {
	pm := newTestManager(t, promoRows(t), "2026-08-30")

	if err := pm.ValidateReferences([]string{"Carbonated2+1", "Flash Sale"}); err != nil {
		t.Fatalf("expected known references to pass, got %v", err)
	}
	err := pm.ValidateReferences([]string{"Carbonated2+1", "Ghost Promo"})
	if !errors.Is(err, store.ErrUnknownPromotion) {
		t.Fatalf("expected ErrUnknownPromotion, got %v", err)
	}
}

func TestIsAvailableHonorsWindowAndExistence(t *testing.T) {
	pm := newTestManager(t, promoRows(t), "2026-08-30")

	if !pm.IsAvailable("Carbonated2+1") {
		t.Fatalf("expected Carbonated2+1 to be available")
	}
	if pm.IsAvailable("Flash Sale") {
		t.Fatalf("expected Flash Sale to be outside its window")
	}
	if pm.IsAvailable("") || pm.IsAvailable("Ghost Promo") {
		t.Fatalf("expected missing promotions to be unavailable")
	}
}

func TestResolveFallsBackWhenPromotionNotApplicable(t *testing.T) {
	pm := newTestManager(t, promoRows(t), "2026-08-30")
	line := domain.PurchaseLine{ProductName: "Potato Chips", Quantity: 3}

	cases := []struct {
		name      string
		promotion string
	}{
		{"no promotion", ""},
		{"unknown promotion", "Ghost Promo"},
		{"out of window", "Flash Sale"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			decider := &scriptedDecider{}
			res, err := pm.Resolve(context.Background(), line, 10, tc.promotion, decider)
			if err != nil {
				t.Fatalf("resolve: %v", err)
			}
			want := domain.LineResolution{ProductName: "Potato Chips", NonPromo: 3}
			if res != want {
				t.Fatalf("got %+v, want %+v", res, want)
			}
			if decider.partialCalls+decider.bonusCalls != 0 {
				t.Fatalf("expected no prompts, got partial=%d bonus=%d", decider.partialCalls, decider.bonusCalls)
			}
		})
	}
}

func TestResolveShortfallPrompt(t *testing.T) {
	pm := newTestManager(t, promoRows(t), "2026-08-30")
	line := domain.PurchaseLine{ProductName: "Cola", Quantity: 6}

	t.Run("confirmed keeps exceed at full price", func(t *testing.T) {
		decider := &scriptedDecider{partialAnswer: true}
		res, err := pm.Resolve(context.Background(), line, 4, "Bundle3+1", decider)
		if err != nil {
			t.Fatalf("resolve: %v", err)
		}
		want := domain.LineResolution{ProductName: "Cola", Promo: 3, Free: 1, NonPromo: 2}
		if res != want {
			t.Fatalf("got %+v, want %+v", res, want)
		}
		if decider.partialCalls != 1 || decider.bonusCalls != 0 {
			t.Fatalf("expected exactly one shortfall prompt, got partial=%d bonus=%d", decider.partialCalls, decider.bonusCalls)
		}
	})

	t.Run("declined drops the exceed units", func(t *testing.T) {
		decider := &scriptedDecider{partialAnswer: false}
		res, err := pm.Resolve(context.Background(), line, 4, "Bundle3+1", decider)
		if err != nil {
			t.Fatalf("resolve: %v", err)
		}
		want := domain.LineResolution{ProductName: "Cola", Promo: 3, Free: 1, NonPromo: 0}
		if res != want {
			t.Fatalf("got %+v, want %+v", res, want)
		}
		if res.Total() != 4 {
			t.Fatalf("expected purchase shrunk to 4 units, got %d", res.Total())
		}
	})
}

func TestResolveBonusUpsellPrompt(t *testing.T) {
	pm := newTestManager(t, promoRows(t), "2026-08-30")
	line := domain.PurchaseLine{ProductName: "Cola", Quantity: 2}

	t.Run("confirmed bumps the quantity", func(t *testing.T) {
		decider := &scriptedDecider{bonusAnswer: true}
		res, err := pm.Resolve(context.Background(), line, 10, "Carbonated2+1", decider)
		if err != nil {
			t.Fatalf("resolve: %v", err)
		}
		want := domain.LineResolution{ProductName: "Cola", Promo: 2, Free: 1, NonPromo: 0}
		if res != want {
			t.Fatalf("got %+v, want %+v", res, want)
		}
		if decider.bonusCalls != 1 || decider.partialCalls != 0 {
			t.Fatalf("expected exactly one bonus prompt, got partial=%d bonus=%d", decider.partialCalls, decider.bonusCalls)
		}
	})

	t.Run("three plus one tier completes", func(t *testing.T) {
		decider := &scriptedDecider{bonusAnswer: true}
		res, err := pm.Resolve(context.Background(), domain.PurchaseLine{ProductName: "Cola", Quantity: 3}, 10, "Bundle3+1", decider)
		if err != nil {
			t.Fatalf("resolve: %v", err)
		}
		want := domain.LineResolution{ProductName: "Cola", Promo: 3, Free: 1, NonPromo: 0}
		if res != want {
			t.Fatalf("got %+v, want %+v", res, want)
		}
	})

	t.Run("declined keeps the requested quantity at full price", func(t *testing.T) {
		decider := &scriptedDecider{bonusAnswer: false}
		res, err := pm.Resolve(context.Background(), line, 10, "Carbonated2+1", decider)
		if err != nil {
			t.Fatalf("resolve: %v", err)
		}
		want := domain.LineResolution{ProductName: "Cola", NonPromo: 2}
		if res != want {
			t.Fatalf("got %+v, want %+v", res, want)
		}
	})
}

func TestResolveBelowBuyThresholdSkipsPrompts(t *testing.T) {
	pm := newTestManager(t, promoRows(t), "2026-08-30")
	line := domain.PurchaseLine{ProductName: "Cola", Quantity: 2}

	// Promotional stock cannot complete a tier, and the request is
	// below the buy threshold for a shortfall question.
	decider := &scriptedDecider{}
	res, err := pm.Resolve(context.Background(), line, 2, "Bundle3+1", decider)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	want := domain.LineResolution{ProductName: "Cola", NonPromo: 2}
	if res != want {
		t.Fatalf("got %+v, want %+v", res, want)
	}
	if decider.partialCalls+decider.bonusCalls != 0 {
		t.Fatalf("expected no prompts, got partial=%d bonus=%d", decider.partialCalls, decider.bonusCalls)
	}
}

func TestResolveAtMostOnePromptPerLine(t *testing.T) {
	pm := newTestManager(t, promoRows(t), "2026-08-30")

	for quantity := 1; quantity <= 12; quantity++ {
		for stock := 0; stock <= 12; stock++ {
			for _, answer := range []bool{true, false} {
				decider := &scriptedDecider{partialAnswer: answer, bonusAnswer: answer}
				line := domain.PurchaseLine{ProductName: "Cola", Quantity: quantity}
				res, err := pm.Resolve(context.Background(), line, stock, "Carbonated2+1", decider)
				if err != nil {
					t.Fatalf("resolve q=%d s=%d: %v", quantity, stock, err)
				}
				if prompts := decider.partialCalls + decider.bonusCalls; prompts > 1 {
					t.Fatalf("q=%d s=%d answer=%v: %d prompts fired", quantity, stock, answer, prompts)
				}
				if res.Promo+res.Free > stock {
					t.Fatalf("q=%d s=%d: resolution %+v consumes more promotional stock than exists", quantity, stock, res)
				}
				if res.NonPromo < 0 || res.Promo < 0 || res.Free < 0 {
					t.Fatalf("q=%d s=%d: negative component in %+v", quantity, stock, res)
				}
			}
		}
	}
}
