package service

import (
	"fmt"
	"strings"
	"time"

	"tokomart/internal/domain"
	"tokomart/internal/store"
)

// Promotion is one buy-N-get-M definition with an inclusive validity
// window at day granularity. Immutable after construction.
type Promotion struct {
	name      string
	buy       int
	get       int
	startDate time.Time
	endDate   time.Time
}

func NewPromotion(row domain.PromotionRow) (*Promotion, error) {
	name := strings.TrimSpace(row.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: promotion with empty name", store.ErrBadCatalogData)
	}
	if row.Buy < 1 || row.Get < 1 {
		return nil, fmt.Errorf("%w: promotion %q buy=%d get=%d", store.ErrInvalidNumericValue, name, row.Buy, row.Get)
	}
	start := dateOnly(row.StartDate)
	end := dateOnly(row.EndDate)
	if end.Before(start) {
		return nil, fmt.Errorf("%w: promotion %q ends before it starts", store.ErrBadCatalogData, name)
	}

	return &Promotion{
		name:      name,
		buy:       row.Buy,
		get:       row.Get,
		startDate: start,
		endDate:   end,
	}, nil
}

func (p *Promotion) Name() string { return p.name }
func (p *Promotion) Buy() int     { return p.buy }
func (p *Promotion) Get() int     { return p.get }

// IsAvailable reports whether today's calendar date falls inside the
// validity window, inclusive on both ends. Time of day is ignored.
func (p *Promotion) IsAvailable(today time.Time) bool {
	d := dateOnly(today)
	return !d.Before(p.startDate) && !d.After(p.endDate)
}

// Application is how many units of a purchase line the promotion
// covers: Promo paid units plus Free bonus units.
type Application struct {
	Promo int
	Free  int
}

func (a Application) Total() int {
	return a.Promo + a.Free
}

// MaxApplication applies whole tiers while both the requested quantity
// and the promotional stock can support one. The result may cover more
// units than requested; that surplus is what the bonus prompt offers.
func (p *Promotion) MaxApplication(requested int, promoStock int) Application {
	var a Application
	for requested >= p.buy && promoStock >= p.buy+p.get {
		a.Promo += p.buy
		a.Free += p.get
		requested -= p.buy
		promoStock -= p.buy + p.get
	}
	return a
}

// FittedApplication is the same tier loop additionally constrained so
// coverage never exceeds the requested quantity. This is the
// authoritative split once the interactive decisions are known.
func (p *Promotion) FittedApplication(requested int, promoStock int) Application {
	var a Application
	remaining := requested
	for remaining >= p.buy && promoStock >= p.buy+p.get && a.Total()+p.buy+p.get <= requested {
		a.Promo += p.buy
		a.Free += p.get
		remaining -= p.buy
		promoStock -= p.buy + p.get
	}
	return a
}

// NonPromoRemainder is the requested portion an application leaves
// uncovered, to be charged at full price.
func (p *Promotion) NonPromoRemainder(requested int, a Application) int {
	return max(0, requested-a.Total())
}

// dateOnly projects t onto its calendar date in UTC without mutating
// any shared state.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
