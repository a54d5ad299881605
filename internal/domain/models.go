package domain

import "time"

// NoPromotion is the catalog sentinel for product rows that sell at the
// regular price only.
const NoPromotion = "null"

type ProductRow struct {
	Name          string `json:"name"`
	Price         int    `json:"price"`
	Quantity      int    `json:"quantity"`
	PromotionName string `json:"promotion_name"`
}

type PromotionRow struct {
	Name      string    `json:"name"`
	Buy       int       `json:"buy"`
	Get       int       `json:"get"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

// PurchaseLine is one requested (product, quantity) pair as entered by
// the customer, before promotion resolution.
type PurchaseLine struct {
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
}

// LineResolution is the authoritative split of one purchase line after
// the promotion protocol has run. Promo units are paid units covered by
// the promotion, Free units are the granted bonus, NonPromo units are
// paid at full price.
type LineResolution struct {
	ProductName string `json:"product_name"`
	Promo       int    `json:"promo"`
	Free        int    `json:"free"`
	NonPromo    int    `json:"non_promo"`
}

// Total is the number of units that leave the inventory for this line.
func (r LineResolution) Total() int {
	return r.Promo + r.Free + r.NonPromo
}

type ReceiptItem struct {
	ProductName string `json:"product_name"`
	Count       int    `json:"count"`
	Price       int    `json:"price"`
}

type Receipt struct {
	TransactionID      string        `json:"transaction_id"`
	Purchased          []ReceiptItem `json:"purchased"`
	Free               []ReceiptItem `json:"free"`
	TotalCount         int           `json:"total_count"`
	TotalPrice         int           `json:"total_price"`
	PromoDiscount      int           `json:"promo_discount"`
	MembershipDiscount int           `json:"membership_discount"`
	Payable            int           `json:"payable"`
}

// InventoryLine is one bucket of one product, for the startup snapshot.
type InventoryLine struct {
	ProductName   string `json:"product_name"`
	Price         int    `json:"price"`
	Quantity      int    `json:"quantity"`
	PromotionName string `json:"promotion_name,omitempty"`
}

type PromptKind int

const (
	// PromptPartialPromotion asks whether to buy the units the
	// promotional stock cannot cover at full price.
	PromptPartialPromotion PromptKind = iota
	// PromptBonusAddition asks whether to add units to complete a tier
	// and receive the bonus for free.
	PromptBonusAddition
	// PromptMembership asks whether the membership discount applies.
	PromptMembership
	// PromptAnotherPurchase asks whether to start another transaction.
	PromptAnotherPurchase
)

// Prompt is a yes/no question for the input collaborator. Quantity is
// the unit count the question refers to: units charged at full price
// for PromptPartialPromotion, free units gained for PromptBonusAddition,
// zero otherwise.
type Prompt struct {
	Kind        PromptKind
	ProductName string
	Quantity    int
}
