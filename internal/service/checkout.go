package service

import (
	"context"
	"log"

	"tokomart/internal/domain"
	"tokomart/internal/xid"
)

// Membership takes 30% off the non-promotional portion of the bill,
// capped at a fixed amount.
const (
	membershipRatePercent = 30
	membershipDiscountCap = 8000
)

// Input is the blocking prompt collaborator. It returns raw strings;
// parsing and validation stay in the core, which re-invokes the prompt
// until the input is valid.
type Input interface {
	ReadPurchaseLines(ctx context.Context) (string, error)
	ReadYesNo(ctx context.Context, prompt domain.Prompt) (string, error)
}

// Output receives fully computed data structures; no formatting logic
// lives in the core.
type Output interface {
	ShowWelcome()
	ShowInventory(lines []domain.InventoryLine)
	ShowReceipt(receipt domain.Receipt)
	ShowError(message string)
}

// Checkout sequences one or more transactions: collect lines, resolve
// promotions, deduct stock, apply membership, render the receipt.
type Checkout struct {
	inventory  *Inventory
	promotions *PromotionManager
	input      Input
	output     Output
}

// NewCheckout wires the engine together and verifies catalog integrity:
// every promotion a product references must exist.
func NewCheckout(inventory *Inventory, promotions *PromotionManager, input Input, output Output) (*Checkout, error) {
	if err := promotions.ValidateReferences(inventory.PromotionNames()); err != nil {
		return nil, err
	}
	return &Checkout{
		inventory:  inventory,
		promotions: promotions,
		input:      input,
		output:     output,
	}, nil
}

// Run processes transactions until the customer declines another
// purchase. Input read failures (EOF on a closed terminal) propagate;
// validation failures re-prompt.
func (c *Checkout) Run(ctx context.Context) error {
	for {
		c.output.ShowWelcome()
		c.output.ShowInventory(c.inventory.Snapshot())

		lines, views, err := c.collectLines(ctx)
		if err != nil {
			return err
		}

		receipt, err := c.processTransaction(ctx, lines, views)
		if err != nil {
			return err
		}
		c.output.ShowReceipt(receipt)

		again, err := c.askYesNo(ctx, domain.Prompt{Kind: domain.PromptAnotherPurchase})
		if err != nil {
			return err
		}
		if !again {
			return nil
		}
	}
}

// collectLines prompts for the purchase-line set and validates every
// line against the inventory. Any invalid line re-prompts the entire
// set. Duplicate product names are merged before validation so the
// availability check covers the combined quantity.
func (c *Checkout) collectLines(ctx context.Context) ([]domain.PurchaseLine, []StockView, error) {
	for {
		raw, err := c.input.ReadPurchaseLines(ctx)
		if err != nil {
			return nil, nil, err
		}

		parsed, err := ParsePurchaseLines(raw)
		if err != nil {
			c.output.ShowError(err.Error())
			continue
		}
		lines := mergeDuplicates(parsed)

		views := make([]StockView, 0, len(lines))
		valid := true
		for _, line := range lines {
			view, err := c.inventory.CheckAvailability(line.ProductName, line.Quantity)
			if err != nil {
				c.output.ShowError(err.Error())
				valid = false
				break
			}
			views = append(views, view)
		}
		if !valid {
			continue
		}
		return lines, views, nil
	}
}

func (c *Checkout) processTransaction(ctx context.Context, lines []domain.PurchaseLine, views []StockView) (domain.Receipt, error) {
	resolutions := make([]domain.LineResolution, 0, len(lines))
	for i, line := range lines {
		res, err := c.promotions.Resolve(ctx, line, views[i].PromotionQuantity, views[i].PromotionName, c)
		if err != nil {
			return domain.Receipt{}, err
		}
		resolutions = append(resolutions, res)
	}

	// Deduction starts only after every line is fully resolved, so a
	// failed prompt never leaves a half-committed transaction.
	for i, res := range resolutions {
		if res.Total() == 0 {
			continue
		}
		preferPromotion := c.promotions.IsAvailable(views[i].PromotionName)
		if err := c.inventory.DecreaseStock(res.ProductName, res.Total(), preferPromotion); err != nil {
			return domain.Receipt{}, err
		}
	}

	member, err := c.askYesNo(ctx, domain.Prompt{Kind: domain.PromptMembership})
	if err != nil {
		return domain.Receipt{}, err
	}

	receipt := c.buildReceipt(resolutions, views, member)
	log.Printf("[checkout] tx=%s lines=%d total=%d promo_discount=%d membership_discount=%d payable=%d",
		receipt.TransactionID, len(receipt.Purchased), receipt.TotalPrice, receipt.PromoDiscount, receipt.MembershipDiscount, receipt.Payable)
	return receipt, nil
}

func (c *Checkout) buildReceipt(resolutions []domain.LineResolution, views []StockView, member bool) domain.Receipt {
	receipt := domain.Receipt{TransactionID: xid.New("tx")}
	membershipBase := 0

	for i, res := range resolutions {
		if res.Total() == 0 {
			continue
		}
		price := views[i].Price
		receipt.Purchased = append(receipt.Purchased, domain.ReceiptItem{
			ProductName: res.ProductName,
			Count:       res.Total(),
			Price:       price * res.Total(),
		})
		receipt.TotalCount += res.Total()
		receipt.TotalPrice += price * res.Total()
		receipt.PromoDiscount += price * res.Free
		if res.Free > 0 {
			receipt.Free = append(receipt.Free, domain.ReceiptItem{
				ProductName: res.ProductName,
				Count:       res.Free,
			})
		}
		// The membership base excludes every product that currently has
		// an available promotion, even for units sold at full price.
		if !c.promotions.IsAvailable(views[i].PromotionName) {
			membershipBase += price * res.Total()
		}
	}

	if member {
		receipt.MembershipDiscount = min(membershipBase*membershipRatePercent/100, membershipDiscountCap)
	}
	receipt.Payable = receipt.TotalPrice - receipt.PromoDiscount - receipt.MembershipDiscount
	return receipt
}

// ConfirmPartialPromotion implements Decider via the yes/no retry loop.
func (c *Checkout) ConfirmPartialPromotion(ctx context.Context, productName string, exceed int) (bool, error) {
	return c.askYesNo(ctx, domain.Prompt{
		Kind:        domain.PromptPartialPromotion,
		ProductName: productName,
		Quantity:    exceed,
	})
}

// ConfirmBonusAddition implements Decider via the yes/no retry loop.
func (c *Checkout) ConfirmBonusAddition(ctx context.Context, productName string, bonus int) (bool, error) {
	return c.askYesNo(ctx, domain.Prompt{
		Kind:        domain.PromptBonusAddition,
		ProductName: productName,
		Quantity:    bonus,
	})
}

// askYesNo re-prompts until the collaborator supplies a literal Y or N.
// The retry is unbounded; only a read failure breaks the loop.
func (c *Checkout) askYesNo(ctx context.Context, prompt domain.Prompt) (bool, error) {
	for {
		raw, err := c.input.ReadYesNo(ctx, prompt)
		if err != nil {
			return false, err
		}
		yes, err := ParseYesNo(raw)
		if err != nil {
			c.output.ShowError(err.Error())
			continue
		}
		return yes, nil
	}
}

func mergeDuplicates(lines []domain.PurchaseLine) []domain.PurchaseLine {
	merged := make([]domain.PurchaseLine, 0, len(lines))
	index := make(map[string]int, len(lines))
	for _, line := range lines {
		if i, ok := index[line.ProductName]; ok {
			merged[i].Quantity += line.Quantity
			continue
		}
		index[line.ProductName] = len(merged)
		merged = append(merged, line)
	}
	return merged
}
