// Package cli implements the terminal collaborators for the checkout
// engine. The core hands it computed structures; all formatting and
// prompt wording live here.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"tokomart/internal/domain"
)

const (
	welcomeMessage   = "Hello, welcome to TokoMart."
	inventoryHeader  = "Here are the products we currently carry."
	purchasePrompt   = "Enter the product name and quantity to purchase. (e.g. [Cola-2],[Potato Chips-1])"
	receiptHeader    = "==============TokoMart=============="
	freeItemsHeader  = "=============Free Items============="
	totalsDivider    = "===================================="
	outOfStockMarker = "Out of stock"
)

var pricePrinter = message.NewPrinter(language.English)

// Console reads prompts from in and renders to out. It satisfies both
// the Input and Output collaborator interfaces of the checkout engine.
type Console struct {
	in  *bufio.Reader
	out io.Writer
}

func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewReader(in), out: out}
}

func (c *Console) ReadPurchaseLines(ctx context.Context) (string, error) {
	fmt.Fprintln(c.out, purchasePrompt)
	return c.readLine()
}

func (c *Console) ReadYesNo(ctx context.Context, prompt domain.Prompt) (string, error) {
	fmt.Fprintln(c.out, promptMessage(prompt))
	return c.readLine()
}

func (c *Console) ShowWelcome() {
	fmt.Fprintln(c.out, welcomeMessage)
}

func (c *Console) ShowInventory(lines []domain.InventoryLine) {
	fmt.Fprintln(c.out, inventoryHeader)
	fmt.Fprintln(c.out)
	for _, line := range lines {
		quantity := outOfStockMarker
		if line.Quantity > 0 {
			quantity = fmt.Sprintf("%d ea", line.Quantity)
		}
		promotion := ""
		if line.PromotionName != domain.NoPromotion && line.PromotionName != "" {
			promotion = " " + line.PromotionName
		}
		fmt.Fprintf(c.out, "- %s %s won %s%s\n", line.ProductName, addComma(line.Price), quantity, promotion)
	}
	fmt.Fprintln(c.out)
}

func (c *Console) ShowReceipt(receipt domain.Receipt) {
	fmt.Fprintln(c.out, receiptHeader)
	fmt.Fprintf(c.out, "%-16s%-10s%s\n", "Name", "Qty", "Amount")
	for _, item := range receipt.Purchased {
		fmt.Fprintf(c.out, "%-16s%-10d%s\n", item.ProductName, item.Count, addComma(item.Price))
	}
	if len(receipt.Free) > 0 {
		fmt.Fprintln(c.out, freeItemsHeader)
		for _, item := range receipt.Free {
			fmt.Fprintf(c.out, "%-16s%d\n", item.ProductName, item.Count)
		}
	}
	fmt.Fprintln(c.out, totalsDivider)
	fmt.Fprintf(c.out, "%-16s%-10d%s\n", "Total", receipt.TotalCount, addComma(receipt.TotalPrice))
	fmt.Fprintf(c.out, "%-26s-%s\n", "Promotion discount", addComma(receipt.PromoDiscount))
	fmt.Fprintf(c.out, "%-26s-%s\n", "Membership discount", addComma(receipt.MembershipDiscount))
	fmt.Fprintf(c.out, "%-26s%s\n", "Payable", addComma(receipt.Payable))
	fmt.Fprintln(c.out)
}

func (c *Console) ShowError(msg string) {
	fmt.Fprintf(c.out, "[ERROR] %s\n", msg)
}

func promptMessage(prompt domain.Prompt) string {
	switch prompt.Kind {
	case domain.PromptPartialPromotion:
		return fmt.Sprintf("The promotion does not cover %d item(s) of %s. Buy them at full price? (Y/N)",
			prompt.Quantity, prompt.ProductName)
	case domain.PromptBonusAddition:
		return fmt.Sprintf("You can get %d more item(s) of %s for free. Add them? (Y/N)",
			prompt.Quantity, prompt.ProductName)
	case domain.PromptMembership:
		return "Apply the membership discount? (Y/N)"
	case domain.PromptAnotherPurchase:
		return "Thank you. Would you like to buy anything else? (Y/N)"
	default:
		return "(Y/N)"
	}
}

// readLine tolerates a final line without a trailing newline; a bare
// EOF propagates so the engine can shut down cleanly.
func (c *Console) readLine() (string, error) {
	line, err := c.in.ReadString('\n')
	if err != nil {
		if err == io.EOF && strings.TrimSpace(line) != "" {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func addComma(n int) string {
	return pricePrinter.Sprintf("%d", n)
}
