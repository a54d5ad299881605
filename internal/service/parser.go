package service

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"tokomart/internal/domain"
)

var (
	ErrInvalidInputFormat = errors.New("invalid input format; expected [name-quantity],[name-quantity] (e.g. [Cola-2],[Potato Chips-1])")
	ErrInvalidYesNo       = errors.New("please answer Y or N")
)

var purchaseLinePattern = regexp.MustCompile(`^\[([a-zA-Z0-9][a-zA-Z0-9 ]*)-([0-9]+)\]$`)

// ParsePurchaseLines parses raw input of the form
// "[Cola-2],[Potato Chips-1]" into purchase lines. Quantities must be
// positive integers.
func ParsePurchaseLines(input string) ([]domain.PurchaseLine, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return nil, ErrInvalidInputFormat
	}

	parts := strings.Split(trimmed, ",")
	lines := make([]domain.PurchaseLine, 0, len(parts))
	for _, part := range parts {
		m := purchaseLinePattern.FindStringSubmatch(strings.TrimSpace(part))
		if m == nil {
			return nil, ErrInvalidInputFormat
		}
		quantity, err := strconv.Atoi(m[2])
		if err != nil || quantity < 1 {
			return nil, fmt.Errorf("%w: quantity must be a positive integer", ErrInvalidInputFormat)
		}
		lines = append(lines, domain.PurchaseLine{
			ProductName: strings.TrimSpace(m[1]),
			Quantity:    quantity,
		})
	}
	return lines, nil
}

// ParseYesNo accepts exactly "Y" or "N" (surrounding whitespace
// tolerated) and rejects anything else.
func ParseYesNo(input string) (bool, error) {
	switch strings.TrimSpace(input) {
	case "Y":
		return true, nil
	case "N":
		return false, nil
	default:
		return false, ErrInvalidYesNo
	}
}
