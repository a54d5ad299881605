// Package file loads the product and promotion catalogs from
// header-CSV files (the products.md / promotions.md format: one header
// row, comma-separated values, blank lines ignored).
package file

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"tokomart/internal/domain"
	"tokomart/internal/store"
)

const dateLayout = "2006-01-02"

type Source struct {
	productsPath   string
	promotionsPath string
}

func New(productsPath string, promotionsPath string) *Source {
	return &Source{productsPath: productsPath, promotionsPath: promotionsPath}
}

func (s *Source) LoadProducts(_ context.Context) ([]domain.ProductRow, error) {
	records, err := readRecords(s.productsPath)
	if err != nil {
		return nil, err
	}

	rows := make([]domain.ProductRow, 0, len(records))
	for i, rec := range records {
		price, err := parseQuantity(rec["price"])
		if err != nil {
			return nil, fmt.Errorf("%w: %s row %d: price %q", store.ErrInvalidNumericValue, s.productsPath, i+1, rec["price"])
		}
		quantity, err := parseQuantity(rec["quantity"])
		if err != nil {
			return nil, fmt.Errorf("%w: %s row %d: quantity %q", store.ErrInvalidNumericValue, s.productsPath, i+1, rec["quantity"])
		}
		name := strings.TrimSpace(rec["name"])
		promotion := strings.TrimSpace(rec["promotion"])
		if name == "" || promotion == "" {
			return nil, fmt.Errorf("%w: %s row %d: missing name or promotion column", store.ErrBadCatalogData, s.productsPath, i+1)
		}
		rows = append(rows, domain.ProductRow{
			Name:          name,
			Price:         price,
			Quantity:      quantity,
			PromotionName: promotion,
		})
	}
	return rows, nil
}

func (s *Source) LoadPromotions(_ context.Context) ([]domain.PromotionRow, error) {
	records, err := readRecords(s.promotionsPath)
	if err != nil {
		return nil, err
	}

	rows := make([]domain.PromotionRow, 0, len(records))
	for i, rec := range records {
		buy, err := parseQuantity(rec["buy"])
		if err != nil {
			return nil, fmt.Errorf("%w: %s row %d: buy %q", store.ErrInvalidNumericValue, s.promotionsPath, i+1, rec["buy"])
		}
		get, err := parseQuantity(rec["get"])
		if err != nil {
			return nil, fmt.Errorf("%w: %s row %d: get %q", store.ErrInvalidNumericValue, s.promotionsPath, i+1, rec["get"])
		}
		start, err := parseDate(rec["start_date"])
		if err != nil {
			return nil, fmt.Errorf("%w: %s row %d: start_date %q", store.ErrBadCatalogData, s.promotionsPath, i+1, rec["start_date"])
		}
		end, err := parseDate(rec["end_date"])
		if err != nil {
			return nil, fmt.Errorf("%w: %s row %d: end_date %q", store.ErrBadCatalogData, s.promotionsPath, i+1, rec["end_date"])
		}
		name := strings.TrimSpace(rec["name"])
		if name == "" {
			return nil, fmt.Errorf("%w: %s row %d: missing name column", store.ErrBadCatalogData, s.promotionsPath, i+1)
		}
		rows = append(rows, domain.PromotionRow{
			Name:      name,
			Buy:       buy,
			Get:       get,
			StartDate: start,
			EndDate:   end,
		})
	}
	return rows, nil
}

// readRecords parses a header-CSV file into one map per data row,
// keyed by the header names. Blank lines anywhere are skipped.
func readRecords(path string) ([]map[string]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrBadCatalogData, err)
	}

	lines := make([]string, 0, 32)
	for _, line := range strings.Split(string(raw), "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	if len(lines) < 2 {
		return nil, fmt.Errorf("%w: %s has no data rows", store.ErrBadCatalogData, path)
	}

	headers := strings.Split(lines[0], ",")
	for i, h := range headers {
		headers[i] = strings.TrimSpace(h)
	}

	records := make([]map[string]string, 0, len(lines)-1)
	for _, line := range lines[1:] {
		values := strings.Split(line, ",")
		if len(values) != len(headers) {
			return nil, fmt.Errorf("%w: %s row %q has %d columns, expected %d", store.ErrBadCatalogData, path, line, len(values), len(headers))
		}
		rec := make(map[string]string, len(headers))
		for i, value := range values {
			rec[headers[i]] = strings.TrimSpace(value)
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseQuantity(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("negative value %d", n)
	}
	return n, nil
}

func parseDate(raw string) (time.Time, error) {
	return time.ParseInLocation(dateLayout, strings.TrimSpace(raw), time.UTC)
}
