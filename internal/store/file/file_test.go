package file

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"tokomart/internal/domain"
	"tokomart/internal/store"
)

func writeFixture(t *testing.T, name string, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestLoadProducts(t *testing.T) {
	products := writeFixture(t, "products.md", `name,price,quantity,promotion
Cola,1000,10,Carbonated2+1
Cola,1000,10,null

Potato Chips,1500,5,null
`)
	src := New(products, "unused")

	rows, err := src.LoadProducts(context.Background())
	if err != nil {
		t.Fatalf("load products: %v", err)
	}
	want := []domain.ProductRow{
		{Name: "Cola", Price: 1000, Quantity: 10, PromotionName: "Carbonated2+1"},
		{Name: "Cola", Price: 1000, Quantity: 10, PromotionName: "null"},
		{Name: "Potato Chips", Price: 1500, Quantity: 5, PromotionName: "null"},
	}
	if len(rows) != len(want) {
		t.Fatalf("expected %d rows, got %d", len(want), len(rows))
	}
	for i := range rows {
		if rows[i] != want[i] {
			t.Fatalf("row %d: got %+v, want %+v", i, rows[i], want[i])
		}
	}
}

func TestLoadPromotions(t *testing.T) {
	promotions := writeFixture(t, "promotions.md", `name,buy,get,start_date,end_date
Carbonated2+1,2,1,2024-01-01,2026-12-31
`)
	src := New("unused", promotions)

	rows, err := src.LoadPromotions(context.Background())
	if err != nil {
		t.Fatalf("load promotions: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected one row, got %d", len(rows))
	}
	row := rows[0]
	if row.Name != "Carbonated2+1" || row.Buy != 2 || row.Get != 1 {
		t.Fatalf("unexpected row %+v", row)
	}
	wantStart := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	if !row.StartDate.Equal(wantStart) {
		t.Fatalf("expected start %v, got %v", wantStart, row.StartDate)
	}
}

func TestLoadRejectsMalformedData(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    error
	}{
		{
			name: "non-numeric quantity",
			content: `name,price,quantity,promotion
Cola,1000,ten,null
`,
			want: store.ErrInvalidNumericValue,
		},
		{
			name: "negative price",
			content: `name,price,quantity,promotion
Cola,-5,10,null
`,
			want: store.ErrInvalidNumericValue,
		},
		{
			name: "column count mismatch",
			content: `name,price,quantity,promotion
Cola,1000,10
`,
			want: store.ErrBadCatalogData,
		},
		{
			name:    "header only",
			content: "name,price,quantity,promotion\n",
			want:    store.ErrBadCatalogData,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			src := New(writeFixture(t, "products.md", tc.content), "unused")
			if _, err := src.LoadProducts(context.Background()); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestLoadMissingFileIsFatalCatalogError(t *testing.T) {
	src := New(filepath.Join(t.TempDir(), "absent.md"), "unused")
	if _, err := src.LoadProducts(context.Background()); !errors.Is(err, store.ErrBadCatalogData) {
		t.Fatalf("expected ErrBadCatalogData, got %v", err)
	}
}

func TestLoadRejectsBadPromotionDates(t *testing.T) {
	promotions := writeFixture(t, "promotions.md", `name,buy,get,start_date,end_date
Carbonated2+1,2,1,01/01/2024,2026-12-31
`)
	src := New("unused", promotions)
	if _, err := src.LoadPromotions(context.Background()); !errors.Is(err, store.ErrBadCatalogData) {
		t.Fatalf("expected ErrBadCatalogData, got %v", err)
	}
}
