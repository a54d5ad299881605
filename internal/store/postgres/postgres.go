// Package postgres loads the product and promotion catalogs from a
// PostgreSQL database, for deployments that manage catalog data
// centrally instead of shipping files with the terminal.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"tokomart/internal/domain"
	"tokomart/internal/store"
)

type Source struct {
	db *sql.DB
}

func New(ctx context.Context, databaseURL string) (*Source, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, err
	}

	db.SetMaxIdleConns(4)
	db.SetMaxOpenConns(8)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 6*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Source{db: db}, nil
}

func (s *Source) Close() error {
	return s.db.Close()
}

func (s *Source) LoadProducts(ctx context.Context) ([]domain.ProductRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, price, quantity, promotion_name
		FROM products
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make([]domain.ProductRow, 0, 32)
	for rows.Next() {
		var row domain.ProductRow
		var promotion sql.NullString
		if err := rows.Scan(&row.Name, &row.Price, &row.Quantity, &promotion); err != nil {
			return nil, err
		}
		row.PromotionName = domain.NoPromotion
		if promotion.Valid && promotion.String != "" {
			row.PromotionName = promotion.String
		}
		if row.Price < 0 || row.Quantity < 0 {
			return nil, fmt.Errorf("%w: product %q price=%d quantity=%d", store.ErrInvalidNumericValue, row.Name, row.Price, row.Quantity)
		}
		products = append(products, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return products, nil
}

func (s *Source) LoadPromotions(ctx context.Context) ([]domain.PromotionRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, buy_qty, get_qty, start_date, end_date
		FROM promotions
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	promotions := make([]domain.PromotionRow, 0, 8)
	for rows.Next() {
		var row domain.PromotionRow
		if err := rows.Scan(&row.Name, &row.Buy, &row.Get, &row.StartDate, &row.EndDate); err != nil {
			return nil, err
		}
		row.StartDate = row.StartDate.UTC()
		row.EndDate = row.EndDate.UTC()
		promotions = append(promotions, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return promotions, nil
}
