// internal/repository/postgres/pricing_repository.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/stockwise/backend/internal/domain"
	"github.com/stockwise/backend/internal/repository"
)

type pricingRepository struct {
	db *DB
}

func NewPricingRepository(db *DB) repository.PricingRepository {
	return &pricingRepository{db: db}
}

func (r *pricingRepository) GetProducts(ctx context.Context, workspaceID string, productIDs []string) ([]domain.Product, error) {
	query := `
        SELECT id, workspace_id, sku, title, price, currency, inventory_quantity
        FROM products
        WHERE workspace_id = $1
    `
	args := []interface{}{workspaceID}

	if len(productIDs) > 0 {
		query += " AND id = ANY($2::text[])"
		args = append(args, pq.Array(productIDs))
	}

	query += " ORDER BY id"

	var products []domain.Product
	if err := r.db.SelectContext(ctx, &products, query, args...); err != nil {
		return nil, fmt.Errorf("error getting products: %w", err)
	}

	return products, nil
}

func (r *pricingRepository) GetSalesTotals(ctx context.Context, workspaceID string, productIDs []string, from, to time.Time) (map[string]domain.SalesTotal, error) {
	return getSalesTotals(ctx, r.db, workspaceID, productIDs, from, to)
}

func (r *pricingRepository) GetLatestCosts(ctx context.Context, workspaceID string, productIDs []string) (map[string]float64, error) {
	query := `
        SELECT DISTINCT ON (product_id) product_id, cost
        FROM price_history
        WHERE workspace_id = $1 AND cost IS NOT NULL
    `
	args := []interface{}{workspaceID}

	if len(productIDs) > 0 {
		query += " AND product_id = ANY($2::text[])"
		args = append(args, pq.Array(productIDs))
	}

	query += " ORDER BY product_id, effective_at DESC"

	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error getting latest costs: %w", err)
	}
	defer rows.Close()

	result := make(map[string]float64)
	for rows.Next() {
		var productID string
		var cost float64
		if err := rows.Scan(&productID, &cost); err != nil {
			return nil, fmt.Errorf("error scanning latest cost: %w", err)
		}
		result[productID] = cost
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating latest costs: %w", err)
	}

	return result, nil
}

func (r *pricingRepository) GetPriceHistory(ctx context.Context, workspaceID, productID string, limit int) ([]domain.PriceHistoryRecord, error) {
	if limit <= 0 {
		limit = 30
	}

	query := `
        SELECT id, workspace_id, product_id, price, cost, margin, margin_percent, currency, effective_at
        FROM price_history
        WHERE workspace_id = $1 AND product_id = $2
        ORDER BY effective_at DESC
        LIMIT $3
    `

	var records []domain.PriceHistoryRecord
	if err := r.db.SelectContext(ctx, &records, query, workspaceID, productID, limit); err != nil {
		return nil, fmt.Errorf("error getting price history: %w", err)
	}

	return records, nil
}

func (r *pricingRepository) AppendPriceHistory(ctx context.Context, record domain.PriceHistoryRecord) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		query := `
            INSERT INTO price_history
                (id, workspace_id, product_id, price, cost, margin, margin_percent, currency, effective_at)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        `
		if _, err := tx.ExecContext(ctx, query,
			record.ID, record.WorkspaceID, record.ProductID,
			record.Price, record.Cost, record.Margin, record.MarginPercent,
			record.Currency, record.EffectiveAt,
		); err != nil {
			return fmt.Errorf("error inserting price history: %w", err)
		}
		return nil
	})
}
