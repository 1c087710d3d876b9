// internal/repository/postgres/inventory_repository.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/stockwise/backend/internal/domain"
	"github.com/stockwise/backend/internal/repository"
)

type inventoryRepository struct {
	db *DB
}

func NewInventoryRepository(db *DB) repository.InventoryRepository {
	return &inventoryRepository{db: db}
}

func (r *inventoryRepository) GetProducts(ctx context.Context, workspaceID string, productIDs []string) ([]domain.Product, error) {
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

func (r *inventoryRepository) GetSalesTotals(ctx context.Context, workspaceID string, productIDs []string, from, to time.Time) (map[string]domain.SalesTotal, error) {
	return getSalesTotals(ctx, r.db, workspaceID, productIDs, from, to)
}

func (r *inventoryRepository) GetInventoryLevels(ctx context.Context, workspaceID string, productIDs []string) (map[string]domain.InventoryLevel, error) {
	query := `
        SELECT workspace_id, product_id, reorder_point, reorder_quantity, safety_stock
        FROM inventory_levels
        WHERE workspace_id = $1
    `
	args := []interface{}{workspaceID}

	if len(productIDs) > 0 {
		query += " AND product_id = ANY($2::text[])"
		args = append(args, pq.Array(productIDs))
	}

	var levels []domain.InventoryLevel
	if err := r.db.SelectContext(ctx, &levels, query, args...); err != nil {
		return nil, fmt.Errorf("error getting inventory levels: %w", err)
	}

	result := make(map[string]domain.InventoryLevel, len(levels))
	for _, level := range levels {
		result[level.ProductID] = level
	}

	return result, nil
}

func (r *inventoryRepository) GetDefaultSupplier(ctx context.Context, workspaceID string) (*domain.Supplier, error) {
	query := `
        SELECT id, workspace_id, name, lead_time_days
        FROM suppliers
        WHERE workspace_id = $1
        ORDER BY id
        LIMIT 1
    `

	var supplier domain.Supplier
	if err := r.db.GetContext(ctx, &supplier, query, workspaceID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error getting default supplier: %w", err)
	}

	return &supplier, nil
}

// getSalesTotals is a single batched GROUP BY over order line items joined to
// their parent orders, replacing a per-product query loop.
func getSalesTotals(ctx context.Context, db *DB, workspaceID string, productIDs []string, from, to time.Time) (map[string]domain.SalesTotal, error) {
	query := `
        SELECT
            oi.product_id,
            COALESCE(SUM(oi.quantity), 0) AS quantity,
            COALESCE(SUM(oi.total_price), 0) AS revenue
        FROM order_items oi
        JOIN orders o ON o.id = oi.order_id
        WHERE o.workspace_id = $1
          AND o.ordered_at >= $2
          AND o.ordered_at < $3
    `
	args := []interface{}{workspaceID, from, to}

	if len(productIDs) > 0 {
		query += " AND oi.product_id = ANY($4::text[])"
		args = append(args, pq.Array(productIDs))
	}

	query += " GROUP BY oi.product_id"

	var totals []domain.SalesTotal
	if err := db.SelectContext(ctx, &totals, query, args...); err != nil {
		return nil, fmt.Errorf("error getting sales totals: %w", err)
	}

	result := make(map[string]domain.SalesTotal, len(totals))
	for _, total := range totals {
		result[total.ProductID] = total
	}

	return result, nil
}
