// internal/repository/repository.go
package repository

import (
	"context"
	"time"

	"github.com/stockwise/backend/internal/domain"
)

// InventoryRepository reads the catalog and sales aggregates the forecaster
// consumes. Every query is scoped to a workspace for tenant isolation.
type InventoryRepository interface {
	GetProducts(ctx context.Context, workspaceID string, productIDs []string) ([]domain.Product, error)
	// GetSalesTotals returns per-product quantity/revenue SUMs for order line
	// items whose parent order falls in [from, to), keyed by product id.
	GetSalesTotals(ctx context.Context, workspaceID string, productIDs []string, from, to time.Time) (map[string]domain.SalesTotal, error)
	GetInventoryLevels(ctx context.Context, workspaceID string, productIDs []string) (map[string]domain.InventoryLevel, error)
	// GetDefaultSupplier returns the first supplier in the workspace, or nil
	// when none exists.
	GetDefaultSupplier(ctx context.Context, workspaceID string) (*domain.Supplier, error)
}

// PricingRepository reads price/cost data and owns the single write path of
// the core: appending price history rows.
type PricingRepository interface {
	GetProducts(ctx context.Context, workspaceID string, productIDs []string) ([]domain.Product, error)
	GetSalesTotals(ctx context.Context, workspaceID string, productIDs []string, from, to time.Time) (map[string]domain.SalesTotal, error)
	// GetLatestCosts returns the most recent non-null cost per product.
	GetLatestCosts(ctx context.Context, workspaceID string, productIDs []string) (map[string]float64, error)
	GetPriceHistory(ctx context.Context, workspaceID, productID string, limit int) ([]domain.PriceHistoryRecord, error)
	AppendPriceHistory(ctx context.Context, record domain.PriceHistoryRecord) error
}
