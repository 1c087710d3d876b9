// internal/domain/models.go
package domain

import "time"

// Product is a catalog item synced from a connected store. Price and stock
// are mutated by external sync jobs; this core only reads them.
type Product struct {
	ID                string  `json:"id" db:"id"`
	WorkspaceID       string  `json:"workspace_id" db:"workspace_id"`
	SKU               string  `json:"sku" db:"sku"`
	Title             string  `json:"title" db:"title"`
	Price             float64 `json:"price" db:"price"`
	Currency          string  `json:"currency" db:"currency"`
	InventoryQuantity int     `json:"inventory_quantity" db:"inventory_quantity"`
}

// SalesTotal is a per-product SUM aggregate over a trailing window.
type SalesTotal struct {
	ProductID string  `json:"product_id" db:"product_id"`
	Quantity  int     `json:"quantity" db:"quantity"`
	Revenue   float64 `json:"revenue" db:"revenue"`
}

// InventoryLevel holds optional per-product reorder tuning overrides.
// Nil fields mean "use the computed default".
type InventoryLevel struct {
	WorkspaceID     string `json:"workspace_id" db:"workspace_id"`
	ProductID       string `json:"product_id" db:"product_id"`
	ReorderPoint    *int   `json:"reorder_point" db:"reorder_point"`
	ReorderQuantity *int   `json:"reorder_quantity" db:"reorder_quantity"`
	SafetyStock     *int   `json:"safety_stock" db:"safety_stock"`
}

// Supplier is used only for delivery-time estimates on reorder recommendations.
type Supplier struct {
	ID           string `json:"id" db:"id"`
	WorkspaceID  string `json:"workspace_id" db:"workspace_id"`
	Name         string `json:"name" db:"name"`
	LeadTimeDays int    `json:"lead_time_days" db:"lead_time_days"`
}

// PriceHistoryRecord is an append-only price/cost snapshot. The pricing core
// only ever inserts new rows; existing rows are never updated, so the full
// history stays available for trend charts.
type PriceHistoryRecord struct {
	ID            string    `json:"id" db:"id"`
	WorkspaceID   string    `json:"workspace_id" db:"workspace_id"`
	ProductID     string    `json:"product_id" db:"product_id"`
	Price         float64   `json:"price" db:"price"`
	Cost          *float64  `json:"cost" db:"cost"`
	Margin        *float64  `json:"margin" db:"margin"`
	MarginPercent *float64  `json:"margin_percent" db:"margin_percent"`
	Currency      string    `json:"currency" db:"currency"`
	EffectiveAt   time.Time `json:"effective_at" db:"effective_at"`
}
