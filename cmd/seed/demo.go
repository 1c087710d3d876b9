package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS products (
		id TEXT PRIMARY KEY,
		workspace_id TEXT NOT NULL,
		sku TEXT NOT NULL,
		title TEXT NOT NULL,
		price DOUBLE PRECISION NOT NULL DEFAULT 0,
		currency TEXT NOT NULL DEFAULT 'USD',
		inventory_quantity INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_products_workspace ON products (workspace_id)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id TEXT PRIMARY KEY,
		workspace_id TEXT NOT NULL,
		ordered_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_workspace_date ON orders (workspace_id, ordered_at)`,
	`CREATE TABLE IF NOT EXISTS order_items (
		id TEXT PRIMARY KEY,
		order_id TEXT NOT NULL REFERENCES orders (id),
		product_id TEXT NOT NULL,
		quantity INTEGER NOT NULL,
		unit_price DOUBLE PRECISION NOT NULL,
		total_price DOUBLE PRECISION NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_order_items_product ON order_items (product_id)`,
	`CREATE TABLE IF NOT EXISTS price_history (
		id TEXT PRIMARY KEY,
		workspace_id TEXT NOT NULL,
		product_id TEXT NOT NULL,
		price DOUBLE PRECISION NOT NULL,
		cost DOUBLE PRECISION,
		margin DOUBLE PRECISION,
		margin_percent DOUBLE PRECISION,
		currency TEXT NOT NULL DEFAULT 'USD',
		effective_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_price_history_product ON price_history (workspace_id, product_id, effective_at DESC)`,
	`CREATE TABLE IF NOT EXISTS inventory_levels (
		workspace_id TEXT NOT NULL,
		product_id TEXT NOT NULL,
		reorder_point INTEGER,
		reorder_quantity INTEGER,
		safety_stock INTEGER,
		PRIMARY KEY (workspace_id, product_id)
	)`,
	`CREATE TABLE IF NOT EXISTS suppliers (
		id TEXT PRIMARY KEY,
		workspace_id TEXT NOT NULL,
		name TEXT NOT NULL,
		lead_time_days INTEGER NOT NULL DEFAULT 7
	)`,
}

func createSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed creating schema: %w", err)
		}
	}
	log.Println("schema ready")
	return nil
}

// demoProduct describes the sales profile to generate for one product.
type demoProduct struct {
	sku          string
	title        string
	price        float64
	cost         *float64
	stock        int
	recentDaily  float64 // avg units/day over the last 30 days
	prevDaily    float64 // avg units/day over the 30 days before that
	reorderPoint *int
}

func costOf(v float64) *float64 { return &v }
func intOf(v int) *int          { return &v }

func seedDemo(ctx context.Context, db *sql.DB, workspaceID string) error {
	rng := rand.New(rand.NewSource(42))
	now := time.Now().UTC()

	products := []demoProduct{
		{sku: "TEE-BLK-M", title: "Classic Tee Black M", price: 24.99, cost: costOf(9.50), stock: 40, recentDaily: 3.3, prevDaily: 1.6},
		{sku: "TEE-WHT-M", title: "Classic Tee White M", price: 24.99, cost: costOf(9.50), stock: 220, recentDaily: 2.0, prevDaily: 2.1},
		{sku: "HOOD-GRY-L", title: "Fleece Hoodie Grey L", price: 59.90, cost: costOf(52.00), stock: 80, recentDaily: 1.2, prevDaily: 1.8},
		{sku: "CAP-NVY", title: "Snapback Cap Navy", price: 18.00, cost: costOf(19.75), stock: 35, recentDaily: 0.9, prevDaily: 0.7},
		{sku: "MUG-CER-12", title: "Ceramic Mug 12oz", price: 32.00, cost: costOf(6.40), stock: 12, recentDaily: 0.1, prevDaily: 0.0},
		{sku: "BAG-CNV", title: "Canvas Tote Bag", price: 15.50, cost: nil, stock: 150, recentDaily: 1.5, prevDaily: 1.4},
		{sku: "STK-PCK", title: "Sticker Pack", price: 4.99, cost: costOf(0.80), stock: 0, recentDaily: 2.4, prevDaily: 2.2, reorderPoint: intOf(50)},
		{sku: "POSTER-A2", title: "Art Print A2", price: 21.00, cost: costOf(12.00), stock: 500, recentDaily: 0, prevDaily: 0.3},
	}

	for _, p := range products {
		productID := uuid.NewString()
		if _, err := db.ExecContext(ctx, `
			INSERT INTO products (id, workspace_id, sku, title, price, currency, inventory_quantity)
			VALUES ($1, $2, $3, $4, $5, 'USD', $6)`,
			productID, workspaceID, p.sku, p.title, p.price, p.stock,
		); err != nil {
			return fmt.Errorf("failed seeding product %s: %w", p.sku, err)
		}

		if err := seedOrders(ctx, db, workspaceID, productID, p, rng, now); err != nil {
			return err
		}

		if p.cost != nil {
			margin := p.price - *p.cost
			marginPercent := 0.0
			if p.price > 0 {
				marginPercent = margin / p.price * 100
			}
			if _, err := db.ExecContext(ctx, `
				INSERT INTO price_history (id, workspace_id, product_id, price, cost, margin, margin_percent, currency, effective_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, 'USD', $8)`,
				uuid.NewString(), workspaceID, productID, p.price, *p.cost, margin, marginPercent, now.AddDate(0, 0, -90),
			); err != nil {
				return fmt.Errorf("failed seeding price history for %s: %w", p.sku, err)
			}
		}

		if p.reorderPoint != nil {
			if _, err := db.ExecContext(ctx, `
				INSERT INTO inventory_levels (workspace_id, product_id, reorder_point)
				VALUES ($1, $2, $3)
				ON CONFLICT (workspace_id, product_id) DO UPDATE SET reorder_point = EXCLUDED.reorder_point`,
				workspaceID, productID, *p.reorderPoint,
			); err != nil {
				return fmt.Errorf("failed seeding inventory level for %s: %w", p.sku, err)
			}
		}
	}

	if _, err := db.ExecContext(ctx, `
		INSERT INTO suppliers (id, workspace_id, name, lead_time_days)
		VALUES ($1, $2, 'Northline Wholesale', 10)`,
		uuid.NewString(), workspaceID,
	); err != nil {
		return fmt.Errorf("failed seeding supplier: %w", err)
	}

	log.Printf("seeded workspace %q with %d products", workspaceID, len(products))
	return nil
}

// seedOrders scatters daily orders over the last 60 days so the recent and
// previous 30-day windows roughly match the configured daily rates.
func seedOrders(ctx context.Context, db *sql.DB, workspaceID, productID string, p demoProduct, rng *rand.Rand, now time.Time) error {
	for daysAgo := 1; daysAgo <= 60; daysAgo++ {
		daily := p.recentDaily
		if daysAgo > 30 {
			daily = p.prevDaily
		}

		qty := poissonish(rng, daily)
		if qty == 0 {
			continue
		}

		orderID := uuid.NewString()
		orderedAt := now.AddDate(0, 0, -daysAgo).Add(time.Duration(rng.Intn(86400)) * time.Second)
		if _, err := db.ExecContext(ctx, `
			INSERT INTO orders (id, workspace_id, ordered_at) VALUES ($1, $2, $3)`,
			orderID, workspaceID, orderedAt,
		); err != nil {
			return fmt.Errorf("failed seeding order: %w", err)
		}

		if _, err := db.ExecContext(ctx, `
			INSERT INTO order_items (id, order_id, product_id, quantity, unit_price, total_price)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			uuid.NewString(), orderID, productID, qty, p.price, float64(qty)*p.price,
		); err != nil {
			return fmt.Errorf("failed seeding order item: %w", err)
		}
	}
	return nil
}

// poissonish draws a small non-negative count whose expectation is rate.
func poissonish(rng *rand.Rand, rate float64) int {
	if rate <= 0 {
		return 0
	}
	count := int(rate)
	if rng.Float64() < rate-float64(count) {
		count++
	}
	return count
}
