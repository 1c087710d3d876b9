// internal/domain/pricing.go
package domain

// PriceAnalysis is a per-product pricing snapshot over the trailing sales
// window, including the recent price history head-first.
type PriceAnalysis struct {
	ProductID     string               `json:"product_id"`
	SKU           string               `json:"sku"`
	Title         string               `json:"title"`
	CurrentPrice  float64              `json:"current_price"`
	Currency      string               `json:"currency"`
	Cost          *float64             `json:"cost"`
	Margin        *float64             `json:"margin"`
	MarginPercent *float64             `json:"margin_percent"`
	UnitsSold     int                  `json:"units_sold"`
	Revenue       float64              `json:"revenue"`
	PriceHistory  []PriceHistoryRecord `json:"price_history"`
}

// MarginCategory buckets a product margin for the per-product listing.
type MarginCategory string

const (
	MarginCategoryHigh     MarginCategory = "high"
	MarginCategoryMedium   MarginCategory = "medium"
	MarginCategoryLow      MarginCategory = "low"
	MarginCategoryNegative MarginCategory = "negative"
	MarginCategoryUnknown  MarginCategory = "unknown"
)

// ProductMargin is a per-product margin row over the trailing sales window.
type ProductMargin struct {
	ProductID     string         `json:"product_id"`
	SKU           string         `json:"sku"`
	Title         string         `json:"title"`
	Price         float64        `json:"price"`
	Cost          *float64       `json:"cost"`
	Margin        float64        `json:"margin"`
	MarginPercent float64        `json:"margin_percent"`
	UnitsSold     int            `json:"units_sold"`
	Revenue       float64        `json:"revenue"`
	Profit        float64        `json:"profit"`
	Category      MarginCategory `json:"category"`
}

// MarginAnalysis is the portfolio-level margin aggregate.
type MarginAnalysis struct {
	TotalProducts          int     `json:"total_products"`
	ProductsWithCost       int     `json:"products_with_cost"`
	ProductsWithoutCost    int     `json:"products_without_cost"`
	AverageMarginPercent   float64 `json:"average_margin_percent"`
	HighMarginProducts     int     `json:"high_margin_products"`
	LowMarginProducts      int     `json:"low_margin_products"`
	NegativeMarginProducts int     `json:"negative_margin_products"`
	TotalRevenue           float64 `json:"total_revenue"`
	TotalProfit            float64 `json:"total_profit"`
}

// PricingSuggestion is a rule-generated price-change proposal.
type PricingSuggestion struct {
	ProductID              string     `json:"product_id"`
	SKU                    string     `json:"sku"`
	Title                  string     `json:"title"`
	CurrentPrice           float64    `json:"current_price"`
	SuggestedPrice         float64    `json:"suggested_price"`
	PriceChangePercent     float64    `json:"price_change_percent"`
	Reason                 string     `json:"reason"`
	ExpectedImpact         string     `json:"expected_impact"`
	Confidence             Confidence `json:"confidence"`
	EstimatedRevenueChange *float64   `json:"estimated_revenue_change"`
}
