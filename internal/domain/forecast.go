// internal/domain/forecast.go
package domain

import "time"

// Trend classifies recent-vs-prior period sales velocity.
type Trend string

const (
	TrendIncreasing Trend = "increasing"
	TrendStable     Trend = "stable"
	TrendDecreasing Trend = "decreasing"
)

// Confidence is a qualitative reliability label derived from sample size.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// ConfidenceRank orders confidence tiers for sorting, high first.
func ConfidenceRank(c Confidence) int {
	switch c {
	case ConfidenceHigh:
		return 0
	case ConfidenceMedium:
		return 1
	default:
		return 2
	}
}

// Priority orders reorder recommendations by urgency.
type Priority string

const (
	PriorityUrgent Priority = "urgent"
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// PriorityRank orders priority tiers for sorting, urgent first.
func PriorityRank(p Priority) int {
	switch p {
	case PriorityUrgent:
		return 0
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	default:
		return 3
	}
}

// DemandForecast is the per-product forecast snapshot. It is derived fresh on
// every call and never persisted.
type DemandForecast struct {
	ProductID             string     `json:"product_id"`
	SKU                   string     `json:"sku"`
	Title                 string     `json:"title"`
	CurrentStock          int        `json:"current_stock"`
	ForecastDays          int        `json:"forecast_days"`
	AvgDailySales         float64    `json:"avg_daily_sales"`
	Trend                 Trend      `json:"trend"`
	ExpectedDemand        int        `json:"expected_demand"`
	DaysUntilStockout     *int       `json:"days_until_stockout"`
	StockoutDate          *time.Time `json:"forecasted_stockout_date"`
	ReorderPoint          int        `json:"reorder_point"`
	RecommendedReorderAt  *time.Time `json:"recommended_reorder_date"`
	RecommendedReorderQty *int       `json:"recommended_reorder_quantity"`
	Confidence            Confidence `json:"confidence"`
}

// ReorderRecommendation is a prioritized purchase suggestion derived from a
// forecast plus supplier lead-time data.
type ReorderRecommendation struct {
	ProductID            string   `json:"product_id"`
	SKU                  string   `json:"sku"`
	Title                string   `json:"title"`
	SupplierID           *string  `json:"supplier_id"`
	SupplierName         *string  `json:"supplier_name"`
	CurrentStock         int      `json:"current_stock"`
	ReorderPoint         int      `json:"reorder_point"`
	RecommendedQuantity  int      `json:"recommended_quantity"`
	EstimatedCost        *float64 `json:"estimated_cost"`
	Priority             Priority `json:"priority"`
	Reason               string   `json:"reason"`
	ExpectedDeliveryDays int      `json:"expected_delivery_days"`
}
