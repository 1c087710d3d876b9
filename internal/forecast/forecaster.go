package forecast

import (
	"math"
	"sort"
	"time"

	"github.com/stockwise/backend/internal/domain"
)

// ProductInput bundles the aggregates needed to forecast one product.
type ProductInput struct {
	Product     domain.Product
	RecentQty   int
	PreviousQty int
	Level       *domain.InventoryLevel
}

// Engine computes demand forecasts from trailing sales aggregates. It is
// pure: all IO happens in the caller.
type Engine struct {
	params Params
}

func NewEngine(params Params) *Engine {
	return &Engine{params: params}
}

// Build computes the forecast for a single product as of now.
func (e *Engine) Build(in ProductInput, forecastDays int, now time.Time) domain.DemandForecast {
	p := e.params
	stock := in.Product.InventoryQuantity

	avgDailySales := float64(in.RecentQty) / float64(p.HistoryWindowDays)
	trend := e.classifyTrend(in.RecentQty, in.PreviousQty)

	adjusted := avgDailySales
	switch trend {
	case domain.TrendIncreasing:
		adjusted *= p.IncreasingFactor
	case domain.TrendDecreasing:
		adjusted *= p.DecreasingFactor
	}

	f := domain.DemandForecast{
		ProductID:      in.Product.ID,
		SKU:            in.Product.SKU,
		Title:          in.Product.Title,
		CurrentStock:   stock,
		ForecastDays:   forecastDays,
		AvgDailySales:  avgDailySales,
		Trend:          trend,
		ExpectedDemand: int(math.Ceil(adjusted * float64(forecastDays))),
		Confidence:     e.classifyConfidence(in.RecentQty),
	}

	if avgDailySales > 0 {
		days := int(math.Floor(float64(stock) / avgDailySales))
		f.DaysUntilStockout = &days
		if days < forecastDays*p.StockoutHorizonFactor {
			at := now.AddDate(0, 0, days)
			f.StockoutDate = &at
		}
	}

	f.ReorderPoint = resolveInt(
		levelOverride(in.Level, func(l *domain.InventoryLevel) *int { return l.ReorderPoint }),
		func() *int {
			v := int(math.Ceil(avgDailySales * float64(p.SafetyCoverDays)))
			return &v
		},
	)

	if avgDailySales > 0 && float64(stock) < float64(f.ReorderPoint)+avgDailySales*float64(forecastDays) {
		untilReorder := int(math.Floor(float64(stock-f.ReorderPoint) / avgDailySales))
		if untilReorder < 0 {
			untilReorder = 0
		}
		at := now.AddDate(0, 0, untilReorder)
		f.RecommendedReorderAt = &at

		qty := resolveInt(
			levelOverride(in.Level, func(l *domain.InventoryLevel) *int { return l.ReorderQuantity }),
			func() *int { return &f.ExpectedDemand },
		)
		f.RecommendedReorderQty = &qty
	}

	return f
}

// BuildAll forecasts every input and sorts ascending by days until stockout,
// products that never stock out last.
func (e *Engine) BuildAll(inputs []ProductInput, forecastDays int, now time.Time) []domain.DemandForecast {
	forecasts := make([]domain.DemandForecast, 0, len(inputs))
	for _, in := range inputs {
		forecasts = append(forecasts, e.Build(in, forecastDays, now))
	}

	sort.SliceStable(forecasts, func(i, j int) bool {
		a, b := forecasts[i].DaysUntilStockout, forecasts[j].DaysUntilStockout
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		return *a < *b
	})

	return forecasts
}

func (e *Engine) classifyTrend(recentQty, previousQty int) domain.Trend {
	// No prior-period reference means no rate to compute; degenerate to
	// stable regardless of recent volume.
	if previousQty <= 0 {
		return domain.TrendStable
	}
	growthRate := float64(recentQty-previousQty) / float64(previousQty)
	switch {
	case growthRate > e.params.GrowthThreshold:
		return domain.TrendIncreasing
	case growthRate < -e.params.GrowthThreshold:
		return domain.TrendDecreasing
	default:
		return domain.TrendStable
	}
}

func (e *Engine) classifyConfidence(recentQty int) domain.Confidence {
	switch {
	case recentQty >= e.params.HighConfidenceUnits:
		return domain.ConfidenceHigh
	case recentQty < e.params.LowConfidenceUnits:
		return domain.ConfidenceLow
	default:
		return domain.ConfidenceMedium
	}
}

// resolveInt walks an ordered list of resolver steps and returns the first
// non-nil value. The last step is expected to always produce one.
func resolveInt(steps ...func() *int) int {
	for _, step := range steps {
		if v := step(); v != nil {
			return *v
		}
	}
	return 0
}

// levelOverride adapts an InventoryLevel field into a resolver step.
func levelOverride(level *domain.InventoryLevel, pick func(*domain.InventoryLevel) *int) func() *int {
	return func() *int {
		if level == nil {
			return nil
		}
		return pick(level)
	}
}
