package forecast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockwise/backend/internal/domain"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func product(id string, stock int) domain.Product {
	return domain.Product{
		ID:                id,
		WorkspaceID:       "ws1",
		SKU:               "SKU-" + id,
		Title:             "Product " + id,
		Price:             20,
		Currency:          "USD",
		InventoryQuantity: stock,
	}
}

func TestBuildIncreasingDemand(t *testing.T) {
	engine := NewEngine(DefaultParams())

	f := engine.Build(ProductInput{
		Product:     product("p1", 18),
		RecentQty:   45,
		PreviousQty: 20,
	}, 30, testNow)

	assert.Equal(t, domain.TrendIncreasing, f.Trend)
	assert.InDelta(t, 1.5, f.AvgDailySales, 1e-9)
	assert.Equal(t, 50, f.ExpectedDemand)
	assert.Equal(t, domain.ConfidenceHigh, f.Confidence)

	require.NotNil(t, f.DaysUntilStockout)
	assert.Equal(t, 12, *f.DaysUntilStockout)
	require.NotNil(t, f.StockoutDate)
	assert.Equal(t, testNow.AddDate(0, 0, 12), *f.StockoutDate)

	// default reorder point is seven days of cover
	assert.Equal(t, 11, f.ReorderPoint)
	require.NotNil(t, f.RecommendedReorderAt)
	assert.Equal(t, testNow.AddDate(0, 0, 4), *f.RecommendedReorderAt)
	require.NotNil(t, f.RecommendedReorderQty)
	assert.Equal(t, f.ExpectedDemand, *f.RecommendedReorderQty)
}

func TestBuildSurgingProduct(t *testing.T) {
	engine := NewEngine(DefaultParams())

	f := engine.Build(ProductInput{
		Product:     product("p1", 40),
		RecentQty:   100,
		PreviousQty: 50,
	}, 30, testNow)

	assert.Equal(t, domain.TrendIncreasing, f.Trend)
	assert.InDelta(t, 100.0/30.0, f.AvgDailySales, 1e-9)
	// ceil over float arithmetic: 100/30 * 1.1 * 30 lands just above 110
	assert.Equal(t, 111, f.ExpectedDemand)
	require.NotNil(t, f.DaysUntilStockout)
	assert.Equal(t, 12, *f.DaysUntilStockout)
	require.NotNil(t, f.StockoutDate)
	assert.Equal(t, domain.ConfidenceHigh, f.Confidence)
}

func TestBuildNoSales(t *testing.T) {
	engine := NewEngine(DefaultParams())

	f := engine.Build(ProductInput{
		Product: product("p1", 100),
	}, 30, testNow)

	assert.Equal(t, domain.TrendStable, f.Trend)
	assert.Zero(t, f.AvgDailySales)
	assert.Zero(t, f.ExpectedDemand)
	assert.Zero(t, f.ReorderPoint)
	assert.Nil(t, f.DaysUntilStockout)
	assert.Nil(t, f.StockoutDate)
	assert.Nil(t, f.RecommendedReorderAt)
	assert.Nil(t, f.RecommendedReorderQty)
	assert.Equal(t, domain.ConfidenceLow, f.Confidence)
}

func TestBuildOutOfStock(t *testing.T) {
	engine := NewEngine(DefaultParams())

	f := engine.Build(ProductInput{
		Product:     product("p1", 0),
		RecentQty:   30,
		PreviousQty: 30,
	}, 30, testNow)

	require.NotNil(t, f.DaysUntilStockout)
	assert.Equal(t, 0, *f.DaysUntilStockout)
	require.NotNil(t, f.StockoutDate)
	assert.Equal(t, testNow, *f.StockoutDate)
	require.NotNil(t, f.RecommendedReorderAt)
	assert.Equal(t, testNow, *f.RecommendedReorderAt, "reorder date never goes into the past")
}

func TestBuildStockoutBeyondHorizon(t *testing.T) {
	engine := NewEngine(DefaultParams())

	f := engine.Build(ProductInput{
		Product:     product("p1", 100),
		RecentQty:   30,
		PreviousQty: 30,
	}, 30, testNow)

	require.NotNil(t, f.DaysUntilStockout)
	assert.Equal(t, 100, *f.DaysUntilStockout)
	assert.Nil(t, f.StockoutDate, "dates further out than twice the horizon are suppressed")
	assert.Nil(t, f.RecommendedReorderAt)
}

func TestBuildLevelOverrides(t *testing.T) {
	engine := NewEngine(DefaultParams())

	reorderPoint := 25
	reorderQty := 40
	f := engine.Build(ProductInput{
		Product:     product("p1", 10),
		RecentQty:   30,
		PreviousQty: 30,
		Level: &domain.InventoryLevel{
			WorkspaceID:     "ws1",
			ProductID:       "p1",
			ReorderPoint:    &reorderPoint,
			ReorderQuantity: &reorderQty,
		},
	}, 30, testNow)

	assert.Equal(t, 25, f.ReorderPoint)
	require.NotNil(t, f.RecommendedReorderQty)
	assert.Equal(t, 40, *f.RecommendedReorderQty)
}

func TestBuildPartialLevelOverride(t *testing.T) {
	engine := NewEngine(DefaultParams())

	reorderPoint := 25
	f := engine.Build(ProductInput{
		Product:     product("p1", 10),
		RecentQty:   30,
		PreviousQty: 30,
		Level: &domain.InventoryLevel{
			WorkspaceID:  "ws1",
			ProductID:    "p1",
			ReorderPoint: &reorderPoint,
		},
	}, 30, testNow)

	assert.Equal(t, 25, f.ReorderPoint)
	require.NotNil(t, f.RecommendedReorderQty)
	assert.Equal(t, f.ExpectedDemand, *f.RecommendedReorderQty, "missing quantity override falls back to expected demand")
}

func TestClassifyTrend(t *testing.T) {
	engine := NewEngine(DefaultParams())

	tests := []struct {
		name     string
		recent   int
		previous int
		want     domain.Trend
	}{
		{"growth above threshold", 45, 20, domain.TrendIncreasing},
		{"growth just above threshold", 34, 30, domain.TrendIncreasing},
		{"growth at threshold stays stable", 33, 30, domain.TrendStable},
		{"flat", 30, 30, domain.TrendStable},
		{"decline just above threshold", 26, 30, domain.TrendDecreasing},
		{"decline at threshold stays stable", 27, 30, domain.TrendStable},
		{"no prior sales", 100, 0, domain.TrendStable},
		{"no sales at all", 0, 0, domain.TrendStable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, engine.classifyTrend(tt.recent, tt.previous))
		})
	}
}

func TestClassifyConfidence(t *testing.T) {
	engine := NewEngine(DefaultParams())

	tests := []struct {
		recent int
		want   domain.Confidence
	}{
		{20, domain.ConfidenceHigh},
		{100, domain.ConfidenceHigh},
		{19, domain.ConfidenceMedium},
		{5, domain.ConfidenceMedium},
		{4, domain.ConfidenceLow},
		{0, domain.ConfidenceLow},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, engine.classifyConfidence(tt.recent), "recentQty=%d", tt.recent)
	}
}

func TestBuildDecreasingDemand(t *testing.T) {
	engine := NewEngine(DefaultParams())

	f := engine.Build(ProductInput{
		Product:     product("p1", 200),
		RecentQty:   15,
		PreviousQty: 30,
	}, 30, testNow)

	assert.Equal(t, domain.TrendDecreasing, f.Trend)
	assert.Equal(t, 14, f.ExpectedDemand)
	assert.Equal(t, domain.ConfidenceMedium, f.Confidence)
}

func TestBuildAllSortsByStockout(t *testing.T) {
	engine := NewEngine(DefaultParams())

	inputs := []ProductInput{
		{Product: product("never", 100)},                              // no sales, no stockout
		{Product: product("soon", 5), RecentQty: 30, PreviousQty: 30}, // 5 days
		{Product: product("later", 20), RecentQty: 30, PreviousQty: 30}, // 20 days
	}

	forecasts := engine.BuildAll(inputs, 30, testNow)

	require.Len(t, forecasts, 3)
	assert.Equal(t, "soon", forecasts[0].ProductID)
	assert.Equal(t, "later", forecasts[1].ProductID)
	assert.Equal(t, "never", forecasts[2].ProductID)
	assert.Nil(t, forecasts[2].DaysUntilStockout)
}
