package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockwise/backend/internal/domain"
)

var serviceNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type fakeInventoryRepo struct {
	products    []domain.Product
	recent      map[string]domain.SalesTotal
	previous    map[string]domain.SalesTotal
	levels      map[string]domain.InventoryLevel
	supplier    *domain.Supplier
	err         error
	supplierErr error
}

func (r *fakeInventoryRepo) GetProducts(_ context.Context, _ string, productIDs []string) ([]domain.Product, error) {
	if r.err != nil {
		return nil, r.err
	}
	if len(productIDs) == 0 {
		return r.products, nil
	}
	wanted := make(map[string]bool, len(productIDs))
	for _, id := range productIDs {
		wanted[id] = true
	}
	out := make([]domain.Product, 0, len(productIDs))
	for _, p := range r.products {
		if wanted[p.ID] {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeInventoryRepo) GetSalesTotals(_ context.Context, _ string, _ []string, _, to time.Time) (map[string]domain.SalesTotal, error) {
	if r.err != nil {
		return nil, r.err
	}
	if to.Equal(serviceNow) {
		return r.recent, nil
	}
	return r.previous, nil
}

func (r *fakeInventoryRepo) GetInventoryLevels(_ context.Context, _ string, _ []string) (map[string]domain.InventoryLevel, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.levels, nil
}

func (r *fakeInventoryRepo) GetDefaultSupplier(_ context.Context, _ string) (*domain.Supplier, error) {
	if r.supplierErr != nil {
		return nil, r.supplierErr
	}
	return r.supplier, nil
}

func newTestForecastService(repo *fakeInventoryRepo) *ForecastService {
	s := NewForecastService(repo, nil)
	s.now = func() time.Time { return serviceNow }
	return s
}

func invProduct(id string, stock int) domain.Product {
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

func TestForecastOrdersByStockout(t *testing.T) {
	repo := &fakeInventoryRepo{
		products: []domain.Product{
			invProduct("slow", 500),
			invProduct("fast", 10),
		},
		recent: map[string]domain.SalesTotal{
			"fast": {ProductID: "fast", Quantity: 60, Revenue: 1200},
			"slow": {ProductID: "slow", Quantity: 30, Revenue: 600},
		},
		previous: map[string]domain.SalesTotal{
			"fast": {ProductID: "fast", Quantity: 30, Revenue: 600},
			"slow": {ProductID: "slow", Quantity: 30, Revenue: 600},
		},
	}
	svc := newTestForecastService(repo)

	forecasts := svc.Forecast(context.Background(), "ws1", 30, nil)

	require.Len(t, forecasts, 2)
	assert.Equal(t, "fast", forecasts[0].ProductID)
	assert.Equal(t, domain.TrendIncreasing, forecasts[0].Trend)
	require.NotNil(t, forecasts[0].DaysUntilStockout)
	assert.Equal(t, 5, *forecasts[0].DaysUntilStockout)
	assert.Equal(t, "slow", forecasts[1].ProductID)
}

func TestForecastAppliesLevelOverrides(t *testing.T) {
	reorderPoint := 100
	repo := &fakeInventoryRepo{
		products: []domain.Product{invProduct("p1", 50)},
		recent: map[string]domain.SalesTotal{
			"p1": {ProductID: "p1", Quantity: 30},
		},
		previous: map[string]domain.SalesTotal{},
		levels: map[string]domain.InventoryLevel{
			"p1": {WorkspaceID: "ws1", ProductID: "p1", ReorderPoint: &reorderPoint},
		},
	}
	svc := newTestForecastService(repo)

	forecasts := svc.Forecast(context.Background(), "ws1", 30, nil)

	require.Len(t, forecasts, 1)
	assert.Equal(t, 100, forecasts[0].ReorderPoint)
}

func TestForecastRepoFailureDegradesToEmpty(t *testing.T) {
	repo := &fakeInventoryRepo{err: errors.New("connection refused")}
	svc := newTestForecastService(repo)

	forecasts := svc.Forecast(context.Background(), "ws1", 30, nil)

	assert.NotNil(t, forecasts)
	assert.Empty(t, forecasts)
}

func TestForecastNoProducts(t *testing.T) {
	svc := newTestForecastService(&fakeInventoryRepo{})

	forecasts := svc.Forecast(context.Background(), "ws1", 30, nil)

	assert.NotNil(t, forecasts)
	assert.Empty(t, forecasts)
}

func TestForecastFiltersByProductIDs(t *testing.T) {
	repo := &fakeInventoryRepo{
		products: []domain.Product{invProduct("a", 10), invProduct("b", 10)},
		recent:   map[string]domain.SalesTotal{},
		previous: map[string]domain.SalesTotal{},
	}
	svc := newTestForecastService(repo)

	forecasts := svc.Forecast(context.Background(), "ws1", 30, []string{"b"})

	require.Len(t, forecasts, 1)
	assert.Equal(t, "b", forecasts[0].ProductID)
}

func TestRecommendAttachesDefaultSupplier(t *testing.T) {
	repo := &fakeInventoryRepo{
		products: []domain.Product{invProduct("p1", 5)},
		recent: map[string]domain.SalesTotal{
			"p1": {ProductID: "p1", Quantity: 60},
		},
		previous: map[string]domain.SalesTotal{
			"p1": {ProductID: "p1", Quantity: 60},
		},
		supplier: &domain.Supplier{ID: "sup1", WorkspaceID: "ws1", Name: "Acme Supply", LeadTimeDays: 14},
	}
	svc := newTestForecastService(repo)

	recs := svc.Recommend(context.Background(), "ws1")

	require.Len(t, recs, 1)
	assert.Equal(t, domain.PriorityUrgent, recs[0].Priority)
	require.NotNil(t, recs[0].SupplierName)
	assert.Equal(t, "Acme Supply", *recs[0].SupplierName)
	assert.Equal(t, 14, recs[0].ExpectedDeliveryDays)
	assert.Nil(t, recs[0].EstimatedCost)
}

func TestRecommendSupplierFailureDegradesToEmpty(t *testing.T) {
	repo := &fakeInventoryRepo{
		products: []domain.Product{invProduct("p1", 5)},
		recent: map[string]domain.SalesTotal{
			"p1": {ProductID: "p1", Quantity: 60},
		},
		previous:    map[string]domain.SalesTotal{},
		supplierErr: errors.New("connection refused"),
	}
	svc := newTestForecastService(repo)

	recs := svc.Recommend(context.Background(), "ws1")

	assert.NotNil(t, recs)
	assert.Empty(t, recs)
}

func TestRecommendNoForecasts(t *testing.T) {
	svc := newTestForecastService(&fakeInventoryRepo{})

	recs := svc.Recommend(context.Background(), "ws1")

	assert.NotNil(t, recs)
	assert.Empty(t, recs)
}
