package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockwise/backend/internal/domain"
	"github.com/stockwise/backend/internal/pricing"
)

type fakePricingRepo struct {
	products   []domain.Product
	totals     map[string]domain.SalesTotal
	costs      map[string]float64
	history    map[string][]domain.PriceHistoryRecord
	err        error
	historyErr error
	appendErr  error
	appended   []domain.PriceHistoryRecord
}

func (r *fakePricingRepo) GetProducts(_ context.Context, _ string, productIDs []string) ([]domain.Product, error) {
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

func (r *fakePricingRepo) GetSalesTotals(_ context.Context, _ string, _ []string, _, _ time.Time) (map[string]domain.SalesTotal, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.totals, nil
}

func (r *fakePricingRepo) GetLatestCosts(_ context.Context, _ string, _ []string) (map[string]float64, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.costs, nil
}

func (r *fakePricingRepo) GetPriceHistory(_ context.Context, _, productID string, _ int) ([]domain.PriceHistoryRecord, error) {
	if r.historyErr != nil {
		return nil, r.historyErr
	}
	return r.history[productID], nil
}

func (r *fakePricingRepo) AppendPriceHistory(_ context.Context, record domain.PriceHistoryRecord) error {
	if r.appendErr != nil {
		return r.appendErr
	}
	r.appended = append(r.appended, record)
	if r.history == nil {
		r.history = make(map[string][]domain.PriceHistoryRecord)
	}
	// newest first, matching the read query ordering
	r.history[record.ProductID] = append([]domain.PriceHistoryRecord{record}, r.history[record.ProductID]...)
	if record.Cost != nil {
		if r.costs == nil {
			r.costs = make(map[string]float64)
		}
		r.costs[record.ProductID] = *record.Cost
	}
	return nil
}

func newTestPricingService(repo *fakePricingRepo) *PricingService {
	s := NewPricingService(repo, nil)
	s.now = func() time.Time { return serviceNow }
	return s
}

func pricedProduct(id string, price float64) domain.Product {
	return domain.Product{
		ID:          id,
		WorkspaceID: "ws1",
		SKU:         "SKU-" + id,
		Title:       "Product " + id,
		Price:       price,
		Currency:    "USD",
	}
}

func TestGetMarginAnalysis(t *testing.T) {
	repo := &fakePricingRepo{
		products: []domain.Product{
			pricedProduct("rich", 100),
			pricedProduct("nocost", 50),
		},
		totals: map[string]domain.SalesTotal{
			"rich": {ProductID: "rich", Quantity: 4, Revenue: 400},
		},
		costs: map[string]float64{"rich": 50},
	}
	svc := newTestPricingService(repo)

	analysis := svc.GetMarginAnalysis(context.Background(), "ws1")

	assert.Equal(t, 2, analysis.TotalProducts)
	assert.Equal(t, 1, analysis.ProductsWithCost)
	assert.Equal(t, 1, analysis.ProductsWithoutCost)
	assert.Equal(t, 1, analysis.HighMarginProducts)
	assert.InDelta(t, 50, analysis.AverageMarginPercent, 1e-9)
	assert.InDelta(t, 200, analysis.TotalProfit, 1e-9)
}

func TestGetMarginAnalysisFailureReturnsZeroed(t *testing.T) {
	repo := &fakePricingRepo{err: errors.New("connection refused")}
	svc := newTestPricingService(repo)

	analysis := svc.GetMarginAnalysis(context.Background(), "ws1")

	assert.Equal(t, domain.MarginAnalysis{}, analysis)
}

func TestGetProductMarginsSortFallback(t *testing.T) {
	repo := &fakePricingRepo{
		products: []domain.Product{
			pricedProduct("a", 100),
			pricedProduct("b", 10),
		},
		totals: map[string]domain.SalesTotal{},
		costs:  map[string]float64{"a": 80, "b": 2},
	}
	svc := newTestPricingService(repo)

	margins := svc.GetProductMargins(context.Background(), "ws1", "not-a-sort-key")

	require.Len(t, margins, 2)
	assert.Equal(t, "b", margins[0].ProductID, "falls back to margin percent ordering")
}

func TestGetProductMarginsFailureReturnsEmpty(t *testing.T) {
	repo := &fakePricingRepo{err: errors.New("connection refused")}
	svc := newTestPricingService(repo)

	margins := svc.GetProductMargins(context.Background(), "ws1", pricing.SortByMargin)

	assert.NotNil(t, margins)
	assert.Empty(t, margins)
}

func TestGetPriceAnalysisHistoryFailureReturnsEmpty(t *testing.T) {
	repo := &fakePricingRepo{
		products:   []domain.Product{pricedProduct("p1", 20)},
		totals:     map[string]domain.SalesTotal{},
		historyErr: errors.New("connection refused"),
	}
	svc := newTestPricingService(repo)

	analyses := svc.GetPriceAnalysis(context.Background(), "ws1", nil)

	assert.NotNil(t, analyses)
	assert.Empty(t, analyses)
}

func TestRecordPriceChangeRoundTrip(t *testing.T) {
	repo := &fakePricingRepo{
		products: []domain.Product{pricedProduct("p1", 19.99)},
		totals: map[string]domain.SalesTotal{
			"p1": {ProductID: "p1", Quantity: 12, Revenue: 239.88},
		},
	}
	svc := newTestPricingService(repo)

	cost := 10.0
	ok := svc.RecordPriceChange(context.Background(), "ws1", "p1", 19.99, PriceChangeOptions{Cost: &cost})
	require.True(t, ok)

	require.Len(t, repo.appended, 1)
	record := repo.appended[0]
	assert.NotEmpty(t, record.ID)
	assert.Equal(t, "ws1", record.WorkspaceID)
	assert.Equal(t, serviceNow, record.EffectiveAt)
	require.NotNil(t, record.Margin)
	assert.InDelta(t, 9.99, *record.Margin, 1e-9)
	require.NotNil(t, record.MarginPercent)
	assert.InDelta(t, 49.975, *record.MarginPercent, 0.001)

	analyses := svc.GetPriceAnalysis(context.Background(), "ws1", []string{"p1"})
	require.Len(t, analyses, 1)
	require.NotEmpty(t, analyses[0].PriceHistory)
	assert.Equal(t, record.ID, analyses[0].PriceHistory[0].ID, "new record is the history head")
	require.NotNil(t, analyses[0].Margin)
	assert.InDelta(t, 9.99, *analyses[0].Margin, 1e-9)
}

func TestRecordPriceChangeCurrencyFallback(t *testing.T) {
	repo := &fakePricingRepo{
		products: []domain.Product{{
			ID:          "p1",
			WorkspaceID: "ws1",
			Price:       20,
			Currency:    "EUR",
		}},
	}
	svc := newTestPricingService(repo)

	require.True(t, svc.RecordPriceChange(context.Background(), "ws1", "p1", 25, PriceChangeOptions{}))
	require.Len(t, repo.appended, 1)
	assert.Equal(t, "EUR", repo.appended[0].Currency)

	require.True(t, svc.RecordPriceChange(context.Background(), "ws1", "unknown", 25, PriceChangeOptions{}))
	require.Len(t, repo.appended, 2)
	assert.Equal(t, "USD", repo.appended[1].Currency)
}

func TestRecordPriceChangeKeepsExplicitCurrency(t *testing.T) {
	repo := &fakePricingRepo{}
	svc := newTestPricingService(repo)

	require.True(t, svc.RecordPriceChange(context.Background(), "ws1", "p1", 25, PriceChangeOptions{Currency: "GBP"}))
	require.Len(t, repo.appended, 1)
	assert.Equal(t, "GBP", repo.appended[0].Currency)
}

func TestRecordPriceChangeAppendFailure(t *testing.T) {
	repo := &fakePricingRepo{appendErr: errors.New("write conflict")}
	svc := newTestPricingService(repo)

	assert.False(t, svc.RecordPriceChange(context.Background(), "ws1", "p1", 25, PriceChangeOptions{}))
	assert.Empty(t, repo.appended)
}

func TestSuggestFromMargins(t *testing.T) {
	repo := &fakePricingRepo{
		products: []domain.Product{
			pricedProduct("loss", 7),
			pricedProduct("healthy", 10),
		},
		totals: map[string]domain.SalesTotal{
			"loss":    {ProductID: "loss", Quantity: 2, Revenue: 14},
			"healthy": {ProductID: "healthy", Quantity: 2, Revenue: 20},
		},
		costs: map[string]float64{"loss": 8, "healthy": 8},
	}
	svc := newTestPricingService(repo)

	suggestions := svc.Suggest(context.Background(), "ws1")

	require.Len(t, suggestions, 1)
	assert.Equal(t, "loss", suggestions[0].ProductID)
	assert.Equal(t, domain.ConfidenceHigh, suggestions[0].Confidence)
	assert.InDelta(t, 10.00, suggestions[0].SuggestedPrice, 1e-9)
}
