package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/stockwise/backend/internal/cache"
	"github.com/stockwise/backend/internal/domain"
	"github.com/stockwise/backend/internal/pricing"
	"github.com/stockwise/backend/internal/repository"
	"golang.org/x/sync/errgroup"
)

const priceHistoryLimit = 30

// PriceChangeOptions carries the optional fields of a recorded price change.
type PriceChangeOptions struct {
	Cost     *float64
	Currency string
}

// PricingService is the public boundary of the margin/pricing core. Like the
// forecaster, read methods swallow errors into empty or zeroed results.
type PricingService struct {
	repo      repository.PricingRepository
	analyzer  *pricing.Analyzer
	suggester *pricing.Suggester
	cache     cache.PricingCache
	params    pricing.Params
	now       func() time.Time
}

func NewPricingService(repo repository.PricingRepository, cacheImpl cache.PricingCache) *PricingService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopPricingCache()
	}
	params := pricing.DefaultParams()
	return &PricingService{
		repo:      repo,
		analyzer:  pricing.NewAnalyzer(params),
		suggester: pricing.NewSuggester(params),
		cache:     cacheImpl,
		params:    params,
		now:       time.Now,
	}
}

// GetPriceAnalysis returns per-product pricing snapshots with recent history.
func (s *PricingService) GetPriceAnalysis(ctx context.Context, workspaceID string, productIDs []string) []domain.PriceAnalysis {
	rows, err := s.loadProductSales(ctx, workspaceID, productIDs)
	if err != nil {
		log.Error().Err(err).Str("workspace_id", workspaceID).Msg("price analysis failed")
		return []domain.PriceAnalysis{}
	}

	analyses := make([]domain.PriceAnalysis, 0, len(rows))
	for _, row := range rows {
		history, err := s.repo.GetPriceHistory(ctx, workspaceID, row.Product.ID, priceHistoryLimit)
		if err != nil {
			log.Error().Err(err).
				Str("workspace_id", workspaceID).
				Str("product_id", row.Product.ID).
				Msg("price analysis failed")
			return []domain.PriceAnalysis{}
		}
		analyses = append(analyses, s.analyzer.PriceAnalysis(row, history))
	}

	return analyses
}

// GetMarginAnalysis returns the portfolio-level margin aggregate, zeroed on
// failure.
func (s *PricingService) GetMarginAnalysis(ctx context.Context, workspaceID string) domain.MarginAnalysis {
	rows, err := s.loadProductSales(ctx, workspaceID, nil)
	if err != nil {
		log.Error().Err(err).Str("workspace_id", workspaceID).Msg("margin analysis failed")
		return domain.MarginAnalysis{}
	}

	return s.analyzer.MarginAnalysis(rows)
}

// GetProductMargins returns the per-product margin listing sorted by sortBy
// (margin, margin_percent or profit; margin_percent when empty or unknown).
func (s *PricingService) GetProductMargins(ctx context.Context, workspaceID, sortBy string) []domain.ProductMargin {
	sortBy = normalizeSortBy(sortBy)

	if margins, ok, err := s.cache.GetMargins(ctx, workspaceID, sortBy); err == nil && ok {
		return margins
	} else if err != nil {
		log.Warn().Err(err).Str("workspace_id", workspaceID).Msg("pricing: cache get failed")
	}

	rows, err := s.loadProductSales(ctx, workspaceID, nil)
	if err != nil {
		log.Error().Err(err).Str("workspace_id", workspaceID).Msg("product margins failed")
		return []domain.ProductMargin{}
	}

	margins := s.analyzer.ProductMargins(rows, sortBy)

	if err := s.cache.SetMargins(ctx, workspaceID, sortBy, margins); err != nil {
		log.Warn().Err(err).Str("workspace_id", workspaceID).Msg("pricing: cache set failed")
	}

	return margins
}

// Suggest generates price-change suggestions from the margin listing.
func (s *PricingService) Suggest(ctx context.Context, workspaceID string) []domain.PricingSuggestion {
	margins := s.GetProductMargins(ctx, workspaceID, pricing.SortByMarginPercent)
	return s.suggester.Suggest(margins)
}

// RecordPriceChange appends a price history row and reports success. This is
// the only write path of the pricing core; history rows are never updated.
func (s *PricingService) RecordPriceChange(ctx context.Context, workspaceID, productID string, newPrice float64, opts PriceChangeOptions) bool {
	record := domain.PriceHistoryRecord{
		ID:          uuid.NewString(),
		WorkspaceID: workspaceID,
		ProductID:   productID,
		Price:       newPrice,
		Currency:    opts.Currency,
		EffectiveAt: s.now(),
	}

	if record.Currency == "" {
		record.Currency = s.lookupCurrency(ctx, workspaceID, productID)
	}

	if opts.Cost != nil {
		margin := newPrice - *opts.Cost
		record.Cost = opts.Cost
		record.Margin = &margin
		marginPercent := 0.0
		if newPrice > 0 {
			marginPercent = margin / newPrice * 100
		}
		record.MarginPercent = &marginPercent
	}

	if err := s.repo.AppendPriceHistory(ctx, record); err != nil {
		log.Error().Err(err).
			Str("workspace_id", workspaceID).
			Str("product_id", productID).
			Msg("record price change failed")
		return false
	}

	if err := s.cache.InvalidateWorkspace(ctx, workspaceID); err != nil {
		log.Warn().Err(err).Str("workspace_id", workspaceID).Msg("pricing: cache invalidate failed")
	}

	return true
}

func (s *PricingService) loadProductSales(ctx context.Context, workspaceID string, productIDs []string) ([]pricing.ProductSales, error) {
	now := s.now()
	from := now.AddDate(0, 0, -s.params.SalesWindowDays)

	products, err := s.repo.GetProducts(ctx, workspaceID, productIDs)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return []pricing.ProductSales{}, nil
	}

	ids := make([]string, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}

	var (
		totals map[string]domain.SalesTotal
		costs  map[string]float64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		totals, err = s.repo.GetSalesTotals(gctx, workspaceID, ids, from, now)
		return err
	})
	g.Go(func() error {
		var err error
		costs, err = s.repo.GetLatestCosts(gctx, workspaceID, ids)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	rows := make([]pricing.ProductSales, 0, len(products))
	for _, p := range products {
		row := pricing.ProductSales{
			Product:   p,
			UnitsSold: totals[p.ID].Quantity,
			Revenue:   totals[p.ID].Revenue,
		}
		if cost, ok := costs[p.ID]; ok {
			c := cost
			row.Cost = &c
		}
		rows = append(rows, row)
	}

	return rows, nil
}

func (s *PricingService) lookupCurrency(ctx context.Context, workspaceID, productID string) string {
	products, err := s.repo.GetProducts(ctx, workspaceID, []string{productID})
	if err == nil && len(products) > 0 && products[0].Currency != "" {
		return products[0].Currency
	}
	return "USD"
}

func normalizeSortBy(sortBy string) string {
	switch sortBy {
	case pricing.SortByMargin, pricing.SortByProfit:
		return sortBy
	default:
		return pricing.SortByMarginPercent
	}
}
