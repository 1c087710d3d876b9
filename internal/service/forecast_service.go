package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/stockwise/backend/internal/cache"
	"github.com/stockwise/backend/internal/domain"
	"github.com/stockwise/backend/internal/forecast"
	"github.com/stockwise/backend/internal/repository"
	"golang.org/x/sync/errgroup"
)

// ForecastService is the public boundary of the demand forecasting core.
// Read methods never return an error: any failure is logged with workspace
// context and degrades to an empty result, so a broken forecast can never
// take down a dashboard render.
type ForecastService struct {
	repo        repository.InventoryRepository
	engine      *forecast.Engine
	recommender *forecast.Recommender
	cache       cache.ForecastCache
	params      forecast.Params
	now         func() time.Time
}

func NewForecastService(repo repository.InventoryRepository, cacheImpl cache.ForecastCache) *ForecastService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopForecastCache()
	}
	params := forecast.DefaultParams()
	return &ForecastService{
		repo:        repo,
		engine:      forecast.NewEngine(params),
		recommender: forecast.NewRecommender(params),
		cache:       cacheImpl,
		params:      params,
		now:         time.Now,
	}
}

// Forecast computes demand forecasts for a workspace over forecastDays,
// optionally restricted to productIDs.
func (s *ForecastService) Forecast(ctx context.Context, workspaceID string, forecastDays int, productIDs []string) []domain.DemandForecast {
	if forecasts, ok, err := s.cache.GetForecasts(ctx, workspaceID, forecastDays, productIDs); err == nil && ok {
		return forecasts
	} else if err != nil {
		log.Warn().Err(err).Str("workspace_id", workspaceID).Msg("forecast: cache get failed")
	}

	forecasts, err := s.forecast(ctx, workspaceID, forecastDays, productIDs)
	if err != nil {
		log.Error().Err(err).
			Str("workspace_id", workspaceID).
			Int("forecast_days", forecastDays).
			Msg("demand forecast failed")
		return []domain.DemandForecast{}
	}

	if err := s.cache.SetForecasts(ctx, workspaceID, forecastDays, productIDs, forecasts); err != nil {
		log.Warn().Err(err).Str("workspace_id", workspaceID).Msg("forecast: cache set failed")
	}

	return forecasts
}

// Recommend derives prioritized reorder recommendations from a fixed
// 30-day forecast plus the workspace's default supplier.
func (s *ForecastService) Recommend(ctx context.Context, workspaceID string) []domain.ReorderRecommendation {
	forecasts := s.Forecast(ctx, workspaceID, s.params.HistoryWindowDays, nil)
	if len(forecasts) == 0 {
		return []domain.ReorderRecommendation{}
	}

	supplier, err := s.repo.GetDefaultSupplier(ctx, workspaceID)
	if err != nil {
		log.Error().Err(err).Str("workspace_id", workspaceID).Msg("reorder recommendations failed")
		return []domain.ReorderRecommendation{}
	}

	return s.recommender.Build(forecasts, supplier)
}

func (s *ForecastService) forecast(ctx context.Context, workspaceID string, forecastDays int, productIDs []string) ([]domain.DemandForecast, error) {
	now := s.now()
	window := s.params.HistoryWindowDays
	recentFrom := now.AddDate(0, 0, -window)
	previousFrom := now.AddDate(0, 0, -2*window)

	products, err := s.repo.GetProducts(ctx, workspaceID, productIDs)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return []domain.DemandForecast{}, nil
	}

	ids := make([]string, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}

	// The three aggregate reads are independent; fetch them concurrently.
	var (
		recent   map[string]domain.SalesTotal
		previous map[string]domain.SalesTotal
		levels   map[string]domain.InventoryLevel
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		recent, err = s.repo.GetSalesTotals(gctx, workspaceID, ids, recentFrom, now)
		return err
	})
	g.Go(func() error {
		var err error
		previous, err = s.repo.GetSalesTotals(gctx, workspaceID, ids, previousFrom, recentFrom)
		return err
	})
	g.Go(func() error {
		var err error
		levels, err = s.repo.GetInventoryLevels(gctx, workspaceID, ids)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	inputs := make([]forecast.ProductInput, 0, len(products))
	for _, p := range products {
		in := forecast.ProductInput{
			Product:     p,
			RecentQty:   recent[p.ID].Quantity,
			PreviousQty: previous[p.ID].Quantity,
		}
		if level, ok := levels[p.ID]; ok {
			l := level
			in.Level = &l
		}
		inputs = append(inputs, in)
	}

	return s.engine.BuildAll(inputs, forecastDays, now), nil
}
