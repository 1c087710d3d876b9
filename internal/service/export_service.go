package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/stockwise/backend/internal/domain"
	"github.com/stockwise/backend/internal/storage"
)

// ExportService writes point-in-time forecast and reorder snapshots to
// S3-compatible object storage for offline analysis.
type ExportService struct {
	forecasts *ForecastService
	store     storage.ObjectStorage
	now       func() time.Time
}

func NewExportService(forecasts *ForecastService, store storage.ObjectStorage) *ExportService {
	return &ExportService{
		forecasts: forecasts,
		store:     store,
		now:       time.Now,
	}
}

// ExportSnapshot uploads a CSV of the current forecasts and recommendations
// for the workspace and returns the object key. Unlike the read paths, this
// is a write operation and reports its error to the caller.
func (s *ExportService) ExportSnapshot(ctx context.Context, workspaceID string) (string, error) {
	if s.store == nil {
		return "", fmt.Errorf("object storage is not configured")
	}

	forecasts := s.forecasts.Forecast(ctx, workspaceID, 30, nil)
	recommendations := s.forecasts.Recommend(ctx, workspaceID)

	payload, err := buildSnapshotCSV(forecasts, recommendations)
	if err != nil {
		return "", fmt.Errorf("failed building snapshot csv: %w", err)
	}

	key := fmt.Sprintf("forecast_snapshots/%s/%s.csv", workspaceID, s.now().UTC().Format("20060102T150405Z"))
	if err := s.store.UploadObject(ctx, key, payload, "text/csv"); err != nil {
		return "", err
	}

	log.Info().
		Str("workspace_id", workspaceID).
		Str("key", key).
		Int("forecasts", len(forecasts)).
		Int("recommendations", len(recommendations)).
		Msg("forecast snapshot exported")

	return key, nil
}

func buildSnapshotCSV(forecasts []domain.DemandForecast, recommendations []domain.ReorderRecommendation) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	headers := []string{
		"product_id",
		"sku",
		"title",
		"current_stock",
		"avg_daily_sales",
		"trend",
		"expected_demand",
		"days_until_stockout",
		"reorder_point",
		"recommended_quantity",
		"priority",
		"reason",
		"confidence",
	}
	if err := w.Write(headers); err != nil {
		return nil, err
	}

	recsByProduct := make(map[string]domain.ReorderRecommendation, len(recommendations))
	for _, rec := range recommendations {
		recsByProduct[rec.ProductID] = rec
	}

	for _, f := range forecasts {
		daysUntilStockout := ""
		if f.DaysUntilStockout != nil {
			daysUntilStockout = strconv.Itoa(*f.DaysUntilStockout)
		}

		quantity, priority, reason := "", "", ""
		if rec, ok := recsByProduct[f.ProductID]; ok {
			quantity = strconv.Itoa(rec.RecommendedQuantity)
			priority = string(rec.Priority)
			reason = rec.Reason
		}

		record := []string{
			f.ProductID,
			f.SKU,
			f.Title,
			strconv.Itoa(f.CurrentStock),
			strconv.FormatFloat(f.AvgDailySales, 'f', 2, 64),
			string(f.Trend),
			strconv.Itoa(f.ExpectedDemand),
			daysUntilStockout,
			strconv.Itoa(f.ReorderPoint),
			quantity,
			priority,
			reason,
			string(f.Confidence),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
