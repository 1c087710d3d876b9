package forecast

import (
	"fmt"
	"sort"

	"github.com/stockwise/backend/internal/domain"
)

// Recommender turns forecasts into prioritized reorder recommendations.
type Recommender struct {
	params Params
}

func NewRecommender(params Params) *Recommender {
	return &Recommender{params: params}
}

// Build filters forecasts to those with a recommended reorder date, attaches
// the workspace's default supplier, and sorts by priority severity. The
// supplier is a blanket default for every recommendation; there is no
// per-product supplier mapping.
func (r *Recommender) Build(forecasts []domain.DemandForecast, supplier *domain.Supplier) []domain.ReorderRecommendation {
	recs := make([]domain.ReorderRecommendation, 0, len(forecasts))
	for _, f := range forecasts {
		if f.RecommendedReorderAt == nil {
			continue
		}

		qty := 0
		if f.RecommendedReorderQty != nil {
			qty = *f.RecommendedReorderQty
		}

		rec := domain.ReorderRecommendation{
			ProductID:            f.ProductID,
			SKU:                  f.SKU,
			Title:                f.Title,
			CurrentStock:         f.CurrentStock,
			ReorderPoint:         f.ReorderPoint,
			RecommendedQuantity:  qty,
			Priority:             r.classifyPriority(f.DaysUntilStockout),
			Reason:               r.buildReason(f),
			ExpectedDeliveryDays: r.params.DefaultLeadTimeDays,
		}
		if supplier != nil {
			id, name := supplier.ID, supplier.Name
			rec.SupplierID = &id
			rec.SupplierName = &name
			rec.ExpectedDeliveryDays = supplier.LeadTimeDays
		}

		recs = append(recs, rec)
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return domain.PriorityRank(recs[i].Priority) < domain.PriorityRank(recs[j].Priority)
	})

	return recs
}

func (r *Recommender) classifyPriority(daysUntilStockout *int) domain.Priority {
	if daysUntilStockout == nil {
		return domain.PriorityLow
	}
	switch d := *daysUntilStockout; {
	case d <= 3:
		return domain.PriorityUrgent
	case d <= 7:
		return domain.PriorityHigh
	case d <= 14:
		return domain.PriorityMedium
	default:
		return domain.PriorityLow
	}
}

// buildReason is a priority-ordered cascade: the first matching condition wins.
func (r *Recommender) buildReason(f domain.DemandForecast) string {
	if f.DaysUntilStockout != nil {
		if *f.DaysUntilStockout <= 0 {
			return "Out of stock"
		}
		if *f.DaysUntilStockout <= 7 {
			return fmt.Sprintf("Only %d days of stock remaining", *f.DaysUntilStockout)
		}
	}
	if f.Trend == domain.TrendIncreasing {
		return "Demand is increasing"
	}
	return "Stock below reorder point"
}
