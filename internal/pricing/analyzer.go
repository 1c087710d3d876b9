package pricing

import (
	"sort"

	"github.com/stockwise/backend/internal/domain"
)

// Sort fields accepted by ProductMargins.
const (
	SortByMargin        = "margin"
	SortByMarginPercent = "margin_percent"
	SortByProfit        = "profit"
)

// ProductSales bundles a product with its latest cost record and trailing
// sales aggregates.
type ProductSales struct {
	Product   domain.Product
	Cost      *float64
	UnitsSold int
	Revenue   float64
}

// Analyzer computes per-product and portfolio margin views. It is pure; the
// service layer supplies the aggregates.
type Analyzer struct {
	params Params
}

func NewAnalyzer(params Params) *Analyzer {
	return &Analyzer{params: params}
}

// ProductMargins builds the per-product margin listing. Margin percent is
// computed against price and guarded on price > 0; products without a cost
// record land in the unknown category but keep their sales figures.
func (a *Analyzer) ProductMargins(rows []ProductSales, sortBy string) []domain.ProductMargin {
	margins := make([]domain.ProductMargin, 0, len(rows))
	for _, row := range rows {
		m := domain.ProductMargin{
			ProductID: row.Product.ID,
			SKU:       row.Product.SKU,
			Title:     row.Product.Title,
			Price:     row.Product.Price,
			Cost:      row.Cost,
			UnitsSold: row.UnitsSold,
			Revenue:   row.Revenue,
			Category:  domain.MarginCategoryUnknown,
		}

		if row.Cost != nil {
			m.Margin = row.Product.Price - *row.Cost
			if row.Product.Price > 0 {
				m.MarginPercent = m.Margin / row.Product.Price * 100
			}
			m.Profit = m.Margin * float64(row.UnitsSold)
			m.Category = a.categorize(m.MarginPercent)
		}

		margins = append(margins, m)
	}

	sortProductMargins(margins, sortBy)
	return margins
}

// MarginAnalysis builds the portfolio aggregate. Note the margin math here
// additionally guards on cost > 0, and products in the 15-40% band increment
// the low-margin counter. Both quirks are long-standing observed behavior
// that downstream dashboards depend on.
func (a *Analyzer) MarginAnalysis(rows []ProductSales) domain.MarginAnalysis {
	analysis := domain.MarginAnalysis{TotalProducts: len(rows)}

	var marginPercentSum float64
	for _, row := range rows {
		analysis.TotalRevenue += row.Revenue

		if row.Cost == nil {
			analysis.ProductsWithoutCost++
			continue
		}
		analysis.ProductsWithCost++

		if *row.Cost <= 0 {
			continue
		}

		margin := row.Product.Price - *row.Cost
		marginPercent := 0.0
		if row.Product.Price > 0 {
			marginPercent = margin / row.Product.Price * 100
		}
		marginPercentSum += marginPercent
		analysis.TotalProfit += margin * float64(row.UnitsSold)

		switch {
		case marginPercent >= a.params.HighMarginPercent:
			analysis.HighMarginProducts++
		case marginPercent >= a.params.MediumMarginPercent:
			analysis.LowMarginProducts++
		case marginPercent < 0:
			analysis.NegativeMarginProducts++
		}
	}

	if analysis.ProductsWithCost > 0 {
		analysis.AverageMarginPercent = marginPercentSum / float64(analysis.ProductsWithCost)
	}

	return analysis
}

// PriceAnalysis builds the per-product pricing snapshot, history head-first.
func (a *Analyzer) PriceAnalysis(row ProductSales, history []domain.PriceHistoryRecord) domain.PriceAnalysis {
	analysis := domain.PriceAnalysis{
		ProductID:    row.Product.ID,
		SKU:          row.Product.SKU,
		Title:        row.Product.Title,
		CurrentPrice: row.Product.Price,
		Currency:     row.Product.Currency,
		Cost:         row.Cost,
		UnitsSold:    row.UnitsSold,
		Revenue:      row.Revenue,
		PriceHistory: history,
	}

	if row.Cost != nil && *row.Cost > 0 {
		margin := row.Product.Price - *row.Cost
		analysis.Margin = &margin
		if row.Product.Price > 0 {
			marginPercent := margin / row.Product.Price * 100
			analysis.MarginPercent = &marginPercent
		}
	}

	return analysis
}

func (a *Analyzer) categorize(marginPercent float64) domain.MarginCategory {
	switch {
	case marginPercent >= a.params.HighMarginPercent:
		return domain.MarginCategoryHigh
	case marginPercent >= a.params.MediumMarginPercent:
		return domain.MarginCategoryMedium
	case marginPercent >= 0:
		return domain.MarginCategoryLow
	default:
		return domain.MarginCategoryNegative
	}
}

func sortProductMargins(margins []domain.ProductMargin, sortBy string) {
	key := func(m domain.ProductMargin) float64 {
		switch sortBy {
		case SortByMargin:
			return m.Margin
		case SortByProfit:
			return m.Profit
		default:
			return m.MarginPercent
		}
	}
	sort.SliceStable(margins, func(i, j int) bool {
		return key(margins[i]) > key(margins[j])
	})
}
