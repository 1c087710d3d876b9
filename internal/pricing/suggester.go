package pricing

import (
	"fmt"
	"math"
	"sort"

	"github.com/stockwise/backend/internal/domain"
)

// Suggester generates price-change suggestions from product margin rows.
type Suggester struct {
	params Params
}

func NewSuggester(params Params) *Suggester {
	return &Suggester{params: params}
}

// Suggest runs the three suggestion rules over every product with a cost
// record and sorts the result by confidence, high first. Ordering within a
// tier is the rule execution order, not magnitude.
func (s *Suggester) Suggest(margins []domain.ProductMargin) []domain.PricingSuggestion {
	p := s.params
	suggestions := make([]domain.PricingSuggestion, 0)

	for _, m := range margins {
		if m.Cost == nil {
			continue
		}
		cost := *m.Cost

		// Thin but positive margin: lift toward the standard target.
		if m.MarginPercent >= 0 && m.MarginPercent < p.MediumMarginPercent {
			confidence := domain.ConfidenceLow
			if m.UnitsSold > p.MediumConfidenceUnits {
				confidence = domain.ConfidenceMedium
			}
			suggestions = append(suggestions, s.build(m,
				cost/(1-p.LowMarginTarget),
				fmt.Sprintf("Margin of %.1f%% is below the %.0f%% floor", m.MarginPercent, p.MediumMarginPercent),
				fmt.Sprintf("Restores a %.0f%% margin at current volume", p.LowMarginTarget*100),
				confidence,
			))
		}

		// Selling at a loss: always actionable.
		if m.MarginPercent < 0 {
			suggestions = append(suggestions, s.build(m,
				cost/(1-p.NegativeMarginTarget),
				"Product is selling below cost",
				fmt.Sprintf("Stops the per-unit loss and targets a %.0f%% margin", p.NegativeMarginTarget*100),
				domain.ConfidenceHigh,
			))
		}

		// Rich margin but barely moving: price may be suppressing demand.
		if m.MarginPercent > p.PremiumMarginPercent && m.UnitsSold < p.PremiumLowVolumeUnits {
			suggestions = append(suggestions, s.build(m,
				cost/(1-p.PremiumTarget),
				fmt.Sprintf("High margin (%.1f%%) with only %d units sold", m.MarginPercent, m.UnitsSold),
				"A lower price point could unlock volume while keeping a healthy margin",
				domain.ConfidenceLow,
			))
		}
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return domain.ConfidenceRank(suggestions[i].Confidence) < domain.ConfidenceRank(suggestions[j].Confidence)
	})

	return suggestions
}

func (s *Suggester) build(m domain.ProductMargin, rawPrice float64, reason, impact string, confidence domain.Confidence) domain.PricingSuggestion {
	suggested := roundUpCent(rawPrice)

	changePercent := 0.0
	if m.Price > 0 {
		changePercent = (suggested - m.Price) / m.Price * 100
	}

	return domain.PricingSuggestion{
		ProductID:          m.ProductID,
		SKU:                m.SKU,
		Title:              m.Title,
		CurrentPrice:       m.Price,
		SuggestedPrice:     suggested,
		PriceChangePercent: changePercent,
		Reason:             reason,
		ExpectedImpact:     impact,
		Confidence:         confidence,
	}
}

// roundUpCent rounds a price up to the nearest cent.
func roundUpCent(price float64) float64 {
	return math.Ceil(price*100) / 100
}
