package forecast

// Params collects the tuning constants of the forecasting engine so they can
// be tested and tuned without touching the algorithm code.
type Params struct {
	// HistoryWindowDays is the length of the trailing sales window used for
	// the average-daily-sales denominator and the trend comparison.
	HistoryWindowDays int

	// GrowthThreshold is the growth-rate cutoff for classifying a trend as
	// increasing (or, negated, decreasing).
	GrowthThreshold float64

	// IncreasingFactor / DecreasingFactor adjust avg daily sales before the
	// demand projection.
	IncreasingFactor float64
	DecreasingFactor float64

	// SafetyCoverDays is the default reorder-point coverage when no
	// per-product override exists.
	SafetyCoverDays int

	// StockoutHorizonFactor suppresses stockout dates further out than
	// forecastDays * factor.
	StockoutHorizonFactor int

	// HighConfidenceUnits / LowConfidenceUnits are the sample-size bounds for
	// the confidence tiers.
	HighConfidenceUnits int
	LowConfidenceUnits  int

	// DefaultLeadTimeDays is the delivery estimate used when the workspace
	// has no supplier on file.
	DefaultLeadTimeDays int
}

// DefaultParams returns the production tuning.
func DefaultParams() Params {
	return Params{
		HistoryWindowDays:     30,
		GrowthThreshold:       0.10,
		IncreasingFactor:      1.1,
		DecreasingFactor:      0.9,
		SafetyCoverDays:       7,
		StockoutHorizonFactor: 2,
		HighConfidenceUnits:   20,
		LowConfidenceUnits:    5,
		DefaultLeadTimeDays:   7,
	}
}
