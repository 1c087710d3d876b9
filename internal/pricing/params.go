package pricing

// Params collects the margin thresholds and suggestion targets so they stay
// independently testable and tunable.
type Params struct {
	// SalesWindowDays is the trailing window for units/revenue aggregates.
	SalesWindowDays int

	// HighMarginPercent / MediumMarginPercent are the category boundaries.
	HighMarginPercent   float64
	MediumMarginPercent float64

	// Target margins (as fractions of price) for the three suggestion rules.
	LowMarginTarget      float64
	NegativeMarginTarget float64
	PremiumTarget        float64

	// PremiumMarginPercent and PremiumLowVolumeUnits bound the
	// high-margin-low-volume rule.
	PremiumMarginPercent  float64
	PremiumLowVolumeUnits int

	// MediumConfidenceUnits is the sales volume above which a low-margin
	// suggestion is medium rather than low confidence.
	MediumConfidenceUnits int
}

// DefaultParams returns the production tuning.
func DefaultParams() Params {
	return Params{
		SalesWindowDays:       30,
		HighMarginPercent:     40,
		MediumMarginPercent:   15,
		LowMarginTarget:       0.25,
		NegativeMarginTarget:  0.20,
		PremiumTarget:         0.35,
		PremiumMarginPercent:  50,
		PremiumLowVolumeUnits: 5,
		MediumConfidenceUnits: 10,
	}
}
