package forecast

import "math"

// DefaultServiceLevel is the z-multiplier for a ~95% service level.
const DefaultServiceLevel = 1.65

// CalculateEOQ returns the classical economic order quantity, rounded up.
// Non-positive inputs yield 0 rather than a meaningless root.
func CalculateEOQ(annualDemand, orderingCost, holdingCostPerUnit float64) int {
	if annualDemand <= 0 || orderingCost <= 0 || holdingCostPerUnit <= 0 {
		return 0
	}
	return int(math.Ceil(math.Sqrt(2 * annualDemand * orderingCost / holdingCostPerUnit)))
}

// CalculateSafetyStock sizes a buffer for demand variability over the supplier
// lead time. Daily demand standard deviation is approximated as half the
// average daily sales; this heuristic is part of the contract, not a
// statistically fitted value. A non-positive serviceLevelMultiplier selects
// DefaultServiceLevel.
func CalculateSafetyStock(avgDailySales, leadTimeDays, serviceLevelMultiplier float64) int {
	if avgDailySales <= 0 || leadTimeDays <= 0 {
		return 0
	}
	if serviceLevelMultiplier <= 0 {
		serviceLevelMultiplier = DefaultServiceLevel
	}
	dailyStdDev := 0.5 * avgDailySales
	return int(math.Ceil(serviceLevelMultiplier * math.Sqrt(leadTimeDays) * dailyStdDev))
}
