// Package pricing recomputes the live price of hotel room types from occupancy,
// the day of the week, a fixed holiday calendar and per-room pricing rules.
//
// Nothing in this package performs I/O: callers load a hotel, run
// UpdateHotelPricing and persist the hotel themselves when it reports a change.
package pricing

import (
	"math"

	"github.com/shopspring/decimal"

	"hotel-marketplace/models"
)

var (
	one = decimal.NewFromInt(1)

	demandBaseline  = decimal.NewFromFloat(0.5)
	demandSlope     = decimal.NewFromFloat(0.8)
	minDemandFactor = decimal.NewFromFloat(0.8)
	maxDemandFactor = decimal.NewFromInt(2)
)

// ChangeThreshold is the hysteresis band: a recomputed price replaces the
// current one only when they differ by strictly more than this amount.
var ChangeThreshold = decimal.NewFromInt(1)

// DemandFactor maps an occupancy rate in [0,1] to a price factor. 50%
// occupancy is neutral; the result is clamped to [0.8, 2.0].
func DemandFactor(occupancyRate float64) decimal.Decimal {
	factor := one.Add(decimal.NewFromFloat(occupancyRate).Sub(demandBaseline).Mul(demandSlope))
	if factor.LessThan(minDemandFactor) {
		return minDemandFactor
	}
	if factor.GreaterThan(maxDemandFactor) {
		return maxDemandFactor
	}
	return factor
}

// ComputeDynamicPrice returns the price of a room type for the given occupancy
// and calendar flags, rounded to cents (half away from zero).
//
// The base price must be positive; validating it is the caller's job. Unset
// multipliers count as 1.0 and unset bounds are not applied. When MinPrice is
// above MaxPrice the max clamp runs last and wins.
func ComputeDynamicPrice(basePrice decimal.Decimal, rules models.PricingRules, occupancyRate float64, isWeekend, isHoliday bool) decimal.Decimal {
	price := basePrice.Mul(multiplier(rules.SeasonalMultiplier))
	price = price.Mul(DemandFactor(occupancyRate))

	if isWeekend {
		price = price.Mul(multiplier(rules.WeekendMultiplier))
	}
	if isHoliday {
		price = price.Mul(multiplier(rules.HolidayMultiplier))
	}

	if floor, ok := bound(rules.MinPrice); ok && price.LessThan(floor) {
		price = floor
	}
	if ceiling, ok := bound(rules.MaxPrice); ok && price.GreaterThan(ceiling) {
		price = ceiling
	}

	return price.Round(2)
}

func multiplier(m float64) decimal.Decimal {
	if m <= 0 || math.IsNaN(m) || math.IsInf(m, 0) {
		return one
	}
	return decimal.NewFromFloat(m)
}

func bound(b decimal.NullDecimal) (decimal.Decimal, bool) {
	if !b.Valid || !b.Decimal.IsPositive() {
		return decimal.Decimal{}, false
	}
	return b.Decimal, true
}
