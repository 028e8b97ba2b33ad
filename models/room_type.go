package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

func init() {
	// prices travel as JSON numbers, not quoted strings
	decimal.MarshalJSONWithoutQuotes = true
}

// Defaults seeded into the pricing rules of a newly registered room type.
const (
	DefaultSeasonalMultiplier = 1.0
	DefaultDemandMultiplier   = 1.0
	DefaultWeekendMultiplier  = 1.2
	DefaultHolidayMultiplier  = 1.5
)

var (
	minPriceRatio = decimal.NewFromFloat(0.7)
	maxPriceRatio = decimal.NewFromInt(2)
)

// PricingRules is stored inline on the room_types table with the "rule_" prefix.
type PricingRules struct {
	SeasonalMultiplier float64 `gorm:"column:seasonal_multiplier" json:"seasonalMultiplier"`
	// DemandMultiplier is kept for reporting only; the price computation derives
	// its own demand factor from occupancy.
	DemandMultiplier  float64             `gorm:"column:demand_multiplier" json:"demandMultiplier"`
	WeekendMultiplier float64             `gorm:"column:weekend_multiplier" json:"weekendMultiplier"`
	HolidayMultiplier float64             `gorm:"column:holiday_multiplier" json:"holidayMultiplier"`
	MinPrice          decimal.NullDecimal `gorm:"column:min_price;type:decimal(12,2)" json:"minPrice"`
	MaxPrice          decimal.NullDecimal `gorm:"column:max_price;type:decimal(12,2)" json:"maxPrice"`
	LastUpdated       time.Time           `gorm:"column:last_updated" json:"lastUpdated"`
}

// DefaultPricingRules returns the rules a room type gets when it is registered
// without explicit ones: min 70% and max 200% of the base price.
func DefaultPricingRules(basePrice decimal.Decimal, now time.Time) PricingRules {
	return PricingRules{
		SeasonalMultiplier: DefaultSeasonalMultiplier,
		DemandMultiplier:   DefaultDemandMultiplier,
		WeekendMultiplier:  DefaultWeekendMultiplier,
		HolidayMultiplier:  DefaultHolidayMultiplier,
		MinPrice:           decimal.NewNullDecimal(basePrice.Mul(minPriceRatio).Round(2)),
		MaxPrice:           decimal.NewNullDecimal(basePrice.Mul(maxPriceRatio).Round(2)),
		LastUpdated:        now,
	}
}

// RoomType belongs to exactly one Hotel.
type RoomType struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	HotelID uint `gorm:"index;not null" json:"hotelId"`

	Name         string                      `gorm:"size:150;not null" json:"name"`
	BasePrice    decimal.Decimal             `gorm:"type:decimal(12,2);not null" json:"basePrice"`
	CurrentPrice decimal.Decimal             `gorm:"type:decimal(12,2);not null" json:"currentPrice"`
	Capacity     int                         `json:"capacity"`
	Amenities    datatypes.JSONSlice[string] `json:"amenities"`
	Availability int                         `json:"availability"`
	TotalRooms   int                         `json:"totalRooms"`
	Description  string                      `gorm:"type:text" json:"description"`

	PricingRules PricingRules `gorm:"embedded;embeddedPrefix:rule_" json:"pricingRules"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
