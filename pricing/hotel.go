package pricing

import (
	"time"

	"hotel-marketplace/models"
)

// OccupancyRate is the booked fraction of a room type's inventory. A room type
// with no rooms counts as empty (0) so it is still priced, at the low end of
// the demand curve. The result is kept inside [0,1] when availability is
// outside [0,totalRooms].
func OccupancyRate(totalRooms, availability int) float64 {
	if totalRooms <= 0 {
		return 0
	}
	rate := float64(totalRooms-availability) / float64(totalRooms)
	if rate < 0 {
		return 0
	}
	if rate > 1 {
		return 1
	}
	return rate
}

// PriceRoomType recomputes rt's price for the given day flags. CurrentPrice and
// LastUpdated are only touched when the new price is outside the hysteresis
// band; the return value reports whether that happened.
func PriceRoomType(rt *models.RoomType, cal Calendar, now time.Time) bool {
	occupancy := OccupancyRate(rt.TotalRooms, rt.Availability)
	newPrice := ComputeDynamicPrice(rt.BasePrice, rt.PricingRules, occupancy, cal.Weekend, cal.Holiday)

	if newPrice.Sub(rt.CurrentPrice).Abs().LessThanOrEqual(ChangeThreshold) {
		return false
	}
	rt.CurrentPrice = newPrice
	rt.PricingRules.LastUpdated = now
	return true
}

// UpdateHotelPricing reprices every room type of hotel as of now and reports
// whether any of them changed. When one did, the hotel's LastPriceUpdate is set
// to now as well and the caller must persist the hotel.
//
// The auto-pricing switch is not consulted here; callers decide whether the
// hotel is eligible.
func UpdateHotelPricing(hotel *models.Hotel, now time.Time) bool {
	cal := CalendarFor(now)

	updated := false
	for i := range hotel.RoomTypes {
		if PriceRoomType(&hotel.RoomTypes[i], cal, now) {
			updated = true
		}
	}

	if updated {
		hotel.PricingSettings.LastPriceUpdate = now
	}
	return updated
}

// Engine binds UpdateHotelPricing to a clock and the location used to decide
// weekends and holidays.
type Engine struct {
	Location *time.Location
	Clock    func() time.Time
}

// NewEngine returns an engine on the wall clock. A nil location means the
// process's local time zone.
func NewEngine(loc *time.Location) *Engine {
	if loc == nil {
		loc = time.Local
	}
	return &Engine{Location: loc, Clock: time.Now}
}

// Now is the engine's current time in its pricing location.
func (e *Engine) Now() time.Time {
	clock := e.Clock
	if clock == nil {
		clock = time.Now
	}
	loc := e.Location
	if loc == nil {
		loc = time.Local
	}
	return clock().In(loc)
}

// Update reprices hotel as of Now.
func (e *Engine) Update(hotel *models.Hotel) bool {
	return UpdateHotelPricing(hotel, e.Now())
}
