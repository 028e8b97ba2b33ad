package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"hotel-marketplace/models"
)

// RoomTypeInput is a room type as submitted on hotel registration or update.
// Price is accepted as an alias of BasePrice.
type RoomTypeInput struct {
	ID           uint                 `json:"id"`
	Name         string               `json:"name" binding:"required"`
	BasePrice    decimal.Decimal      `json:"basePrice"`
	Price        decimal.Decimal      `json:"price"`
	CurrentPrice decimal.NullDecimal  `json:"currentPrice"`
	Capacity     int                  `json:"capacity" binding:"gte=0"`
	Amenities    []string             `json:"amenities"`
	Availability *int                 `json:"availability" binding:"omitempty,gte=0"`
	TotalRooms   *int                 `json:"totalRooms" binding:"omitempty,gte=0"`
	Description  string               `json:"description"`
	PricingRules *models.PricingRules `json:"pricingRules"`
}

type HotelInput struct {
	Name               string          `json:"name" binding:"required"`
	Location           string          `json:"location" binding:"required"`
	Description        string          `json:"description"`
	Image              string          `json:"image"`
	Amenities          []string        `json:"amenities"`
	RoomTypes          []RoomTypeInput `json:"roomTypes" binding:"dive"`
	OwnerName          string          `json:"ownerName" binding:"required"`
	OwnerEmail         string          `json:"ownerEmail" binding:"required,email"`
	OwnerPhone         string          `json:"ownerPhone" binding:"required"`
	Address            string          `json:"address" binding:"required"`
	RegistrationNumber string          `json:"registrationNumber"`

	OwnerID        *uint `json:"-"`
	CreatedBy      *uint `json:"-"`
	CreatedByAdmin bool  `json:"-"`
}

// HotelUpdateInput overwrites only the fields that are present. A non-nil
// RoomTypes replaces the hotel's room types: entries carrying the id of an
// existing room type update it in place, the rest are created, and existing
// room types missing from the list are removed.
type HotelUpdateInput struct {
	Name               *string         `json:"name"`
	Location           *string         `json:"location"`
	Description        *string         `json:"description"`
	Image              *string         `json:"image"`
	Amenities          []string        `json:"amenities"`
	Rating             *float64        `json:"rating" binding:"omitempty,gte=0,lte=5"`
	RoomTypes          []RoomTypeInput `json:"roomTypes" binding:"dive"`
	OwnerName          *string         `json:"ownerName"`
	OwnerEmail         *string         `json:"ownerEmail" binding:"omitempty,email"`
	OwnerPhone         *string         `json:"ownerPhone"`
	Address            *string         `json:"address"`
	RegistrationNumber *string         `json:"registrationNumber"`
	Status             *string         `json:"status" binding:"omitempty,hotelstatus"`
}

// OwnerHotelUpdateInput is what a hotel owner may change on their own hotel.
type OwnerHotelUpdateInput struct {
	Name               *string         `json:"name"`
	Location           *string         `json:"location"`
	Description        *string         `json:"description"`
	Image              *string         `json:"image"`
	Amenities          []string        `json:"amenities"`
	RoomTypes          []RoomTypeInput `json:"roomTypes" binding:"dive"`
	Address            *string         `json:"address"`
	RegistrationNumber *string         `json:"registrationNumber"`
}

func (in OwnerHotelUpdateInput) toUpdate() HotelUpdateInput {
	return HotelUpdateInput{
		Name:               in.Name,
		Location:           in.Location,
		Description:        in.Description,
		Image:              in.Image,
		Amenities:          in.Amenities,
		RoomTypes:          in.RoomTypes,
		Address:            in.Address,
		RegistrationNumber: in.RegistrationNumber,
	}
}

type VerifyHotelInput struct {
	Status            string `json:"status" binding:"required,hotelstatus"`
	VerificationNotes string `json:"verificationNotes"`
	RejectionReason   string `json:"rejectionReason"`
}

// PricingRulesPatch overwrites the rule fields that are present and leaves the
// others alone.
type PricingRulesPatch struct {
	SeasonalMultiplier *float64         `json:"seasonalMultiplier" binding:"omitempty,gt=0"`
	DemandMultiplier   *float64         `json:"demandMultiplier" binding:"omitempty,gt=0"`
	WeekendMultiplier  *float64         `json:"weekendMultiplier" binding:"omitempty,gt=0"`
	HolidayMultiplier  *float64         `json:"holidayMultiplier" binding:"omitempty,gt=0"`
	MinPrice           *decimal.Decimal `json:"minPrice"`
	MaxPrice           *decimal.Decimal `json:"maxPrice"`
}

func (p PricingRulesPatch) apply(rules *models.PricingRules) error {
	for name, m := range map[string]*float64{
		"seasonalMultiplier": p.SeasonalMultiplier,
		"demandMultiplier":   p.DemandMultiplier,
		"weekendMultiplier":  p.WeekendMultiplier,
		"holidayMultiplier":  p.HolidayMultiplier,
	} {
		if m != nil && *m <= 0 {
			return fmt.Errorf("%w: %s must be positive", ErrInvalidPricingRules, name)
		}
	}
	if p.MinPrice != nil && !p.MinPrice.IsPositive() {
		return fmt.Errorf("%w: minPrice must be positive", ErrInvalidPricingRules)
	}
	if p.MaxPrice != nil && !p.MaxPrice.IsPositive() {
		return fmt.Errorf("%w: maxPrice must be positive", ErrInvalidPricingRules)
	}

	if p.SeasonalMultiplier != nil {
		rules.SeasonalMultiplier = *p.SeasonalMultiplier
	}
	if p.DemandMultiplier != nil {
		rules.DemandMultiplier = *p.DemandMultiplier
	}
	if p.WeekendMultiplier != nil {
		rules.WeekendMultiplier = *p.WeekendMultiplier
	}
	if p.HolidayMultiplier != nil {
		rules.HolidayMultiplier = *p.HolidayMultiplier
	}
	if p.MinPrice != nil {
		rules.MinPrice = decimal.NewNullDecimal(*p.MinPrice)
	}
	if p.MaxPrice != nil {
		rules.MaxPrice = decimal.NewNullDecimal(*p.MaxPrice)
	}
	return nil
}

type RoomTypeRulesInput struct {
	RoomTypeID   uint               `json:"roomTypeId" binding:"required"`
	PricingRules *PricingRulesPatch `json:"pricingRules"`
}

type PricingSettingsInput struct {
	AutoPricingEnabled *bool                `json:"autoPricingEnabled"`
	UpdateFrequency    string               `json:"updateFrequency" binding:"omitempty,updatefreq"`
	RoomTypeSettings   []RoomTypeRulesInput `json:"roomTypeSettings" binding:"dive"`
}

func validateRules(name string, r models.PricingRules) error {
	for _, m := range []float64{r.SeasonalMultiplier, r.DemandMultiplier, r.WeekendMultiplier, r.HolidayMultiplier} {
		if m < 0 {
			return fmt.Errorf("%w: %q has a negative multiplier", ErrInvalidPricingRules, name)
		}
	}
	if r.MinPrice.Valid && r.MinPrice.Decimal.IsNegative() {
		return fmt.Errorf("%w: %q minPrice is negative", ErrInvalidPricingRules, name)
	}
	if r.MaxPrice.Valid && r.MaxPrice.Decimal.IsNegative() {
		return fmt.Errorf("%w: %q maxPrice is negative", ErrInvalidPricingRules, name)
	}
	return nil
}

// buildRoomType turns an input into a RoomType, seeding defaults the way
// registration always has: capacity 2, one room, current price = base price
// and min/max at 70%/200% of the base price.
func buildRoomType(in RoomTypeInput, now time.Time) (models.RoomType, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return models.RoomType{}, fmt.Errorf("%w: name is required", ErrInvalidRoomType)
	}

	base := in.BasePrice
	if base.IsZero() {
		base = in.Price
	}
	if !base.IsPositive() {
		return models.RoomType{}, fmt.Errorf("%w: %q basePrice must be greater than zero", ErrInvalidRoomType, name)
	}

	current := base
	if in.CurrentPrice.Valid && in.CurrentPrice.Decimal.IsPositive() {
		current = in.CurrentPrice.Decimal
	}

	capacity := in.Capacity
	if capacity <= 0 {
		capacity = 2
	}

	availability := 1
	if in.Availability != nil {
		availability = *in.Availability
	}
	total := availability
	if in.TotalRooms != nil {
		total = *in.TotalRooms
	} else if total < 1 {
		total = 1
	}
	if availability < 0 || total < 0 || availability > total {
		return models.RoomType{}, fmt.Errorf("%w: %q availability %d must be between 0 and totalRooms %d", ErrInvalidRoomType, name, availability, total)
	}

	rules := models.DefaultPricingRules(base, now)
	if in.PricingRules != nil {
		rules = *in.PricingRules
		if err := validateRules(name, rules); err != nil {
			return models.RoomType{}, err
		}
		if rules.LastUpdated.IsZero() {
			rules.LastUpdated = now
		}
	}

	amenities := in.Amenities
	if amenities == nil {
		amenities = []string{}
	}

	return models.RoomType{
		ID:           in.ID,
		Name:         name,
		BasePrice:    base,
		CurrentPrice: current,
		Capacity:     capacity,
		Amenities:    amenities,
		Availability: availability,
		TotalRooms:   total,
		Description:  strings.TrimSpace(in.Description),
		PricingRules: rules,
	}, nil
}
