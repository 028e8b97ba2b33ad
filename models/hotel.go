package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	HotelStatusPending  = "pending"
	HotelStatusActive   = "active"
	HotelStatusInactive = "inactive"
	HotelStatusRejected = "rejected"
)

func IsValidHotelStatus(s string) bool {
	switch s {
	case HotelStatusPending, HotelStatusActive, HotelStatusInactive, HotelStatusRejected:
		return true
	}
	return false
}

const (
	UpdateFrequencyHourly = "hourly"
	UpdateFrequencyDaily  = "daily"
	UpdateFrequencyWeekly = "weekly"
)

func IsValidUpdateFrequency(s string) bool {
	switch s {
	case UpdateFrequencyHourly, UpdateFrequencyDaily, UpdateFrequencyWeekly:
		return true
	}
	return false
}

// PricingSettings is stored inline on the hotels table with the "pricing_" prefix.
// UpdateFrequency is informational; nothing in this service schedules on it.
type PricingSettings struct {
	AutoPricingEnabled bool      `gorm:"column:auto_pricing_enabled" json:"autoPricingEnabled"`
	UpdateFrequency    string    `gorm:"column:update_frequency;size:16" json:"updateFrequency"`
	LastPriceUpdate    time.Time `gorm:"column:last_price_update" json:"lastPriceUpdate"`
}

type Hotel struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string                      `gorm:"size:255;not null" json:"name"`
	Location    string                      `gorm:"size:255;not null;index" json:"location"`
	Description string                      `gorm:"type:text" json:"description"`
	Image       string                      `gorm:"size:512" json:"image"`
	Amenities   datatypes.JSONSlice[string] `json:"amenities"`
	Rating      float64                     `json:"rating"`
	Status      string                      `gorm:"size:20;index" json:"status"`

	RoomTypes       []RoomType      `gorm:"foreignKey:HotelID;constraint:OnDelete:CASCADE" json:"roomTypes"`
	PricingSettings PricingSettings `gorm:"embedded;embeddedPrefix:pricing_" json:"pricingSettings"`
	// PriceVersion is bumped on every persisted repricing; a writer holding an
	// older version loses.
	PriceVersion uint `gorm:"not null;default:0" json:"-"`

	OwnerName          string                      `gorm:"size:255" json:"ownerName"`
	OwnerEmail         string                      `gorm:"size:150" json:"ownerEmail"`
	OwnerPhone         string                      `gorm:"size:50" json:"ownerPhone"`
	OwnerID            *uint                       `gorm:"index" json:"ownerId,omitempty"`
	Address            string                      `gorm:"type:text" json:"address"`
	RegistrationNumber string                      `gorm:"size:100" json:"registrationNumber,omitempty"`
	Documents          datatypes.JSONSlice[string] `json:"documents"`

	VerificationNotes string     `gorm:"type:text" json:"verificationNotes,omitempty"`
	VerifiedBy        *uint      `json:"verifiedBy,omitempty"`
	VerifiedAt        *time.Time `json:"verifiedAt,omitempty"`
	RejectionReason   string     `gorm:"type:text" json:"rejectionReason,omitempty"`

	CreatedByAdmin bool  `json:"createdByAdmin,omitempty"`
	CreatedBy      *uint `json:"createdBy,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
