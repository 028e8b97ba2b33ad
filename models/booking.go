package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
	BookingStatusCompleted = "completed"
)

func IsValidBookingStatus(s string) bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled, BookingStatusCompleted:
		return true
	}
	return false
}

// HoldsRoom reports whether a booking in this status keeps one room of its
// room type out of the available inventory.
func HoldsRoom(status string) bool {
	return status == BookingStatusPending || status == BookingStatusConfirmed
}

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ReferenceCode string `gorm:"column:reference_code;uniqueIndex;size:64" json:"referenceCode"`

	UserID     uint `gorm:"index;column:user_id" json:"userId"`
	HotelID    uint `gorm:"index;column:hotel_id" json:"hotelId"`
	RoomTypeID uint `gorm:"index;column:room_type_id" json:"roomTypeId"`

	// denormalised at booking time
	UserName     string `gorm:"size:255" json:"userName"`
	UserEmail    string `gorm:"size:150" json:"userEmail"`
	HotelName    string `gorm:"size:255" json:"hotelName"`
	RoomTypeName string `gorm:"size:150" json:"roomTypeName"`

	CheckIn    time.Time       `gorm:"column:check_in" json:"checkIn"`
	CheckOut   time.Time       `gorm:"column:check_out" json:"checkOut"`
	Nights     int             `json:"nights"`
	Guests     int             `json:"guests"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(12,2)" json:"unitPrice"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(12,2)" json:"totalPrice"`
	Status     string          `gorm:"size:32;index" json:"status"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	User  *User  `gorm:"foreignKey:UserID;references:ID" json:"user,omitempty"`
	Hotel *Hotel `gorm:"foreignKey:HotelID;references:ID" json:"hotel,omitempty"`
}
