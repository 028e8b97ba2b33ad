// services/booking_service.go
package services

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"hotel-marketplace/models"
)

// BookingService เป็น wrapper รอบ *gorm.DB เพื่อแยก logic ของ booking
type BookingService struct {
	DB *gorm.DB
}

func NewBookingService(db *gorm.DB) *BookingService {
	return &BookingService{DB: db}
}

type CreateBookingInput struct {
	UserID     uint
	HotelID    uint
	RoomTypeID uint
	CheckIn    time.Time
	CheckOut   time.Time
	Guests     int
}

// Nights counts started 24h periods between check-in and check-out.
func Nights(checkIn, checkOut time.Time) int {
	return int(math.Ceil(checkOut.Sub(checkIn).Hours() / 24))
}

// reserveRoom takes one room of the room type out of inventory.
func reserveRoom(tx *gorm.DB, roomTypeID uint) error {
	res := tx.Model(&models.RoomType{}).
		Where("id = ? AND availability > 0", roomTypeID).
		Update("availability", gorm.Expr("availability - 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNoAvailability
	}
	return nil
}

// releaseRoom puts one room back, never above the room type's total.
func releaseRoom(tx *gorm.DB, roomTypeID uint) error {
	return tx.Model(&models.RoomType{}).
		Where("id = ? AND availability < total_rooms", roomTypeID).
		Update("availability", gorm.Expr("availability + 1")).Error
}

// CreateBooking prices the stay at the room type's current price and holds one
// room for it.
func (s *BookingService) CreateBooking(in CreateBookingInput) (*models.Booking, error) {
	if !in.CheckOut.After(in.CheckIn) {
		return nil, fmt.Errorf("%w: checkOut must be after checkIn", ErrInvalidBooking)
	}
	guests := in.Guests
	if guests <= 0 {
		guests = 1
	}

	var booking models.Booking
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, in.UserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		var hotel models.Hotel
		if err := tx.First(&hotel, in.HotelID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrHotelNotFound
			}
			return err
		}

		var rt models.RoomType
		if err := tx.Where("id = ? AND hotel_id = ?", in.RoomTypeID, hotel.ID).First(&rt).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRoomTypeNotFound
			}
			return err
		}
		if rt.Capacity > 0 && guests > rt.Capacity {
			return fmt.Errorf("%w: %q sleeps at most %d guests", ErrInvalidBooking, rt.Name, rt.Capacity)
		}

		if err := reserveRoom(tx, rt.ID); err != nil {
			return err
		}

		nights := Nights(in.CheckIn, in.CheckOut)
		booking = models.Booking{
			ReferenceCode: strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:12]),
			UserID:        user.ID,
			HotelID:       hotel.ID,
			RoomTypeID:    rt.ID,
			UserName:      user.Name,
			UserEmail:     user.Email,
			HotelName:     hotel.Name,
			RoomTypeName:  rt.Name,
			CheckIn:       in.CheckIn,
			CheckOut:      in.CheckOut,
			Nights:        nights,
			Guests:        guests,
			UnitPrice:     rt.CurrentPrice,
			TotalPrice:    rt.CurrentPrice.Mul(decimal.NewFromInt(int64(nights))),
			Status:        models.BookingStatusPending,
		}
		return tx.Create(&booking).Error
	})
	if err != nil {
		if errors.Is(err, ErrUserNotFound) || errors.Is(err, ErrHotelNotFound) ||
			errors.Is(err, ErrRoomTypeNotFound) || errors.Is(err, ErrNoAvailability) ||
			errors.Is(err, ErrInvalidBooking) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}
	return &booking, nil
}

func (s *BookingService) GetByID(id uint) (*models.Booking, error) {
	var bk models.Booking
	if err := s.DB.First(&bk, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to retrieve booking %d: %w", id, err)
	}
	return &bk, nil
}

// ListAll returns every booking with its user and hotel, newest first.
func (s *BookingService) ListAll() ([]models.Booking, error) {
	var list []models.Booking
	if err := s.DB.
		Preload("User").
		Preload("Hotel").
		Order("created_at DESC").Order("id DESC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve bookings: %w", err)
	}
	return list, nil
}

func (s *BookingService) ListForUser(userID uint) ([]models.Booking, error) {
	var list []models.Booking
	if err := s.DB.
		Preload("Hotel").
		Where("user_id = ?", userID).
		Order("created_at DESC").Order("id DESC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve bookings of user %d: %w", userID, err)
	}
	return list, nil
}

// UpdateStatus moves a booking to status, releasing its room when it stops
// holding one and reserving it again when a cancelled booking is revived.
func (s *BookingService) UpdateStatus(id uint, status string) (*models.Booking, error) {
	if !models.IsValidBookingStatus(status) {
		return nil, ErrInvalidBookingStatus
	}

	var bk models.Booking
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&bk, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}

		wasHolding, willHold := models.HoldsRoom(bk.Status), models.HoldsRoom(status)
		switch {
		case wasHolding && !willHold:
			if err := releaseRoom(tx, bk.RoomTypeID); err != nil {
				return err
			}
		case !wasHolding && willHold:
			if err := reserveRoom(tx, bk.RoomTypeID); err != nil {
				return err
			}
		}

		bk.Status = status
		return tx.Model(&bk).Update("status", status).Error
	})
	if err != nil {
		if errors.Is(err, ErrBookingNotFound) || errors.Is(err, ErrNoAvailability) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update booking %d: %w", id, err)
	}
	return &bk, nil
}

func (s *BookingService) Delete(id uint) error {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var bk models.Booking
		if err := tx.First(&bk, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}
		if models.HoldsRoom(bk.Status) {
			if err := releaseRoom(tx, bk.RoomTypeID); err != nil {
				return err
			}
		}
		return tx.Delete(&bk).Error
	})
	if err != nil {
		if errors.Is(err, ErrBookingNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete booking %d: %w", id, err)
	}
	return nil
}
