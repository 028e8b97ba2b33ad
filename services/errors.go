package services

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

var (
	ErrHotelNotFound          = errors.New("hotel not found")
	ErrRoomTypeNotFound       = errors.New("room type not found")
	ErrInvalidHotel           = errors.New("invalid hotel")
	ErrInvalidRoomType        = errors.New("invalid room type")
	ErrInvalidPricingRules    = errors.New("invalid pricing rules")
	ErrInvalidHotelStatus     = errors.New("invalid hotel status")
	ErrInvalidUpdateFrequency = errors.New("updateFrequency must be hourly, daily or weekly")
	ErrInvalidAvailability    = errors.New("availability must be between 0 and totalRooms")
	ErrPricingConflict        = errors.New("hotel pricing was updated concurrently")

	ErrBookingNotFound      = errors.New("booking not found")
	ErrInvalidBooking       = errors.New("invalid booking")
	ErrInvalidBookingStatus = errors.New("invalid booking status")
	ErrNoAvailability       = errors.New("no rooms available for this room type")

	ErrUserNotFound       = errors.New("user not found")
	ErrAdminNotFound      = errors.New("admin not found")
	ErrDuplicateEmail     = errors.New("an account with this email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountInactive    = errors.New("account is not active")
	ErrInvalidRole        = errors.New("invalid role")
	ErrInvalidStatus      = errors.New("invalid status")
	ErrNotHotelOwner      = errors.New("user is not a hotel owner")
	ErrSuperAdminOnly     = errors.New("only a super admin can change roles and permissions")
	ErrIncorrectPassword  = errors.New("current password is incorrect")
)

// isDuplicateKey recognises unique-index violations from MySQL, Postgres and sqlite.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return true
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") ||
		strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}
