package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hotel-marketplace/models"
	"hotel-marketplace/pricing"
)

// a Wednesday that is not a holiday
var testNow = time.Date(2024, time.March, 13, 10, 0, 0, 0, time.UTC)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every connection to :memory: is its own database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.Hotel{},
		&models.RoomType{},
		&models.User{},
		&models.Admin{},
		&models.Booking{},
		&models.LoginLog{},
	))
	return db
}

func fixedEngine(now time.Time) *pricing.Engine {
	return &pricing.Engine{Location: time.UTC, Clock: func() time.Time { return now }}
}

func intPtr(v int) *int { return &v }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func sampleHotel(rooms ...RoomTypeInput) HotelInput {
	return HotelInput{
		Name:        "Hotel Yak & Yeti",
		Location:    "Kathmandu",
		Description: "Heritage hotel in Durbar Marg",
		Amenities:   []string{"wifi", "pool"},
		RoomTypes:   rooms,
		OwnerName:   "Ram Shrestha",
		OwnerEmail:  "owner@yakandyeti.test",
		OwnerPhone:  "+977-1-4248999",
		Address:     "Durbar Marg, Kathmandu",
	}
}

// createActiveHotel registers a hotel and approves it.
func createActiveHotel(t *testing.T, svc *HotelService, rooms ...RoomTypeInput) *models.Hotel {
	t.Helper()
	hotel, err := svc.CreateHotel(sampleHotel(rooms...))
	require.NoError(t, err)
	hotel, err = svc.VerifyHotel(hotel.ID, VerifyHotelInput{Status: models.HotelStatusActive}, 1)
	require.NoError(t, err)
	return hotel
}
