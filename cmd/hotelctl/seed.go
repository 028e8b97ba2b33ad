package main

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"hotel-marketplace/models"
	"hotel-marketplace/pricing"
	"hotel-marketplace/services"
)

type sampleHotel struct {
	Name        string
	Location    string
	Price       int64
	Description string
	Amenities   []string
	Rating      float64
}

var sampleHotels = []sampleHotel{
	{"Hotel Yak & Yeti", "Kathmandu", 150, "Luxury 5-star hotel in the heart of Kathmandu with world-class amenities and service.",
		[]string{"WiFi", "Pool", "Spa", "Restaurant", "Gym", "Parking"}, 4.8},
	{"Dwarika's Hotel", "Kathmandu", 200, "Heritage hotel showcasing traditional Newari architecture and culture.",
		[]string{"WiFi", "Pool", "Spa", "Restaurant", "Cultural Tours", "Parking"}, 4.9},
	{"Hotel Annapurna", "Kathmandu", 120, "Elegant hotel with stunning mountain views and excellent dining options.",
		[]string{"WiFi", "Restaurant", "Bar", "Conference Room", "Parking"}, 4.5},
	{"Temple Tree Resort & Spa", "Pokhara", 180, "Boutique resort with lake views, spa facilities, and serene atmosphere.",
		[]string{"WiFi", "Pool", "Spa", "Lake View", "Restaurant", "Yoga"}, 4.7},
	{"Fishtail Lodge", "Pokhara", 160, "Unique lakeside resort accessible only by boat, offering tranquility and nature.",
		[]string{"WiFi", "Lake View", "Restaurant", "Garden", "Boat Access"}, 4.6},
	{"Hotel Barahi", "Pokhara", 140, "Lakeside hotel with panoramic views of Phewa Lake and Annapurna range.",
		[]string{"WiFi", "Pool", "Restaurant", "Lake View", "Parking"}, 4.4},
	{"Gokarna Forest Resort", "Kathmandu Valley", 190, "Golf and spa resort set in a protected forest on the edge of the valley.",
		[]string{"WiFi", "Golf", "Spa", "Restaurant", "Parking"}, 4.8},
	{"Nagarkot Sunshine Hotel", "Nagarkot", 85, "Hilltop hotel known for Himalayan sunrise views.",
		[]string{"WiFi", "Mountain View", "Restaurant", "Parking"}, 4.4},
	{"Chitwan Adventure Resort", "Chitwan", 120, "Jungle resort close to Chitwan National Park safaris.",
		[]string{"WiFi", "Pool", "Jungle Safari", "Restaurant"}, 4.5},
}

func intPtr(v int) *int { return &v }

// sampleRoomTypes derives a standard and a deluxe room type from a nightly price.
func sampleRoomTypes(price int64) []services.RoomTypeInput {
	base := decimal.NewFromInt(price)
	return []services.RoomTypeInput{
		{Name: "Standard", BasePrice: base, Capacity: 2, Availability: intPtr(6), TotalRooms: intPtr(10),
			Amenities: []string{"WiFi", "TV"}},
		{Name: "Deluxe", BasePrice: base.Mul(decimal.NewFromFloat(1.5)), Capacity: 3, Availability: intPtr(2), TotalRooms: intPtr(5),
			Amenities: []string{"WiFi", "TV", "Balcony", "Minibar"}},
	}
}

func seedHotels(db *gorm.DB, svc *services.HotelService, force bool) (int, error) {
	var count int64
	if err := db.Model(&models.Hotel{}).Count(&count).Error; err != nil {
		return 0, err
	}
	if count > 0 && !force {
		return 0, nil
	}

	created := 0
	for _, s := range sampleHotels {
		hotel, err := svc.CreateHotel(services.HotelInput{
			Name:        s.Name,
			Location:    s.Location,
			Description: s.Description,
			Amenities:   s.Amenities,
			RoomTypes:   sampleRoomTypes(s.Price),
			OwnerName:   s.Name + " Management",
			OwnerEmail:  "owner@example.com",
			OwnerPhone:  "+977-1-0000000",
			Address:     s.Location + ", Nepal",
		})
		if err != nil {
			return created, fmt.Errorf("seed %s: %w", s.Name, err)
		}
		rating := s.Rating
		if _, err := svc.UpdateHotel(hotel.ID, services.HotelUpdateInput{Rating: &rating}); err != nil {
			return created, fmt.Errorf("seed %s: %w", s.Name, err)
		}
		if _, err := svc.VerifyHotel(hotel.ID, services.VerifyHotelInput{
			Status:            models.HotelStatusActive,
			VerificationNotes: "seeded",
		}, 0); err != nil {
			return created, fmt.Errorf("seed %s: %w", s.Name, err)
		}
		created++
	}
	return created, nil
}

func SeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert sample active hotels when the hotels table is empty",
		RunE: func(cmd *cobra.Command, args []string) error {
			force, _ := cmd.Flags().GetBool("force")

			db, err := getDB()
			if err != nil {
				return err
			}

			n, err := seedHotels(db, services.NewHotelService(db, pricing.NewEngine(nil)), force)
			if err != nil {
				return err
			}
			if n == 0 {
				fmt.Println("Hotels already seeded, use --force to add the samples again")
				return nil
			}
			fmt.Printf("Seeded %d hotels\n", n)
			return nil
		},
	}

	cmd.Flags().Bool("force", false, "Seed even when hotels already exist")

	return cmd
}
