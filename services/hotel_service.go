package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hotel-marketplace/models"
	"hotel-marketplace/pricing"
)

// HotelService เป็น wrapper รอบ *gorm.DB สำหรับ hotel และ room type.
// Room types are repriced lazily on non-admin reads, on an explicit refresh,
// or in a batch.
type HotelService struct {
	DB     *gorm.DB
	Engine *pricing.Engine
}

func NewHotelService(db *gorm.DB, engine *pricing.Engine) *HotelService {
	if engine == nil {
		engine = pricing.NewEngine(nil)
	}
	return &HotelService{DB: db, Engine: engine}
}

func withRoomTypes(db *gorm.DB) *gorm.DB {
	return db.Preload("RoomTypes", func(db *gorm.DB) *gorm.DB {
		return db.Order("room_types.id ASC")
	})
}

func (s *HotelService) load(db *gorm.DB, id uint) (*models.Hotel, error) {
	var hotel models.Hotel
	if err := withRoomTypes(db).First(&hotel, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHotelNotFound
		}
		return nil, fmt.Errorf("failed to load hotel %d: %w", id, err)
	}
	return &hotel, nil
}

// ---------------------------
// Repricing
// ---------------------------

// applyPricing is the single place the auto-pricing switch is checked.
func (s *HotelService) applyPricing(db *gorm.DB, hotel *models.Hotel) (bool, error) {
	if !hotel.PricingSettings.AutoPricingEnabled {
		return false, nil
	}
	if !s.Engine.Update(hotel) {
		return false, nil
	}
	if err := s.savePricing(db, hotel); err != nil {
		return false, err
	}
	return true, nil
}

// savePricing writes the repriced room types and the hotel's last price update
// in one transaction, guarded by PriceVersion.
func (s *HotelService) savePricing(db *gorm.DB, hotel *models.Hotel) error {
	changedAt := hotel.PricingSettings.LastPriceUpdate

	err := db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Hotel{}).
			Where("id = ? AND price_version = ?", hotel.ID, hotel.PriceVersion).
			Updates(map[string]interface{}{
				"pricing_last_price_update": changedAt,
				"price_version":             hotel.PriceVersion + 1,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrPricingConflict
		}

		for i := range hotel.RoomTypes {
			rt := &hotel.RoomTypes[i]
			if !rt.PricingRules.LastUpdated.Equal(changedAt) {
				continue
			}
			if err := tx.Model(&models.RoomType{}).Where("id = ?", rt.ID).Updates(map[string]interface{}{
				"current_price":     rt.CurrentPrice,
				"rule_last_updated": rt.PricingRules.LastUpdated,
			}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrPricingConflict) {
			return err
		}
		return fmt.Errorf("failed to save pricing for hotel %d: %w", hotel.ID, err)
	}

	hotel.PriceVersion++
	return nil
}

// repriceForRead reprices a hotel about to be served. Losing a race with a
// concurrent repricing is not an error for a read: the stored record is served.
func (s *HotelService) repriceForRead(hotel *models.Hotel) error {
	_, err := s.applyPricing(s.DB, hotel)
	if errors.Is(err, ErrPricingConflict) {
		log.Printf("⚠️  hotel %d was repriced concurrently, serving stored prices", hotel.ID)
		fresh, lErr := s.load(s.DB, hotel.ID)
		if lErr != nil {
			return lErr
		}
		*hotel = *fresh
		return nil
	}
	return err
}

// RefreshPricing reprices one hotel on demand and reports whether anything
// changed. Hotels with auto pricing switched off are returned untouched.
func (s *HotelService) RefreshPricing(id uint) (*models.Hotel, bool, error) {
	return s.refresh(s.DB, id)
}

func (s *HotelService) refresh(db *gorm.DB, id uint) (*models.Hotel, bool, error) {
	hotel, err := s.load(db, id)
	if err != nil {
		return nil, false, err
	}
	updated, err := s.applyPricing(db, hotel)
	if err != nil {
		return nil, false, err
	}
	return hotel, updated, nil
}

type BatchResult struct {
	Scanned int `json:"scanned"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
}

// RepriceActiveHotels reprices every active hotel with auto pricing enabled,
// up to workers hotels at a time. Each hotel is persisted in its own
// transaction; hotels that vanished or were repriced concurrently are skipped.
func (s *HotelService) RepriceActiveHotels(ctx context.Context, workers int) (BatchResult, error) {
	if workers < 1 {
		workers = 1
	}

	var ids []uint
	if err := s.DB.WithContext(ctx).Model(&models.Hotel{}).
		Where("status = ? AND pricing_auto_pricing_enabled = ?", models.HotelStatusActive, true).
		Order("id ASC").
		Pluck("id", &ids).Error; err != nil {
		return BatchResult{}, fmt.Errorf("failed to list hotels for repricing: %w", err)
	}

	result := BatchResult{Scanned: len(ids)}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, id := range ids {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			_, updated, err := s.refresh(s.DB.WithContext(gctx), id)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case errors.Is(err, ErrPricingConflict), errors.Is(err, ErrHotelNotFound):
				log.Printf("⚠️  skipped repricing hotel %d: %v", id, err)
				result.Skipped++
				return nil
			case err != nil:
				return fmt.Errorf("hotel %d: %w", id, err)
			}
			if updated {
				result.Updated++
			}
			return nil
		})
	}

	err := g.Wait()
	return result, err
}

// ---------------------------
// Reads
// ---------------------------

// ListHotels returns hotels newest first. The admin view sees every status and
// stored prices as they are; everyone else sees active hotels, repriced.
func (s *HotelService) ListHotels(adminView bool) ([]models.Hotel, error) {
	q := withRoomTypes(s.DB).Order("created_at DESC").Order("id DESC")
	if !adminView {
		q = q.Where("status = ?", models.HotelStatusActive)
	}

	var hotels []models.Hotel
	if err := q.Find(&hotels).Error; err != nil {
		return nil, fmt.Errorf("failed to list hotels: %w", err)
	}
	if adminView {
		return hotels, nil
	}

	for i := range hotels {
		if err := s.repriceForRead(&hotels[i]); err != nil {
			return nil, err
		}
	}
	return hotels, nil
}

// ListOwnerHotels returns an owner's hotels in every status with stored
// prices, newest first.
func (s *HotelService) ListOwnerHotels(ownerID uint) ([]models.Hotel, error) {
	var hotels []models.Hotel
	if err := withRoomTypes(s.DB).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").Order("id DESC").
		Find(&hotels).Error; err != nil {
		return nil, fmt.Errorf("failed to list hotels of owner %d: %w", ownerID, err)
	}
	return hotels, nil
}

func (s *HotelService) ListPendingHotels() ([]models.Hotel, error) {
	var hotels []models.Hotel
	if err := withRoomTypes(s.DB).
		Where("status = ?", models.HotelStatusPending).
		Order("created_at DESC").Order("id DESC").
		Find(&hotels).Error; err != nil {
		return nil, fmt.Errorf("failed to list pending hotels: %w", err)
	}
	return hotels, nil
}

func (s *HotelService) GetHotel(id uint, adminView bool) (*models.Hotel, error) {
	hotel, err := s.load(s.DB, id)
	if err != nil {
		return nil, err
	}
	if !adminView {
		if err := s.repriceForRead(hotel); err != nil {
			return nil, err
		}
	}
	return hotel, nil
}

// ---------------------------
// Writes
// ---------------------------

func (s *HotelService) CreateHotel(in HotelInput) (*models.Hotel, error) {
	now := s.Engine.Now()

	roomTypes := make([]models.RoomType, 0, len(in.RoomTypes))
	for _, rin := range in.RoomTypes {
		rin.ID = 0
		rt, err := buildRoomType(rin, now)
		if err != nil {
			return nil, err
		}
		roomTypes = append(roomTypes, rt)
	}

	amenities := in.Amenities
	if amenities == nil {
		amenities = []string{}
	}

	hotel := models.Hotel{
		Name:               strings.TrimSpace(in.Name),
		Location:           strings.TrimSpace(in.Location),
		Description:        in.Description,
		Image:              in.Image,
		Amenities:          amenities,
		Status:             models.HotelStatusPending, // every registration goes through verification
		RoomTypes:          roomTypes,
		OwnerName:          strings.TrimSpace(in.OwnerName),
		OwnerEmail:         strings.TrimSpace(in.OwnerEmail),
		OwnerPhone:         strings.TrimSpace(in.OwnerPhone),
		OwnerID:            in.OwnerID,
		Address:            strings.TrimSpace(in.Address),
		RegistrationNumber: strings.TrimSpace(in.RegistrationNumber),
		Documents:          []string{},
		CreatedBy:          in.CreatedBy,
		CreatedByAdmin:     in.CreatedByAdmin,
		PricingSettings: models.PricingSettings{
			AutoPricingEnabled: true,
			UpdateFrequency:    models.UpdateFrequencyDaily,
			LastPriceUpdate:    now,
		},
	}
	if hotel.Name == "" || hotel.Location == "" {
		return nil, fmt.Errorf("%w: name and location are required", ErrInvalidHotel)
	}

	if err := s.DB.Create(&hotel).Error; err != nil {
		return nil, fmt.Errorf("failed to create hotel: %w", err)
	}
	return &hotel, nil
}

func (s *HotelService) UpdateHotel(id uint, in HotelUpdateInput) (*models.Hotel, error) {
	return s.updateHotel(id, in, nil)
}

// UpdateOwnedHotel is the hotel owner's edit. Hotels of other owners are
// reported as not found, and a rejected hotel goes back to pending.
func (s *HotelService) UpdateOwnedHotel(ownerID, id uint, in OwnerHotelUpdateInput) (*models.Hotel, error) {
	return s.updateHotel(id, in.toUpdate(), &ownerID)
}

func ownedBy(hotel *models.Hotel, ownerID uint) bool {
	return hotel.OwnerID != nil && *hotel.OwnerID == ownerID
}

func (s *HotelService) updateHotel(id uint, in HotelUpdateInput, ownerID *uint) (*models.Hotel, error) {
	if in.Status != nil && !models.IsValidHotelStatus(*in.Status) {
		return nil, ErrInvalidHotelStatus
	}
	now := s.Engine.Now()

	var hotel *models.Hotel
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		hotel, err = s.load(tx, id)
		if err != nil {
			return err
		}
		if ownerID != nil && !ownedBy(hotel, *ownerID) {
			return ErrHotelNotFound
		}

		setString(&hotel.Name, in.Name)
		setString(&hotel.Location, in.Location)
		setString(&hotel.Description, in.Description)
		setString(&hotel.Image, in.Image)
		setString(&hotel.OwnerName, in.OwnerName)
		setString(&hotel.OwnerEmail, in.OwnerEmail)
		setString(&hotel.OwnerPhone, in.OwnerPhone)
		setString(&hotel.Address, in.Address)
		setString(&hotel.RegistrationNumber, in.RegistrationNumber)
		setString(&hotel.Status, in.Status)
		if in.Amenities != nil {
			hotel.Amenities = in.Amenities
		}
		if in.Rating != nil {
			hotel.Rating = *in.Rating
		}
		if ownerID != nil && hotel.Status == models.HotelStatusRejected {
			hotel.Status = models.HotelStatusPending
			hotel.RejectionReason = ""
		}

		if in.RoomTypes != nil {
			next, err := syncRoomTypes(tx, hotel, in.RoomTypes, now)
			if err != nil {
				return err
			}
			hotel.RoomTypes = next
			// prices were replaced under any in-flight repricing of this hotel
			hotel.PriceVersion++
		}

		return tx.Omit(clause.Associations).Save(hotel).Error
	})
	if err != nil {
		if errors.Is(err, ErrHotelNotFound) || errors.Is(err, ErrInvalidRoomType) || errors.Is(err, ErrInvalidPricingRules) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update hotel %d: %w", id, err)
	}
	return hotel, nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}

func syncRoomTypes(tx *gorm.DB, hotel *models.Hotel, inputs []RoomTypeInput, now time.Time) ([]models.RoomType, error) {
	existing := make(map[uint]*models.RoomType, len(hotel.RoomTypes))
	for i := range hotel.RoomTypes {
		existing[hotel.RoomTypes[i].ID] = &hotel.RoomTypes[i]
	}

	kept := make(map[uint]bool, len(inputs))
	next := make([]models.RoomType, 0, len(inputs))
	for _, rin := range inputs {
		prev, known := existing[rin.ID]
		if !known {
			rin.ID = 0
		}

		rt, err := buildRoomType(rin, now)
		if err != nil {
			return nil, err
		}
		rt.HotelID = hotel.ID

		if known {
			rt.CreatedAt = prev.CreatedAt
			if rin.PricingRules == nil {
				rt.PricingRules = prev.PricingRules
			}
			if !rin.CurrentPrice.Valid {
				rt.CurrentPrice = prev.CurrentPrice
			}
			kept[rt.ID] = true
			if err := tx.Save(&rt).Error; err != nil {
				return nil, err
			}
		} else if err := tx.Create(&rt).Error; err != nil {
			return nil, err
		}
		next = append(next, rt)
	}

	for id := range existing {
		if kept[id] {
			continue
		}
		if err := tx.Delete(&models.RoomType{}, id).Error; err != nil {
			return nil, err
		}
	}
	return next, nil
}

func (s *HotelService) VerifyHotel(id uint, in VerifyHotelInput, adminID uint) (*models.Hotel, error) {
	if !models.IsValidHotelStatus(in.Status) {
		return nil, ErrInvalidHotelStatus
	}

	hotel, err := s.load(s.DB, id)
	if err != nil {
		return nil, err
	}

	now := s.Engine.Now()
	hotel.Status = in.Status
	hotel.VerificationNotes = in.VerificationNotes
	hotel.VerifiedBy = &adminID
	hotel.VerifiedAt = &now
	if in.Status == models.HotelStatusRejected {
		hotel.RejectionReason = in.RejectionReason
	}

	if err := s.DB.Model(&models.Hotel{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":             hotel.Status,
		"verification_notes": hotel.VerificationNotes,
		"verified_by":        adminID,
		"verified_at":        now,
		"rejection_reason":   hotel.RejectionReason,
	}).Error; err != nil {
		return nil, fmt.Errorf("failed to verify hotel %d: %w", id, err)
	}
	return hotel, nil
}

func (s *HotelService) DeleteHotel(id uint) error {
	res := s.DB.Delete(&models.Hotel{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete hotel %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrHotelNotFound
	}
	return nil
}

// UpdatePricingSettings toggles auto pricing, changes the update frequency and
// merges rule patches into the addressed room types. Patches for room types
// the hotel does not have are ignored.
func (s *HotelService) UpdatePricingSettings(id uint, in PricingSettingsInput) (*models.Hotel, error) {
	if in.UpdateFrequency != "" && !models.IsValidUpdateFrequency(in.UpdateFrequency) {
		return nil, ErrInvalidUpdateFrequency
	}

	var hotel *models.Hotel
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		hotel, err = s.load(tx, id)
		if err != nil {
			return err
		}

		if in.AutoPricingEnabled != nil {
			hotel.PricingSettings.AutoPricingEnabled = *in.AutoPricingEnabled
		}
		if in.UpdateFrequency != "" {
			hotel.PricingSettings.UpdateFrequency = in.UpdateFrequency
		}

		byID := make(map[uint]*models.RoomType, len(hotel.RoomTypes))
		for i := range hotel.RoomTypes {
			byID[hotel.RoomTypes[i].ID] = &hotel.RoomTypes[i]
		}
		for _, setting := range in.RoomTypeSettings {
			rt, ok := byID[setting.RoomTypeID]
			if !ok || setting.PricingRules == nil {
				continue
			}
			if err := setting.PricingRules.apply(&rt.PricingRules); err != nil {
				return err
			}
			if err := tx.Save(rt).Error; err != nil {
				return err
			}
		}

		return tx.Omit(clause.Associations).Save(hotel).Error
	})
	if err != nil {
		if errors.Is(err, ErrHotelNotFound) || errors.Is(err, ErrInvalidPricingRules) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update pricing settings for hotel %d: %w", id, err)
	}
	return hotel, nil
}

// UpdateRoomAvailability sets how many rooms of a room type are free.
func (s *HotelService) UpdateRoomAvailability(hotelID, roomTypeID uint, availability int) (*models.RoomType, error) {
	var rt models.RoomType
	if err := s.DB.Where("id = ? AND hotel_id = ?", roomTypeID, hotelID).First(&rt).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomTypeNotFound
		}
		return nil, fmt.Errorf("failed to load room type %d: %w", roomTypeID, err)
	}
	if availability < 0 || availability > rt.TotalRooms {
		return nil, ErrInvalidAvailability
	}

	if err := s.DB.Model(&rt).Update("availability", availability).Error; err != nil {
		return nil, fmt.Errorf("failed to update availability of room type %d: %w", roomTypeID, err)
	}
	rt.Availability = availability
	return &rt, nil
}

// ---------------------------
// Analytics
// ---------------------------

type RoomTypeAnalytics struct {
	RoomTypeID         uint            `json:"roomTypeId"`
	RoomTypeName       string          `json:"roomTypeName"`
	BasePrice          decimal.Decimal `json:"basePrice"`
	CurrentPrice       decimal.Decimal `json:"currentPrice"`
	PriceChangePercent string          `json:"priceChangePercent"`
	OccupancyRate      string          `json:"occupancyRate"`
	Availability       int             `json:"availability"`
	TotalRooms         int             `json:"totalRooms"`
	LastUpdated        time.Time       `json:"lastUpdated"`
}

var hundred = decimal.NewFromInt(100)

// PricingAnalytics reports stored prices against base prices, with
// percentages formatted to one decimal place.
func (s *HotelService) PricingAnalytics(id uint) ([]RoomTypeAnalytics, error) {
	hotel, err := s.load(s.DB, id)
	if err != nil {
		return nil, err
	}

	out := make([]RoomTypeAnalytics, 0, len(hotel.RoomTypes))
	for _, rt := range hotel.RoomTypes {
		change := decimal.Zero
		if rt.BasePrice.IsPositive() {
			change = rt.CurrentPrice.Sub(rt.BasePrice).Div(rt.BasePrice).Mul(hundred)
		}
		occupancy := decimal.NewFromFloat(pricing.OccupancyRate(rt.TotalRooms, rt.Availability)).Mul(hundred)

		out = append(out, RoomTypeAnalytics{
			RoomTypeID:         rt.ID,
			RoomTypeName:       rt.Name,
			BasePrice:          rt.BasePrice,
			CurrentPrice:       rt.CurrentPrice,
			PriceChangePercent: change.StringFixed(1),
			OccupancyRate:      occupancy.StringFixed(1),
			Availability:       rt.Availability,
			TotalRooms:         rt.TotalRooms,
			LastUpdated:        rt.PricingRules.LastUpdated,
		})
	}
	return out, nil
}

type HotelAnalytics struct {
	TotalRooms     int                 `json:"totalRooms"`
	AvailableRooms int                 `json:"availableRooms"`
	OccupancyRate  string              `json:"occupancyRate"`
	AveragePrice   decimal.Decimal     `json:"averagePrice"`
	RoomTypes      []RoomTypeAnalytics `json:"roomTypes"`
}

// OwnerHotelAnalytics summarises one of the owner's hotels: room totals,
// overall occupancy and the average current price across room types.
func (s *HotelService) OwnerHotelAnalytics(ownerID, id uint) (*HotelAnalytics, error) {
	hotel, err := s.load(s.DB, id)
	if err != nil {
		return nil, err
	}
	if !ownedBy(hotel, ownerID) {
		return nil, ErrHotelNotFound
	}

	roomTypes, err := s.PricingAnalytics(id)
	if err != nil {
		return nil, err
	}

	out := &HotelAnalytics{AveragePrice: decimal.Zero, RoomTypes: roomTypes}
	total := decimal.Zero
	for _, rt := range hotel.RoomTypes {
		out.TotalRooms += rt.TotalRooms
		out.AvailableRooms += rt.Availability
		total = total.Add(rt.CurrentPrice)
	}
	if n := len(hotel.RoomTypes); n > 0 {
		out.AveragePrice = total.Div(decimal.NewFromInt(int64(n))).Round(2)
	}
	occupancy := decimal.NewFromFloat(pricing.OccupancyRate(out.TotalRooms, out.AvailableRooms)).Mul(hundred)
	out.OccupancyRate = occupancy.StringFixed(1)
	return out, nil
}
