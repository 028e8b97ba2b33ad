// controllers/hotel_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel-marketplace/middleware"
	"hotel-marketplace/services"
	"hotel-marketplace/utils"
)

type HotelController struct {
	HotelSvc *services.HotelService
}

func NewHotelController(svc *services.HotelService) *HotelController {
	return &HotelController{HotelSvc: svc}
}

// GET /api/hotels
func (ctrl *HotelController) ListHotels(c *gin.Context) {
	hotels, err := ctrl.HotelSvc.ListHotels(middleware.IsAdminRequest(c))
	if err != nil {
		respondError(c, "list hotels", err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"hotels": hotels})
}

// GET /api/hotels/pending
func (ctrl *HotelController) ListPendingHotels(c *gin.Context) {
	hotels, err := ctrl.HotelSvc.ListPendingHotels()
	if err != nil {
		respondError(c, "list pending hotels", err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"hotels": hotels})
}

// GET /api/hotels/:id
func (ctrl *HotelController) GetHotel(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	hotel, err := ctrl.HotelSvc.GetHotel(id, middleware.IsAdminRequest(c))
	if err != nil {
		respondError(c, "get hotel", err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"hotel": hotel})
}

// POST /api/hotels
// hotel owners and admins register hotels; every registration starts pending
func (ctrl *HotelController) CreateHotel(c *gin.Context) {
	var in services.HotelInput
	if !bindJSON(c, &in) {
		return
	}
	in.OwnerID, in.CreatedBy, in.CreatedByAdmin = nil, nil, false
	if admin, ok := middleware.AdminFrom(c); ok {
		in.CreatedBy = &admin.ID
		in.CreatedByAdmin = true
	} else if user, ok := middleware.UserFrom(c); ok {
		in.OwnerID = &user.ID
	}

	hotel, err := ctrl.HotelSvc.CreateHotel(in)
	if err != nil {
		respondError(c, "create hotel", err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, gin.H{
		"message": "Hotel registration submitted for verification",
		"hotel":   hotel,
	})
}

// PUT /api/hotels/:id
func (ctrl *HotelController) UpdateHotel(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var in services.HotelUpdateInput
	if !bindJSON(c, &in) {
		return
	}
	hotel, err := ctrl.HotelSvc.UpdateHotel(id, in)
	if err != nil {
		respondError(c, "update hotel", err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "Hotel updated successfully", "hotel": hotel})
}

// PUT /api/hotels/:id/verify
func (ctrl *HotelController) VerifyHotel(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var in services.VerifyHotelInput
	if !bindJSON(c, &in) {
		return
	}
	admin, _ := middleware.AdminFrom(c)

	hotel, err := ctrl.HotelSvc.VerifyHotel(id, in, admin.ID)
	if err != nil {
		respondError(c, "verify hotel", err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"message": "Hotel " + hotel.Status + " successfully",
		"hotel":   hotel,
	})
}

// DELETE /api/hotels/:id
func (ctrl *HotelController) DeleteHotel(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := ctrl.HotelSvc.DeleteHotel(id); err != nil {
		respondError(c, "delete hotel", err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "Hotel deleted successfully"})
}

// PUT /api/hotels/:id/pricing
func (ctrl *HotelController) RefreshPricing(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	hotel, updated, err := ctrl.HotelSvc.RefreshPricing(id)
	if err != nil {
		respondError(c, "refresh pricing", err)
		return
	}

	message := "No pricing changes needed"
	if updated {
		message = "Pricing updated successfully"
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": message, "updated": updated, "hotel": hotel})
}

// PUT /api/hotels/:id/pricing-settings
func (ctrl *HotelController) UpdatePricingSettings(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var in services.PricingSettingsInput
	if !bindJSON(c, &in) {
		return
	}
	hotel, err := ctrl.HotelSvc.UpdatePricingSettings(id, in)
	if err != nil {
		respondError(c, "update pricing settings", err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "Pricing settings updated successfully", "hotel": hotel})
}

// GET /api/hotels/:id/pricing-analytics
func (ctrl *HotelController) PricingAnalytics(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	analytics, err := ctrl.HotelSvc.PricingAnalytics(id)
	if err != nil {
		respondError(c, "pricing analytics", err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"analytics": analytics})
}

type availabilityPayload struct {
	Availability *int `json:"availability" binding:"required"`
}

// PUT /api/hotels/:id/room-types/:roomTypeId/availability
func (ctrl *HotelController) UpdateRoomAvailability(c *gin.Context) {
	hotelID, ok := parseID(c, "id")
	if !ok {
		return
	}
	roomTypeID, ok := parseID(c, "roomTypeId")
	if !ok {
		return
	}
	var payload availabilityPayload
	if !bindJSON(c, &payload) {
		return
	}

	rt, err := ctrl.HotelSvc.UpdateRoomAvailability(hotelID, roomTypeID, *payload.Availability)
	if err != nil {
		respondError(c, "update room availability", err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "Availability updated", "roomType": rt})
}

// GET /api/owner/hotels
func (ctrl *HotelController) ListMyHotels(c *gin.Context) {
	owner, _ := middleware.UserFrom(c)
	hotels, err := ctrl.HotelSvc.ListOwnerHotels(owner.ID)
	if err != nil {
		respondError(c, "list owner hotels", err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"hotels": hotels})
}

// PUT /api/owner/hotels/:id
func (ctrl *HotelController) UpdateMyHotel(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var in services.OwnerHotelUpdateInput
	if !bindJSON(c, &in) {
		return
	}
	owner, _ := middleware.UserFrom(c)

	hotel, err := ctrl.HotelSvc.UpdateOwnedHotel(owner.ID, id, in)
	if err != nil {
		respondError(c, "update owner hotel", err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "Hotel updated successfully", "hotel": hotel})
}

// GET /api/owner/hotels/:id/analytics
func (ctrl *HotelController) MyHotelAnalytics(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	owner, _ := middleware.UserFrom(c)

	analytics, err := ctrl.HotelSvc.OwnerHotelAnalytics(owner.ID, id)
	if err != nil {
		respondError(c, "owner hotel analytics", err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"analytics": analytics})
}
