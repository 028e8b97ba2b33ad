// controllers/booking_controller.go
package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"hotel-marketplace/middleware"
	"hotel-marketplace/models"
	"hotel-marketplace/services"
	"hotel-marketplace/utils"
)

// CreateBookingRequest accepts dates as YYYY-MM-DD or RFC 3339.
type CreateBookingRequest struct {
	HotelID    uint   `json:"hotelId" binding:"required"`
	RoomTypeID uint   `json:"roomTypeId" binding:"required"`
	CheckIn    string `json:"checkIn" binding:"required"`
	CheckOut   string `json:"checkOut" binding:"required"`
	Guests     int    `json:"guests" binding:"omitempty,gte=1"`
}

type bookingStatusPayload struct {
	Status string `json:"status" binding:"required"`
}

type BookingController struct {
	BookingSvc *services.BookingService
}

func NewBookingController(svc *services.BookingService) *BookingController {
	return &BookingController{BookingSvc: svc}
}

func parseStayDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// POST /api/bookings
func (ctrl *BookingController) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if !bindJSON(c, &req) {
		return
	}
	checkIn, ok1 := parseStayDate(req.CheckIn)
	checkOut, ok2 := parseStayDate(req.CheckOut)
	if !ok1 || !ok2 {
		utils.JSONError(c, http.StatusBadRequest, "checkIn and checkOut must be dates (YYYY-MM-DD)")
		return
	}
	userID, _ := middleware.UserIDFrom(c)

	booking, err := ctrl.BookingSvc.CreateBooking(services.CreateBookingInput{
		UserID:     userID,
		HotelID:    req.HotelID,
		RoomTypeID: req.RoomTypeID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Guests:     req.Guests,
	})
	if err != nil {
		respondError(c, "create booking", err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, gin.H{"message": "Booking created successfully", "booking": booking})
}

// GET /api/bookings/admin/all
func (ctrl *BookingController) ListAllBookings(c *gin.Context) {
	bookings, err := ctrl.BookingSvc.ListAll()
	if err != nil {
		respondError(c, "list bookings", err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"bookings": bookings})
}

// GET /api/bookings/user/:userId
// users see their own bookings; admins need bookings:view
func (ctrl *BookingController) ListUserBookings(c *gin.Context) {
	userID, ok := parseID(c, "userId")
	if !ok {
		return
	}

	if admin, isAdmin := middleware.AdminFrom(c); isAdmin {
		if !admin.Can(models.ResourceBookings, models.ActionView) {
			utils.JSONError(c, http.StatusForbidden, "Permission denied: view bookings")
			return
		}
	} else if self, _ := middleware.UserIDFrom(c); self != userID {
		utils.JSONError(c, http.StatusForbidden, "You can only view your own bookings")
		return
	}

	bookings, err := ctrl.BookingSvc.ListForUser(userID)
	if err != nil {
		respondError(c, "list user bookings", err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"bookings": bookings})
}

// PUT /api/bookings/:id/status
func (ctrl *BookingController) UpdateBookingStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var payload bookingStatusPayload
	if !bindJSON(c, &payload) {
		return
	}

	booking, err := ctrl.BookingSvc.UpdateStatus(id, payload.Status)
	if err != nil {
		respondError(c, "update booking status", err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "Booking status updated", "booking": booking})
}

// DELETE /api/bookings/:id
func (ctrl *BookingController) DeleteBooking(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := ctrl.BookingSvc.Delete(id); err != nil {
		respondError(c, "delete booking", err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "Booking deleted successfully"})
}
