package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hotel-marketplace/services"
	"hotel-marketplace/utils"
)

// parseID reads a positive numeric path parameter.
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, "Invalid "+name)
		return 0, false
	}
	return uint(id), true
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrHotelNotFound),
		errors.Is(err, services.ErrRoomTypeNotFound),
		errors.Is(err, services.ErrBookingNotFound),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrAdminNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrInvalidHotel),
		errors.Is(err, services.ErrInvalidRoomType),
		errors.Is(err, services.ErrInvalidPricingRules),
		errors.Is(err, services.ErrInvalidHotelStatus),
		errors.Is(err, services.ErrInvalidUpdateFrequency),
		errors.Is(err, services.ErrInvalidAvailability),
		errors.Is(err, services.ErrInvalidBooking),
		errors.Is(err, services.ErrInvalidBookingStatus),
		errors.Is(err, services.ErrInvalidRole),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrNotHotelOwner),
		errors.Is(err, services.ErrIncorrectPassword),
		errors.Is(err, utils.ErrPasswordTooShort):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrDuplicateEmail),
		errors.Is(err, services.ErrNoAvailability),
		errors.Is(err, services.ErrPricingConflict):
		return http.StatusConflict
	case errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrAccountInactive),
		errors.Is(err, services.ErrSuperAdminOnly):
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}

// respondError maps service errors to a status code. Unexpected errors are
// logged and hidden behind "Server error".
func respondError(c *gin.Context, op string, err error) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		log.Printf("❌ %s: %v", op, err)
		utils.JSONError(c, code, "Server error")
		return
	}
	utils.JSONError(c, code, err.Error())
}

func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid payload: "+err.Error())
		return false
	}
	return true
}
