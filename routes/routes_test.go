package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hotel-marketplace/config"
	"hotel-marketplace/controllers"
	"hotel-marketplace/models"
	"hotel-marketplace/pricing"
	"hotel-marketplace/services"
	"hotel-marketplace/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	router *gin.Engine
	db     *gorm.DB
	hotels *services.HotelService
	users  *services.UserService
}

// a Wednesday that is not a holiday
var testNow = time.Date(2024, time.March, 13, 10, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T) testServer {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, config.Migrate(db))

	engine := &pricing.Engine{Location: time.UTC, Clock: func() time.Time { return testNow }}
	hotels := services.NewHotelService(db, engine)
	users := services.NewUserService(db)
	admins := services.NewAdminService(db)
	logs := services.NewLoginLogService(db)
	tokens := utils.NewTokenIssuer("test-secret", time.Hour)

	require.NoError(t, admins.EnsureDefaultAdmin("root@hotel.test", "changeme"))

	router := SetupRouter(Controllers{
		Hotels:   controllers.NewHotelController(hotels),
		Bookings: controllers.NewBookingController(services.NewBookingService(db)),
		Auth:     controllers.NewAuthController(users, admins, logs, tokens),
		Admin:    controllers.NewAdminController(admins, users, logs),
	}, users, admins, tokens)

	return testServer{router: router, db: db, hotels: hotels, users: users}
}

func (s testServer) do(t *testing.T, method, path, token string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var out map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return w, out
}

func (s testServer) adminToken(t *testing.T) string {
	t.Helper()
	w, out := s.do(t, http.MethodPost, "/api/admin/login", "", gin.H{"email": "root@hotel.test", "password": "changeme"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return out["token"].(string)
}

func (s testServer) userToken(t *testing.T, email string) (string, uint) {
	t.Helper()
	return s.accountToken(t, email, models.UserRoleUser)
}

func (s testServer) ownerToken(t *testing.T, email string) (string, uint) {
	t.Helper()
	return s.accountToken(t, email, models.UserRoleHotelOwner)
}

func (s testServer) accountToken(t *testing.T, email, role string) (string, uint) {
	t.Helper()
	w, out := s.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"name": "Sita", "email": email, "password": "secret123", "role": role,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w, out = s.do(t, http.MethodPost, "/api/auth/login", "", gin.H{"email": email, "password": "secret123"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	user := out["user"].(map[string]interface{})
	return out["token"].(string), uint(user["id"].(float64))
}

// registerActiveHotel registers a hotel with one room type at 80% occupancy and approves it.
func (s testServer) registerActiveHotel(t *testing.T, adminToken string) (uint, uint) {
	t.Helper()
	w, out := s.do(t, http.MethodPost, "/api/hotels", adminToken, gin.H{
		"name":       "Hotel Yak & Yeti",
		"location":   "Kathmandu",
		"ownerName":  "Ram Shrestha",
		"ownerEmail": "owner@yakandyeti.test",
		"ownerPhone": "+977-1-4248999",
		"address":    "Durbar Marg",
		"roomTypes": []gin.H{
			{"name": "Deluxe", "basePrice": 100, "availability": 2, "totalRooms": 10},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	hotel := out["hotel"].(map[string]interface{})
	assert.Equal(t, true, hotel["createdByAdmin"])
	id := uint(hotel["id"].(float64))
	roomTypeID := uint(hotel["roomTypes"].([]interface{})[0].(map[string]interface{})["id"].(float64))

	w, _ = s.do(t, http.MethodPut, fmt.Sprintf("/api/hotels/%d/verify", id), adminToken, gin.H{"status": "active"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return id, roomTypeID
}

func roomTypeOf(t *testing.T, body map[string]interface{}) map[string]interface{} {
	t.Helper()
	hotel := body["hotel"].(map[string]interface{})
	return hotel["roomTypes"].([]interface{})[0].(map[string]interface{})
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	w, out := s.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", out["status"])
}

func TestPublicReadRepricesAndAdminReadDoesNot(t *testing.T) {
	s := newTestServer(t)
	admin := s.adminToken(t)
	id, _ := s.registerActiveHotel(t, admin)
	path := fmt.Sprintf("/api/hotels/%d", id)

	w, out := s.do(t, http.MethodGet, path, admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, out["success"])
	assert.Equal(t, 100.0, roomTypeOf(t, out)["currentPrice"])

	w, out = s.do(t, http.MethodGet, path, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 124.0, roomTypeOf(t, out)["currentPrice"])

	// persisted by the public read
	w, out = s.do(t, http.MethodGet, path, admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 124.0, roomTypeOf(t, out)["currentPrice"])

	w, out = s.do(t, http.MethodGet, "/api/hotels", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, out["hotels"], 1)

	w, _ = s.do(t, http.MethodGet, "/api/hotels/999", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w, _ = s.do(t, http.MethodGet, "/api/hotels/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPendingHotelsHiddenFromPublic(t *testing.T) {
	s := newTestServer(t)
	admin := s.adminToken(t)
	owner, _ := s.ownerToken(t, "owner@example.com")
	guest, _ := s.userToken(t, "guest@example.com")

	w, _ := s.do(t, http.MethodPost, "/api/hotels", guest, gin.H{
		"name": "Guest House", "location": "Pokhara",
		"ownerName": "Sita", "ownerEmail": "guest@example.com", "ownerPhone": "123", "address": "Lakeside",
		"roomTypes": []gin.H{{"name": "Standard", "price": 60}},
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, out := s.do(t, http.MethodPost, "/api/hotels", owner, gin.H{
		"name": "Fishtail Lodge", "location": "Pokhara",
		"ownerName": "Hari", "ownerEmail": "hari@example.com", "ownerPhone": "123", "address": "Lakeside",
		"roomTypes": []gin.H{{"name": "Standard", "price": 160}},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "pending", out["hotel"].(map[string]interface{})["status"])

	_, out = s.do(t, http.MethodGet, "/api/hotels", "", nil)
	assert.Empty(t, out["hotels"])

	w, out = s.do(t, http.MethodGet, "/api/hotels/pending", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, out["hotels"], 1)

	w, _ = s.do(t, http.MethodGet, "/api/hotels/pending", owner, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateHotelValidation(t *testing.T) {
	s := newTestServer(t)
	admin := s.adminToken(t)

	w, _ := s.do(t, http.MethodPost, "/api/hotels", "", gin.H{"name": "x"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = s.do(t, http.MethodPost, "/api/hotels", admin, gin.H{"name": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, out := s.do(t, http.MethodPost, "/api/hotels", admin, gin.H{
		"name": "Free", "location": "Nowhere",
		"ownerName": "A", "ownerEmail": "a@example.com", "ownerPhone": "1", "address": "B",
		"roomTypes": []gin.H{{"name": "Zero", "basePrice": 0}},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, out["success"])
}

func TestRefreshPricingAndSettings(t *testing.T) {
	s := newTestServer(t)
	admin := s.adminToken(t)
	id, roomTypeID := s.registerActiveHotel(t, admin)

	w, out := s.do(t, http.MethodPut, fmt.Sprintf("/api/hotels/%d/pricing", id), admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, out["updated"])
	assert.Equal(t, "Pricing updated successfully", out["message"])

	w, out = s.do(t, http.MethodPut, fmt.Sprintf("/api/hotels/%d/pricing", id), admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, out["updated"])

	w, out = s.do(t, http.MethodPut, fmt.Sprintf("/api/hotels/%d/pricing-settings", id), admin, gin.H{
		"autoPricingEnabled": false,
		"updateFrequency":    "weekly",
		"roomTypeSettings": []gin.H{
			{"roomTypeId": roomTypeID, "pricingRules": gin.H{"seasonalMultiplier": 1.3}},
		},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	settings := out["hotel"].(map[string]interface{})["pricingSettings"].(map[string]interface{})
	assert.Equal(t, false, settings["autoPricingEnabled"])
	assert.Equal(t, "weekly", settings["updateFrequency"])
	rules := roomTypeOf(t, out)["pricingRules"].(map[string]interface{})
	assert.Equal(t, 1.3, rules["seasonalMultiplier"])
	assert.Equal(t, 1.2, rules["weekendMultiplier"])

	w, _ = s.do(t, http.MethodPut, fmt.Sprintf("/api/hotels/%d/pricing-settings", id), admin, gin.H{"updateFrequency": "monthly"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, out = s.do(t, http.MethodGet, fmt.Sprintf("/api/hotels/%d/pricing-analytics", id), admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	analytics := out["analytics"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "24.0", analytics["priceChangePercent"])
	assert.Equal(t, "80.0", analytics["occupancyRate"])
}

func TestBookingFlow(t *testing.T) {
	s := newTestServer(t)
	admin := s.adminToken(t)
	hotelID, roomTypeID := s.registerActiveHotel(t, admin)
	user, userID := s.userToken(t, "sita@example.com")

	w, out := s.do(t, http.MethodPost, "/api/bookings", user, gin.H{
		"hotelId": hotelID, "roomTypeId": roomTypeID,
		"checkIn": "2024-04-01", "checkOut": "2024-04-03", "guests": 2,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	booking := out["booking"].(map[string]interface{})
	assert.Equal(t, 200.0, booking["totalPrice"])
	assert.Equal(t, "pending", booking["status"])
	bookingID := uint(booking["id"].(float64))

	w, out = s.do(t, http.MethodGet, fmt.Sprintf("/api/bookings/user/%d", userID), user, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, out["bookings"], 1)

	w, _ = s.do(t, http.MethodGet, fmt.Sprintf("/api/bookings/user/%d", userID+1), user, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, out = s.do(t, http.MethodGet, "/api/bookings/admin/all", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, out["bookings"], 1)

	w, _ = s.do(t, http.MethodPut, fmt.Sprintf("/api/bookings/%d/status", bookingID), admin, gin.H{"status": "cancelled"})
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = s.do(t, http.MethodPut, fmt.Sprintf("/api/bookings/%d/status", bookingID), admin, gin.H{"status": "lost"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = s.do(t, http.MethodDelete, fmt.Sprintf("/api/bookings/%d", bookingID), admin, nil)
	require.Equal(t, http.StatusOK, w.Code)

	hotel, err := s.hotels.GetHotel(hotelID, true)
	require.NoError(t, err)
	assert.Equal(t, 2, hotel.RoomTypes[0].Availability)

	w, _ = s.do(t, http.MethodPost, "/api/bookings", admin, gin.H{
		"hotelId": hotelID, "roomTypeId": roomTypeID, "checkIn": "2024-04-01", "checkOut": "2024-04-02",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBookingWithoutAvailabilityConflicts(t *testing.T) {
	s := newTestServer(t)
	admin := s.adminToken(t)
	hotelID, roomTypeID := s.registerActiveHotel(t, admin)
	user, _ := s.userToken(t, "sita@example.com")

	w, _ := s.do(t, http.MethodPut, fmt.Sprintf("/api/hotels/%d/room-types/%d/availability", hotelID, roomTypeID), admin, gin.H{"availability": 0})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w, _ = s.do(t, http.MethodPost, "/api/bookings", user, gin.H{
		"hotelId": hotelID, "roomTypeId": roomTypeID, "checkIn": "2024-04-01", "checkOut": "2024-04-02",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w, _ = s.do(t, http.MethodPut, fmt.Sprintf("/api/hotels/%d/room-types/%d/availability", hotelID, roomTypeID), admin, gin.H{"availability": 11})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthAndLoginLogs(t *testing.T) {
	s := newTestServer(t)
	s.userToken(t, "sita@example.com")

	w, _ := s.do(t, http.MethodPost, "/api/auth/register", "", gin.H{"name": "Sita", "email": "sita@example.com", "password": "secret123"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w, _ = s.do(t, http.MethodPost, "/api/auth/login", "", gin.H{"email": "sita@example.com", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w, _ = s.do(t, http.MethodPost, "/api/admin/login", "", gin.H{"email": "root@hotel.test", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	admin := s.adminToken(t)
	w, out := s.do(t, http.MethodGet, "/api/admin/login-logs", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	// user success, user failure, admin failure, admin success
	assert.Len(t, out["logs"], 4)

	w, out = s.do(t, http.MethodGet, "/api/admin/login-logs?subjectType=Admin", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, out["logs"], 2)
}

func TestAdminManagement(t *testing.T) {
	s := newTestServer(t)
	root := s.adminToken(t)

	w, _ := s.do(t, http.MethodPost, "/api/admin/admins", root, gin.H{
		"name": "Gita", "email": "gita@hotel.test", "password": "secret123", "role": "finance",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, out := s.do(t, http.MethodPost, "/api/admin/login", "", gin.H{"email": "gita@hotel.test", "password": "secret123"})
	require.Equal(t, http.StatusOK, w.Code)
	finance := out["token"].(string)

	w, _ = s.do(t, http.MethodGet, "/api/admin/admins", finance, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w, _ = s.do(t, http.MethodGet, "/api/admin/users", finance, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = s.do(t, http.MethodPost, "/api/admin/users", finance, gin.H{"name": "X", "email": "x@example.com", "password": "secret123"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, out = s.do(t, http.MethodPost, "/api/admin/users", root, gin.H{
		"name": "Hari", "email": "hari@example.com", "password": "secret123", "role": models.UserRoleHotelOwner,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	userID := uint(out["user"].(map[string]interface{})["id"].(float64))

	w, _ = s.do(t, http.MethodPut, fmt.Sprintf("/api/admin/users/%d/status", userID), root, gin.H{"status": "blocked"})
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = s.do(t, http.MethodPost, "/api/auth/login", "", gin.H{"email": "hari@example.com", "password": "secret123"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = s.do(t, http.MethodPut, fmt.Sprintf("/api/admin/users/%d/role", userID), root, gin.H{"role": "emperor"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w, _ = s.do(t, http.MethodDelete, fmt.Sprintf("/api/admin/users/%d", userID), root, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = s.do(t, http.MethodDelete, fmt.Sprintf("/api/admin/users/%d", userID), root, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, out = s.do(t, http.MethodGet, "/api/admin/me", root, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "super_admin", out["admin"].(map[string]interface{})["role"])
}

func TestBlockedUserTokenStopsWorking(t *testing.T) {
	s := newTestServer(t)
	admin := s.adminToken(t)
	hotelID, roomTypeID := s.registerActiveHotel(t, admin)
	user, userID := s.userToken(t, "sita@example.com")

	_, err := s.users.UpdateStatus(userID, models.UserStatusBlocked)
	require.NoError(t, err)

	w, out := s.do(t, http.MethodPost, "/api/bookings", user, gin.H{
		"hotelId": hotelID, "roomTypeId": roomTypeID, "checkIn": "2024-04-01", "checkOut": "2024-04-02",
	})
	assert.Equal(t, http.StatusForbidden, w.Code, w.Body.String())
	assert.Equal(t, false, out["success"])

	w, _ = s.do(t, http.MethodGet, "/api/auth/me", user, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w, _ = s.do(t, http.MethodGet, fmt.Sprintf("/api/bookings/user/%d", userID), user, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	hotel, err := s.hotels.GetHotel(hotelID, true)
	require.NoError(t, err)
	assert.Equal(t, 2, hotel.RoomTypes[0].Availability)

	require.NoError(t, s.users.Delete(userID))
	w, _ = s.do(t, http.MethodPost, "/api/bookings", user, gin.H{
		"hotelId": hotelID, "roomTypeId": roomTypeID, "checkIn": "2024-04-01", "checkOut": "2024-04-02",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOwnerPortal(t *testing.T) {
	s := newTestServer(t)
	admin := s.adminToken(t)
	owner, ownerID := s.ownerToken(t, "ram@example.com")
	other, _ := s.ownerToken(t, "hari@example.com")
	guest, _ := s.userToken(t, "sita@example.com")

	w, out := s.do(t, http.MethodPost, "/api/hotels", owner, gin.H{
		"name": "Fishtail Lodge", "location": "Pokhara",
		"ownerName": "Ram", "ownerEmail": "ram@example.com", "ownerPhone": "123", "address": "Lakeside",
		"roomTypes": []gin.H{{"name": "Standard", "basePrice": 160, "availability": 3, "totalRooms": 4}},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	hotel := out["hotel"].(map[string]interface{})
	assert.Equal(t, float64(ownerID), hotel["ownerId"])
	id := uint(hotel["id"].(float64))

	w, out = s.do(t, http.MethodGet, "/api/owner/hotels", owner, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, out["hotels"], 1)

	w, out = s.do(t, http.MethodGet, "/api/owner/hotels", other, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, out["hotels"])

	w, _ = s.do(t, http.MethodGet, "/api/owner/hotels", guest, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w, _ = s.do(t, http.MethodGet, "/api/owner/hotels", admin, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = s.do(t, http.MethodPut, fmt.Sprintf("/api/hotels/%d/verify", id), admin, gin.H{
		"status": "rejected", "rejectionReason": "blurry license",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = s.do(t, http.MethodPut, fmt.Sprintf("/api/owner/hotels/%d", id), other, gin.H{"name": "Stolen"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, out = s.do(t, http.MethodPut, fmt.Sprintf("/api/owner/hotels/%d", id), owner, gin.H{"name": "Fishtail Lodge & Spa"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	hotel = out["hotel"].(map[string]interface{})
	assert.Equal(t, "Fishtail Lodge & Spa", hotel["name"])
	assert.Equal(t, "pending", hotel["status"])

	w, out = s.do(t, http.MethodGet, fmt.Sprintf("/api/owner/hotels/%d/analytics", id), owner, nil)
	require.Equal(t, http.StatusOK, w.Code)
	analytics := out["analytics"].(map[string]interface{})
	assert.Equal(t, 4.0, analytics["totalRooms"])
	assert.Equal(t, 3.0, analytics["availableRooms"])
	assert.Equal(t, "25.0", analytics["occupancyRate"])

	w, _ = s.do(t, http.MethodGet, fmt.Sprintf("/api/owner/hotels/%d/analytics", id), other, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestVerifyHotelOwnerRoute(t *testing.T) {
	s := newTestServer(t)
	admin := s.adminToken(t)
	_, ownerID := s.ownerToken(t, "ram@example.com")
	_, guestID := s.userToken(t, "sita@example.com")

	w, out := s.do(t, http.MethodPut, fmt.Sprintf("/api/admin/users/%d/verify-hotel-owner", ownerID), admin, gin.H{
		"verificationStatus": "verified", "verificationNotes": "documents checked",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Hotel owner verified successfully", out["message"])
	assert.Equal(t, "verified", out["user"].(map[string]interface{})["ownerVerificationStatus"])

	w, _ = s.do(t, http.MethodPut, fmt.Sprintf("/api/admin/users/%d/verify-hotel-owner", guestID), admin, gin.H{
		"verificationStatus": "verified",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminSelfService(t *testing.T) {
	s := newTestServer(t)
	root := s.adminToken(t)

	w, out := s.do(t, http.MethodPost, "/api/admin/admins", root, gin.H{
		"name": "Gita", "email": "gita@hotel.test", "password": "secret123", "role": "manager",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	managerID := uint(out["admin"].(map[string]interface{})["id"].(float64))

	w, out = s.do(t, http.MethodPost, "/api/admin/login", "", gin.H{"email": "gita@hotel.test", "password": "secret123"})
	require.Equal(t, http.StatusOK, w.Code)
	manager := out["token"].(string)

	w, out = s.do(t, http.MethodGet, "/api/admin/profile/me", manager, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "gita@hotel.test", out["admin"].(map[string]interface{})["email"])

	w, out = s.do(t, http.MethodPut, "/api/admin/profile/me", manager, gin.H{"name": "Gita Thapa", "phone": "9800000000"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Gita Thapa", out["admin"].(map[string]interface{})["name"])

	w, _ = s.do(t, http.MethodPut, "/api/admin/profile/change-password", manager, gin.H{
		"currentPassword": "wrong", "newPassword": "newsecret",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w, _ = s.do(t, http.MethodPut, "/api/admin/profile/change-password", manager, gin.H{
		"currentPassword": "secret123", "newPassword": "newsecret",
	})
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = s.do(t, http.MethodPost, "/api/admin/login", "", gin.H{"email": "gita@hotel.test", "password": "newsecret"})
	require.Equal(t, http.StatusOK, w.Code)

	w, out = s.do(t, http.MethodGet, "/api/admin/logs/my-logins", manager, nil)
	require.Equal(t, http.StatusOK, w.Code)
	// the first login and the one after the password change
	assert.Len(t, out["logs"], 2)

	// managers hold no admins:edit permission
	w, _ = s.do(t, http.MethodPut, fmt.Sprintf("/api/admin/admins/%d", managerID), manager, gin.H{"role": "super_admin"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	w, out = s.do(t, http.MethodPut, fmt.Sprintf("/api/admin/admins/%d", managerID), root, gin.H{"role": "support"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "support", out["admin"].(map[string]interface{})["role"])
}
