package middleware

import (
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

	"hotel-marketplace/models"
	"hotel-marketplace/services"
	"hotel-marketplace/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&models.Admin{}, &models.User{}))
	return db
}

func newAdminService(t *testing.T) *services.AdminService {
	t.Helper()
	return services.NewAdminService(newTestDB(t))
}

func call(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireUser(t *testing.T) {
	db := newTestDB(t)
	users := services.NewUserService(db)
	tokens := utils.NewTokenIssuer("test-secret", time.Hour)

	sita, err := users.Register(services.RegisterUserInput{Name: "Sita", Email: "sita@example.com", Password: "secret123"})
	require.NoError(t, err)

	r := gin.New()
	r.Use(Authenticate(tokens))
	r.GET("/x", RequireUser(users), func(c *gin.Context) {
		user, _ := UserFrom(c)
		c.JSON(http.StatusOK, gin.H{"id": user.ID})
	})

	userToken, err := tokens.Issue(utils.KindUser, sita.ID, sita.Role)
	require.NoError(t, err)
	adminToken, err := tokens.Issue(utils.KindAdmin, 1, models.AdminRoleSuperAdmin)
	require.NoError(t, err)
	ghostToken, err := tokens.Issue(utils.KindUser, sita.ID+100, models.UserRoleUser)
	require.NoError(t, err)

	w := call(r, userToken)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, fmt.Sprintf(`{"id":%d}`, sita.ID), w.Body.String())

	assert.Equal(t, http.StatusUnauthorized, call(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, call(r, "garbage").Code)
	assert.Equal(t, http.StatusUnauthorized, call(r, adminToken).Code)
	assert.Equal(t, http.StatusUnauthorized, call(r, ghostToken).Code)

	// the token outlives the account's standing
	_, err = users.UpdateStatus(sita.ID, models.UserStatusBlocked)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, call(r, userToken).Code)

	require.NoError(t, users.Delete(sita.ID))
	assert.Equal(t, http.StatusUnauthorized, call(r, userToken).Code)
}

func TestRequireHotelOwnerAndAccount(t *testing.T) {
	db := newTestDB(t)
	users := services.NewUserService(db)
	admins := services.NewAdminService(db)
	tokens := utils.NewTokenIssuer("test-secret", time.Hour)

	guest, err := users.Register(services.RegisterUserInput{Name: "Sita", Email: "sita@example.com", Password: "secret123"})
	require.NoError(t, err)
	owner, err := users.Register(services.RegisterUserInput{
		Name: "Ram", Email: "ram@example.com", Password: "secret123", Role: models.UserRoleHotelOwner,
	})
	require.NoError(t, err)
	require.NoError(t, admins.EnsureDefaultAdmin("root@hotel.test", "changeme"))
	root, _, err := admins.Authenticate("root@hotel.test", "changeme")
	require.NoError(t, err)

	guestToken, err := tokens.Issue(utils.KindUser, guest.ID, guest.Role)
	require.NoError(t, err)
	ownerToken, err := tokens.Issue(utils.KindUser, owner.ID, owner.Role)
	require.NoError(t, err)
	adminToken, err := tokens.Issue(utils.KindAdmin, root.ID, root.Role)
	require.NoError(t, err)

	ok := func(c *gin.Context) { c.Status(http.StatusNoContent) }

	r := gin.New()
	r.Use(Authenticate(tokens))
	r.GET("/x", RequireUser(users), RequireHotelOwner(), ok)
	assert.Equal(t, http.StatusNoContent, call(r, ownerToken).Code)
	assert.Equal(t, http.StatusForbidden, call(r, guestToken).Code)
	assert.Equal(t, http.StatusUnauthorized, call(r, adminToken).Code)

	r2 := gin.New()
	r2.Use(Authenticate(tokens))
	r2.GET("/x", RequireAccount(users, admins, models.UserRoleHotelOwner), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"admin": IsAdminRequest(c)})
	})
	assert.JSONEq(t, `{"admin":false}`, call(r2, ownerToken).Body.String())
	assert.JSONEq(t, `{"admin":true}`, call(r2, adminToken).Body.String())
	assert.Equal(t, http.StatusForbidden, call(r2, guestToken).Code)
	assert.Equal(t, http.StatusUnauthorized, call(r2, "").Code)

	require.NoError(t, db.Model(&models.Admin{}).Where("id = ?", root.ID).
		Update("status", models.AdminStatusInactive).Error)
	assert.Equal(t, http.StatusForbidden, call(r2, adminToken).Code)

	_, err = users.UpdateStatus(owner.ID, models.UserStatusBlocked)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, call(r2, ownerToken).Code)
}

func TestRequireAdminAndPermission(t *testing.T) {
	admins := newAdminService(t)
	tokens := utils.NewTokenIssuer("test-secret", time.Hour)

	finance, err := admins.Create(services.CreateAdminInput{
		Name: "Gita", Email: "gita@hotel.test", Password: "secret123", Role: models.AdminRoleFinance,
	}, nil)
	require.NoError(t, err)
	token, err := tokens.Issue(utils.KindAdmin, finance.ID, finance.Role)
	require.NoError(t, err)

	r := gin.New()
	r.Use(Authenticate(tokens))
	r.GET("/x", RequireAdmin(admins), RequirePermission(models.ResourceBookings, models.ActionView),
		func(c *gin.Context) { c.Status(http.StatusNoContent) })

	assert.Equal(t, http.StatusNoContent, call(r, token).Code)
	assert.Equal(t, http.StatusUnauthorized, call(r, "").Code)

	r2 := gin.New()
	r2.Use(Authenticate(tokens))
	r2.GET("/x", RequireAdmin(admins), RequirePermission(models.ResourceHotels, models.ActionDelete),
		func(c *gin.Context) { c.Status(http.StatusNoContent) })
	assert.Equal(t, http.StatusForbidden, call(r2, token).Code)

	r3 := gin.New()
	r3.Use(Authenticate(tokens))
	r3.GET("/x", RequireAdmin(admins), RequireSuperAdmin(), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	assert.Equal(t, http.StatusForbidden, call(r3, token).Code)

	require.NoError(t, admins.DB.Model(&models.Admin{}).Where("id = ?", finance.ID).
		Update("status", models.AdminStatusSuspended).Error)
	assert.Equal(t, http.StatusForbidden, call(r, token).Code)
}

func TestOptionalAdmin(t *testing.T) {
	admins := newAdminService(t)
	tokens := utils.NewTokenIssuer("test-secret", time.Hour)
	require.NoError(t, admins.EnsureDefaultAdmin("root@hotel.test", "changeme"))
	root, _, err := admins.Authenticate("root@hotel.test", "changeme")
	require.NoError(t, err)

	r := gin.New()
	r.Use(Authenticate(tokens))
	r.GET("/x", OptionalAdmin(admins), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"admin": IsAdminRequest(c)})
	})

	adminToken, err := tokens.Issue(utils.KindAdmin, root.ID, root.Role)
	require.NoError(t, err)
	userToken, err := tokens.Issue(utils.KindUser, root.ID, models.UserRoleUser)
	require.NoError(t, err)

	assert.JSONEq(t, `{"admin":true}`, call(r, adminToken).Body.String())
	assert.JSONEq(t, `{"admin":false}`, call(r, userToken).Body.String())
	assert.JSONEq(t, `{"admin":false}`, call(r, "").Body.String())
}
