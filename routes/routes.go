package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"hotel-marketplace/controllers"
	"hotel-marketplace/middleware"
	"hotel-marketplace/models"
	"hotel-marketplace/services"
	"hotel-marketplace/utils"
)

func parseCorsOrigins() []string {
	origins := utils.SplitList(strings.TrimSpace(os.Getenv("CORS_ORIGINS")))
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// Controllers รวม controller ทั้งหมดที่ router ต้องใช้
type Controllers struct {
	Hotels   *controllers.HotelController
	Bookings *controllers.BookingController
	Auth     *controllers.AuthController
	Admin    *controllers.AdminController
}

// SetupRouter รับ Controller Instances เข้ามาเพื่อกำหนด Route
func SetupRouter(ctrls Controllers, users *services.UserService, admins *services.AdminService, tokens utils.TokenIssuer) *gin.Engine {
	registerValidators()

	r := gin.New()
	r.Use(middleware.Logger(), gin.Recovery())

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	requireAdmin := middleware.RequireAdmin(admins)
	requireUser := middleware.RequireUser(users)
	can := middleware.RequirePermission

	api := r.Group("/api", middleware.Authenticate(tokens))
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", ctrls.Auth.Register)
			auth.POST("/login", ctrls.Auth.Login)
			auth.GET("/me", requireUser, ctrls.Auth.Me)
		}

		api.POST("/admin/login", ctrls.Auth.AdminLogin)
		admin := api.Group("/admin", requireAdmin)
		{
			admin.GET("/me", ctrls.Admin.Me)
			admin.GET("/profile/me", ctrls.Admin.Me)
			admin.PUT("/profile/me", ctrls.Admin.UpdateProfile)
			admin.PUT("/profile/change-password", ctrls.Admin.ChangePassword)
			admin.GET("/logs/my-logins", ctrls.Admin.MyLogins)

			admin.GET("/admins", middleware.RequireSuperAdmin(), ctrls.Admin.ListAdmins)
			admin.POST("/admins", middleware.RequireSuperAdmin(), ctrls.Admin.CreateAdmin)
			admin.PUT("/admins/:id", can(models.ResourceAdmins, models.ActionEdit), ctrls.Admin.UpdateAdmin)
			admin.DELETE("/admins/:id", middleware.RequireSuperAdmin(), ctrls.Admin.DeleteAdmin)

			admin.GET("/users", can(models.ResourceUsers, models.ActionView), ctrls.Admin.ListUsers)
			admin.POST("/users", can(models.ResourceUsers, models.ActionCreate), ctrls.Admin.CreateUser)
			admin.PUT("/users/:id/role", can(models.ResourceUsers, models.ActionEdit), ctrls.Admin.UpdateUserRole)
			admin.PUT("/users/:id/status", can(models.ResourceUsers, models.ActionEdit), ctrls.Admin.UpdateUserStatus)
			admin.PUT("/users/:id/verify-hotel-owner", can(models.ResourceUsers, models.ActionEdit), ctrls.Admin.VerifyHotelOwner)
			admin.DELETE("/users/:id", can(models.ResourceUsers, models.ActionDelete), ctrls.Admin.DeleteUser)

			admin.GET("/login-logs", can(models.ResourceReports, models.ActionView), ctrls.Admin.LoginLogs)
		}

		hotels := api.Group("/hotels")
		{
			hotels.GET("", middleware.OptionalAdmin(admins), ctrls.Hotels.ListHotels)

			// ต้องอยู่ก่อน /:id
			hotels.GET("/pending", requireAdmin, can(models.ResourceHotels, models.ActionView), ctrls.Hotels.ListPendingHotels)

			hotels.GET("/:id", middleware.OptionalAdmin(admins), ctrls.Hotels.GetHotel)
			hotels.POST("", middleware.RequireAccount(users, admins, models.UserRoleHotelOwner), ctrls.Hotels.CreateHotel)
			hotels.PUT("/:id", requireAdmin, can(models.ResourceHotels, models.ActionEdit), ctrls.Hotels.UpdateHotel)
			hotels.PUT("/:id/verify", requireAdmin, can(models.ResourceHotels, models.ActionEdit), ctrls.Hotels.VerifyHotel)
			hotels.DELETE("/:id", requireAdmin, can(models.ResourceHotels, models.ActionDelete), ctrls.Hotels.DeleteHotel)

			hotels.PUT("/:id/pricing", requireAdmin, can(models.ResourceHotels, models.ActionEdit), ctrls.Hotels.RefreshPricing)
			hotels.PUT("/:id/pricing-settings", requireAdmin, can(models.ResourceHotels, models.ActionEdit), ctrls.Hotels.UpdatePricingSettings)
			hotels.GET("/:id/pricing-analytics", requireAdmin, can(models.ResourceReports, models.ActionView), ctrls.Hotels.PricingAnalytics)
			hotels.PUT("/:id/room-types/:roomTypeId/availability", requireAdmin, can(models.ResourceHotels, models.ActionEdit), ctrls.Hotels.UpdateRoomAvailability)
		}

		// พอร์ทัลเจ้าของโรงแรม
		owner := api.Group("/owner", requireUser, middleware.RequireHotelOwner())
		{
			owner.GET("/hotels", ctrls.Hotels.ListMyHotels)
			owner.PUT("/hotels/:id", ctrls.Hotels.UpdateMyHotel)
			owner.GET("/hotels/:id/analytics", ctrls.Hotels.MyHotelAnalytics)
		}

		bookings := api.Group("/bookings")
		{
			bookings.POST("", requireUser, ctrls.Bookings.CreateBooking)
			bookings.GET("/admin/all", requireAdmin, can(models.ResourceBookings, models.ActionView), ctrls.Bookings.ListAllBookings)
			bookings.GET("/user/:userId", middleware.RequireAccount(users, admins), ctrls.Bookings.ListUserBookings)
			bookings.PUT("/:id/status", requireAdmin, can(models.ResourceBookings, models.ActionEdit), ctrls.Bookings.UpdateBookingStatus)
			bookings.DELETE("/:id", requireAdmin, can(models.ResourceBookings, models.ActionDelete), ctrls.Bookings.DeleteBooking)
		}
	}

	return r
}
