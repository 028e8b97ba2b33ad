package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"hotel-marketplace/models"
	"hotel-marketplace/services"
	"hotel-marketplace/utils"
)

const (
	claimsKey = "authClaims"
	adminKey  = "authAdmin"
	userKey   = "authUser"
)

func bearerToken(c *gin.Context) string {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}

// Authenticate parses the bearer token when one is sent. It never rejects a
// request; the Require* middlewares do that.
func Authenticate(tokens utils.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw := bearerToken(c); raw != "" {
			if claims, err := tokens.Parse(raw); err == nil {
				c.Set(claimsKey, claims)
			}
		}
		c.Next()
	}
}

func ClaimsFrom(c *gin.Context) (*utils.Claims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*utils.Claims)
	return claims, ok
}

// AdminFrom returns the admin loaded by RequireAdmin or OptionalAdmin.
func AdminFrom(c *gin.Context) (*models.Admin, bool) {
	v, ok := c.Get(adminKey)
	if !ok {
		return nil, false
	}
	admin, ok := v.(*models.Admin)
	return admin, ok
}

// UserFrom returns the user loaded by RequireUser or RequireAccount.
func UserFrom(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(userKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}

// UserIDFrom returns the id of the user the token was issued to.
func UserIDFrom(c *gin.Context) (uint, bool) {
	claims, ok := ClaimsFrom(c)
	if !ok || claims.Kind != utils.KindUser {
		return 0, false
	}
	id, err := claims.SubjectID()
	if err != nil {
		return 0, false
	}
	return id, true
}

// IsAdminRequest reports whether an active admin is behind the request.
func IsAdminRequest(c *gin.Context) bool {
	_, ok := AdminFrom(c)
	return ok
}

func loadUser(c *gin.Context, users *services.UserService) (*models.User, error) {
	id, ok := UserIDFrom(c)
	if !ok {
		return nil, utils.ErrInvalidToken
	}
	user, err := users.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user.Status == models.UserStatusBlocked {
		return nil, services.ErrAccountInactive
	}
	return user, nil
}

// RequireUser reloads the user behind the token so blocked and deleted
// accounts lose access before their token expires.
func RequireUser(users *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := loadUser(c, users)
		if !abortOnAccountError(c, err, "Not authorized, user token required") {
			return
		}
		c.Set(userKey, user)
		c.Next()
	}
}

// RequireHotelOwner must run after RequireUser.
func RequireHotelOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := UserFrom(c)
		if !ok || user.Role != models.UserRoleHotelOwner {
			utils.AbortJSONError(c, http.StatusForbidden, "Access denied, hotel owner account required")
			return
		}
		c.Next()
	}
}

// RequireAccount accepts an active admin or an active user. With roles given,
// users must hold one of them; admins always pass.
func RequireAccount(users *services.UserService, admins *services.AdminService, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := ClaimsFrom(c)
		if ok && claims.Kind == utils.KindAdmin {
			admin, err := loadAdmin(c, admins)
			if !abortOnAccountError(c, err, "Not authorized, token missing or invalid") {
				return
			}
			c.Set(adminKey, admin)
			c.Next()
			return
		}

		user, err := loadUser(c, users)
		if !abortOnAccountError(c, err, "Not authorized, token missing or invalid") {
			return
		}
		if len(roles) > 0 && !hasRole(user.Role, roles) {
			utils.AbortJSONError(c, http.StatusForbidden, "Access denied for role "+user.Role)
			return
		}
		c.Set(userKey, user)
		c.Next()
	}
}

func hasRole(role string, roles []string) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

// abortOnAccountError answers 403 for inactive accounts and 401 for missing
// ones. It reports whether the request may continue.
func abortOnAccountError(c *gin.Context, err error, unauthorized string) bool {
	switch {
	case err == nil:
		return true
	case errors.Is(err, services.ErrAccountInactive):
		utils.AbortJSONError(c, http.StatusForbidden, "Account is not active")
	case errors.Is(err, utils.ErrInvalidToken),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrAdminNotFound):
		utils.AbortJSONError(c, http.StatusUnauthorized, unauthorized)
	default:
		utils.AbortJSONError(c, http.StatusInternalServerError, "Failed to load account")
	}
	return false
}

func loadAdmin(c *gin.Context, admins *services.AdminService) (*models.Admin, error) {
	claims, ok := ClaimsFrom(c)
	if !ok || claims.Kind != utils.KindAdmin {
		return nil, utils.ErrInvalidToken
	}
	id, err := claims.SubjectID()
	if err != nil {
		return nil, err
	}
	admin, err := admins.GetByID(id)
	if err != nil {
		return nil, err
	}
	if admin.Status != models.AdminStatusActive {
		return nil, services.ErrAccountInactive
	}
	return admin, nil
}

// RequireAdmin loads the admin behind the token and rejects inactive ones.
func RequireAdmin(admins *services.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		admin, err := loadAdmin(c, admins)
		switch {
		case errors.Is(err, services.ErrAccountInactive):
			utils.AbortJSONError(c, http.StatusForbidden, "Admin account is not active")
			return
		case errors.Is(err, utils.ErrInvalidToken), errors.Is(err, services.ErrAdminNotFound):
			utils.AbortJSONError(c, http.StatusUnauthorized, "Not authorized, admin token required")
			return
		case err != nil:
			utils.AbortJSONError(c, http.StatusInternalServerError, "Failed to load admin")
			return
		}
		c.Set(adminKey, admin)
		c.Next()
	}
}

// OptionalAdmin loads the admin when an admin token is sent and otherwise lets
// the request through anonymously.
func OptionalAdmin(admins *services.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if admin, err := loadAdmin(c, admins); err == nil {
			c.Set(adminKey, admin)
		}
		c.Next()
	}
}

// RequirePermission must run after RequireAdmin.
func RequirePermission(resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		admin, ok := AdminFrom(c)
		if !ok {
			utils.AbortJSONError(c, http.StatusUnauthorized, "Not authorized, admin token required")
			return
		}
		if !admin.Can(resource, action) {
			utils.AbortJSONError(c, http.StatusForbidden, "Permission denied: "+action+" "+resource)
			return
		}
		c.Next()
	}
}

func RequireSuperAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		admin, ok := AdminFrom(c)
		if !ok || admin.Role != models.AdminRoleSuperAdmin {
			utils.AbortJSONError(c, http.StatusForbidden, "Super admin access required")
			return
		}
		c.Next()
	}
}
