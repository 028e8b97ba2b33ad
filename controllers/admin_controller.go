package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hotel-marketplace/middleware"
	"hotel-marketplace/models"
	"hotel-marketplace/services"
	"hotel-marketplace/utils"
)

type rolePayload struct {
	Role string `json:"role" binding:"required"`
}

type statusPayload struct {
	Status string `json:"status" binding:"required"`
}

// AdminController manages admins, marketplace users and the login log.
type AdminController struct {
	Admins *services.AdminService
	Users  *services.UserService
	Logs   *services.LoginLogService
}

func NewAdminController(admins *services.AdminService, users *services.UserService, logs *services.LoginLogService) *AdminController {
	return &AdminController{Admins: admins, Users: users, Logs: logs}
}

// GET /api/admin/me
func (ctrl *AdminController) Me(c *gin.Context) {
	admin, _ := middleware.AdminFrom(c)
	utils.JSONSuccess(c, http.StatusOK, gin.H{"admin": admin})
}

// GET /api/admin/admins
func (ctrl *AdminController) ListAdmins(c *gin.Context) {
	admins, err := ctrl.Admins.List()
	if err != nil {
		respondError(c, "list admins", err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"admins": admins})
}

// POST /api/admin/admins
func (ctrl *AdminController) CreateAdmin(c *gin.Context) {
	var in services.CreateAdminInput
	if !bindJSON(c, &in) {
		return
	}
	creator, _ := middleware.AdminFrom(c)

	admin, err := ctrl.Admins.Create(in, &creator.ID)
	if err != nil {
		respondError(c, "create admin", err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, gin.H{"message": "Admin created successfully", "admin": admin})
}

// PUT /api/admin/admins/:id
func (ctrl *AdminController) UpdateAdmin(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var in services.UpdateAdminInput
	if !bindJSON(c, &in) {
		return
	}
	actor, _ := middleware.AdminFrom(c)

	admin, err := ctrl.Admins.Update(id, in, actor)
	if err != nil {
		respondError(c, "update admin", err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "Admin updated successfully", "admin": admin})
}

// PUT /api/admin/profile/me
func (ctrl *AdminController) UpdateProfile(c *gin.Context) {
	var in services.AdminProfileInput
	if !bindJSON(c, &in) {
		return
	}
	self, _ := middleware.AdminFrom(c)

	admin, err := ctrl.Admins.UpdateProfile(self.ID, in)
	if err != nil {
		respondError(c, "update admin profile", err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "Profile updated successfully", "admin": admin})
}

// PUT /api/admin/profile/change-password
func (ctrl *AdminController) ChangePassword(c *gin.Context) {
	var in services.ChangePasswordInput
	if !bindJSON(c, &in) {
		return
	}
	self, _ := middleware.AdminFrom(c)

	if err := ctrl.Admins.ChangePassword(self.ID, in); err != nil {
		respondError(c, "change admin password", err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "Password changed successfully"})
}

// GET /api/admin/logs/my-logins
func (ctrl *AdminController) MyLogins(c *gin.Context) {
	self, _ := middleware.AdminFrom(c)
	logs, err := ctrl.Logs.Recent(20, models.SubjectAdmin, &self.ID)
	if err != nil {
		respondError(c, "list my logins", err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"logs": logs})
}

// DELETE /api/admin/admins/:id
func (ctrl *AdminController) DeleteAdmin(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if self, _ := middleware.AdminFrom(c); self != nil && self.ID == id {
		utils.JSONError(c, http.StatusBadRequest, "You cannot delete your own account")
		return
	}
	if err := ctrl.Admins.Delete(id); err != nil {
		respondError(c, "delete admin", err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "Admin deleted successfully"})
}

// GET /api/admin/users
func (ctrl *AdminController) ListUsers(c *gin.Context) {
	users, err := ctrl.Users.List()
	if err != nil {
		respondError(c, "list users", err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"users": users})
}

// POST /api/admin/users
func (ctrl *AdminController) CreateUser(c *gin.Context) {
	var in services.RegisterUserInput
	if !bindJSON(c, &in) {
		return
	}
	user, err := ctrl.Users.CreateByAdmin(in)
	if err != nil {
		respondError(c, "create user", err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, gin.H{"message": "User created successfully", "user": user})
}

// PUT /api/admin/users/:id/role
func (ctrl *AdminController) UpdateUserRole(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var payload rolePayload
	if !bindJSON(c, &payload) {
		return
	}
	user, err := ctrl.Users.UpdateRole(id, payload.Role)
	if err != nil {
		respondError(c, "update user role", err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "User role updated successfully", "user": user})
}

// PUT /api/admin/users/:id/status
func (ctrl *AdminController) UpdateUserStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var payload statusPayload
	if !bindJSON(c, &payload) {
		return
	}
	user, err := ctrl.Users.UpdateStatus(id, payload.Status)
	if err != nil {
		respondError(c, "update user status", err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "User status updated", "user": user})
}

// PUT /api/admin/users/:id/verify-hotel-owner
func (ctrl *AdminController) VerifyHotelOwner(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var in services.VerifyOwnerInput
	if !bindJSON(c, &in) {
		return
	}
	admin, _ := middleware.AdminFrom(c)

	user, err := ctrl.Users.VerifyHotelOwner(id, in, admin.ID)
	if err != nil {
		respondError(c, "verify hotel owner", err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"message": "Hotel owner " + user.OwnerVerificationStatus + " successfully",
		"user":    user,
	})
}

// DELETE /api/admin/users/:id
func (ctrl *AdminController) DeleteUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := ctrl.Users.Delete(id); err != nil {
		respondError(c, "delete user", err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "User deleted successfully"})
}

// GET /api/admin/login-logs?limit=&subjectType=&subjectId=
func (ctrl *AdminController) LoginLogs(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	var subjectID *uint
	if raw := c.Query("subjectId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid subjectId")
			return
		}
		v := uint(id)
		subjectID = &v
	}

	logs, err := ctrl.Logs.Recent(limit, c.Query("subjectType"), subjectID)
	if err != nil {
		respondError(c, "list login logs", err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"logs": logs})
}
