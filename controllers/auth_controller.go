package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel-marketplace/middleware"
	"hotel-marketplace/models"
	"hotel-marketplace/services"
	"hotel-marketplace/utils"
)

type loginPayload struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthController handles user and admin login. Every attempt is written to the
// login log.
type AuthController struct {
	Users  *services.UserService
	Admins *services.AdminService
	Logs   *services.LoginLogService
	Tokens utils.TokenIssuer
}

func NewAuthController(users *services.UserService, admins *services.AdminService, logs *services.LoginLogService, tokens utils.TokenIssuer) *AuthController {
	return &AuthController{Users: users, Admins: admins, Logs: logs, Tokens: tokens}
}

func (ctrl *AuthController) record(c *gin.Context, subjectType, email string, id *uint, name, reason string) {
	status := models.LoginSuccess
	if reason != "" {
		status = models.LoginFailed
	}
	ctrl.Logs.Record(models.LoginLog{
		SubjectID:     id,
		SubjectType:   subjectType,
		Email:         email,
		Name:          name,
		IPAddress:     c.ClientIP(),
		UserAgent:     c.Request.UserAgent(),
		Status:        status,
		FailureReason: reason,
	})
}

// POST /api/auth/register
func (ctrl *AuthController) Register(c *gin.Context) {
	var in services.RegisterUserInput
	if !bindJSON(c, &in) {
		return
	}
	user, err := ctrl.Users.Register(in)
	if err != nil {
		respondError(c, "register", err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, gin.H{"message": "Registration successful", "user": user})
}

// POST /api/auth/login
func (ctrl *AuthController) Login(c *gin.Context) {
	var payload loginPayload
	if !bindJSON(c, &payload) {
		return
	}

	user, reason, err := ctrl.Users.Authenticate(payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) || errors.Is(err, services.ErrAccountInactive) {
			var id *uint
			name := ""
			if user != nil {
				id, name = &user.ID, user.Name
			}
			ctrl.record(c, models.SubjectUser, payload.Email, id, name, reason)
		}
		respondError(c, "user login", err)
		return
	}

	token, err := ctrl.Tokens.Issue(utils.KindUser, user.ID, user.Role)
	if err != nil {
		respondError(c, "issue user token", err)
		return
	}
	ctrl.record(c, models.SubjectUser, user.Email, &user.ID, user.Name, "")

	utils.JSONSuccess(c, http.StatusOK, gin.H{"token": token, "user": user})
}

// GET /api/auth/me
func (ctrl *AuthController) Me(c *gin.Context) {
	user, _ := middleware.UserFrom(c)
	utils.JSONSuccess(c, http.StatusOK, gin.H{"user": user})
}

// POST /api/admin/login
func (ctrl *AuthController) AdminLogin(c *gin.Context) {
	var payload loginPayload
	if !bindJSON(c, &payload) {
		return
	}

	admin, reason, err := ctrl.Admins.Authenticate(payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) || errors.Is(err, services.ErrAccountInactive) {
			var id *uint
			name := ""
			if admin != nil {
				id, name = &admin.ID, admin.Name
			}
			ctrl.record(c, models.SubjectAdmin, payload.Email, id, name, reason)
		}
		respondError(c, "admin login", err)
		return
	}

	token, err := ctrl.Tokens.Issue(utils.KindAdmin, admin.ID, admin.Role)
	if err != nil {
		respondError(c, "issue admin token", err)
		return
	}
	ctrl.record(c, models.SubjectAdmin, admin.Email, &admin.ID, admin.Name, "")

	utils.JSONSuccess(c, http.StatusOK, gin.H{"token": token, "admin": admin})
}
