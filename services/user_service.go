package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"hotel-marketplace/models"
	"hotel-marketplace/utils"
)

type UserService struct {
	DB *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db}
}

type RegisterUserInput struct {
	Name         string `json:"name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=6"`
	Phone        string `json:"phone"`
	Role         string `json:"role"`
	BusinessName string `json:"businessName"`
}

type VerifyOwnerInput struct {
	VerificationStatus string `json:"verificationStatus" binding:"required"`
	VerificationNotes  string `json:"verificationNotes"`
	RejectionReason    string `json:"rejectionReason"`
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a local account. Only "user" and "hotel_owner" may be
// self-selected; anything else falls back to "user".
func (s *UserService) Register(in RegisterUserInput) (*models.User, error) {
	role := in.Role
	if role != models.UserRoleHotelOwner {
		role = models.UserRoleUser
	}
	return s.create(in, role, false)
}

// CreateByAdmin creates an account with any valid role, already verified.
func (s *UserService) CreateByAdmin(in RegisterUserInput) (*models.User, error) {
	role := in.Role
	if role == "" {
		role = models.UserRoleUser
	}
	if !models.IsValidUserRole(role) {
		return nil, ErrInvalidRole
	}
	return s.create(in, role, true)
}

func (s *UserService) create(in RegisterUserInput, role string, verified bool) (*models.User, error) {
	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Name:       strings.TrimSpace(in.Name),
		Email:      normalizeEmail(in.Email),
		Password:   hash,
		Phone:      strings.TrimSpace(in.Phone),
		Role:       role,
		Status:     models.UserStatusActive,
		IsVerified: verified,
	}
	if role == models.UserRoleHotelOwner {
		user.BusinessName = strings.TrimSpace(in.BusinessName)
		user.OwnerVerificationStatus = models.OwnerVerificationPending
	}

	var count int64
	if err := s.DB.Model(&models.User{}).Where("email = ?", user.Email).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if count > 0 {
		return nil, ErrDuplicateEmail
	}

	if err := s.DB.Create(&user).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &user, nil
}

// Authenticate checks credentials. The returned reason is meant for the login
// log, never for the client.
func (s *UserService) Authenticate(email, password string) (*models.User, string, error) {
	var user models.User
	if err := s.DB.Where("email = ?", normalizeEmail(email)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "User not found", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to load user: %w", err)
	}
	if user.Status == models.UserStatusBlocked {
		return &user, "Account blocked", ErrAccountInactive
	}
	if !utils.CheckPassword(user.Password, password) {
		return &user, "Invalid password", ErrInvalidCredentials
	}
	return &user, "", nil
}

func (s *UserService) GetByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user %d: %w", id, err)
	}
	return &user, nil
}

func (s *UserService) List() ([]models.User, error) {
	var users []models.User
	if err := s.DB.Order("created_at DESC").Order("id DESC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// UpdateRole changes a user's role. Users becoming hotel owners start with a
// pending owner verification.
func (s *UserService) UpdateRole(id uint, role string) (*models.User, error) {
	if !models.IsValidUserRole(role) {
		return nil, ErrInvalidRole
	}
	user, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	changes := map[string]interface{}{"role": role}
	if role == models.UserRoleHotelOwner && user.OwnerVerificationStatus == "" {
		changes["owner_verification_status"] = models.OwnerVerificationPending
	}
	return s.update(user, changes)
}

func (s *UserService) UpdateStatus(id uint, status string) (*models.User, error) {
	if !models.IsValidUserStatus(status) {
		return nil, ErrInvalidStatus
	}
	user, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	return s.update(user, map[string]interface{}{"status": status})
}

// VerifyHotelOwner records an admin's decision on a hotel owner account. The
// rejection reason is kept only while the owner is rejected.
func (s *UserService) VerifyHotelOwner(id uint, in VerifyOwnerInput, adminID uint) (*models.User, error) {
	if !models.IsValidOwnerVerification(in.VerificationStatus) {
		return nil, ErrInvalidStatus
	}
	user, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user.Role != models.UserRoleHotelOwner {
		return nil, ErrNotHotelOwner
	}

	reason := ""
	if in.VerificationStatus == models.OwnerVerificationRejected {
		reason = in.RejectionReason
	}
	changes := map[string]interface{}{
		"owner_verification_status": in.VerificationStatus,
		"owner_rejection_reason":    reason,
		"owner_verified_by":         adminID,
		"owner_verified_at":         time.Now(),
	}
	if in.VerificationNotes != "" {
		changes["owner_verification_notes"] = in.VerificationNotes
	}
	return s.update(user, changes)
}

func (s *UserService) update(user *models.User, changes map[string]interface{}) (*models.User, error) {
	if err := s.DB.Model(user).Updates(changes).Error; err != nil {
		return nil, fmt.Errorf("failed to update user %d: %w", user.ID, err)
	}
	return s.GetByID(user.ID)
}

func (s *UserService) Delete(id uint) error {
	res := s.DB.Delete(&models.User{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete user %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}
