package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"hotel-marketplace/models"
	"hotel-marketplace/utils"
)

type AdminService struct {
	DB *gorm.DB
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{DB: db}
}

type CreateAdminInput struct {
	Name        string             `json:"name" binding:"required"`
	Email       string             `json:"email" binding:"required,email"`
	Password    string             `json:"password" binding:"required,min=6"`
	Role        string             `json:"role"`
	Phone       string             `json:"phone"`
	Permissions models.Permissions `json:"permissions"`
}

// UpdateAdminInput overwrites only the fields that are present.
type UpdateAdminInput struct {
	Name        *string             `json:"name"`
	Phone       *string             `json:"phone"`
	Role        *string             `json:"role"`
	Permissions *models.Permissions `json:"permissions"`
	Status      *string             `json:"status"`
}

type AdminProfileInput struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
}

type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
}

// Create adds an active admin. Without explicit permissions the role's
// defaults apply.
func (s *AdminService) Create(in CreateAdminInput, createdBy *uint) (*models.Admin, error) {
	role := in.Role
	if role == "" {
		role = models.AdminRoleAdmin
	}
	if !models.IsValidAdminRole(role) {
		return nil, ErrInvalidRole
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	perms := in.Permissions
	if perms == nil {
		perms = models.DefaultPermissions(role)
	}

	admin := models.Admin{
		Name:        strings.TrimSpace(in.Name),
		Email:       normalizeEmail(in.Email),
		Password:    hash,
		Role:        role,
		Permissions: datatypes.NewJSONType(perms),
		Status:      models.AdminStatusActive,
		Phone:       strings.TrimSpace(in.Phone),
		CreatedBy:   createdBy,
	}

	var count int64
	if err := s.DB.Model(&models.Admin{}).Where("email = ?", admin.Email).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if count > 0 {
		return nil, ErrDuplicateEmail
	}

	if err := s.DB.Create(&admin).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}
	return &admin, nil
}

// EnsureDefaultAdmin creates the bootstrap super admin when no admin exists.
func (s *AdminService) EnsureDefaultAdmin(email, password string) error {
	var count int64
	if err := s.DB.Model(&models.Admin{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	_, err := s.Create(CreateAdminInput{
		Name:     "Super Admin",
		Email:    email,
		Password: password,
		Role:     models.AdminRoleSuperAdmin,
	}, nil)
	if err != nil {
		return fmt.Errorf("failed to seed default admin: %w", err)
	}
	log.Printf("✅ Default super admin %s seeded", normalizeEmail(email))
	return nil
}

// Authenticate checks admin credentials and stamps the last login on success.
// The returned reason is meant for the login log.
func (s *AdminService) Authenticate(email, password string) (*models.Admin, string, error) {
	var admin models.Admin
	if err := s.DB.Where("email = ?", normalizeEmail(email)).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "Admin not found", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to load admin: %w", err)
	}
	if admin.Status != models.AdminStatusActive {
		return &admin, "Account not active", ErrAccountInactive
	}
	if !utils.CheckPassword(admin.Password, password) {
		return &admin, "Invalid password", ErrInvalidCredentials
	}

	now := time.Now()
	if err := s.DB.Model(&admin).Update("last_login", now).Error; err != nil {
		log.Printf("⚠️  failed to record last login of admin %d: %v", admin.ID, err)
	}
	admin.LastLogin = &now
	return &admin, "", nil
}

func (s *AdminService) GetByID(id uint) (*models.Admin, error) {
	var admin models.Admin
	if err := s.DB.First(&admin, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, fmt.Errorf("failed to load admin %d: %w", id, err)
	}
	return &admin, nil
}

func (s *AdminService) List() ([]models.Admin, error) {
	var admins []models.Admin
	if err := s.DB.Order("created_at DESC").Order("id DESC").Find(&admins).Error; err != nil {
		return nil, fmt.Errorf("failed to list admins: %w", err)
	}
	return admins, nil
}

// Update edits another admin on behalf of actor. Roles and permissions may
// only be changed by a super admin.
func (s *AdminService) Update(id uint, in UpdateAdminInput, actor *models.Admin) (*models.Admin, error) {
	if (in.Role != nil || in.Permissions != nil) && (actor == nil || actor.Role != models.AdminRoleSuperAdmin) {
		return nil, ErrSuperAdminOnly
	}
	if in.Role != nil && !models.IsValidAdminRole(*in.Role) {
		return nil, ErrInvalidRole
	}
	if in.Status != nil && !models.IsValidAdminStatus(*in.Status) {
		return nil, ErrInvalidStatus
	}

	admin, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	changes := profileChanges(in.Name, in.Phone)
	if in.Role != nil {
		changes["role"] = *in.Role
	}
	if in.Permissions != nil {
		changes["permissions"] = datatypes.NewJSONType(*in.Permissions)
	}
	if in.Status != nil {
		changes["status"] = *in.Status
	}
	return s.save(admin, changes)
}

// UpdateProfile lets an admin change their own name and phone.
func (s *AdminService) UpdateProfile(id uint, in AdminProfileInput) (*models.Admin, error) {
	admin, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	return s.save(admin, profileChanges(in.Name, in.Phone))
}

func (s *AdminService) ChangePassword(id uint, in ChangePasswordInput) error {
	admin, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if !utils.CheckPassword(admin.Password, in.CurrentPassword) {
		return ErrIncorrectPassword
	}
	hash, err := utils.HashPassword(in.NewPassword)
	if err != nil {
		return err
	}
	if err := s.DB.Model(admin).Update("password", hash).Error; err != nil {
		return fmt.Errorf("failed to change password of admin %d: %w", id, err)
	}
	return nil
}

func profileChanges(name, phone *string) map[string]interface{} {
	changes := map[string]interface{}{}
	if name != nil && strings.TrimSpace(*name) != "" {
		changes["name"] = strings.TrimSpace(*name)
	}
	if phone != nil {
		changes["phone"] = strings.TrimSpace(*phone)
	}
	return changes
}

func (s *AdminService) save(admin *models.Admin, changes map[string]interface{}) (*models.Admin, error) {
	if len(changes) > 0 {
		if err := s.DB.Model(admin).Updates(changes).Error; err != nil {
			return nil, fmt.Errorf("failed to update admin %d: %w", admin.ID, err)
		}
	}
	return s.GetByID(admin.ID)
}

func (s *AdminService) Delete(id uint) error {
	res := s.DB.Delete(&models.Admin{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete admin %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrAdminNotFound
	}
	return nil
}
