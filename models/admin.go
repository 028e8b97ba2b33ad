package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	AdminRoleSuperAdmin = "super_admin"
	AdminRoleAdmin      = "admin"
	AdminRoleManager    = "manager"
	AdminRoleSupport    = "support"
	AdminRoleFinance    = "finance"
	AdminRoleHotelOwner = "hotel_owner"
)

const (
	AdminStatusActive    = "active"
	AdminStatusInactive  = "inactive"
	AdminStatusSuspended = "suspended"
)

func IsValidAdminRole(s string) bool {
	switch s {
	case AdminRoleSuperAdmin, AdminRoleAdmin, AdminRoleManager, AdminRoleSupport, AdminRoleFinance, AdminRoleHotelOwner:
		return true
	}
	return false
}

func IsValidAdminStatus(s string) bool {
	switch s {
	case AdminStatusActive, AdminStatusInactive, AdminStatusSuspended:
		return true
	}
	return false
}

type Admin struct {
	ID          uint                            `gorm:"primaryKey" json:"id"`
	Name        string                          `gorm:"size:255;not null" json:"name"`
	Email       string                          `gorm:"uniqueIndex;size:150;not null" json:"email"`
	Password    string                          `gorm:"size:255;not null" json:"-"` // store hashed password, never return in JSON
	Role        string                          `gorm:"size:32;not null" json:"role"`
	Permissions datatypes.JSONType[Permissions] `json:"permissions"`
	Status      string                          `gorm:"size:32;not null" json:"status"`
	Phone       string                          `gorm:"size:50" json:"phone,omitempty"`
	LastLogin   *time.Time                      `json:"lastLogin,omitempty"`
	CreatedBy   *uint                           `json:"createdBy,omitempty"`
	CreatedAt   time.Time                       `json:"createdAt"`
	UpdatedAt   time.Time                       `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt                  `gorm:"index" json:"-"`
}

// Can reports whether the admin may perform action on resource.
// Super admins are never restricted.
func (a Admin) Can(resource, action string) bool {
	if a.Role == AdminRoleSuperAdmin {
		return true
	}
	return a.Permissions.Data().Allows(resource, action)
}
