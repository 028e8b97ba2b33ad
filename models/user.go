package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	UserRoleUser       = "user"
	UserRoleHotelOwner = "hotel_owner"
	UserRoleAdmin      = "admin"
	UserRoleSupport    = "support"
)

const (
	UserStatusActive  = "active"
	UserStatusBlocked = "blocked"
	UserStatusPending = "pending"
)

// Hotel owner verification states.
const (
	OwnerVerificationPending  = "pending"
	OwnerVerificationVerified = "verified"
	OwnerVerificationRejected = "rejected"
)

func IsValidOwnerVerification(s string) bool {
	switch s {
	case OwnerVerificationPending, OwnerVerificationVerified, OwnerVerificationRejected:
		return true
	}
	return false
}

func IsValidUserRole(s string) bool {
	switch s {
	case UserRoleUser, UserRoleHotelOwner, UserRoleAdmin, UserRoleSupport:
		return true
	}
	return false
}

func IsValidUserStatus(s string) bool {
	switch s {
	case UserStatusActive, UserStatusBlocked, UserStatusPending:
		return true
	}
	return false
}

// User is a marketplace customer or hotel owner. Staff accounts are Admins.
type User struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	Name       string         `gorm:"size:255;not null" json:"name"`
	Email      string         `gorm:"uniqueIndex;size:150;not null" json:"email"`
	Password   string         `gorm:"size:255" json:"-"` // bcrypt hash
	Phone      string         `gorm:"size:50" json:"phone,omitempty"`
	Role       string         `gorm:"size:32;not null" json:"role"`
	Status     string         `gorm:"size:32;not null" json:"status"`
	IsVerified bool           `json:"isVerified"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// hotel owners only
	BusinessName            string     `gorm:"size:255" json:"businessName,omitempty"`
	OwnerVerificationStatus string     `gorm:"size:32" json:"ownerVerificationStatus,omitempty"`
	OwnerVerificationNotes  string     `gorm:"type:text" json:"ownerVerificationNotes,omitempty"`
	OwnerRejectionReason    string     `gorm:"type:text" json:"ownerRejectionReason,omitempty"`
	OwnerVerifiedBy         *uint      `json:"ownerVerifiedBy,omitempty"`
	OwnerVerifiedAt         *time.Time `json:"ownerVerifiedAt,omitempty"`
}
