package models

import "time"

const (
	SubjectUser  = "User"
	SubjectAdmin = "Admin"

	LoginSuccess = "success"
	LoginFailed  = "failed"
)

type LoginLog struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	SubjectID     *uint     `gorm:"index" json:"subjectId,omitempty"`
	SubjectType   string    `gorm:"size:16;not null;index" json:"subjectType"`
	Email         string    `gorm:"size:150;not null" json:"email"`
	Name          string    `gorm:"size:255" json:"name,omitempty"`
	IPAddress     string    `gorm:"size:64" json:"ipAddress,omitempty"`
	UserAgent     string    `gorm:"size:512" json:"userAgent,omitempty"`
	LoginTime     time.Time `gorm:"index" json:"loginTime"`
	Status        string    `gorm:"size:16;not null" json:"status"`
	FailureReason string    `gorm:"size:255" json:"failureReason,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}
