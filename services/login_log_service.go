package services

import (
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"hotel-marketplace/models"
)

type LoginLogService struct {
	DB *gorm.DB
}

func NewLoginLogService(db *gorm.DB) *LoginLogService {
	return &LoginLogService{DB: db}
}

// Record stores a login attempt. Failing to write the log never fails the
// login itself, so errors are only logged.
func (s *LoginLogService) Record(entry models.LoginLog) {
	if entry.LoginTime.IsZero() {
		entry.LoginTime = time.Now()
	}
	if entry.Status == "" {
		entry.Status = models.LoginSuccess
	}
	if err := s.DB.Create(&entry).Error; err != nil {
		log.Printf("⚠️  failed to record %s login for %s: %v", entry.SubjectType, entry.Email, err)
	}
}

// Recent returns the newest login attempts, optionally only one subject's.
func (s *LoginLogService) Recent(limit int, subjectType string, subjectID *uint) ([]models.LoginLog, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	q := s.DB.Order("login_time DESC").Order("id DESC").Limit(limit)
	if subjectType != "" {
		q = q.Where("subject_type = ?", subjectType)
	}
	if subjectID != nil {
		q = q.Where("subject_id = ?", *subjectID)
	}

	var logs []models.LoginLog
	if err := q.Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("failed to list login logs: %w", err)
	}
	return logs, nil
}
