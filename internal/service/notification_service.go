package service

import (
	"fmt"
	"time"

	"github.com/ezguapp/medalert/internal/db"
	"gorm.io/gorm"
)

// NotificationService 负责提醒审计记录的写入与查询
// 目前只落库不派发
type NotificationService struct {
	db *gorm.DB
}

// NewNotificationService 构造 NotificationService
func NewNotificationService(gdb *gorm.DB) *NotificationService {
	return &NotificationService{db: gdb}
}

// Record appends an audit row for a reminder. Sent stays false until a
// dispatch pipeline exists.
func (s *NotificationService) Record(userID uint, notificationType, message string) error {
	notification := db.Notification{
		UserID:  userID,
		Type:    notificationType,
		Message: message,
		SentAt:  time.Now(),
	}
	if err := s.db.Create(&notification).Error; err != nil {
		return fmt.Errorf("record notification: %w", err)
	}
	return nil
}

// List returns the user's notifications, newest first.
func (s *NotificationService) List(userID uint) ([]db.Notification, error) {
	var notifications []db.Notification
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&notifications).Error
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return notifications, nil
}
