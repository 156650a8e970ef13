package db

import (
	"time"

	"gorm.io/gorm"
)

// Notification types.
const (
	NotificationMedication = "medicamento"
	NotificationWater      = "agua"
)

// Notification is a write-only audit row for reminders the app decided to
// send. There is no dispatch pipeline yet; Sent stays false until one exists.
type Notification struct {
	gorm.Model
	UserID  uint   `gorm:"index;not null"`
	User    User   `gorm:"constraint:OnDelete:CASCADE"`
	Type    string `gorm:"size:20;not null"`
	Message string `gorm:"not null"`
	SentAt  time.Time
	Sent    bool `gorm:"default:false"`
}
