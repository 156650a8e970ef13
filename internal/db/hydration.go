package db

import (
	"time"

	"gorm.io/gorm"
)

// HydrationRecord counts the cups of water a user drank on one calendar day.
// UserID + Day carry a unique index so there is exactly one row per user per
// day; CupsGoal is snapshotted when the row is created.
type HydrationRecord struct {
	gorm.Model
	UserID    uint      `gorm:"index;index:idx_hydration_user_day,unique"`
	User      User      `gorm:"constraint:OnDelete:CASCADE"`
	Day       time.Time `gorm:"index:idx_hydration_user_day,unique"`
	CupsTaken uint      `gorm:"default:0"`
	CupsGoal  uint      `gorm:"not null"`
}

// TableName ensures the unique index lands on user_id + day.
func (HydrationRecord) TableName() string {
	return "hydration_records"
}
