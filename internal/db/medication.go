package db

import (
	"time"

	"gorm.io/gorm"
)

// Medication describes one treatment registered by a user.
// FrequencyHours is the interval between doses; DurationDays the course
// length. Both may be zero when the user left them blank.
type Medication struct {
	gorm.Model
	UserID         uint   `gorm:"index;not null"`
	User           User   `gorm:"constraint:OnDelete:CASCADE"`
	Name           string `gorm:"size:100;not null"`
	Dose           string `gorm:"size:50"`
	FrequencyHours uint
	DurationDays   uint
	Instructions   string
	Active         bool `gorm:"default:true"`
}

// EndDate returns the calendar date the course finishes on.
func (m *Medication) EndDate() time.Time {
	return m.CreatedAt.AddDate(0, 0, int(m.DurationDays))
}

// DoseRecord is an append-only log entry marking one intake event.
// Rows are never updated or deleted; the most recent TakenAt drives the
// next-dose calculation.
type DoseRecord struct {
	gorm.Model
	MedicationID uint       `gorm:"index;not null"`
	Medication   Medication `gorm:"constraint:OnDelete:CASCADE"`
	TakenAt      time.Time  `gorm:"index;not null"`
}

// TableName keeps the table name explicit.
func (DoseRecord) TableName() string {
	return "dose_records"
}
