package db

import (
	"time"

	"gorm.io/gorm"
)

// Sex values stored on UserProfile.
const (
	SexMale   = "M"
	SexFemale = "F"
)

// Activity levels stored on UserProfile.
const (
	ActivitySedentary = "sedentario"
	ActivityLight     = "ligero"
	ActivityModerate  = "moderado"
	ActivityIntense   = "intenso"
)

// UserProfile extends the base account with personal and physiological data.
// Weight/height/sex/activity are pointers so an unfilled form stays NULL
// instead of a misleading zero.
type UserProfile struct {
	gorm.Model
	UserID        uint `gorm:"uniqueIndex;not null"`
	User          User `gorm:"constraint:OnDelete:CASCADE"`
	BirthDate     *time.Time
	Phone         string `gorm:"size:20"`
	IsCaregiver   bool
	WeightKg      *float64
	HeightCm      *float64
	Sex           *string `gorm:"size:10"`
	ActivityLevel *string `gorm:"size:20"`
}

// TableName keeps the table name explicit.
func (UserProfile) TableName() string {
	return "user_profiles"
}

// HydrationReady reports whether the profile carries everything the
// hydration goal calculator needs: weight, sex and activity level.
func (p *UserProfile) HydrationReady() bool {
	return p.WeightKg != nil && *p.WeightKg > 0 && p.Sex != nil && p.ActivityLevel != nil
}
