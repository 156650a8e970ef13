package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ezguapp/medalert/internal/db"
	"gorm.io/gorm"
)

var (
	// ErrProfileInvalidInput 当性别或活动水平取值非法时返回
	ErrProfileInvalidInput = errors.New("invalid profile input")
)

// ProfileInput 描述编辑个人资料时可设置的字段
// 指针字段区分“未填写”与显式清空
type ProfileInput struct {
	BirthDate     *time.Time
	Phone         string
	IsCaregiver   bool
	WeightKg      *float64
	HeightCm      *float64
	Sex           *string
	ActivityLevel *string
}

// ProfileService 负责用户资料的读取与更新
type ProfileService struct {
	db *gorm.DB
}

// NewProfileService 构造 ProfileService
func NewProfileService(gdb *gorm.DB) *ProfileService {
	return &ProfileService{db: gdb}
}

// Get returns the user's profile, creating an empty row on first access.
func (s *ProfileService) Get(userID uint) (*db.UserProfile, error) {
	var profile db.UserProfile
	err := s.db.Where("user_id = ?", userID).First(&profile).Error
	if err == nil {
		return &profile, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	profile = db.UserProfile{UserID: userID}
	if err := s.db.Create(&profile).Error; err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}
	return &profile, nil
}

// Update overwrites the editable profile fields. Sex and activity level are
// validated against the known enum values when present.
func (s *ProfileService) Update(userID uint, input ProfileInput) (*db.UserProfile, error) {
	if err := validateProfileInput(input); err != nil {
		return nil, err
	}

	profile, err := s.Get(userID)
	if err != nil {
		return nil, err
	}

	profile.BirthDate = input.BirthDate
	profile.Phone = strings.TrimSpace(input.Phone)
	profile.IsCaregiver = input.IsCaregiver
	profile.WeightKg = input.WeightKg
	profile.HeightCm = input.HeightCm
	profile.Sex = input.Sex
	profile.ActivityLevel = input.ActivityLevel

	if err := s.db.Save(profile).Error; err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return profile, nil
}

// CompletePhysiology updates only the fields the hydration calculator needs,
// leaving the rest of the profile untouched.
func (s *ProfileService) CompletePhysiology(userID uint, weightKg, heightCm *float64, sex, activityLevel *string) (*db.UserProfile, error) {
	if err := validateProfileInput(ProfileInput{Sex: sex, ActivityLevel: activityLevel}); err != nil {
		return nil, err
	}

	profile, err := s.Get(userID)
	if err != nil {
		return nil, err
	}

	profile.WeightKg = weightKg
	profile.HeightCm = heightCm
	profile.Sex = sex
	profile.ActivityLevel = activityLevel

	if err := s.db.Save(profile).Error; err != nil {
		return nil, fmt.Errorf("complete profile: %w", err)
	}
	return profile, nil
}

func validateProfileInput(input ProfileInput) error {
	if input.Sex != nil {
		switch *input.Sex {
		case db.SexMale, db.SexFemale:
		default:
			return fmt.Errorf("%w: unsupported sex %q", ErrProfileInvalidInput, *input.Sex)
		}
	}

	if input.ActivityLevel != nil {
		switch *input.ActivityLevel {
		case db.ActivitySedentary, db.ActivityLight, db.ActivityModerate, db.ActivityIntense:
		default:
			return fmt.Errorf("%w: unsupported activity level %q", ErrProfileInvalidInput, *input.ActivityLevel)
		}
	}

	return nil
}
