package service

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/ezguapp/medalert/internal/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultGoalCups is returned when the profile lacks the data the
// calculator needs.
const DefaultGoalCups = 8

const cupMilliliters = 250.0

var (
	// ErrHydrationRecordNotFound 当目标日期没有记录时返回
	ErrHydrationRecordNotFound = errors.New("hydration record not found")
)

// ComputeGoalCups converts body metrics into a daily water target in 250 ml
// cups. Base requirement is 35 ml per kg, adjusted additively for activity
// level and sex. A missing or zero weight degrades to DefaultGoalCups.
func ComputeGoalCups(weightKg float64, activityLevel string, sex string) uint {
	if weightKg <= 0 {
		return DefaultGoalCups
	}

	ml := weightKg * 35

	switch activityLevel {
	case db.ActivityLight:
		ml += 300
	case db.ActivityModerate:
		ml += 600
	case db.ActivityIntense:
		ml += 1000
	}

	if sex == db.SexMale {
		ml += 250
	}

	return uint(math.Round(ml / cupMilliliters))
}

// GoalForProfile computes the daily goal from a stored profile, falling back
// to the default when the physiological data is incomplete.
func GoalForProfile(profile *db.UserProfile) uint {
	if profile == nil || !profile.HydrationReady() {
		return DefaultGoalCups
	}
	return ComputeGoalCups(*profile.WeightKg, *profile.ActivityLevel, *profile.Sex)
}

// HydrationService 负责每日饮水记录的读取与累加
type HydrationService struct {
	db            *gorm.DB
	notifications *NotificationService
}

// NewHydrationService 构造 HydrationService
func NewHydrationService(gdb *gorm.DB) *HydrationService {
	return &HydrationService{db: gdb, notifications: NewNotificationService(gdb)}
}

// TodayRecord returns the user's record for the given day, creating it with
// CupsTaken=0 and the supplied goal when it does not exist yet. The goal is
// evaluated exactly once, at creation: later profile edits do not rewrite a
// day already in progress (product decision, kept from the original app).
func (s *HydrationService) TodayRecord(userID uint, day time.Time, goal uint) (*db.HydrationRecord, error) {
	logDate := normalizeToDate(day)

	record := db.HydrationRecord{
		UserID:   userID,
		Day:      logDate,
		CupsGoal: goal,
	}

	// ON CONFLICT DO NOTHING keeps creation idempotent against the unique
	// (user_id, day) index; the reload returns whichever row won.
	if err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "day"}},
		DoNothing: true,
	}).Create(&record).Error; err != nil {
		return nil, fmt.Errorf("create hydration record: %w", err)
	}

	if err := s.db.Where("user_id = ? AND day = ?", userID, logDate).First(&record).Error; err != nil {
		return nil, fmt.Errorf("reload hydration record: %w", err)
	}

	return &record, nil
}

// AddCup increments the day's counter by one. The increment runs as a single
// UPDATE so concurrent requests never lose a cup to a read-modify-write race.
func (s *HydrationService) AddCup(userID uint, day time.Time) (*db.HydrationRecord, error) {
	logDate := normalizeToDate(day)

	result := s.db.Model(&db.HydrationRecord{}).
		Where("user_id = ? AND day = ?", userID, logDate).
		Update("cups_taken", gorm.Expr("cups_taken + 1"))
	if result.Error != nil {
		return nil, fmt.Errorf("add cup: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrHydrationRecordNotFound
	}

	var record db.HydrationRecord
	if err := s.db.Where("user_id = ? AND day = ?", userID, logDate).First(&record).Error; err != nil {
		return nil, fmt.Errorf("reload hydration record: %w", err)
	}

	if record.CupsGoal > 0 && record.CupsTaken == record.CupsGoal {
		// Goal just reached; keep an audit row even though nothing
		// dispatches it yet.
		msg := fmt.Sprintf("Meta de hidratación alcanzada: %d vasos", record.CupsGoal)
		if err := s.notifications.Record(userID, db.NotificationWater, msg); err != nil {
			return nil, err
		}
	}

	return &record, nil
}

// Progress returns the completion percentage rounded to one decimal.
// A zero goal yields 0 instead of dividing.
func Progress(record *db.HydrationRecord) float64 {
	if record == nil || record.CupsGoal == 0 {
		return 0
	}
	pct := float64(record.CupsTaken) / float64(record.CupsGoal) * 100
	return math.Round(pct*10) / 10
}

// normalizeToDate strips the time-of-day so (user, day) comparisons work on
// calendar dates.
func normalizeToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
