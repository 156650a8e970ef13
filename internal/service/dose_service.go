package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/ezguapp/medalert/internal/db"
	"gorm.io/gorm"
)

var (
	// ErrMedicationNotFound 当药品不存在或不属于当前用户时返回
	ErrMedicationNotFound = errors.New("medication not found")
)

// DoseStatus is the result of evaluating a medication's intake window.
type DoseStatus struct {
	NextDueAt        time.Time
	RemainingSeconds int64
	CanTakeNow       bool
	DaysRemaining    *int
}

// NextDose computes when the next intake is allowed. With no prior dose, or
// with a zero frequency, the dose is immediately allowed. Otherwise the next
// window opens frequencyHours after the last intake.
func NextDose(lastTaken *time.Time, frequencyHours uint, now time.Time) (dueAt time.Time, remaining time.Duration, canTake bool) {
	if lastTaken == nil || frequencyHours == 0 {
		return now, 0, true
	}

	dueAt = lastTaken.Add(time.Duration(frequencyHours) * time.Hour)
	remaining = dueAt.Sub(now)
	if remaining <= 0 {
		remaining = 0
	}
	return dueAt, remaining, remaining == 0
}

// DaysRemaining returns how many days of the course are left, never negative.
// A zero duration means the course is open-ended and yields nil. A zero start
// time falls back to today, so the course appears to just begin.
func DaysRemaining(durationDays uint, start time.Time, today time.Time) *int {
	if durationDays == 0 {
		return nil
	}

	if start.IsZero() {
		start = today
	}

	elapsed := int(normalizeToDate(today).Sub(normalizeToDate(start)).Hours() / 24)
	left := int(durationDays) - elapsed
	if left < 0 {
		left = 0
	}
	return &left
}

// DoseService 负责服药窗口计算与服药记录的追加
type DoseService struct {
	db            *gorm.DB
	notifications *NotificationService
}

// NewDoseService 构造 DoseService
func NewDoseService(gdb *gorm.DB) *DoseService {
	return &DoseService{db: gdb, notifications: NewNotificationService(gdb)}
}

// Status evaluates the dose window for one medication, scoped to its owner.
// The state is recomputed from the latest dose record on every call.
func (s *DoseService) Status(userID, medicationID uint, now time.Time) (*DoseStatus, error) {
	medication, err := s.ownedMedication(userID, medicationID)
	if err != nil {
		return nil, err
	}

	lastTaken, err := s.lastTakenAt(medicationID)
	if err != nil {
		return nil, err
	}

	dueAt, remaining, canTake := NextDose(lastTaken, medication.FrequencyHours, now)
	return &DoseStatus{
		NextDueAt:        dueAt,
		RemainingSeconds: int64(remaining / time.Second),
		CanTakeNow:       canTake,
		DaysRemaining:    DaysRemaining(medication.DurationDays, medication.CreatedAt, now),
	}, nil
}

// RegisterDose appends a dose record for the medication and returns the new
// window. The log is an audit of what the user actually took, so an early
// intake is recorded all the same; the calculator only advises.
func (s *DoseService) RegisterDose(userID, medicationID uint, now time.Time) (*DoseStatus, error) {
	medication, err := s.ownedMedication(userID, medicationID)
	if err != nil {
		return nil, err
	}

	record := db.DoseRecord{MedicationID: medicationID, TakenAt: now}
	if err := s.db.Create(&record).Error; err != nil {
		return nil, fmt.Errorf("register dose: %w", err)
	}

	msg := fmt.Sprintf("Toma registrada: %s (%s)", medication.Name, medication.Dose)
	if err := s.notifications.Record(userID, db.NotificationMedication, msg); err != nil {
		return nil, err
	}

	dueAt, remaining, canTake := NextDose(&record.TakenAt, medication.FrequencyHours, now)
	return &DoseStatus{
		NextDueAt:        dueAt,
		RemainingSeconds: int64(remaining / time.Second),
		CanTakeNow:       canTake,
		DaysRemaining:    DaysRemaining(medication.DurationDays, medication.CreatedAt, now),
	}, nil
}

func (s *DoseService) ownedMedication(userID, medicationID uint) (*db.Medication, error) {
	var medication db.Medication
	err := s.db.Where("user_id = ? AND id = ?", userID, medicationID).First(&medication).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMedicationNotFound
		}
		return nil, fmt.Errorf("find medication: %w", err)
	}
	return &medication, nil
}

func (s *DoseService) lastTakenAt(medicationID uint) (*time.Time, error) {
	var record db.DoseRecord
	err := s.db.Where("medication_id = ?", medicationID).
		Order("taken_at DESC").
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load last dose: %w", err)
	}
	return &record.TakenAt, nil
}
