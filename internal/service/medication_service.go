package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ezguapp/medalert/internal/db"
	"gorm.io/gorm"
)

var (
	// ErrMedicationInvalidInput 当必填字段缺失时返回
	ErrMedicationInvalidInput = errors.New("invalid medication input")
)

// MedicationInput 定义创建药品时可配置字段
// FrequencyHours/DurationDays 已由调用方宽松解析（非法数字归零）
type MedicationInput struct {
	Name           string
	Dose           string
	FrequencyHours uint
	DurationDays   uint
	Instructions   string
}

// MedicationService 负责药品数据的增删查，所有操作按用户隔离
type MedicationService struct {
	db *gorm.DB
}

// NewMedicationService 构造 MedicationService
func NewMedicationService(gdb *gorm.DB) *MedicationService {
	return &MedicationService{db: gdb}
}

// List returns the user's medications, newest first.
func (s *MedicationService) List(userID uint) ([]db.Medication, error) {
	var medications []db.Medication
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&medications).Error
	if err != nil {
		return nil, fmt.Errorf("list medications: %w", err)
	}
	return medications, nil
}

// Get loads one medication scoped to its owner.
func (s *MedicationService) Get(userID, id uint) (*db.Medication, error) {
	var medication db.Medication
	err := s.db.Where("user_id = ? AND id = ?", userID, id).First(&medication).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMedicationNotFound
		}
		return nil, fmt.Errorf("get medication: %w", err)
	}
	return &medication, nil
}

// Create registers a new medication for the user. Name and dose are
// required; everything else may be blank or zero.
func (s *MedicationService) Create(userID uint, input MedicationInput) (*db.Medication, error) {
	name := strings.TrimSpace(input.Name)
	dose := strings.TrimSpace(input.Dose)
	if name == "" || dose == "" {
		return nil, fmt.Errorf("%w: name and dose are required", ErrMedicationInvalidInput)
	}

	medication := db.Medication{
		UserID:         userID,
		Name:           name,
		Dose:           dose,
		FrequencyHours: input.FrequencyHours,
		DurationDays:   input.DurationDays,
		Instructions:   strings.TrimSpace(input.Instructions),
		Active:         true,
	}

	if err := s.db.Create(&medication).Error; err != nil {
		return nil, fmt.Errorf("create medication: %w", err)
	}
	return &medication, nil
}

// Delete removes the user's medication and cascades to its dose records.
// Deleting an ID the user does not own is a no-op.
func (s *MedicationService) Delete(userID, id uint) error {
	err := s.db.Where("user_id = ?", userID).Delete(&db.Medication{}, id).Error
	if err != nil {
		return fmt.Errorf("delete medication: %w", err)
	}
	return nil
}
