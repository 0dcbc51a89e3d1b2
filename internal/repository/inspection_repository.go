package repository

import (
	"fmt"

	"github.com/GauravPandit27/construction-saftey/internal/model"

	"gorm.io/gorm"
)

// InspectionRepository интерфейс для работы с инспекциями
type InspectionRepository interface {
	Create(inspection *model.Inspection) error
	GetByID(id string) (*model.Inspection, error)
	List(page, pageSize int) ([]*model.Inspection, int64, error)
	Delete(id string) error
}

// inspectionRepository реализация InspectionRepository
type inspectionRepository struct {
	db *gorm.DB
}

// NewInspectionRepository создает новый instance InspectionRepository
func NewInspectionRepository(db *gorm.DB) InspectionRepository {
	return &inspectionRepository{
		db: db,
	}
}

// Create создает новую инспекцию в базе данных
func (r *inspectionRepository) Create(inspection *model.Inspection) error {
	tx := r.db.Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}

	// Сначала создаем инспекцию
	if err := tx.Create(inspection).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to create inspection: %w", err)
	}

	// Затем создаем записи о людях
	for i := range inspection.Persons {
		inspection.Persons[i].ID = 0 // Обнуляем ID для auto-increment
		inspection.Persons[i].InspectionID = inspection.ID

		if err := tx.Create(&inspection.Persons[i]).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to create person record %d: %w", i, err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetByID получает инспекцию по ID
func (r *inspectionRepository) GetByID(id string) (*model.Inspection, error) {
	var inspection model.Inspection
	err := r.db.Preload("Persons").Where("id = ?", id).First(&inspection).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("inspection with id %s not found", id)
		}
		return nil, fmt.Errorf("failed to get inspection: %w", err)
	}
	return &inspection, nil
}

// List получает список инспекций с пагинацией, новые первыми
func (r *inspectionRepository) List(page, pageSize int) ([]*model.Inspection, int64, error) {
	var inspections []*model.Inspection
	var total int64

	if err := r.db.Model(&model.Inspection{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count inspections: %w", err)
	}

	offset := (page - 1) * pageSize
	err := r.db.Preload("Persons").
		Order("created_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&inspections).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list inspections: %w", err)
	}

	return inspections, total, nil
}

// Delete удаляет инспекцию вместе с записями о людях
func (r *inspectionRepository) Delete(id string) error {
	tx := r.db.Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}

	// Сначала удаляем записи о людях
	if err := tx.Where("inspection_id = ?", id).Delete(&model.PersonRecord{}).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to delete person records: %w", err)
	}

	// Затем удаляем инспекцию
	if err := tx.Where("id = ?", id).Delete(&model.Inspection{}).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to delete inspection: %w", err)
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
