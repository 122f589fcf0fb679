package repository

import (
	"github.com/sitecrew/sitecrew-api/internal/models"
	"gorm.io/gorm"
)

// GormTimeEntryRepository is a GORM implementation of TimeEntryRepository
type GormTimeEntryRepository struct {
	db *gorm.DB
}

// NewTimeEntryRepository creates a new TimeEntryRepository
func NewTimeEntryRepository(db *gorm.DB) TimeEntryRepository {
	return &GormTimeEntryRepository{db: db}
}

func (r *GormTimeEntryRepository) Create(entry *models.TimeEntry) error {
	return r.db.Create(entry).Error
}

func (r *GormTimeEntryRepository) FindByID(organizationID, id uint64) (*models.TimeEntry, error) {
	var entry models.TimeEntry
	if err := r.db.Where("organization_id = ?", organizationID).
		First(&entry, id).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *GormTimeEntryRepository) ListByUser(organizationID, userID uint64) ([]models.TimeEntry, error) {
	var entries []models.TimeEntry
	if err := r.db.Where("organization_id = ? AND user_id = ?", organizationID, userID).
		Order("work_date DESC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *GormTimeEntryRepository) Delete(organizationID, id uint64) error {
	result := r.db.Where("organization_id = ?", organizationID).
		Delete(&models.TimeEntry{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormTimeEntryRepository) CountByUser(organizationID, userID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.TimeEntry{}).
		Where("organization_id = ? AND user_id = ?", organizationID, userID).
		Count(&count).Error
	return count, err
}

// GormExpenseRepository is a GORM implementation of ExpenseRepository
type GormExpenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository creates a new ExpenseRepository
func NewExpenseRepository(db *gorm.DB) ExpenseRepository {
	return &GormExpenseRepository{db: db}
}

func (r *GormExpenseRepository) Create(expense *models.Expense) error {
	return r.db.Create(expense).Error
}

func (r *GormExpenseRepository) FindByID(organizationID, id uint64) (*models.Expense, error) {
	var expense models.Expense
	if err := r.db.Where("organization_id = ?", organizationID).
		First(&expense, id).Error; err != nil {
		return nil, err
	}
	return &expense, nil
}

func (r *GormExpenseRepository) ListByUser(organizationID, userID uint64) ([]models.Expense, error) {
	var expenses []models.Expense
	if err := r.db.Where("organization_id = ? AND user_id = ?", organizationID, userID).
		Order("expense_date DESC").
		Find(&expenses).Error; err != nil {
		return nil, err
	}
	return expenses, nil
}

func (r *GormExpenseRepository) Delete(organizationID, id uint64) error {
	result := r.db.Where("organization_id = ?", organizationID).
		Delete(&models.Expense{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormExpenseRepository) CountByUser(organizationID, userID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.Expense{}).
		Where("organization_id = ? AND user_id = ?", organizationID, userID).
		Count(&count).Error
	return count, err
}

// GormProjectPhotoRepository is a GORM implementation of ProjectPhotoRepository
type GormProjectPhotoRepository struct {
	db *gorm.DB
}

// NewProjectPhotoRepository creates a new ProjectPhotoRepository
func NewProjectPhotoRepository(db *gorm.DB) ProjectPhotoRepository {
	return &GormProjectPhotoRepository{db: db}
}

func (r *GormProjectPhotoRepository) Create(photo *models.ProjectPhoto) error {
	return r.db.Create(photo).Error
}

func (r *GormProjectPhotoRepository) ListByProject(organizationID, projectID uint64) ([]models.ProjectPhoto, error) {
	var photos []models.ProjectPhoto
	if err := r.db.Where("organization_id = ? AND project_id = ?", organizationID, projectID).
		Order("created_at DESC").
		Find(&photos).Error; err != nil {
		return nil, err
	}
	return photos, nil
}

func (r *GormProjectPhotoRepository) CountByUploader(organizationID, userID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.ProjectPhoto{}).
		Where("organization_id = ? AND uploaded_by = ?", organizationID, userID).
		Count(&count).Error
	return count, err
}
