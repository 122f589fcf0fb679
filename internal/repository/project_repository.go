package repository

import (
	"github.com/sitecrew/sitecrew-api/internal/models"
	"gorm.io/gorm"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// Create creates a new project
func (r *GormProjectRepository) Create(project *models.Project) error {
	return r.db.Create(project).Error
}

// FindByID finds a project by ID within the organization
func (r *GormProjectRepository) FindByID(organizationID, id uint64) (*models.Project, error) {
	var project models.Project
	if err := r.db.Preload("Client").Preload("Manager").
		Where("organization_id = ?", organizationID).
		First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// ListByOrganization lists all projects in an organization
func (r *GormProjectRepository) ListByOrganization(organizationID uint64) ([]models.Project, error) {
	var projects []models.Project
	if err := r.db.Preload("Manager").
		Where("organization_id = ?", organizationID).
		Order("created_at DESC").
		Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// Update updates a project
func (r *GormProjectRepository) Update(project *models.Project) error {
	return r.db.Save(project).Error
}

// Delete soft deletes a project
func (r *GormProjectRepository) Delete(organizationID, id uint64) error {
	result := r.db.Where("organization_id = ?", organizationID).
		Delete(&models.Project{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountByManager counts projects in the organization managed by the user
func (r *GormProjectRepository) CountByManager(organizationID, managerID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.Project{}).
		Where("organization_id = ? AND manager_id = ?", organizationID, managerID).
		Count(&count).Error
	return count, err
}

// TransferManager rewrites the manager on every matching project as a single
// UPDATE statement
func (r *GormProjectRepository) TransferManager(organizationID, fromUserID, toUserID uint64) (int64, error) {
	result := r.db.Model(&models.Project{}).
		Where("organization_id = ? AND manager_id = ?", organizationID, fromUserID).
		Update("manager_id", toUserID)
	return result.RowsAffected, result.Error
}
