package repository

import (
	"github.com/sitecrew/sitecrew-api/internal/models"
	"gorm.io/gorm"
)

// GormClientRepository is a GORM implementation of ClientRepository
type GormClientRepository struct {
	db *gorm.DB
}

// NewClientRepository creates a new ClientRepository
func NewClientRepository(db *gorm.DB) ClientRepository {
	return &GormClientRepository{db: db}
}

// Create creates a new client
func (r *GormClientRepository) Create(client *models.Client) error {
	return r.db.Create(client).Error
}

// FindByID finds a client by ID within the organization
func (r *GormClientRepository) FindByID(organizationID, id uint64) (*models.Client, error) {
	var client models.Client
	if err := r.db.Where("organization_id = ?", organizationID).
		First(&client, id).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

// ListByOrganization lists all clients in an organization
func (r *GormClientRepository) ListByOrganization(organizationID uint64) ([]models.Client, error) {
	var clients []models.Client
	if err := r.db.Where("organization_id = ?", organizationID).
		Order("name ASC").
		Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

// Update updates a client
func (r *GormClientRepository) Update(client *models.Client) error {
	return r.db.Save(client).Error
}

// Delete soft deletes a client
func (r *GormClientRepository) Delete(organizationID, id uint64) error {
	result := r.db.Where("organization_id = ?", organizationID).
		Delete(&models.Client{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
