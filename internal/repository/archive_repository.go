package repository

import (
	"github.com/sitecrew/sitecrew-api/internal/models"
	"gorm.io/gorm"
)

// GormArchiveRepository is a GORM implementation of ArchiveRepository
type GormArchiveRepository struct {
	db *gorm.DB
}

// NewArchiveRepository creates a new ArchiveRepository
func NewArchiveRepository(db *gorm.DB) ArchiveRepository {
	return &GormArchiveRepository{db: db}
}

// Create persists an archive. Archives are write-once; there is no Update.
func (r *GormArchiveRepository) Create(archive *models.UserDataArchive) error {
	return r.db.Create(archive).Error
}

// FindByRef finds an archive by its opaque reference
func (r *GormArchiveRepository) FindByRef(ref string) (*models.UserDataArchive, error) {
	var archive models.UserDataArchive
	if err := r.db.Where("archive_ref = ?", ref).First(&archive).Error; err != nil {
		return nil, err
	}
	return &archive, nil
}

// ListByUser lists archives for a user within the organization
func (r *GormArchiveRepository) ListByUser(organizationID, userID uint64) ([]models.UserDataArchive, error) {
	var archives []models.UserDataArchive
	if err := r.db.Where("organization_id = ? AND user_id = ?", organizationID, userID).
		Order("created_at DESC").
		Find(&archives).Error; err != nil {
		return nil, err
	}
	return archives, nil
}
