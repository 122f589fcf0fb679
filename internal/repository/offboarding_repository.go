package repository

import (
	"errors"

	"github.com/sitecrew/sitecrew-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrOffboardingInFlight is returned when a pending or in-progress record
// already exists for the target user in the organization.
var ErrOffboardingInFlight = errors.New("offboarding repository: an offboarding is already in flight for this user")

// GormOffboardingRepository is a GORM implementation of OffboardingRepository
type GormOffboardingRepository struct {
	db *gorm.DB
}

// NewOffboardingRepository creates a new OffboardingRepository
func NewOffboardingRepository(db *gorm.DB) OffboardingRepository {
	return &GormOffboardingRepository{db: db}
}

// Create persists a new record. The existence check is a FOR UPDATE read
// in the same transaction as the insert; on repeatable-read MySQL a plain
// COUNT would not block a concurrent initiation from also observing zero.
// SQLite drops the locking clause and serializes writers anyway.
func (r *GormOffboardingRepository) Create(record *models.OffboardingRecord) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&models.OffboardingRecord{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("organization_id = ? AND user_id = ?", record.OrganizationID, record.UserID).
			Where("status IN ?", []models.OffboardingStatus{
				models.OffboardingStatusPending,
				models.OffboardingStatusInProgress,
			}).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrOffboardingInFlight
		}

		return tx.Create(record).Error
	})
}

// FindByID finds a record by ID within the organization
func (r *GormOffboardingRepository) FindByID(organizationID, id uint64) (*models.OffboardingRecord, error) {
	var record models.OffboardingRecord
	if err := r.db.Where("organization_id = ?", organizationID).
		First(&record, id).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// Update updates a record
func (r *GormOffboardingRepository) Update(record *models.OffboardingRecord) error {
	return r.db.Save(record).Error
}

// ListByOrganization lists all offboarding records in an organization,
// newest first
func (r *GormOffboardingRepository) ListByOrganization(organizationID uint64) ([]models.OffboardingRecord, error) {
	var records []models.OffboardingRecord
	if err := r.db.Where("organization_id = ?", organizationID).
		Order("created_at DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
