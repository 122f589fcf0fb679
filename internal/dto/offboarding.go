package dto

import (
	"time"

	"github.com/sitecrew/sitecrew-api/internal/models"
)

// OffboardingRecordDTO represents an offboarding workflow in API responses
type OffboardingRecordDTO struct {
	ID              uint64                    `json:"id"`
	OrganizationID  uint64                    `json:"organization_id"`
	UserID          uint64                    `json:"user_id"`
	UserName        string                    `json:"user_name"`
	UserEmail       string                    `json:"user_email"`
	UserRole        string                    `json:"user_role,omitempty"`
	Status          models.OffboardingStatus  `json:"status"`
	Options         models.OffboardingOptions `json:"options"`
	InitiatedBy     uint64                    `json:"initiated_by"`
	InitiatedByName string                    `json:"initiated_by_name"`
	CreatedAt       time.Time                 `json:"created_at"`
	StartedAt       *time.Time                `json:"started_at,omitempty"`
	CompletedAt     *time.Time                `json:"completed_at,omitempty"`
	RestorableUntil *time.Time                `json:"restorable_until,omitempty"`
	RestoredAt      *time.Time                `json:"restored_at,omitempty"`
	RestoredBy      *uint64                   `json:"restored_by,omitempty"`
	Report          *models.OffboardingReport `json:"report,omitempty"`
}

// OffboardingListItemDTO represents an offboarding record in list responses
// (no options or report payload)
type OffboardingListItemDTO struct {
	ID              uint64                   `json:"id"`
	UserID          uint64                   `json:"user_id"`
	UserName        string                   `json:"user_name"`
	UserEmail       string                   `json:"user_email"`
	Status          models.OffboardingStatus `json:"status"`
	InitiatedByName string                   `json:"initiated_by_name"`
	CreatedAt       time.Time                `json:"created_at"`
	CompletedAt     *time.Time               `json:"completed_at,omitempty"`
	RestorableUntil *time.Time               `json:"restorable_until,omitempty"`
	RestoredAt      *time.Time               `json:"restored_at,omitempty"`
}

// ToOffboardingRecordDTO converts an OffboardingRecord model to its DTO
func ToOffboardingRecordDTO(record models.OffboardingRecord) OffboardingRecordDTO {
	return OffboardingRecordDTO{
		ID:              record.ID,
		OrganizationID:  record.OrganizationID,
		UserID:          record.UserID,
		UserName:        record.UserName,
		UserEmail:       record.UserEmail,
		UserRole:        record.UserRole,
		Status:          record.Status,
		Options:         record.Options,
		InitiatedBy:     record.InitiatedBy,
		InitiatedByName: record.InitiatedByName,
		CreatedAt:       record.CreatedAt,
		StartedAt:       record.StartedAt,
		CompletedAt:     record.CompletedAt,
		RestorableUntil: record.RestorableUntil,
		RestoredAt:      record.RestoredAt,
		RestoredBy:      record.RestoredBy,
		Report:          record.Report,
	}
}

// ToOffboardingListItemDTO converts an OffboardingRecord to its list item DTO
func ToOffboardingListItemDTO(record models.OffboardingRecord) OffboardingListItemDTO {
	return OffboardingListItemDTO{
		ID:              record.ID,
		UserID:          record.UserID,
		UserName:        record.UserName,
		UserEmail:       record.UserEmail,
		Status:          record.Status,
		InitiatedByName: record.InitiatedByName,
		CreatedAt:       record.CreatedAt,
		CompletedAt:     record.CompletedAt,
		RestorableUntil: record.RestorableUntil,
		RestoredAt:      record.RestoredAt,
	}
}

// ToOffboardingListDTO converts a slice of records to list item DTOs
func ToOffboardingListDTO(records []models.OffboardingRecord) []OffboardingListItemDTO {
	items := make([]OffboardingListItemDTO, len(records))
	for i, record := range records {
		items[i] = ToOffboardingListItemDTO(record)
	}
	return items
}
