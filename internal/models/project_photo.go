package models

import (
	"time"

	"gorm.io/gorm"
)

// ProjectPhoto is a site photo uploaded by a crew member.
type ProjectPhoto struct {
	ID             uint64         `gorm:"primarykey" json:"id"`
	OrganizationID uint64         `gorm:"not null;index" json:"organization_id"`
	ProjectID      uint64         `gorm:"not null;index" json:"project_id"`
	UploadedBy     uint64         `gorm:"not null;index" json:"uploaded_by"`
	URL            string         `gorm:"type:varchar(1000);not null" json:"url"`
	Caption        string         `gorm:"type:varchar(500)" json:"caption"`
	CreatedAt      time.Time      `json:"created_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Project  Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Uploader User    `gorm:"foreignKey:UploadedBy" json:"uploader,omitempty"`
}
