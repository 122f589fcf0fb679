package models

import (
	"time"

	"gorm.io/gorm"
)

// TimeEntry is one day's logged hours for a user on a project.
type TimeEntry struct {
	ID             uint64         `gorm:"primarykey" json:"id"`
	OrganizationID uint64         `gorm:"not null;index" json:"organization_id"`
	UserID         uint64         `gorm:"not null;index" json:"user_id"`
	ProjectID      uint64         `gorm:"not null;index" json:"project_id"`
	WorkDate       time.Time      `gorm:"not null" json:"work_date"`
	Hours          float64        `gorm:"not null" json:"hours"`
	Notes          string         `gorm:"type:text" json:"notes"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	User    User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Project Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
}
