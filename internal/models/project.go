package models

import (
	"time"

	"gorm.io/gorm"
)

type ProjectStatus string

const (
	ProjectStatusPlanning  ProjectStatus = "planning"
	ProjectStatusActive    ProjectStatus = "active"
	ProjectStatusOnHold    ProjectStatus = "on_hold"
	ProjectStatusCompleted ProjectStatus = "completed"
)

type Project struct {
	ID             uint64        `gorm:"primarykey" json:"id"`
	OrganizationID uint64        `gorm:"not null;index" json:"organization_id"`
	ClientID       *uint64       `gorm:"index" json:"client_id"`
	Name           string        `gorm:"type:varchar(255);not null" json:"name"`
	Status         ProjectStatus `gorm:"type:varchar(20);not null;default:'planning'" json:"status"`
	// ManagerID is the single project manager. Offboarding transfers it.
	ManagerID   uint64         `gorm:"not null;index" json:"manager_id"`
	SiteAddress string         `gorm:"type:varchar(500)" json:"site_address"`
	BudgetCents int64          `json:"budget_cents"`
	StartDate   *time.Time     `json:"start_date"`
	EndDate     *time.Time     `json:"end_date"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Organization Organization   `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
	Client       *Client        `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Manager      User           `gorm:"foreignKey:ManagerID" json:"manager,omitempty"`
	Photos       []ProjectPhoto `gorm:"foreignKey:ProjectID" json:"photos,omitempty"`
}
