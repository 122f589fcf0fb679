package models

import (
	"time"

	"gorm.io/gorm"
)

// Client is a customer of the contracting firm.
type Client struct {
	ID             uint64         `gorm:"primarykey" json:"id"`
	OrganizationID uint64         `gorm:"not null;index" json:"organization_id"`
	Name           string         `gorm:"type:varchar(255);not null" json:"name"`
	ContactName    string         `gorm:"type:varchar(255)" json:"contact_name"`
	Email          string         `gorm:"type:varchar(255)" json:"email"`
	Phone          string         `gorm:"type:varchar(50)" json:"phone"`
	Address        string         `gorm:"type:varchar(500)" json:"address"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Organization Organization `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
	Projects     []Project    `gorm:"foreignKey:ClientID" json:"projects,omitempty"`
}
