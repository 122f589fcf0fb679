package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID           uint64 `gorm:"primarykey" json:"id"`
	Name         string `gorm:"type:varchar(255);not null" json:"name"`
	Email        string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"type:varchar(255);not null" json:"-"`
	// Role is the user's trade role within the firm (e.g. "project_manager",
	// "foreman", "estimator"), not their organization permission level.
	Role string `gorm:"type:varchar(50)" json:"role"`

	// Active is flipped off when the user is offboarded. Inactive users
	// cannot log in; invalidating already-issued session credentials is the
	// auth layer's job, not ours.
	Active        bool       `gorm:"not null;default:true" json:"active"`
	DeactivatedAt *time.Time `json:"deactivated_at,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	CreatedTasks    []Task               `gorm:"foreignKey:CreatorID" json:"-"`
	Assignments     []TaskAssignment     `gorm:"foreignKey:UserID" json:"-"`
	Organizations   []OrganizationMember `gorm:"foreignKey:UserID" json:"-"`
	ManagedProjects []Project            `gorm:"foreignKey:ManagerID" json:"-"`
}
