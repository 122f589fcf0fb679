package models

import (
	"time"

	"gorm.io/gorm"
)

type ExpenseCategory string

const (
	ExpenseCategoryMaterials ExpenseCategory = "materials"
	ExpenseCategoryEquipment ExpenseCategory = "equipment"
	ExpenseCategoryTravel    ExpenseCategory = "travel"
	ExpenseCategoryOther     ExpenseCategory = "other"
)

// Expense is a cost submitted by a user against a project.
type Expense struct {
	ID             uint64          `gorm:"primarykey" json:"id"`
	OrganizationID uint64          `gorm:"not null;index" json:"organization_id"`
	UserID         uint64          `gorm:"not null;index" json:"user_id"`
	ProjectID      uint64          `gorm:"not null;index" json:"project_id"`
	ExpenseDate    time.Time       `gorm:"not null" json:"expense_date"`
	AmountCents    int64           `gorm:"not null" json:"amount_cents"`
	Category       ExpenseCategory `gorm:"type:varchar(20);not null;default:'other'" json:"category"`
	Description    string          `gorm:"type:text" json:"description"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	DeletedAt      gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relations
	User    User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Project Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
}
