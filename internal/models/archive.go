package models

import "time"

// ProfileSnapshot is the subset of user fields frozen into an archive at
// the time of offboarding.
type ProfileSnapshot struct {
	UserID   uint64    `json:"user_id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}

// ActivitySummary counts the work items attributable to a user across the
// organization's collections.
type ActivitySummary struct {
	TaskCount      int `json:"task_count"`
	ProjectCount   int `json:"project_count"`
	TimeEntryCount int `json:"time_entry_count"`
	ExpenseCount   int `json:"expense_count"`
	PhotoCount     int `json:"photo_count"`
}

// UserDataArchive is the compliance record written when an offboarding runs
// with archiving enabled. Created once, never mutated; a separate retention
// job purges it after RetainUntil.
type UserDataArchive struct {
	ID uint64 `gorm:"primarykey" json:"id"`
	// ArchiveRef is the opaque reference quoted in offboarding reports and
	// compliance filings.
	ArchiveRef          string          `gorm:"type:varchar(36);uniqueIndex;not null" json:"archive_ref"`
	OrganizationID      uint64          `gorm:"not null;index" json:"organization_id"`
	UserID              uint64          `gorm:"not null;index" json:"user_id"`
	Profile             ProfileSnapshot `gorm:"serializer:json" json:"profile"`
	ActivitySummary     ActivitySummary `gorm:"serializer:json" json:"activity_summary"`
	ArchivedCollections map[string]int  `gorm:"serializer:json" json:"archived_collections"`
	RetainUntil         time.Time       `gorm:"not null" json:"retain_until"`
	CreatedBy           uint64          `gorm:"not null" json:"created_by"`
	CreatedAt           time.Time       `json:"created_at"`
}
