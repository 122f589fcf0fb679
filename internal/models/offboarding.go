package models

import (
	"time"

	"gorm.io/gorm"
)

type OffboardingStatus string

const (
	OffboardingStatusPending    OffboardingStatus = "pending"
	OffboardingStatusInProgress OffboardingStatus = "in_progress"
	OffboardingStatusCompleted  OffboardingStatus = "completed"
	OffboardingStatusFailed     OffboardingStatus = "failed"
)

type OffboardingActionType string

const (
	OffboardingActionRevokeAccess    OffboardingActionType = "revoke_access"
	OffboardingActionReassignTask    OffboardingActionType = "reassign_task"
	OffboardingActionTransferProject OffboardingActionType = "transfer_project"
	OffboardingActionArchiveData     OffboardingActionType = "archive_data"
)

// OffboardingOptions is the configuration captured when an offboarding is
// initiated. It is snapshotted onto the record and never re-read from live
// state while the workflow runs.
type OffboardingOptions struct {
	EffectiveDate time.Time `json:"effective_date"`
	// ReassignTasksTo is the new owner for the departing user's tasks and
	// managed projects. Nil means "leave tasks unassigned".
	ReassignTasksTo           *uint64 `json:"reassign_tasks_to,omitempty"`
	ArchiveData               bool    `json:"archive_data"`
	SendNotification          bool    `json:"send_notification"`
	RevokeSessionsImmediately *bool   `json:"revoke_sessions_immediately,omitempty"`
	Reason                    string  `json:"reason,omitempty"`
}

// ShouldRevokeAccess reports whether the revoke step runs. Unset defaults
// to true; revocation is the safety-critical step and must be opted out of
// explicitly.
func (o OffboardingOptions) ShouldRevokeAccess() bool {
	return o.RevokeSessionsImmediately == nil || *o.RevokeSessionsImmediately
}

// OffboardingAction is one entry in the append-only action log produced
// while a workflow executes. A failed step still produces an entry.
type OffboardingAction struct {
	Action      OffboardingActionType `json:"action"`
	Description string                `json:"description"`
	Timestamp   time.Time             `json:"timestamp"`
	Success     bool                  `json:"success"`
	Error       string                `json:"error,omitempty"`
	Metadata    map[string]any        `json:"metadata,omitempty"`
}

// OffboardingReport summarizes one run. Every field is derived from the
// action log plus the snapshotted options; it can be rebuilt at any time
// from a persisted log.
type OffboardingReport struct {
	TasksReassigned     int                 `json:"tasks_reassigned"`
	ProjectsTransferred int                 `json:"projects_transferred"`
	DataArchived        bool                `json:"data_archived"`
	AccessRevoked       bool                `json:"access_revoked"`
	Errors              []string            `json:"errors,omitempty"`
	CompletedAt         time.Time           `json:"completed_at"`
	EffectiveDate       time.Time           `json:"effective_date"`
	ActionLog           []OffboardingAction `json:"action_log"`
}

// OffboardingRecord is the aggregate root of one offboarding workflow.
//
// Lifecycle: pending -> in_progress -> completed | failed. A completed
// record may later be restored, which stamps RestoredAt/RestoredBy and
// clears RestorableUntil without changing Status.
type OffboardingRecord struct {
	ID             uint64 `gorm:"primarykey" json:"id"`
	OrganizationID uint64 `gorm:"not null;index" json:"organization_id"`

	// Target user identity, denormalized so the record stays readable after
	// the profile is archived or purged.
	UserID    uint64 `gorm:"not null;index" json:"user_id"`
	UserName  string `gorm:"type:varchar(255)" json:"user_name"`
	UserEmail string `gorm:"type:varchar(255)" json:"user_email"`
	UserRole  string `gorm:"type:varchar(50)" json:"user_role"`

	Status  OffboardingStatus  `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Options OffboardingOptions `gorm:"serializer:json" json:"options"`

	InitiatedBy     uint64 `gorm:"not null" json:"initiated_by"`
	InitiatedByName string `gorm:"type:varchar(255)" json:"initiated_by_name"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	// RestorableUntil is set only when the run completes cleanly and is
	// cleared once the user is restored.
	RestorableUntil *time.Time `json:"restorable_until,omitempty"`
	RestoredAt      *time.Time `json:"restored_at,omitempty"`
	RestoredBy      *uint64    `json:"restored_by,omitempty"`

	Report *OffboardingReport `gorm:"serializer:json" json:"report,omitempty"`

	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
