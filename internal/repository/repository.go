package repository

import (
	"time"

	"github.com/sitecrew/sitecrew-api/internal/models"
)

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// List retrieves tasks with filtering and pagination
	List(filter TaskFilter) ([]models.Task, int64, error)

	// Update updates a task
	Update(task *models.Task) error

	// Delete soft deletes a task
	Delete(id uint64) error

	// AssignUsers assigns multiple users to a task
	AssignUsers(taskID uint64, userIDs []uint64) error

	// UnassignUsers removes user assignments from a task
	UnassignUsers(taskID uint64, userIDs []uint64) error

	// CountUsersByIDs counts how many of the given user IDs are members of
	// the organization
	CountUsersByIDs(userIDs []uint64, organizationID uint64) (int64, error)

	// CountByAssignedUser counts tasks in the organization that the user is
	// assigned to
	CountByAssignedUser(organizationID, userID uint64) (int64, error)

	// ReassignUser replaces fromUserID with toUserID in the assignment set of
	// every matching task in the organization, as one atomic batch. Other
	// assignees are preserved. Returns the number of tasks touched.
	ReassignUser(organizationID, fromUserID, toUserID uint64) (int64, error)
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	OrganizationIDs []uint64
	Status          *models.TaskStatus
	CreatorID       *uint64
	AssignedUserID  *uint64
	ProjectID       *uint64
	DueDateFrom     *time.Time
	DueDateTo       *time.Time
	SortByDueDate   bool
	Page            int
	PageSize        int
}

// OrganizationRepository defines the interface for organization data access
type OrganizationRepository interface {
	Create(org *models.Organization) error
	FindByID(id uint64) (*models.Organization, error)
	FindByInviteCode(code string) (*models.Organization, error)
	Update(org *models.Organization) error
	Delete(id uint64) error

	AddMember(member *models.OrganizationMember) error
	RemoveMember(organizationID, userID uint64) error
	FindMember(organizationID, userID uint64) (*models.OrganizationMember, error)
	ListMembersByUserID(userID uint64) ([]models.OrganizationMember, error)
	ListMembers(organizationID uint64) ([]models.OrganizationMember, error)
}

// UserRepository defines the interface for user data access.
//
// Deactivate and Reactivate are the only sanctioned ways to mutate the
// active flag; the offboarding and restoration workflows go through them
// rather than patching profile fields ad hoc.
type UserRepository interface {
	Create(user *models.User) error

	// CreateWithPersonalOrganization creates a user, their personal
	// organization, and the corresponding membership in a single transaction.
	CreateWithPersonalOrganization(user *models.User, org *models.Organization, member *models.OrganizationMember) error

	FindByID(id uint64) (*models.User, error)
	FindByEmail(email string) (*models.User, error)

	// Deactivate marks the user inactive and stamps the deactivation time.
	Deactivate(id uint64, at time.Time) error

	// Reactivate clears the inactive flag and the deactivation timestamp.
	Reactivate(id uint64) error
}

// ClientRepository defines the interface for client data access
type ClientRepository interface {
	Create(client *models.Client) error
	FindByID(organizationID, id uint64) (*models.Client, error)
	ListByOrganization(organizationID uint64) ([]models.Client, error)
	Update(client *models.Client) error
	Delete(organizationID, id uint64) error
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	Create(project *models.Project) error
	FindByID(organizationID, id uint64) (*models.Project, error)
	ListByOrganization(organizationID uint64) ([]models.Project, error)
	Update(project *models.Project) error
	Delete(organizationID, id uint64) error

	// CountByManager counts projects in the organization managed by the user
	CountByManager(organizationID, managerID uint64) (int64, error)

	// TransferManager rewrites the manager of every project managed by
	// fromUserID to toUserID, as one atomic batch. Returns the number of
	// projects transferred.
	TransferManager(organizationID, fromUserID, toUserID uint64) (int64, error)
}

// TimeEntryRepository defines the interface for time entry data access
type TimeEntryRepository interface {
	Create(entry *models.TimeEntry) error
	FindByID(organizationID, id uint64) (*models.TimeEntry, error)
	ListByUser(organizationID, userID uint64) ([]models.TimeEntry, error)
	Delete(organizationID, id uint64) error
	CountByUser(organizationID, userID uint64) (int64, error)
}

// ExpenseRepository defines the interface for expense data access
type ExpenseRepository interface {
	Create(expense *models.Expense) error
	FindByID(organizationID, id uint64) (*models.Expense, error)
	ListByUser(organizationID, userID uint64) ([]models.Expense, error)
	Delete(organizationID, id uint64) error
	CountByUser(organizationID, userID uint64) (int64, error)
}

// ProjectPhotoRepository defines the interface for project photo data access
type ProjectPhotoRepository interface {
	Create(photo *models.ProjectPhoto) error
	ListByProject(organizationID, projectID uint64) ([]models.ProjectPhoto, error)
	CountByUploader(organizationID, userID uint64) (int64, error)
}

// OffboardingRepository defines the interface for offboarding record data
// access
type OffboardingRepository interface {
	// Create persists a new record, rejecting it with
	// ErrOffboardingInFlight when a pending or in-progress record already
	// exists for the same user in the same organization.
	Create(record *models.OffboardingRecord) error

	FindByID(organizationID, id uint64) (*models.OffboardingRecord, error)
	Update(record *models.OffboardingRecord) error
	ListByOrganization(organizationID uint64) ([]models.OffboardingRecord, error)
}

// ArchiveRepository defines the interface for user data archive access
type ArchiveRepository interface {
	Create(archive *models.UserDataArchive) error
	FindByRef(ref string) (*models.UserDataArchive, error)
	ListByUser(organizationID, userID uint64) ([]models.UserDataArchive, error)
}
