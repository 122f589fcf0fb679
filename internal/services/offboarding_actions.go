package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sitecrew/sitecrew-api/internal/models"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// The four executors below share one contract: they never return an error.
// Expected failures are caught and encoded in the returned action so the
// orchestrator can keep building a complete log when one step breaks.

// revokeAccess marks the user profile inactive and stamps the deactivation
// time. Already-issued session credentials are NOT invalidated here; that
// is owned by a privileged external process, so revocation is incomplete
// until those credentials expire.
func (s *OffboardingService) revokeAccess(orgID, userID uint64) models.OffboardingAction {
	action := models.OffboardingAction{
		Action:    models.OffboardingActionRevokeAccess,
		Timestamp: s.now(),
	}

	if _, err := s.orgRepo.FindMember(orgID, userID); err != nil {
		action.Description = "user is not a member of the organization"
		action.Error = err.Error()
		return action
	}

	if err := s.userRepo.Deactivate(userID, s.now()); err != nil {
		action.Description = "failed to revoke access"
		action.Error = err.Error()
		return action
	}

	action.Success = true
	action.Description = "user access revoked"
	action.Metadata = map[string]any{"user_id": userID}
	return action
}

// reassignTasks moves every task assignment from one user to another as a
// single atomic batch. Zero matching tasks is a success, not an error.
func (s *OffboardingService) reassignTasks(orgID, fromUserID, toUserID uint64) models.OffboardingAction {
	action := models.OffboardingAction{
		Action:    models.OffboardingActionReassignTask,
		Timestamp: s.now(),
	}

	count, err := s.taskRepo.ReassignUser(orgID, fromUserID, toUserID)
	if err != nil {
		action.Description = "failed to reassign tasks"
		action.Error = err.Error()
		return action
	}

	action.Success = true
	if count == 0 {
		action.Description = "no tasks to reassign"
	} else {
		action.Description = fmt.Sprintf("reassigned %d tasks", count)
	}
	action.Metadata = map[string]any{
		"count":         count,
		"reassigned_to": toUserID,
	}
	return action
}

// transferProjects rewrites the project manager on every project the user
// manages, as a single atomic batch. Same zero-match semantics as task
// reassignment.
func (s *OffboardingService) transferProjects(orgID, fromUserID, toUserID uint64) models.OffboardingAction {
	action := models.OffboardingAction{
		Action:    models.OffboardingActionTransferProject,
		Timestamp: s.now(),
	}

	count, err := s.projectRepo.TransferManager(orgID, fromUserID, toUserID)
	if err != nil {
		action.Description = "failed to transfer projects"
		action.Error = err.Error()
		return action
	}

	action.Success = true
	if count == 0 {
		action.Description = "no projects to transfer"
	} else {
		action.Description = fmt.Sprintf("transferred %d projects", count)
	}
	action.Metadata = map[string]any{
		"count":          count,
		"transferred_to": toUserID,
	}
	return action
}

// archiveUserData snapshots the user profile and their activity counts into
// an immutable UserDataArchive with a fixed 7-year retention horizon.
//
// The counts are recomputed rather than reused from the impact preview:
// time has passed since the preview ran and earlier workflow steps may
// already have moved ownership.
func (s *OffboardingService) archiveUserData(orgID, userID, createdBy uint64) models.OffboardingAction {
	action := models.OffboardingAction{
		Action:    models.OffboardingActionArchiveData,
		Timestamp: s.now(),
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			action.Description = "user profile not found"
		} else {
			action.Description = "failed to load user profile"
		}
		action.Error = err.Error()
		return action
	}

	var summary models.ActivitySummary
	var g errgroup.Group

	g.Go(func() error {
		n, err := s.taskRepo.CountByAssignedUser(orgID, userID)
		summary.TaskCount = int(n)
		return err
	})
	g.Go(func() error {
		n, err := s.projectRepo.CountByManager(orgID, userID)
		summary.ProjectCount = int(n)
		return err
	})
	g.Go(func() error {
		n, err := s.timeEntryRepo.CountByUser(orgID, userID)
		summary.TimeEntryCount = int(n)
		return err
	})
	g.Go(func() error {
		n, err := s.expenseRepo.CountByUser(orgID, userID)
		summary.ExpenseCount = int(n)
		return err
	})
	g.Go(func() error {
		n, err := s.photoRepo.CountByUploader(orgID, userID)
		summary.PhotoCount = int(n)
		return err
	})

	if err := g.Wait(); err != nil {
		action.Description = "failed to collect activity summary"
		action.Error = err.Error()
		return action
	}

	createdAt := s.now()
	archive := &models.UserDataArchive{
		ArchiveRef:     uuid.NewString(),
		OrganizationID: orgID,
		UserID:         userID,
		Profile: models.ProfileSnapshot{
			UserID:   user.ID,
			Name:     user.Name,
			Email:    user.Email,
			Role:     user.Role,
			JoinedAt: user.CreatedAt,
		},
		ActivitySummary: summary,
		ArchivedCollections: map[string]int{
			"tasks":          summary.TaskCount,
			"projects":       summary.ProjectCount,
			"time_entries":   summary.TimeEntryCount,
			"expenses":       summary.ExpenseCount,
			"project_photos": summary.PhotoCount,
		},
		RetainUntil: createdAt.AddDate(archiveRetentionYears, 0, 0),
		CreatedBy:   createdBy,
	}

	if err := s.archiveRepo.Create(archive); err != nil {
		action.Description = "failed to write user data archive"
		action.Error = err.Error()
		return action
	}

	action.Success = true
	action.Description = "user data archived"
	action.Metadata = map[string]any{
		"archive_ref":  archive.ArchiveRef,
		"retain_until": archive.RetainUntil,
	}
	return action
}
