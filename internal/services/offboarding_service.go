package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/sitecrew/sitecrew-api/internal/models"
	"github.com/sitecrew/sitecrew-api/internal/repository"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

var (
	ErrOffboardingNotFound        = errors.New("offboarding record not found")
	ErrOffboardingInProgress      = errors.New("an offboarding is already in progress for this user")
	ErrOffboardingAlreadyStarted  = errors.New("offboarding has already been executed")
	ErrOffboardingNotCompleted    = errors.New("only completed offboardings can be restored")
	ErrOffboardingAlreadyRestored = errors.New("this offboarding has already been restored")
	ErrRestoreWindowExpired       = errors.New("the restoration window for this offboarding has expired")
	ErrOffboardTargetNotMember    = errors.New("target user is not a member of the organization")
	ErrReassignToSelf             = errors.New("tasks cannot be reassigned to the user being offboarded")
	ErrReassigneeNotMember        = errors.New("reassignment target is not a member of the organization")
	ErrReportNotReady             = errors.New("no report has been generated for this offboarding yet")
	ErrArchiveNotFound            = errors.New("data archive not found")
)

const (
	// restoreWindow is the fixed period after a clean completion during
	// which the offboarding can be reversed.
	restoreWindow = 30 * 24 * time.Hour

	// archiveRetentionYears is the fixed compliance horizon for user data
	// archives.
	archiveRetentionYears = 7
)

// OffboardingService owns the offboarding workflow: impact preview, record
// lifecycle, the four executors, report generation, and restoration.
type OffboardingService struct {
	offboardingRepo repository.OffboardingRepository
	archiveRepo     repository.ArchiveRepository
	userRepo        repository.UserRepository
	orgRepo         repository.OrganizationRepository
	taskRepo        repository.TaskRepository
	projectRepo     repository.ProjectRepository
	timeEntryRepo   repository.TimeEntryRepository
	expenseRepo     repository.ExpenseRepository
	photoRepo       repository.ProjectPhotoRepository
	log             zerolog.Logger

	// now is swapped out in tests to pin the restoration deadline.
	now func() time.Time
}

// NewOffboardingService creates a new OffboardingService.
func NewOffboardingService(
	offboardingRepo repository.OffboardingRepository,
	archiveRepo repository.ArchiveRepository,
	userRepo repository.UserRepository,
	orgRepo repository.OrganizationRepository,
	taskRepo repository.TaskRepository,
	projectRepo repository.ProjectRepository,
	timeEntryRepo repository.TimeEntryRepository,
	expenseRepo repository.ExpenseRepository,
	photoRepo repository.ProjectPhotoRepository,
	log zerolog.Logger,
) *OffboardingService {
	return &OffboardingService{
		offboardingRepo: offboardingRepo,
		archiveRepo:     archiveRepo,
		userRepo:        userRepo,
		orgRepo:         orgRepo,
		taskRepo:        taskRepo,
		projectRepo:     projectRepo,
		timeEntryRepo:   timeEntryRepo,
		expenseRepo:     expenseRepo,
		photoRepo:       photoRepo,
		log:             log,
		now:             time.Now,
	}
}

// ImpactPreview counts the work items that reference a user, shown before
// the wizard commits to offboarding.
type ImpactPreview struct {
	TaskCount      int `json:"task_count"`
	ProjectCount   int `json:"project_count"`
	TimeEntryCount int `json:"time_entry_count"`
	ExpenseCount   int `json:"expense_count"`
}

// HasWork reports whether any collection references the user. The wizard
// skips the reassignment step entirely when this is false.
func (p ImpactPreview) HasWork() bool {
	return p.TaskCount > 0 || p.ProjectCount > 0 || p.TimeEntryCount > 0 || p.ExpenseCount > 0
}

// GetImpactPreview computes the four counts concurrently. Read-only; zero
// counts are a valid result, not an error.
func (s *OffboardingService) GetImpactPreview(orgID, userID uint64) (*ImpactPreview, error) {
	var preview ImpactPreview
	var g errgroup.Group

	g.Go(func() error {
		n, err := s.taskRepo.CountByAssignedUser(orgID, userID)
		preview.TaskCount = int(n)
		return err
	})
	g.Go(func() error {
		n, err := s.projectRepo.CountByManager(orgID, userID)
		preview.ProjectCount = int(n)
		return err
	})
	g.Go(func() error {
		n, err := s.timeEntryRepo.CountByUser(orgID, userID)
		preview.TimeEntryCount = int(n)
		return err
	})
	g.Go(func() error {
		n, err := s.expenseRepo.CountByUser(orgID, userID)
		preview.ExpenseCount = int(n)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to compute impact preview: %w", err)
	}

	return &preview, nil
}

// InitiateOffboardingInput represents parameters to start an offboarding.
type InitiateOffboardingInput struct {
	OrganizationID uint64
	UserID         uint64
	InitiatedBy    uint64
	Options        models.OffboardingOptions
}

// InitiateOffboarding validates the request and creates a pending record
// with the options snapshotted. The options are immutable from here on; the
// executed workflow uses exactly this snapshot.
func (s *OffboardingService) InitiateOffboarding(input InitiateOffboardingInput) (*models.OffboardingRecord, error) {
	if _, err := s.orgRepo.FindMember(input.OrganizationID, input.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOffboardTargetNotMember
		}
		return nil, fmt.Errorf("failed to verify target membership: %w", err)
	}

	if to := input.Options.ReassignTasksTo; to != nil {
		if *to == input.UserID {
			return nil, ErrReassignToSelf
		}
		if _, err := s.orgRepo.FindMember(input.OrganizationID, *to); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrReassigneeNotMember
			}
			return nil, fmt.Errorf("failed to verify reassignment target: %w", err)
		}
	}

	target, err := s.userRepo.FindByID(input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to find target user: %w", err)
	}

	initiator, err := s.userRepo.FindByID(input.InitiatedBy)
	if err != nil {
		return nil, fmt.Errorf("failed to find initiating user: %w", err)
	}

	options := input.Options
	if options.EffectiveDate.IsZero() {
		options.EffectiveDate = s.now()
	}

	record := &models.OffboardingRecord{
		OrganizationID:  input.OrganizationID,
		UserID:          target.ID,
		UserName:        target.Name,
		UserEmail:       target.Email,
		UserRole:        target.Role,
		Status:          models.OffboardingStatusPending,
		Options:         options,
		InitiatedBy:     initiator.ID,
		InitiatedByName: initiator.Name,
	}

	if err := s.offboardingRepo.Create(record); err != nil {
		if errors.Is(err, repository.ErrOffboardingInFlight) {
			return nil, ErrOffboardingInProgress
		}
		return nil, fmt.Errorf("failed to create offboarding record: %w", err)
	}

	s.log.Info().
		Uint64("org_id", record.OrganizationID).
		Uint64("user_id", record.UserID).
		Uint64("record_id", record.ID).
		Msg("offboarding initiated")

	return record, nil
}

// ExecuteOffboarding runs the workflow for a pending record.
//
// The steps run in a fixed order and the workflow continues past individual
// action failures: revocation is the safety-critical step and must never be
// skipped because an unrelated step broke. Failures surface in the action
// log and flip the terminal status to failed; only persistence errors on
// the record itself propagate to the caller.
func (s *OffboardingService) ExecuteOffboarding(orgID, recordID uint64) (*models.OffboardingRecord, error) {
	record, err := s.offboardingRepo.FindByID(orgID, recordID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOffboardingNotFound
		}
		return nil, fmt.Errorf("failed to find offboarding record: %w", err)
	}

	if record.Status != models.OffboardingStatusPending {
		return nil, ErrOffboardingAlreadyStarted
	}

	startedAt := s.now()
	record.Status = models.OffboardingStatusInProgress
	record.StartedAt = &startedAt
	if err := s.offboardingRepo.Update(record); err != nil {
		return nil, s.failRecord(record, fmt.Errorf("failed to start offboarding: %w", err))
	}

	options := record.Options
	var actions []models.OffboardingAction

	if options.ShouldRevokeAccess() {
		actions = append(actions, s.logAction(record, s.revokeAccess(orgID, record.UserID)))
	}

	if options.ReassignTasksTo != nil {
		actions = append(actions, s.logAction(record, s.reassignTasks(orgID, record.UserID, *options.ReassignTasksTo)))
		actions = append(actions, s.logAction(record, s.transferProjects(orgID, record.UserID, *options.ReassignTasksTo)))
	}

	if options.ArchiveData {
		actions = append(actions, s.logAction(record, s.archiveUserData(orgID, record.UserID, record.InitiatedBy)))
	}

	if options.SendNotification {
		// Delivery is owned by the external mailer; the engine only records
		// that the option was chosen.
		s.log.Info().
			Uint64("record_id", record.ID).
			Str("user_email", record.UserEmail).
			Msg("offboarding notification requested, delegated to mailer")
	}

	completedAt := s.now()
	report := BuildOffboardingReport(actions, options, completedAt)

	record.CompletedAt = &completedAt
	record.Report = &report

	if len(report.Errors) > 0 {
		record.Status = models.OffboardingStatusFailed
		record.RestorableUntil = nil
	} else {
		record.Status = models.OffboardingStatusCompleted
		restorableUntil := completedAt.Add(restoreWindow)
		record.RestorableUntil = &restorableUntil
	}

	if err := s.offboardingRepo.Update(record); err != nil {
		return nil, s.failRecord(record, fmt.Errorf("failed to persist offboarding report: %w", err))
	}

	s.log.Info().
		Uint64("record_id", record.ID).
		Str("status", string(record.Status)).
		Int("actions", len(actions)).
		Int("errors", len(report.Errors)).
		Msg("offboarding finished")

	return record, nil
}

// GetOffboardingRecord returns one record scoped to the organization.
func (s *OffboardingService) GetOffboardingRecord(orgID, recordID uint64) (*models.OffboardingRecord, error) {
	record, err := s.offboardingRepo.FindByID(orgID, recordID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOffboardingNotFound
		}
		return nil, fmt.Errorf("failed to find offboarding record: %w", err)
	}
	return record, nil
}

// ListOffboardingRecords returns the organization's offboarding history for
// the administrative listing screen.
func (s *OffboardingService) ListOffboardingRecords(orgID uint64) ([]models.OffboardingRecord, error) {
	records, err := s.offboardingRepo.ListByOrganization(orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list offboarding records: %w", err)
	}
	return records, nil
}

// RestoreUser reverses a completed offboarding while its window is open:
// the profile is reactivated and the record stamped. Task reassignments and
// project transfers are permanent business decisions and are not reversed.
//
// Preconditions are checked in order, each with its own error: the record
// must exist, must be completed, must not already be restored, and the
// deadline (when present) must not have passed. Restoring at exactly the
// deadline succeeds.
func (s *OffboardingService) RestoreUser(recordID, orgID, userID, restoredBy uint64) (*models.OffboardingRecord, error) {
	record, err := s.offboardingRepo.FindByID(orgID, recordID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOffboardingNotFound
		}
		return nil, fmt.Errorf("failed to find offboarding record: %w", err)
	}
	if record.UserID != userID {
		return nil, ErrOffboardingNotFound
	}

	if record.Status != models.OffboardingStatusCompleted {
		return nil, ErrOffboardingNotCompleted
	}

	if record.RestoredAt != nil {
		return nil, ErrOffboardingAlreadyRestored
	}

	if record.RestorableUntil != nil && s.now().After(*record.RestorableUntil) {
		return nil, ErrRestoreWindowExpired
	}

	if err := s.userRepo.Reactivate(userID); err != nil {
		return nil, fmt.Errorf("failed to reactivate user: %w", err)
	}

	restoredAt := s.now()
	record.RestoredAt = &restoredAt
	record.RestoredBy = &restoredBy
	record.RestorableUntil = nil

	if err := s.offboardingRepo.Update(record); err != nil {
		return nil, fmt.Errorf("failed to persist restoration: %w", err)
	}

	s.log.Info().
		Uint64("record_id", record.ID).
		Uint64("user_id", userID).
		Uint64("restored_by", restoredBy).
		Msg("offboarded user restored")

	return record, nil
}

// GetArchiveByRef looks up a retained data archive by the opaque reference
// quoted in offboarding reports. The reference is globally unique, so the
// organization check only prevents cross-tenant reads.
func (s *OffboardingService) GetArchiveByRef(organizationID uint64, ref string) (*models.UserDataArchive, error) {
	archive, err := s.archiveRepo.FindByRef(ref)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrArchiveNotFound
		}
		return nil, fmt.Errorf("failed to find archive: %w", err)
	}
	if archive.OrganizationID != organizationID {
		return nil, ErrArchiveNotFound
	}
	return archive, nil
}

// ListUserArchives lists the retained data archives for a user within the
// organization, newest first.
func (s *OffboardingService) ListUserArchives(organizationID, userID uint64) ([]models.UserDataArchive, error) {
	archives, err := s.archiveRepo.ListByUser(organizationID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list archives: %w", err)
	}
	return archives, nil
}

// logAction emits a structured log line for one executed action and passes
// the action through.
func (s *OffboardingService) logAction(record *models.OffboardingRecord, action models.OffboardingAction) models.OffboardingAction {
	event := s.log.Info()
	if !action.Success {
		event = s.log.Warn().Str("error", action.Error)
	}
	event.
		Uint64("record_id", record.ID).
		Str("action", string(action.Action)).
		Str("description", action.Description).
		Msg("offboarding action executed")
	return action
}

// failRecord marks the record failed after an unexpected error and returns
// the original error. The secondary persistence attempt is best effort.
func (s *OffboardingService) failRecord(record *models.OffboardingRecord, cause error) error {
	record.Status = models.OffboardingStatusFailed
	record.RestorableUntil = nil
	if err := s.offboardingRepo.Update(record); err != nil {
		s.log.Error().
			Err(err).
			Uint64("record_id", record.ID).
			Msg("failed to mark offboarding record as failed")
	}
	return cause
}
