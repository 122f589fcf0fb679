package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sitecrew/sitecrew-api/internal/models"
	"github.com/sitecrew/sitecrew-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTimeEntryNotFound = errors.New("time entry not found")
	ErrExpenseNotFound   = errors.New("expense not found")
	ErrInvalidHours      = errors.New("hours must be greater than zero")
	ErrInvalidAmount     = errors.New("amount must be greater than zero")
	ErrPhotoURLRequired  = errors.New("photo URL is required")
	ErrNotWorklogOwner   = errors.New("only the owner can delete this entry")
)

// WorklogService handles time entries, expenses and site photos.
type WorklogService struct {
	timeEntryRepo repository.TimeEntryRepository
	expenseRepo   repository.ExpenseRepository
	photoRepo     repository.ProjectPhotoRepository
	projectRepo   repository.ProjectRepository
}

// NewWorklogService creates a new WorklogService
func NewWorklogService(timeEntryRepo repository.TimeEntryRepository, expenseRepo repository.ExpenseRepository, photoRepo repository.ProjectPhotoRepository, projectRepo repository.ProjectRepository) *WorklogService {
	return &WorklogService{
		timeEntryRepo: timeEntryRepo,
		expenseRepo:   expenseRepo,
		photoRepo:     photoRepo,
		projectRepo:   projectRepo,
	}
}

// LogTimeInput represents input for logging hours against a project
type LogTimeInput struct {
	OrganizationID uint64
	UserID         uint64
	ProjectID      uint64
	WorkDate       time.Time
	Hours          float64
	Notes          string
}

// LogTime records hours worked on a project
func (s *WorklogService) LogTime(input LogTimeInput) (*models.TimeEntry, error) {
	if input.Hours <= 0 {
		return nil, ErrInvalidHours
	}

	if _, err := s.projectRepo.FindByID(input.OrganizationID, input.ProjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to verify project: %w", err)
	}

	entry := &models.TimeEntry{
		OrganizationID: input.OrganizationID,
		UserID:         input.UserID,
		ProjectID:      input.ProjectID,
		WorkDate:       input.WorkDate,
		Hours:          input.Hours,
		Notes:          input.Notes,
	}

	if err := s.timeEntryRepo.Create(entry); err != nil {
		return nil, fmt.Errorf("failed to create time entry: %w", err)
	}

	return entry, nil
}

// ListTimeEntries returns a user's time entries within the organization
func (s *WorklogService) ListTimeEntries(orgID, userID uint64) ([]models.TimeEntry, error) {
	entries, err := s.timeEntryRepo.ListByUser(orgID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list time entries: %w", err)
	}
	return entries, nil
}

// DeleteTimeEntry removes a time entry if the actor owns it
func (s *WorklogService) DeleteTimeEntry(orgID, entryID, actorID uint64) error {
	entry, err := s.timeEntryRepo.FindByID(orgID, entryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTimeEntryNotFound
		}
		return fmt.Errorf("failed to find time entry: %w", err)
	}

	if entry.UserID != actorID {
		return ErrNotWorklogOwner
	}

	if err := s.timeEntryRepo.Delete(orgID, entryID); err != nil {
		return fmt.Errorf("failed to delete time entry: %w", err)
	}

	return nil
}

// SubmitExpenseInput represents input for submitting an expense
type SubmitExpenseInput struct {
	OrganizationID uint64
	UserID         uint64
	ProjectID      uint64
	ExpenseDate    time.Time
	AmountCents    int64
	Category       models.ExpenseCategory
	Description    string
}

// SubmitExpense records a cost against a project
func (s *WorklogService) SubmitExpense(input SubmitExpenseInput) (*models.Expense, error) {
	if input.AmountCents <= 0 {
		return nil, ErrInvalidAmount
	}

	if _, err := s.projectRepo.FindByID(input.OrganizationID, input.ProjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to verify project: %w", err)
	}

	if input.Category == "" {
		input.Category = models.ExpenseCategoryOther
	}

	expense := &models.Expense{
		OrganizationID: input.OrganizationID,
		UserID:         input.UserID,
		ProjectID:      input.ProjectID,
		ExpenseDate:    input.ExpenseDate,
		AmountCents:    input.AmountCents,
		Category:       input.Category,
		Description:    input.Description,
	}

	if err := s.expenseRepo.Create(expense); err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	return expense, nil
}

// ListExpenses returns a user's expenses within the organization
func (s *WorklogService) ListExpenses(orgID, userID uint64) ([]models.Expense, error) {
	expenses, err := s.expenseRepo.ListByUser(orgID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	return expenses, nil
}

// DeleteExpense removes an expense if the actor owns it
func (s *WorklogService) DeleteExpense(orgID, expenseID, actorID uint64) error {
	expense, err := s.expenseRepo.FindByID(orgID, expenseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrExpenseNotFound
		}
		return fmt.Errorf("failed to find expense: %w", err)
	}

	if expense.UserID != actorID {
		return ErrNotWorklogOwner
	}

	if err := s.expenseRepo.Delete(orgID, expenseID); err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	return nil
}

// AddPhotoInput represents input for attaching a site photo to a project
type AddPhotoInput struct {
	OrganizationID uint64
	ProjectID      uint64
	UploadedBy     uint64
	URL            string
	Caption        string
}

// AddPhoto attaches a site photo to a project
func (s *WorklogService) AddPhoto(input AddPhotoInput) (*models.ProjectPhoto, error) {
	if strings.TrimSpace(input.URL) == "" {
		return nil, ErrPhotoURLRequired
	}

	if _, err := s.projectRepo.FindByID(input.OrganizationID, input.ProjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to verify project: %w", err)
	}

	photo := &models.ProjectPhoto{
		OrganizationID: input.OrganizationID,
		ProjectID:      input.ProjectID,
		UploadedBy:     input.UploadedBy,
		URL:            input.URL,
		Caption:        input.Caption,
	}

	if err := s.photoRepo.Create(photo); err != nil {
		return nil, fmt.Errorf("failed to save photo: %w", err)
	}

	return photo, nil
}

// ListPhotos returns the photos attached to a project
func (s *WorklogService) ListPhotos(orgID, projectID uint64) ([]models.ProjectPhoto, error) {
	photos, err := s.photoRepo.ListByProject(orgID, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list photos: %w", err)
	}
	return photos, nil
}
