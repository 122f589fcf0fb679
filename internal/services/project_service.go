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
	ErrProjectNotFound     = errors.New("project not found")
	ErrClientNotFound      = errors.New("client not found")
	ErrProjectNameRequired = errors.New("project name is required")
	ErrClientNameRequired  = errors.New("client name is required")
	ErrManagerNotMember    = errors.New("project manager must be a member of the organization")
	ErrClientWrongTenant   = errors.New("client does not belong to this organization")
)

// ProjectService handles project and client business logic
type ProjectService struct {
	projectRepo repository.ProjectRepository
	clientRepo  repository.ClientRepository
	orgRepo     repository.OrganizationRepository
}

// NewProjectService creates a new ProjectService
func NewProjectService(projectRepo repository.ProjectRepository, clientRepo repository.ClientRepository, orgRepo repository.OrganizationRepository) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		clientRepo:  clientRepo,
		orgRepo:     orgRepo,
	}
}

// CreateProjectInput represents input for creating a project
type CreateProjectInput struct {
	OrganizationID uint64
	Name           string
	ClientID       *uint64
	ManagerID      uint64
	SiteAddress    string
	BudgetCents    int64
	StartDate      *time.Time
	EndDate        *time.Time
}

// CreateProject creates a project after validating the manager and client.
func (s *ProjectService) CreateProject(input CreateProjectInput) (*models.Project, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrProjectNameRequired
	}

	if _, err := s.orgRepo.FindMember(input.OrganizationID, input.ManagerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrManagerNotMember
		}
		return nil, fmt.Errorf("failed to verify manager membership: %w", err)
	}

	if input.ClientID != nil {
		if _, err := s.clientRepo.FindByID(input.OrganizationID, *input.ClientID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrClientWrongTenant
			}
			return nil, fmt.Errorf("failed to verify client: %w", err)
		}
	}

	project := &models.Project{
		OrganizationID: input.OrganizationID,
		Name:           input.Name,
		Status:         models.ProjectStatusPlanning,
		ClientID:       input.ClientID,
		ManagerID:      input.ManagerID,
		SiteAddress:    input.SiteAddress,
		BudgetCents:    input.BudgetCents,
		StartDate:      input.StartDate,
		EndDate:        input.EndDate,
	}

	if err := s.projectRepo.Create(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return project, nil
}

// GetProject returns a project scoped to the organization
func (s *ProjectService) GetProject(orgID, projectID uint64) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(orgID, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}

// ListProjects lists all projects in the organization
func (s *ProjectService) ListProjects(orgID uint64) ([]models.Project, error) {
	projects, err := s.projectRepo.ListByOrganization(orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// UpdateProjectInput represents input for updating a project
type UpdateProjectInput struct {
	Name        *string
	Status      *models.ProjectStatus
	ManagerID   *uint64
	SiteAddress *string
	BudgetCents *int64
	StartDate   *time.Time
	EndDate     *time.Time
}

// UpdateProject updates a project
func (s *ProjectService) UpdateProject(orgID, projectID uint64, input UpdateProjectInput) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(orgID, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, ErrProjectNameRequired
		}
		project.Name = *input.Name
	}
	if input.Status != nil {
		project.Status = *input.Status
	}
	if input.ManagerID != nil {
		if _, err := s.orgRepo.FindMember(orgID, *input.ManagerID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrManagerNotMember
			}
			return nil, fmt.Errorf("failed to verify manager membership: %w", err)
		}
		project.ManagerID = *input.ManagerID
	}
	if input.SiteAddress != nil {
		project.SiteAddress = *input.SiteAddress
	}
	if input.BudgetCents != nil {
		project.BudgetCents = *input.BudgetCents
	}
	if input.StartDate != nil {
		project.StartDate = input.StartDate
	}
	if input.EndDate != nil {
		project.EndDate = input.EndDate
	}

	if err := s.projectRepo.Update(project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	return project, nil
}

// DeleteProject removes a project
func (s *ProjectService) DeleteProject(orgID, projectID uint64) error {
	if err := s.projectRepo.Delete(orgID, projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}

// CreateClientInput represents input for creating a client
type CreateClientInput struct {
	OrganizationID uint64
	Name           string
	ContactName    string
	Email          string
	Phone          string
	Address        string
}

// CreateClient creates a client
func (s *ProjectService) CreateClient(input CreateClientInput) (*models.Client, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrClientNameRequired
	}

	client := &models.Client{
		OrganizationID: input.OrganizationID,
		Name:           input.Name,
		ContactName:    input.ContactName,
		Email:          input.Email,
		Phone:          input.Phone,
		Address:        input.Address,
	}

	if err := s.clientRepo.Create(client); err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, nil
}

// ListClients lists all clients in the organization
func (s *ProjectService) ListClients(orgID uint64) ([]models.Client, error) {
	clients, err := s.clientRepo.ListByOrganization(orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	return clients, nil
}

// DeleteClient removes a client
func (s *ProjectService) DeleteClient(orgID, clientID uint64) error {
	if err := s.clientRepo.Delete(orgID, clientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrClientNotFound
		}
		return fmt.Errorf("failed to delete client: %w", err)
	}
	return nil
}
