package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	apierrors "github.com/sitecrew/sitecrew-api/internal/errors"
	"github.com/sitecrew/sitecrew-api/internal/models"
	"github.com/sitecrew/sitecrew-api/internal/services"
)

// ProjectHandler coordinates project and client HTTP handlers.
type ProjectHandler struct {
	projectService *services.ProjectService
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

// CreateProject creates a new project in the organization
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	org, ok := contextOrganization(c)
	if !ok {
		return
	}

	type CreateProjectRequest struct {
		Name        string     `json:"name" binding:"required"`
		ClientID    *uint64    `json:"client_id"`
		ManagerID   uint64     `json:"manager_id" binding:"required"`
		SiteAddress string     `json:"site_address"`
		BudgetCents int64      `json:"budget_cents"`
		StartDate   *time.Time `json:"start_date"`
		EndDate     *time.Time `json:"end_date"`
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	project, err := h.projectService.CreateProject(services.CreateProjectInput{
		OrganizationID: org.ID,
		Name:           req.Name,
		ClientID:       req.ClientID,
		ManagerID:      req.ManagerID,
		SiteAddress:    req.SiteAddress,
		BudgetCents:    req.BudgetCents,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
	})
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusCreated, project)
}

// ListProjects lists the organization's projects
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	org, ok := contextOrganization(c)
	if !ok {
		return
	}

	projects, err := h.projectService.ListProjects(org.ID)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"projects": projects,
	})
}

// GetProject returns a single project
func (h *ProjectHandler) GetProject(c *gin.Context) {
	org, ok := contextOrganization(c)
	if !ok {
		return
	}

	projectID, ok := parseIDParam(c, "project_id")
	if !ok {
		return
	}

	project, err := h.projectService.GetProject(org.ID, projectID)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

// UpdateProject updates a project
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	org, ok := contextOrganization(c)
	if !ok {
		return
	}

	projectID, ok := parseIDParam(c, "project_id")
	if !ok {
		return
	}

	type UpdateProjectRequest struct {
		Name        *string               `json:"name"`
		Status      *models.ProjectStatus `json:"status"`
		ManagerID   *uint64               `json:"manager_id"`
		SiteAddress *string               `json:"site_address"`
		BudgetCents *int64                `json:"budget_cents"`
		StartDate   *time.Time            `json:"start_date"`
		EndDate     *time.Time            `json:"end_date"`
	}

	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	project, err := h.projectService.UpdateProject(org.ID, projectID, services.UpdateProjectInput{
		Name:        req.Name,
		Status:      req.Status,
		ManagerID:   req.ManagerID,
		SiteAddress: req.SiteAddress,
		BudgetCents: req.BudgetCents,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	})
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

// DeleteProject removes a project
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	org, ok := contextOrganization(c)
	if !ok {
		return
	}

	projectID, ok := parseIDParam(c, "project_id")
	if !ok {
		return
	}

	if err := h.projectService.DeleteProject(org.ID, projectID); err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Project deleted successfully",
	})
}

// CreateClient creates a new client in the organization
func (h *ProjectHandler) CreateClient(c *gin.Context) {
	org, ok := contextOrganization(c)
	if !ok {
		return
	}

	type CreateClientRequest struct {
		Name        string `json:"name" binding:"required"`
		ContactName string `json:"contact_name"`
		Email       string `json:"email"`
		Phone       string `json:"phone"`
		Address     string `json:"address"`
	}

	var req CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	client, err := h.projectService.CreateClient(services.CreateClientInput{
		OrganizationID: org.ID,
		Name:           req.Name,
		ContactName:    req.ContactName,
		Email:          req.Email,
		Phone:          req.Phone,
		Address:        req.Address,
	})
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusCreated, client)
}

// ListClients lists the organization's clients
func (h *ProjectHandler) ListClients(c *gin.Context) {
	org, ok := contextOrganization(c)
	if !ok {
		return
	}

	clients, err := h.projectService.ListClients(org.ID)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"clients": clients,
	})
}

// DeleteClient removes a client
func (h *ProjectHandler) DeleteClient(c *gin.Context) {
	org, ok := contextOrganization(c)
	if !ok {
		return
	}

	clientID, ok := parseIDParam(c, "client_id")
	if !ok {
		return
	}

	if err := h.projectService.DeleteClient(org.ID, clientID); err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Client deleted successfully",
	})
}

func respondProjectError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrProjectNotFound),
		errors.Is(err, services.ErrClientNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrProjectNameRequired),
		errors.Is(err, services.ErrClientNameRequired),
		errors.Is(err, services.ErrManagerNotMember),
		errors.Is(err, services.ErrClientWrongTenant):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
