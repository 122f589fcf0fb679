package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	apierrors "github.com/sitecrew/sitecrew-api/internal/errors"
	"github.com/sitecrew/sitecrew-api/internal/middleware"
	"github.com/sitecrew/sitecrew-api/internal/models"
	"github.com/sitecrew/sitecrew-api/internal/services"
)

// WorklogHandler coordinates time entry, expense and photo HTTP handlers.
type WorklogHandler struct {
	worklogService *services.WorklogService
}

// NewWorklogHandler creates a new WorklogHandler.
func NewWorklogHandler(worklogService *services.WorklogService) *WorklogHandler {
	return &WorklogHandler{
		worklogService: worklogService,
	}
}

// LogTime records hours worked on a project
func (h *WorklogHandler) LogTime(c *gin.Context) {
	org, ok := contextOrganization(c)
	if !ok {
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type LogTimeRequest struct {
		ProjectID uint64    `json:"project_id" binding:"required"`
		WorkDate  time.Time `json:"work_date" binding:"required"`
		Hours     float64   `json:"hours" binding:"required"`
		Notes     string    `json:"notes"`
	}

	var req LogTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	entry, err := h.worklogService.LogTime(services.LogTimeInput{
		OrganizationID: org.ID,
		UserID:         userID,
		ProjectID:      req.ProjectID,
		WorkDate:       req.WorkDate,
		Hours:          req.Hours,
		Notes:          req.Notes,
	})
	if err != nil {
		respondWorklogError(c, err)
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// ListTimeEntries lists the current user's time entries
func (h *WorklogHandler) ListTimeEntries(c *gin.Context) {
	org, ok := contextOrganization(c)
	if !ok {
		return
	}

	userID, _ := middleware.GetUserID(c)

	entries, err := h.worklogService.ListTimeEntries(org.ID, userID)
	if err != nil {
		respondWorklogError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"time_entries": entries,
	})
}

// DeleteTimeEntry removes one of the current user's time entries
func (h *WorklogHandler) DeleteTimeEntry(c *gin.Context) {
	org, ok := contextOrganization(c)
	if !ok {
		return
	}

	entryID, ok := parseIDParam(c, "entry_id")
	if !ok {
		return
	}

	userID, _ := middleware.GetUserID(c)

	if err := h.worklogService.DeleteTimeEntry(org.ID, entryID, userID); err != nil {
		respondWorklogError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Time entry deleted successfully",
	})
}

// SubmitExpense records an expense against a project
func (h *WorklogHandler) SubmitExpense(c *gin.Context) {
	org, ok := contextOrganization(c)
	if !ok {
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type SubmitExpenseRequest struct {
		ProjectID   uint64                 `json:"project_id" binding:"required"`
		ExpenseDate time.Time              `json:"expense_date" binding:"required"`
		AmountCents int64                  `json:"amount_cents" binding:"required"`
		Category    models.ExpenseCategory `json:"category"`
		Description string                 `json:"description"`
	}

	var req SubmitExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	expense, err := h.worklogService.SubmitExpense(services.SubmitExpenseInput{
		OrganizationID: org.ID,
		UserID:         userID,
		ProjectID:      req.ProjectID,
		ExpenseDate:    req.ExpenseDate,
		AmountCents:    req.AmountCents,
		Category:       req.Category,
		Description:    req.Description,
	})
	if err != nil {
		respondWorklogError(c, err)
		return
	}

	c.JSON(http.StatusCreated, expense)
}

// ListExpenses lists the current user's expenses
func (h *WorklogHandler) ListExpenses(c *gin.Context) {
	org, ok := contextOrganization(c)
	if !ok {
		return
	}

	userID, _ := middleware.GetUserID(c)

	expenses, err := h.worklogService.ListExpenses(org.ID, userID)
	if err != nil {
		respondWorklogError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"expenses": expenses,
	})
}

// DeleteExpense removes one of the current user's expenses
func (h *WorklogHandler) DeleteExpense(c *gin.Context) {
	org, ok := contextOrganization(c)
	if !ok {
		return
	}

	expenseID, ok := parseIDParam(c, "expense_id")
	if !ok {
		return
	}

	userID, _ := middleware.GetUserID(c)

	if err := h.worklogService.DeleteExpense(org.ID, expenseID, userID); err != nil {
		respondWorklogError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Expense deleted successfully",
	})
}

// AddPhoto attaches a site photo to a project
func (h *WorklogHandler) AddPhoto(c *gin.Context) {
	org, ok := contextOrganization(c)
	if !ok {
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	projectID, ok := parseIDParam(c, "project_id")
	if !ok {
		return
	}

	type AddPhotoRequest struct {
		URL     string `json:"url" binding:"required"`
		Caption string `json:"caption"`
	}

	var req AddPhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	photo, err := h.worklogService.AddPhoto(services.AddPhotoInput{
		OrganizationID: org.ID,
		ProjectID:      projectID,
		UploadedBy:     userID,
		URL:            req.URL,
		Caption:        req.Caption,
	})
	if err != nil {
		respondWorklogError(c, err)
		return
	}

	c.JSON(http.StatusCreated, photo)
}

// ListPhotos lists the photos attached to a project
func (h *WorklogHandler) ListPhotos(c *gin.Context) {
	org, ok := contextOrganization(c)
	if !ok {
		return
	}

	projectID, ok := parseIDParam(c, "project_id")
	if !ok {
		return
	}

	photos, err := h.worklogService.ListPhotos(org.ID, projectID)
	if err != nil {
		respondWorklogError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"photos": photos,
	})
}

func respondWorklogError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTimeEntryNotFound),
		errors.Is(err, services.ErrExpenseNotFound),
		errors.Is(err, services.ErrProjectNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrInvalidHours),
		errors.Is(err, services.ErrInvalidAmount),
		errors.Is(err, services.ErrPhotoURLRequired):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrNotWorklogOwner):
		apierrors.Forbidden(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
