package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sitecrew/sitecrew-api/internal/dto"
	apierrors "github.com/sitecrew/sitecrew-api/internal/errors"
	"github.com/sitecrew/sitecrew-api/internal/middleware"
	"github.com/sitecrew/sitecrew-api/internal/models"
	"github.com/sitecrew/sitecrew-api/internal/services"
)

// OffboardingHandler coordinates the offboarding workflow HTTP handlers.
// All routes sit behind RequireOrganizationOwner.
type OffboardingHandler struct {
	offboardingService *services.OffboardingService
}

// NewOffboardingHandler creates a new OffboardingHandler.
func NewOffboardingHandler(offboardingService *services.OffboardingService) *OffboardingHandler {
	return &OffboardingHandler{
		offboardingService: offboardingService,
	}
}

// GetImpactPreview returns counts of the work items that reference a user,
// shown before the offboarding wizard commits.
func (h *OffboardingHandler) GetImpactPreview(c *gin.Context) {
	org, ok := contextOrganization(c)
	if !ok {
		return
	}

	userID, ok := parseIDParam(c, "user_id")
	if !ok {
		return
	}

	preview, err := h.offboardingService.GetImpactPreview(org.ID, userID)
	if err != nil {
		respondOffboardingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"preview":  preview,
		"has_work": preview.HasWork(),
	})
}

// InitiateOffboarding creates a pending offboarding record for a user
func (h *OffboardingHandler) InitiateOffboarding(c *gin.Context) {
	org, ok := contextOrganization(c)
	if !ok {
		return
	}

	userID, ok := parseIDParam(c, "user_id")
	if !ok {
		return
	}

	initiatorID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type InitiateRequest struct {
		EffectiveDate             *time.Time `json:"effective_date"`
		ReassignTasksTo           *uint64    `json:"reassign_tasks_to"`
		ArchiveData               bool       `json:"archive_data"`
		SendNotification          bool       `json:"send_notification"`
		RevokeSessionsImmediately *bool      `json:"revoke_sessions_immediately"`
		Reason                    string     `json:"reason"`
	}

	var req InitiateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	options := models.OffboardingOptions{
		ReassignTasksTo:           req.ReassignTasksTo,
		ArchiveData:               req.ArchiveData,
		SendNotification:          req.SendNotification,
		RevokeSessionsImmediately: req.RevokeSessionsImmediately,
		Reason:                    req.Reason,
	}
	if req.EffectiveDate != nil {
		options.EffectiveDate = *req.EffectiveDate
	}

	record, err := h.offboardingService.InitiateOffboarding(services.InitiateOffboardingInput{
		OrganizationID: org.ID,
		UserID:         userID,
		InitiatedBy:    initiatorID,
		Options:        options,
	})
	if err != nil {
		respondOffboardingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToOffboardingRecordDTO(*record))
}

// ExecuteOffboarding runs the workflow for a pending record
func (h *OffboardingHandler) ExecuteOffboarding(c *gin.Context) {
	org, ok := contextOrganization(c)
	if !ok {
		return
	}

	recordID, ok := parseIDParam(c, "record_id")
	if !ok {
		return
	}

	record, err := h.offboardingService.ExecuteOffboarding(org.ID, recordID)
	if err != nil {
		respondOffboardingError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToOffboardingRecordDTO(*record))
}

// ListOffboardings returns the organization's offboarding history
func (h *OffboardingHandler) ListOffboardings(c *gin.Context) {
	org, ok := contextOrganization(c)
	if !ok {
		return
	}

	records, err := h.offboardingService.ListOffboardingRecords(org.ID)
	if err != nil {
		respondOffboardingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"offboardings": dto.ToOffboardingListDTO(records),
	})
}

// GetOffboarding returns one offboarding record with options and report
func (h *OffboardingHandler) GetOffboarding(c *gin.Context) {
	org, ok := contextOrganization(c)
	if !ok {
		return
	}

	recordID, ok := parseIDParam(c, "record_id")
	if !ok {
		return
	}

	record, err := h.offboardingService.GetOffboardingRecord(org.ID, recordID)
	if err != nil {
		respondOffboardingError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToOffboardingRecordDTO(*record))
}

// ExportOffboardingReport streams the record's report as a PDF
func (h *OffboardingHandler) ExportOffboardingReport(c *gin.Context) {
	org, ok := contextOrganization(c)
	if !ok {
		return
	}

	recordID, ok := parseIDParam(c, "record_id")
	if !ok {
		return
	}

	pdfBytes, err := h.offboardingService.ExportReportPDF(org.ID, recordID)
	if err != nil {
		respondOffboardingError(c, err)
		return
	}

	filename := fmt.Sprintf("offboarding-report-%d.pdf", recordID)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

// RestoreUser reverses a completed offboarding while its window is open
func (h *OffboardingHandler) RestoreUser(c *gin.Context) {
	org, ok := contextOrganization(c)
	if !ok {
		return
	}

	recordID, ok := parseIDParam(c, "record_id")
	if !ok {
		return
	}

	restoredBy, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type RestoreRequest struct {
		UserID uint64 `json:"user_id" binding:"required"`
	}

	var req RestoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	record, err := h.offboardingService.RestoreUser(recordID, org.ID, req.UserID, restoredBy)
	if err != nil {
		respondOffboardingError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToOffboardingRecordDTO(*record))
}

// ListUserArchives returns the retained data archives for a member
func (h *OffboardingHandler) ListUserArchives(c *gin.Context) {
	org, ok := contextOrganization(c)
	if !ok {
		return
	}

	userID, ok := parseIDParam(c, "user_id")
	if !ok {
		return
	}

	archives, err := h.offboardingService.ListUserArchives(org.ID, userID)
	if err != nil {
		respondOffboardingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"archives": archives,
	})
}

// GetArchive returns one data archive by its compliance reference
func (h *OffboardingHandler) GetArchive(c *gin.Context) {
	org, ok := contextOrganization(c)
	if !ok {
		return
	}

	ref := c.Param("archive_ref")
	if ref == "" {
		apierrors.BadRequest(c, "Invalid archive_ref")
		return
	}

	archive, err := h.offboardingService.GetArchiveByRef(org.ID, ref)
	if err != nil {
		respondOffboardingError(c, err)
		return
	}

	c.JSON(http.StatusOK, archive)
}

func respondOffboardingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrOffboardingNotFound),
		errors.Is(err, services.ErrArchiveNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrOffboardingInProgress):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrOffboardingAlreadyStarted),
		errors.Is(err, services.ErrOffboardingNotCompleted),
		errors.Is(err, services.ErrOffboardingAlreadyRestored),
		errors.Is(err, services.ErrReportNotReady):
		apierrors.UnprocessableEntity(c, err.Error())
	case errors.Is(err, services.ErrRestoreWindowExpired):
		apierrors.Gone(c, err.Error())
	case errors.Is(err, services.ErrOffboardTargetNotMember),
		errors.Is(err, services.ErrReassigneeNotMember):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrReassignToSelf):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
