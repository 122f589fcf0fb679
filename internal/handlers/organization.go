package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sitecrew/sitecrew-api/internal/dto"
	apierrors "github.com/sitecrew/sitecrew-api/internal/errors"
	"github.com/sitecrew/sitecrew-api/internal/middleware"
	"github.com/sitecrew/sitecrew-api/internal/models"
	"github.com/sitecrew/sitecrew-api/internal/services"
)

// OrganizationHandler coordinates organization HTTP handlers.
type OrganizationHandler struct {
	orgService *services.OrganizationService
}

// NewOrganizationHandler creates a new OrganizationHandler.
func NewOrganizationHandler(orgService *services.OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{
		orgService: orgService,
	}
}

// CreateOrganization creates a new organization
func (h *OrganizationHandler) CreateOrganization(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateOrgRequest struct {
		Name string `json:"name" binding:"required"`
	}

	var req CreateOrgRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	org, err := h.orgService.CreateOrganization(services.CreateOrganizationInput{
		Name:    req.Name,
		OwnerID: userID,
	})
	if err != nil {
		respondOrganizationError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToOrganizationDTO(*org, true))
}

// ListOrganizations returns all organizations the user is a member of
func (h *OrganizationHandler) ListOrganizations(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	memberships, err := h.orgService.ListOrganizationsForUser(userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch organizations")
		return
	}

	orgs := make([]dto.OrganizationWithRoleDTO, len(memberships))
	for i, m := range memberships {
		orgs[i] = dto.ToOrganizationWithRoleDTO(m)
	}

	c.JSON(http.StatusOK, gin.H{
		"organizations": orgs,
	})
}

// GetOrganization returns organization details
func (h *OrganizationHandler) GetOrganization(c *gin.Context) {
	// Organization is already loaded by RequireOrganizationAccess middleware
	orgInterface, _ := c.Get("organization")
	org := orgInterface.(models.Organization)

	memberInterface, _ := c.Get("organization_member")
	member := memberInterface.(models.OrganizationMember)

	_, members, err := h.orgService.GetOrganizationWithMembers(org.ID)
	if err != nil {
		respondOrganizationError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToOrganizationDetailDTO(org, members, member.Role))
}

// UpdateOrganization updates organization name
func (h *OrganizationHandler) UpdateOrganization(c *gin.Context) {
	orgInterface, _ := c.Get("organization")
	org := orgInterface.(models.Organization)

	type UpdateOrgRequest struct {
		Name string `json:"name" binding:"required"`
	}

	var req UpdateOrgRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	updated, err := h.orgService.UpdateOrganizationName(org.ID, req.Name)
	if err != nil {
		respondOrganizationError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToOrganizationDTO(*updated, true))
}

// DeleteOrganization deletes an organization and all of its data
func (h *OrganizationHandler) DeleteOrganization(c *gin.Context) {
	orgInterface, _ := c.Get("organization")
	org := orgInterface.(models.Organization)

	if err := h.orgService.DeleteOrganization(org.ID); err != nil {
		respondOrganizationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Organization deleted successfully",
	})
}

// JoinOrganization allows a user to join via invite code
func (h *OrganizationHandler) JoinOrganization(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type JoinRequest struct {
		InviteCode string `json:"invite_code" binding:"required"`
	}

	var req JoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	org, err := h.orgService.JoinOrganizationByInvite(userID, req.InviteCode)
	if err != nil {
		respondOrganizationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Successfully joined organization",
		"organization": dto.ToOrganizationDTO(*org, false),
	})
}

// RegenerateInviteCode generates a new invite code for the organization
func (h *OrganizationHandler) RegenerateInviteCode(c *gin.Context) {
	orgInterface, _ := c.Get("organization")
	org := orgInterface.(models.Organization)

	updated, err := h.orgService.RegenerateInviteCode(org.ID)
	if err != nil {
		respondOrganizationError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToOrganizationDTO(*updated, true))
}

// RemoveMember removes a member from the organization
func (h *OrganizationHandler) RemoveMember(c *gin.Context) {
	orgInterface, _ := c.Get("organization")
	org := orgInterface.(models.Organization)

	targetID, ok := parseIDParam(c, "user_id")
	if !ok {
		return
	}

	currentUserID, _ := middleware.GetUserID(c)

	if err := h.orgService.RemoveMember(org.ID, currentUserID, targetID); err != nil {
		respondOrganizationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Member removed successfully",
	})
}

func respondOrganizationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidOrganizationName):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrInvalidInviteCode):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrOrganizationNotFound),
		errors.Is(err, services.ErrOrganizationMemberNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrAlreadyOrganizationMember):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrCannotRemoveYourself):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
