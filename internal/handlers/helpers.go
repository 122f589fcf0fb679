package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	apierrors "github.com/sitecrew/sitecrew-api/internal/errors"
	"github.com/sitecrew/sitecrew-api/internal/models"
)

// parseIDParam parses a numeric URL parameter, responding with 400 on failure.
func parseIDParam(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid "+name)
		return 0, false
	}
	return id, true
}

// contextOrganization returns the organization stored in the gin context by
// the RequireOrganizationAccess middleware.
func contextOrganization(c *gin.Context) (models.Organization, bool) {
	v, exists := c.Get("organization")
	if !exists {
		apierrors.InternalError(c, "Organization not found in context")
		return models.Organization{}, false
	}

	org, ok := v.(models.Organization)
	if !ok {
		apierrors.InternalError(c, "Invalid organization data")
		return models.Organization{}, false
	}

	return org, true
}
