package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"fieldpro.app/relay/internal/http/middleware"
	"fieldpro.app/relay/internal/model"
	"fieldpro.app/relay/internal/service"
)

// respondError maps service sentinels to status codes. Unknown errors are
// logged and reported as a bare 500.
func respondError(c *gin.Context, err error, fallback string) {
	ctx := c.Request.Context()

	var conflict *service.ConflictError
	switch {
	case errors.As(err, &conflict):
		conflicts := conflict.Conflicts
		if conflicts == nil {
			conflicts = []model.Event{}
		}
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "conflicts": conflicts})
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrForbidden),
		errors.Is(err, service.ErrOrganizationSuspended),
		errors.Is(err, service.ErrFeatureDisabled):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrRateLimited):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
	default:
		slog.ErrorContext(ctx, fallback, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

func badRequest(c *gin.Context, err error) {
	slog.WarnContext(c.Request.Context(), "invalid request", "error", err)
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// pathID parses the :id route parameter, writing a 400 when it is malformed.
func pathID(c *gin.Context) (int64, bool) {
	v, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || v <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return v, true
}

// tenantID returns the organization resolved by RequireTenant.
func tenantID(c *gin.Context) int64 {
	tenant := middleware.GetTenant(c.Request.Context())
	if tenant == nil || tenant.Organization == nil {
		return 0
	}
	return tenant.Organization.ID
}

func emptyIfNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
