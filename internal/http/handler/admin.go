package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"fieldpro.app/relay/internal/http/dto"
	"fieldpro.app/relay/internal/service"
)

// AdminHandler backs the back-office: organizations and their feature flags.
type AdminHandler struct {
	orgs     service.OrganizationService
	features service.FeatureService
}

func NewAdminHandler(orgs service.OrganizationService, features service.FeatureService) *AdminHandler {
	return &AdminHandler{orgs: orgs, features: features}
}

func (h *AdminHandler) ListOrganizations(c *gin.Context) {
	var q dto.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}

	orgs, err := h.orgs.List(c.Request.Context(), q.Page())
	if err != nil {
		respondError(c, err, "failed to list organizations")
		return
	}
	c.JSON(http.StatusOK, gin.H{"organizations": emptyIfNil(orgs)})
}

func (h *AdminHandler) CreateOrganization(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	org, err := h.orgs.Create(ctx, req.ToInput())
	if err != nil {
		respondError(c, err, "failed to create organization")
		return
	}

	slog.InfoContext(ctx, "organization created", "organization_id", org.ID, "slug", org.Slug)
	c.JSON(http.StatusCreated, org)
}

func (h *AdminHandler) GetOrganization(c *gin.Context) {
	ctx := c.Request.Context()
	orgID, ok := pathID(c)
	if !ok {
		return
	}

	org, err := h.orgs.Get(ctx, orgID)
	if err != nil {
		respondError(c, err, "failed to get organization")
		return
	}
	members, err := h.orgs.Members(ctx, orgID)
	if err != nil {
		respondError(c, err, "failed to list members")
		return
	}
	features, err := h.features.Effective(ctx, orgID)
	if err != nil {
		respondError(c, err, "failed to list features")
		return
	}

	c.JSON(http.StatusOK, dto.OrganizationDetailResponse{
		Organization: org,
		Members:      emptyIfNil(members),
		Features:     emptyIfNil(features),
	})
}

func (h *AdminHandler) UpdateOrganization(c *gin.Context) {
	orgID, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.UpdateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	org, err := h.orgs.Update(c.Request.Context(), orgID, req.ToPatch())
	if err != nil {
		respondError(c, err, "failed to update organization")
		return
	}
	c.JSON(http.StatusOK, org)
}

func (h *AdminHandler) SuspendOrganization(c *gin.Context) {
	ctx := c.Request.Context()
	orgID, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.SuspendOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	org, err := h.orgs.SetSuspended(ctx, orgID, *req.Suspended)
	if err != nil {
		respondError(c, err, "failed to update organization status")
		return
	}

	slog.InfoContext(ctx, "organization status changed", "organization_id", org.ID, "status", org.Status)
	c.JSON(http.StatusOK, org)
}

func (h *AdminHandler) ListFeatures(c *gin.Context) {
	orgID, ok := pathID(c)
	if !ok {
		return
	}

	features, err := h.features.Effective(c.Request.Context(), orgID)
	if err != nil {
		respondError(c, err, "failed to list features")
		return
	}
	c.JSON(http.StatusOK, gin.H{"features": emptyIfNil(features)})
}

func (h *AdminHandler) SetFeature(c *gin.Context) {
	ctx := c.Request.Context()
	orgID, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.SetFeatureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	flag, err := h.features.Set(ctx, orgID, c.Param("key"), *req.Enabled)
	if err != nil {
		respondError(c, err, "failed to set feature")
		return
	}

	slog.InfoContext(ctx, "feature flag set", "organization_id", orgID, "key", flag.Key, "enabled", flag.Enabled)
	c.JSON(http.StatusOK, flag)
}

func (h *AdminHandler) ResetFeature(c *gin.Context) {
	orgID, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.features.Reset(c.Request.Context(), orgID, c.Param("key")); err != nil {
		respondError(c, err, "failed to reset feature")
		return
	}
	c.Status(http.StatusNoContent)
}
