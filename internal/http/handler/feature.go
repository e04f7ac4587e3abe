package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fieldpro.app/relay/internal/service"
)

type FeatureHandler struct {
	features service.FeatureService
}

func NewFeatureHandler(features service.FeatureService) *FeatureHandler {
	return &FeatureHandler{features: features}
}

// List returns the effective flags for the caller's organization.
func (h *FeatureHandler) List(c *gin.Context) {
	features, err := h.features.Effective(c.Request.Context(), tenantID(c))
	if err != nil {
		respondError(c, err, "failed to list features")
		return
	}
	c.JSON(http.StatusOK, gin.H{"features": emptyIfNil(features)})
}
