package handler

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"

	"fieldpro.app/relay/internal/http/dto"
	"fieldpro.app/relay/internal/service"
)

type WidgetHandler struct {
	widgets service.WidgetService
}

func NewWidgetHandler(widgets service.WidgetService) *WidgetHandler {
	return &WidgetHandler{widgets: widgets}
}

func (h *WidgetHandler) Get(c *gin.Context) {
	cfg, err := h.widgets.Get(c.Request.Context(), tenantID(c))
	if err != nil {
		respondError(c, err, "failed to get widget config")
		return
	}
	c.JSON(http.StatusOK, cfg)
}

func (h *WidgetHandler) Update(c *gin.Context) {
	var req dto.UpdateWidgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	cfg, err := h.widgets.Update(c.Request.Context(), tenantID(c), req.ToInput())
	if err != nil {
		respondError(c, err, "failed to update widget config")
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// PublicConfig serves the unauthenticated embed config. Browsers are only
// granted CORS access from the configured origins; an empty list allows any.
func (h *WidgetHandler) PublicConfig(c *gin.Context) {
	cfg, err := h.widgets.PublicConfig(c.Request.Context(), c.Param("public_id"))
	if err != nil {
		respondError(c, err, "failed to load widget")
		return
	}

	// The body is cacheable but the CORS headers depend on the caller.
	c.Header("Vary", "Origin")
	if origin := c.GetHeader("Origin"); origin != "" {
		if len(cfg.AllowedOrigins) > 0 && !slices.Contains(cfg.AllowedOrigins, origin) {
			c.JSON(http.StatusForbidden, gin.H{"error": "origin not allowed"})
			return
		}
		c.Header("Access-Control-Allow-Origin", origin)
	}
	c.Header("Cache-Control", "public, max-age=60")
	c.JSON(http.StatusOK, dto.ToPublicWidgetResponse(cfg))
}
