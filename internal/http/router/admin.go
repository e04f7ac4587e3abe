package router

import (
	"github.com/gin-gonic/gin"

	"fieldpro.app/relay/internal/http/handler"
)

func AdminRouter(rg *gin.RouterGroup, h *handler.AdminHandler) {
	orgs := rg.Group("/organizations")
	orgs.GET("", h.ListOrganizations)
	orgs.POST("", h.CreateOrganization)
	orgs.GET("/:id", h.GetOrganization)
	orgs.PATCH("/:id", h.UpdateOrganization)
	orgs.POST("/:id/suspend", h.SuspendOrganization)
	orgs.GET("/:id/features", h.ListFeatures)
	orgs.PUT("/:id/features/:key", h.SetFeature)
	orgs.DELETE("/:id/features/:key", h.ResetFeature)
}
