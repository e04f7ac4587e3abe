package router

import (
	"github.com/gin-gonic/gin"

	"fieldpro.app/relay/internal/http/handler"
)

func APIKeyRouter(rg *gin.RouterGroup, h *handler.APIKeyHandler) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/scopes", h.Scopes)
	rg.GET("/:id", h.Get)
	rg.POST("/:id/rotate", h.Rotate)
	rg.POST("/:id/revoke", h.Revoke)
}

func WebhookRouter(rg *gin.RouterGroup, h *handler.WebhookHandler) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/:id", h.Get)
	rg.PATCH("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
	rg.POST("/:id/test", h.Test)
	rg.GET("/:id/deliveries", h.Deliveries)
}

// WidgetRouter lets any member read the config; only managers may change it.
func WidgetRouter(rg *gin.RouterGroup, h *handler.WidgetHandler, managers gin.HandlerFunc) {
	rg.GET("", h.Get)
	rg.PUT("", managers, h.Update)
}

func PublicWidgetRouter(rg *gin.RouterGroup, h *handler.WidgetHandler) {
	rg.GET("/:public_id/config", h.PublicConfig)
}

func GatewayRouter(rg *gin.RouterGroup, h *handler.GatewayHandler) {
	rg.POST("", h.Handle)
	rg.GET("/schema", h.Schema)
}
