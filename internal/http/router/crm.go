package router

import (
	"github.com/gin-gonic/gin"

	"fieldpro.app/relay/internal/http/handler"
)

func ContactRouter(rg *gin.RouterGroup, h *handler.ContactHandler) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/:id", h.Get)
	rg.PATCH("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
}

func LeadRouter(rg *gin.RouterGroup, h *handler.LeadHandler) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/:id", h.Get)
	rg.PATCH("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
	rg.POST("/:id/convert", h.Convert)
}

func JobRouter(rg *gin.RouterGroup, h *handler.JobHandler) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/:id", h.Get)
	rg.PATCH("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
}

func QuoteRouter(rg *gin.RouterGroup, h *handler.QuoteHandler) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/:id", h.Get)
	rg.PATCH("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
	rg.POST("/:id/convert", h.Convert)
}

func InvoiceRouter(rg *gin.RouterGroup, h *handler.InvoiceHandler) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/:id", h.Get)
	rg.PATCH("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
	rg.POST("/:id/pay", h.Pay)
}

func TaskRouter(rg *gin.RouterGroup, h *handler.TaskHandler) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/:id", h.Get)
	rg.PATCH("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
	rg.POST("/:id/complete", h.Complete)
}

func EventRouter(rg *gin.RouterGroup, h *handler.EventHandler) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/availability", h.Availability)
	rg.GET("/:id", h.Get)
	rg.PATCH("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
}

func FeatureRouter(rg *gin.RouterGroup, h *handler.FeatureHandler) {
	rg.GET("", h.List)
}
