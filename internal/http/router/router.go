package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fieldpro.app/relay/internal/http/handler"
	"fieldpro.app/relay/internal/http/middleware"
	"fieldpro.app/relay/internal/service"
)

type RouterConfig struct {
	DashboardURL string
	AdminAPIKey  string
	IsProduction bool
}

func SetupRoutes(router *gin.Engine, services *service.Services, cfg RouterConfig) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	requireSession := middleware.RequireSession(services.Auth())
	requireTenant := middleware.RequireTenant(services.Users())

	authHandler := handler.NewAuthHandler(services.Auth(), services.Users(), cfg.DashboardURL, cfg.IsProduction)
	AuthRouter(router.Group("/auth"), authHandler, requireSession)

	v1 := router.Group("/api/v1", requireSession, requireTenant)
	{
		ContactRouter(v1.Group("/contacts"), handler.NewContactHandler(services.Contacts()))
		LeadRouter(v1.Group("/leads"), handler.NewLeadHandler(services.Leads()))
		JobRouter(v1.Group("/jobs"), handler.NewJobHandler(services.Jobs()))
		QuoteRouter(v1.Group("/quotes"), handler.NewQuoteHandler(services.Quotes()))
		InvoiceRouter(v1.Group("/invoices"), handler.NewInvoiceHandler(services.Invoices()))
		TaskRouter(v1.Group("/tasks"), handler.NewTaskHandler(services.Tasks()))
		EventRouter(v1.Group("/events"), handler.NewEventHandler(services.Events()))
		FeatureRouter(v1.Group("/features"), handler.NewFeatureHandler(services.Features()))

		managers := middleware.RequireManager()
		APIKeyRouter(v1.Group("/api-keys", managers), handler.NewAPIKeyHandler(services.APIKeys()))
		WebhookRouter(v1.Group("/webhooks", managers), handler.NewWebhookHandler(services.Webhooks()))
		WidgetRouter(v1.Group("/widget"), handler.NewWidgetHandler(services.Widgets()), managers)
	}

	GatewayRouter(router.Group("/api/integrations/n8n"), handler.NewGatewayHandler(services.Gateway()))

	PublicWidgetRouter(router.Group("/widget"), handler.NewWidgetHandler(services.Widgets()))

	admin := router.Group("/admin", middleware.RequireAdminAPIKey(cfg.AdminAPIKey))
	AdminRouter(admin, handler.NewAdminHandler(services.Organizations(), services.Features()))
}
