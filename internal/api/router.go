package api

import (
	"github.com/gin-gonic/gin"

	v1 "github.com/facturio/facturio/internal/api/v1"
	"github.com/facturio/facturio/internal/config"
	"github.com/facturio/facturio/internal/logger"
	"github.com/facturio/facturio/internal/rest/middleware"
	"github.com/facturio/facturio/internal/types"
)

type Handlers struct {
	Health    *v1.HealthHandler
	Client    *v1.ClientHandler
	Invoice   *v1.InvoiceHandler
	Dashboard *v1.DashboardHandler
}

func NewRouter(handlers Handlers, cfg *config.Configuration, log *logger.Logger) *gin.Engine {
	if cfg.Deployment.Mode == types.ModeAPI {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware)
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.CORSMiddleware)
	router.Use(middleware.ErrorHandler())

	router.GET("/health", handlers.Health.Health)

	// all business routes live under the /api prefix
	apiGroup := router.Group("/api")
	registerAPIRoutes(apiGroup, handlers)

	return router
}

func registerAPIRoutes(router *gin.RouterGroup, handlers Handlers) {
	clients := router.Group("/clients")
	{
		clients.POST("", handlers.Client.CreateClient)
		clients.GET("", handlers.Client.GetClients)
		clients.GET("/:id", handlers.Client.GetClient)
		clients.PUT("/:id", handlers.Client.UpdateClient)
		clients.DELETE("/:id", handlers.Client.DeleteClient)
	}

	invoices := router.Group("/invoices")
	{
		invoices.POST("", handlers.Invoice.CreateInvoice)
		invoices.GET("", handlers.Invoice.GetInvoices)
		invoices.GET("/:id", handlers.Invoice.GetInvoice)
		invoices.PUT("/:id", handlers.Invoice.UpdateInvoice)
		invoices.DELETE("/:id", handlers.Invoice.DeleteInvoice)
	}

	dashboard := router.Group("/dashboard")
	{
		dashboard.GET("/stats", handlers.Dashboard.GetStats)
	}
}
