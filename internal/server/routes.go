package server

import (
	"github.com/gin-contrib/cors"
	"go.uber.org/fx"

	"github.com/gavelhq/gavel/internal/server/api"
	"github.com/gavelhq/gavel/internal/server/middleware"
)

type Handlers struct {
	fx.In

	System   *api.SystemHandlers
	Clients  *api.ClientHandlers
	Cases    *api.CaseHandlers
	Invoices *api.InvoiceHandlers
	Leads    *api.LeadHandlers
}

func SetupRoutes(server *Server, handlers Handlers) {
	server.Use(middleware.AccessLog())
	server.Use(middleware.Trace(server.Config.Trace))

	if server.Config.CORS.Enabled {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowOrigins = server.Config.CORS.AllowedOrigins
		corsConfig.AllowMethods = server.Config.CORS.AllowedMethods
		corsConfig.AllowHeaders = server.Config.CORS.AllowedHeaders
		corsConfig.AllowCredentials = server.Config.CORS.AllowCredentials
		corsConfig.MaxAge = server.Config.CORS.MaxAge

		corsHandler := cors.New(corsConfig)
		server.Use(corsHandler)
		server.OPTIONS("*any", corsHandler)
	}

	publicGroup := server.Group("", middleware.WithTimeout(server.Config.RequestTimeout))
	{
		publicGroup.GET("/health", handlers.System.Health)
		publicGroup.GET("/build-info", handlers.System.BuildInfo)
	}

	// Every tenant route runs behind the resolver: no handler below executes
	// without a well-formed scope in the request context.
	apiGroup := server.Group("/v1",
		middleware.WithTimeout(server.Config.RequestTimeout),
		middleware.Tenant(middleware.TenantConfig{
			FirmHeader:   server.Config.FirmHeader,
			LawyerHeader: server.Config.LawyerHeader,
		}),
	)

	{
		clientGroup := apiGroup.Group("/clients")
		clientGroup.POST("", handlers.Clients.Create)
		clientGroup.GET("", handlers.Clients.List)
		clientGroup.GET("/:id", handlers.Clients.Get)
		clientGroup.PATCH("/:id/notes", handlers.Clients.UpdateNotes)
		clientGroup.DELETE("/:id", handlers.Clients.Delete)
	}

	{
		caseGroup := apiGroup.Group("/cases")
		caseGroup.POST("", handlers.Cases.Open)
		caseGroup.GET("", handlers.Cases.List)
		caseGroup.GET("/:id", handlers.Cases.Get)
		caseGroup.POST("/:id/close", handlers.Cases.Close)
	}

	{
		invoiceGroup := apiGroup.Group("/invoices")
		invoiceGroup.POST("", handlers.Invoices.Create)
		invoiceGroup.GET("", handlers.Invoices.List)
		invoiceGroup.GET("/totals", handlers.Invoices.StatusTotals)
		invoiceGroup.GET("/:id", handlers.Invoices.Get)
		invoiceGroup.POST("/:id/pay", handlers.Invoices.MarkPaid)
	}

	{
		leadGroup := apiGroup.Group("/leads")
		leadGroup.POST("", handlers.Leads.Create)
		leadGroup.GET("", handlers.Leads.List)
		leadGroup.POST("/:id/convert", handlers.Leads.Convert)
		leadGroup.DELETE("/lost", handlers.Leads.DiscardLost)
	}
}
