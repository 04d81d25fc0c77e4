package routes

import (
	"github.com/gin-gonic/gin"

	"cadastro/internal/handlers"
	"cadastro/internal/middleware"
)

// Handlers bundles everything mounted under /api. Ready may be nil.
type Handlers struct {
	Auth    *handlers.AuthHandler
	Health  *handlers.HealthHandler
	Ready   *handlers.ReadyHandler
	Client  *handlers.ClientHandler
	Address *handlers.AddressHandler
}

func SetupRoutes(r *gin.Engine, h Handlers, auth middleware.TokenAuthenticator) *gin.Engine {
	api := r.Group("/api")

	// ---- public
	api.GET("/health", h.Health.Health)
	if h.Ready != nil {
		api.GET("/ready", h.Ready.Ready)
	}
	api.POST("/auth/login", h.Auth.Login)

	// ---- protected
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(auth))

	clients := protected.Group("/clients")
	{
		clients.GET("", h.Client.List)
		clients.POST("", h.Client.Create)
		clients.GET("/export/pdf", h.Client.ExportPDF)
		clients.GET("/:id", h.Client.GetByID)
		clients.PUT("/:id", h.Client.Update)
		clients.DELETE("/:id", h.Client.Delete)
	}

	addr := protected.Group("/address")
	{
		addr.POST("/format", h.Address.Format)
		addr.POST("/parse", h.Address.Parse)
	}
	protected.GET("/cep/:cep", h.Address.LookupCEP)

	return r
}
