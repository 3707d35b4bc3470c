package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/kyle-1207/components-plat-sub002/internal/handlers"
	"github.com/kyle-1207/components-plat-sub002/internal/middleware"
)

type RouterConfig struct {
	AllowOrigins        []string
	RequestLog          *middleware.RequestLogMiddleware
	ComponentHandler    *handlers.ComponentHandler
	SearchHandler       *handlers.SearchHandler
	TraceabilityHandler *handlers.TraceabilityHandler
	AdminHandler        *handlers.AdminHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware("components-platform"))
	if cfg.RequestLog != nil {
		router.Use(cfg.RequestLog.Handler())
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")
	{
		// Catalog
		api.GET("/components", cfg.ComponentHandler.List)
		api.GET("/components/meta", cfg.ComponentHandler.Meta)
		api.GET("/components/export", cfg.ComponentHandler.ExportCSV)
		api.GET("/components/:id", cfg.ComponentHandler.GetByID)

		// Global search
		api.GET("/search", cfg.SearchHandler.Search)
		api.GET("/search/suggestions", cfg.SearchHandler.Suggestions)

		// Traceability
		api.POST("/traceability", cfg.TraceabilityHandler.Create)
		api.GET("/traceability", cfg.TraceabilityHandler.ListByTarget)
		api.GET("/traceability/:traceabilityId", cfg.TraceabilityHandler.Get)
		api.GET("/traceability/:traceabilityId/chain", cfg.TraceabilityHandler.Chain)
		api.GET("/traceability/:traceabilityId/export", cfg.TraceabilityHandler.ExportChainCSV)

		// Operator surface
		api.POST("/admin/cache/invalidate", cfg.AdminHandler.InvalidateCache)
	}

	return router
}
