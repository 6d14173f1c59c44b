// Package v1 provides HTTP API version 1.
package v1

import (
	"context"

	"github.com/gin-gonic/gin"

	"cotizador/internal/domain/clients"
	"cotizador/internal/domain/quotations"
	"cotizador/internal/domain/reports"
	"cotizador/internal/domain/supplies"
	"cotizador/internal/http/v1/handlers"
	"cotizador/internal/http/v1/middleware"
	"cotizador/pkg/logger"
)

// RouterConfig holds router dependencies.
type RouterConfig struct {
	Logger *logger.Logger

	Clientes     *clients.Service
	Insumos      *supplies.Service
	Cotizaciones *quotations.Service
	Reportes     *reports.Service

	// ReadyCheck verifies the storage backend on readiness probes.
	ReadyCheck func(ctx context.Context) error
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	healthHandler := handlers.NewHealthHandler(cfg.ReadyCheck)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
	}

	api := router.Group("/api/v1")
	{
		clientesHandler := handlers.NewClientesHandler(cfg.Clientes)
		clientes := api.Group("/clientes")
		{
			clientes.GET("", clientesHandler.List)
			clientes.POST("", clientesHandler.Create)
			clientes.GET("/stats", clientesHandler.Stats)
			clientes.GET("/export", clientesHandler.Export)
			clientes.POST("/import", clientesHandler.Import)
			clientes.GET("/:id", clientesHandler.Get)
			clientes.PUT("/:id", clientesHandler.Update)
			clientes.DELETE("/:id", clientesHandler.Delete)
		}

		insumosHandler := handlers.NewInsumosHandler(cfg.Insumos)
		insumos := api.Group("/insumos")
		{
			insumos.GET("", insumosHandler.List)
			insumos.POST("", insumosHandler.Create)
			insumos.GET("/:id", insumosHandler.Get)
			insumos.PUT("/:id", insumosHandler.Update)
			insumos.DELETE("/:id", insumosHandler.Delete)
		}

		cotizacionesHandler := handlers.NewCotizacionesHandler(cfg.Cotizaciones)
		reportesHandler := handlers.NewReportesHandler(cfg.Reportes)
		cotizaciones := api.Group("/cotizaciones")
		{
			cotizaciones.GET("", cotizacionesHandler.List)
			cotizaciones.POST("", cotizacionesHandler.Create)
			cotizaciones.POST("/calcular", cotizacionesHandler.Calcular)
			cotizaciones.GET("/stats", reportesHandler.Stats)
			cotizaciones.GET("/reportes", reportesHandler.Reporte)
			cotizaciones.GET("/vencimiento", reportesHandler.Vencimiento)
			cotizaciones.GET("/export", cotizacionesHandler.Export)
			cotizaciones.GET("/:id", cotizacionesHandler.Get)
			cotizaciones.PUT("/:id", cotizacionesHandler.Update)
			cotizaciones.DELETE("/:id", cotizacionesHandler.Delete)
		}
	}

	return router
}
