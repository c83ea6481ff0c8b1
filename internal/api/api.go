// internal/api/api.go
package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/andresuchdata/inventory-flow/backend-go/internal/api/handlers"
	"github.com/andresuchdata/inventory-flow/backend-go/internal/api/middleware"
	"github.com/andresuchdata/inventory-flow/backend-go/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Services struct {
	SimulationService *service.SimulationService
	// Gatherer serves /metrics; nil uses the default registry
	Gatherer prometheus.Gatherer
}

func NewRouter(services *Services, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	gatherer := prometheus.DefaultGatherer
	if services != nil && services.Gatherer != nil {
		gatherer = services.Gatherer
	}
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	apiGroup := router.Group("/api/v1")

	if services != nil && services.SimulationService != nil {
		h := handlers.NewSimulationHandler(services.SimulationService)

		skuGroup := apiGroup.Group("/skus")
		{
			skuGroup.GET("", h.ListSKUs)
			skuGroup.GET("/:sku/demand", h.GetDemand)
		}

		simGroup := apiGroup.Group("/simulations")
		{
			simGroup.GET("", h.ListRuns)
			simGroup.POST("", h.RunSimulation)
			simGroup.POST("/export", h.ExportSimulation)
			simGroup.POST("/compare", h.CompareScenarios)
			simGroup.POST("/compare/export", h.ExportComparison)
			simGroup.GET("/:id", h.GetRun)
		}

		apiGroup.POST("/dataset/reload", h.ReloadDataset)
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
