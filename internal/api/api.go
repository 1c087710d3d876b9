// internal/api/api.go
package api

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/stockwise/backend/internal/api/handlers"
	"github.com/stockwise/backend/internal/api/middleware"
	"github.com/stockwise/backend/internal/service"
)

type Services struct {
	ForecastService *service.ForecastService
	PricingService  *service.PricingService
	ExportService   *service.ExportService
}

func NewRouter(services *Services, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())

	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
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
		c.JSON(200, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api/v1")

	if services != nil {
		if services.ForecastService != nil {
			inventoryHandler := handlers.NewInventoryHandler(services.ForecastService, services.ExportService)
			inventoryGroup := apiGroup.Group("/inventory")
			{
				inventoryGroup.GET("/forecast", inventoryHandler.GetForecast)
				inventoryGroup.GET("/reorders", inventoryHandler.GetReorders)
				inventoryGroup.GET("/planning", inventoryHandler.GetPlanning)
				inventoryGroup.POST("/forecast/export", inventoryHandler.ExportForecast)
			}
		}

		if services.PricingService != nil {
			pricingHandler := handlers.NewPricingHandler(services.PricingService)
			pricingGroup := apiGroup.Group("/pricing")
			{
				pricingGroup.GET("/analysis", pricingHandler.GetAnalysis)
				pricingGroup.GET("/margins", pricingHandler.GetMargins)
				pricingGroup.GET("/margins/summary", pricingHandler.GetMarginSummary)
				pricingGroup.GET("/suggestions", pricingHandler.GetSuggestions)
				pricingGroup.POST("/price-change", pricingHandler.RecordPriceChange)
			}
		}
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
