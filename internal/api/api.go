// internal/api/api.go
package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/talvik-analytics/shipkpi/internal/api/handlers"
	"github.com/talvik-analytics/shipkpi/internal/api/middleware"
	"github.com/talvik-analytics/shipkpi/internal/service"
)

type Services struct {
	Datasets     *service.DatasetService
	Calculations *service.CalculationService
	Presets      *service.PresetService
	UploadDir    string
}

func NewRouter(services *Services, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Logger(),
		middleware.Recovery(),
	)

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
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api/v1")

	if services != nil {
		if services.Datasets != nil && services.Calculations != nil {
			datasetHandler := handlers.NewDatasetHandler(services.Datasets, services.Calculations, services.UploadDir)
			datasetGroup := apiGroup.Group("/datasets")
			{
				datasetGroup.POST("/upload", datasetHandler.Upload)
				datasetGroup.GET("", datasetHandler.List)
				datasetGroup.GET("/:id/sheets/:sheet/preview", datasetHandler.Preview)
				datasetGroup.POST("/:id/calculate", datasetHandler.Calculate)
			}
			apiGroup.GET("/runs", datasetHandler.Runs)
		}

		if services.Presets != nil {
			presetHandler := handlers.NewPresetHandler(services.Presets)
			presetGroup := apiGroup.Group("/presets")
			{
				presetGroup.GET("", presetHandler.List)
				presetGroup.POST("", presetHandler.Save)
				presetGroup.DELETE("/:id", presetHandler.Delete)
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
