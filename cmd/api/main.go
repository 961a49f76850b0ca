package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"crime-analytics-api/analysis"
	"crime-analytics-api/config"
	"crime-analytics-api/handlers"
	"crime-analytics-api/middleware"
	"crime-analytics-api/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	store := services.NewDatasetStore()
	cache := services.NewCacheService(cfg.Redis)
	defer cache.Close()

	var assistant *services.AssistantService
	if cfg.Gemini.APIKey == "" {
		logrus.Warn("GEMINI_API_KEY not set, safety assistant disabled")
	} else {
		assistant, err = services.NewAssistantService(context.Background(), cfg.Gemini)
		if err != nil {
			logrus.WithError(err).Warn("safety assistant unavailable")
			assistant = nil
		} else {
			defer assistant.Close()
		}
	}

	uploadHandler := handlers.NewUploadHandler(store, analysis.DefaultSeverityClassifier())
	analysisHandler := handlers.NewAnalysisHandler(store, cache, cfg.Analysis)
	assistantHandler := handlers.NewAssistantHandler(assistant)

	router := gin.Default()
	router.Use(middleware.SetupCORS(cfg.CORS))

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "Crime Analytics API is running"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	api.POST("/upload", uploadHandler.Upload)
	api.POST("/filtered-data", analysisHandler.FilteredData)
	api.POST("/hotspots", analysisHandler.Hotspots)
	api.POST("/time-series", analysisHandler.TimeSeries)
	api.POST("/severity-breakdown", analysisHandler.SeverityBreakdown)
	api.POST("/train-model", analysisHandler.TrainModel)
	api.POST("/safety-assistant", assistantHandler.SafetyAssistant)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	logrus.Infof("Starting server on %s", addr)
	if err := router.Run(addr); err != nil {
		logrus.Fatalf("Failed to start server: %v", err)
	}
}
