package api

import (
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/Domenick1991/flightsearch/internal/service/saved"
	"github.com/Domenick1991/flightsearch/internal/service/search"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

type RouterConfig struct {
	Search         search.SearchUseCase
	Saved          saved.SavedFlightUseCase
	Logger         *slog.Logger
	AllowedOrigins []string
	SwaggerDir     string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(
		RequestID(),
		RequestLogger(cfg.Logger),
		Recovery(cfg.Logger),
		cors.New(corsConfig(cfg.AllowedOrigins)),
		ErrorHandler(cfg.Logger),
	)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if cfg.SwaggerDir != "" {
		router.StaticFile("/docs/swagger.json", filepath.Join(cfg.SwaggerDir, "swagger.json"))
		router.GET("/swagger/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL("/docs/swagger.json"))))
	}

	api := router.Group("/api")
	NewFlightHandler(cfg.Search, cfg.Logger).Register(api)
	NewSavedFlightHandler(cfg.Saved, cfg.Logger).Register(api)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not Found"})
	})

	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions}
	cfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept", requestIDHeader}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
