package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"survey-response-service/internal/config"
	"survey-response-service/internal/service"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	service *service.ResponseService
	smtp    *config.SMTPConfig
}

// NewHandlers creates new HTTP handlers
func NewHandlers(svc *service.ResponseService, smtp *config.SMTPConfig) *Handlers {
	return &Handlers{service: svc, smtp: smtp}
}

// SetupRoutes sets up all HTTP routes
func (h *Handlers) SetupRoutes(router *gin.Engine) {
	// Health check
	router.GET("/healthz", h.HealthCheck)

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API routes
	api := router.Group("/api")
	{
		api.POST("/respond", h.Respond)
		api.GET("/responses", h.GetResponses)
	}
}
