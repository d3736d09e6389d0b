package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"survey-response-service/internal/model"
)

// HealthCheck handles health check requests
func (h *Handlers) HealthCheck(c *gin.Context) {
	archive := h.service.List()

	smtp := "not_configured"
	if h.smtp.Configured() {
		smtp = "configured"
	}

	c.JSON(http.StatusOK, model.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		SMTP:      smtp,
		Responses: len(archive.Responses),
		Emails:    len(archive.EmailArchive),
	})
}
