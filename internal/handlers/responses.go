package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"survey-response-service/internal/model"
	"survey-response-service/internal/service"
)

// Respond handles POST /api/respond
func (h *Handlers) Respond(c *gin.Context) {
	var req model.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "Invalid payload"})
		return
	}

	status, err := h.service.Submit(req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidData) {
			c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "Invalid data"})
			return
		}
		logrus.Errorf("Failed to persist submission: %v", err)
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{Error: "Storage failure"})
		return
	}

	c.JSON(http.StatusOK, model.SubmitResponse{Success: true, Email: status})
}

// GetResponses handles GET /api/responses
func (h *Handlers) GetResponses(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.List())
}
