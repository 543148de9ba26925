package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aziwar/dr-islam-website/backend/internal/metrics"
	"github.com/aziwar/dr-islam-website/backend/internal/models"
	"github.com/aziwar/dr-islam-website/backend/internal/services"
)

// ContactHandler accepts public contact-form submissions.
type ContactHandler struct {
	service *services.ContactService
}

// NewContactHandler creates a contact handler.
func NewContactHandler(service *services.ContactService) *ContactHandler {
	return &ContactHandler{service: service}
}

type contactRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Phone    string `json:"phone"`
	Message  string `json:"message" binding:"required"`
	Language string `json:"language"`
}

// Submit handles POST /api/contact.
func (h *ContactHandler) Submit(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid submission"})
		return
	}

	msg := &models.ContactMessage{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Message:  req.Message,
		Language: req.Language,
		ClientIP: c.ClientIP(),
	}

	if err := h.service.Submit(msg); err != nil {
		if errors.Is(err, services.ErrInvalidContact) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid submission"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store message"})
		return
	}

	metrics.IncContactMessage()
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Thank you, we will get back to you soon"})
}
