package controllers

import (
	"log"
	"net/http"

	"dev-eval-api/services"

	"github.com/gin-gonic/gin"
)

// NotificationController exposes the decision e-mail boundary.
type NotificationController struct {
	Sender services.DecisionSender
}

func NewNotificationController(sender services.DecisionSender) *NotificationController {
	return &NotificationController{Sender: sender}
}

type DecisionEmailRequest struct {
	Email  string `json:"email"`
	Name   string `json:"name"`
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

// SendDecisionEmail sends one templated decision notification. The
// template is keyed on status: "approved" selects the approved template,
// anything else the rejected one. Missing email or status is rejected
// before any send attempt.
func (nc *NotificationController) SendDecisionEmail(c *gin.Context) {
	var req DecisionEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	if req.Email == "" || req.Status == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing required fields"})
		return
	}

	err := nc.Sender.SendDecision(services.DecisionEmail{
		Email:  req.Email,
		Name:   req.Name,
		Status: req.Status,
		Notes:  req.Notes,
	})
	if err != nil {
		log.Printf("Error sending decision email to %s: %v", req.Email, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Failed to send email",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
