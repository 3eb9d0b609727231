package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"dev-eval-api/models"
	"dev-eval-api/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// EvaluationController handles evaluator feedback and decisions.
type EvaluationController struct {
	Workflow *services.Workflow
}

func NewEvaluationController(workflow *services.Workflow) *EvaluationController {
	return &EvaluationController{Workflow: workflow}
}

type FeedbackRequest struct {
	EvaluatorNotes string `json:"evaluator_notes"`
}

// SaveFeedback updates the evaluator notes on a submission without
// changing its status.
func (ec *EvaluationController) SaveFeedback(c *gin.Context) {
	id := c.Param("id")

	var req FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	submission, err := ec.Workflow.SaveFeedback(id, req.EvaluatorNotes)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save feedback. Please try again."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Feedback saved successfully",
		"submission": submission,
	})
}

type DecisionRequest struct {
	Status         string `json:"status" binding:"required"`
	EvaluatorNotes string `json:"evaluator_notes"`
	Confirm        bool   `json:"confirm"`
}

// Decide commits an evaluator decision. The two-step commit carries over
// from the confirmation dialog: a request without confirm=true mutates
// nothing. The decision e-mail is handled by the workflow and never blocks
// the response.
func (ec *EvaluationController) Decide(c *gin.Context) {
	id := c.Param("id")

	var req DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !models.DecisionStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status must be approved or rejected"})
		return
	}

	if !req.Confirm {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Confirmation is required"})
		return
	}

	submission, err := ec.Workflow.Decide(id, req.Status, req.EvaluatorNotes)
	if err != nil {
		action := "approve"
		if req.Status == models.StatusRejected {
			action = "reject"
		}
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
		case errors.Is(err, services.ErrInvalidTransition):
			c.JSON(http.StatusConflict, gin.H{"error": fmt.Sprintf("Cannot %s this submission in its current status", action)})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Failed to %s the submission. Please try again.", action)})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    fmt.Sprintf("Submission %s successfully", submission.Status),
		"submission": submission,
	})
}
