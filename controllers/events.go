package controllers

import (
	"errors"
	"io"
	"net/http"

	"dev-eval-api/models"
	"dev-eval-api/notifications"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// EventsController streams submission update events over SSE so an open
// view tracks concurrent edits without polling.
type EventsController struct {
	DB  *gorm.DB
	Hub *notifications.Hub
}

func NewEventsController(db *gorm.DB, hub *notifications.Hub) *EventsController {
	return &EventsController{DB: db, Hub: hub}
}

// Subscribe opens an SSE stream of update events for one submission. Each
// event carries the full new record; the client replaces its copy
// wholesale. Developers may only subscribe to their own record. The hub
// subscription is released as soon as the request context ends, so a
// closed tab never leaks a subscription.
func (ev *EventsController) Subscribe(c *gin.Context) {
	id := c.Param("id")
	userID := c.GetString("userID")
	role := c.GetString("role")

	var submission models.DeveloperSubmission
	if err := ev.DB.Where("id = ?", id).First(&submission).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load submission"})
		return
	}

	if role != models.RoleEvaluator && submission.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
		return
	}

	events, release, err := ev.Hub.Subscribe(id)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Too many open subscriptions"})
		return
	}
	defer release()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	clientGone := c.Request.Context().Done()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-clientGone:
			return false
		case payload, ok := <-events:
			if !ok {
				return false
			}
			c.SSEvent("update", string(payload))
			return true
		}
	})
}
