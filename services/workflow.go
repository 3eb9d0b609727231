package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"dev-eval-api/models"
	"dev-eval-api/notifications"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	// ErrSubmissionExists is returned when a developer who already has a
	// submission tries to create another one.
	ErrSubmissionExists = errors.New("a submission already exists for this user")

	// ErrInvalidStatus is returned for a decision status outside
	// approved/rejected.
	ErrInvalidStatus = errors.New("decision status must be approved or rejected")

	// ErrInvalidTransition is returned when the state machine refuses the
	// requested transition.
	ErrInvalidTransition = errors.New("status transition not allowed")
)

// Workflow implements the submission lifecycle: single creation per
// developer, evaluator feedback saves, and decisions with their
// notification and realtime side effects.
type Workflow struct {
	DB       *gorm.DB
	Hub      *notifications.Hub
	Notifier *notifications.Notifier
	Mailer   DecisionSender

	// AllowRedecide keeps terminality soft: an approved submission may be
	// re-decided to rejected and vice versa. Disabling it makes
	// approved/rejected terminal.
	AllowRedecide bool

	now func() time.Time
}

// NewWorkflow wires the workflow with its side-effect targets.
func NewWorkflow(db *gorm.DB, hub *notifications.Hub, notifier *notifications.Notifier, mailer DecisionSender, allowRedecide bool) *Workflow {
	return &Workflow{
		DB:            db,
		Hub:           hub,
		Notifier:      notifier,
		Mailer:        mailer,
		AllowRedecide: allowRedecide,
		now:           time.Now,
	}
}

func (w *Workflow) timeNow() time.Time {
	if w.now != nil {
		return w.now()
	}
	return time.Now()
}

// CanTransition reports whether a decision may move a submission from one
// status to another. Decisions only ever target approved or rejected;
// re-deciding out of a terminal status is governed by allowRedecide, and
// re-issuing the same decision is always refused.
func CanTransition(from, to string, allowRedecide bool) bool {
	if !models.DecisionStatus(to) {
		return false
	}
	if from == to {
		return false
	}

	switch from {
	case models.StatusPending, models.StatusReviewing:
		return true
	case models.StatusApproved, models.StatusRejected:
		return allowRedecide
	}
	return false
}

// HasSubmission reports whether the developer already has a submission.
// Creation callers must check this before doing any upload work.
func (w *Workflow) HasSubmission(userID string) (bool, error) {
	var count int64
	if err := w.DB.Model(&models.DeveloperSubmission{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// SubmissionInput carries the validated form fields for creation.
type SubmissionInput struct {
	FullName    string
	PhoneNumber string
	Location    string
	Email       string
	Hobbies     string
}

// Create inserts the one submission a developer may have. Both asset paths
// must already be uploaded; a failed insert leaves no row behind.
func (w *Workflow) Create(userID string, input SubmissionInput, profilePicturePath, sourceCodePath string) (*models.DeveloperSubmission, error) {
	exists, err := w.HasSubmission(userID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrSubmissionExists
	}

	now := w.timeNow()
	submission := models.DeveloperSubmission{
		ID:                uuid.NewString(),
		UserID:            userID,
		FullName:          input.FullName,
		PhoneNumber:       input.PhoneNumber,
		Location:          input.Location,
		Email:             input.Email,
		Hobbies:           input.Hobbies,
		ProfilePictureURL: profilePicturePath,
		SourceCodeURL:     sourceCodePath,
		SubmissionDate:    now,
		Status:            models.StatusPending,
		EvaluatorNotes:    "",
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := w.DB.Create(&submission).Error; err != nil {
		return nil, fmt.Errorf("failed to create submission: %w", err)
	}

	return &submission, nil
}

// List returns submissions for the evaluator table, optionally filtered
// by status ("" and "all" mean no filter) and by a case-insensitive
// search over full name, email and location, newest first.
func (w *Workflow) List(status, search string) ([]models.DeveloperSubmission, error) {
	query := w.DB.Model(&models.DeveloperSubmission{})

	if status != "" && status != "all" {
		query = query.Where("status = ?", status)
	}

	if search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"LOWER(full_name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(location) LIKE ?",
			like, like, like,
		)
	}

	var submissions []models.DeveloperSubmission
	if err := query.Order("submission_date DESC").Find(&submissions).Error; err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	return submissions, nil
}

// Get loads one submission by id.
func (w *Workflow) Get(id string) (*models.DeveloperSubmission, error) {
	var submission models.DeveloperSubmission
	if err := w.DB.Where("id = ?", id).First(&submission).Error; err != nil {
		return nil, err
	}
	return &submission, nil
}

// SaveFeedback updates evaluator notes without touching the status.
// Repeated identical calls settle on the same final state.
func (w *Workflow) SaveFeedback(id, notes string) (*models.DeveloperSubmission, error) {
	submission, err := w.Get(id)
	if err != nil {
		return nil, err
	}

	now := w.timeNow()
	if err := w.DB.Model(&models.DeveloperSubmission{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"evaluator_notes": notes,
			"updated_at":      now,
		}).Error; err != nil {
		return nil, fmt.Errorf("failed to save feedback: %w", err)
	}

	submission.EvaluatorNotes = notes
	submission.UpdatedAt = now
	w.publishUpdate(submission)

	return submission, nil
}

// Decide moves a submission to approved or rejected, persisting the notes
// alongside, and fires the decision notification. The notification is
// fire-and-forget: a failed send is logged and never reverts the already
// committed status change.
func (w *Workflow) Decide(id, newStatus, notes string) (*models.DeveloperSubmission, error) {
	if !models.DecisionStatus(newStatus) {
		return nil, ErrInvalidStatus
	}

	submission, err := w.Get(id)
	if err != nil {
		return nil, err
	}

	if !CanTransition(submission.Status, newStatus, w.AllowRedecide) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, submission.Status, newStatus)
	}

	now := w.timeNow()
	if err := w.DB.Model(&models.DeveloperSubmission{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":          newStatus,
			"evaluator_notes": notes,
			"updated_at":      now,
		}).Error; err != nil {
		return nil, fmt.Errorf("failed to update status: %w", err)
	}

	submission.Status = newStatus
	submission.EvaluatorNotes = notes
	submission.UpdatedAt = now
	w.publishUpdate(submission)

	if w.Mailer != nil {
		go w.sendDecisionEmail(*submission)
	}

	return submission, nil
}

func (w *Workflow) sendDecisionEmail(submission models.DeveloperSubmission) {
	err := w.Mailer.SendDecision(DecisionEmail{
		Email:  submission.Email,
		Name:   submission.FullName,
		Status: submission.Status,
		Notes:  submission.EvaluatorNotes,
	})
	if err != nil {
		log.Printf("failed to send decision email for submission %s: %v", submission.ID, err)
	}
}

// publishUpdate pushes the full updated record to subscribers. Subscribers
// replace their copy wholesale; there is no field-level merge.
func (w *Workflow) publishUpdate(submission *models.DeveloperSubmission) {
	payload, err := json.Marshal(submission)
	if err != nil {
		log.Printf("failed to marshal update event for submission %s: %v", submission.ID, err)
		return
	}

	if w.Notifier.Enabled() {
		// The Redis subscriber loops events back into the local hub, so
		// publishing to both would deliver duplicates.
		if err := w.Notifier.PublishUpdate(context.Background(), submission.ID, payload); err != nil {
			log.Printf("failed to publish update event for submission %s: %v", submission.ID, err)
		}
		return
	}
	if w.Hub != nil {
		w.Hub.Publish(submission.ID, payload)
	}
}
