package models

import (
	"time"
)

// Submission status values. Reviewing is declared in the schema but no flow
// currently transitions into it; only the decision action mutates status.
const (
	StatusPending   = "pending"
	StatusReviewing = "reviewing"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
)

// DeveloperSubmission is one developer's application record: profile fields,
// the two uploaded asset paths, and the evaluation state. Profile fields and
// asset paths are immutable after creation; only evaluator actions touch
// status and evaluator_notes.
type DeveloperSubmission struct {
	ID                string    `gorm:"primaryKey;column:id;type:char(36)" json:"id"`
	UserID            string    `gorm:"column:user_id;type:char(36);uniqueIndex" json:"user_id"`
	FullName          string    `gorm:"column:full_name" json:"full_name"`
	PhoneNumber       string    `gorm:"column:phone_number" json:"phone_number"`
	Location          string    `gorm:"column:location" json:"location"`
	Email             string    `gorm:"column:email" json:"email"`
	Hobbies           string    `gorm:"column:hobbies" json:"hobbies"`
	ProfilePictureURL string    `gorm:"column:profile_picture_url" json:"profile_picture_url"`
	SourceCodeURL     string    `gorm:"column:source_code_url" json:"source_code_url"`
	SubmissionDate    time.Time `gorm:"column:submission_date" json:"submission_date"`
	Status            string    `gorm:"column:status" json:"status"`
	EvaluatorNotes    string    `gorm:"column:evaluator_notes" json:"evaluator_notes"`
	CreatedAt         time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt         time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName overrides
func (DeveloperSubmission) TableName() string {
	return "developer_submissions"
}

// ValidStatus reports whether s is one of the four submission statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusReviewing, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// DecisionStatus reports whether s is a status an evaluator decision may
// set. Decisions only ever move a submission to approved or rejected.
func DecisionStatus(s string) bool {
	return s == StatusApproved || s == StatusRejected
}
