package services

import (
	"fmt"
	"strings"
	"time"

	"dev-eval-api/config"
	"dev-eval-api/models"
)

// Decision e-mail template keys. The approved status selects the approved
// template; every other status value falls back to the rejected one.
const (
	TemplateApproved = "decision-approved"
	TemplateRejected = "decision-rejected"
)

const defaultEvaluatorNotes = "No additional notes provided."

// DecisionEmail is the payload of one decision notification.
type DecisionEmail struct {
	Email  string
	Name   string
	Status string
	Notes  string
}

// DecisionSender sends decision notifications. The workflow depends on
// this interface so tests can observe sends without an SMTP server.
type DecisionSender interface {
	SendDecision(req DecisionEmail) error
}

// DecisionMailer renders the decision templates and delivers them through
// the SMTP mailer.
type DecisionMailer struct {
	Mailer *config.Mailer
}

// NewDecisionMailer wraps an SMTP mailer for decision notifications.
func NewDecisionMailer(mailer *config.Mailer) *DecisionMailer {
	return &DecisionMailer{Mailer: mailer}
}

// DecisionTemplate selects the template for a decision status.
func DecisionTemplate(status string) string {
	if status == models.StatusApproved {
		return TemplateApproved
	}
	return TemplateRejected
}

// CapitalizeStatus renders a status value for display ("approved" ->
// "Approved").
func CapitalizeStatus(status string) string {
	if status == "" {
		return ""
	}
	return strings.ToUpper(status[:1]) + status[1:]
}

// SendDecision builds the template for the decision status and sends it to
// the developer.
func (m *DecisionMailer) SendDecision(req DecisionEmail) error {
	subject, html := RenderDecisionEmail(req, time.Now())
	return m.Mailer.Send([]string{req.Email}, subject, html)
}

// RenderDecisionEmail produces the subject and HTML body for a decision
// notification. The substituted variables are the developer name, the
// evaluator notes (with a default when empty), the send date, and the
// capitalized status.
func RenderDecisionEmail(req DecisionEmail, sentAt time.Time) (subject, html string) {
	notes := strings.TrimSpace(req.Notes)
	if notes == "" {
		notes = defaultEvaluatorNotes
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = "Developer"
	}

	var paragraphs []string
	if DecisionTemplate(req.Status) == TemplateApproved {
		subject = "Welcome to the Team"
		paragraphs = []string{
			fmt.Sprintf("Hi %s,", name),
			"Congratulations! Your developer submission has been approved. We were impressed with your application and are excited to move forward with you.",
			"Our team will reach out shortly with the next steps.",
		}
	} else {
		subject = "Your Developer Submission"
		paragraphs = []string{
			fmt.Sprintf("Hi %s,", name),
			"Thank you for taking the time to apply. After careful review, we are unable to move forward with your submission at this time.",
			"You are welcome to apply again in the future.",
		}
	}

	meta := []emailMetaItem{
		{Label: "Status", Value: CapitalizeStatus(req.Status)},
		{Label: "Evaluator Notes", Value: notes},
		{Label: "Date", Value: sentAt.Format("1/2/2006")},
	}

	html = buildEmailTemplate(subject, paragraphs, meta, "Developer Evaluation Team")
	return subject, html
}
