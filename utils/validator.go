// utils/validator.go - Input validation
package utils

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const minHobbiesLength = 20

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneRegex = regexp.MustCompile(`^\+?[0-9\s\-()]{8,20}$`)
)

// ValidateEmail checks if email is valid
func ValidateEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// ValidatePhoneNumber checks the submission phone format: optional leading
// +, then 8-20 characters of digits, spaces, hyphens and parentheses.
func ValidatePhoneNumber(phone string) bool {
	return phoneRegex.MatchString(phone)
}

// ValidatePassword checks password strength
func ValidatePassword(password string) (bool, string) {
	if len(password) < 8 {
		return false, "Password must be at least 8 characters"
	}

	return true, ""
}

// SanitizeInput removes potentially harmful characters
func SanitizeInput(input string) string {
	// Remove leading/trailing spaces
	input = strings.TrimSpace(input)

	// Remove null bytes
	input = strings.ReplaceAll(input, "\x00", "")

	return input
}

// SubmissionForm carries the free-text submission fields for validation.
type SubmissionForm struct {
	FullName    string
	PhoneNumber string
	Location    string
	Email       string
	Hobbies     string
}

// ValidateSubmissionForm checks every field and returns a field-keyed error
// map. An empty map means the form passed. Validation runs before any
// upload or database work so a failed form never causes network activity.
func ValidateSubmissionForm(form SubmissionForm) map[string]string {
	errs := make(map[string]string)

	if strings.TrimSpace(form.FullName) == "" {
		errs["full_name"] = "Full name is required"
	}

	if strings.TrimSpace(form.PhoneNumber) == "" {
		errs["phone_number"] = "Phone number is required"
	} else if !ValidatePhoneNumber(form.PhoneNumber) {
		errs["phone_number"] = "Please enter a valid phone number"
	}

	if strings.TrimSpace(form.Location) == "" {
		errs["location"] = "Location is required"
	}

	if strings.TrimSpace(form.Email) == "" {
		errs["email"] = "Email address is required"
	} else if !ValidateEmail(form.Email) {
		errs["email"] = "Please enter a valid email address"
	}

	// The hobbies minimum counts characters, not bytes
	hobbies := strings.TrimSpace(form.Hobbies)
	if hobbies == "" {
		errs["hobbies"] = "Please tell us about your hobbies"
	} else if utf8.RuneCountInString(hobbies) < minHobbiesLength {
		errs["hobbies"] = "Please provide more details about your hobbies (min 20 characters)"
	}

	return errs
}
