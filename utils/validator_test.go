package utils

import (
	"strings"
	"testing"
)

func TestValidatePhoneNumber(t *testing.T) {
	valid := []string{
		"+1 (123) 456-7890",
		"12345678",
		"+442071234567",
		"020 7123 4567",
		"(555) 123-4567",
	}
	for _, phone := range valid {
		if !ValidatePhoneNumber(phone) {
			t.Errorf("ValidatePhoneNumber(%q) = false, want true", phone)
		}
	}

	invalid := []string{
		"",
		"1234567",                // too short
		strings.Repeat("1", 21),  // too long
		"123-456x7890",           // letter
		"++12345678",             // plus only allowed once, leading
		"1234+5678",              // plus not leading
		"phone number",
	}
	for _, phone := range invalid {
		if ValidatePhoneNumber(phone) {
			t.Errorf("ValidatePhoneNumber(%q) = true, want false", phone)
		}
	}
}

func TestValidateEmail(t *testing.T) {
	if !ValidateEmail("dev@example.com") {
		t.Error("expected dev@example.com to be valid")
	}
	for _, email := range []string{"", "dev", "dev@", "@example.com", "dev@example"} {
		if ValidateEmail(email) {
			t.Errorf("ValidateEmail(%q) = true, want false", email)
		}
	}
}

func TestValidateSubmissionFormHobbiesLength(t *testing.T) {
	form := SubmissionForm{
		FullName:    "Ada Lovelace",
		PhoneNumber: "+1 555 123 4567",
		Location:    "London, UK",
		Email:       "ada@example.com",
	}

	// 19 characters after trimming fails
	form.Hobbies = "  " + strings.Repeat("a", 19) + "  "
	if errs := ValidateSubmissionForm(form); errs["hobbies"] == "" {
		t.Error("expected hobbies error for 19 trimmed characters")
	}

	// Exactly 20 passes
	form.Hobbies = strings.Repeat("a", 20)
	if errs := ValidateSubmissionForm(form); errs["hobbies"] != "" {
		t.Errorf("unexpected hobbies error for 20 characters: %q", errs["hobbies"])
	}

	// The minimum counts characters, not bytes: 20 CJK characters pass
	// even though they are 60 bytes, 19 fail
	form.Hobbies = strings.Repeat("棋", 20)
	if errs := ValidateSubmissionForm(form); errs["hobbies"] != "" {
		t.Errorf("unexpected hobbies error for 20 multibyte characters: %q", errs["hobbies"])
	}
	form.Hobbies = strings.Repeat("棋", 19)
	if errs := ValidateSubmissionForm(form); errs["hobbies"] == "" {
		t.Error("expected hobbies error for 19 multibyte characters")
	}

	// Empty is a different message than too short
	form.Hobbies = "   "
	errs := ValidateSubmissionForm(form)
	if errs["hobbies"] != "Please tell us about your hobbies" {
		t.Errorf("hobbies error = %q", errs["hobbies"])
	}
}

func TestValidateSubmissionFormAllFields(t *testing.T) {
	errs := ValidateSubmissionForm(SubmissionForm{})
	for _, field := range []string{"full_name", "phone_number", "location", "email", "hobbies"} {
		if errs[field] == "" {
			t.Errorf("expected error for empty %s", field)
		}
	}

	errs = ValidateSubmissionForm(SubmissionForm{
		FullName:    "Ada Lovelace",
		PhoneNumber: "+1 555 123 4567",
		Location:    "London, UK",
		Email:       "ada@example.com",
		Hobbies:     "Long walks, mechanical looms and mathematics",
	})
	if len(errs) != 0 {
		t.Errorf("expected no errors, got %v", errs)
	}
}
