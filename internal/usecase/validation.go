package usecase

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateSubmitLeadInput collects every violation instead of stopping at the
// first, so the form can render all of them at once.
func ValidateSubmitLeadInput(input SubmitLeadInput) []ValidationError {
	var errors []ValidationError

	if input.Kind != "join" && input.Kind != "contact" {
		errors = append(errors, ValidationError{"kind", "must be join or contact"})
		return errors
	}

	if strings.TrimSpace(input.Name) == "" {
		errors = append(errors, ValidationError{"name", "is required"})
	}

	if strings.TrimSpace(input.Email) == "" {
		errors = append(errors, ValidationError{"email", "is required"})
	} else if _, err := mail.ParseAddress(input.Email); err != nil {
		errors = append(errors, ValidationError{"email", "is invalid"})
	}

	if input.Kind == "join" {
		errors = append(errors, validateJoin(input)...)
	} else {
		errors = append(errors, validateContact(input)...)
	}

	return errors
}

func validateJoin(input SubmitLeadInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.Phone) == "" {
		errors = append(errors, ValidationError{"phone", "is required"})
	} else if !isValidPhoneNumber(input.Phone) {
		errors = append(errors, ValidationError{"phone", "must be a valid phone number"})
	}

	switch input.Role {
	case "student":
		if strings.TrimSpace(input.Grade) == "" {
			errors = append(errors, ValidationError{"grade", "is required"})
		}
		if len(input.Subjects) == 0 {
			errors = append(errors, ValidationError{"subjects", "at least one subject is required"})
		}
	case "teacher":
		if strings.TrimSpace(input.Qualification) == "" {
			errors = append(errors, ValidationError{"qualification", "is required"})
		}
		if strings.TrimSpace(input.Experience) == "" {
			errors = append(errors, ValidationError{"experience", "is required"})
		}
		if len(input.Subjects) == 0 {
			errors = append(errors, ValidationError{"subjects", "at least one subject is required"})
		}
	default:
		errors = append(errors, ValidationError{"role", "must be student or teacher"})
	}

	return errors
}

func validateContact(input SubmitLeadInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.Message) == "" {
		errors = append(errors, ValidationError{"message", "is required"})
	}

	return errors
}

// Loose shape check only: 10 to 15 digits after stripping separators.
func isValidPhoneNumber(phone string) bool {
	cleaned := regexp.MustCompile(`\D`).ReplaceAllString(phone, "")
	return len(cleaned) >= 10 && len(cleaned) <= 15
}

func isValidEmail(email string) bool {
	_, err := mail.ParseAddress(email)
	return err == nil
}

func joinValidationErrors(errors []ValidationError) string {
	msg := "validation failed: "
	for _, e := range errors {
		msg += e.Field + " (" + e.Message + "), "
	}
	return strings.TrimSuffix(msg, ", ")
}
