package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps json field names to user-friendly labels
var FieldLabels = map[string]string{
	"name":         "Name",
	"email":        "Email",
	"phone":        "Phone",
	"organization": "Organization",
	"inquiry_type": "Inquiry Type",
	"subject":      "Subject",
	"message":      "Message",
}

// FieldErrors flattens validator errors into field -> invalid flags.
// Non-validation errors yield nil.
func FieldErrors(err error) map[string]bool {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}
	out := make(map[string]bool, len(validationErrors))
	for _, e := range validationErrors {
		out[e.Field()] = true
	}
	return out
}

// FormatValidationErrors converts validator.ValidationErrors to user-friendly messages
func FormatValidationErrors(err error) []string {
	var messages []string

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		// Not a validation error, return generic message
		return []string{err.Error()}
	}

	for _, e := range validationErrors {
		messages = append(messages, formatSingleError(e))
	}

	return messages
}

// Message returns the inline help text shown under an invalid field
func Message(field string) string {
	switch field {
	case "email":
		return "Valid email is required"
	default:
		return fmt.Sprintf("%s is required", getFieldLabel(field))
	}
}

// formatSingleError formats a single validation error to a user-friendly message
func formatSingleError(e validator.FieldError) string {
	field := e.Field()

	switch e.Tag() {
	case "required", "not_blank", "loose_email":
		return Message(field)
	case "max":
		return fmt.Sprintf("%s: at most %s characters", getFieldLabel(field), e.Param())
	case "oneof":
		return fmt.Sprintf("%s: must be one of %s", getFieldLabel(field), strings.ReplaceAll(e.Param(), " ", ", "))
	default:
		return fmt.Sprintf("%s: invalid value (%s)", getFieldLabel(field), e.Tag())
	}
}

// getFieldLabel returns the user-friendly label for a field
func getFieldLabel(field string) string {
	if label, ok := FieldLabels[field]; ok {
		return label
	}
	return strings.ReplaceAll(field, "_", " ")
}
