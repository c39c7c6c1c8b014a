package form

import (
	"easi-website/internal/domain"
	"easi-website/pkg/validation"
)

var validate = validation.New()

// Validate flags name, email and message of a contact submission. The result
// always carries all three keys so callers can tell "checked and fine" from
// "not checked".
func Validate(s domain.ContactSubmission) domain.ValidationErrorSet {
	set := domain.ValidationErrorSet{
		domain.FieldName:    false,
		domain.FieldEmail:   false,
		domain.FieldMessage: false,
	}
	mergeFieldErrors(set, validate.Struct(s))
	return set
}

// ValidateNewsletter flags the email of a newsletter sign-up.
func ValidateNewsletter(s domain.NewsletterSubmission) domain.ValidationErrorSet {
	set := domain.ValidationErrorSet{domain.FieldEmail: false}
	mergeFieldErrors(set, validate.Struct(s))
	return set
}

func mergeFieldErrors(set domain.ValidationErrorSet, err error) {
	for field, invalid := range validation.FieldErrors(err) {
		set[domain.Field(field)] = invalid
	}
}
