package form

import (
	"context"

	"easi-website/internal/domain"
)

// ContactFields are the inputs of the contact form, in display order.
var ContactFields = []domain.Field{
	domain.FieldName,
	domain.FieldEmail,
	domain.FieldPhone,
	domain.FieldOrganization,
	domain.FieldInquiryType,
	domain.FieldSubject,
	domain.FieldMessage,
}

// Contact is the state of one contact form instance.
type Contact struct {
	*holder
}

func NewContact() *Contact {
	return &Contact{holder: newHolder(
		messages{invalid: MsgInvalid, sent: MsgContactSent, failed: MsgContactFailed},
		ContactFields...,
	)}
}

// Submission bundles the current field values.
func (c *Contact) Submission() domain.ContactSubmission {
	c.mu.Lock()
	defer c.mu.Unlock()
	return contactSubmission(c.fields)
}

// Fill sets every field from s, as if each value had been typed in.
func (c *Contact) Fill(s domain.ContactSubmission) {
	values := map[domain.Field]string{
		domain.FieldName:         s.Name,
		domain.FieldEmail:        s.Email,
		domain.FieldPhone:        s.Phone,
		domain.FieldOrganization: s.Organization,
		domain.FieldInquiryType:  string(s.InquiryType),
		domain.FieldSubject:      s.Subject,
		domain.FieldMessage:      s.Message,
	}
	for f, v := range values {
		_ = c.SetField(f, v)
	}
}

// Submit validates and, when valid, sends the form through gw exactly once.
// On success the fields are reset; on failure they are kept for a manual retry.
func (c *Contact) Submit(ctx context.Context, gw domain.ContactGateway) (*domain.ServerResponse, error) {
	return c.submit(ctx,
		func(fields map[domain.Field]string) domain.ValidationErrorSet {
			return Validate(contactSubmission(fields))
		},
		func(ctx context.Context, fields map[domain.Field]string) (*domain.ServerResponse, error) {
			s := contactSubmission(fields)
			return gw.SubmitContact(ctx, &s)
		},
	)
}

func contactSubmission(fields map[domain.Field]string) domain.ContactSubmission {
	return domain.ContactSubmission{
		Name:         fields[domain.FieldName],
		Email:        fields[domain.FieldEmail],
		Phone:        fields[domain.FieldPhone],
		Organization: fields[domain.FieldOrganization],
		InquiryType:  domain.ParseInquiryType(fields[domain.FieldInquiryType]),
		Subject:      fields[domain.FieldSubject],
		Message:      fields[domain.FieldMessage],
	}
}
