package backendapi

import (
	"context"
	"net/http"
	"strings"

	"easi-website/internal/domain"
)

const defaultSubject = "Contact Form Submission"

// contactPayload is the wire shape the backend expects: snake_case, every
// key present, optional fields sent as "".
type contactPayload struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Subject      string `json:"subject"`
	Message      string `json:"message"`
	Organization string `json:"organization"`
	InquiryType  string `json:"inquiry_type"`
}

func newContactPayload(s *domain.ContactSubmission) contactPayload {
	p := contactPayload{
		Name:         strings.TrimSpace(s.Name),
		Email:        strings.TrimSpace(s.Email),
		Phone:        strings.TrimSpace(s.Phone),
		Subject:      strings.TrimSpace(s.Subject),
		Message:      strings.TrimSpace(s.Message),
		Organization: strings.TrimSpace(s.Organization),
		InquiryType:  string(s.InquiryType),
	}
	if p.Subject == "" {
		p.Subject = defaultSubject
	}
	if p.InquiryType == "" {
		p.InquiryType = string(domain.InquiryGeneral)
	}
	return p
}

// SubmitContact posts one contact message. No retries.
func (c *Client) SubmitContact(ctx context.Context, s *domain.ContactSubmission) (*domain.ServerResponse, error) {
	code, body, err := c.doJSON(ctx, http.MethodPost, contactPath, newContactPayload(s))
	if err != nil {
		return nil, err
	}
	return serverResponse(code, body), nil
}

// SubscribeNewsletter posts one newsletter sign-up. No retries.
func (c *Client) SubscribeNewsletter(ctx context.Context, s *domain.NewsletterSubmission) (*domain.ServerResponse, error) {
	payload := map[string]string{"email": strings.TrimSpace(s.Email)}
	code, body, err := c.doJSON(ctx, http.MethodPost, newsletterPath, payload)
	if err != nil {
		return nil, err
	}
	return serverResponse(code, body), nil
}
