package domain

import "context"

// NewsletterSubmission is a newsletter sign-up
type NewsletterSubmission struct {
	Email string `json:"email" form:"email" validate:"loose_email"`
}

type NewsletterGateway interface {
	SubscribeNewsletter(ctx context.Context, s *NewsletterSubmission) (*ServerResponse, error)
}
