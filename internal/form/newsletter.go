package form

import (
	"context"

	"easi-website/internal/domain"
)

// Newsletter is the state of one newsletter sign-up form.
type Newsletter struct {
	*holder
}

func NewNewsletter() *Newsletter {
	return &Newsletter{holder: newHolder(
		messages{invalid: MsgNewsletterInvalid, sent: MsgNewsletterSent, failed: MsgNewsletterFailed},
		domain.FieldEmail,
	)}
}

func (n *Newsletter) Submission() domain.NewsletterSubmission {
	return domain.NewsletterSubmission{Email: n.Value(domain.FieldEmail)}
}

func (n *Newsletter) Submit(ctx context.Context, gw domain.NewsletterGateway) (*domain.ServerResponse, error) {
	return n.submit(ctx,
		func(fields map[domain.Field]string) domain.ValidationErrorSet {
			return ValidateNewsletter(domain.NewsletterSubmission{Email: fields[domain.FieldEmail]})
		},
		func(ctx context.Context, fields map[domain.Field]string) (*domain.ServerResponse, error) {
			return gw.SubscribeNewsletter(ctx, &domain.NewsletterSubmission{Email: fields[domain.FieldEmail]})
		},
	)
}
