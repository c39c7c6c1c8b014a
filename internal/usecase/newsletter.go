package usecase

import (
	"context"
	"errors"

	"easi-website/internal/domain"
	"easi-website/internal/form"
	"easi-website/pkg/audit"
)

type NewsletterUsecase interface {
	NewForm() *form.Newsletter
	Subscribe(ctx context.Context, formID string, f *form.Newsletter) (*domain.ServerResponse, error)
}

type newsletterUsecase struct {
	gateway domain.NewsletterGateway
	guard   form.InflightGuard
	audit   *audit.Logger
}

func NewNewsletterUsecase(gateway domain.NewsletterGateway, guard form.InflightGuard, auditLog *audit.Logger) NewsletterUsecase {
	return &newsletterUsecase{
		gateway: gateway,
		guard:   guard,
		audit:   auditLog,
	}
}

func (uc *newsletterUsecase) NewForm() *form.Newsletter {
	return form.NewNewsletter()
}

func (uc *newsletterUsecase) Subscribe(ctx context.Context, formID string, f *form.Newsletter) (*domain.ServerResponse, error) {
	reqID := requestID(ctx)

	release, err := lockForm(ctx, uc.guard, "newsletter", formID)
	if err != nil {
		f.Hold()
		uc.audit.DuplicateSubmission(ctx, formID, reqID, "newsletter")
		return nil, err
	}
	defer release()

	stop := context.AfterFunc(ctx, f.Detach)
	defer stop()

	email := f.Submission().Email
	resp, err := f.Submit(context.WithoutCancel(ctx), uc.gateway)

	switch {
	case err == nil:
		uc.audit.Submission(ctx, audit.EventNewsletterSubscribed, email, reqID, nil)
	case errors.Is(err, domain.ErrValidation):
		uc.audit.Submission(ctx, audit.EventValidationFailed, email, reqID, map[string]interface{}{"form": "newsletter"})
	default:
		uc.audit.Submission(ctx, audit.EventNewsletterFailed, email, reqID, map[string]interface{}{"error": err.Error()})
	}
	return resp, err
}
