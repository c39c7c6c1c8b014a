package usecase

import (
	"context"
	"errors"

	"easi-website/internal/domain"
	"easi-website/internal/form"
	"easi-website/pkg/audit"
)

// ContactUsecase runs contact form submissions
type ContactUsecase interface {
	// NewForm returns an empty form instance
	NewForm() *form.Contact
	// Submit validates f and sends it at most once per pending formID
	Submit(ctx context.Context, formID string, f *form.Contact) (*domain.ServerResponse, error)
}

type contactUsecase struct {
	gateway domain.ContactGateway
	guard   form.InflightGuard
	audit   *audit.Logger
}

// NewContactUsecase creates a new contact usecase
func NewContactUsecase(gateway domain.ContactGateway, guard form.InflightGuard, auditLog *audit.Logger) ContactUsecase {
	return &contactUsecase{
		gateway: gateway,
		guard:   guard,
		audit:   auditLog,
	}
}

func (uc *contactUsecase) NewForm() *form.Contact {
	return form.NewContact()
}

func (uc *contactUsecase) Submit(ctx context.Context, formID string, f *form.Contact) (*domain.ServerResponse, error) {
	reqID := requestID(ctx)

	release, err := lockForm(ctx, uc.guard, "contact", formID)
	if err != nil {
		f.Hold()
		uc.audit.DuplicateSubmission(ctx, formID, reqID, "contact")
		return nil, err
	}
	defer release()

	// A client that goes away tears the view down; the backend call itself is
	// not cancelled and its result is dropped by the detached form.
	stop := context.AfterFunc(ctx, f.Detach)
	defer stop()

	email := f.Submission().Email
	resp, err := f.Submit(context.WithoutCancel(ctx), uc.gateway)

	var verr *domain.ValidationError
	switch {
	case err == nil:
		uc.audit.Submission(ctx, audit.EventContactSubmitted, email, reqID, map[string]interface{}{"status": resp.StatusCode})
	case errors.As(err, &verr):
		uc.audit.Submission(ctx, audit.EventValidationFailed, email, reqID, map[string]interface{}{
			"form":   "contact",
			"fields": verr.Fields.Strings(),
		})
	default:
		uc.audit.Submission(ctx, audit.EventContactFailed, email, reqID, map[string]interface{}{"error": err.Error()})
	}
	return resp, err
}
