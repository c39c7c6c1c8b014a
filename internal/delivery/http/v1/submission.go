package v1

import (
	"errors"
	"net/http"

	"easi-website/internal/domain"
	"easi-website/pkg/apperror"

	"github.com/google/uuid"
)

// SubmissionResult is the data of a successful API submission.
type SubmissionResult struct {
	Status string `json:"status" example:"succeeded"`
	// NextFormID identifies the fresh, empty form that replaces the sent one
	NextFormID string `json:"next_form_id" example:"3f1c9a52-6d0e-4c55-9a57-2f7a1b8e4d10"`
}

// formID accepts only UUIDs; anything else is treated as absent (no lock).
func formID(raw string) string {
	if _, err := uuid.Parse(raw); err != nil {
		return ""
	}
	return raw
}

// outcome maps a submit error to the HTTP status of the page, and picks the
// form ID the re-rendered form carries. A sent form is replaced by a new
// instance; a refused one keeps its ID so a manual retry is the same instance.
func outcome(err error, id string) (int, string) {
	next := id
	if next == "" {
		next = uuid.NewString()
	}

	switch {
	case err == nil:
		return http.StatusOK, uuid.NewString()
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, next
	case errors.Is(err, domain.ErrSubmissionPending):
		return http.StatusConflict, next
	default:
		return http.StatusBadGateway, next
	}
}

// apiError maps a submit error to the JSON API error.
func apiError(err error, invalidMsg, failedMsg, pendingMsg string) *apperror.AppError {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return apperror.BadRequest(invalidMsg).WithDetails(verr.Fields.Strings())
	case errors.Is(err, domain.ErrSubmissionPending):
		return apperror.Conflict(pendingMsg)
	default:
		// Upstream failure reasons are never distinguished for the client
		return apperror.BadGateway(failedMsg, err)
	}
}
