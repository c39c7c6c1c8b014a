package usecase

import (
	"context"

	"easi-website/internal/domain"
	"easi-website/internal/form"
	"easi-website/pkg/logger"
)

// lockForm takes the in-flight lock of one form instance. An empty formID
// (API clients that send none) is never locked. A guard backend error fails
// open: the submission goes ahead unlocked.
func lockForm(ctx context.Context, guard form.InflightGuard, key, formID string) (release func(), err error) {
	noop := func() {}
	if formID == "" || guard == nil {
		return noop, nil
	}

	lockKey := key + ":" + formID
	acquired, err := guard.TryAcquire(ctx, lockKey)
	if err != nil {
		logger.Log.Warn("Inflight guard unavailable, submitting without lock", "form", key, "error", err)
		return noop, nil
	}
	if !acquired {
		return noop, domain.ErrSubmissionPending
	}

	return func() {
		// The request may already be gone; the lock must still be dropped.
		if err := guard.Release(context.WithoutCancel(ctx), lockKey); err != nil {
			logger.Log.Warn("Failed to release inflight lock", "form", key, "error", err)
		}
	}, nil
}

func requestID(ctx context.Context) string {
	id, _ := ctx.Value(domain.KeyRequestID).(string)
	return id
}
