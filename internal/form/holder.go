// Package form holds the state of one site form instance: its field values,
// validation flags and submission status, and the single submit flow that
// moves it from idle to pending to succeeded or failed.
package form

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"easi-website/internal/domain"
)

// ErrUnknownField is returned by SetField for names the form does not own.
var ErrUnknownField = errors.New("unknown form field")

const (
	MsgInvalid           = "Please fill in all required fields correctly."
	MsgContactSent       = "Your message has been sent successfully! We will get back to you soon."
	MsgContactFailed     = "There was an error sending your message. Please try again later."
	MsgNewsletterInvalid = "Please enter a valid email address."
	MsgNewsletterSent    = "Thank you for subscribing to our newsletter!"
	MsgNewsletterFailed  = "We could not subscribe you right now. Please try again later."
)

// messages are the fixed texts one form kind reports.
type messages struct {
	invalid, sent, failed string
}

// holder is the state shared by every form kind. All access goes through mu;
// the network call itself runs unlocked with pending set.
type holder struct {
	mu       sync.Mutex
	fields   map[domain.Field]string
	allowed  []domain.Field
	errors   domain.ValidationErrorSet
	status   domain.SubmissionStatus
	pending  bool
	held     bool // pending elsewhere; see Hold
	detached bool
	msgs     messages
}

func newHolder(msgs messages, allowed ...domain.Field) *holder {
	return &holder{
		fields:  make(map[domain.Field]string, len(allowed)),
		allowed: allowed,
		errors:  domain.ValidationErrorSet{},
		msgs:    msgs,
	}
}

func (h *holder) owns(name domain.Field) bool {
	for _, f := range h.allowed {
		if f == name {
			return true
		}
	}
	return false
}

// SetField stores value under name and clears that field's error flag.
func (h *holder) SetField(name domain.Field, value string) error {
	if !h.owns(name) {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.fields[name] = value
	h.errors.Clear(name)
	return nil
}

// Value returns the current value of name ("" when unset).
func (h *holder) Value(name domain.Field) string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.fields[name]
}

// Values returns a copy of every owned field, keyed by plain name.
func (h *holder) Values() map[string]string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make(map[string]string, len(h.allowed))
	for _, f := range h.allowed {
		out[string(f)] = h.fields[f]
	}
	return out
}

// Errors returns a copy of the current validation flags.
func (h *holder) Errors() domain.ValidationErrorSet {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make(domain.ValidationErrorSet, len(h.errors))
	for f, v := range h.errors {
		out[f] = v
	}
	return out
}

func (h *holder) Status() domain.SubmissionStatus {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.status
}

// Pending reports whether a submit is in flight; the submit control is disabled while true.
func (h *holder) Pending() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.pending || h.held
}

// Reset empties every field and every error flag. Status is left alone.
func (h *holder) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.resetLocked()
}

func (h *holder) resetLocked() {
	h.fields = make(map[domain.Field]string, len(h.allowed))
	h.errors = domain.ValidationErrorSet{}
}

// Dismiss returns a succeeded or failed status to idle.
func (h *holder) Dismiss() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.status.IsTerminal() {
		h.status = domain.Idle()
	}
}

// Hold shows the form as pending because a submission of the same form
// instance is still in flight elsewhere. No call is made, and the holder
// stays pending so its submit control renders disabled.
func (h *holder) Hold() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.detached {
		h.held = true
		h.status = domain.Pending()
	}
}

// Detach marks the view owning this form as gone. A submit completing after
// Detach leaves the holder untouched.
func (h *holder) Detach() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.detached = true
}

// submit runs validate -> send -> status. send is called at most once and
// never while another submit of the same holder is pending.
func (h *holder) submit(
	ctx context.Context,
	check func(map[domain.Field]string) domain.ValidationErrorSet,
	send func(ctx context.Context, fields map[domain.Field]string) (*domain.ServerResponse, error),
) (*domain.ServerResponse, error) {
	h.mu.Lock()
	if h.detached {
		h.mu.Unlock()
		return nil, domain.ErrDetached
	}
	if h.pending || h.held {
		h.mu.Unlock()
		return nil, domain.ErrSubmissionPending
	}

	snapshot := make(map[domain.Field]string, len(h.fields))
	for f, v := range h.fields {
		snapshot[f] = v
	}

	h.errors = check(snapshot)
	if h.errors.Any() {
		h.status = domain.Failed(h.msgs.invalid)
		flags := make(domain.ValidationErrorSet, len(h.errors))
		for f, v := range h.errors {
			flags[f] = v
		}
		h.mu.Unlock()
		return nil, &domain.ValidationError{Fields: flags}
	}

	h.pending = true
	h.status = domain.Pending()
	h.mu.Unlock()

	resp, err := send(ctx, snapshot)

	h.mu.Lock()
	defer h.mu.Unlock()
	h.pending = false
	if h.detached {
		return resp, err
	}
	if err != nil {
		h.status = domain.Failed(h.msgs.failed)
		return nil, err
	}
	h.resetLocked()
	h.status = domain.Succeeded(h.msgs.sent)
	return resp, nil
}
