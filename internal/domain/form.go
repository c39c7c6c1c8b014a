package domain

// Field names a single input of a site form.
type Field string

const (
	FieldName         Field = "name"
	FieldEmail        Field = "email"
	FieldPhone        Field = "phone"
	FieldOrganization Field = "organization"
	FieldInquiryType  Field = "inquiry_type"
	FieldSubject      Field = "subject"
	FieldMessage      Field = "message"
)

// ValidationErrorSet maps a field to "is invalid". It is rebuilt on every
// submit attempt and cleared per field as the user edits.
type ValidationErrorSet map[Field]bool

// Any reports whether at least one field is flagged.
func (s ValidationErrorSet) Any() bool {
	for _, invalid := range s {
		if invalid {
			return true
		}
	}
	return false
}

func (s ValidationErrorSet) Has(f Field) bool {
	return s[f]
}

// Clear unflags f if it is present in the set.
func (s ValidationErrorSet) Clear(f Field) {
	if _, ok := s[f]; ok {
		s[f] = false
	}
}

// Strings returns a copy keyed by plain field names, for templates and JSON.
func (s ValidationErrorSet) Strings() map[string]bool {
	out := make(map[string]bool, len(s))
	for f, invalid := range s {
		out[string(f)] = invalid
	}
	return out
}

type StatusKind int

const (
	StatusIdle StatusKind = iota
	StatusPending
	StatusSucceeded
	StatusFailed
)

func (k StatusKind) String() string {
	switch k {
	case StatusPending:
		return "pending"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	default:
		return "idle"
	}
}

// SubmissionStatus drives the notice shown next to a form.
type SubmissionStatus struct {
	Kind    StatusKind
	Message string
}

func Idle() SubmissionStatus { return SubmissionStatus{Kind: StatusIdle} }

func Pending() SubmissionStatus { return SubmissionStatus{Kind: StatusPending} }

func Succeeded(msg string) SubmissionStatus {
	return SubmissionStatus{Kind: StatusSucceeded, Message: msg}
}

func Failed(msg string) SubmissionStatus {
	return SubmissionStatus{Kind: StatusFailed, Message: msg}
}

// IsTerminal reports whether the status is succeeded or failed.
func (s SubmissionStatus) IsTerminal() bool {
	return s.Kind == StatusSucceeded || s.Kind == StatusFailed
}

// ServerResponse is whatever a 2xx backend answer carried.
type ServerResponse struct {
	StatusCode int    `json:"status_code"`
	Message    string `json:"message,omitempty"`
	Body       []byte `json:"-"`
}
