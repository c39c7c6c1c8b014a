package form

import (
	"time"

	"easi-website/internal/domain"
)

type NoticeKind string

const (
	NoticePending NoticeKind = "pending"
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
)

const MsgPending = "Your previous submission is still being sent. Please wait."

// Notice is what the page shows for a submission status.
type Notice struct {
	Kind         NoticeKind
	Message      string
	Dismissible  bool
	ExpiresAfter time.Duration // 0 = stays until dismissed
}

// ExpiresMillis is ExpiresAfter in milliseconds, for the page script.
func (n *Notice) ExpiresMillis() int64 {
	return n.ExpiresAfter.Milliseconds()
}

// Presenter maps a SubmissionStatus to a Notice.
type Presenter struct {
	TTL time.Duration
}

func NewPresenter(ttl time.Duration) Presenter {
	return Presenter{TTL: ttl}
}

// Notice returns nil for idle.
func (p Presenter) Notice(s domain.SubmissionStatus) *Notice {
	switch s.Kind {
	case domain.StatusPending:
		return &Notice{Kind: NoticePending, Message: MsgPending}
	case domain.StatusSucceeded:
		return &Notice{Kind: NoticeSuccess, Message: s.Message, Dismissible: true, ExpiresAfter: p.TTL}
	case domain.StatusFailed:
		return &Notice{Kind: NoticeError, Message: s.Message, Dismissible: true, ExpiresAfter: p.TTL}
	default:
		return nil
	}
}
