package domain

import (
	"context"
	"strings"
)

// InquiryType classifies a contact message.
type InquiryType string

const (
	InquiryGeneral     InquiryType = "general"
	InquiryTraining    InquiryType = "training"
	InquiryConsultancy InquiryType = "consultancy"
	InquiryPartnership InquiryType = "partnership"
	InquiryOther       InquiryType = "other"
)

// InquiryTypes lists the selectable inquiry types in display order.
var InquiryTypes = []InquiryType{InquiryGeneral, InquiryTraining, InquiryConsultancy, InquiryPartnership, InquiryOther}

// ParseInquiryType returns the matching type, or "" for unknown values.
func ParseInquiryType(s string) InquiryType {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, t := range InquiryTypes {
		if string(t) == s {
			return t
		}
	}
	return ""
}

// Label is the human-readable option text.
func (t InquiryType) Label() string {
	switch t {
	case InquiryGeneral:
		return "General Inquiry"
	case InquiryTraining:
		return "Training Programs"
	case InquiryConsultancy:
		return "Consultancy Services"
	case InquiryPartnership:
		return "Partnership Opportunities"
	case InquiryOther:
		return "Other"
	default:
		return ""
	}
}

// ContactSubmission represents a contact form submission
type ContactSubmission struct {
	Name         string      `json:"name" form:"name" validate:"not_blank"`
	Email        string      `json:"email" form:"email" validate:"loose_email"`
	Phone        string      `json:"phone" form:"phone"`
	Organization string      `json:"organization" form:"organization"`
	InquiryType  InquiryType `json:"inquiry_type" form:"inquiry_type"`
	Subject      string      `json:"subject" form:"subject"`
	Message      string      `json:"message" form:"message" validate:"not_blank"`
}

// ContactGateway delivers a contact submission to the remote backend.
type ContactGateway interface {
	SubmitContact(ctx context.Context, s *ContactSubmission) (*ServerResponse, error)
}
