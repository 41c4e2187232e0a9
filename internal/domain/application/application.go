package application

import (
	"strings"
	"time"

	"intersify/internal/common"
)

// Status is one of the lifecycle states of an application. Values are stored
// and transmitted as the uppercase tokens below; ParseStatus normalizes input.
type Status string

const (
	StatusApplied            Status = "APPLIED"
	StatusShortlisted        Status = "SHORTLISTED"
	StatusInterviewScheduled Status = "INTERVIEW_SCHEDULED"
	StatusInterviewCompleted Status = "INTERVIEW_COMPLETED"
	StatusOfferMade          Status = "OFFER_MADE"
	StatusAccepted           Status = "ACCEPTED"
	StatusRejected           Status = "REJECTED"
	StatusWithdrawn          Status = "WITHDRAWN"
	StatusCompleted          Status = "COMPLETED"
)

// AllStatuses lists every declared status. Mapping tables keyed by status are
// checked against this list for completeness in tests.
var AllStatuses = []Status{
	StatusApplied,
	StatusShortlisted,
	StatusInterviewScheduled,
	StatusInterviewCompleted,
	StatusOfferMade,
	StatusAccepted,
	StatusRejected,
	StatusWithdrawn,
	StatusCompleted,
}

// ParseStatus converts a raw token to a Status. Input is trimmed and matched
// case-insensitively; unknown tokens fail with a validation error.
func ParseStatus(raw string) (Status, error) {
	candidate := Status(strings.ToUpper(strings.TrimSpace(raw)))
	for _, status := range AllStatuses {
		if candidate == status {
			return status, nil
		}
	}
	return "", common.NewValidationError("invalid status provided: "+raw, map[string]string{"status": "unknown status token"})
}

type Application struct {
	ID        common.UUID `json:"id"`
	PostingID common.UUID `json:"posting_id"`
	StudentID common.UUID `json:"student_id"`
	Status    Status      `json:"status"`
	ResumeURL string      `json:"resume_url"`
	AppliedAt time.Time   `json:"applied_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}
