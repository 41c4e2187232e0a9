package certificate

import (
	"time"

	"intersify/internal/common"
)

// Certificate records a completed internship. At most one certificate may
// exist per (student, posting) pair.
type Certificate struct {
	ID        common.UUID `json:"id"`
	StudentID common.UUID `json:"student_id"`
	PostingID common.UUID `json:"posting_id"`
	FileURL   string      `json:"file_url"`
	IssuedAt  time.Time   `json:"issued_at"`
}
