package posting

import (
	"time"

	"intersify/internal/common"
)

type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusClosed    Status = "closed"
)

// Posting is an internship opening owned by a company user. The owner is the
// only actor allowed to drive transitions of applications against it.
type Posting struct {
	ID          common.UUID `json:"id"`
	CompanyID   common.UUID `json:"company_id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Skills      []string    `json:"skills"`
	Location    string      `json:"location"`
	Status      Status      `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}
