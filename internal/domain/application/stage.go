package application

import (
	"time"

	"intersify/internal/common"
)

// StageRecord is one immutable audit entry in an application's history.
// Records are append-only; the newest record's status always equals the
// application's current status.
type StageRecord struct {
	ID            common.UUID  `json:"id"`
	ApplicationID common.UUID  `json:"application_id"`
	Status        Status       `json:"status"`
	Notes         string       `json:"notes,omitempty"`
	UpdatedBy     *common.UUID `json:"updated_by,omitempty"`
	StageDate     time.Time    `json:"stage_date"`
}
