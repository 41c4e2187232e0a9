package application

import (
	"context"

	"intersify/internal/common"
)

type Repository interface {
	// Create inserts the application together with its first stage record in
	// one transaction.
	Create(ctx context.Context, app Application, firstStage StageRecord) (*Application, error)
	GetByID(ctx context.Context, id common.UUID) (*Application, error)
	// ExistsActive reports whether a non-withdrawn application already exists
	// for the (student, posting) pair.
	ExistsActive(ctx context.Context, postingID, studentID common.UUID) (bool, error)
	// UpdateStatus commits the status change and the stage append atomically.
	// The write is guarded by the expected current status; a concurrent
	// transition that got there first makes the guard miss and the call fails
	// with a conflict, leaving both rows untouched.
	UpdateStatus(ctx context.Context, id common.UUID, from, to Status, stage StageRecord) (*Application, error)
	ListStages(ctx context.Context, applicationID common.UUID) ([]StageRecord, error)
	CountStages(ctx context.Context, applicationID common.UUID) (int64, error)
}
