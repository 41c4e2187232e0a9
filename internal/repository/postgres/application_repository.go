package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"intersify/internal/common"
	"intersify/internal/domain/application"
)

type ApplicationRepository struct {
	db *sql.DB
}

func NewApplicationRepository(db *sql.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

const applicationColumns = `id, posting_id, student_id, status, resume_url, applied_at, updated_at`

func (r *ApplicationRepository) Create(ctx context.Context, app application.Application, firstStage application.StageRecord) (*application.Application, error) {
	app.ID = common.NewUUID()
	now := time.Now().UTC()
	app.AppliedAt = now
	app.UpdatedAt = now
	firstStage.ID = common.NewUUID()
	firstStage.ApplicationID = app.ID
	firstStage.Status = app.Status
	firstStage.StageDate = now

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to begin transaction", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `INSERT INTO applications (id, posting_id, student_id, status, resume_url, applied_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		app.ID, app.PostingID, app.StudentID, app.Status, app.ResumeURL, app.AppliedAt, app.UpdatedAt)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to create application", err)
	}
	if err := insertStage(ctx, tx, firstStage); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to commit application", err)
	}
	return &app, nil
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id common.UUID) (*application.Application, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id)
	return scanApplication(row)
}

func (r *ApplicationRepository) ExistsActive(ctx context.Context, postingID, studentID common.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (
		SELECT 1 FROM applications WHERE posting_id = $1 AND student_id = $2 AND status <> $3
	)`, postingID, studentID, application.StatusWithdrawn).Scan(&exists)
	if err != nil {
		return false, common.NewError(common.CodeInternal, "failed to check existing application", err)
	}
	return exists, nil
}

// UpdateStatus commits the status change and the stage append in one
// transaction. The UPDATE is guarded by the status the caller validated
// against; if a concurrent transition got there first the guard misses and
// the whole transaction is rolled back with a conflict.
func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id common.UUID, from, to application.Status, stage application.StageRecord) (*application.Application, error) {
	stage.ID = common.NewUUID()
	stage.ApplicationID = id
	stage.Status = to
	now := time.Now().UTC()
	stage.StageDate = now

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to begin transaction", err)
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.ExecContext(ctx, `UPDATE applications SET status = $1, updated_at = $2 WHERE id = $3 AND status = $4`,
		to, now, id, from)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update application status", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update application status", err)
	}
	if affected == 0 {
		return nil, common.NewError(common.CodeConflict,
			fmt.Sprintf("application %s was modified concurrently, expected status %s", id, from), nil)
	}
	if err := insertStage(ctx, tx, stage); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to commit status update", err)
	}
	return r.GetByID(ctx, id)
}

func (r *ApplicationRepository) ListStages(ctx context.Context, applicationID common.UUID) ([]application.StageRecord, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, application_id, status, notes, updated_by, stage_date
		FROM application_stages WHERE application_id = $1 ORDER BY stage_date DESC, id DESC`, applicationID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list stages", err)
	}
	defer rows.Close()
	var items []application.StageRecord
	for rows.Next() {
		var stage application.StageRecord
		var notes sql.NullString
		var updatedBy sql.NullString
		if err := rows.Scan(&stage.ID, &stage.ApplicationID, &stage.Status, &notes, &updatedBy, &stage.StageDate); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan stage", err)
		}
		stage.Notes = notes.String
		if updatedBy.Valid {
			actor := common.UUID(updatedBy.String)
			stage.UpdatedBy = &actor
		}
		items = append(items, stage)
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list stages", err)
	}
	return items, nil
}

func (r *ApplicationRepository) CountStages(ctx context.Context, applicationID common.UUID) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM application_stages WHERE application_id = $1`, applicationID).Scan(&count)
	if err != nil {
		return 0, common.NewError(common.CodeInternal, "failed to count stages", err)
	}
	return count, nil
}

func insertStage(ctx context.Context, tx *sql.Tx, stage application.StageRecord) error {
	var notes any
	if stage.Notes != "" {
		notes = stage.Notes
	}
	var updatedBy any
	if stage.UpdatedBy != nil {
		updatedBy = *stage.UpdatedBy
	}
	_, err := tx.ExecContext(ctx, `INSERT INTO application_stages (id, application_id, status, notes, updated_by, stage_date)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		stage.ID, stage.ApplicationID, stage.Status, notes, updatedBy, stage.StageDate)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to append stage record", err)
	}
	return nil
}

func scanApplication(row *sql.Row) (*application.Application, error) {
	var app application.Application
	if err := row.Scan(&app.ID, &app.PostingID, &app.StudentID, &app.Status, &app.ResumeURL, &app.AppliedAt, &app.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "application not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load application", err)
	}
	return &app, nil
}
