package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"intersify/internal/common"
	"intersify/internal/domain/posting"
)

type PostingRepository struct {
	db *sql.DB
}

func NewPostingRepository(db *sql.DB) *PostingRepository {
	return &PostingRepository{db: db}
}

func (r *PostingRepository) GetByID(ctx context.Context, id common.UUID) (*posting.Posting, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, company_id, title, description, skills, location, status, created_at, updated_at
		FROM postings WHERE id = $1`, id)
	var p posting.Posting
	if err := row.Scan(&p.ID, &p.CompanyID, &p.Title, &p.Description, pq.Array(&p.Skills), &p.Location, &p.Status, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "posting not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load posting", err)
	}
	return &p, nil
}

func (r *PostingRepository) ListByCompany(ctx context.Context, companyID common.UUID) ([]posting.Posting, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, company_id, title, description, skills, location, status, created_at, updated_at
		FROM postings WHERE company_id = $1 ORDER BY created_at DESC`, companyID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list postings", err)
	}
	defer rows.Close()
	var items []posting.Posting
	for rows.Next() {
		var p posting.Posting
		if err := rows.Scan(&p.ID, &p.CompanyID, &p.Title, &p.Description, pq.Array(&p.Skills), &p.Location, &p.Status, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan posting", err)
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list postings", err)
	}
	return items, nil
}
