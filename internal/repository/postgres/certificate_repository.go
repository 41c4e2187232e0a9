package postgres

import (
	"context"
	"database/sql"
	"time"

	"intersify/internal/common"
	"intersify/internal/domain/certificate"
)

type CertificateRepository struct {
	db *sql.DB
}

func NewCertificateRepository(db *sql.DB) *CertificateRepository {
	return &CertificateRepository{db: db}
}

func (r *CertificateRepository) Create(ctx context.Context, cert certificate.Certificate) (*certificate.Certificate, error) {
	cert.ID = common.NewUUID()
	cert.IssuedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `INSERT INTO certificates (id, student_id, posting_id, file_url, issued_at)
		VALUES ($1, $2, $3, $4, $5)`,
		cert.ID, cert.StudentID, cert.PostingID, cert.FileURL, cert.IssuedAt)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to create certificate", err)
	}
	return &cert, nil
}

func (r *CertificateRepository) ExistsByStudentAndPosting(ctx context.Context, studentID, postingID common.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (
		SELECT 1 FROM certificates WHERE student_id = $1 AND posting_id = $2
	)`, studentID, postingID).Scan(&exists)
	if err != nil {
		return false, common.NewError(common.CodeInternal, "failed to check existing certificate", err)
	}
	return exists, nil
}

func (r *CertificateRepository) ListByStudent(ctx context.Context, studentID common.UUID) ([]certificate.Certificate, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, student_id, posting_id, file_url, issued_at
		FROM certificates WHERE student_id = $1 ORDER BY issued_at DESC`, studentID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list certificates", err)
	}
	defer rows.Close()
	var items []certificate.Certificate
	for rows.Next() {
		var cert certificate.Certificate
		if err := rows.Scan(&cert.ID, &cert.StudentID, &cert.PostingID, &cert.FileURL, &cert.IssuedAt); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan certificate", err)
		}
		items = append(items, cert)
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list certificates", err)
	}
	return items, nil
}
