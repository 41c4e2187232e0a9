package certificate

import (
	"context"

	"intersify/internal/common"
)

type Repository interface {
	Create(ctx context.Context, cert Certificate) (*Certificate, error)
	ExistsByStudentAndPosting(ctx context.Context, studentID, postingID common.UUID) (bool, error)
	ListByStudent(ctx context.Context, studentID common.UUID) ([]Certificate, error)
}
