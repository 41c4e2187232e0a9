package posting

import (
	"context"

	"intersify/internal/common"
)

type Repository interface {
	GetByID(ctx context.Context, id common.UUID) (*Posting, error)
	ListByCompany(ctx context.Context, companyID common.UUID) ([]Posting, error)
}
