package billing

import (
	"context"

	"github.com/google/uuid"
)

// ReportRepository runs the outstanding-balance aggregation. Read-only.
type ReportRepository interface {
	OutstandingBalance(ctx context.Context, q ReportQuery) ([]*OutstandingBalanceRow, int, error)
}

// EstimateRepository is the persistence boundary for good-faith estimates.
type EstimateRepository interface {
	Create(ctx context.Context, e *GoodFaithEstimate) error
	GetByID(ctx context.Context, id uuid.UUID) (*GoodFaithEstimate, error)
	Update(ctx context.Context, e *GoodFaithEstimate) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByGroup(ctx context.Context, groupID uuid.UUID, limit, offset int) ([]*GoodFaithEstimate, int, error)
}
