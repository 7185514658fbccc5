package documents

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the persistence boundary for shared documents.
type Repository interface {
	Create(ctx context.Context, d *SharedDocument) error
	GetByID(ctx context.Context, id uuid.UUID) (*SharedDocument, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	MarkCompleted(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByGroup(ctx context.Context, groupID uuid.UUID, status string, limit, offset int) ([]*SharedDocument, int, error)
}
