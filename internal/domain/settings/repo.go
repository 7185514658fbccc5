package settings

import (
	"context"

	"github.com/google/uuid"
)

// TemplateRepository is the persistence boundary for email templates.
type TemplateRepository interface {
	Create(ctx context.Context, t *EmailTemplate) error
	GetByID(ctx context.Context, id uuid.UUID) (*EmailTemplate, error)
	GetByType(ctx context.Context, templateType string) (*EmailTemplate, error)
	Update(ctx context.Context, t *EmailTemplate) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*EmailTemplate, error)
}

// TelehealthRepository stores the singleton telehealth configuration.
type TelehealthRepository interface {
	Get(ctx context.Context) (*TelehealthSettings, error)
	Upsert(ctx context.Context, s *TelehealthSettings) error
}

// AddressRepository stores one billing address per type.
type AddressRepository interface {
	GetByType(ctx context.Context, addressType string) (*BillingAddress, error)
	Upsert(ctx context.Context, a *BillingAddress) error
	List(ctx context.Context) ([]*BillingAddress, error)
}
