package clinical

import (
	"context"

	"github.com/google/uuid"
)

// NoteRepository is the persistence boundary for appointment notes.
type NoteRepository interface {
	Create(ctx context.Context, n *AppointmentNote) error
	GetByID(ctx context.Context, id uuid.UUID) (*AppointmentNote, error)
	Update(ctx context.Context, n *AppointmentNote) error
	Sign(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByGroup(ctx context.Context, groupID uuid.UUID, limit, offset int) ([]*AppointmentNote, int, error)
	ListByAppointment(ctx context.Context, appointmentID uuid.UUID) ([]*AppointmentNote, error)
}

// PlanRepository is the persistence boundary for diagnosis and treatment plans.
type PlanRepository interface {
	Create(ctx context.Context, p *DiagnosisTreatmentPlan) error
	GetByID(ctx context.Context, id uuid.UUID) (*DiagnosisTreatmentPlan, error)
	Update(ctx context.Context, p *DiagnosisTreatmentPlan) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByClient(ctx context.Context, clientID uuid.UUID, limit, offset int) ([]*DiagnosisTreatmentPlan, int, error)
}
