package clinical

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrNoteSigned is returned when a mutation targets a signed note.
var ErrNoteSigned = errors.New("note is signed and cannot be modified")

var validNoteTypes = map[string]bool{
	NoteTypeProgress: true, NoteTypePsychotherapy: true, NoteTypeIntake: true,
}

type Service struct {
	notes NoteRepository
	plans PlanRepository
}

func NewService(notes NoteRepository, plans PlanRepository) *Service {
	return &Service{notes: notes, plans: plans}
}

// -- Notes --

func (s *Service) CreateNote(ctx context.Context, n *AppointmentNote) error {
	if n.AppointmentID == uuid.Nil {
		return fmt.Errorf("appointment_id is required")
	}
	if n.ClinicianID == "" {
		return fmt.Errorf("clinician_id is required")
	}
	if !validNoteTypes[n.Type] {
		return fmt.Errorf("invalid note type: %s", n.Type)
	}
	n.IsSigned = false
	return s.notes.Create(ctx, n)
}

func (s *Service) GetNote(ctx context.Context, id uuid.UUID) (*AppointmentNote, error) {
	return s.notes.GetByID(ctx, id)
}

func (s *Service) UpdateNote(ctx context.Context, n *AppointmentNote) error {
	existing, err := s.notes.GetByID(ctx, n.ID)
	if err != nil {
		return fmt.Errorf("note not found: %w", err)
	}
	if existing.IsSigned {
		return ErrNoteSigned
	}
	if n.Type != "" && !validNoteTypes[n.Type] {
		return fmt.Errorf("invalid note type: %s", n.Type)
	}
	if n.Type == "" {
		n.Type = existing.Type
	}
	return s.notes.Update(ctx, n)
}

// SignNote locks the note. Signing an already-signed note is a no-op error.
func (s *Service) SignNote(ctx context.Context, id uuid.UUID) error {
	existing, err := s.notes.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("note not found: %w", err)
	}
	if existing.IsSigned {
		return ErrNoteSigned
	}
	return s.notes.Sign(ctx, id)
}

func (s *Service) DeleteNote(ctx context.Context, id uuid.UUID) error {
	existing, err := s.notes.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("note not found: %w", err)
	}
	if existing.IsSigned {
		return ErrNoteSigned
	}
	return s.notes.Delete(ctx, id)
}

func (s *Service) ListNotesByGroup(ctx context.Context, groupID uuid.UUID, limit, offset int) ([]*AppointmentNote, int, error) {
	return s.notes.ListByGroup(ctx, groupID, limit, offset)
}

func (s *Service) ListNotesByAppointment(ctx context.Context, appointmentID uuid.UUID) ([]*AppointmentNote, error) {
	return s.notes.ListByAppointment(ctx, appointmentID)
}

// -- Treatment Plans --

func (s *Service) CreatePlan(ctx context.Context, p *DiagnosisTreatmentPlan) error {
	if p.ClientID == uuid.Nil {
		return fmt.Errorf("client_id is required")
	}
	if p.Title == "" {
		return fmt.Errorf("title is required")
	}
	for _, d := range p.Diagnoses {
		if d.Code == "" {
			return fmt.Errorf("diagnosis code is required")
		}
	}
	return s.plans.Create(ctx, p)
}

func (s *Service) GetPlan(ctx context.Context, id uuid.UUID) (*DiagnosisTreatmentPlan, error) {
	return s.plans.GetByID(ctx, id)
}

func (s *Service) UpdatePlan(ctx context.Context, p *DiagnosisTreatmentPlan) error {
	if p.Title == "" {
		return fmt.Errorf("title is required")
	}
	for _, d := range p.Diagnoses {
		if d.Code == "" {
			return fmt.Errorf("diagnosis code is required")
		}
	}
	return s.plans.Update(ctx, p)
}

func (s *Service) DeletePlan(ctx context.Context, id uuid.UUID) error {
	return s.plans.Delete(ctx, id)
}

func (s *Service) ListPlansByClient(ctx context.Context, clientID uuid.UUID, limit, offset int) ([]*DiagnosisTreatmentPlan, int, error) {
	return s.plans.ListByClient(ctx, clientID, limit, offset)
}
