package scheduling

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

var validStatuses = map[string]bool{
	StatusScheduled: true, StatusCompleted: true, StatusCancelled: true, StatusNoShow: true,
}

// terminalStatuses cannot transition back to scheduled.
var terminalStatuses = map[string]bool{
	StatusCompleted: true, StatusCancelled: true, StatusNoShow: true,
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, a *Appointment) error {
	if a.ClientGroupID == uuid.Nil {
		return fmt.Errorf("client_group_id is required")
	}
	if a.StartDate.IsZero() || a.EndDate.IsZero() {
		return fmt.Errorf("start_date and end_date are required")
	}
	if a.EndDate.Before(a.StartDate) {
		return fmt.Errorf("end_date cannot be before start_date")
	}
	if a.Status == "" {
		a.Status = StatusScheduled
	}
	if !validStatuses[a.Status] {
		return fmt.Errorf("invalid status: %s", a.Status)
	}
	return s.repo.Create(ctx, a)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, a *Appointment) error {
	existing, err := s.repo.GetByID(ctx, a.ID)
	if err != nil {
		return fmt.Errorf("appointment not found: %w", err)
	}
	if a.Status != "" && a.Status != existing.Status {
		if err := validateTransition(existing.Status, a.Status); err != nil {
			return err
		}
	} else {
		a.Status = existing.Status
	}
	if a.EndDate.Before(a.StartDate) {
		return fmt.Errorf("end_date cannot be before start_date")
	}
	return s.repo.Update(ctx, a)
}

// UpdateStatus applies a status transition after validating it against the
// appointment's current state.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("appointment not found: %w", err)
	}
	if err := validateTransition(existing.Status, status); err != nil {
		return err
	}
	return s.repo.UpdateStatus(ctx, id, status)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, f ListFilter, limit, offset int) ([]*Appointment, int, error) {
	return s.repo.List(ctx, f, limit, offset)
}

func validateTransition(from, to string) error {
	if !validStatuses[to] {
		return fmt.Errorf("invalid status: %s", to)
	}
	if to == StatusScheduled && terminalStatuses[from] {
		return fmt.Errorf("cannot revert %s appointment to scheduled", from)
	}
	return nil
}
