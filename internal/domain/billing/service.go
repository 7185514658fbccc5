package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sagecare/practice/pkg/pagination"
)

// Validation errors surfaced verbatim to the billing UI.
var (
	ErrInvalidDateFormat = errors.New("Invalid date format. Expected YYYY-MM-DD")
	ErrInvertedRange     = errors.New("endDate cannot be before startDate")
)

type Service struct {
	reports   ReportRepository
	estimates EstimateRepository
}

func NewService(reports ReportRepository, estimates EstimateRepository) *Service {
	return &Service{reports: reports, estimates: estimates}
}

// -- Outstanding Balance Report --

// ParseReportQuery validates the raw query parameters. Dates must be strict
// calendar dates; pagination params are rejected when present but invalid.
// The end date is widened to the last instant of its day so the range covers
// the whole final day.
func ParseReportQuery(startStr, endStr, pageStr, rowsStr string) (ReportQuery, error) {
	start, err := time.ParseInLocation("2006-01-02", startStr, time.UTC)
	if err != nil {
		return ReportQuery{}, ErrInvalidDateFormat
	}
	end, err := time.ParseInLocation("2006-01-02", endStr, time.UTC)
	if err != nil {
		return ReportQuery{}, ErrInvalidDateFormat
	}
	if end.Before(start) {
		return ReportQuery{}, ErrInvertedRange
	}

	pg, err := pagination.Parse(pageStr, rowsStr)
	if err != nil {
		return ReportQuery{}, err
	}

	end = end.Add(24*time.Hour - time.Millisecond)
	return ReportQuery{Start: start, End: end, Page: pg}, nil
}

// OutstandingBalance runs the aggregation for an already-validated query.
func (s *Service) OutstandingBalance(ctx context.Context, q ReportQuery) ([]*OutstandingBalanceRow, int, error) {
	items, total, err := s.reports.OutstandingBalance(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	if items == nil {
		items = []*OutstandingBalanceRow{}
	}
	return items, total, nil
}

// -- Good Faith Estimates --

// recomputeTotal replaces the caller-supplied total with the sum of
// quantity times fee over all service items.
func recomputeTotal(e *GoodFaithEstimate) {
	total := decimal.Zero
	for _, item := range e.ServiceItems {
		total = total.Add(item.Fee.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	e.TotalEstimate = total
}

func (s *Service) CreateEstimate(ctx context.Context, e *GoodFaithEstimate) error {
	if e.ClientGroupID == uuid.Nil {
		return fmt.Errorf("client_group_id is required")
	}
	if e.ProvidedDate.IsZero() {
		e.ProvidedDate = time.Now().UTC()
	}
	for _, item := range e.ServiceItems {
		if item.Quantity < 1 {
			return fmt.Errorf("service item quantity must be at least 1")
		}
	}
	recomputeTotal(e)
	return s.estimates.Create(ctx, e)
}

func (s *Service) GetEstimate(ctx context.Context, id uuid.UUID) (*GoodFaithEstimate, error) {
	return s.estimates.GetByID(ctx, id)
}

func (s *Service) UpdateEstimate(ctx context.Context, e *GoodFaithEstimate) error {
	for _, item := range e.ServiceItems {
		if item.Quantity < 1 {
			return fmt.Errorf("service item quantity must be at least 1")
		}
	}
	recomputeTotal(e)
	return s.estimates.Update(ctx, e)
}

func (s *Service) DeleteEstimate(ctx context.Context, id uuid.UUID) error {
	return s.estimates.Delete(ctx, id)
}

func (s *Service) ListEstimatesByGroup(ctx context.Context, groupID uuid.UUID, limit, offset int) ([]*GoodFaithEstimate, int, error) {
	return s.estimates.ListByGroup(ctx, groupID, limit, offset)
}
