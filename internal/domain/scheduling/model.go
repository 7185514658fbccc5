package scheduling

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Appointment statuses.
const (
	StatusScheduled = "scheduled"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
	StatusNoShow    = "no_show"
)

// Appointment maps to the appointment table. Only completed appointments
// count toward billing; the three monetary columns are nullable and treated
// as zero when absent.
type Appointment struct {
	ID               uuid.UUID        `db:"id" json:"id"`
	ClientGroupID    uuid.UUID        `db:"client_group_id" json:"client_group_id"`
	ClinicianID      *string          `db:"clinician_id" json:"clinician_id,omitempty"`
	Type             string           `db:"type" json:"type"`
	Title            *string          `db:"title" json:"title,omitempty"`
	Status           string           `db:"status" json:"status"`
	StartDate        time.Time        `db:"start_date" json:"start_date"`
	EndDate          time.Time        `db:"end_date" json:"end_date"`
	LocationID       *uuid.UUID       `db:"location_id" json:"location_id,omitempty"`
	AppointmentFee   *decimal.Decimal `db:"appointment_fee" json:"appointment_fee,omitempty"`
	WriteOff         *decimal.Decimal `db:"write_off" json:"write_off,omitempty"`
	AdjustableAmount *decimal.Decimal `db:"adjustable_amount" json:"adjustable_amount,omitempty"`
	IsTelehealth     bool             `db:"is_telehealth" json:"is_telehealth"`
	CreatedAt        time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time        `db:"updated_at" json:"updated_at"`
}

// ListFilter narrows appointment listings. Zero values mean "no filter".
type ListFilter struct {
	ClientGroupID uuid.UUID
	ClinicianID   string
	Status        string
	From          time.Time
	To            time.Time
}
