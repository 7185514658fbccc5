package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sagecare/practice/pkg/pagination"
)

// OutstandingBalanceRow is one responsible client's aggregated totals. The
// camelCase keys are a fixed external contract consumed by the billing UI.
type OutstandingBalanceRow struct {
	ClientID                uuid.UUID `json:"clientId"`
	ClientLegalFirstName    string    `json:"clientLegalFirstName"`
	ClientLegalLastName     string    `json:"clientLegalLastName"`
	TotalServiceAmount      float64   `json:"totalServiceAmount"`
	TotalPaidAmount         float64   `json:"totalPaidAmount"`
	TotalOutstandingBalance float64   `json:"totalOutstandingBalance"`
}

// ReportQuery is a validated outstanding-balance request. End is already
// normalized to the last instant of its calendar day.
type ReportQuery struct {
	Start time.Time
	End   time.Time
	Page  pagination.Params
}

// ServiceItem is one line of a good-faith estimate.
type ServiceItem struct {
	ServiceCode string          `json:"service_code"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	Fee         decimal.Decimal `json:"fee"`
}

// GoodFaithEstimate maps to the good_faith_estimate table. TotalEstimate is
// always recomputed from the service items, never trusted from the caller.
type GoodFaithEstimate struct {
	ID             uuid.UUID       `db:"id" json:"id"`
	ClientGroupID  uuid.UUID       `db:"client_group_id" json:"client_group_id"`
	ClinicianID    *string         `db:"clinician_id" json:"clinician_id,omitempty"`
	ProvidedDate   time.Time       `db:"provided_date" json:"provided_date"`
	ExpirationDate *time.Time      `db:"expiration_date" json:"expiration_date,omitempty"`
	ServiceItems   []ServiceItem   `db:"service_items" json:"service_items"`
	TotalEstimate  decimal.Decimal `db:"total_estimate" json:"total_estimate"`
	Notes          *string         `db:"notes" json:"notes,omitempty"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at" json:"updated_at"`
}
