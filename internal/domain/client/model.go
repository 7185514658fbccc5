package client

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Client maps to the client table. Legal names drive billing attribution and
// report ordering; preferred name is display-only.
type Client struct {
	ID             uuid.UUID  `db:"id" json:"id"`
	LegalFirstName string     `db:"legal_first_name" json:"legal_first_name"`
	LegalLastName  string     `db:"legal_last_name" json:"legal_last_name"`
	PreferredName  *string    `db:"preferred_name" json:"preferred_name,omitempty"`
	Email          *string    `db:"email" json:"email,omitempty"`
	Phone          *string    `db:"phone" json:"phone,omitempty"`
	DateOfBirth    *time.Time `db:"date_of_birth" json:"date_of_birth,omitempty"`
	IsActive       bool       `db:"is_active" json:"is_active"`
	IsWaitlist     bool       `db:"is_waitlist" json:"is_waitlist"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`
}

// ClientGroup maps to the client_group table. A group is the unit that
// appointments and billing attach to, even for individual clients.
type ClientGroup struct {
	ID              uuid.UUID       `db:"id" json:"id"`
	Type            string          `db:"type" json:"type"`
	Name            string          `db:"name" json:"name"`
	AvailableCredit decimal.Decimal `db:"available_credit" json:"available_credit"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
}

// ClientGroupMembership links a client into a group. IsResponsibleForBilling
// is three-state: true, false, or unset.
type ClientGroupMembership struct {
	ClientGroupID           uuid.UUID `db:"client_group_id" json:"client_group_id"`
	ClientID                uuid.UUID `db:"client_id" json:"client_id"`
	Role                    *string   `db:"role" json:"role,omitempty"`
	IsResponsibleForBilling *bool     `db:"is_responsible_for_billing" json:"is_responsible_for_billing,omitempty"`
	IsContactOnly           bool      `db:"is_contact_only" json:"is_contact_only"`
	CreatedAt               time.Time `db:"created_at" json:"created_at"`
}

// GroupMember is a membership joined with its client record, as returned by
// the member listing.
type GroupMember struct {
	ClientGroupMembership
	Client Client `json:"client"`
}
