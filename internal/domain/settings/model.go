package settings

import (
	"time"

	"github.com/google/uuid"
)

// Email template types.
const (
	TemplateTypeReminder = "reminder"
	TemplateTypeBilling  = "billing"
	TemplateTypeDocument = "document"
	TemplateTypeWelcome  = "welcome"
)

// Billing address types.
const (
	AddressTypeBusiness    = "business"
	AddressTypeClientBills = "client_bills"
)

// EmailTemplate maps to the email_template table. Subject and body may
// carry {{macro}} placeholders substituted at send time.
type EmailTemplate struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Type      string    `db:"type" json:"type"`
	Subject   string    `db:"subject" json:"subject"`
	Body      string    `db:"body" json:"body"`
	IsEnabled bool      `db:"is_enabled" json:"is_enabled"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// TelehealthSettings is a singleton row. Get returns defaults when the row
// has never been written.
type TelehealthSettings struct {
	ID                 uuid.UUID `db:"id" json:"id"`
	IsEnabled          bool      `db:"is_enabled" json:"is_enabled"`
	Provider           string    `db:"provider" json:"provider"`
	RoomURLTemplate    string    `db:"room_url_template" json:"room_url_template"`
	WaitingRoomEnabled bool      `db:"waiting_room_enabled" json:"waiting_room_enabled"`
	UpdatedAt          time.Time `db:"updated_at" json:"updated_at"`
}

// BillingAddress maps to the billing_address table, one row per type.
type BillingAddress struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Type      string    `db:"type" json:"type"`
	Street    string    `db:"street" json:"street"`
	City      string    `db:"city" json:"city"`
	State     string    `db:"state" json:"state"`
	Zip       string    `db:"zip" json:"zip"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
