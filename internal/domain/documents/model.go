package documents

import (
	"time"

	"github.com/google/uuid"
)

// Share frequencies.
const (
	FrequencyOnce    = "once"
	FrequencyWeekly  = "weekly"
	FrequencyMonthly = "monthly"
)

// Document statuses.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusLocked    = "locked"
	StatusExpired   = "expired"
)

// SharedDocument maps to the shared_document table. A locked document is
// frozen: it cannot be completed or deleted.
type SharedDocument struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	ClientGroupID uuid.UUID  `db:"client_group_id" json:"client_group_id"`
	ClientID      *uuid.UUID `db:"client_id" json:"client_id,omitempty"`
	Title         string     `db:"title" json:"title"`
	FileURL       string     `db:"file_url" json:"file_url"`
	Frequency     string     `db:"frequency" json:"frequency"`
	Status        string     `db:"status" json:"status"`
	SharedAt      time.Time  `db:"shared_at" json:"shared_at"`
	CompletedAt   *time.Time `db:"completed_at" json:"completed_at,omitempty"`
	ExpiresAt     *time.Time `db:"expires_at" json:"expires_at,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
}
