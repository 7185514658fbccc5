package clinical

import (
	"time"

	"github.com/google/uuid"
)

// Note types.
const (
	NoteTypeProgress      = "progress"
	NoteTypePsychotherapy = "psychotherapy"
	NoteTypeIntake        = "intake"
)

// AppointmentNote maps to the appointment_note table. Signing a note locks
// its content permanently.
type AppointmentNote struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	AppointmentID uuid.UUID  `db:"appointment_id" json:"appointment_id"`
	ClientGroupID uuid.UUID  `db:"client_group_id" json:"client_group_id"`
	ClinicianID   string     `db:"clinician_id" json:"clinician_id"`
	Type          string     `db:"type" json:"type"`
	Content       string     `db:"content" json:"content"`
	IsSigned      bool       `db:"is_signed" json:"is_signed"`
	SignedAt      *time.Time `db:"signed_at" json:"signed_at,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`
}

// Diagnosis is one coded entry on a treatment plan.
type Diagnosis struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// DiagnosisTreatmentPlan maps to the diagnosis_treatment_plan table. The
// diagnoses list is stored as a JSONB column.
type DiagnosisTreatmentPlan struct {
	ID            uuid.UUID   `db:"id" json:"id"`
	ClientID      uuid.UUID   `db:"client_id" json:"client_id"`
	ClientGroupID uuid.UUID   `db:"client_group_id" json:"client_group_id"`
	Title         string      `db:"title" json:"title"`
	Diagnoses     []Diagnosis `db:"diagnoses" json:"diagnoses"`
	Goals         *string     `db:"goals" json:"goals,omitempty"`
	Objectives    *string     `db:"objectives" json:"objectives,omitempty"`
	Interventions *string     `db:"interventions" json:"interventions,omitempty"`
	CreatedAt     time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time   `db:"updated_at" json:"updated_at"`
}
