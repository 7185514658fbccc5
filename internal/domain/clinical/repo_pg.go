package clinical

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sagecare/practice/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

func conn(ctx context.Context, pool *pgxpool.Pool) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return pool
}

// =========== Note Repository ===========

type noteRepoPG struct{ pool *pgxpool.Pool }

func NewNoteRepoPG(pool *pgxpool.Pool) NoteRepository { return &noteRepoPG{pool: pool} }

const noteCols = `id, appointment_id, client_group_id, clinician_id, type, content,
	is_signed, signed_at, created_at, updated_at`

func scanNote(row pgx.Row) (*AppointmentNote, error) {
	var n AppointmentNote
	err := row.Scan(&n.ID, &n.AppointmentID, &n.ClientGroupID, &n.ClinicianID, &n.Type, &n.Content,
		&n.IsSigned, &n.SignedAt, &n.CreatedAt, &n.UpdatedAt)
	return &n, err
}

func (r *noteRepoPG) Create(ctx context.Context, n *AppointmentNote) error {
	n.ID = uuid.New()
	_, err := conn(ctx, r.pool).Exec(ctx, `
		INSERT INTO appointment_note (id, appointment_id, client_group_id, clinician_id, type, content)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		n.ID, n.AppointmentID, n.ClientGroupID, n.ClinicianID, n.Type, n.Content)
	return err
}

func (r *noteRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*AppointmentNote, error) {
	return scanNote(conn(ctx, r.pool).QueryRow(ctx,
		`SELECT `+noteCols+` FROM appointment_note WHERE id = $1`, id))
}

func (r *noteRepoPG) Update(ctx context.Context, n *AppointmentNote) error {
	_, err := conn(ctx, r.pool).Exec(ctx, `
		UPDATE appointment_note SET type=$2, content=$3, updated_at=NOW() WHERE id = $1`,
		n.ID, n.Type, n.Content)
	return err
}

func (r *noteRepoPG) Sign(ctx context.Context, id uuid.UUID) error {
	_, err := conn(ctx, r.pool).Exec(ctx, `
		UPDATE appointment_note SET is_signed=true, signed_at=NOW(), updated_at=NOW() WHERE id = $1`, id)
	return err
}

func (r *noteRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := conn(ctx, r.pool).Exec(ctx, `DELETE FROM appointment_note WHERE id = $1`, id)
	return err
}

func (r *noteRepoPG) ListByGroup(ctx context.Context, groupID uuid.UUID, limit, offset int) ([]*AppointmentNote, int, error) {
	var total int
	if err := conn(ctx, r.pool).QueryRow(ctx,
		`SELECT COUNT(*) FROM appointment_note WHERE client_group_id = $1`, groupID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := conn(ctx, r.pool).Query(ctx,
		`SELECT `+noteCols+` FROM appointment_note WHERE client_group_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		groupID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*AppointmentNote
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, n)
	}
	return items, total, rows.Err()
}

func (r *noteRepoPG) ListByAppointment(ctx context.Context, appointmentID uuid.UUID) ([]*AppointmentNote, error) {
	rows, err := conn(ctx, r.pool).Query(ctx,
		`SELECT `+noteCols+` FROM appointment_note WHERE appointment_id = $1 ORDER BY created_at`, appointmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*AppointmentNote
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, n)
	}
	return items, rows.Err()
}

// =========== Plan Repository ===========

type planRepoPG struct{ pool *pgxpool.Pool }

func NewPlanRepoPG(pool *pgxpool.Pool) PlanRepository { return &planRepoPG{pool: pool} }

const planCols = `id, client_id, client_group_id, title, diagnoses, goals, objectives,
	interventions, created_at, updated_at`

func scanPlan(row pgx.Row) (*DiagnosisTreatmentPlan, error) {
	var p DiagnosisTreatmentPlan
	var diagnoses []byte
	err := row.Scan(&p.ID, &p.ClientID, &p.ClientGroupID, &p.Title, &diagnoses, &p.Goals,
		&p.Objectives, &p.Interventions, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(diagnoses) > 0 {
		if err := json.Unmarshal(diagnoses, &p.Diagnoses); err != nil {
			return nil, err
		}
	}
	return &p, nil
}

func (r *planRepoPG) Create(ctx context.Context, p *DiagnosisTreatmentPlan) error {
	p.ID = uuid.New()
	diagnoses, err := json.Marshal(p.Diagnoses)
	if err != nil {
		return err
	}
	_, err = conn(ctx, r.pool).Exec(ctx, `
		INSERT INTO diagnosis_treatment_plan (id, client_id, client_group_id, title, diagnoses, goals, objectives, interventions)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		p.ID, p.ClientID, p.ClientGroupID, p.Title, diagnoses, p.Goals, p.Objectives, p.Interventions)
	return err
}

func (r *planRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*DiagnosisTreatmentPlan, error) {
	return scanPlan(conn(ctx, r.pool).QueryRow(ctx,
		`SELECT `+planCols+` FROM diagnosis_treatment_plan WHERE id = $1`, id))
}

func (r *planRepoPG) Update(ctx context.Context, p *DiagnosisTreatmentPlan) error {
	diagnoses, err := json.Marshal(p.Diagnoses)
	if err != nil {
		return err
	}
	_, err = conn(ctx, r.pool).Exec(ctx, `
		UPDATE diagnosis_treatment_plan SET title=$2, diagnoses=$3, goals=$4, objectives=$5,
			interventions=$6, updated_at=NOW()
		WHERE id = $1`,
		p.ID, p.Title, diagnoses, p.Goals, p.Objectives, p.Interventions)
	return err
}

func (r *planRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := conn(ctx, r.pool).Exec(ctx, `DELETE FROM diagnosis_treatment_plan WHERE id = $1`, id)
	return err
}

func (r *planRepoPG) ListByClient(ctx context.Context, clientID uuid.UUID, limit, offset int) ([]*DiagnosisTreatmentPlan, int, error) {
	var total int
	if err := conn(ctx, r.pool).QueryRow(ctx,
		`SELECT COUNT(*) FROM diagnosis_treatment_plan WHERE client_id = $1`, clientID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := conn(ctx, r.pool).Query(ctx,
		`SELECT `+planCols+` FROM diagnosis_treatment_plan WHERE client_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		clientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*DiagnosisTreatmentPlan
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, rows.Err()
}
