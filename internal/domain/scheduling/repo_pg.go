package scheduling

import (
	"context"
	"fmt"
	"strings"

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

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

func (r *repoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const appointmentCols = `id, client_group_id, clinician_id, type, title, status,
	start_date, end_date, location_id, appointment_fee, write_off, adjustable_amount,
	is_telehealth, created_at, updated_at`

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var a Appointment
	err := row.Scan(&a.ID, &a.ClientGroupID, &a.ClinicianID, &a.Type, &a.Title, &a.Status,
		&a.StartDate, &a.EndDate, &a.LocationID, &a.AppointmentFee, &a.WriteOff, &a.AdjustableAmount,
		&a.IsTelehealth, &a.CreatedAt, &a.UpdatedAt)
	return &a, err
}

func (r *repoPG) Create(ctx context.Context, a *Appointment) error {
	a.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO appointment (id, client_group_id, clinician_id, type, title, status,
			start_date, end_date, location_id, appointment_fee, write_off, adjustable_amount, is_telehealth)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
		a.ID, a.ClientGroupID, a.ClinicianID, a.Type, a.Title, a.Status,
		a.StartDate, a.EndDate, a.LocationID, a.AppointmentFee, a.WriteOff, a.AdjustableAmount, a.IsTelehealth)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return scanAppointment(r.conn(ctx).QueryRow(ctx,
		`SELECT `+appointmentCols+` FROM appointment WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, a *Appointment) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE appointment SET clinician_id=$2, type=$3, title=$4, status=$5,
			start_date=$6, end_date=$7, location_id=$8, appointment_fee=$9,
			write_off=$10, adjustable_amount=$11, is_telehealth=$12, updated_at=NOW()
		WHERE id = $1`,
		a.ID, a.ClinicianID, a.Type, a.Title, a.Status,
		a.StartDate, a.EndDate, a.LocationID, a.AppointmentFee,
		a.WriteOff, a.AdjustableAmount, a.IsTelehealth)
	return err
}

func (r *repoPG) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	_, err := r.conn(ctx).Exec(ctx,
		`UPDATE appointment SET status=$2, updated_at=NOW() WHERE id = $1`, id, status)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM appointment WHERE id = $1`, id)
	return err
}

func (r *repoPG) List(ctx context.Context, f ListFilter, limit, offset int) ([]*Appointment, int, error) {
	var conds []string
	var args []interface{}

	add := func(cond string, v interface{}) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.ClientGroupID != uuid.Nil {
		add(`client_group_id = $%d`, f.ClientGroupID)
	}
	if f.ClinicianID != "" {
		add(`clinician_id = $%d`, f.ClinicianID)
	}
	if f.Status != "" {
		add(`status = $%d`, f.Status)
	}
	if !f.From.IsZero() {
		add(`start_date >= $%d`, f.From)
	}
	if !f.To.IsZero() {
		add(`start_date <= $%d`, f.To)
	}

	where := ``
	if len(conds) > 0 {
		where = ` WHERE ` + strings.Join(conds, ` AND `)
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM appointment`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	rows, err := r.conn(ctx).Query(ctx, fmt.Sprintf(
		`SELECT `+appointmentCols+` FROM appointment`+where+` ORDER BY start_date DESC LIMIT $%d OFFSET $%d`,
		len(args)-1, len(args)), args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, a)
	}
	return items, total, rows.Err()
}
