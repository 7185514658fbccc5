package billing

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

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

// =========== Report Repository ===========

type reportRepoPG struct{ pool *pgxpool.Pool }

func NewReportRepoPG(pool *pgxpool.Pool) ReportRepository { return &reportRepoPG{pool: pool} }

// responsibleClientCTE ranks each group's active members so exactly one
// client is attributed the group's appointments. A membership explicitly
// marked responsible wins; otherwise the oldest client record does.
const responsibleClientCTE = `
	WITH responsible AS (
		SELECT c.id, c.legal_first_name, c.legal_last_name, m.client_group_id,
			ROW_NUMBER() OVER (
				PARTITION BY m.client_group_id
				ORDER BY m.is_responsible_for_billing DESC NULLS LAST, c.created_at ASC
			) AS rn
		FROM client_group_membership m
		JOIN client c ON c.id = m.client_id
		WHERE c.is_active
	)`

const outstandingBalanceSQL = responsibleClientCTE + `
	SELECT r.id, r.legal_first_name, r.legal_last_name,
		COALESCE(SUM(COALESCE(a.appointment_fee, 0)), 0) AS total_service_amount,
		COALESCE(SUM(COALESCE(a.appointment_fee, 0) - COALESCE(a.write_off, 0) - COALESCE(a.adjustable_amount, 0)), 0) AS total_paid_amount,
		COALESCE(SUM(COALESCE(a.adjustable_amount, 0)), 0) AS total_outstanding_balance
	FROM responsible r
	JOIN appointment a ON a.client_group_id = r.client_group_id
	WHERE r.rn = 1
		AND a.status = 'completed'
		AND a.start_date BETWEEN $1 AND $2
	GROUP BY r.id, r.legal_first_name, r.legal_last_name
	ORDER BY r.legal_last_name, r.legal_first_name
	LIMIT $3 OFFSET $4`

const outstandingBalanceCountSQL = responsibleClientCTE + `
	SELECT COUNT(DISTINCT r.id)
	FROM responsible r
	JOIN appointment a ON a.client_group_id = r.client_group_id
	WHERE r.rn = 1
		AND a.status = 'completed'
		AND a.start_date BETWEEN $1 AND $2`

// OutstandingBalance runs the page query and the count query concurrently.
// Aggregates come back as numerics and are coerced to float64 for the wire.
func (r *reportRepoPG) OutstandingBalance(ctx context.Context, q ReportQuery) ([]*OutstandingBalanceRow, int, error) {
	var (
		items []*OutstandingBalanceRow
		total int
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		rows, err := r.pool.Query(gctx, outstandingBalanceSQL,
			q.Start, q.End, q.Page.RowsPerPage, q.Page.Offset())
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var row OutstandingBalanceRow
			var service, paid, outstanding decimal.Decimal
			if err := rows.Scan(&row.ClientID, &row.ClientLegalFirstName, &row.ClientLegalLastName,
				&service, &paid, &outstanding); err != nil {
				return err
			}
			row.TotalServiceAmount = service.InexactFloat64()
			row.TotalPaidAmount = paid.InexactFloat64()
			row.TotalOutstandingBalance = outstanding.InexactFloat64()
			items = append(items, &row)
		}
		return rows.Err()
	})

	g.Go(func() error {
		return r.pool.QueryRow(gctx, outstandingBalanceCountSQL, q.Start, q.End).Scan(&total)
	})

	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// =========== Estimate Repository ===========

type estimateRepoPG struct{ pool *pgxpool.Pool }

func NewEstimateRepoPG(pool *pgxpool.Pool) EstimateRepository { return &estimateRepoPG{pool: pool} }

const estimateCols = `id, client_group_id, clinician_id, provided_date, expiration_date,
	service_items, total_estimate, notes, created_at, updated_at`

func scanEstimate(row pgx.Row) (*GoodFaithEstimate, error) {
	var e GoodFaithEstimate
	var items []byte
	err := row.Scan(&e.ID, &e.ClientGroupID, &e.ClinicianID, &e.ProvidedDate, &e.ExpirationDate,
		&items, &e.TotalEstimate, &e.Notes, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(items) > 0 {
		if err := json.Unmarshal(items, &e.ServiceItems); err != nil {
			return nil, err
		}
	}
	return &e, nil
}

func (r *estimateRepoPG) Create(ctx context.Context, e *GoodFaithEstimate) error {
	e.ID = uuid.New()
	items, err := json.Marshal(e.ServiceItems)
	if err != nil {
		return err
	}
	_, err = conn(ctx, r.pool).Exec(ctx, `
		INSERT INTO good_faith_estimate (id, client_group_id, clinician_id, provided_date,
			expiration_date, service_items, total_estimate, notes)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		e.ID, e.ClientGroupID, e.ClinicianID, e.ProvidedDate,
		e.ExpirationDate, items, e.TotalEstimate, e.Notes)
	return err
}

func (r *estimateRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*GoodFaithEstimate, error) {
	return scanEstimate(conn(ctx, r.pool).QueryRow(ctx,
		`SELECT `+estimateCols+` FROM good_faith_estimate WHERE id = $1`, id))
}

func (r *estimateRepoPG) Update(ctx context.Context, e *GoodFaithEstimate) error {
	items, err := json.Marshal(e.ServiceItems)
	if err != nil {
		return err
	}
	_, err = conn(ctx, r.pool).Exec(ctx, `
		UPDATE good_faith_estimate SET clinician_id=$2, provided_date=$3, expiration_date=$4,
			service_items=$5, total_estimate=$6, notes=$7, updated_at=NOW()
		WHERE id = $1`,
		e.ID, e.ClinicianID, e.ProvidedDate, e.ExpirationDate, items, e.TotalEstimate, e.Notes)
	return err
}

func (r *estimateRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := conn(ctx, r.pool).Exec(ctx, `DELETE FROM good_faith_estimate WHERE id = $1`, id)
	return err
}

func (r *estimateRepoPG) ListByGroup(ctx context.Context, groupID uuid.UUID, limit, offset int) ([]*GoodFaithEstimate, int, error) {
	var total int
	if err := conn(ctx, r.pool).QueryRow(ctx,
		`SELECT COUNT(*) FROM good_faith_estimate WHERE client_group_id = $1`, groupID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := conn(ctx, r.pool).Query(ctx,
		`SELECT `+estimateCols+` FROM good_faith_estimate WHERE client_group_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		groupID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*GoodFaithEstimate
	for rows.Next() {
		e, err := scanEstimate(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, e)
	}
	return items, total, rows.Err()
}
