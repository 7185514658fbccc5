package settings

import (
	"context"

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

// =========== Template Repository ===========

type templateRepoPG struct{ pool *pgxpool.Pool }

func NewTemplateRepoPG(pool *pgxpool.Pool) TemplateRepository { return &templateRepoPG{pool: pool} }

const templateCols = `id, name, type, subject, body, is_enabled, created_at, updated_at`

func scanTemplate(row pgx.Row) (*EmailTemplate, error) {
	var t EmailTemplate
	err := row.Scan(&t.ID, &t.Name, &t.Type, &t.Subject, &t.Body, &t.IsEnabled, &t.CreatedAt, &t.UpdatedAt)
	return &t, err
}

func (r *templateRepoPG) Create(ctx context.Context, t *EmailTemplate) error {
	t.ID = uuid.New()
	_, err := conn(ctx, r.pool).Exec(ctx, `
		INSERT INTO email_template (id, name, type, subject, body, is_enabled)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		t.ID, t.Name, t.Type, t.Subject, t.Body, t.IsEnabled)
	return err
}

func (r *templateRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*EmailTemplate, error) {
	return scanTemplate(conn(ctx, r.pool).QueryRow(ctx,
		`SELECT `+templateCols+` FROM email_template WHERE id = $1`, id))
}

func (r *templateRepoPG) GetByType(ctx context.Context, templateType string) (*EmailTemplate, error) {
	return scanTemplate(conn(ctx, r.pool).QueryRow(ctx,
		`SELECT `+templateCols+` FROM email_template WHERE type = $1 AND is_enabled ORDER BY updated_at DESC LIMIT 1`,
		templateType))
}

func (r *templateRepoPG) Update(ctx context.Context, t *EmailTemplate) error {
	_, err := conn(ctx, r.pool).Exec(ctx, `
		UPDATE email_template SET name=$2, type=$3, subject=$4, body=$5, is_enabled=$6, updated_at=NOW()
		WHERE id = $1`,
		t.ID, t.Name, t.Type, t.Subject, t.Body, t.IsEnabled)
	return err
}

func (r *templateRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := conn(ctx, r.pool).Exec(ctx, `DELETE FROM email_template WHERE id = $1`, id)
	return err
}

func (r *templateRepoPG) List(ctx context.Context) ([]*EmailTemplate, error) {
	rows, err := conn(ctx, r.pool).Query(ctx,
		`SELECT `+templateCols+` FROM email_template ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*EmailTemplate
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	return items, rows.Err()
}

// =========== Telehealth Repository ===========

type telehealthRepoPG struct{ pool *pgxpool.Pool }

func NewTelehealthRepoPG(pool *pgxpool.Pool) TelehealthRepository { return &telehealthRepoPG{pool: pool} }

func (r *telehealthRepoPG) Get(ctx context.Context) (*TelehealthSettings, error) {
	var s TelehealthSettings
	err := conn(ctx, r.pool).QueryRow(ctx, `
		SELECT id, is_enabled, provider, room_url_template, waiting_room_enabled, updated_at
		FROM telehealth_settings LIMIT 1`).
		Scan(&s.ID, &s.IsEnabled, &s.Provider, &s.RoomURLTemplate, &s.WaitingRoomEnabled, &s.UpdatedAt)
	if err == pgx.ErrNoRows {
		return &TelehealthSettings{}, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *telehealthRepoPG) Upsert(ctx context.Context, s *TelehealthSettings) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	// Single-row table: the unique index on (singleton) guarantees one row.
	_, err := conn(ctx, r.pool).Exec(ctx, `
		INSERT INTO telehealth_settings (id, singleton, is_enabled, provider, room_url_template, waiting_room_enabled)
		VALUES ($1, true, $2, $3, $4, $5)
		ON CONFLICT (singleton) DO UPDATE SET
			is_enabled = EXCLUDED.is_enabled,
			provider = EXCLUDED.provider,
			room_url_template = EXCLUDED.room_url_template,
			waiting_room_enabled = EXCLUDED.waiting_room_enabled,
			updated_at = NOW()`,
		s.ID, s.IsEnabled, s.Provider, s.RoomURLTemplate, s.WaitingRoomEnabled)
	return err
}

// =========== Address Repository ===========

type addressRepoPG struct{ pool *pgxpool.Pool }

func NewAddressRepoPG(pool *pgxpool.Pool) AddressRepository { return &addressRepoPG{pool: pool} }

const addressCols = `id, type, street, city, state, zip, updated_at`

func scanAddress(row pgx.Row) (*BillingAddress, error) {
	var a BillingAddress
	err := row.Scan(&a.ID, &a.Type, &a.Street, &a.City, &a.State, &a.Zip, &a.UpdatedAt)
	return &a, err
}

func (r *addressRepoPG) GetByType(ctx context.Context, addressType string) (*BillingAddress, error) {
	return scanAddress(conn(ctx, r.pool).QueryRow(ctx,
		`SELECT `+addressCols+` FROM billing_address WHERE type = $1`, addressType))
}

func (r *addressRepoPG) Upsert(ctx context.Context, a *BillingAddress) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	_, err := conn(ctx, r.pool).Exec(ctx, `
		INSERT INTO billing_address (id, type, street, city, state, zip)
		VALUES ($1,$2,$3,$4,$5,$6)
		ON CONFLICT (type) DO UPDATE SET
			street = EXCLUDED.street,
			city = EXCLUDED.city,
			state = EXCLUDED.state,
			zip = EXCLUDED.zip,
			updated_at = NOW()`,
		a.ID, a.Type, a.Street, a.City, a.State, a.Zip)
	return err
}

func (r *addressRepoPG) List(ctx context.Context) ([]*BillingAddress, error) {
	rows, err := conn(ctx, r.pool).Query(ctx,
		`SELECT `+addressCols+` FROM billing_address ORDER BY type`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*BillingAddress
	for rows.Next() {
		a, err := scanAddress(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, rows.Err()
}
