package documents

import (
	"context"
	"fmt"

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

const documentCols = `id, client_group_id, client_id, title, file_url, frequency, status,
	shared_at, completed_at, expires_at, created_at`

func scanDocument(row pgx.Row) (*SharedDocument, error) {
	var d SharedDocument
	err := row.Scan(&d.ID, &d.ClientGroupID, &d.ClientID, &d.Title, &d.FileURL, &d.Frequency,
		&d.Status, &d.SharedAt, &d.CompletedAt, &d.ExpiresAt, &d.CreatedAt)
	return &d, err
}

func (r *repoPG) Create(ctx context.Context, d *SharedDocument) error {
	d.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO shared_document (id, client_group_id, client_id, title, file_url, frequency, status, shared_at, expires_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,NOW(),$8)`,
		d.ID, d.ClientGroupID, d.ClientID, d.Title, d.FileURL, d.Frequency, d.Status, d.ExpiresAt)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*SharedDocument, error) {
	return scanDocument(r.conn(ctx).QueryRow(ctx,
		`SELECT `+documentCols+` FROM shared_document WHERE id = $1`, id))
}

func (r *repoPG) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	_, err := r.conn(ctx).Exec(ctx,
		`UPDATE shared_document SET status=$2 WHERE id = $1`, id, status)
	return err
}

func (r *repoPG) MarkCompleted(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE shared_document SET status='completed', completed_at=NOW()
		WHERE id = $1 AND status = 'pending'`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("document is not pending")
	}
	return nil
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM shared_document WHERE id = $1`, id)
	return err
}

func (r *repoPG) ListByGroup(ctx context.Context, groupID uuid.UUID, status string, limit, offset int) ([]*SharedDocument, int, error) {
	where := ` WHERE client_group_id = $1`
	args := []interface{}{groupID}
	if status != "" {
		args = append(args, status)
		where += ` AND status = $2`
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM shared_document`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	rows, err := r.conn(ctx).Query(ctx, fmt.Sprintf(
		`SELECT `+documentCols+` FROM shared_document`+where+` ORDER BY shared_at DESC LIMIT $%d OFFSET $%d`,
		len(args)-1, len(args)), args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*SharedDocument
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, d)
	}
	return items, total, rows.Err()
}
