package client

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

// =========== Client Repository ===========

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

const clientCols = `id, legal_first_name, legal_last_name, preferred_name,
	email, phone, date_of_birth, is_active, is_waitlist, created_at, updated_at`

func scanClient(row pgx.Row) (*Client, error) {
	var c Client
	err := row.Scan(&c.ID, &c.LegalFirstName, &c.LegalLastName, &c.PreferredName,
		&c.Email, &c.Phone, &c.DateOfBirth, &c.IsActive, &c.IsWaitlist, &c.CreatedAt, &c.UpdatedAt)
	return &c, err
}

func (r *repoPG) Create(ctx context.Context, c *Client) error {
	c.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO client (id, legal_first_name, legal_last_name, preferred_name,
			email, phone, date_of_birth, is_active, is_waitlist)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		c.ID, c.LegalFirstName, c.LegalLastName, c.PreferredName,
		c.Email, c.Phone, c.DateOfBirth, c.IsActive, c.IsWaitlist)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Client, error) {
	return scanClient(r.conn(ctx).QueryRow(ctx, `SELECT `+clientCols+` FROM client WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, c *Client) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE client SET legal_first_name=$2, legal_last_name=$3, preferred_name=$4,
			email=$5, phone=$6, date_of_birth=$7, is_active=$8, is_waitlist=$9, updated_at=NOW()
		WHERE id = $1`,
		c.ID, c.LegalFirstName, c.LegalLastName, c.PreferredName,
		c.Email, c.Phone, c.DateOfBirth, c.IsActive, c.IsWaitlist)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM client WHERE id = $1`, id)
	return err
}

func (r *repoPG) List(ctx context.Context, activeOnly bool, limit, offset int) ([]*Client, int, error) {
	where := ``
	if activeOnly {
		where = ` WHERE is_active`
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM client`+where).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+clientCols+` FROM client`+where+` ORDER BY legal_last_name, legal_first_name LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, c)
	}
	return items, total, rows.Err()
}

// =========== Group Repository ===========

type groupRepoPG struct{ pool *pgxpool.Pool }

func NewGroupRepoPG(pool *pgxpool.Pool) GroupRepository { return &groupRepoPG{pool: pool} }

func (r *groupRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const groupCols = `id, type, name, available_credit, created_at`

func scanGroup(row pgx.Row) (*ClientGroup, error) {
	var g ClientGroup
	err := row.Scan(&g.ID, &g.Type, &g.Name, &g.AvailableCredit, &g.CreatedAt)
	return &g, err
}

func (r *groupRepoPG) Create(ctx context.Context, g *ClientGroup) error {
	g.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO client_group (id, type, name, available_credit)
		VALUES ($1,$2,$3,$4)`,
		g.ID, g.Type, g.Name, g.AvailableCredit)
	return err
}

func (r *groupRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*ClientGroup, error) {
	return scanGroup(r.conn(ctx).QueryRow(ctx, `SELECT `+groupCols+` FROM client_group WHERE id = $1`, id))
}

func (r *groupRepoPG) Update(ctx context.Context, g *ClientGroup) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE client_group SET type=$2, name=$3, available_credit=$4 WHERE id = $1`,
		g.ID, g.Type, g.Name, g.AvailableCredit)
	return err
}

func (r *groupRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM client_group WHERE id = $1`, id)
	return err
}

func (r *groupRepoPG) List(ctx context.Context, limit, offset int) ([]*ClientGroup, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM client_group`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+groupCols+` FROM client_group ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*ClientGroup
	for rows.Next() {
		g, err := scanGroup(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, g)
	}
	return items, total, rows.Err()
}

func (r *groupRepoPG) AddMember(ctx context.Context, m *ClientGroupMembership) error {
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO client_group_membership (client_group_id, client_id, role, is_responsible_for_billing, is_contact_only)
		VALUES ($1,$2,$3,$4,$5)`,
		m.ClientGroupID, m.ClientID, m.Role, m.IsResponsibleForBilling, m.IsContactOnly)
	return err
}

func (r *groupRepoPG) RemoveMember(ctx context.Context, groupID, clientID uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx,
		`DELETE FROM client_group_membership WHERE client_group_id = $1 AND client_id = $2`,
		groupID, clientID)
	return err
}

func (r *groupRepoPG) ListMembers(ctx context.Context, groupID uuid.UUID) ([]*GroupMember, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT m.client_group_id, m.client_id, m.role, m.is_responsible_for_billing, m.is_contact_only, m.created_at,
			`+prefixedClientCols("c")+`
		FROM client_group_membership m
		JOIN client c ON c.id = m.client_id
		WHERE m.client_group_id = $1
		ORDER BY m.created_at`, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*GroupMember
	for rows.Next() {
		var gm GroupMember
		err := rows.Scan(&gm.ClientGroupID, &gm.ClientID, &gm.Role, &gm.IsResponsibleForBilling, &gm.IsContactOnly, &gm.CreatedAt,
			&gm.Client.ID, &gm.Client.LegalFirstName, &gm.Client.LegalLastName, &gm.Client.PreferredName,
			&gm.Client.Email, &gm.Client.Phone, &gm.Client.DateOfBirth, &gm.Client.IsActive, &gm.Client.IsWaitlist,
			&gm.Client.CreatedAt, &gm.Client.UpdatedAt)
		if err != nil {
			return nil, err
		}
		items = append(items, &gm)
	}
	return items, rows.Err()
}

func prefixedClientCols(alias string) string {
	return alias + `.id, ` + alias + `.legal_first_name, ` + alias + `.legal_last_name, ` + alias + `.preferred_name,
		` + alias + `.email, ` + alias + `.phone, ` + alias + `.date_of_birth, ` + alias + `.is_active, ` + alias + `.is_waitlist,
		` + alias + `.created_at, ` + alias + `.updated_at`
}
