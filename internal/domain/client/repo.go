package client

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the persistence interface for clients.
type Repository interface {
	Create(ctx context.Context, c *Client) error
	GetByID(ctx context.Context, id uuid.UUID) (*Client, error)
	Update(ctx context.Context, c *Client) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, activeOnly bool, limit, offset int) ([]*Client, int, error)
}

// GroupRepository is the persistence interface for client groups and their
// memberships.
type GroupRepository interface {
	Create(ctx context.Context, g *ClientGroup) error
	GetByID(ctx context.Context, id uuid.UUID) (*ClientGroup, error)
	Update(ctx context.Context, g *ClientGroup) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*ClientGroup, int, error)
	AddMember(ctx context.Context, m *ClientGroupMembership) error
	RemoveMember(ctx context.Context, groupID, clientID uuid.UUID) error
	ListMembers(ctx context.Context, groupID uuid.UUID) ([]*GroupMember, error)
}
