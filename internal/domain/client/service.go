package client

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type Service struct {
	clients Repository
	groups  GroupRepository
}

func NewService(clients Repository, groups GroupRepository) *Service {
	return &Service{clients: clients, groups: groups}
}

var validGroupTypes = map[string]bool{
	"individual": true, "couple": true, "family": true, "minor": true,
}

var validMemberRoles = map[string]bool{
	"primary": true, "spouse": true, "child": true, "parent": true, "other": true,
}

// -- Client --

func (s *Service) CreateClient(ctx context.Context, c *Client) error {
	if c.LegalFirstName == "" {
		return fmt.Errorf("legal_first_name is required")
	}
	if c.LegalLastName == "" {
		return fmt.Errorf("legal_last_name is required")
	}
	c.IsActive = true
	return s.clients.Create(ctx, c)
}

func (s *Service) GetClient(ctx context.Context, id uuid.UUID) (*Client, error) {
	return s.clients.GetByID(ctx, id)
}

func (s *Service) UpdateClient(ctx context.Context, c *Client) error {
	if c.LegalFirstName == "" || c.LegalLastName == "" {
		return fmt.Errorf("legal names are required")
	}
	return s.clients.Update(ctx, c)
}

// DeactivateClient marks a client inactive without removing history. Inactive
// clients drop out of billing attribution.
func (s *Service) DeactivateClient(ctx context.Context, id uuid.UUID) error {
	c, err := s.clients.GetByID(ctx, id)
	if err != nil {
		return err
	}
	c.IsActive = false
	return s.clients.Update(ctx, c)
}

func (s *Service) DeleteClient(ctx context.Context, id uuid.UUID) error {
	return s.clients.Delete(ctx, id)
}

func (s *Service) ListClients(ctx context.Context, activeOnly bool, limit, offset int) ([]*Client, int, error) {
	return s.clients.List(ctx, activeOnly, limit, offset)
}

// -- ClientGroup --

func (s *Service) CreateGroup(ctx context.Context, g *ClientGroup) error {
	if g.Type == "" {
		g.Type = "individual"
	}
	if !validGroupTypes[g.Type] {
		return fmt.Errorf("invalid group type: %s", g.Type)
	}
	if g.Name == "" {
		return fmt.Errorf("name is required")
	}
	return s.groups.Create(ctx, g)
}

func (s *Service) GetGroup(ctx context.Context, id uuid.UUID) (*ClientGroup, error) {
	return s.groups.GetByID(ctx, id)
}

func (s *Service) UpdateGroup(ctx context.Context, g *ClientGroup) error {
	if g.Type != "" && !validGroupTypes[g.Type] {
		return fmt.Errorf("invalid group type: %s", g.Type)
	}
	return s.groups.Update(ctx, g)
}

func (s *Service) DeleteGroup(ctx context.Context, id uuid.UUID) error {
	return s.groups.Delete(ctx, id)
}

func (s *Service) ListGroups(ctx context.Context, limit, offset int) ([]*ClientGroup, int, error) {
	return s.groups.List(ctx, limit, offset)
}

// -- Membership --

func (s *Service) AddMember(ctx context.Context, m *ClientGroupMembership) error {
	if m.ClientGroupID == uuid.Nil {
		return fmt.Errorf("client_group_id is required")
	}
	if m.ClientID == uuid.Nil {
		return fmt.Errorf("client_id is required")
	}
	if m.Role != nil && !validMemberRoles[*m.Role] {
		return fmt.Errorf("invalid member role: %s", *m.Role)
	}
	if _, err := s.clients.GetByID(ctx, m.ClientID); err != nil {
		return fmt.Errorf("client not found")
	}
	return s.groups.AddMember(ctx, m)
}

func (s *Service) RemoveMember(ctx context.Context, groupID, clientID uuid.UUID) error {
	return s.groups.RemoveMember(ctx, groupID, clientID)
}

func (s *Service) ListMembers(ctx context.Context, groupID uuid.UUID) ([]*GroupMember, error) {
	return s.groups.ListMembers(ctx, groupID)
}
