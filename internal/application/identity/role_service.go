package identity

import (
	"context"

	"github.com/mindsacademy/backend/internal/domain/catalog"
	"github.com/mindsacademy/backend/internal/domain/identity"
	"github.com/mindsacademy/backend/internal/domain/shared"
)

// RoleService exposes the fixed role catalog
type RoleService struct {
	roleRepo identity.RoleRepository
}

// NewRoleService creates a new role service
func NewRoleService(roleRepo identity.RoleRepository) *RoleService {
	return &RoleService{roleRepo: roleRepo}
}

// List returns all roles. Admin only.
func (s *RoleService) List(ctx context.Context, viewer catalog.Viewer) ([]RoleResponse, error) {
	if !viewer.IsAdmin {
		return nil, shared.ErrForbidden
	}

	roles, err := s.roleRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]RoleResponse, len(roles))
	for i := range roles {
		responses[i] = ToRoleResponse(&roles[i])
	}
	return responses, nil
}

// EnsureDefaults creates the built-in roles when they are missing.
// Called on startup so a fresh database can register users.
func (s *RoleService) EnsureDefaults(ctx context.Context) error {
	defaults := map[string]string{
		identity.RoleAdmin:   "Full administrative access",
		identity.RoleTeacher: "Creates and manages courses, assignments and articles",
		identity.RoleStudent: "Enrolls in courses and submits assignments",
	}

	for name, description := range defaults {
		if _, err := s.roleRepo.FindByName(ctx, name); err == nil {
			continue
		}
		role, err := identity.NewRole(name, description)
		if err != nil {
			return err
		}
		if err := s.roleRepo.Save(ctx, role); err != nil {
			return err
		}
	}
	return nil
}
