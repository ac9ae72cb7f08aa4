package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/mindsacademy/backend/internal/domain/shared"
)

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// FindByID finds a user by ID, with roles loaded
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByEmail finds a user by email, with roles loaded
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindAll finds all users matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]User, error)

	// ExistsByEmail checks if a user with the given email exists
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// Save creates or updates a user and replaces its role assignments
	Save(ctx context.Context, user *User) error

	// Delete deletes a user
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts users matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// RoleRepository defines the interface for role persistence
type RoleRepository interface {
	// FindByID finds a role by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Role, error)

	// FindByName finds a role by its unique name
	FindByName(ctx context.Context, name string) (*Role, error)

	// FindAll returns all roles
	FindAll(ctx context.Context) ([]Role, error)

	// FindNamesByUser returns the role names assigned to a user
	FindNamesByUser(ctx context.Context, userID uuid.UUID) ([]string, error)

	// Save creates or updates a role
	Save(ctx context.Context, role *Role) error
}
