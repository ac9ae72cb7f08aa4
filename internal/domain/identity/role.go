package identity

import (
	"strings"
	"time"

	"github.com/mindsacademy/backend/internal/domain/shared"
)

// Role names known to the platform
const (
	RoleAdmin   = "admin"
	RoleTeacher = "teacher"
	RoleStudent = "student"
)

// DefaultRoleName is assigned when a user's role cannot be resolved
const DefaultRoleName = RoleStudent

// Role represents a named set of permissions
type Role struct {
	shared.BaseAggregateRoot
	Name        string `gorm:"type:varchar(50);not null;uniqueIndex"`
	Description string `gorm:"type:varchar(200)"`
}

// TableName returns the table name for GORM
func (Role) TableName() string {
	return "role"
}

// NewRole creates a new role
func NewRole(name, description string) (*Role, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if !IsValidRoleName(name) {
		return nil, shared.NewDomainError("INVALID_ROLE_NAME", "Role name must be admin, teacher or student")
	}

	role := &Role{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Description:       description,
	}

	role.AddDomainEvent(NewRoleCreatedEvent(role))

	return role, nil
}

// SetDescription sets the role description
func (r *Role) SetDescription(description string) error {
	if len(description) > 200 {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot exceed 200 characters")
	}

	r.Description = description
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	return nil
}

// IsValidRoleName reports whether name is one of the known role names
func IsValidRoleName(name string) bool {
	switch name {
	case RoleAdmin, RoleTeacher, RoleStudent:
		return true
	}
	return false
}

// ResolveRoleName maps an arbitrary role string to a known role name,
// falling back to the default role when unresolved
func ResolveRoleName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if IsValidRoleName(name) {
		return name
	}
	return DefaultRoleName
}

// HasRoleName reports whether names contains the wanted role
func HasRoleName(names []string, wanted string) bool {
	for _, n := range names {
		if n == wanted {
			return true
		}
	}
	return false
}
