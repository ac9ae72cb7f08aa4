package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/mindsacademy/backend/internal/domain/identity"
	"github.com/mindsacademy/backend/internal/domain/shared"
)

// RegisterRequest represents a request to create a new account
type RegisterRequest struct {
	FullName string `json:"full_name" binding:"required,min=2,max=200"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

// LoginRequest represents a login attempt
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest carries a refresh token to exchange for a new pair
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ForgotPasswordRequest starts the password reset flow
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest completes the password reset flow
type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=72"`
}

// ChangePasswordRequest represents a password change for a logged-in user
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=72"`
}

// UpdateProfileRequest represents a profile update
type UpdateProfileRequest struct {
	FullName *string `json:"full_name" binding:"omitempty,min=2,max=200"`
	Bio      *string `json:"bio" binding:"omitempty,max=1000"`
	Avatar   *string `json:"avatar" binding:"omitempty,max=500"`
}

// AssignRoleRequest assigns or removes a role by name
type AssignRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=admin teacher student"`
}

// UserListFilter represents filter options for listing users
type UserListFilter struct {
	Search   string `form:"search"`
	Role     string `form:"role"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// buildFilter converts list filter options to a domain filter
func (f UserListFilter) buildFilter() shared.Filter {
	filter := shared.Filter{
		Filters: make(map[string]interface{}),
	}
	if f.Search != "" {
		filter.Search = f.Search
	}
	if f.Role != "" {
		filter.Filters["role"] = f.Role
	}
	if f.Page > 0 && f.PageSize > 0 {
		filter.Page = f.Page
		filter.PageSize = f.PageSize
	} else {
		defaults := shared.DefaultFilter()
		filter.Page = defaults.Page
		filter.PageSize = defaults.PageSize
	}
	filter.OrderBy = "created_at"
	filter.OrderDir = "desc"
	return filter
}

// UserResponse represents a user in API responses
type UserResponse struct {
	ID          uuid.UUID  `json:"id"`
	FullName    string     `json:"full_name"`
	Email       string     `json:"email"`
	Avatar      string     `json:"avatar,omitempty"`
	Bio         string     `json:"bio,omitempty"`
	Active      bool       `json:"active"`
	Roles       []string   `json:"roles"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// LoginResponse represents a successful authentication
type LoginResponse struct {
	AccessToken           string       `json:"access_token"`
	RefreshToken          string       `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time    `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time    `json:"refresh_token_expires_at"`
	TokenType             string       `json:"token_type"`
	User                  UserResponse `json:"user"`
}

// RoleResponse represents a role in API responses
type RoleResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
}

// ToUserResponse converts a user aggregate to a response DTO.
// Role names are resolved separately by the repository.
func ToUserResponse(user *identity.User, roles []string) UserResponse {
	if roles == nil {
		roles = []string{}
	}
	return UserResponse{
		ID:          user.ID,
		FullName:    user.FullName,
		Email:       user.Email,
		Avatar:      user.Avatar,
		Bio:         user.Bio,
		Active:      user.Active,
		Roles:       roles,
		LastLoginAt: user.LastLoginAt,
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	}
}

// ToRoleResponse converts a role to a response DTO
func ToRoleResponse(role *identity.Role) RoleResponse {
	return RoleResponse{
		ID:          role.ID,
		Name:        role.Name,
		Description: role.Description,
	}
}
