package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/mindsacademy/backend/internal/domain/catalog"
	"github.com/mindsacademy/backend/internal/domain/identity"
	"github.com/mindsacademy/backend/internal/domain/shared"
)

// UserService handles user administration and profile management
type UserService struct {
	userRepo       identity.UserRepository
	roleRepo       identity.RoleRepository
	eventPublisher shared.EventPublisher
}

// NewUserService creates a new user service
func NewUserService(userRepo identity.UserRepository, roleRepo identity.RoleRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
		roleRepo: roleRepo,
	}
}

// SetEventPublisher sets the event publisher for domain events
func (s *UserService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// List returns users matching the filter. Admin only.
func (s *UserService) List(ctx context.Context, viewer catalog.Viewer, filter UserListFilter) ([]UserResponse, int64, error) {
	if !viewer.IsAdmin {
		return nil, 0, shared.ErrForbidden
	}

	domainFilter := filter.buildFilter()
	users, err := s.userRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.userRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]UserResponse, len(users))
	for i := range users {
		roles, err := s.roleRepo.FindNamesByUser(ctx, users[i].ID)
		if err != nil {
			return nil, 0, err
		}
		responses[i] = ToUserResponse(&users[i], roles)
	}
	return responses, total, nil
}

// GetByID returns a single user. Admins see anyone, others only themselves.
func (s *UserService) GetByID(ctx context.Context, viewer catalog.Viewer, id uuid.UUID) (*UserResponse, error) {
	if !viewer.IsAdmin && viewer.UserID != id {
		return nil, shared.ErrForbidden
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	roles, err := s.roleRepo.FindNamesByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	response := ToUserResponse(user, roles)
	return &response, nil
}

// UpdateProfile updates the caller's own profile fields
func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	fullName := user.FullName
	bio := user.Bio
	if req.FullName != nil {
		fullName = *req.FullName
	}
	if req.Bio != nil {
		bio = *req.Bio
	}
	if err := user.UpdateProfile(fullName, bio); err != nil {
		return nil, err
	}
	if req.Avatar != nil {
		if err := user.SetAvatar(*req.Avatar); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	roles, err := s.roleRepo.FindNamesByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	response := ToUserResponse(user, roles)
	return &response, nil
}

// Activate re-enables a deactivated account. Admin only.
func (s *UserService) Activate(ctx context.Context, viewer catalog.Viewer, id uuid.UUID) error {
	if !viewer.IsAdmin {
		return shared.ErrForbidden
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := user.Activate(); err != nil {
		return err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return err
	}
	s.publishEvents(ctx, user)
	return nil
}

// Deactivate disables an account. Admin only, and admins cannot
// deactivate themselves.
func (s *UserService) Deactivate(ctx context.Context, viewer catalog.Viewer, id uuid.UUID) error {
	if !viewer.IsAdmin {
		return shared.ErrForbidden
	}
	if viewer.UserID == id {
		return shared.NewDomainError("CANNOT_DEACTIVATE_SELF", "You cannot deactivate your own account")
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := user.Deactivate(); err != nil {
		return err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return err
	}
	s.publishEvents(ctx, user)
	return nil
}

// AssignRole grants a role by name. Admin only.
func (s *UserService) AssignRole(ctx context.Context, viewer catalog.Viewer, id uuid.UUID, req AssignRoleRequest) (*UserResponse, error) {
	if !viewer.IsAdmin {
		return nil, shared.ErrForbidden
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	role, err := s.roleRepo.FindByName(ctx, req.Role)
	if err != nil {
		return nil, err
	}
	if err := user.AssignRole(role.ID); err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, user)

	roles, err := s.roleRepo.FindNamesByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	response := ToUserResponse(user, roles)
	return &response, nil
}

// RemoveRole revokes a role by name. Admin only.
func (s *UserService) RemoveRole(ctx context.Context, viewer catalog.Viewer, id uuid.UUID, roleName string) (*UserResponse, error) {
	if !viewer.IsAdmin {
		return nil, shared.ErrForbidden
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	role, err := s.roleRepo.FindByName(ctx, roleName)
	if err != nil {
		return nil, err
	}
	if err := user.RemoveRole(role.ID); err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, user)

	roles, err := s.roleRepo.FindNamesByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	response := ToUserResponse(user, roles)
	return &response, nil
}

// Delete removes an account permanently. Admin only.
func (s *UserService) Delete(ctx context.Context, viewer catalog.Viewer, id uuid.UUID) error {
	if !viewer.IsAdmin {
		return shared.ErrForbidden
	}
	if viewer.UserID == id {
		return shared.NewDomainError("CANNOT_DELETE_SELF", "You cannot delete your own account")
	}

	if _, err := s.userRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, id)
}

func (s *UserService) publishEvents(ctx context.Context, user *identity.User) {
	if s.eventPublisher == nil {
		return
	}
	events := user.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	// Errors are logged by the event bus, not propagated
	_ = s.eventPublisher.Publish(ctx, events...)
	user.ClearDomainEvents()
}
