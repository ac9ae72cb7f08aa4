package identity

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mindsacademy/backend/internal/domain/catalog"
	"github.com/mindsacademy/backend/internal/domain/identity"
	"github.com/mindsacademy/backend/internal/domain/shared"
)

func adminViewer() catalog.Viewer {
	return catalog.Viewer{UserID: uuid.MustParse("11111111-1111-1111-1111-111111111111"), IsAdmin: true}
}

func studentViewer() catalog.Viewer {
	return catalog.Viewer{UserID: uuid.MustParse("22222222-2222-2222-2222-222222222222")}
}

func newUserService() (*UserService, *MockUserRepository, *MockRoleRepository) {
	userRepo := new(MockUserRepository)
	roleRepo := new(MockRoleRepository)
	return NewUserService(userRepo, roleRepo), userRepo, roleRepo
}

func TestUserService_List_AdminOnly(t *testing.T) {
	service, _, _ := newUserService()

	_, _, err := service.List(context.Background(), studentViewer(), UserListFilter{})

	assert.ErrorIs(t, err, shared.ErrForbidden)
}

func TestUserService_List_Success(t *testing.T) {
	service, userRepo, roleRepo := newUserService()
	ctx := context.Background()
	user := createTestUser(t, "senha-segura-123")

	userRepo.On("FindAll", ctx, mock.AnythingOfType("shared.Filter")).Return([]identity.User{*user}, nil)
	userRepo.On("Count", ctx, mock.AnythingOfType("shared.Filter")).Return(int64(1), nil)
	roleRepo.On("FindNamesByUser", ctx, user.ID).Return([]string{identity.RoleStudent}, nil)

	users, total, err := service.List(ctx, adminViewer(), UserListFilter{})

	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, users, 1)
	assert.Equal(t, []string{identity.RoleStudent}, users[0].Roles)
}

func TestUserService_GetByID_SelfAllowed(t *testing.T) {
	service, userRepo, roleRepo := newUserService()
	ctx := context.Background()
	user := createTestUser(t, "senha-segura-123")
	viewer := catalog.Viewer{UserID: user.ID}

	userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
	roleRepo.On("FindNamesByUser", ctx, user.ID).Return([]string{identity.RoleStudent}, nil)

	result, err := service.GetByID(ctx, viewer, user.ID)

	require.NoError(t, err)
	assert.Equal(t, user.Email, result.Email)
}

func TestUserService_GetByID_OtherUserForbidden(t *testing.T) {
	service, _, _ := newUserService()

	_, err := service.GetByID(context.Background(), studentViewer(), uuid.New())

	assert.ErrorIs(t, err, shared.ErrForbidden)
}

func TestUserService_UpdateProfile_PartialFields(t *testing.T) {
	service, userRepo, roleRepo := newUserService()
	ctx := context.Background()
	user := createTestUser(t, "senha-segura-123")
	originalName := user.FullName

	userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
	userRepo.On("Save", ctx, user).Return(nil)
	roleRepo.On("FindNamesByUser", ctx, user.ID).Return([]string{identity.RoleStudent}, nil)

	bio := "Professora de matemática há 10 anos"
	result, err := service.UpdateProfile(ctx, user.ID, UpdateProfileRequest{Bio: &bio})

	require.NoError(t, err)
	assert.Equal(t, originalName, result.FullName)
	assert.Equal(t, bio, result.Bio)
}

func TestUserService_Deactivate_Success(t *testing.T) {
	service, userRepo, _ := newUserService()
	ctx := context.Background()
	user := createTestUser(t, "senha-segura-123")

	userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
	userRepo.On("Save", ctx, user).Return(nil)

	err := service.Deactivate(ctx, adminViewer(), user.ID)

	require.NoError(t, err)
	assert.False(t, user.Active)
}

func TestUserService_Deactivate_SelfRejected(t *testing.T) {
	service, _, _ := newUserService()
	viewer := adminViewer()

	err := service.Deactivate(context.Background(), viewer, viewer.UserID)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "CANNOT_DEACTIVATE_SELF", domainErr.Code)
}

func TestUserService_AssignRole_Success(t *testing.T) {
	service, userRepo, roleRepo := newUserService()
	ctx := context.Background()
	user := createTestUser(t, "senha-segura-123")
	teacherRole, err := identity.NewRole(identity.RoleTeacher, "")
	require.NoError(t, err)
	teacherRole.ClearDomainEvents()

	userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
	roleRepo.On("FindByName", ctx, identity.RoleTeacher).Return(teacherRole, nil)
	userRepo.On("Save", ctx, user).Return(nil)
	roleRepo.On("FindNamesByUser", ctx, user.ID).Return([]string{identity.RoleStudent, identity.RoleTeacher}, nil)

	result, err := service.AssignRole(ctx, adminViewer(), user.ID, AssignRoleRequest{Role: identity.RoleTeacher})

	require.NoError(t, err)
	assert.True(t, user.HasRole(teacherRole.ID))
	assert.Contains(t, result.Roles, identity.RoleTeacher)
}

func TestUserService_AssignRole_NonAdminForbidden(t *testing.T) {
	service, userRepo, _ := newUserService()

	_, err := service.AssignRole(context.Background(), studentViewer(), uuid.New(), AssignRoleRequest{Role: identity.RoleTeacher})

	assert.ErrorIs(t, err, shared.ErrForbidden)
	userRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestUserService_RemoveRole_Success(t *testing.T) {
	service, userRepo, roleRepo := newUserService()
	ctx := context.Background()
	user := createTestUser(t, "senha-segura-123")
	teacherRole, err := identity.NewRole(identity.RoleTeacher, "")
	require.NoError(t, err)
	teacherRole.ClearDomainEvents()
	require.NoError(t, user.AssignRole(teacherRole.ID))
	user.ClearDomainEvents()

	userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
	roleRepo.On("FindByName", ctx, identity.RoleTeacher).Return(teacherRole, nil)
	userRepo.On("Save", ctx, user).Return(nil)
	roleRepo.On("FindNamesByUser", ctx, user.ID).Return([]string{identity.RoleStudent}, nil)

	result, err := service.RemoveRole(ctx, adminViewer(), user.ID, identity.RoleTeacher)

	require.NoError(t, err)
	assert.False(t, user.HasRole(teacherRole.ID))
	assert.NotContains(t, result.Roles, identity.RoleTeacher)
}

func TestRoleService_EnsureDefaults_CreatesMissing(t *testing.T) {
	roleRepo := new(MockRoleRepository)
	service := NewRoleService(roleRepo)
	ctx := context.Background()
	admin, err := identity.NewRole(identity.RoleAdmin, "")
	require.NoError(t, err)

	roleRepo.On("FindByName", ctx, identity.RoleAdmin).Return(admin, nil)
	roleRepo.On("FindByName", ctx, identity.RoleTeacher).Return(nil, shared.ErrNotFound)
	roleRepo.On("FindByName", ctx, identity.RoleStudent).Return(nil, shared.ErrNotFound)
	roleRepo.On("Save", ctx, mock.AnythingOfType("*identity.Role")).Return(nil).Twice()

	require.NoError(t, service.EnsureDefaults(ctx))
	roleRepo.AssertExpectations(t)
}
