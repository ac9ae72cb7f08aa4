package learning

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/mindsacademy/backend/internal/domain/catalog"
	"github.com/mindsacademy/backend/internal/domain/identity"
	"github.com/mindsacademy/backend/internal/domain/learning"
	"github.com/mindsacademy/backend/internal/domain/shared"
	"github.com/mindsacademy/backend/internal/infrastructure/email"
)

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.User, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]identity.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockEmailSender is a mock implementation of email.Sender
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) Send(ctx context.Context, msg email.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func newEmailHandlerFixtures(t *testing.T) (*identity.User, *catalog.Course, *learning.Enrollment) {
	t.Helper()

	user, err := identity.NewUser("Aluna Beatriz", "beatriz@example.com", "senha-segura-123")
	assert.NoError(t, err)

	course, err := catalog.NewCourse(uuid.New(), "Curso de Go", "", catalog.AudienceStudent)
	assert.NoError(t, err)

	enrollment := learning.NewEnrollment(user.ID, course.ID)
	return user, course, enrollment
}

func TestEnrollmentEmailHandler_EventTypes(t *testing.T) {
	handler := NewEnrollmentEmailHandler(nil, nil, nil, zap.NewNop())

	eventTypes := handler.EventTypes()
	assert.Len(t, eventTypes, 2)
	assert.Contains(t, eventTypes, learning.EventTypeEnrollmentCreated)
	assert.Contains(t, eventTypes, learning.EventTypeEnrollmentCompleted)
}

func TestEnrollmentEmailHandler_Handle_EnrollmentCreated(t *testing.T) {
	userRepo := new(MockUserRepository)
	courseRepo := new(MockCourseRepository)
	sender := new(MockEmailSender)
	handler := NewEnrollmentEmailHandler(userRepo, courseRepo, sender, zap.NewNop())
	ctx := context.Background()

	user, course, enrollment := newEmailHandlerFixtures(t)
	event := learning.NewEnrollmentCreatedEvent(enrollment)

	userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
	courseRepo.On("FindByID", ctx, course.ID).Return(course, nil)
	sender.On("Send", ctx, mock.MatchedBy(func(msg email.Message) bool {
		return msg.ToAddress == user.Email &&
			msg.Subject == "Matrícula confirmada: Curso de Go"
	})).Return(nil)

	err := handler.Handle(ctx, event)

	assert.NoError(t, err)
	sender.AssertExpectations(t)
}

func TestEnrollmentEmailHandler_Handle_EnrollmentCompleted(t *testing.T) {
	userRepo := new(MockUserRepository)
	courseRepo := new(MockCourseRepository)
	sender := new(MockEmailSender)
	handler := NewEnrollmentEmailHandler(userRepo, courseRepo, sender, zap.NewNop())
	ctx := context.Background()

	user, course, enrollment := newEmailHandlerFixtures(t)
	event := learning.NewEnrollmentCompletedEvent(enrollment)

	userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
	courseRepo.On("FindByID", ctx, course.ID).Return(course, nil)
	sender.On("Send", ctx, mock.MatchedBy(func(msg email.Message) bool {
		return msg.ToAddress == user.Email &&
			msg.Subject == "Parabéns! Você concluiu Curso de Go"
	})).Return(nil)

	err := handler.Handle(ctx, event)

	assert.NoError(t, err)
	sender.AssertExpectations(t)
}

func TestEnrollmentEmailHandler_Handle_UserLookupFails(t *testing.T) {
	userRepo := new(MockUserRepository)
	courseRepo := new(MockCourseRepository)
	sender := new(MockEmailSender)
	handler := NewEnrollmentEmailHandler(userRepo, courseRepo, sender, zap.NewNop())
	ctx := context.Background()

	_, _, enrollment := newEmailHandlerFixtures(t)
	event := learning.NewEnrollmentCreatedEvent(enrollment)

	userRepo.On("FindByID", ctx, enrollment.UserID).Return(nil, shared.ErrNotFound)

	err := handler.Handle(ctx, event)

	assert.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestEnrollmentEmailHandler_Handle_SendFailure(t *testing.T) {
	userRepo := new(MockUserRepository)
	courseRepo := new(MockCourseRepository)
	sender := new(MockEmailSender)
	handler := NewEnrollmentEmailHandler(userRepo, courseRepo, sender, zap.NewNop())
	ctx := context.Background()

	user, course, enrollment := newEmailHandlerFixtures(t)
	event := learning.NewEnrollmentCreatedEvent(enrollment)

	sendErr := errors.New("provider rejected message")
	userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
	courseRepo.On("FindByID", ctx, course.ID).Return(course, nil)
	sender.On("Send", ctx, mock.Anything).Return(sendErr)

	err := handler.Handle(ctx, event)

	assert.Error(t, err)
	assert.ErrorIs(t, err, sendErr)
}

func TestEnrollmentEmailHandler_Handle_WrongEventType(t *testing.T) {
	handler := NewEnrollmentEmailHandler(nil, nil, nil, zap.NewNop())

	err := handler.Handle(context.Background(), &learning.AssignmentCreatedEvent{})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected event type")
}
