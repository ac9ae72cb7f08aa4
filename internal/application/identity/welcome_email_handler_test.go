package identity

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/mindsacademy/backend/internal/domain/identity"
	"github.com/mindsacademy/backend/internal/infrastructure/email"
)

// MockEmailSender is a mock implementation of email.Sender
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) Send(ctx context.Context, msg email.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func TestWelcomeEmailHandler_EventTypes(t *testing.T) {
	handler := NewWelcomeEmailHandler(nil, zap.NewNop())

	eventTypes := handler.EventTypes()
	assert.Len(t, eventTypes, 1)
	assert.Equal(t, identity.EventTypeUserRegistered, eventTypes[0])
}

func TestWelcomeEmailHandler_Handle_Success(t *testing.T) {
	sender := new(MockEmailSender)
	handler := NewWelcomeEmailHandler(sender, zap.NewNop())
	ctx := context.Background()

	user, err := identity.NewUser("João da Silva", "joao@example.com", "senha-segura-123")
	assert.NoError(t, err)
	event := identity.NewUserRegisteredEvent(user)

	sender.On("Send", ctx, mock.MatchedBy(func(msg email.Message) bool {
		return msg.ToAddress == "joao@example.com" &&
			msg.Subject == "Bem-vindo à Minds Academy!"
	})).Return(nil)

	err = handler.Handle(ctx, event)

	assert.NoError(t, err)
	sender.AssertExpectations(t)
}

func TestWelcomeEmailHandler_Handle_SendFailure(t *testing.T) {
	sender := new(MockEmailSender)
	handler := NewWelcomeEmailHandler(sender, zap.NewNop())
	ctx := context.Background()

	user, err := identity.NewUser("Maria Souza", "maria@example.com", "senha-segura-123")
	assert.NoError(t, err)
	event := identity.NewUserRegisteredEvent(user)

	sendErr := errors.New("smtp unavailable")
	sender.On("Send", ctx, mock.Anything).Return(sendErr)

	err = handler.Handle(ctx, event)

	assert.Error(t, err)
	assert.ErrorIs(t, err, sendErr)
}

func TestWelcomeEmailHandler_Handle_WrongEventType(t *testing.T) {
	sender := new(MockEmailSender)
	handler := NewWelcomeEmailHandler(sender, zap.NewNop())

	user, err := identity.NewUser("Pedro Lima", "pedro@example.com", "senha-segura-123")
	assert.NoError(t, err)
	event := identity.NewUserPasswordChangedEvent(user)

	err = handler.Handle(context.Background(), event)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected event type")
	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}
