package identity

import (
	"context"
	"fmt"

	"github.com/mindsacademy/backend/internal/domain/identity"
	"github.com/mindsacademy/backend/internal/domain/shared"
	"github.com/mindsacademy/backend/internal/infrastructure/email"
	"go.uber.org/zap"
)

// WelcomeEmailHandler handles UserRegisteredEvent and sends the
// welcome email to newly registered students.
type WelcomeEmailHandler struct {
	sender email.Sender
	logger *zap.Logger
}

// NewWelcomeEmailHandler creates a new handler for user registered events.
func NewWelcomeEmailHandler(sender email.Sender, logger *zap.Logger) *WelcomeEmailHandler {
	return &WelcomeEmailHandler{
		sender: sender,
		logger: logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *WelcomeEmailHandler) EventTypes() []string {
	return []string{identity.EventTypeUserRegistered}
}

// Handle processes a UserRegisteredEvent by sending the welcome email.
// Delivery failures are returned so the event bus can log them; the
// registration itself has already committed and is never rolled back.
func (h *WelcomeEmailHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	registered, ok := event.(*identity.UserRegisteredEvent)
	if !ok {
		h.logger.Error("unexpected event type",
			zap.String("expected", identity.EventTypeUserRegistered),
			zap.String("actual", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			identity.EventTypeUserRegistered, event.EventType())
	}

	h.logger.Info("sending welcome email",
		zap.String("user_id", registered.UserID.String()),
		zap.String("email", registered.Email),
	)

	msg := email.Message{
		ToAddress: registered.Email,
		Subject:   "Bem-vindo à Minds Academy!",
		TextBody: fmt.Sprintf(
			"Olá, %s!\n\nSua conta na Minds Academy foi criada com sucesso. "+
				"Explore nossos cursos e comece a estudar agora mesmo.\n\n"+
				"Bons estudos,\nEquipe Minds Academy",
			registered.FullName,
		),
	}

	if err := h.sender.Send(ctx, msg); err != nil {
		h.logger.Error("failed to send welcome email",
			zap.String("user_id", registered.UserID.String()),
			zap.Error(err),
		)
		return fmt.Errorf("failed to send welcome email: %w", err)
	}

	return nil
}
