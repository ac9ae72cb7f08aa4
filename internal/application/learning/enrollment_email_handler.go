package learning

import (
	"context"
	"fmt"

	"github.com/mindsacademy/backend/internal/domain/catalog"
	"github.com/mindsacademy/backend/internal/domain/identity"
	"github.com/mindsacademy/backend/internal/domain/learning"
	"github.com/mindsacademy/backend/internal/domain/shared"
	"github.com/mindsacademy/backend/internal/infrastructure/email"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EnrollmentEmailHandler handles enrollment lifecycle events and sends
// the corresponding notification emails. It covers both the enrollment
// confirmation and the course completion congratulation.
type EnrollmentEmailHandler struct {
	userRepo   identity.UserRepository
	courseRepo catalog.CourseRepository
	sender     email.Sender
	logger     *zap.Logger
}

// NewEnrollmentEmailHandler creates a new handler for enrollment events.
func NewEnrollmentEmailHandler(
	userRepo identity.UserRepository,
	courseRepo catalog.CourseRepository,
	sender email.Sender,
	logger *zap.Logger,
) *EnrollmentEmailHandler {
	return &EnrollmentEmailHandler{
		userRepo:   userRepo,
		courseRepo: courseRepo,
		sender:     sender,
		logger:     logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *EnrollmentEmailHandler) EventTypes() []string {
	return []string{
		learning.EventTypeEnrollmentCreated,
		learning.EventTypeEnrollmentCompleted,
	}
}

// Handle dispatches on the concrete event type. The enrollment has
// already committed when the event arrives, so lookup or delivery
// failures are logged and surfaced but never undo the enrollment.
func (h *EnrollmentEmailHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *learning.EnrollmentCreatedEvent:
		return h.sendEnrollmentConfirmation(ctx, e)
	case *learning.EnrollmentCompletedEvent:
		return h.sendCompletionCongratulation(ctx, e)
	default:
		h.logger.Error("unexpected event type",
			zap.String("actual", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: %s", event.EventType())
	}
}

func (h *EnrollmentEmailHandler) sendEnrollmentConfirmation(ctx context.Context, e *learning.EnrollmentCreatedEvent) error {
	user, course, err := h.lookup(ctx, e.UserID, e.CourseID)
	if err != nil {
		h.logger.Error("failed to resolve enrollment email recipients",
			zap.String("enrollment_id", e.EnrollmentID.String()),
			zap.Error(err),
		)
		return err
	}

	h.logger.Info("sending enrollment confirmation email",
		zap.String("enrollment_id", e.EnrollmentID.String()),
		zap.String("user_id", e.UserID.String()),
		zap.String("course_id", e.CourseID.String()),
	)

	msg := email.Message{
		ToAddress: user.Email,
		Subject:   fmt.Sprintf("Matrícula confirmada: %s", course.Title),
		TextBody: fmt.Sprintf(
			"Olá, %s!\n\nSua matrícula no curso \"%s\" foi confirmada. "+
				"As aulas já estão disponíveis na plataforma.\n\n"+
				"Bons estudos,\nEquipe Minds Academy",
			user.FullName, course.Title,
		),
	}

	if err := h.sender.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send enrollment confirmation: %w", err)
	}
	return nil
}

func (h *EnrollmentEmailHandler) sendCompletionCongratulation(ctx context.Context, e *learning.EnrollmentCompletedEvent) error {
	user, course, err := h.lookup(ctx, e.UserID, e.CourseID)
	if err != nil {
		h.logger.Error("failed to resolve completion email recipients",
			zap.String("enrollment_id", e.EnrollmentID.String()),
			zap.Error(err),
		)
		return err
	}

	h.logger.Info("sending course completion email",
		zap.String("enrollment_id", e.EnrollmentID.String()),
		zap.String("user_id", e.UserID.String()),
		zap.String("course_id", e.CourseID.String()),
	)

	msg := email.Message{
		ToAddress: user.Email,
		Subject:   fmt.Sprintf("Parabéns! Você concluiu %s", course.Title),
		TextBody: fmt.Sprintf(
			"Olá, %s!\n\nVocê concluiu todas as aulas do curso \"%s\". "+
				"Parabéns pela dedicação!\n\n"+
				"Equipe Minds Academy",
			user.FullName, course.Title,
		),
	}

	if err := h.sender.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send completion email: %w", err)
	}
	return nil
}

func (h *EnrollmentEmailHandler) lookup(ctx context.Context, userID, courseID uuid.UUID) (*identity.User, *catalog.Course, error) {
	user, err := h.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load user %s: %w", userID, err)
	}
	course, err := h.courseRepo.FindByID(ctx, courseID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load course %s: %w", courseID, err)
	}
	return user, course, nil
}
