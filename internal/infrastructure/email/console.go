package email

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

// ConsoleSender logs emails instead of delivering them. This is the
// development default so password-reset flows can be exercised without
// a SendGrid account.
type ConsoleSender struct {
	logger *zap.Logger
}

// NewConsoleSender creates a new ConsoleSender
func NewConsoleSender(logger *zap.Logger) *ConsoleSender {
	return &ConsoleSender{logger: logger}
}

// Send logs the message
func (s *ConsoleSender) Send(ctx context.Context, msg Message) error {
	if msg.ToAddress == "" {
		return errors.New("recipient address is required")
	}

	s.logger.Info("email (console delivery)",
		zap.String("to", msg.ToAddress),
		zap.String("subject", msg.Subject),
		zap.String("body", msg.TextBody),
	)
	return nil
}

// Interface guard
var _ Sender = (*ConsoleSender)(nil)
