// Package email provides transactional email delivery.
package email

import (
	"context"
	"fmt"

	"github.com/mindsacademy/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Message is a single transactional email
type Message struct {
	ToName    string
	ToAddress string
	Subject   string
	TextBody  string
	HTMLBody  string
}

// Sender delivers transactional emails
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// NewSender creates a Sender from configuration. Unknown providers fall
// back to the console sender so development never requires credentials.
func NewSender(cfg config.EmailConfig, logger *zap.Logger) (Sender, error) {
	switch cfg.Provider {
	case "sendgrid":
		return NewSendGridSender(cfg, logger)
	case "", "console":
		return NewConsoleSender(logger), nil
	default:
		return nil, fmt.Errorf("unknown email provider: %s", cfg.Provider)
	}
}
