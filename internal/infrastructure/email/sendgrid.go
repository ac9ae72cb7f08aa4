package email

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/mindsacademy/backend/internal/infrastructure/config"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

const (
	sendgridHost     = "https://api.sendgrid.com"
	sendgridEndpoint = "/v3/mail/send"
)

// SendGridSender delivers email through the SendGrid v3 API
type SendGridSender struct {
	apiKey string
	from   *sgmail.Email
	logger *zap.Logger
}

// NewSendGridSender creates a new SendGridSender
func NewSendGridSender(cfg config.EmailConfig, logger *zap.Logger) (*SendGridSender, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("sendgrid api key is required")
	}
	if cfg.FromAddress == "" {
		return nil, errors.New("sender address is required")
	}
	return &SendGridSender{
		apiKey: cfg.APIKey,
		from:   sgmail.NewEmail(cfg.FromName, cfg.FromAddress),
		logger: logger,
	}, nil
}

// Send delivers a single message
func (s *SendGridSender) Send(ctx context.Context, msg Message) error {
	if msg.ToAddress == "" {
		return errors.New("recipient address is required")
	}

	m := s.build(msg)

	req := sendgrid.GetRequest(s.apiKey, sendgridEndpoint, sendgridHost)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(m)

	res, err := sendgrid.MakeRequestWithContext(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if res.StatusCode >= http.StatusBadRequest {
		s.logger.Error("sendgrid rejected email",
			zap.Int("status", res.StatusCode),
			zap.String("body", res.Body),
		)
		return fmt.Errorf("sendgrid returned status %d", res.StatusCode)
	}

	s.logger.Debug("email sent",
		zap.String("to", msg.ToAddress),
		zap.String("subject", msg.Subject),
	)
	return nil
}

func (s *SendGridSender) build(msg Message) *sgmail.SGMailV3 {
	p := sgmail.NewPersonalization()
	p.Subject = msg.Subject
	p.AddTos(sgmail.NewEmail(msg.ToName, msg.ToAddress))

	m := sgmail.NewV3Mail()
	m.SetFrom(s.from)
	m.AddPersonalizations(p)

	if msg.TextBody != "" {
		m.AddContent(sgmail.NewContent("text/plain", msg.TextBody))
	}
	if msg.HTMLBody != "" {
		m.AddContent(sgmail.NewContent("text/html", msg.HTMLBody))
	}

	return m
}

// Interface guard
var _ Sender = (*SendGridSender)(nil)
