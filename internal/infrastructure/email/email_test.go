package email

import (
	"context"
	"testing"

	"github.com/mindsacademy/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewSender(t *testing.T) {
	t.Run("empty provider yields console sender", func(t *testing.T) {
		sender, err := NewSender(config.EmailConfig{}, zap.NewNop())
		require.NoError(t, err)
		assert.IsType(t, &ConsoleSender{}, sender)
	})

	t.Run("console provider yields console sender", func(t *testing.T) {
		sender, err := NewSender(config.EmailConfig{Provider: "console"}, zap.NewNop())
		require.NoError(t, err)
		assert.IsType(t, &ConsoleSender{}, sender)
	})

	t.Run("sendgrid provider requires api key", func(t *testing.T) {
		_, err := NewSender(config.EmailConfig{Provider: "sendgrid"}, zap.NewNop())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "api key")
	})

	t.Run("sendgrid provider requires sender address", func(t *testing.T) {
		cfg := config.EmailConfig{Provider: "sendgrid", APIKey: "SG.test"}
		_, err := NewSender(cfg, zap.NewNop())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sender address")
	})

	t.Run("sendgrid provider with full config", func(t *testing.T) {
		cfg := config.EmailConfig{
			Provider:    "sendgrid",
			APIKey:      "SG.test",
			FromAddress: "no-reply@mindsacademy.com.br",
			FromName:    "Minds Academy",
		}
		sender, err := NewSender(cfg, zap.NewNop())
		require.NoError(t, err)
		assert.IsType(t, &SendGridSender{}, sender)
	})

	t.Run("unknown provider rejected", func(t *testing.T) {
		_, err := NewSender(config.EmailConfig{Provider: "smtp"}, zap.NewNop())
		require.Error(t, err)
	})
}

func TestConsoleSender_Send(t *testing.T) {
	sender := NewConsoleSender(zap.NewNop())

	t.Run("accepts complete message", func(t *testing.T) {
		err := sender.Send(context.Background(), Message{
			ToAddress: "aluno@example.com",
			Subject:   "Redefinição de senha",
			TextBody:  "Use o link para redefinir sua senha.",
		})
		assert.NoError(t, err)
	})

	t.Run("rejects missing recipient", func(t *testing.T) {
		err := sender.Send(context.Background(), Message{Subject: "sem destinatário"})
		assert.Error(t, err)
	})
}

func TestSendGridSender_Build(t *testing.T) {
	cfg := config.EmailConfig{
		Provider:    "sendgrid",
		APIKey:      "SG.test",
		FromAddress: "no-reply@mindsacademy.com.br",
		FromName:    "Minds Academy",
	}
	sender, err := NewSendGridSender(cfg, zap.NewNop())
	require.NoError(t, err)

	m := sender.build(Message{
		ToName:    "Ana",
		ToAddress: "ana@example.com",
		Subject:   "Bem-vinda",
		TextBody:  "Olá!",
		HTMLBody:  "<p>Olá!</p>",
	})

	require.Len(t, m.Personalizations, 1)
	assert.Equal(t, "Bem-vinda", m.Personalizations[0].Subject)
	require.Len(t, m.Personalizations[0].To, 1)
	assert.Equal(t, "ana@example.com", m.Personalizations[0].To[0].Address)
	assert.Len(t, m.Content, 2)
}
