package services_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"cadastro/internal/config"
	"cadastro/internal/logger"
	"cadastro/internal/models"
	"cadastro/internal/services"
)

func TestEmailService_DryRun(t *testing.T) {
	svc := services.NewEmailService(config.EmailConfig{FromEmail: "noreply@example.com"}, logger.Discard())
	require.True(t, svc.DryRun())
	require.NoError(t, svc.SendClientWelcome(&models.Client{Name: "Maria", Email: "maria@example.com"}))
}

func TestEmailService_UnreachableSMTP(t *testing.T) {
	svc := services.NewEmailService(config.EmailConfig{
		SMTPHost:  "127.0.0.1",
		SMTPPort:  1,
		FromEmail: "noreply@example.com",
	}, logger.Discard())
	require.False(t, svc.DryRun())
	require.Error(t, svc.SendClientWelcome(&models.Client{Name: "Maria", Email: "maria@example.com"}))
}
