package services

import (
	"fmt"
	"html"

	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"

	"cadastro/internal/config"
	"cadastro/internal/models"
)

// EmailService sends the welcome message for new clients. With no SMTP host
// configured it only logs what it would have sent.
type EmailService struct {
	dialer *gomail.Dialer
	from   string
	log    *logrus.Logger
}

func NewEmailService(cfg config.EmailConfig, log *logrus.Logger) *EmailService {
	s := &EmailService{from: cfg.FromEmail, log: log}
	if cfg.SMTPHost != "" {
		s.dialer = gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)
	}
	return s
}

// DryRun reports whether messages are only logged.
func (s *EmailService) DryRun() bool {
	return s.dialer == nil
}

func (s *EmailService) SendClientWelcome(client *models.Client) error {
	m := s.welcomeMessage(client)

	if s.DryRun() {
		s.log.WithFields(logrus.Fields{
			"to":      client.Email,
			"subject": m.GetHeader("Subject"),
		}).Debug("[email] dry-run, message not sent")
		return nil
	}

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send welcome email: %w", err)
	}
	return nil
}

func (s *EmailService) welcomeMessage(client *models.Client) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", client.Email)
	m.SetHeader("Subject", "Bem-vindo ao nosso cadastro")

	body := fmt.Sprintf(`
		<h2>Olá, %s!</h2>
		<p>Seu cadastro foi realizado com sucesso.</p>
		<p>Telefone: %s<br>Endereço: %s</p>
		<p>Atenciosamente,<br>Equipe de Cadastro</p>
	`, html.EscapeString(client.Name), html.EscapeString(client.Phone), html.EscapeString(client.Address))

	m.SetBody("text/html", body)
	return m
}
