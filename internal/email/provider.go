package email

import (
	"errors"
	"fmt"

	"triveni_backend/internal/config"
	"triveni_backend/internal/logger"

	"gopkg.in/gomail.v2"
)

// Provider определяет интерфейс для отправки email
type Provider interface {
	Send(email *Email) error
	SendTemplate(to []string, subject, templateName string, data TemplateData) error
}

// NewProvider - SMTP, если задан хост, иначе письма только пишутся в лог.
func NewProvider(cfg *config.Config) Provider {
	if cfg.Email.SMTPHost == "" {
		return NewLogProvider()
	}
	return NewSMTPProvider(cfg)
}

// SMTPProvider отправляет письма через gomail.
type SMTPProvider struct {
	dialer    *gomail.Dialer
	fromEmail string
	fromName  string
	templates *TemplateManager
}

func NewSMTPProvider(cfg *config.Config) *SMTPProvider {
	return &SMTPProvider{
		dialer: gomail.NewDialer(
			cfg.Email.SMTPHost,
			cfg.Email.SMTPPort,
			cfg.Email.SMTPUsername,
			cfg.Email.SMTPPassword,
		),
		fromEmail: cfg.Email.FromEmail,
		fromName:  cfg.Email.FromName,
		templates: NewTemplateManager(),
	}
}

func (p *SMTPProvider) Send(email *Email) error {
	if len(email.To) == 0 {
		return errors.New("no recipients specified")
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", p.fromEmail, p.fromName)
	m.SetHeader("To", email.To...)
	m.SetHeader("Subject", email.Subject)
	m.SetBody("text/html", email.HTMLBody)

	if err := p.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

func (p *SMTPProvider) SendTemplate(to []string, subject, templateName string, data TemplateData) error {
	body, err := p.templates.Render(templateName, data)
	if err != nil {
		return err
	}
	return p.Send(&Email{To: to, Subject: subject, HTMLBody: body})
}

// LogProvider ничего не отправляет, только пишет в лог. Используется без SMTP и в тестах.
type LogProvider struct {
	templates *TemplateManager
}

func NewLogProvider() *LogProvider {
	return &LogProvider{templates: NewTemplateManager()}
}

func (p *LogProvider) Send(email *Email) error {
	logger.Debug("Email skipped, SMTP is not configured", "to", email.To, "subject", email.Subject)
	return nil
}

func (p *LogProvider) SendTemplate(to []string, subject, templateName string, data TemplateData) error {
	body, err := p.templates.Render(templateName, data)
	if err != nil {
		return err
	}
	return p.Send(&Email{To: to, Subject: subject, HTMLBody: body})
}
