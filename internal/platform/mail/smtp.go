package mail

import (
	"context"
	"fmt"
	"todo_api/internal/platform/config"

	gomail "github.com/wneessen/go-mail"
)

// SMTPMailer sends mail through the configured SMTP relay. It implements
// the service.Mailer capability.
type SMTPMailer struct {
	client *gomail.Client
	from   string
}

func NewSMTPMailer() (*SMTPMailer, error) {
	cfg := config.AppConfig
	client, err := gomail.NewClient(cfg.SMTPHost,
		gomail.WithPort(cfg.SMTPPort),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(cfg.SMTPUser),
		gomail.WithPassword(cfg.SMTPPassword),
		gomail.WithTLSPortPolicy(gomail.TLSMandatory),
	)
	if err != nil {
		return nil, fmt.Errorf("mail.NewSMTPMailer: %w", err)
	}
	return &SMTPMailer{client: client, from: cfg.MailFrom}, nil
}

func (m *SMTPMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	msg := gomail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("SMTPMailer.Send: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("SMTPMailer.Send: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, htmlBody)

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("SMTPMailer.Send: %w", err)
	}
	return nil
}
