// Package mail delivers login emails.
package mail

import (
	"context"
	"fmt"
	"log/slog"

	"tone/internal/config"

	gomail "github.com/wneessen/go-mail"
)

// Sender delivers a magic sign-in link to an email address.
type Sender interface {
	SendMagicLink(ctx context.Context, to, link string) error
}

// SMTPSender sends magic link emails over SMTP.
type SMTPSender struct {
	client *gomail.Client
	from   string
}

// NewSMTPSender builds an SMTP-backed sender from application configuration.
func NewSMTPSender(cfg *config.Config) (*SMTPSender, error) {
	opts := []gomail.Option{
		gomail.WithPort(cfg.SMTPPort),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
	}
	if cfg.SMTPUsername != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.SMTPUsername),
			gomail.WithPassword(cfg.SMTPPassword),
		)
	}

	client, err := gomail.NewClient(cfg.SMTPHost, opts...)
	if err != nil {
		return nil, fmt.Errorf("create smtp client: %w", err)
	}

	return &SMTPSender{client: client, from: cfg.MailFrom}, nil
}

// SendMagicLink emails a single-use sign-in link.
func (s *SMTPSender) SendMagicLink(ctx context.Context, to, link string) error {
	msg := gomail.NewMsg()
	if err := msg.From(s.from); err != nil {
		return fmt.Errorf("set from address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("set to address: %w", err)
	}
	msg.Subject("Your sign-in link")
	msg.SetBodyString(gomail.TypeTextPlain, fmt.Sprintf(
		"Click the link below to sign in:\n\n%s\n\nThe link works once and expires shortly. If you did not request it, ignore this email.\n",
		link,
	))

	if err := s.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send magic link email: %w", err)
	}
	return nil
}

// LogSender writes magic links to the application log instead of sending
// email. Used in development when SMTP is not configured.
type LogSender struct {
	Logger *slog.Logger
}

func (s *LogSender) SendMagicLink(ctx context.Context, to, link string) error {
	s.Logger.InfoContext(ctx, "magic link issued (mail delivery disabled)",
		slog.String("to", to),
		slog.String("link", link),
	)
	return nil
}
