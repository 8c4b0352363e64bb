package email

import (
	"context"
	"fmt"
	"mime"
	"net/smtp"
	"strings"

	"github.com/rs/zerolog"
)

// Config holds SMTP relay settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPNotifier sends account lifecycle mail through a plain SMTP relay.
type SMTPNotifier struct {
	cfg    Config
	logger zerolog.Logger
}

func NewSMTPNotifier(cfg Config, logger zerolog.Logger) *SMTPNotifier {
	return &SMTPNotifier{
		cfg:    cfg,
		logger: logger.With().Str("component", "smtp_notifier").Logger(),
	}
}

func (n *SMTPNotifier) Send(ctx context.Context, to, subject, textBody, htmlBody string) error {
	msg := buildMessage(n.cfg.From, to, subject, textBody, htmlBody)
	addr := fmt.Sprintf("%s:%d", n.cfg.Host, n.cfg.Port)

	var auth smtp.Auth
	if n.cfg.Username != "" {
		auth = smtp.PlainAuth("", n.cfg.Username, n.cfg.Password, n.cfg.Host)
	}

	done := make(chan error, 1)
	go func() {
		done <- smtp.SendMail(addr, auth, n.cfg.From, []string{to}, msg)
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("send mail: %w", err)
		}
		n.logger.Debug().Str("to", to).Str("subject", subject).Msg("mail sent")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// buildMessage assembles a multipart/alternative body so clients without
// HTML rendering still get the plain text part.
func buildMessage(from, to, subject, textBody, htmlBody string) []byte {
	const boundary = "udyog-jagat-alt"

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", subject))
	b.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&b, "Content-Type: multipart/alternative; boundary=%q\r\n", boundary)
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "--%s\r\n", boundary)
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	b.WriteString(textBody)
	b.WriteString("\r\n")

	if htmlBody != "" {
		fmt.Fprintf(&b, "--%s\r\n", boundary)
		b.WriteString("Content-Type: text/html; charset=utf-8\r\n\r\n")
		b.WriteString(htmlBody)
		b.WriteString("\r\n")
	}

	fmt.Fprintf(&b, "--%s--\r\n", boundary)
	return []byte(b.String())
}
