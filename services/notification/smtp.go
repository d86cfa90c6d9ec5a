package notification

import (
	"context"
	"crypto/tls"
	"fmt"
	"mime"
	"net"
	"net/mail"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// SMTPConfig holds the connection settings of SMTPEmailSender.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
	Timeout  time.Duration
}

// SMTPEmailSender implements EmailSender over a plain SMTP connection,
// upgrading with STARTTLS when the server offers it.
type SMTPEmailSender struct {
	cfg    SMTPConfig
	logger *zap.Logger
}

func NewSMTPEmailSender(cfg SMTPConfig, logger *zap.Logger) *SMTPEmailSender {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SMTPEmailSender{cfg: cfg, logger: logger}
}

func (s *SMTPEmailSender) SendEmail(ctx context.Context, to, subject, htmlBody string) bool {
	if err := s.send(ctx, to, subject, htmlBody); err != nil {
		s.logger.Error("[SMTP] ❌ Error sending email", zap.String("to", to), zap.Error(err))
		return false
	}
	s.logger.Info("[SMTP] ✅ Email sent successfully", zap.String("to", to))
	return true
}

func (s *SMTPEmailSender) send(ctx context.Context, to, subject, htmlBody string) error {
	addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))

	deadline := time.Now().Add(s.cfg.Timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	dialer := net.Dialer{Deadline: deadline}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("dial SMTP server: %w", err)
	}
	if err := conn.SetDeadline(deadline); err != nil {
		conn.Close()
		return fmt.Errorf("set SMTP deadline: %w", err)
	}

	client, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("create SMTP client: %w", err)
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: s.cfg.Host}); err != nil {
			return fmt.Errorf("starttls: %w", err)
		}
	}

	if s.cfg.Username != "" {
		if ok, _ := client.Extension("AUTH"); ok {
			auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
			if err := client.Auth(auth); err != nil {
				return fmt.Errorf("SMTP authentication failed: %w", err)
			}
		}
	}

	if err := client.Mail(s.cfg.From); err != nil {
		return fmt.Errorf("MAIL FROM: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("RCPT TO: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("DATA: %w", err)
	}
	if _, err := w.Write(BuildMessage(s.cfg.From, s.cfg.FromName, to, subject, htmlBody, time.Now())); err != nil {
		w.Close()
		return fmt.Errorf("write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close message: %w", err)
	}
	return client.Quit()
}

// BuildMessage assembles an RFC 5322 message with a single HTML part.
func BuildMessage(from, fromName, to, subject, htmlBody string, date time.Time) []byte {
	sender := (&mail.Address{Name: fromName, Address: from}).String()

	var b strings.Builder
	b.WriteString("From: " + sender + "\r\n")
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + mime.QEncoding.Encode("UTF-8", subject) + "\r\n")
	b.WriteString("Date: " + date.Format(time.RFC1123Z) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	b.WriteString("Content-Transfer-Encoding: 8bit\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(htmlBody, "\n", "\r\n"))
	return []byte(b.String())
}
