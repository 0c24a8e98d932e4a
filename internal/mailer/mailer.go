// Package mailer sends outgoing email over SMTP. Settings come from the
// environment at startup; when SMTP is not configured the contact form
// degrades to logging submissions instead of failing them.
package mailer

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/mail"
	gosmtp "net/smtp"
	"strings"
	"time"

	"github.com/acampos/folio/internal/config"
)

// dialTimeout bounds connection setup so a dead SMTP host cannot hold a
// request open.
const dialTimeout = 10 * time.Second

// Mailer is the interface handlers use to send email.
type Mailer interface {
	// Send delivers an HTML email to the configured recipient. replyTo is
	// set when the message originates from a site visitor.
	Send(ctx context.Context, subject, htmlBody, replyTo string) error

	// IsConfigured reports whether sending is possible at all.
	IsConfigured() bool
}

// smtpMailer implements Mailer over plain net/smtp with the three common
// transport modes: STARTTLS (587), implicit SSL (465), and unencrypted.
type smtpMailer struct {
	cfg config.SMTPConfig
}

// New creates a Mailer from SMTP settings.
func New(cfg config.SMTPConfig) Mailer {
	return &smtpMailer{cfg: cfg}
}

// IsConfigured reports whether enough settings are present to send.
func (m *smtpMailer) IsConfigured() bool {
	return m.cfg.IsConfigured()
}

// Send builds an RFC 2822 message and delivers it to the configured
// recipient.
func (m *smtpMailer) Send(ctx context.Context, subject, htmlBody, replyTo string) error {
	if !m.IsConfigured() {
		return fmt.Errorf("smtp is not configured")
	}

	from := mail.Address{Name: m.cfg.FromName, Address: m.cfg.FromAddress}
	to := []string{m.cfg.ToAddress}

	var msg strings.Builder
	msg.WriteString(fmt.Sprintf("From: %s\r\n", from.String()))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", m.cfg.ToAddress))
	if replyTo != "" {
		msg.WriteString(fmt.Sprintf("Reply-To: %s\r\n", replyTo))
	}
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	msg.WriteString(fmt.Sprintf("Date: %s\r\n", time.Now().UTC().Format(time.RFC1123Z)))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)

	switch m.cfg.Encryption {
	case "ssl":
		return m.sendSSL(addr, from.Address, to, msg.String())
	case "none":
		return m.sendPlain(addr, from.Address, to, msg.String())
	default: // "starttls"
		return m.sendStartTLS(addr, from.Address, to, msg.String())
	}
}

// sendStartTLS delivers using STARTTLS (port 587 typical).
func (m *smtpMailer) sendStartTLS(addr, from string, to []string, msg string) error {
	conn, err := net.DialTimeout("tcp", addr, dialTimeout)
	if err != nil {
		return fmt.Errorf("connecting to %s: %w", addr, err)
	}
	defer conn.Close()

	client, err := gosmtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		return fmt.Errorf("creating smtp client: %w", err)
	}
	defer client.Close()

	tlsConfig := &tls.Config{ServerName: m.cfg.Host, MinVersion: tls.VersionTLS12}
	if err := client.StartTLS(tlsConfig); err != nil {
		return fmt.Errorf("starting TLS: %w", err)
	}

	if err := m.authenticate(client); err != nil {
		return err
	}

	return sendMessage(client, from, to, msg)
}

// sendSSL delivers over implicit SSL/TLS (port 465 typical).
func (m *smtpMailer) sendSSL(addr, from string, to []string, msg string) error {
	tlsConfig := &tls.Config{ServerName: m.cfg.Host, MinVersion: tls.VersionTLS12}
	conn, err := tls.DialWithDialer(&net.Dialer{Timeout: dialTimeout}, "tcp", addr, tlsConfig)
	if err != nil {
		return fmt.Errorf("connecting to %s (SSL): %w", addr, err)
	}
	defer conn.Close()

	client, err := gosmtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		return fmt.Errorf("creating smtp client: %w", err)
	}
	defer client.Close()

	if err := m.authenticate(client); err != nil {
		return err
	}

	return sendMessage(client, from, to, msg)
}

// sendPlain delivers without encryption. Only sensible against a relay on
// localhost.
func (m *smtpMailer) sendPlain(addr, from string, to []string, msg string) error {
	var auth gosmtp.Auth
	if m.cfg.Username != "" {
		auth = gosmtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}
	if err := gosmtp.SendMail(addr, auth, from, to, []byte(msg)); err != nil {
		return fmt.Errorf("sending mail: %w", err)
	}
	return nil
}

// authenticate performs AUTH PLAIN when a username is configured.
func (m *smtpMailer) authenticate(client *gosmtp.Client) error {
	if m.cfg.Username == "" {
		return nil
	}
	auth := gosmtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("authenticating: %w", err)
	}
	return nil
}

// sendMessage handles MAIL FROM, RCPT TO, DATA for an existing SMTP client.
func sendMessage(client *gosmtp.Client, from string, to []string, msg string) error {
	if err := client.Mail(from); err != nil {
		return fmt.Errorf("MAIL FROM: %w", err)
	}
	for _, recipient := range to {
		if err := client.Rcpt(recipient); err != nil {
			return fmt.Errorf("RCPT TO %s: %w", recipient, err)
		}
	}
	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("DATA: %w", err)
	}
	if _, err := w.Write([]byte(msg)); err != nil {
		return fmt.Errorf("writing message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("closing data: %w", err)
	}
	return client.Quit()
}
