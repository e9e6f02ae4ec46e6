// Studio - Photography Portfolio Website and Admin API
// Copyright 2026 Soft Halo Studio
// SPDX-License-Identifier: MIT
// https://github.com/softhalostudio/studio

// Package mailer sends the studio a notification email for each contact
// form submission over SMTP, supporting STARTTLS, implicit TLS, and
// plaintext for local relays.
package mailer

import (
	"bytes"
	"context"
	"crypto/tls"
	_ "embed"
	"fmt"
	"html/template"
	"net"
	"net/smtp"
	"strings"
	"time"

	"github.com/softhalostudio/studio/internal/config"
	"github.com/softhalostudio/studio/internal/models"
)

//go:embed notification.html.tmpl
var notificationTemplate string

// Encryption modes accepted in SMTP configuration.
const (
	EncNone     = "none"
	EncStartTLS = "starttls"
	EncTLS      = "tls"
)

// Mailer sends contact notifications. A zero-value Host disables sending.
type Mailer struct {
	host       string
	port       int
	username   string
	password   string
	from       string
	notifyAddr string
	encryption string

	tmpl *template.Template

	// send delivers a rendered message. Injectable for tests.
	send func(ctx context.Context, recipients []string, msg []byte) error
}

// New builds a mailer from the SMTP configuration. Returns nil when no
// host is configured, which callers treat as notifications disabled.
func New(cfg *config.SMTPConfig) (*Mailer, error) {
	if cfg.Host == "" {
		return nil, nil
	}

	enc := strings.ToLower(strings.TrimSpace(cfg.Encryption))
	switch enc {
	case EncNone, EncStartTLS, EncTLS:
	case "":
		enc = EncStartTLS
	default:
		return nil, fmt.Errorf("unknown smtp encryption mode %q", cfg.Encryption)
	}

	tmpl, err := template.New("notification").Option("missingkey=zero").Parse(notificationTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing notification template: %w", err)
	}

	m := &Mailer{
		host:       cfg.Host,
		port:       cfg.Port,
		username:   cfg.Username,
		password:   cfg.Password,
		from:       cfg.From,
		notifyAddr: cfg.NotifyAddr,
		encryption: enc,
		tmpl:       tmpl,
	}
	m.send = m.deliver
	return m, nil
}

// NotifyContact emails the configured notification address about a new
// contact message.
func (m *Mailer) NotifyContact(ctx context.Context, msg *models.ContactMessage) error {
	body, err := m.render(msg)
	if err != nil {
		return fmt.Errorf("rendering notification: %w", err)
	}

	subject := fmt.Sprintf("New inquiry from %s", msg.Name)
	mime := buildMessage(m.from, m.notifyAddr, subject, body)
	return m.send(ctx, []string{m.notifyAddr}, mime)
}

// render executes the notification template.
func (m *Mailer) render(msg *models.ContactMessage) (string, error) {
	var buf bytes.Buffer
	if err := m.tmpl.Execute(&buf, msg); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// deliver opens an SMTP session per the configured encryption mode and
// sends one message. The context deadline bounds the dial.
func (m *Mailer) deliver(ctx context.Context, recipients []string, msg []byte) error {
	address := fmt.Sprintf("%s:%d", m.host, m.port)
	auth := smtp.PlainAuth("", m.username, m.password, m.host)

	dialer := net.Dialer{Timeout: 15 * time.Second}
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining > 0 {
			dialer.Timeout = remaining
		}
	}

	switch m.encryption {
	case EncTLS:
		conn, err := tls.DialWithDialer(&dialer, "tcp", address, &tls.Config{ServerName: m.host})
		if err != nil {
			return fmt.Errorf("smtp tls dial: %w", err)
		}
		defer conn.Close()
		client, err := smtp.NewClient(conn, m.host)
		if err != nil {
			return fmt.Errorf("smtp client: %w", err)
		}
		defer client.Quit()
		return m.transmit(client, auth, recipients, msg)

	case EncStartTLS:
		conn, err := dialer.DialContext(ctx, "tcp", address)
		if err != nil {
			return fmt.Errorf("smtp dial: %w", err)
		}
		client, err := smtp.NewClient(conn, m.host)
		if err != nil {
			conn.Close()
			return fmt.Errorf("smtp client: %w", err)
		}
		defer client.Quit()
		if ok, _ := client.Extension("STARTTLS"); ok {
			if err := client.StartTLS(&tls.Config{ServerName: m.host}); err != nil {
				return fmt.Errorf("smtp starttls: %w", err)
			}
		}
		return m.transmit(client, auth, recipients, msg)

	default:
		if err := smtp.SendMail(address, auth, m.from, recipients, msg); err != nil {
			return fmt.Errorf("smtp sendmail: %w", err)
		}
		return nil
	}
}

// transmit runs the MAIL/RCPT/DATA exchange on an open client.
func (m *Mailer) transmit(client *smtp.Client, auth smtp.Auth, recipients []string, msg []byte) error {
	if m.username != "" {
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("smtp auth: %w", err)
		}
	}
	if err := client.Mail(m.from); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}
	for _, rcpt := range recipients {
		if err := client.Rcpt(rcpt); err != nil {
			return fmt.Errorf("smtp rcpt to %s: %w", rcpt, err)
		}
	}
	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err := w.Write(msg); err != nil {
		w.Close()
		return fmt.Errorf("smtp write body: %w", err)
	}
	return w.Close()
}

// buildMessage assembles a minimal HTML email.
func buildMessage(from, to, subject, htmlBody string) []byte {
	var msg bytes.Buffer
	fmt.Fprintf(&msg, "From: %s\r\n", from)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)
	return msg.Bytes()
}
