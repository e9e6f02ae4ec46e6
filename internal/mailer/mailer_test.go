// Studio - Photography Portfolio Website and Admin API
// Copyright 2026 Soft Halo Studio
// SPDX-License-Identifier: MIT
// https://github.com/softhalostudio/studio

package mailer

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/softhalostudio/studio/internal/config"
	"github.com/softhalostudio/studio/internal/models"
)

func testSMTPConfig() *config.SMTPConfig {
	return &config.SMTPConfig{
		Host:       "smtp.example.com",
		Port:       587,
		From:       "noreply@softhalostudio.com",
		NotifyAddr: "hello@softhalostudio.com",
		Encryption: "starttls",
	}
}

func TestNewDisabledWithoutHost(t *testing.T) {
	m, err := New(&config.SMTPConfig{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if m != nil {
		t.Error("New() != nil with no host configured")
	}
}

func TestNewRejectsUnknownEncryption(t *testing.T) {
	cfg := testSMTPConfig()
	cfg.Encryption = "rot13"
	if _, err := New(cfg); err == nil {
		t.Error("New() expected error for unknown encryption mode")
	}
}

func TestNewDefaultsToStartTLS(t *testing.T) {
	cfg := testSMTPConfig()
	cfg.Encryption = ""
	m, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if m.encryption != EncStartTLS {
		t.Errorf("encryption = %q, want %q", m.encryption, EncStartTLS)
	}
}

func TestNotifyContact(t *testing.T) {
	m, err := New(testSMTPConfig())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	var gotRecipients []string
	var gotMsg []byte
	m.send = func(ctx context.Context, recipients []string, msg []byte) error {
		gotRecipients = recipients
		gotMsg = msg
		return nil
	}

	contact := &models.ContactMessage{
		Name:      "Jess Doe",
		Email:     "jess@example.com",
		Phone:     "+1 555 0100",
		Service:   "wedding",
		Message:   "Are you available in October?",
		CreatedAt: time.Date(2026, 8, 20, 14, 30, 0, 0, time.UTC),
	}
	if err := m.NotifyContact(context.Background(), contact); err != nil {
		t.Fatalf("NotifyContact() error = %v", err)
	}

	if len(gotRecipients) != 1 || gotRecipients[0] != "hello@softhalostudio.com" {
		t.Errorf("recipients = %v", gotRecipients)
	}

	body := string(gotMsg)
	for _, want := range []string{
		"Subject: New inquiry from Jess Doe",
		"To: hello@softhalostudio.com",
		"jess@example.com",
		"&#43;1 555 0100", // html/template escapes the leading +
		"wedding",
		"Are you available in October?",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("message missing %q", want)
		}
	}
}

func TestNotificationOmitsEmptyOptionalFields(t *testing.T) {
	m, err := New(testSMTPConfig())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	body, err := m.render(&models.ContactMessage{
		Name:    "Jess",
		Email:   "jess@example.com",
		Message: "hi",
	})
	if err != nil {
		t.Fatalf("render() error = %v", err)
	}
	if strings.Contains(body, "Phone") || strings.Contains(body, "Service") {
		t.Errorf("rendered body includes empty optional rows:\n%s", body)
	}
}

func TestNotificationEscapesHTML(t *testing.T) {
	m, err := New(testSMTPConfig())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	body, err := m.render(&models.ContactMessage{
		Name:    "<script>alert(1)</script>",
		Email:   "x@example.com",
		Message: "<img src=x>",
	})
	if err != nil {
		t.Fatalf("render() error = %v", err)
	}
	if strings.Contains(body, "<script>") || strings.Contains(body, "<img") {
		t.Error("rendered body contains unescaped HTML")
	}
}
