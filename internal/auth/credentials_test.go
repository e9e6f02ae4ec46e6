// Studio - Photography Portfolio Website and Admin API
// Copyright 2026 Soft Halo Studio
// SPDX-License-Identifier: MIT
// https://github.com/softhalostudio/studio

package auth

import (
	"testing"

	"github.com/softhalostudio/studio/internal/config"
)

func TestCredentialCheckerCheck(t *testing.T) {
	hash, err := HashPassword("sunset-and-silver")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	checker := NewCredentialChecker(&config.SecurityConfig{
		AdminUsername:     "admin",
		AdminPasswordHash: hash,
	})

	tests := []struct {
		name     string
		username string
		password string
		want     bool
	}{
		{name: "correct credentials", username: "admin", password: "sunset-and-silver", want: true},
		{name: "wrong password", username: "admin", password: "wrong", want: false},
		{name: "wrong username", username: "root", password: "sunset-and-silver", want: false},
		{name: "both wrong", username: "root", password: "wrong", want: false},
		{name: "empty username", username: "", password: "sunset-and-silver", want: false},
		{name: "empty password", username: "admin", password: "", want: false},
		{name: "username case sensitive", username: "Admin", password: "sunset-and-silver", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := checker.Check(tt.username, tt.password); got != tt.want {
				t.Errorf("Check(%q, ...) = %v, want %v", tt.username, got, tt.want)
			}
		})
	}
}

func TestCredentialCheckerMissingHashFailsClosed(t *testing.T) {
	checker := NewCredentialChecker(&config.SecurityConfig{
		AdminUsername:     "admin",
		AdminPasswordHash: "",
	})

	// Even the "correct" username with any password must be rejected.
	for _, password := range []string{"", "anything", "admin"} {
		if checker.Check("admin", password) {
			t.Errorf("Check() = true with no configured hash, password %q", password)
		}
	}
}

func TestCredentialCheckerMalformedHashFailsClosed(t *testing.T) {
	checker := NewCredentialChecker(&config.SecurityConfig{
		AdminUsername:     "admin",
		AdminPasswordHash: "not-a-bcrypt-hash",
	})

	if checker.Check("admin", "not-a-bcrypt-hash") {
		t.Error("Check() = true against a malformed hash")
	}
}
