// Studio - Photography Portfolio Website and Admin API
// Copyright 2026 Soft Halo Studio
// SPDX-License-Identifier: MIT
// https://github.com/softhalostudio/studio

package auth

import (
	"crypto/subtle"
	"sync"

	"github.com/softhalostudio/studio/internal/config"
	"github.com/softhalostudio/studio/internal/logging"
)

// CredentialChecker verifies login attempts against the single configured
// administrator identity. The password hash is provisioned out-of-band
// (see cmd/hashpw); it is never logged and never leaves this package.
type CredentialChecker struct {
	username     string
	passwordHash string

	warnOnce sync.Once
}

// NewCredentialChecker creates a checker from the security configuration.
func NewCredentialChecker(cfg *config.SecurityConfig) *CredentialChecker {
	return &CredentialChecker{
		username:     cfg.AdminUsername,
		passwordHash: cfg.AdminPasswordHash,
	}
}

// Check reports whether the supplied username and password match the
// configured admin credential.
//
// A missing password hash fails closed: every attempt is rejected, and
// the misconfiguration is logged exactly once. Startup validation should
// have refused to boot in that state already; this is the second line of
// defense. The username comparison is constant-time, and both comparisons
// always run so a wrong username costs the same as a wrong password.
func (c *CredentialChecker) Check(username, password string) bool {
	if c.passwordHash == "" {
		c.warnOnce.Do(func() {
			logging.Error().Msg("admin password hash is not configured; rejecting all login attempts")
		})
		return false
	}

	usernameMatch := subtle.ConstantTimeCompare([]byte(username), []byte(c.username)) == 1
	passwordMatch := VerifyPassword(password, c.passwordHash)

	return usernameMatch && passwordMatch
}
