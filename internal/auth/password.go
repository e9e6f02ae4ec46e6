// Studio - Photography Portfolio Website and Admin API
// Copyright 2026 Soft Halo Studio
// SPDX-License-Identifier: MIT
// https://github.com/softhalostudio/studio

package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// passwordHashCost is the bcrypt work factor for admin password hashes.
// Hashes generated with other costs still verify; bcrypt embeds the cost
// alongside the salt.
const passwordHashCost = 10

// HashPassword produces a salted bcrypt hash of the given plaintext.
// Every call generates a fresh random salt, so hashing the same password
// twice yields different hash strings that both verify.
func HashPassword(plaintext string) (string, error) {
	if plaintext == "" {
		return "", fmt.Errorf("password must not be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), passwordHashCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword reports whether plaintext matches the bcrypt hash.
// The comparison is constant-time. A malformed or corrupt hash string
// fails closed: the function returns false and never panics.
func VerifyPassword(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
