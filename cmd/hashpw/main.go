// Studio - Photography Portfolio Website and Admin API
// Copyright 2026 Soft Halo Studio
// SPDX-License-Identifier: MIT
// https://github.com/softhalostudio/studio

// Command hashpw generates the bcrypt hash for the admin password.
//
// The hash goes into ADMIN_PASSWORD_HASH (or security.admin_password_hash
// in the config file); the plaintext password is never stored anywhere.
// The password is read from stdin so it does not end up in shell history:
//
//	echo -n 'the-password' | hashpw
//	hashpw < password.txt
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/softhalostudio/studio/internal/auth"
)

func main() {
	reader := bufio.NewReader(os.Stdin)
	password, err := reader.ReadString('\n')
	if err != nil && password == "" {
		fmt.Fprintln(os.Stderr, "hashpw: reading password from stdin:", err)
		os.Exit(1)
	}
	password = strings.TrimRight(password, "\r\n")
	if password == "" {
		fmt.Fprintln(os.Stderr, "hashpw: empty password")
		os.Exit(1)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		fmt.Fprintln(os.Stderr, "hashpw:", err)
		os.Exit(1)
	}
	fmt.Println(hash)
}
