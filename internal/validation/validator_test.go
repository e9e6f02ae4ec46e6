// Studio - Photography Portfolio Website and Admin API
// Copyright 2026 Soft Halo Studio
// SPDX-License-Identifier: MIT
// https://github.com/softhalostudio/studio

package validation

import (
	"strings"
	"testing"

	"github.com/softhalostudio/studio/internal/models"
)

func TestValidateStructContactRequest(t *testing.T) {
	tests := []struct {
		name       string
		req        models.ContactRequest
		wantFields []string
	}{
		{
			name: "valid request",
			req: models.ContactRequest{
				Name:    "Jess Doe",
				Email:   "jess@example.com",
				Message: "Do you shoot weddings?",
			},
		},
		{
			name: "valid with optional fields",
			req: models.ContactRequest{
				Name:    "Jess Doe",
				Email:   "jess@example.com",
				Phone:   "+1 555 0100",
				Service: "wedding",
				Message: "Availability for October?",
			},
		},
		{
			name: "missing name",
			req: models.ContactRequest{
				Email:   "jess@example.com",
				Message: "hello",
			},
			wantFields: []string{"Name"},
		},
		{
			name: "invalid email",
			req: models.ContactRequest{
				Name:    "Jess",
				Email:   "not-an-email",
				Message: "hello",
			},
			wantFields: []string{"Email"},
		},
		{
			name:       "all required fields missing",
			req:        models.ContactRequest{},
			wantFields: []string{"Name", "Email", "Message"},
		},
		{
			name: "message too long",
			req: models.ContactRequest{
				Name:    "Jess",
				Email:   "jess@example.com",
				Message: strings.Repeat("x", 5001),
			},
			wantFields: []string{"Message"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.req)
			if len(tt.wantFields) == 0 {
				if err != nil {
					t.Errorf("ValidateStruct() unexpected error = %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("ValidateStruct() expected errors on %v, got nil", tt.wantFields)
			}
			got := make(map[string]bool)
			for _, fe := range err.Errors() {
				got[fe.Field()] = true
			}
			for _, field := range tt.wantFields {
				if !got[field] {
					t.Errorf("ValidateStruct() missing error for field %q; got %v", field, err)
				}
			}
		})
	}
}

func TestValidateStructLoginRequest(t *testing.T) {
	err := ValidateStruct(&models.LoginRequest{})
	if err == nil {
		t.Fatal("ValidateStruct() on empty login expected error, got nil")
	}
	if len(err.Errors()) != 2 {
		t.Errorf("ValidateStruct() errors = %d, want 2", len(err.Errors()))
	}

	if err := ValidateStruct(&models.LoginRequest{Username: "admin", Password: "pw"}); err != nil {
		t.Errorf("ValidateStruct() unexpected error = %v", err)
	}
}

func TestDetails(t *testing.T) {
	err := ValidateStruct(&models.ContactRequest{Email: "bad"})
	if err == nil {
		t.Fatal("expected validation error")
	}

	details := err.Details()
	fields, ok := details["fields"].([]map[string]interface{})
	if !ok {
		t.Fatalf("Details()[fields] has type %T", details["fields"])
	}
	if len(fields) != len(err.Errors()) {
		t.Errorf("Details() fields = %d, want %d", len(fields), len(err.Errors()))
	}
	for _, f := range fields {
		if f["field"] == "" || f["message"] == "" {
			t.Errorf("Details() entry missing field or message: %v", f)
		}
	}
}

func TestGetValidatorIsSingleton(t *testing.T) {
	if GetValidator() != GetValidator() {
		t.Error("GetValidator() returned different instances")
	}
}
