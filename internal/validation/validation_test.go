package validation

import (
	"strings"
	"testing"
)

func TestIsEmail(t *testing.T) {
	valid := []string{
		"a@b.co",
		"u@x.com",
		"first.last@example.com",
		"USER+tag@Example.ORG",
		"a_b-c%d@sub.domain.io",
	}
	for _, e := range valid {
		if !IsEmail(e) {
			t.Errorf("expected %q to be valid", e)
		}
	}

	invalid := []string{
		"",
		"not-an-email",
		"missing@dot",
		"@nodomain.com",
		"nolocal.com",
		"two@@at.com",
		"spaces in@mail.com",
	}
	for _, e := range invalid {
		if IsEmail(e) {
			t.Errorf("expected %q to be invalid", e)
		}
	}
}

func TestValidatorRequired(t *testing.T) {
	v := New()
	v.Required("name", "John")
	if v.HasErrors() {
		t.Error("expected no errors for valid input")
	}

	v2 := New()
	v2.Required("name", "  ")
	if !v2.HasErrors() {
		t.Error("expected error for whitespace-only required field")
	}
}

func TestValidatorEmail(t *testing.T) {
	v := New()
	v.Email("email", "a@b.co")
	if v.HasErrors() {
		t.Errorf("expected no errors, got %v", v.Errors())
	}

	v2 := New()
	v2.Email("email", "not-an-email")
	if !v2.HasErrors() {
		t.Error("expected error for malformed email")
	}
}

func TestValidatorMinLength(t *testing.T) {
	v := New()
	v.MinLength("password", "short", 8)
	if !v.HasErrors() {
		t.Error("expected error for short password")
	}
	appErr := v.Validate()
	if appErr == nil {
		t.Fatal("expected AppError")
	}
	if !strings.Contains(appErr.Message, "password") {
		t.Errorf("expected field name in message, got %q", appErr.Message)
	}
}

func TestValidatorValidateNilWhenClean(t *testing.T) {
	v := New()
	v.Required("name", "ok").Email("email", "a@b.co")
	if err := v.Validate(); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
}

func TestStructValidation(t *testing.T) {
	type loginRequest struct {
		Email    string `json:"email" validate:"required"`
		Password string `json:"password" validate:"required,min=8"`
	}

	if err := Struct(loginRequest{Email: "a@b.co", Password: "pw123456"}); err != nil {
		t.Errorf("expected valid struct, got %v", err)
	}

	err := Struct(loginRequest{Password: "pw"})
	if err == nil {
		t.Fatal("expected validation error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "email") || !strings.Contains(msg, "password") {
		t.Errorf("expected both field names in error, got %q", msg)
	}
}
