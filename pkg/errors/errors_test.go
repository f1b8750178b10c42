package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidNodeType, "invalid node type: %s", "pump")

	if err.Code != ErrCodeInvalidNodeType {
		t.Errorf("code = %s, want %s", err.Code, ErrCodeInvalidNodeType)
	}
	if err.Message != "invalid node type: pump" {
		t.Errorf("message = %q", err.Message)
	}
	if !strings.Contains(err.Error(), "INVALID_NODE_TYPE") {
		t.Errorf("Error() should include the code: %s", err.Error())
	}
}

func TestWrap(t *testing.T) {
	cause := stderrors.New("disk full")
	err := Wrap(ErrCodeStorage, cause, "saving project %s", "plant-a")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped error lost its cause")
	}
	if !strings.Contains(err.Error(), "disk full") {
		t.Errorf("Error() should include the cause: %s", err.Error())
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeSelfLoop, "cannot connect node 3 to itself")

	if !Is(err, ErrCodeSelfLoop) {
		t.Error("Is should match the code")
	}
	if Is(err, ErrCodeNotFound) {
		t.Error("Is should not match a different code")
	}
	if Is(stderrors.New("plain"), ErrCodeSelfLoop) {
		t.Error("Is should not match a plain error")
	}

	// Codes survive fmt wrapping.
	wrapped := fmt.Errorf("handler: %w", err)
	if !Is(wrapped, ErrCodeSelfLoop) {
		t.Error("Is should unwrap the chain")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeNotFound, "gone")); got != ErrCodeNotFound {
		t.Errorf("GetCode = %s, want NOT_FOUND", got)
	}
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode of plain error = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeInvalidInput, "project name cannot be empty")
	if got := UserMessage(err); got != "project name cannot be empty" {
		t.Errorf("UserMessage = %q", got)
	}

	plain := stderrors.New("plain error")
	if got := UserMessage(plain); got != "plain error" {
		t.Errorf("UserMessage of plain error = %q", got)
	}
}

func TestValidateProjectName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "plant-a", false},
		{"valid with spaces", "Gravity Main 2026", false},
		{"empty", "", true},
		{"parent traversal", "../etc/passwd", true},
		{"double slash", "a//b", true},
		{"backslash", `a\b`, true},
		{"control character", "plant\x07a", true},
		{"too long", strings.Repeat("x", 300), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateProjectName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateProjectName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("validation error has code %s, want INVALID_INPUT", GetCode(err))
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	if err := ValidatePath("networks/plant-a.json"); err != nil {
		t.Errorf("valid path rejected: %v", err)
	}
	if err := ValidatePath(""); err == nil {
		t.Error("empty path accepted")
	}
	if err := ValidatePath(strings.Repeat("x", 501)); err == nil {
		t.Error("overlong path accepted")
	}
	if err := ValidatePath("a\x00b"); err == nil {
		t.Error("path with null byte accepted")
	}
}
