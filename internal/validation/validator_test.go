package validation

import (
	"strings"
	"testing"

	"github.com/blog-platform-api/internal/models"
)

func TestValidateCredentials(t *testing.T) {
	tests := []struct {
		name       string
		email      string
		password   string
		wantErrors int
		wantField  string
	}{
		{"valid", "user@example.com", "password123", 0, ""},
		{"missing email", "", "password123", 1, "email"},
		{"invalid email", "not-an-email", "password123", 1, "email"},
		{"missing password", "user@example.com", "", 1, "password"},
		{"short password", "user@example.com", "short", 1, "password"},
		{"both invalid", "bad@", "x", 2, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateCredentials(tt.email, tt.password, 8)
			if len(errs) != tt.wantErrors {
				t.Errorf("Expected %d errors, got %d: %v", tt.wantErrors, len(errs), errs)
			}
			if tt.wantField != "" && len(errs) > 0 && errs[0].Field != tt.wantField {
				t.Errorf("Expected error on field %q, got %q", tt.wantField, errs[0].Field)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	if errs := ValidateEmail("user@example.com"); len(errs) != 0 {
		t.Errorf("Expected no errors for valid email, got %v", errs)
	}
	if errs := ValidateEmail(""); len(errs) != 1 {
		t.Errorf("Expected 1 error for empty email, got %d", len(errs))
	}
	if errs := ValidateEmail("user@@example"); len(errs) != 1 {
		t.Errorf("Expected 1 error for malformed email, got %d", len(errs))
	}
}

func TestValidatePost(t *testing.T) {
	tests := []struct {
		name       string
		title      string
		content    string
		wantErrors int
	}{
		{"valid", "A title", "Some content", 0},
		{"empty title", "", "Some content", 1},
		{"whitespace title", "   ", "Some content", 1},
		{"empty content", "A title", "", 1},
		{"title too long", strings.Repeat("a", models.MaxTitleLength+1), "Some content", 1},
		{"content too long", "A title", strings.Repeat("a", models.MaxContentLength+1), 1},
		{"both empty", "", "", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidatePost(tt.title, tt.content)
			if len(errs) != tt.wantErrors {
				t.Errorf("Expected %d errors, got %d: %v", tt.wantErrors, len(errs), errs)
			}
		})
	}
}

func TestValidateComment(t *testing.T) {
	if errs := ValidateComment("nice post"); len(errs) != 0 {
		t.Errorf("Expected no errors, got %v", errs)
	}
	if errs := ValidateComment(""); len(errs) != 1 {
		t.Errorf("Expected 1 error for empty comment, got %d", len(errs))
	}
	if errs := ValidateComment(strings.Repeat("a", models.MaxCommentLength+1)); len(errs) != 1 {
		t.Errorf("Expected 1 error for oversized comment, got %d", len(errs))
	}
}

func TestValidationErrorMessage(t *testing.T) {
	errs := ValidateComment("")
	if len(errs) != 1 {
		t.Fatalf("Expected 1 error, got %d", len(errs))
	}
	if got := errs[0].Error(); got != "content: content is required" {
		t.Errorf("Unexpected error string: %q", got)
	}
}
