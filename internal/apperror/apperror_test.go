// GO TESTING BASICS:
// 1. Test files MUST end in _test.go — Go's tooling auto-discovers them
// 2. Test functions MUST start with "Test" and take *testing.T as the only param
// 3. Same package as the code being tested (so we can access unexported stuff)
// 4. Run with: go test ./internal/apperror/ -v  (-v = verbose, shows each test name)
package apperror

import (
	"errors"
	"fmt"
	"testing"
)

// TABLE-DRIVEN TESTS:
// This is Go's idiomatic pattern for testing multiple cases.
// Instead of writing separate test functions, we define a slice of test cases
// and loop over them. Every case gets a name that shows up in test output.

func TestErrorsIs(t *testing.T) {
	tests := []struct {
		name      string // Descriptive name for test output
		err       error  // The error to test
		target    error  // What we expect it to match
		wantMatch bool   // Should errors.Is() return true?
	}{
		{
			name:      "NotFound wraps ErrNotFound",
			err:       NotFound("User"),
			target:    ErrNotFound,
			wantMatch: true,
		},
		{
			name:      "NotFoundMsg wraps ErrNotFound",
			err:       NotFoundMsg("No users found"),
			target:    ErrNotFound,
			wantMatch: true,
		},
		{
			name:      "ValidationFailed wraps ErrValidation",
			err:       ValidationFailed("quantity", "quantity must be a positive integer"),
			target:    ErrValidation,
			wantMatch: true,
		},
		{
			name:      "Conflict wraps ErrConflict",
			err:       Conflict("a user named alice already exists"),
			target:    ErrConflict,
			wantMatch: true,
		},
		{
			name:      "Unauthenticated wraps ErrUnauthenticated",
			err:       Unauthenticated("Incorrect username or password"),
			target:    ErrUnauthenticated,
			wantMatch: true,
		},
		{
			name:      "NotFound does NOT match ErrValidation",
			err:       NotFound("List"),
			target:    ErrValidation,
			wantMatch: false,
		},
		{
			name:      "Unauthenticated does NOT match ErrNotFound",
			err:       Unauthenticated("Could not validate credentials"),
			target:    ErrNotFound,
			wantMatch: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.Is(tt.err, tt.target); got != tt.wantMatch {
				t.Errorf("errors.Is(%v, %v) = %v, want %v", tt.err, tt.target, got, tt.wantMatch)
			}
		})
	}
}

// errors.Is must keep working after the service layer wraps the error with
// fmt.Errorf("...: %w", err) — that's how handlers decide the status code.
func TestErrorsIs_ThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("granting access: %w", NotFound("List"))
	if !errors.Is(wrapped, ErrNotFound) {
		t.Error("errors.Is should see ErrNotFound through fmt.Errorf wrapping")
	}

	var appErr *AppError
	if !errors.As(wrapped, &appErr) {
		t.Fatal("errors.As should extract *AppError through wrapping")
	}
	if appErr.Message != "List not found" {
		t.Errorf("Message = %q, want %q", appErr.Message, "List not found")
	}
}

func TestNotFoundMessages(t *testing.T) {
	tests := []struct {
		resource string
		want     string
	}{
		{"User", "User not found"},
		{"List", "List not found"},
		{"Item", "Item not found"},
		{"Permission", "Permission not found"},
	}

	for _, tt := range tests {
		t.Run(tt.resource, func(t *testing.T) {
			if got := NotFound(tt.resource).Error(); got != tt.want {
				t.Errorf("NotFound(%q).Error() = %q, want %q", tt.resource, got, tt.want)
			}
		})
	}
}
