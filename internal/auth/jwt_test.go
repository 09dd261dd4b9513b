package auth

import (
	"errors"
	"strings"
	"testing"
	"time"
)

// newTestTokenService creates a TokenService for testing.
// It uses a fixed, known secret so tests are deterministic.
func newTestTokenService(t *testing.T) *TokenService {
	t.Helper()
	ts, err := NewTokenService(Config{
		Secret:    "test-secret-at-least-16-chars!!",
		Algorithm: "HS256",
	})
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	return ts
}

// =========================================================================
// CONSTRUCTION (FAIL-FAST) TESTS
// =========================================================================

func TestNewTokenService_MissingSecret(t *testing.T) {
	_, err := NewTokenService(Config{Algorithm: "HS256"})
	if err == nil {
		t.Fatal("NewTokenService() should reject an empty secret")
	}
}

func TestNewTokenService_MissingAlgorithm(t *testing.T) {
	_, err := NewTokenService(Config{Secret: "some-secret-value"})
	if err == nil {
		t.Fatal("NewTokenService() should reject an empty algorithm")
	}
}

func TestNewTokenService_UnknownAlgorithm(t *testing.T) {
	// "none" is the classic algorithm-confusion value; RS256 is real but
	// asymmetric and unsupported here. Both must be rejected up front.
	for _, alg := range []string{"none", "RS256", "hs256"} {
		t.Run(alg, func(t *testing.T) {
			_, err := NewTokenService(Config{Secret: "some-secret-value", Algorithm: alg})
			if err == nil {
				t.Fatalf("NewTokenService() should reject algorithm %q", alg)
			}
		})
	}
}

func TestNewTokenService_SupportedAlgorithms(t *testing.T) {
	for _, alg := range []string{"HS256", "HS384", "HS512"} {
		t.Run(alg, func(t *testing.T) {
			ts, err := NewTokenService(Config{Secret: "some-secret-value", Algorithm: alg})
			if err != nil {
				t.Fatalf("NewTokenService(%s) error = %v", alg, err)
			}

			// Round-trip must work under every supported algorithm.
			token, err := ts.Issue("alice")
			if err != nil {
				t.Fatalf("Issue() error = %v", err)
			}
			subject, err := ts.Validate(token)
			if err != nil {
				t.Fatalf("Validate() error = %v", err)
			}
			if subject != "alice" {
				t.Errorf("subject = %q, want %q", subject, "alice")
			}
		})
	}
}

// =========================================================================
// ISSUE TESTS
// =========================================================================

func TestIssue_ReturnsWellFormedToken(t *testing.T) {
	ts := newTestTokenService(t)

	token, err := ts.Issue("alice")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if token == "" {
		t.Fatal("Issue() returned empty token")
	}

	// JWT tokens have 3 dot-separated parts: header.payload.signature
	if parts := strings.Split(token, "."); len(parts) != 3 {
		t.Errorf("token has %d parts, want 3", len(parts))
	}
}

func TestIssue_EmptySubject(t *testing.T) {
	ts := newTestTokenService(t)

	if _, err := ts.Issue(""); err == nil {
		t.Fatal("Issue() should reject an empty subject")
	}
}

func TestIssue_TokensAreUnique(t *testing.T) {
	ts := newTestTokenService(t)

	// The jti claim makes two tokens for the same subject distinct even
	// when issued within the same second.
	a, err := ts.Issue("alice")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	b, err := ts.Issue("alice")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if a == b {
		t.Error("two tokens for the same subject should differ (jti)")
	}
}

// =========================================================================
// VALIDATE TESTS
// =========================================================================

func TestValidate_RoundTrip(t *testing.T) {
	ts := newTestTokenService(t)

	token, err := ts.Issue("alice")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	subject, err := ts.Validate(token)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if subject != "alice" {
		t.Errorf("subject = %q, want %q", subject, "alice")
	}
}

func TestValidate_ExpiredToken(t *testing.T) {
	ts := newTestTokenService(t)

	// Mint a token that expired a minute ago.
	token, err := ts.IssueWithLifetime("alice", -time.Minute)
	if err != nil {
		t.Fatalf("IssueWithLifetime() error = %v", err)
	}

	if _, err := ts.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Validate(expired) error = %v, want ErrInvalidToken", err)
	}
}

func TestValidate_TamperedToken(t *testing.T) {
	ts := newTestTokenService(t)

	token, err := ts.Issue("alice")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	// Flip a character in the payload — the signature no longer matches.
	tampered := []byte(token)
	mid := len(tampered) / 2
	if tampered[mid] == 'A' {
		tampered[mid] = 'B'
	} else {
		tampered[mid] = 'A'
	}

	if _, err := ts.Validate(string(tampered)); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Validate(tampered) error = %v, want ErrInvalidToken", err)
	}
}

func TestValidate_WrongSecret(t *testing.T) {
	ts := newTestTokenService(t)

	other, err := NewTokenService(Config{
		Secret:    "a-completely-different-secret!!",
		Algorithm: "HS256",
	})
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}

	token, err := other.Issue("alice")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	if _, err := ts.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Validate(wrong secret) error = %v, want ErrInvalidToken", err)
	}
}

func TestValidate_WrongAlgorithm(t *testing.T) {
	// A token signed with HS512 (same secret) must be rejected by a service
	// configured for HS256 — the algorithm is pinned, not negotiated.
	hs512, err := NewTokenService(Config{
		Secret:    "test-secret-at-least-16-chars!!",
		Algorithm: "HS512",
	})
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}

	token, err := hs512.Issue("alice")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	ts := newTestTokenService(t)
	if _, err := ts.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Validate(HS512 token on HS256 service) error = %v, want ErrInvalidToken", err)
	}
}

// Every failure mode must collapse into ErrInvalidToken — the error must
// never tell the caller WHICH check failed.
func TestValidate_UniformFailure(t *testing.T) {
	ts := newTestTokenService(t)

	expired, _ := ts.IssueWithLifetime("alice", -time.Minute)

	tests := []struct {
		name  string
		token string
	}{
		{"empty string", ""},
		{"garbage", "this.is.garbage"},
		{"not even dots", "aaaaaaaaaaaaaaaa"},
		{"expired", expired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ts.Validate(tt.token)
			if !errors.Is(err, ErrInvalidToken) {
				t.Errorf("Validate(%s) error = %v, want ErrInvalidToken", tt.name, err)
			}
		})
	}
}

func TestValidate_DefaultLifetimeApplied(t *testing.T) {
	// Lifetime left zero in the config → tokens still validate right after
	// issuance, i.e. the 15-minute default kicked in rather than an
	// immediate expiry.
	ts, err := NewTokenService(Config{
		Secret:    "test-secret-at-least-16-chars!!",
		Algorithm: "HS256",
	})
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}

	token, err := ts.Issue("alice")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if _, err := ts.Validate(token); err != nil {
		t.Errorf("Validate() error = %v, want nil (default lifetime)", err)
	}
}
