// Package auth provides JWT token generation and validation plus bcrypt
// password hashing for the shopping-list API.
//
// AUTHENTICATION FLOW OVERVIEW:
// 1. Client POSTs username+password to /auth/
// 2. Server checks the password against the stored bcrypt hash
// 3. Server issues a JWT access token bound to the user's name
// 4. On subsequent requests the client sends `Authorization: Bearer <token>`
// 5. Middleware validates the JWT and puts the subject name in the context
//
// WHY JWT?
// JWT (JSON Web Token) is stateless — the server doesn't need to store
// session data. All the information needed (subject, expiry) is inside the
// signed token. The signature ensures nobody can tamper with it without the
// secret key. The flip side: there is no revocation list, a token stays
// valid until it expires even if the account is deleted in the meantime.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/xid"
)

// ErrInvalidToken is the ONLY error Validate returns.
//
// Bad signature, wrong algorithm, garbled payload, expired, missing subject
// — all collapse into this one value. A caller (and therefore an attacker
// reading API responses) cannot learn WHICH check failed. The real cause is
// still available server-side: Validate wraps it, so errors.Is matches and
// logs can show the chain.
var ErrInvalidToken = errors.New("auth: invalid token")

// DefaultLifetime is the token lifetime used when the config leaves it
// unset: 15 minutes.
const DefaultLifetime = 15 * time.Minute

const issuer = "shopping-list"

// Config carries the process-wide signing configuration.
//
// It is built once in main from SECRET_KEY / ALGORITHM /
// TOKEN_EXPIRES_MINUTES and passed into NewTokenService explicitly — no
// package-level globals, so tests can construct isolated instances with
// their own secrets and lifetimes.
type Config struct {
	Secret    string        // HMAC signing key, required
	Algorithm string        // "HS256", "HS384" or "HS512", required
	Lifetime  time.Duration // 0 means DefaultLifetime
}

// signingMethods maps the configured algorithm name to the jwt-go method.
// Only the HMAC family is supported — the secret is a shared symmetric key.
var signingMethods = map[string]jwt.SigningMethod{
	"HS256": jwt.SigningMethodHS256,
	"HS384": jwt.SigningMethodHS384,
	"HS512": jwt.SigningMethodHS512,
}

// TokenService issues and validates JWT access tokens.
//
// It is stateless: issuing a token writes nothing, validating one reads
// nothing but the token itself. Safe for concurrent use.
type TokenService struct {
	secret   []byte
	method   jwt.SigningMethod
	alg      string
	lifetime time.Duration
}

// NewTokenService creates a TokenService from the given config.
//
// FAIL-FAST POLICY:
// A missing secret or an unknown algorithm is a construction-time error, not
// a per-request one. main treats it as fatal — the service must never run in
// a state where it could issue tokens nobody can verify (or verify tokens
// against an undefined trust anchor).
func NewTokenService(cfg Config) (*TokenService, error) {
	if cfg.Secret == "" {
		return nil, errors.New("auth: signing secret is required")
	}
	if cfg.Algorithm == "" {
		return nil, errors.New("auth: signing algorithm is required")
	}
	method, ok := signingMethods[cfg.Algorithm]
	if !ok {
		return nil, fmt.Errorf("auth: unsupported signing algorithm %q", cfg.Algorithm)
	}

	lifetime := cfg.Lifetime
	if lifetime <= 0 {
		lifetime = DefaultLifetime
	}

	return &TokenService{
		secret:   []byte(cfg.Secret),
		method:   method,
		alg:      cfg.Algorithm,
		lifetime: lifetime,
	}, nil
}

// claims is the JWT payload. It embeds jwt.RegisteredClaims which includes
// the standard fields: Subject ("sub"), ExpiresAt ("exp"), IssuedAt, ID.
//
// We store the user's unique NAME in "sub" — the name is the login
// identifier, and resolving it back to a user row happens at authorization
// time, not here.
type claims struct {
	jwt.RegisteredClaims
}

// Issue creates and signs an access token for the given subject name.
//
// The expiry is absolute: now + configured lifetime. The "jti" claim gets a
// fresh xid so two tokens issued in the same second for the same user are
// still distinct strings.
func (s *TokenService) Issue(subject string) (string, error) {
	if subject == "" {
		return "", errors.New("auth: token subject must not be empty")
	}

	now := time.Now()
	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.lifetime)),
			Issuer:    issuer,
			ID:        xid.New().String(),
		},
	}

	token := jwt.NewWithClaims(s.method, c)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing token: %w", err)
	}

	return signed, nil
}

// IssueWithLifetime creates a token with a custom lifetime, overriding the
// configured one. Used in tests to mint already-expired tokens.
func (s *TokenService) IssueWithLifetime(subject string, d time.Duration) (string, error) {
	now := time.Now()
	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(d)),
			Issuer:    issuer,
			ID:        xid.New().String(),
		},
	}

	token := jwt.NewWithClaims(s.method, c)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing token: %w", err)
	}

	return signed, nil
}

// Validate parses and verifies a JWT string and returns the subject name.
//
// VALIDATION CHECKS (performed by the jwt library):
//   - Signature is valid (wasn't tampered with)
//   - Token is not expired (ExpiresAt is in the future)
//   - Issuer matches (prevents tokens from other apps)
//   - Algorithm is the configured one
//
// ALGORITHM CONFUSION ATTACK:
// Without pinning the algorithm, an attacker could present a token whose
// header claims a different method and the library might accept it. Passing
// jwt.WithValidMethods restricts verification to exactly the configured
// algorithm.
//
// Every failure returns an error matching ErrInvalidToken — callers must
// not surface the underlying cause to clients.
func (s *TokenService) Validate(tokenStr string) (string, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("auth: unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{s.alg}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid {
		return "", ErrInvalidToken
	}

	if c.Subject == "" {
		return "", ErrInvalidToken
	}

	return c.Subject, nil
}
