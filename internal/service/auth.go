// Package service contains the business logic layer of the application.
//
// THE THREE-LAYER ARCHITECTURE:
//
//	Handler (HTTP layer)     → parses requests, writes responses
//	Service (Business layer) → validates, enforces rules, orchestrates
//	Repository (Data layer)  → reads/writes to the database
//
// Handlers only know HTTP. Services only know business rules. Repositories
// only know SQL. Each service receives repository INTERFACES, so tests can
// swap in hand-written fakes without a database.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sakif/shopping-list/internal/apperror"
	"github.com/sakif/shopping-list/internal/auth"
	"github.com/sakif/shopping-list/internal/model"
	"github.com/sakif/shopping-list/internal/repository"
)

// AuthService handles the login flow: credentials in, bearer token out.
//
// DEPENDENCIES (injected via NewAuthService):
//   - users     repository.UserRepository → look up the account by name
//   - tokens    *auth.TokenService        → issue/validate JWTs
//   - passwords *auth.PasswordService     → bcrypt verification
//   - logger    *slog.Logger              → structured logging
type AuthService struct {
	users     repository.UserRepository
	tokens    *auth.TokenService
	passwords *auth.PasswordService
	logger    *slog.Logger
}

// NewAuthService creates an AuthService with all required dependencies.
func NewAuthService(
	users repository.UserRepository,
	tokens *auth.TokenService,
	passwords *auth.PasswordService,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		tokens:    tokens,
		passwords: passwords,
		logger:    logger,
	}
}

// Login authenticates a name+password pair and issues an access token.
//
// ONE FAILURE, ONE ANSWER:
// An unknown name and a wrong password both collapse into the same
// apperror.Unauthenticated with the same message. If the two cases were
// distinguishable, an attacker could enumerate which names exist by
// watching the error text.
func (s *AuthService) Login(ctx context.Context, name, password string) (*model.Token, error) {
	user, err := s.users.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.Unauthenticated("Incorrect username or password")
		}
		return nil, fmt.Errorf("service/auth: looking up user %q: %w", name, err)
	}

	if !s.passwords.Verify(user.PasswordHash, password) {
		return nil, apperror.Unauthenticated("Incorrect username or password")
	}

	token, err := s.tokens.Issue(user.Name)
	if err != nil {
		return nil, fmt.Errorf("service/auth: issuing token for user %q: %w", user.Name, err)
	}

	s.logger.Info("user logged in", slog.String("name", user.Name))

	return &model.Token{
		AccessToken: token,
		TokenType:   "bearer",
	}, nil
}
