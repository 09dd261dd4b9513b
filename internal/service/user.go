package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/shopping-list/internal/apperror"
	"github.com/sakif/shopping-list/internal/auth"
	"github.com/sakif/shopping-list/internal/model"
	"github.com/sakif/shopping-list/internal/repository"
)

// MaxNameLength bounds user and list names. Long enough for any real name,
// short enough that nobody stores a novel in the name column.
const MaxNameLength = 100

// UserService handles the business logic for user accounts.
type UserService struct {
	users     repository.UserRepository
	passwords *auth.PasswordService
	logger    *slog.Logger
}

// NewUserService creates a UserService.
func NewUserService(users repository.UserRepository, passwords *auth.PasswordService, logger *slog.Logger) *UserService {
	return &UserService{
		users:     users,
		passwords: passwords,
		logger:    logger,
	}
}

// Create registers a new user: validate the name, hash the password, insert.
// A duplicate name comes back from the repository as apperror.Conflict.
func (s *UserService) Create(ctx context.Context, name, password string) (*model.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.ValidationFailed("name", "user name is required")
	}
	if len(name) > MaxNameLength {
		return nil, apperror.ValidationFailed("name",
			fmt.Sprintf("user name must be %d characters or less", MaxNameLength))
	}
	if password == "" {
		return nil, apperror.ValidationFailed("password", "password is required")
	}

	hash, err := s.passwords.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("service/user: hashing password: %w", err)
	}

	user := &model.User{
		Name:         name,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("service/user: creating user %q: %w", name, err)
	}

	s.logger.Info("user created",
		slog.Int64("id", user.ID),
		slog.String("name", user.Name),
	)

	return user, nil
}

// GetByID returns the user with the given ID, or NotFound.
func (s *UserService) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return s.users.GetByID(ctx, id)
}

// List returns all users. An empty store is a NotFound with the contractual
// "No users found" message — the API answers 404, not an empty array.
func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service/user: listing users: %w", err)
	}
	if len(users) == 0 {
		return nil, apperror.NotFoundMsg("No users found")
	}
	return users, nil
}

// Update applies a name change and/or a password change to an existing
// user. Empty fields mean "leave unchanged". The ID itself is immutable.
func (s *UserService) Update(ctx context.Context, id int64, name, password string) (*model.User, error) {
	// Fetch first — the "not found" error must win over validation of the
	// new values, and we need the current record to apply partial changes.
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if name = strings.TrimSpace(name); name != "" {
		if len(name) > MaxNameLength {
			return nil, apperror.ValidationFailed("name",
				fmt.Sprintf("user name must be %d characters or less", MaxNameLength))
		}
		user.Name = name
	}

	if password != "" {
		hash, err := s.passwords.Hash(password)
		if err != nil {
			return nil, fmt.Errorf("service/user: hashing new password: %w", err)
		}
		user.PasswordHash = hash
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("service/user: updating user %d: %w", id, err)
	}

	return user, nil
}

// Delete removes the user. The repository deletes the account and its
// permission edges in one transaction. A token already issued for this
// account stays valid until it expires — a documented gap of the stateless
// design; the access gate compensates by re-resolving the subject on every
// authorization.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("user deleted", slog.Int64("id", id))
	return nil
}

// Lists returns the shopping lists the user has access to. The user must
// exist; an existing user with no grants gets an empty slice, not an error.
func (s *UserService) Lists(ctx context.Context, id int64) ([]model.ShoppingList, error) {
	if _, err := s.users.GetByID(ctx, id); err != nil {
		return nil, err
	}
	lists, err := s.users.ListsFor(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service/user: listing lists of user %d: %w", id, err)
	}
	return lists, nil
}
