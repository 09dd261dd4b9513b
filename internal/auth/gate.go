package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sakif/shopping-list/internal/apperror"
	"github.com/sakif/shopping-list/internal/model"
)

// UserResolver is the slice of the user store the gate needs: turning a
// token subject (the unique name) back into a user row.
type UserResolver interface {
	GetByName(ctx context.Context, name string) (*model.User, error)
}

// PermissionChecker answers the single question the gate asks of the
// permission store: does an edge exist for exactly this (user, list) pair?
type PermissionChecker interface {
	Has(ctx context.Context, userID, listID int64) (bool, error)
}

// Gate is the authorization decision point.
//
// Given an inbound bearer token and a target list, it decides allow/deny:
//
//  1. Validate the token → apperror.ErrUnauthenticated on any failure
//  2. Resolve the subject name to a user → apperror.ErrNotFound if the
//     account was deleted after the token was issued (tokens are not
//     revoked on account deletion — a known gap of the stateless design)
//  3. Check the permission edge → ErrNoAccess when the pair has no grant
//
// There is NO caching: every call re-verifies the token and re-queries the
// store. A grant or revoke is visible on the very next request, at the cost
// of one point lookup per call.
type Gate struct {
	tokens *TokenService
	users  UserResolver
	perms  PermissionChecker
	logger *slog.Logger
}

// NewGate creates a Gate with all required dependencies.
func NewGate(tokens *TokenService, users UserResolver, perms PermissionChecker, logger *slog.Logger) *Gate {
	return &Gate{
		tokens: tokens,
		users:  users,
		perms:  perms,
		logger: logger,
	}
}

// ErrNoAccess is returned when the token is valid and the account exists
// but no permission edge covers the requested list.
var ErrNoAccess = errors.New("auth: no access to list")

// Authorize runs the full decision for one request and returns the caller's
// user record on success.
func (g *Gate) Authorize(ctx context.Context, bearer string, listID int64) (*model.User, error) {
	subject, err := g.tokens.Validate(bearer)
	if err != nil {
		// Uniform unauthenticated result — expired, tampered and absent
		// tokens are indistinguishable to the caller.
		return nil, apperror.Unauthenticated("Could not validate credentials")
	}

	user, err := g.users.GetByName(ctx, subject)
	if err != nil {
		// The account behind a still-valid token is gone.
		return nil, fmt.Errorf("auth: resolving token subject %q: %w", subject, err)
	}

	ok, err := g.perms.Has(ctx, user.ID, listID)
	if err != nil {
		return nil, fmt.Errorf("auth: checking access for user %d on list %d: %w", user.ID, listID, err)
	}
	if !ok {
		g.logger.Info("access denied",
			slog.Int64("userID", user.ID),
			slog.Int64("listID", listID),
		)
		return nil, ErrNoAccess
	}

	return user, nil
}
