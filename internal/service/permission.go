package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sakif/shopping-list/internal/repository"
)

// PermissionService handles granting, revoking and checking access to
// shopping lists.
//
// It takes all three repositories because Grant must resolve BOTH endpoints
// of the edge before writing anything. Writing the edge directly without
// resolving the referents would happily record a permission for a user or a
// list that does not exist — a dangling edge that the check endpoint would
// then report as genuine access. Resolving first turns an invalid ID into a
// clean NotFound before any write happens.
type PermissionService struct {
	perms  repository.PermissionRepository
	users  repository.UserRepository
	lists  repository.ListRepository
	logger *slog.Logger
}

// NewPermissionService creates a PermissionService.
func NewPermissionService(
	perms repository.PermissionRepository,
	users repository.UserRepository,
	lists repository.ListRepository,
	logger *slog.Logger,
) *PermissionService {
	return &PermissionService{
		perms:  perms,
		users:  users,
		lists:  lists,
		logger: logger,
	}
}

// HasAccess reports whether the exact (user, list) edge exists.
func (s *PermissionService) HasAccess(ctx context.Context, userID, listID int64) (bool, error) {
	ok, err := s.perms.Has(ctx, userID, listID)
	if err != nil {
		return false, fmt.Errorf("service/permission: checking access (%d, %d): %w", userID, listID, err)
	}
	return ok, nil
}

// Grant gives a user access to a list.
//
// Both referents are resolved first: a missing user is NotFound("User"), a
// missing list is NotFound("List"), and in either case no edge is written.
// Granting an edge that already exists succeeds silently — the relation is
// a set, and "make sure alice can see this list" is naturally idempotent.
func (s *PermissionService) Grant(ctx context.Context, userID, listID int64) error {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return err
	}
	if _, err := s.lists.GetByID(ctx, listID); err != nil {
		return err
	}

	if err := s.perms.Grant(ctx, userID, listID); err != nil {
		return fmt.Errorf("service/permission: granting (%d, %d): %w", userID, listID, err)
	}

	s.logger.Info("access granted",
		slog.Int64("userID", userID),
		slog.Int64("listID", listID),
	)

	return nil
}

// Revoke removes a user's access to a list. Revoking an edge that does not
// exist is NotFound("Permission") — unlike Grant, the caller is told the
// difference between "removed" and "was never there".
func (s *PermissionService) Revoke(ctx context.Context, userID, listID int64) error {
	if err := s.perms.Revoke(ctx, userID, listID); err != nil {
		return err
	}

	s.logger.Info("access revoked",
		slog.Int64("userID", userID),
		slog.Int64("listID", listID),
	)

	return nil
}
