package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sakif/shopping-list/internal/apperror"
	"github.com/sakif/shopping-list/internal/repository"
)

// compile-time check that *PermissionStore implements repository.PermissionRepository
var _ repository.PermissionRepository = (*PermissionStore)(nil)

// PermissionStore persists the user↔list access relation as a set of
// (user_id, list_id) edges. Obtain one via DB.Permissions().
type PermissionStore struct {
	conn *sql.DB
}

// Has reports whether an edge exists for exactly this pair. No wildcard or
// transitive semantics — a point lookup on the primary key.
func (s *PermissionStore) Has(ctx context.Context, userID, listID int64) (bool, error) {
	var one int
	err := s.conn.QueryRowContext(ctx,
		`SELECT 1 FROM list_permissions WHERE user_id = ? AND list_id = ?`,
		userID, listID,
	).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("sqlite: checking permission (%d, %d): %w", userID, listID, err)
	}
	return true, nil
}

// Grant inserts the edge if it is absent.
//
// IDEMPOTENT BY CONSTRUCTION:
// INSERT OR IGNORE against the composite primary key means granting twice is
// neither an error nor a second row. Two concurrent grants of the same pair
// race harmlessly — one inserts, the other is ignored; no application-level
// lock is needed.
//
// Referent validation is deliberately NOT here. The service resolves the
// user and the list through their own stores first, so invalid identifiers
// surface as NotFound before any write and a dangling edge cannot be
// created through this path. (The FK constraints would catch it anyway, as
// a last line of defence.)
func (s *PermissionStore) Grant(ctx context.Context, userID, listID int64) error {
	_, err := s.conn.ExecContext(ctx,
		`INSERT OR IGNORE INTO list_permissions (user_id, list_id) VALUES (?, ?)`,
		userID, listID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: granting permission (%d, %d): %w", userID, listID, err)
	}
	return nil
}

// Revoke deletes the edge.
//
// NOT idempotent, by contract: revoking a pair that was never granted (or
// was already revoked) returns NotFound("Permission") — the caller can tell
// "already absent" apart from "successfully removed".
func (s *PermissionStore) Revoke(ctx context.Context, userID, listID int64) error {
	res, err := s.conn.ExecContext(ctx,
		`DELETE FROM list_permissions WHERE user_id = ? AND list_id = ?`,
		userID, listID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: revoking permission (%d, %d): %w", userID, listID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking revoke of (%d, %d): %w", userID, listID, err)
	}
	if affected == 0 {
		return apperror.NotFound("Permission")
	}

	return nil
}
