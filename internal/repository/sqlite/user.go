package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/sakif/shopping-list/internal/apperror"
	"github.com/sakif/shopping-list/internal/model"
	"github.com/sakif/shopping-list/internal/repository"
)

// compile-time check that *UserStore implements repository.UserRepository
var _ repository.UserRepository = (*UserStore)(nil)

// UserStore persists user records. Obtain one via DB.Users().
type UserStore struct {
	conn *sql.DB
}

// Create inserts a new user and fills in the assigned ID.
//
// The UNIQUE constraint on name is the source of truth for name uniqueness —
// there is no "check then insert" race. A constraint violation is translated
// to apperror.Conflict so the handler can answer 409.
func (s *UserStore) Create(ctx context.Context, user *model.User) error {
	res, err := s.conn.ExecContext(ctx,
		`INSERT INTO users (name, password_hash) VALUES (?, ?)`,
		user.Name,
		user.PasswordHash,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict(fmt.Sprintf("a user named %q already exists", user.Name))
		}
		return fmt.Errorf("sqlite: inserting user %q: %w", user.Name, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading new user id: %w", err)
	}
	user.ID = id

	return nil
}

// GetByID retrieves a user by their ID.
// Returns apperror.ErrNotFound if no user exists with that ID.
func (s *UserStore) GetByID(ctx context.Context, id int64) (*model.User, error) {
	var u model.User

	err := s.conn.QueryRowContext(ctx,
		`SELECT id, name, password_hash FROM users WHERE id = ?`,
		id,
	).Scan(&u.ID, &u.Name, &u.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("User")
		}
		return nil, fmt.Errorf("sqlite: getting user %d: %w", id, err)
	}

	return &u, nil
}

// GetByName retrieves a user by their unique name. This is both the login
// lookup and the token-subject resolution used by the access gate.
func (s *UserStore) GetByName(ctx context.Context, name string) (*model.User, error) {
	var u model.User

	err := s.conn.QueryRowContext(ctx,
		`SELECT id, name, password_hash FROM users WHERE name = ?`,
		name,
	).Scan(&u.ID, &u.Name, &u.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("User")
		}
		return nil, fmt.Errorf("sqlite: getting user %q: %w", name, err)
	}

	return &u, nil
}

// List returns all users ordered by ID.
func (s *UserStore) List(ctx context.Context) ([]model.User, error) {
	rows, err := s.conn.QueryContext(ctx,
		`SELECT id, name, password_hash FROM users ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing users: %w", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Name, &u.PasswordHash); err != nil {
			return nil, fmt.Errorf("sqlite: scanning user row: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating user rows: %w", err)
	}

	return users, nil
}

// Update writes the user's name and password hash back to the row.
// A rename into an already-taken name hits the UNIQUE constraint → Conflict.
func (s *UserStore) Update(ctx context.Context, user *model.User) error {
	res, err := s.conn.ExecContext(ctx,
		`UPDATE users SET name = ?, password_hash = ? WHERE id = ?`,
		user.Name,
		user.PasswordHash,
		user.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict(fmt.Sprintf("a user named %q already exists", user.Name))
		}
		return fmt.Errorf("sqlite: updating user %d: %w", user.ID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking update of user %d: %w", user.ID, err)
	}
	if affected == 0 {
		return apperror.NotFound("User")
	}

	return nil
}

// Delete removes the user and all permission edges referencing it as one
// durable unit.
//
// EXPLICIT CASCADE, IN ONE TRANSACTION:
// The schema's ON DELETE CASCADE would do this implicitly, but the invariant
// "no dangling permission rows" belongs to the application, not to a storage
// engine feature. Running both statements in one transaction keeps the edge
// deletion atomic with the user deletion — no request can observe a user
// without their edges or vice versa.
func (s *UserStore) Delete(ctx context.Context, id int64) error {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: beginning user delete: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM list_permissions WHERE user_id = ?`, id,
	); err != nil {
		return fmt.Errorf("sqlite: deleting permissions of user %d: %w", id, err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting user %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking delete of user %d: %w", id, err)
	}
	if affected == 0 {
		// The deferred Rollback undoes the (empty) edge deletion.
		return apperror.NotFound("User")
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: committing user delete: %w", err)
	}

	return nil
}

// ListsFor returns the shopping lists the user has access to, via the
// permission edges. Returns an empty slice (not nil) when there are none so
// the handler encodes [] rather than null.
func (s *UserStore) ListsFor(ctx context.Context, id int64) ([]model.ShoppingList, error) {
	rows, err := s.conn.QueryContext(ctx,
		`SELECT l.id, l.name
		 FROM shopping_lists l
		 JOIN list_permissions p ON p.list_id = l.id
		 WHERE p.user_id = ?
		 ORDER BY l.id`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing lists of user %d: %w", id, err)
	}
	defer rows.Close()

	lists := []model.ShoppingList{}
	for rows.Next() {
		var l model.ShoppingList
		if err := rows.Scan(&l.ID, &l.Name); err != nil {
			return nil, fmt.Errorf("sqlite: scanning list row: %w", err)
		}
		lists = append(lists, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating list rows: %w", err)
	}

	return lists, nil
}

// isUniqueViolation reports whether err is a SQLite UNIQUE constraint error.
// modernc.org/sqlite surfaces constraint failures as its own error type; the
// message check keeps us independent of the driver's unexported codes.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
