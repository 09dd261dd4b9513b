package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sakif/shopping-list/internal/apperror"
	"github.com/sakif/shopping-list/internal/model"
	"github.com/sakif/shopping-list/internal/repository"
)

// compile-time check that *ListStore implements repository.ListRepository
var _ repository.ListRepository = (*ListStore)(nil)

// ListStore persists shopping lists. Obtain one via DB.Lists().
type ListStore struct {
	conn *sql.DB
}

// Create inserts a new shopping list and fills in the assigned ID.
func (s *ListStore) Create(ctx context.Context, list *model.ShoppingList) error {
	res, err := s.conn.ExecContext(ctx,
		`INSERT INTO shopping_lists (name) VALUES (?)`,
		list.Name,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting list %q: %w", list.Name, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading new list id: %w", err)
	}
	list.ID = id

	return nil
}

// GetByID retrieves a shopping list by ID.
func (s *ListStore) GetByID(ctx context.Context, id int64) (*model.ShoppingList, error) {
	var l model.ShoppingList

	err := s.conn.QueryRowContext(ctx,
		`SELECT id, name FROM shopping_lists WHERE id = ?`,
		id,
	).Scan(&l.ID, &l.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("List")
		}
		return nil, fmt.Errorf("sqlite: getting list %d: %w", id, err)
	}

	return &l, nil
}

// List returns all shopping lists ordered by ID.
func (s *ListStore) List(ctx context.Context) ([]model.ShoppingList, error) {
	rows, err := s.conn.QueryContext(ctx,
		`SELECT id, name FROM shopping_lists ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing lists: %w", err)
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

// Update writes the list's name back to the row.
func (s *ListStore) Update(ctx context.Context, list *model.ShoppingList) error {
	res, err := s.conn.ExecContext(ctx,
		`UPDATE shopping_lists SET name = ? WHERE id = ?`,
		list.Name,
		list.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating list %d: %w", list.ID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking update of list %d: %w", list.ID, err)
	}
	if affected == 0 {
		return apperror.NotFound("List")
	}

	return nil
}

// Delete removes the list, its items and all permission edges referencing
// it as one durable unit. Same explicit-cascade reasoning as the user
// delete: the no-dangling-rows invariant is enforced here, inside one
// transaction, not delegated to the FK clauses.
func (s *ListStore) Delete(ctx context.Context, id int64) error {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: beginning list delete: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM shopping_items WHERE list_id = ?`, id,
	); err != nil {
		return fmt.Errorf("sqlite: deleting items of list %d: %w", id, err)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM list_permissions WHERE list_id = ?`, id,
	); err != nil {
		return fmt.Errorf("sqlite: deleting permissions of list %d: %w", id, err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM shopping_lists WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting list %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking delete of list %d: %w", id, err)
	}
	if affected == 0 {
		return apperror.NotFound("List")
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: committing list delete: %w", err)
	}

	return nil
}
