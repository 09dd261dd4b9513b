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

// compile-time check that *ItemStore implements repository.ItemRepository
var _ repository.ItemRepository = (*ItemStore)(nil)

// ItemStore persists shopping items. Obtain one via DB.Items().
type ItemStore struct {
	conn *sql.DB
}

// Create inserts a new item and fills in the assigned ID. The caller (the
// service layer) has already confirmed the owning list exists and the
// quantity is positive.
func (s *ItemStore) Create(ctx context.Context, item *model.ShoppingItem) error {
	res, err := s.conn.ExecContext(ctx,
		`INSERT INTO shopping_items (name, quantity, list_id) VALUES (?, ?, ?)`,
		item.Name,
		item.Quantity,
		item.ListID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting item %q: %w", item.Name, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading new item id: %w", err)
	}
	item.ID = id

	return nil
}

// GetByID retrieves an item by ID.
func (s *ItemStore) GetByID(ctx context.Context, id int64) (*model.ShoppingItem, error) {
	var it model.ShoppingItem

	err := s.conn.QueryRowContext(ctx,
		`SELECT id, name, quantity, list_id FROM shopping_items WHERE id = ?`,
		id,
	).Scan(&it.ID, &it.Name, &it.Quantity, &it.ListID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("Item")
		}
		return nil, fmt.Errorf("sqlite: getting item %d: %w", id, err)
	}

	return &it, nil
}

// ListForList returns all items of a list ordered by ID. Empty slice when
// the list has no items — "list exists" is the service layer's check.
func (s *ItemStore) ListForList(ctx context.Context, listID int64) ([]model.ShoppingItem, error) {
	rows, err := s.conn.QueryContext(ctx,
		`SELECT id, name, quantity, list_id FROM shopping_items WHERE list_id = ? ORDER BY id`,
		listID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing items of list %d: %w", listID, err)
	}
	defer rows.Close()

	items := []model.ShoppingItem{}
	for rows.Next() {
		var it model.ShoppingItem
		if err := rows.Scan(&it.ID, &it.Name, &it.Quantity, &it.ListID); err != nil {
			return nil, fmt.Errorf("sqlite: scanning item row: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating item rows: %w", err)
	}

	return items, nil
}

// Update writes the item's name and quantity back to the row.
func (s *ItemStore) Update(ctx context.Context, item *model.ShoppingItem) error {
	res, err := s.conn.ExecContext(ctx,
		`UPDATE shopping_items SET name = ?, quantity = ? WHERE id = ?`,
		item.Name,
		item.Quantity,
		item.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating item %d: %w", item.ID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking update of item %d: %w", item.ID, err)
	}
	if affected == 0 {
		return apperror.NotFound("Item")
	}

	return nil
}

// Delete removes a single item.
func (s *ItemStore) Delete(ctx context.Context, id int64) error {
	res, err := s.conn.ExecContext(ctx, `DELETE FROM shopping_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting item %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking delete of item %d: %w", id, err)
	}
	if affected == 0 {
		return apperror.NotFound("Item")
	}

	return nil
}
