package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/shopping-list/internal/apperror"
	"github.com/sakif/shopping-list/internal/model"
	"github.com/sakif/shopping-list/internal/repository"
)

// ListService handles the business logic for shopping lists and their items.
//
// Items do not get a service of their own: every item operation starts from
// the owning list (the routes are /shoppinglist/{id}/items/...), so keeping
// both repositories behind one service keeps the "list exists?" check in one
// place.
type ListService struct {
	lists  repository.ListRepository
	items  repository.ItemRepository
	logger *slog.Logger
}

// NewListService creates a ListService.
func NewListService(lists repository.ListRepository, items repository.ItemRepository, logger *slog.Logger) *ListService {
	return &ListService{
		lists:  lists,
		items:  items,
		logger: logger,
	}
}

// Create validates and saves a new shopping list.
func (s *ListService) Create(ctx context.Context, name string) (*model.ShoppingList, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.ValidationFailed("name", "list name is required")
	}
	if len(name) > MaxNameLength {
		return nil, apperror.ValidationFailed("name",
			fmt.Sprintf("list name must be %d characters or less", MaxNameLength))
	}

	list := &model.ShoppingList{Name: name}
	if err := s.lists.Create(ctx, list); err != nil {
		return nil, fmt.Errorf("service/list: creating list %q: %w", name, err)
	}

	s.logger.Info("list created",
		slog.Int64("id", list.ID),
		slog.String("name", list.Name),
	)

	return list, nil
}

// GetByID returns the list with the given ID, or NotFound.
func (s *ListService) GetByID(ctx context.Context, id int64) (*model.ShoppingList, error) {
	return s.lists.GetByID(ctx, id)
}

// List returns all shopping lists. An empty store is the contractual
// 404 "No lists found", mirroring the user listing.
func (s *ListService) List(ctx context.Context) ([]model.ShoppingList, error) {
	lists, err := s.lists.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service/list: listing lists: %w", err)
	}
	if len(lists) == 0 {
		return nil, apperror.NotFoundMsg("No lists found")
	}
	return lists, nil
}

// Update renames an existing list. An empty name means "leave unchanged",
// same partial-update semantics as the user patch.
func (s *ListService) Update(ctx context.Context, id int64, name string) (*model.ShoppingList, error) {
	list, err := s.lists.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if name = strings.TrimSpace(name); name != "" {
		if len(name) > MaxNameLength {
			return nil, apperror.ValidationFailed("name",
				fmt.Sprintf("list name must be %d characters or less", MaxNameLength))
		}
		list.Name = name
	}

	if err := s.lists.Update(ctx, list); err != nil {
		return nil, fmt.Errorf("service/list: updating list %d: %w", id, err)
	}

	return list, nil
}

// Delete removes the list. Items and permission edges go with it in the
// same transaction (the repository runs the explicit cascade).
func (s *ListService) Delete(ctx context.Context, id int64) error {
	if err := s.lists.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("list deleted", slog.Int64("id", id))
	return nil
}

// === Items ===

// Items returns the items of a list. The list must exist (404 otherwise);
// a list without items yields an empty slice.
func (s *ListService) Items(ctx context.Context, listID int64) ([]model.ShoppingItem, error) {
	if _, err := s.lists.GetByID(ctx, listID); err != nil {
		return nil, err
	}
	items, err := s.items.ListForList(ctx, listID)
	if err != nil {
		return nil, fmt.Errorf("service/list: listing items of list %d: %w", listID, err)
	}
	return items, nil
}

// AddItem validates and inserts an item into a list.
//
// VALIDATION CONTRACT: an empty name or a quantity ≤ 0 is rejected with a
// ValidationError before any write — the API surfaces these as 422.
func (s *ListService) AddItem(ctx context.Context, listID int64, name string, quantity int) (*model.ShoppingItem, error) {
	if _, err := s.lists.GetByID(ctx, listID); err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.ValidationFailed("name", "item name is required")
	}
	if len(name) > MaxNameLength {
		return nil, apperror.ValidationFailed("name",
			fmt.Sprintf("item name must be %d characters or less", MaxNameLength))
	}
	if quantity <= 0 {
		return nil, apperror.ValidationFailed("quantity", "quantity must be a positive integer")
	}

	item := &model.ShoppingItem{
		Name:     name,
		Quantity: quantity,
		ListID:   listID,
	}
	if err := s.items.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("service/list: adding item to list %d: %w", listID, err)
	}

	s.logger.Info("item added",
		slog.Int64("id", item.ID),
		slog.Int64("listID", listID),
		slog.String("name", item.Name),
	)

	return item, nil
}

// GetItem returns one item of a list. The item must belong to the list
// named in the route — an item reached through the wrong list is a 404,
// not a leak of another list's contents.
func (s *ListService) GetItem(ctx context.Context, listID, itemID int64) (*model.ShoppingItem, error) {
	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.ListID != listID {
		return nil, apperror.NotFound("Item")
	}
	return item, nil
}

// UpdateItem applies a partial update to an item: empty name means keep,
// quantity 0 means keep, anything negative is rejected.
func (s *ListService) UpdateItem(ctx context.Context, listID, itemID int64, name string, quantity int) (*model.ShoppingItem, error) {
	item, err := s.GetItem(ctx, listID, itemID)
	if err != nil {
		return nil, err
	}

	if name = strings.TrimSpace(name); name != "" {
		if len(name) > MaxNameLength {
			return nil, apperror.ValidationFailed("name",
				fmt.Sprintf("item name must be %d characters or less", MaxNameLength))
		}
		item.Name = name
	}

	if quantity != 0 {
		if quantity < 0 {
			return nil, apperror.ValidationFailed("quantity", "quantity must be a positive integer")
		}
		item.Quantity = quantity
	}

	if err := s.items.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("service/list: updating item %d: %w", itemID, err)
	}

	return item, nil
}

// DeleteItem removes one item from a list.
func (s *ListService) DeleteItem(ctx context.Context, listID, itemID int64) error {
	if _, err := s.GetItem(ctx, listID, itemID); err != nil {
		return err
	}
	if err := s.items.Delete(ctx, itemID); err != nil {
		return fmt.Errorf("service/list: deleting item %d: %w", itemID, err)
	}
	s.logger.Info("item deleted",
		slog.Int64("id", itemID),
		slog.Int64("listID", listID),
	)
	return nil
}
