package repository

import (
	"context"

	"github.com/sakif/shopping-list/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByName(ctx context.Context, name string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Update(ctx context.Context, user *model.User) error
	// Delete removes the user and every permission edge referencing it in
	// one transaction.
	Delete(ctx context.Context, id int64) error
	// ListsFor returns the shopping lists the user has a permission edge to.
	ListsFor(ctx context.Context, id int64) ([]model.ShoppingList, error)
}

type ListRepository interface {
	Create(ctx context.Context, list *model.ShoppingList) error
	GetByID(ctx context.Context, id int64) (*model.ShoppingList, error)
	List(ctx context.Context) ([]model.ShoppingList, error)
	Update(ctx context.Context, list *model.ShoppingList) error
	// Delete removes the list, its items and every permission edge
	// referencing it in one transaction.
	Delete(ctx context.Context, id int64) error
}

type ItemRepository interface {
	Create(ctx context.Context, item *model.ShoppingItem) error
	GetByID(ctx context.Context, id int64) (*model.ShoppingItem, error)
	ListForList(ctx context.Context, listID int64) ([]model.ShoppingItem, error)
	Update(ctx context.Context, item *model.ShoppingItem) error
	Delete(ctx context.Context, id int64) error
}

// PermissionRepository persists the user↔list access relation.
//
// Grant is idempotent at this layer — the (user_id, list_id) primary key
// makes the relation a set, and inserting an existing edge is a no-op.
// Referent validation does NOT happen here: the service resolves both
// endpoints through their own repositories first, so a dangling edge can
// never be written through the sanctioned path.
type PermissionRepository interface {
	Has(ctx context.Context, userID, listID int64) (bool, error)
	Grant(ctx context.Context, userID, listID int64) error
	// Revoke deletes the edge; it returns NotFound("Permission") if the
	// edge does not exist — "already absent" is an error, unlike Grant.
	Revoke(ctx context.Context, userID, listID int64) error
}
