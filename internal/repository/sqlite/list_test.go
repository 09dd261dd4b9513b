package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/sakif/shopping-list/internal/apperror"
	"github.com/sakif/shopping-list/internal/model"
)

// =========================================================================
// LIST CRUD TESTS
// =========================================================================

func TestListCreateAndGet(t *testing.T) {
	db := newTestDB(t)

	list := &model.ShoppingList{Name: "Groceries"}
	if err := db.Lists().Create(context.Background(), list); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if list.ID == 0 {
		t.Error("Create() did not set list.ID")
	}

	got, err := db.Lists().GetByID(context.Background(), list.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Name != "Groceries" {
		t.Errorf("Name = %q, want %q", got.Name, "Groceries")
	}
}

func TestListGetByID_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.Lists().GetByID(context.Background(), 808)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("GetByID(missing) error = %v, want ErrNotFound", err)
	}
}

func TestListUpdate(t *testing.T) {
	db := newTestDB(t)

	list := createTestList(t, db, "Groceries")
	list.Name = "Weekly Groceries"
	if err := db.Lists().Update(context.Background(), list); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got, err := db.Lists().GetByID(context.Background(), list.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Name != "Weekly Groceries" {
		t.Errorf("Name after update = %q, want %q", got.Name, "Weekly Groceries")
	}
}

func TestListUpdate_NotFound(t *testing.T) {
	db := newTestDB(t)

	ghost := &model.ShoppingList{ID: 999, Name: "Ghost"}
	if err := db.Lists().Update(context.Background(), ghost); !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("Update(missing) error = %v, want ErrNotFound", err)
	}
}

// =========================================================================
// DELETE / CASCADE TESTS
// =========================================================================

func TestListDelete_CascadesItemsAndPermissions(t *testing.T) {
	db := newTestDB(t)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	groceries := createTestList(t, db, "Groceries")
	milk := createTestItem(t, db, groceries.ID, "Milk", 2)
	bread := createTestItem(t, db, groceries.ID, "Bread", 1)
	grantTest(t, db, alice.ID, groceries.ID)
	grantTest(t, db, bob.ID, groceries.ID)

	if err := db.Lists().Delete(context.Background(), groceries.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	// The list is gone.
	if _, err := db.Lists().GetByID(context.Background(), groceries.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetByID(deleted list) error = %v, want ErrNotFound", err)
	}

	// Both items went with it.
	for _, itemID := range []int64{milk.ID, bread.ID} {
		if _, err := db.Items().GetByID(context.Background(), itemID); !errors.Is(err, apperror.ErrNotFound) {
			t.Errorf("item %d survived list delete: %v", itemID, err)
		}
	}

	// Every permission edge referencing the list went with it too.
	for _, userID := range []int64{alice.ID, bob.ID} {
		ok, err := db.Permissions().Has(context.Background(), userID, groceries.ID)
		if err != nil {
			t.Fatalf("Has() error = %v", err)
		}
		if ok {
			t.Errorf("dangling permission edge (user %d, list %d) survived list delete", userID, groceries.ID)
		}
	}

	// The users themselves are untouched.
	if _, err := db.Users().GetByID(context.Background(), alice.ID); err != nil {
		t.Errorf("user was deleted along with the list: %v", err)
	}
}

func TestListDelete_NotFound(t *testing.T) {
	db := newTestDB(t)

	if err := db.Lists().Delete(context.Background(), 999); !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("Delete(missing) error = %v, want ErrNotFound", err)
	}
}

// =========================================================================
// ITEM TESTS
// =========================================================================

func TestItemCreateAndGet(t *testing.T) {
	db := newTestDB(t)

	groceries := createTestList(t, db, "Groceries")
	item := &model.ShoppingItem{Name: "Milk", Quantity: 5, ListID: groceries.ID}
	if err := db.Items().Create(context.Background(), item); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if item.ID == 0 {
		t.Error("Create() did not set item.ID")
	}

	got, err := db.Items().GetByID(context.Background(), item.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	// The quantity must round-trip exactly.
	if got.Quantity != 5 {
		t.Errorf("Quantity = %d, want 5", got.Quantity)
	}
	if got.ListID != groceries.ID {
		t.Errorf("ListID = %d, want %d", got.ListID, groceries.ID)
	}
}

func TestItemListForList(t *testing.T) {
	db := newTestDB(t)

	groceries := createTestList(t, db, "Groceries")
	hardware := createTestList(t, db, "Hardware")
	createTestItem(t, db, groceries.ID, "Milk", 2)
	createTestItem(t, db, groceries.ID, "Bread", 1)
	createTestItem(t, db, hardware.ID, "Nails", 100)

	items, err := db.Items().ListForList(context.Background(), groceries.ID)
	if err != nil {
		t.Fatalf("ListForList() error = %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("ListForList(groceries) returned %d items, want 2", len(items))
	}
	for _, it := range items {
		if it.ListID != groceries.ID {
			t.Errorf("item %q belongs to list %d, want %d", it.Name, it.ListID, groceries.ID)
		}
	}
}

func TestItemUpdateAndDelete(t *testing.T) {
	db := newTestDB(t)

	groceries := createTestList(t, db, "Groceries")
	milk := createTestItem(t, db, groceries.ID, "Milk", 2)

	milk.Quantity = 3
	if err := db.Items().Update(context.Background(), milk); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	got, err := db.Items().GetByID(context.Background(), milk.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Quantity != 3 {
		t.Errorf("Quantity after update = %d, want 3", got.Quantity)
	}

	if err := db.Items().Delete(context.Background(), milk.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := db.Items().GetByID(context.Background(), milk.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetByID(deleted) error = %v, want ErrNotFound", err)
	}
}

func TestItemDelete_NotFound(t *testing.T) {
	db := newTestDB(t)

	if err := db.Items().Delete(context.Background(), 999); !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("Delete(missing) error = %v, want ErrNotFound", err)
	}
}
