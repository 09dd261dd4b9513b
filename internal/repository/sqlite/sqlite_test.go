package sqlite

import (
	"context"
	"testing"

	"github.com/sakif/shopping-list/internal/model"
)

// TESTING WITH IN-MEMORY SQLITE:
// Using ":memory:" creates a fresh database that exists only during the test.
// Fast (no disk I/O), isolated (each test gets its own database), and clean
// (destroyed when the connection closes).
//
// newTestDB is a test helper. The `t.Helper()` call tells Go's test
// framework to report failures at the CALLER's line number, which makes the
// output much clearer.
func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// createTestUser creates a user and fails the test if it errors.
// The hash is a fixed fake — these tests exercise SQL, not bcrypt.
func createTestUser(t *testing.T, db *DB, name string) *model.User {
	t.Helper()
	user := &model.User{
		Name:         name,
		PasswordHash: "$2a$04$fakefakefakefakefakefakefakefakefakefakefakefakefakef",
	}
	if err := db.Users().Create(context.Background(), user); err != nil {
		t.Fatalf("failed to create test user %q: %v", name, err)
	}
	return user
}

// createTestList creates a shopping list and fails the test if it errors.
func createTestList(t *testing.T, db *DB, name string) *model.ShoppingList {
	t.Helper()
	list := &model.ShoppingList{Name: name}
	if err := db.Lists().Create(context.Background(), list); err != nil {
		t.Fatalf("failed to create test list %q: %v", name, err)
	}
	return list
}

// createTestItem adds an item to a list and fails the test if it errors.
func createTestItem(t *testing.T, db *DB, listID int64, name string, quantity int) *model.ShoppingItem {
	t.Helper()
	item := &model.ShoppingItem{Name: name, Quantity: quantity, ListID: listID}
	if err := db.Items().Create(context.Background(), item); err != nil {
		t.Fatalf("failed to create test item %q: %v", name, err)
	}
	return item
}

// grantTest adds a permission edge and fails the test if it errors.
func grantTest(t *testing.T, db *DB, userID, listID int64) {
	t.Helper()
	if err := db.Permissions().Grant(context.Background(), userID, listID); err != nil {
		t.Fatalf("failed to grant (%d, %d): %v", userID, listID, err)
	}
}
