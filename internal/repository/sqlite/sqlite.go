// Package sqlite implements the repository interfaces using SQLite as the storage backend.
//
// WHY SQLITE?
// SQLite is an embedded database — it lives inside your Go binary as a single file.
// No separate database server to install, configure, or manage. Perfect for:
// - Single-server deployments (which is most apps, honestly)
// - Development and testing (use ":memory:" for an in-memory DB)
//
// WHY modernc.org/sqlite INSTEAD OF github.com/mattn/go-sqlite3?
// mattn/go-sqlite3 uses CGo (calls C code from Go), which means you need a C compiler
// installed and cross-compilation becomes painful. modernc.org/sqlite is a pure Go
// translation of the SQLite C code — no C compiler needed, works everywhere Go works.
package sqlite

import (
	"database/sql"
	"fmt"

	// BLANK IMPORT:
	// The underscore import is a "side-effect only" import. The sqlite
	// package's init() registers itself with database/sql as a driver named
	// "sqlite". After this import, sql.Open("sqlite", ...) works.
	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB connection pool. The per-entity stores (Users, Lists,
// Items, Permissions) all share this one pool — the tables live in one
// database and the cascade deletes touch several of them inside a single
// transaction.
type DB struct {
	conn *sql.DB
}

// Users returns the user store backed by this database.
func (db *DB) Users() *UserStore { return &UserStore{conn: db.conn} }

// Lists returns the shopping-list store backed by this database.
func (db *DB) Lists() *ListStore { return &ListStore{conn: db.conn} }

// Items returns the item store backed by this database.
func (db *DB) Items() *ItemStore { return &ItemStore{conn: db.conn} }

// Permissions returns the permission-edge store backed by this database.
func (db *DB) Permissions() *PermissionStore { return &PermissionStore{conn: db.conn} }

// New creates a new SQLite database connection and runs migrations.
//
// dbPath examples:
//   - "data/shoppinglist.db" → file-based database (persistent)
//   - ":memory:"             → in-memory database (tests, lost on close)
func New(dbPath string) (*DB, error) {
	// The pragmas ride in the DSN so the driver applies them to EVERY
	// connection the pool opens — a plain `PRAGMA ...` Exec would only
	// configure whichever single connection happened to run it:
	//
	// journal_mode=WAL:
	// Default SQLite locks the entire database during writes. WAL mode
	// allows concurrent reads WHILE a write is happening — important for a
	// web server where multiple requests hit the DB.
	//
	// foreign_keys=ON:
	// Foreign keys are OFF by default in SQLite (backwards compatibility).
	// The permission edges and items reference users/lists, so referential
	// integrity must be enforced. The application still runs its cascade
	// deletes explicitly — the ON DELETE CASCADE clauses are a backstop,
	// not the mechanism.
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)"
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// An in-memory database exists per connection: if the pool opened a
	// second connection it would see an empty database with no schema.
	// Pinning the pool to one connection keeps ":memory:" coherent.
	if dbPath == ":memory:" {
		conn.SetMaxOpenConns(1)
	}

	// Ping verifies the connection actually works. Without this, a bad path
	// or permissions issue would only surface on the first query.
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the database connection pool. Wherever you call New(),
// immediately defer Close() — it flushes the WAL and releases the file lock.
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates the schema.
//
// CREATE TABLE IF NOT EXISTS is idempotent — safe to run on every startup.
// For this schema that is all we need; a real migration tool only earns its
// keep once existing tables start changing shape.
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			name          TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("creating users table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS shopping_lists (
			id   INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("creating shopping_lists table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS shopping_items (
			id       INTEGER PRIMARY KEY AUTOINCREMENT,
			name     TEXT NOT NULL,
			quantity INTEGER NOT NULL,
			list_id  INTEGER NOT NULL REFERENCES shopping_lists(id) ON DELETE CASCADE
		);
		CREATE INDEX IF NOT EXISTS idx_shopping_items_list_id ON shopping_items(list_id);
	`)
	if err != nil {
		return fmt.Errorf("creating shopping_items table: %w", err)
	}

	// The composite PRIMARY KEY makes the permission relation a SET of
	// edges: inserting the same (user_id, list_id) twice cannot produce a
	// second row.
	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS list_permissions (
			user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			list_id INTEGER NOT NULL REFERENCES shopping_lists(id) ON DELETE CASCADE,
			PRIMARY KEY (user_id, list_id)
		);
	`)
	if err != nil {
		return fmt.Errorf("creating list_permissions table: %w", err)
	}

	return nil
}
