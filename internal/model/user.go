// Package model defines the data structures used throughout the application.
package model

// User represents a registered account.
//
// WHY PasswordHash WITH json:"-"?
// The bcrypt digest must never leave the server. The `json:"-"` tag tells
// encoding/json to skip the field entirely, so even if a handler encodes a
// *User straight into a response the hash cannot leak.
//
// The ID is assigned by the database (INTEGER PRIMARY KEY AUTOINCREMENT)
// and never changes for the lifetime of the account. Name carries a UNIQUE
// constraint — it doubles as the login identifier and the JWT subject.
type User struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	PasswordHash string `json:"-"`
}
