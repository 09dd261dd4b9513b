package model

// ShoppingList is a named list of items. Access to a list is controlled by
// Permission edges — a list has no single owner, any number of users can be
// granted access to it.
type ShoppingList struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ShoppingItem is one entry on a shopping list.
//
// Quantity must be a positive integer — the service layer rejects zero and
// negative values before they ever reach the database. ListID references the
// owning list; deleting the list deletes its items.
type ShoppingItem struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	ListID   int64  `json:"listId"`
}
