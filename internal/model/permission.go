package model

// Permission is one edge in the user↔list access relation.
//
// The pair (UserID, ListID) is the primary key in the database, which makes
// the relation a SET of edges: granting the same pair twice leaves exactly
// one row. Both sides are foreign keys — deleting either endpoint deletes
// the edge.
type Permission struct {
	UserID int64 `json:"userId"`
	ListID int64 `json:"listId"`
}

// Token is the response body of a successful login.
//
// The access token itself is a signed JWT — nothing is stored server-side.
// TokenType is always "bearer": the client sends the token back as
// `Authorization: Bearer <token>`.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
