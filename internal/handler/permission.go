package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/sakif/shopping-list/internal/service"
)

// PermissionHandler manages the user↔list access endpoints.
//
// All three endpoints identify the edge by query parameters (?user_id=&
// list_id=) rather than a JSON body — the edge IS the identifier, there is
// nothing else to send.
type PermissionHandler struct {
	perms  *service.PermissionService
	logger *slog.Logger
}

// NewPermissionHandler creates a PermissionHandler.
func NewPermissionHandler(perms *service.PermissionService, logger *slog.Logger) *PermissionHandler {
	return &PermissionHandler{perms: perms, logger: logger}
}

// edgeParams parses user_id and list_id from the query string.
func edgeParams(r *http.Request) (userID, listID int64, ok bool) {
	var err error
	userID, err = strconv.ParseInt(r.URL.Query().Get("user_id"), 10, 64)
	if err != nil {
		return 0, 0, false
	}
	listID, err = strconv.ParseInt(r.URL.Query().Get("list_id"), 10, 64)
	if err != nil {
		return 0, 0, false
	}
	return userID, listID, true
}

// HandleCheck reports whether the (user, list) edge exists.
//
// HTTP: GET /listperm/check?user_id=1&list_id=2
// RESPONSE: 200 with a bare JSON boolean. A nonexistent user or list is not
// an error here — it simply has no edges, so the answer is false.
func (h *PermissionHandler) HandleCheck(w http.ResponseWriter, r *http.Request) {
	userID, listID, ok := edgeParams(r)
	if !ok {
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation_error",
			Message: "user_id and list_id must be integers",
		})
		return
	}

	hasAccess, err := h.perms.HasAccess(r.Context(), userID, listID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, hasAccess)
}

// HandleGrant gives a user access to a list.
//
// HTTP: POST /listperm/?user_id=1&list_id=2
// 200 {"detail":"Access granted"}; 404 "User not found" / "List not found"
// when a referent is missing — and in that case no edge is written.
// Granting twice is a success both times (the relation is a set).
func (h *PermissionHandler) HandleGrant(w http.ResponseWriter, r *http.Request) {
	userID, listID, ok := edgeParams(r)
	if !ok {
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation_error",
			Message: "user_id and list_id must be integers",
		})
		return
	}

	if err := h.perms.Grant(r.Context(), userID, listID); err != nil {
		writeError(w, err)
		return
	}
	writeDetail(w, "Access granted")
}

// HandleRevoke removes a user's access to a list.
//
// HTTP: DELETE /listperm/?user_id=1&list_id=2
// 200 {"detail":"Permission deleted successfully"};
// 404 "Permission not found" when no such edge exists.
func (h *PermissionHandler) HandleRevoke(w http.ResponseWriter, r *http.Request) {
	userID, listID, ok := edgeParams(r)
	if !ok {
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation_error",
			Message: "user_id and list_id must be integers",
		})
		return
	}

	if err := h.perms.Revoke(r.Context(), userID, listID); err != nil {
		writeError(w, err)
		return
	}
	writeDetail(w, "Permission deleted successfully")
}
