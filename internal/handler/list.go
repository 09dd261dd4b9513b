package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sakif/shopping-list/internal/service"
)

// ListHandler manages CRUD operations for shopping lists and their items.
type ListHandler struct {
	lists  *service.ListService
	logger *slog.Logger
}

// NewListHandler creates a ListHandler.
func NewListHandler(lists *service.ListService, logger *slog.Logger) *ListHandler {
	return &ListHandler{lists: lists, logger: logger}
}

type listRequest struct {
	Name string `json:"name"`
}

// itemRequest is the JSON body for item create and patch. On patch a zero
// quantity means "leave unchanged"; on create it fails validation (the
// contract requires a positive integer).
type itemRequest struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// HandleList returns all shopping lists.
//
// HTTP: GET /shoppinglist/
// 200 with the array, 404 "No lists found" when there are none.
func (h *ListHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	lists, err := h.lists.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lists)
}

// HandleGet returns a single list.
//
// HTTP: GET /shoppinglist/{id}
func (h *ListHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "not_found", Message: "List not found"})
		return
	}

	list, err := h.lists.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// HandleCreate creates a new shopping list.
//
// HTTP: POST /shoppinglist/
// BODY: {"name": "Groceries"}
func (h *ListHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req listRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid list JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "bad_request", Message: "Invalid JSON body"})
		return
	}

	list, err := h.lists.Create(r.Context(), req.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// HandleUpdate renames a list.
//
// HTTP: PATCH /shoppinglist/{id}
func (h *ListHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "not_found", Message: "List not found"})
		return
	}

	var req listRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid list JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "bad_request", Message: "Invalid JSON body"})
		return
	}

	list, err := h.lists.Update(r.Context(), id, req.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// HandleDelete removes a list, its items and its permission edges.
//
// HTTP: DELETE /shoppinglist/{id}
func (h *ListHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "not_found", Message: "List not found"})
		return
	}

	if err := h.lists.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeDetail(w, "List deleted successfully")
}

// === Items ===

// HandleItems returns the items of a list.
//
// HTTP: GET /shoppinglist/{id}/items
// 200 with a (possibly empty) array; 404 if the list doesn't exist.
func (h *ListHandler) HandleItems(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "not_found", Message: "List not found"})
		return
	}

	items, err := h.lists.Items(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// HandleAddItem adds an item to a list.
//
// HTTP: POST /shoppinglist/{id}/items
// BODY: {"name": "Milk", "quantity": 2}
// 422 on empty name or quantity ≤ 0; the invalid item is never stored.
func (h *ListHandler) HandleAddItem(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "not_found", Message: "List not found"})
		return
	}

	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid item JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "bad_request", Message: "Invalid JSON body"})
		return
	}

	item, err := h.lists.AddItem(r.Context(), id, req.Name, req.Quantity)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// HandleGetItem returns one item.
//
// HTTP: GET /shoppinglist/{id}/items/{itemID}
func (h *ListHandler) HandleGetItem(w http.ResponseWriter, r *http.Request) {
	listID, ok := idParam(r, "id")
	if !ok {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "not_found", Message: "List not found"})
		return
	}
	itemID, ok := idParam(r, "itemID")
	if !ok {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "not_found", Message: "Item not found"})
		return
	}

	item, err := h.lists.GetItem(r.Context(), listID, itemID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// HandleUpdateItem applies a partial update to an item.
//
// HTTP: PATCH /shoppinglist/{id}/items/{itemID}
func (h *ListHandler) HandleUpdateItem(w http.ResponseWriter, r *http.Request) {
	listID, ok := idParam(r, "id")
	if !ok {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "not_found", Message: "List not found"})
		return
	}
	itemID, ok := idParam(r, "itemID")
	if !ok {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "not_found", Message: "Item not found"})
		return
	}

	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid item JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "bad_request", Message: "Invalid JSON body"})
		return
	}

	item, err := h.lists.UpdateItem(r.Context(), listID, itemID, req.Name, req.Quantity)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// HandleDeleteItem removes one item.
//
// HTTP: DELETE /shoppinglist/{id}/items/{itemID}
func (h *ListHandler) HandleDeleteItem(w http.ResponseWriter, r *http.Request) {
	listID, ok := idParam(r, "id")
	if !ok {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "not_found", Message: "List not found"})
		return
	}
	itemID, ok := idParam(r, "itemID")
	if !ok {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "not_found", Message: "Item not found"})
		return
	}

	if err := h.lists.DeleteItem(r.Context(), listID, itemID); err != nil {
		writeError(w, err)
		return
	}
	writeDetail(w, "Item deleted successfully")
}
