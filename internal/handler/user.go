package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/shopping-list/internal/service"
)

// UserHandler manages CRUD operations for user accounts.
type UserHandler struct {
	users  *service.UserService
	logger *slog.Logger
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(users *service.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{users: users, logger: logger}
}

// userRequest is the JSON body of create and patch. On patch, both fields
// are optional — an empty field means "leave unchanged".
type userRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// idParam parses the {id} URL parameter of the current route.
// A non-numeric ID can't reference anything, so it reports (0, false) and
// the caller answers 404 with the entity's contractual message.
func idParam(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	return id, err == nil
}

// HandleList returns all users.
//
// HTTP: GET /user/
// 200 with the array, 404 "No users found" when the table is empty.
func (h *UserHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// HandleGet returns a single user.
//
// HTTP: GET /user/{id}
func (h *UserHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "not_found", Message: "User not found"})
		return
	}

	user, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// HandleCreate registers a new user.
//
// HTTP: POST /user/
// BODY: {"name": "alice", "password": "s3cret"}
// 200 with the created user (the hash never appears — json:"-"),
// 409 when the name is taken, 422 when name or password is missing.
func (h *UserHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid user JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "bad_request", Message: "Invalid JSON body"})
		return
	}

	user, err := h.users.Create(r.Context(), req.Name, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// HandleUpdate applies a name and/or password change.
//
// HTTP: PATCH /user/{id}
func (h *UserHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "not_found", Message: "User not found"})
		return
	}

	var req userRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid user JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "bad_request", Message: "Invalid JSON body"})
		return
	}

	user, err := h.users.Update(r.Context(), id, req.Name, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// HandleDelete removes a user (and, transactionally, their permission edges).
//
// HTTP: DELETE /user/{id}
func (h *UserHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "not_found", Message: "User not found"})
		return
	}

	if err := h.users.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeDetail(w, "User deleted successfully")
}

// HandleLists returns the shopping lists the user has access to.
//
// HTTP: GET /user/{id}/lists
// 200 with a (possibly empty) array; 404 if the user doesn't exist.
func (h *UserHandler) HandleLists(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "not_found", Message: "User not found"})
		return
	}

	lists, err := h.users.Lists(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lists)
}
