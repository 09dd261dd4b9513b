package handler

// RESPONSE HELPERS:
// These functions standardise how we send JSON responses and errors.
//
// CONSISTENT ERROR FORMAT:
// Every error response from the API has the same shape:
//
//	{"error": "not_found", "message": "List not found"}
//
// The message strings on the 404s ("User not found", "List not found",
// "Item not found", "Permission not found", ...) are part of the API
// contract — clients match on them, so they come verbatim from the
// apperror values the services return.

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sakif/shopping-list/internal/apperror"
)

// ErrorResponse is the standard error format returned by all API endpoints.
type ErrorResponse struct {
	Error   string `json:"error"`   // Machine-readable error type (e.g., "not_found")
	Message string `json:"message"` // Human-readable description
}

// DetailResponse is the `{"detail": "..."}` success body several endpoints
// promise (grant, revoke, deletes).
type DetailResponse struct {
	Detail string `json:"detail"`
}

// writeJSON sends a JSON response with the given status code.
//
// HEADER ORDER MATTERS: headers and status code must be set BEFORE writing
// the body. Once Encode calls w.Write, the headers are already on the wire.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Headers are already sent — all we can do is log it.
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeDetail sends a 200 with a `{"detail": "..."}` body.
func writeDetail(w http.ResponseWriter, detail string) {
	writeJSON(w, http.StatusOK, DetailResponse{Detail: detail})
}

// writeError maps a domain error to the appropriate HTTP status code and sends it.
//
// ERROR MAPPING:
// The service layer returns apperror sentinels; this is the single place
// they become status codes:
//
//	ErrValidation      → 422 (a well-formed request with out-of-range values)
//	ErrNotFound        → 404
//	ErrConflict        → 409
//	ErrUnauthenticated → 401 (+ WWW-Authenticate: Bearer)
//	anything else      → 500 with a generic body
//
// errors.Is walks the wrap chain (fmt.Errorf %w → AppError → sentinel), so
// services are free to add context while handlers still classify correctly.
func writeError(w http.ResponseWriter, err error) {
	var appErr *apperror.AppError

	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError
		errorType := "internal_error"

		switch {
		case errors.Is(err, apperror.ErrValidation):
			status = http.StatusUnprocessableEntity // 422
			errorType = "validation_error"
		case errors.Is(err, apperror.ErrNotFound):
			status = http.StatusNotFound // 404
			errorType = "not_found"
		case errors.Is(err, apperror.ErrConflict):
			status = http.StatusConflict // 409
			errorType = "conflict"
		case errors.Is(err, apperror.ErrUnauthenticated):
			status = http.StatusUnauthorized // 401
			errorType = "unauthenticated"
			w.Header().Set("WWW-Authenticate", "Bearer")
		}

		writeJSON(w, status, ErrorResponse{
			Error:   errorType,
			Message: appErr.Message,
		})
		return
	}

	// Unknown error — return a generic 500. NEVER expose the raw error to
	// the client: it might contain SQL fragments or file paths.
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error:   "internal_error",
		Message: "An internal error occurred",
	})
}
