package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/shopping-list/internal/service"
)

// AuthHandler owns the login endpoint.
type AuthHandler struct {
	auth   *service.AuthService
	logger *slog.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(auth *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger}
}

// HandleLogin exchanges credentials for an access token.
//
// HTTP: POST /auth/  (application/x-www-form-urlencoded)
// FORM FIELDS: username, password  (the OAuth2 password-grant field names)
// RESPONSE: 200 {"access_token":"<jwt>","token_type":"bearer"}
//
//	401 for a bad name OR a bad password — one uniform answer
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.logger.Warn("login: unparseable form", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "bad_request",
			Message: "invalid form body",
		})
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	token, err := h.auth.Login(r.Context(), username, password)
	if err != nil {
		// writeError answers the uniform 401; no hint about which check
		// failed leaves this function.
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, token)
}
