package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/shopping-list/internal/apperror"
)

// contextKey is an unexported type used for context keys in this package.
//
// WHY A CUSTOM TYPE FOR CONTEXT KEYS?
// context.WithValue uses any as the key type. If you use a plain string like
// context.WithValue(ctx, "subject", name), ANY package that knows the string
// "subject" can read or shadow your value. Using a package-private type
// prevents collisions: only THIS package can create a key of type
// contextKey, so only this package can read or write values under it.
type contextKey string

const subjectKey contextKey = "subject"

// RequireAuth is a middleware that enforces authentication on protected routes.
//
// It reads the JWT from the `Authorization: Bearer <token>` header, validates
// it, and stores the subject name in the request context. If the header is
// missing or the token invalid, it returns 401 and stops the request chain.
//
// MIDDLEWARE PATTERN IN GO:
// A middleware is a function that takes an http.Handler and returns a new
// http.Handler that wraps it. Chi applies middlewares in a chain:
// req → M1 → M2 → Handler → M2 → M1 → resp
func RequireAuth(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			subject, err := extractSubject(r, tokens)
			if err != nil {
				unauthorized(w)
				return
			}

			// Store the subject in context so handlers can read it
			ctx := context.WithValue(r.Context(), subjectKey, subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireListAccess enforces the full authorization decision on routes that
// carry a {id} list parameter: valid token AND a permission edge for
// (token's user, list). It delegates the decision to the Gate — the
// middleware only does the HTTP plumbing.
//
// Responses: 401 for anything token-related (uniformly — no cause leaks),
// 404 if the list or the token's account no longer exists, 403 when the
// token is fine but no permission edge exists. Anything else is an
// infrastructure failure, not a denial — it goes out as a 500 with the
// generic body, never as a 403 the client might cache as "no access".
func RequireListAccess(gate *Gate) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			listID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
			if err != nil {
				writeJSONError(w, http.StatusNotFound, "not_found", "List not found")
				return
			}

			user, err := gate.Authorize(r.Context(), bearerToken(r), listID)
			if err != nil {
				switch {
				case errors.Is(err, apperror.ErrUnauthenticated):
					unauthorized(w)
				case errors.Is(err, apperror.ErrNotFound):
					writeJSONError(w, http.StatusNotFound, "not_found", "User not found")
				case errors.Is(err, ErrNoAccess):
					writeJSONError(w, http.StatusForbidden, "forbidden", "no access to this list")
				default:
					writeJSONError(w, http.StatusInternalServerError, "internal_error", "An internal error occurred")
				}
				return
			}

			ctx := context.WithValue(r.Context(), subjectKey, user.Name)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SubjectFromContext retrieves the authenticated subject name from the
// request context.
//
// Returns ("", false) if the request is anonymous (no valid token was
// present on the chain that led here).
func SubjectFromContext(ctx context.Context) (string, bool) {
	name, ok := ctx.Value(subjectKey).(string)
	return name, ok && name != ""
}

// bearerToken pulls the raw token out of the Authorization header.
// Returns "" if the header is absent or not of the Bearer scheme — the
// token service rejects "" like any other invalid token.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// extractSubject reads the bearer header and validates the token.
func extractSubject(r *http.Request, tokens *TokenService) (string, error) {
	token := bearerToken(r)
	if token == "" {
		return "", ErrInvalidToken
	}
	return tokens.Validate(token)
}

// writeJSONError sends an error body in the same envelope the handler layer
// uses, so middleware rejections are indistinguishable in shape from any
// other API error.
func writeJSONError(w http.ResponseWriter, status int, errType, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{
		"error":   errType,
		"message": message,
	})
}

// unauthorized writes the uniform 401 body. The WWW-Authenticate header is
// part of the bearer-token contract (RFC 6750).
func unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	writeJSONError(w, http.StatusUnauthorized, "unauthenticated", "Could not validate credentials")
}
