package handler

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/player2player/navmenu/internal/auth"
)

// AuthHandler handles the session boundary routes.
type AuthHandler struct {
	users  *auth.Users
	logger *slog.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(users *auth.Users, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{users: users, logger: logger}
}

// Logout destroys the visitor's session and redirects to the requested
// local destination.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.users.SignOut(r.Context()); err != nil {
		h.logger.Error("session destroy failed", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "logout failed")
		return
	}

	redirectTo := r.URL.Query().Get("redirect_to")
	// Only local redirects are honored to prevent open URL redirects
	target, err := url.Parse(redirectTo)
	if err != nil || target.Hostname() != "" || redirectTo == "" {
		redirectTo = auth.HomeURL
	}

	http.Redirect(w, r, redirectTo, http.StatusSeeOther)
}
