package handler

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/player2player/navmenu/internal/auth"
	"github.com/player2player/navmenu/internal/service"
)

// MenuHandler serves rendered navigation menus.
type MenuHandler struct {
	menus  *service.MenuService
	users  *auth.Users
	logger *slog.Logger
}

// NewMenuHandler creates a new menu handler.
func NewMenuHandler(menus *service.MenuService, users *auth.Users, logger *slog.Logger) *MenuHandler {
	return &MenuHandler{menus: menus, users: users, logger: logger}
}

// Get renders the menu at the requested location as a nested tree.
func (h *MenuHandler) Get(w http.ResponseWriter, r *http.Request) {
	location := chi.URLParam(r, "location")

	user := h.users.Current(r.Context())

	tree, err := h.menus.Render(r.Context(), location, user)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeJSONError(w, http.StatusNotFound, "menu not found")
			return
		}
		h.logger.Error("menu render failed", "location", location, "error", err)
		writeJSONError(w, http.StatusInternalServerError, "menu render failed")
		return
	}

	writeJSONSuccess(w, map[string]any{
		"location": location,
		"items":    tree,
	})
}
