package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mesero-nana/api/internal/filter"
	"github.com/mesero-nana/api/internal/menu"
)

// MenuHandler serves the catalog.
type MenuHandler struct{}

// NewMenuHandler creates a new MenuHandler.
func NewMenuHandler() *MenuHandler {
	return &MenuHandler{}
}

// RegisterRoutes registers menu endpoints on the given Chi router.
func (h *MenuHandler) RegisterRoutes(r chi.Router) {
	r.Get("/menu", h.List)
}

// List handles GET /menu. Supports ?search= and ?category= narrowing.
func (h *MenuHandler) List(w http.ResponseWriter, r *http.Request) {
	categories := filter.Menu(menu.Catalog(), filter.MenuCriteria{
		SearchTerm:       r.URL.Query().Get("search"),
		SelectedCategory: r.URL.Query().Get("category"),
	})
	writeJSON(w, http.StatusOK, map[string]interface{}{"categories": categories})
}
