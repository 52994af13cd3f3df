package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/mesero-nana/api/internal/domain"
	"github.com/mesero-nana/api/internal/handler"
)

func newMenuRouter(t *testing.T) chi.Router {
	t.Helper()
	r := chi.NewRouter()
	handler.NewMenuHandler().RegisterRoutes(r)
	return r
}

func getMenu(t *testing.T, r chi.Router, path string) []domain.MenuCategory {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d", rr.Code)
	}
	var resp struct {
		Categories []domain.MenuCategory `json:"categories"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return resp.Categories
}

func TestMenuEndpoint(t *testing.T) {
	r := newMenuRouter(t)

	categories := getMenu(t, r, "/menu")
	if len(categories) == 0 {
		t.Fatal("empty menu")
	}
}

func TestMenuSearch(t *testing.T) {
	r := newMenuRouter(t)

	categories := getMenu(t, r, "/menu?search=pizza")
	if len(categories) != 1 || categories[0].ID != "pizzas" {
		t.Errorf("search results: %+v", categories)
	}
}

func TestMenuCategoryFilter(t *testing.T) {
	r := newMenuRouter(t)

	categories := getMenu(t, r, "/menu?category=bebidas")
	if len(categories) != 1 || categories[0].ID != "bebidas" {
		t.Errorf("category results: %+v", categories)
	}
}
