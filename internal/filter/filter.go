// Package filter derives filtered views over orders and the menu. The
// projections never mutate their input and preserve the original relative
// order of the source collection.
package filter

import (
	"strings"
	"time"

	"github.com/mesero-nana/api/internal/domain"
)

// Criteria narrows an order list. Every present field is ANDed; zero
// values impose no constraint.
type Criteria struct {
	Status     string
	Source     string
	SearchTerm string
	DateFrom   *time.Time
	DateTo     *time.Time
}

// Orders returns the orders matching every present criterion. The search
// term matches case-insensitively against the order number, customer name,
// customer phone and every item name; date bounds on CreatedAt are
// inclusive.
func Orders(orders []domain.Order, c Criteria) []domain.Order {
	out := make([]domain.Order, 0, len(orders))
	for _, o := range orders {
		if c.Status != "" && o.Status != c.Status {
			continue
		}
		if c.Source != "" && o.Source != c.Source {
			continue
		}
		if c.SearchTerm != "" && !matchesTerm(o, c.SearchTerm) {
			continue
		}
		if c.DateFrom != nil && o.CreatedAt.Before(*c.DateFrom) {
			continue
		}
		if c.DateTo != nil && o.CreatedAt.After(*c.DateTo) {
			continue
		}
		out = append(out, o)
	}
	return out
}

func matchesTerm(o domain.Order, term string) bool {
	t := strings.ToLower(term)
	if strings.Contains(strings.ToLower(o.OrderNumber), t) {
		return true
	}
	if strings.Contains(strings.ToLower(o.CustomerInfo.Name), t) {
		return true
	}
	if strings.Contains(strings.ToLower(o.CustomerInfo.Phone), t) {
		return true
	}
	for _, item := range o.Items {
		if strings.Contains(strings.ToLower(item.Name), t) {
			return true
		}
	}
	return false
}

// MenuCriteria narrows the menu view.
type MenuCriteria struct {
	SearchTerm       string
	SelectedCategory string
}

// Menu narrows each category's item list by case-insensitive name
// substring and optional category id, dropping categories left without
// matching items.
func Menu(categories []domain.MenuCategory, c MenuCriteria) []domain.MenuCategory {
	term := strings.ToLower(c.SearchTerm)
	out := make([]domain.MenuCategory, 0, len(categories))
	for _, cat := range categories {
		if c.SelectedCategory != "" && cat.ID != c.SelectedCategory {
			continue
		}
		items := make([]domain.MenuItem, 0, len(cat.Items))
		for _, item := range cat.Items {
			if term != "" && !strings.Contains(strings.ToLower(item.Name), term) {
				continue
			}
			items = append(items, item)
		}
		if len(items) == 0 {
			continue
		}
		cat.Items = items
		out = append(out, cat)
	}
	return out
}
