// Package menu holds the immutable catalog. It is defined at process start
// and never mutated at runtime; accessors hand out copies.
package menu

import (
	"github.com/shopspring/decimal"

	"github.com/mesero-nana/api/internal/domain"
	"github.com/mesero-nana/api/internal/enum"
)

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func additive(id, name, pricePerUnit string) domain.Modifier {
	return domain.Modifier{
		ID:           id,
		Name:         name,
		Kind:         enum.ModifierKindAdditive,
		PricePerUnit: price(pricePerUnit),
	}
}

func subtractive(id, name string) domain.Modifier {
	return domain.Modifier{
		ID:   id,
		Name: name,
		Kind: enum.ModifierKindSubtractive,
	}
}

var catalog = []domain.MenuCategory{
	{
		ID:   "pizzas",
		Name: "Pizzas",
		Icon: "pizza",
		Items: []domain.MenuItem{
			{
				ID:        "pizza-margherita",
				Name:      "Pizza Margherita",
				BasePrice: price("12.99"),
				Modifiers: []domain.Modifier{
					additive("queso", "Queso Extra", "1.50"),
					subtractive("cebolla", "Cebolla"),
					{
						ID:   "salsa",
						Name: "Salsa",
						Kind: enum.ModifierKindOption,
						Options: []domain.ModifierOption{
							{Name: "Tomate", Price: price("0.00")},
							{Name: "Blanca", Price: price("1.00")},
						},
					},
				},
			},
			{
				ID:        "pizza-pepperoni",
				Name:      "Pizza Pepperoni",
				BasePrice: price("14.99"),
				Modifiers: []domain.Modifier{
					additive("queso", "Queso Extra", "1.50"),
					additive("pepperoni", "Pepperoni Extra", "2.00"),
					subtractive("cebolla", "Cebolla"),
				},
			},
			{
				ID:        "pizza-hawaiana",
				Name:      "Pizza Hawaiana",
				BasePrice: price("15.99"),
				Modifiers: []domain.Modifier{
					additive("queso", "Queso Extra", "1.50"),
					subtractive("pina", "Piña"),
				},
			},
		},
	},
	{
		ID:   "ensaladas",
		Name: "Ensaladas",
		Icon: "salad",
		Items: []domain.MenuItem{
			{
				ID:        "ensalada-cesar",
				Name:      "Ensalada César",
				BasePrice: price("8.99"),
				Modifiers: []domain.Modifier{
					additive("pollo", "Pollo", "3.00"),
					{
						ID:            "toppings",
						Name:          "Toppings",
						Kind:          enum.ModifierKindOption,
						AllowMultiple: true,
						Options: []domain.ModifierOption{
							{Name: "Parmesano", Price: price("0.50")},
							{Name: "Crutones", Price: price("0.00")},
							{Name: "Aguacate", Price: price("1.25")},
						},
					},
				},
			},
		},
	},
	{
		ID:   "entradas",
		Name: "Entradas",
		Icon: "soup",
		Items: []domain.MenuItem{
			{
				ID:        "sopa-tomate",
				Name:      "Sopa de Tomate",
				BasePrice: price("6.99"),
				Modifiers: []domain.Modifier{
					additive("crema", "Crema", "0.75"),
				},
			},
			{
				ID:        "bruschetta",
				Name:      "Bruschetta",
				BasePrice: price("5.99"),
			},
		},
	},
	{
		ID:   "bebidas",
		Name: "Bebidas",
		Icon: "cup",
		Items: []domain.MenuItem{
			{ID: "coca-cola", Name: "Coca Cola", BasePrice: price("2.99")},
			{ID: "jugo-naranja", Name: "Jugo de Naranja", BasePrice: price("3.99")},
			{ID: "agua", Name: "Agua", BasePrice: price("1.99")},
		},
	},
}

// Catalog returns a copy of the full menu. Nested modifier and option
// slices are copied too, so callers can never mutate the catalog through
// the returned value.
func Catalog() []domain.MenuCategory {
	out := make([]domain.MenuCategory, len(catalog))
	copy(out, catalog)
	for i := range out {
		items := append([]domain.MenuItem(nil), out[i].Items...)
		for j := range items {
			items[j].Modifiers = cloneModifiers(items[j].Modifiers)
		}
		out[i].Items = items
	}
	return out
}

func cloneModifiers(mods []domain.Modifier) []domain.Modifier {
	if mods == nil {
		return nil
	}
	out := append([]domain.Modifier(nil), mods...)
	for i := range out {
		out[i].Options = append([]domain.ModifierOption(nil), out[i].Options...)
	}
	return out
}

// FindItem looks up a catalog entry by id.
func FindItem(id string) (domain.MenuItem, bool) {
	for _, cat := range catalog {
		for _, item := range cat.Items {
			if item.ID == id {
				return item, true
			}
		}
	}
	return domain.MenuItem{}, false
}

// FindModifier looks up a modifier definition on a catalog entry.
func FindModifier(item domain.MenuItem, modifierID string) (domain.Modifier, bool) {
	for _, mod := range item.Modifiers {
		if mod.ID == modifierID {
			return mod, true
		}
	}
	return domain.Modifier{}, false
}
