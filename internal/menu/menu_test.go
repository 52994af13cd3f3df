package menu_test

import (
	"testing"

	"github.com/mesero-nana/api/internal/enum"
	"github.com/mesero-nana/api/internal/menu"
)

func TestCatalogIsPopulated(t *testing.T) {
	categories := menu.Catalog()
	if len(categories) == 0 {
		t.Fatal("empty catalog")
	}
	for _, cat := range categories {
		if cat.ID == "" || cat.Name == "" {
			t.Errorf("category missing identity: %+v", cat)
		}
		if len(cat.Items) == 0 {
			t.Errorf("category %s has no items", cat.ID)
		}
		for _, item := range cat.Items {
			if item.BasePrice.IsNegative() {
				t.Errorf("item %s has negative price", item.ID)
			}
		}
	}
}

func TestCatalogReturnsCopies(t *testing.T) {
	first := menu.Catalog()
	first[0].Items[0] = first[0].Items[len(first[0].Items)-1]
	first[0].Name = "tampered"

	second := menu.Catalog()
	if second[0].Name == "tampered" {
		t.Error("catalog category mutated through returned copy")
	}
}

func TestCatalogCopiesNestedModifiers(t *testing.T) {
	first := menu.Catalog()

	// pizzas / pizza-margherita carries both an additive and an option modifier.
	mods := first[0].Items[0].Modifiers
	if len(mods) == 0 {
		t.Fatal("expected modifiers on the first item")
	}
	mods[0].Name = "tampered"
	for i := range mods {
		for j := range mods[i].Options {
			mods[i].Options[j].Name = "tampered"
		}
	}

	second := menu.Catalog()
	for _, mod := range second[0].Items[0].Modifiers {
		if mod.Name == "tampered" {
			t.Error("modifier mutated through returned copy")
		}
		for _, opt := range mod.Options {
			if opt.Name == "tampered" {
				t.Error("modifier option mutated through returned copy")
			}
		}
	}
}

func TestFindItem(t *testing.T) {
	item, ok := menu.FindItem("pizza-margherita")
	if !ok {
		t.Fatal("pizza-margherita not found")
	}
	if item.Name != "Pizza Margherita" {
		t.Errorf("name: got %s", item.Name)
	}

	if _, ok := menu.FindItem("no-such-item"); ok {
		t.Error("expected lookup miss")
	}
}

func TestFindModifier(t *testing.T) {
	item, _ := menu.FindItem("pizza-margherita")

	mod, ok := menu.FindModifier(item, "queso")
	if !ok {
		t.Fatal("queso modifier not found")
	}
	if mod.Kind != enum.ModifierKindAdditive {
		t.Errorf("kind: got %s", mod.Kind)
	}

	if _, ok := menu.FindModifier(item, "no-such-mod"); ok {
		t.Error("expected lookup miss")
	}
}

func TestOptionModifiersCarryConfiguredPrices(t *testing.T) {
	item, _ := menu.FindItem("ensalada-cesar")
	mod, ok := menu.FindModifier(item, "toppings")
	if !ok {
		t.Fatal("toppings modifier not found")
	}
	if !mod.AllowMultiple {
		t.Error("toppings should allow multiple options")
	}
	if len(mod.Options) == 0 {
		t.Fatal("toppings has no options")
	}
}
