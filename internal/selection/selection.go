// Package selection holds the pure transformations that build up a cart
// line's modifier selections. Both operations return a fresh slice and
// leave their input untouched.
package selection

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/mesero-nana/api/internal/domain"
)

// ErrUnknownOption is returned when an option name is not configured on
// the modifier being toggled.
var ErrUnknownOption = errors.New("option is not defined for this modifier")

// ApplyAdditiveDelta adjusts the additive value of mod by delta: +1 per
// "extra", -1 for "without". A resulting value of 0 removes the selection
// entirely, so the list never carries a zero-valued selection. The -1
// floor is the caller's responsibility.
func ApplyAdditiveDelta(sels []domain.ModifierSelection, mod domain.Modifier, delta int) []domain.ModifierSelection {
	out := domain.CloneSelections(sels)
	idx := indexOf(out, mod.ID)

	current := 0
	if idx >= 0 {
		current = out[idx].Value
	}
	newValue := current + delta

	if newValue == 0 {
		if idx >= 0 {
			return append(out[:idx], out[idx+1:]...)
		}
		return out
	}

	if idx >= 0 {
		out[idx].Value = newValue
		out[idx].PricePerUnit = mod.PricePerUnit
		return out
	}

	return append(out, domain.ModifierSelection{
		ModifierID:   mod.ID,
		ModifierName: mod.Name,
		Value:        newValue,
		PricePerUnit: mod.PricePerUnit,
	})
}

// ToggleOption selects or deselects optionName on mod. Single-choice
// modifiers replace any prior choice (last write wins); multi-choice
// modifiers toggle membership. The cached option price is recomputed from
// the modifier's configured prices on every change, never accumulated, and
// an emptied options list removes the selection.
func ToggleOption(sels []domain.ModifierSelection, mod domain.Modifier, optionName string) ([]domain.ModifierSelection, error) {
	if _, ok := optionPrice(mod, optionName); !ok {
		return nil, ErrUnknownOption
	}

	out := domain.CloneSelections(sels)
	idx := indexOf(out, mod.ID)

	var opts []string
	if idx >= 0 {
		opts = append([]string(nil), out[idx].Options...)
	}

	if mod.AllowMultiple {
		if i := indexOfString(opts, optionName); i >= 0 {
			opts = append(opts[:i], opts[i+1:]...)
		} else {
			opts = append(opts, optionName)
		}
	} else {
		opts = []string{optionName}
	}

	if len(opts) == 0 {
		if idx >= 0 {
			return append(out[:idx], out[idx+1:]...), nil
		}
		return out, nil
	}

	total := decimal.Zero
	for _, name := range opts {
		price, ok := optionPrice(mod, name)
		if !ok {
			return nil, ErrUnknownOption
		}
		total = total.Add(price)
	}

	sel := domain.ModifierSelection{
		ModifierID:   mod.ID,
		ModifierName: mod.Name,
		Options:      opts,
		OptionPrice:  total,
	}
	if idx >= 0 {
		sel.Value = out[idx].Value
		out[idx] = sel
		return out, nil
	}
	return append(out, sel), nil
}

func indexOf(sels []domain.ModifierSelection, modifierID string) int {
	for i, sel := range sels {
		if sel.ModifierID == modifierID {
			return i
		}
	}
	return -1
}

func indexOfString(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}

func optionPrice(mod domain.Modifier, name string) (decimal.Decimal, bool) {
	for _, opt := range mod.Options {
		if opt.Name == name {
			return opt.Price, true
		}
	}
	return decimal.Zero, false
}
