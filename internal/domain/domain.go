package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ModifierOption is a named, individually priced choice inside an
// OPTION-kind modifier.
type ModifierOption struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// Modifier is a customizable attribute of a catalog item. ADDITIVE and
// SUBTRACTIVE kinds are adjusted by an integer delta priced per unit;
// OPTION kinds are resolved by choosing one (or, with AllowMultiple,
// several) of the configured options.
type Modifier struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Kind          string           `json:"kind"`
	PricePerUnit  decimal.Decimal  `json:"pricePerUnit"`
	AllowMultiple bool             `json:"allowMultiple,omitempty"`
	Options       []ModifierOption `json:"options,omitempty"`
}

// ModifierSelection is the chosen state of one modifier on one order line.
// Value encodes the additive delta: -1 means "without", n>=1 means n extra
// units. A selection with Value == 0 and no options must not be stored.
// OptionPrice is derived from Options and the modifier's configured option
// prices; it is never an independent source of truth.
type ModifierSelection struct {
	ModifierID   string          `json:"modifierId"`
	ModifierName string          `json:"modifierName"`
	Value        int             `json:"value"`
	Options      []string        `json:"options,omitempty"`
	PricePerUnit decimal.Decimal `json:"pricePerUnit"`
	OptionPrice  decimal.Decimal `json:"optionPrice"`
}

// MenuItem is an immutable catalog entry.
type MenuItem struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	BasePrice decimal.Decimal `json:"basePrice"`
	Modifiers []Modifier      `json:"modifiers,omitempty"`
}

// MenuCategory groups catalog entries for the menu views.
type MenuCategory struct {
	ID    string     `json:"id"`
	Name  string     `json:"name"`
	Icon  string     `json:"icon,omitempty"`
	Items []MenuItem `json:"items"`
}

// OrderItem is one line within an order.
type OrderItem struct {
	ID        string              `json:"id"`
	Name      string              `json:"name"`
	UnitPrice decimal.Decimal     `json:"unitPrice"`
	Quantity  int                 `json:"quantity"`
	Modifiers []ModifierSelection `json:"modifiers"`
	Comments  string              `json:"comments,omitempty"`
}

// CustomerInfo describes who the order is for and how it is delivered.
// TableNumber is meaningful only for MESA orders, DeliveryAddress only for
// DOMICILIO orders.
type CustomerInfo struct {
	Name            string `json:"name,omitempty"`
	Phone           string `json:"phone,omitempty"`
	Email           string `json:"email,omitempty"`
	DeliveryType    string `json:"deliveryType"`
	TableNumber     string `json:"tableNumber,omitempty"`
	DeliveryAddress string `json:"deliveryAddress,omitempty"`
}

// Order is a customer's placed request tracked through the status
// lifecycle. Total is derived from Items by the pricing engine and is
// recomputed on every mutation, never edited on its own.
type Order struct {
	ID                   string          `json:"id"`
	OrderNumber          string          `json:"orderNumber"`
	Source               string          `json:"source"`
	Status               string          `json:"status"`
	CustomerInfo         CustomerInfo    `json:"customerInfo"`
	Items                []OrderItem     `json:"items"`
	Total                decimal.Decimal `json:"total"`
	CreatedAt            time.Time       `json:"createdAt"`
	UpdatedAt            time.Time       `json:"updatedAt"`
	EstimatedTimeMinutes int             `json:"estimatedTimeMinutes,omitempty"`
	Notes                string          `json:"notes,omitempty"`
}

// CloneSelections returns a deep copy of a selection list.
func CloneSelections(sels []ModifierSelection) []ModifierSelection {
	if sels == nil {
		return nil
	}
	out := make([]ModifierSelection, len(sels))
	copy(out, sels)
	for i := range out {
		if out[i].Options != nil {
			out[i].Options = append([]string(nil), out[i].Options...)
		}
	}
	return out
}

// CloneItems returns a deep copy of an order-line list.
func CloneItems(items []OrderItem) []OrderItem {
	if items == nil {
		return nil
	}
	out := make([]OrderItem, len(items))
	copy(out, items)
	for i := range out {
		out[i].Modifiers = CloneSelections(out[i].Modifiers)
	}
	return out
}

// Clone returns a deep copy of the order, so callers can hand orders out
// without sharing mutable slices.
func (o Order) Clone() Order {
	o.Items = CloneItems(o.Items)
	return o
}
