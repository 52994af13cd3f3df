// Package pricing computes line and order totals. All functions are pure:
// they never mutate their input and always return the same result for the
// same input.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/mesero-nana/api/internal/domain"
)

// ItemTotal returns the total price of one order line: the unit price times
// quantity, plus every modifier's contribution. An additive selection with
// value n adds pricePerUnit*n per unit; a "without" selection (value -1)
// changes nothing; option selections add their combined option price per
// unit.
func ItemTotal(item domain.OrderItem) decimal.Decimal {
	qty := decimal.NewFromInt(int64(item.Quantity))
	total := item.UnitPrice.Mul(qty)

	for _, sel := range item.Modifiers {
		if sel.Value > 0 {
			units := decimal.NewFromInt(int64(sel.Value))
			total = total.Add(sel.PricePerUnit.Mul(units).Mul(qty))
		}
		if !sel.OptionPrice.IsZero() {
			total = total.Add(sel.OptionPrice.Mul(qty))
		}
	}

	return total
}

// OrderTotal returns the sum of ItemTotal over all lines of the order.
func OrderTotal(order domain.Order) decimal.Decimal {
	total := decimal.Zero
	for _, item := range order.Items {
		total = total.Add(ItemTotal(item))
	}
	return total
}
