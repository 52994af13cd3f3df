package repository

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mesero-nana/api/internal/domain"
)

// CustomerSummary aggregates one customer's order history for the
// database view.
type CustomerSummary struct {
	Name        string          `json:"name"`
	Phone       string          `json:"phone"`
	TotalOrders int             `json:"totalOrders"`
	LastOrder   time.Time       `json:"lastOrder"`
	TotalSpent  decimal.Decimal `json:"totalSpent"`
}

// Customers groups all known orders by customer phone (falling back to
// name for orders without one) and summarizes count, recency and spend.
// Results are sorted by most orders first.
func (r *OrderRepository) Customers() []CustomerSummary {
	r.mu.Lock()
	defer r.mu.Unlock()

	byKey := make(map[string]*CustomerSummary)
	var keys []string

	collect := func(orders []domain.Order) {
		for _, o := range orders {
			key := o.CustomerInfo.Phone
			if key == "" {
				key = o.CustomerInfo.Name
			}
			if key == "" {
				continue
			}
			s, ok := byKey[key]
			if !ok {
				s = &CustomerSummary{
					Name:  o.CustomerInfo.Name,
					Phone: o.CustomerInfo.Phone,
				}
				byKey[key] = s
				keys = append(keys, key)
			}
			s.TotalOrders++
			s.TotalSpent = s.TotalSpent.Add(o.Total)
			if o.CreatedAt.After(s.LastOrder) {
				s.LastOrder = o.CreatedAt
			}
		}
	}
	collect(r.orders)
	collect(r.archived)

	out := make([]CustomerSummary, 0, len(keys))
	for _, key := range keys {
		out = append(out, *byKey[key])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalOrders > out[j].TotalOrders
	})
	return out
}
