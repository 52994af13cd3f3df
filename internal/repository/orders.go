// Package repository owns the order collections: the active board and the
// archived history. It is the single writer; every mutation applies the
// change, the derived total and the updated timestamp as one step under
// the lock, then synchronously snapshots both collections into the
// injected key-value store.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mesero-nana/api/internal/domain"
	"github.com/mesero-nana/api/internal/enum"
	"github.com/mesero-nana/api/internal/lifecycle"
	"github.com/mesero-nana/api/internal/pricing"
	"github.com/mesero-nana/api/internal/store"
)

// Snapshot keys in the key-value store.
const (
	OrdersKey   = "mesero_nana_orders"
	ArchivedKey = "mesero_nana_archived_orders"
)

// Errors returned by the order repository.
var (
	ErrNotFound               = errors.New("order not found")
	ErrEmptyItems             = errors.New("items are required")
	ErrInvalidSource          = errors.New("invalid source")
	ErrInvalidDeliveryType    = errors.New("invalid delivery type")
	ErrMissingDeliveryAddress = errors.New("delivery_address is required for DOMICILIO orders")
)

// UpdateOrderParams is a partial order update. Nil fields are left
// untouched; a non-nil Items replaces the lines and forces a total
// recomputation.
type UpdateOrderParams struct {
	Items                *[]domain.OrderItem
	CustomerInfo         *domain.CustomerInfo
	Notes                *string
	EstimatedTimeMinutes *int
}

// Stats are the per-status order counts shown on the admin dashboard.
type Stats struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Cooking   int `json:"cooking"`
	Ready     int `json:"ready"`
	Delivered int `json:"delivered"`
	Cancelled int `json:"cancelled"`
}

// OrderRepository holds the active and archived collections in memory,
// most-recent-first, mirrored into the store on every mutation.
type OrderRepository struct {
	mu       sync.Mutex
	kv       store.Store
	orders   []domain.Order
	archived []domain.Order

	// Overridable in tests.
	now      func() time.Time
	estimate func() int
}

// New loads the snapshots from kv, falling back to an empty collection (or
// the example set when seedExamples is on) if nothing is stored or the
// stored data cannot be decoded. Load failures never prevent startup.
func New(ctx context.Context, kv store.Store, seedExamples bool) *OrderRepository {
	r := &OrderRepository{
		kv:       kv,
		now:      time.Now,
		estimate: randomEstimate,
	}
	r.load(ctx, seedExamples)
	return r
}

// randomEstimate returns a kitchen estimate between 15 and 45 minutes.
func randomEstimate() int {
	return rand.Intn(31) + 15
}

func (r *OrderRepository) load(ctx context.Context, seedExamples bool) {
	seeded := false
	if raw, err := r.kv.Get(ctx, OrdersKey); err == nil {
		if err := json.Unmarshal([]byte(raw), &r.orders); err != nil {
			log.Printf("WARN: stored orders are malformed, starting fresh: %v", err)
			r.orders = nil
		}
	} else if !errors.Is(err, store.ErrNotFound) {
		log.Printf("WARN: load orders: %v", err)
	}

	if r.orders == nil && seedExamples {
		r.orders = ExampleOrders(r.now())
		seeded = true
	}

	if raw, err := r.kv.Get(ctx, ArchivedKey); err == nil {
		if err := json.Unmarshal([]byte(raw), &r.archived); err != nil {
			log.Printf("WARN: stored archive is malformed, starting fresh: %v", err)
			r.archived = nil
		}
	} else if !errors.Is(err, store.ErrNotFound) {
		log.Printf("WARN: load archived orders: %v", err)
	}

	if seeded {
		r.persist(ctx)
	}
}

// persist snapshots both collections. Write failures are logged and
// otherwise ignored: the in-memory state stays authoritative and the
// application keeps running.
func (r *OrderRepository) persist(ctx context.Context) {
	active, err := json.Marshal(r.orders)
	if err != nil {
		log.Printf("ERROR: marshal orders: %v", err)
		return
	}
	if err := r.kv.Set(ctx, OrdersKey, string(active)); err != nil {
		log.Printf("ERROR: persist orders: %v", err)
	}

	archived, err := json.Marshal(r.archived)
	if err != nil {
		log.Printf("ERROR: marshal archived orders: %v", err)
		return
	}
	if err := r.kv.Set(ctx, ArchivedKey, string(archived)); err != nil {
		log.Printf("ERROR: persist archived orders: %v", err)
	}
}

func isValidSource(s string) bool {
	switch s {
	case enum.OrderSourceWhatsApp, enum.OrderSourcePhone,
		enum.OrderSourceInternal, enum.OrderSourceWeb:
		return true
	}
	return false
}

// normalizeCustomer defaults the delivery type to MESA and clears fields
// that are meaningless for the chosen type.
func normalizeCustomer(c domain.CustomerInfo) (domain.CustomerInfo, error) {
	if c.DeliveryType == "" {
		c.DeliveryType = enum.DeliveryTypeMesa
	}
	switch c.DeliveryType {
	case enum.DeliveryTypeMesa:
		c.DeliveryAddress = ""
	case enum.DeliveryTypeDomicilio:
		if c.DeliveryAddress == "" {
			return c, ErrMissingDeliveryAddress
		}
		c.TableNumber = ""
	case enum.DeliveryTypeRecoger:
		c.TableNumber = ""
		c.DeliveryAddress = ""
	default:
		return c, ErrInvalidDeliveryType
	}
	return c, nil
}

// nextOrderNumber builds ORD-<YYYYMMDD>-<seq>, where seq is one more than
// the number of today's orders across both collections. Only safe under
// the repository's single-writer lock.
func (r *OrderRepository) nextOrderNumber(now time.Time) string {
	dateStr := now.Format("20060102")
	count := 0
	for _, o := range r.orders {
		if strings.Contains(o.OrderNumber, dateStr) {
			count++
		}
	}
	for _, o := range r.archived {
		if strings.Contains(o.OrderNumber, dateStr) {
			count++
		}
	}
	return fmt.Sprintf("ORD-%s-%03d", dateStr, count+1)
}

// Create validates the request, assigns identity and an order number, and
// prepends the new PENDING order to the active collection.
func (r *OrderRepository) Create(ctx context.Context, items []domain.OrderItem, customer domain.CustomerInfo, source string) (domain.Order, error) {
	if len(items) == 0 {
		return domain.Order{}, ErrEmptyItems
	}
	if !isValidSource(source) {
		return domain.Order{}, ErrInvalidSource
	}
	customer, err := normalizeCustomer(customer)
	if err != nil {
		return domain.Order{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	order := domain.Order{
		ID:                   uuid.New().String(),
		OrderNumber:          r.nextOrderNumber(now),
		Source:               source,
		Status:               enum.OrderStatusPending,
		CustomerInfo:         customer,
		Items:                domain.CloneItems(items),
		CreatedAt:            now,
		UpdatedAt:            now,
		EstimatedTimeMinutes: r.estimate(),
	}
	order.Total = pricing.OrderTotal(order)

	r.orders = append([]domain.Order{order}, r.orders...)
	r.persist(ctx)
	return order.Clone(), nil
}

// Update merges params into the matching active order and bumps
// UpdatedAt. The total is recomputed so it can never go stale relative to
// the items. A missing id is a logged no-op; invalid customer info fails
// with a validation error and leaves the order untouched.
func (r *OrderRepository) Update(ctx context.Context, id string, params UpdateOrderParams) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		log.Printf("WARN: update order %s: not found", id)
		return nil
	}

	o := &r.orders[idx]
	if params.CustomerInfo != nil {
		customer, err := normalizeCustomer(*params.CustomerInfo)
		if err != nil {
			return err
		}
		o.CustomerInfo = customer
	}
	if params.Notes != nil {
		o.Notes = *params.Notes
	}
	if params.EstimatedTimeMinutes != nil {
		o.EstimatedTimeMinutes = *params.EstimatedTimeMinutes
	}
	if params.Items != nil {
		o.Items = domain.CloneItems(*params.Items)
	}
	o.Total = pricing.OrderTotal(*o)
	o.UpdatedAt = r.now()

	r.persist(ctx)
	return nil
}

// Delete removes the order from the active collection. Deleting an
// unknown id is a no-op.
func (r *OrderRepository) Delete(ctx context.Context, id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return
	}
	r.orders = append(r.orders[:idx], r.orders[idx+1:]...)
	r.persist(ctx)
}

// Transition moves the order to target through the state machine. A
// transition into DELIVERED also moves the order out of the active
// collection into the archive. Dropping onto the current status is a
// no-op that fires no side effects.
func (r *OrderRepository) Transition(ctx context.Context, id, target, reason string) (domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return domain.Order{}, ErrNotFound
	}

	current := r.orders[idx]
	if current.Status == target {
		return current.Clone(), nil
	}

	updated, err := lifecycle.Transition(current, target, reason, r.now())
	if err != nil {
		return domain.Order{}, err
	}

	if updated.Status == enum.OrderStatusDelivered {
		r.archived = append(r.archived, updated)
		r.orders = append(r.orders[:idx], r.orders[idx+1:]...)
	} else {
		r.orders[idx] = updated
	}
	r.persist(ctx)
	return updated.Clone(), nil
}

// Archive marks a READY order delivered and moves it into the archive.
func (r *OrderRepository) Archive(ctx context.Context, id string) (domain.Order, error) {
	return r.Transition(ctx, id, enum.OrderStatusDelivered, "")
}

// Get returns the order with the given id, searching the active
// collection first and the archive second.
func (r *OrderRepository) Get(id string) (domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if idx := r.indexOf(id); idx >= 0 {
		return r.orders[idx].Clone(), nil
	}
	for _, o := range r.archived {
		if o.ID == id {
			return o.Clone(), nil
		}
	}
	return domain.Order{}, ErrNotFound
}

// List returns a copy of the active collection, most recent first.
func (r *OrderRepository) List() []domain.Order {
	r.mu.Lock()
	defer r.mu.Unlock()
	return cloneAll(r.orders)
}

// ListArchived returns a copy of the archived collection.
func (r *OrderRepository) ListArchived() []domain.Order {
	r.mu.Lock()
	defer r.mu.Unlock()
	return cloneAll(r.archived)
}

// Stats counts orders per status. Delivered orders live in the archive;
// every other status lives on the board.
func (r *OrderRepository) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := Stats{
		Total:     len(r.orders) + len(r.archived),
		Delivered: len(r.archived),
	}
	for _, o := range r.orders {
		switch o.Status {
		case enum.OrderStatusPending:
			s.Pending++
		case enum.OrderStatusCooking:
			s.Cooking++
		case enum.OrderStatusReady:
			s.Ready++
		case enum.OrderStatusCancelled:
			s.Cancelled++
		}
	}
	return s
}

func (r *OrderRepository) indexOf(id string) int {
	for i, o := range r.orders {
		if o.ID == id {
			return i
		}
	}
	return -1
}

func cloneAll(orders []domain.Order) []domain.Order {
	out := make([]domain.Order, len(orders))
	for i, o := range orders {
		out[i] = o.Clone()
	}
	return out
}
