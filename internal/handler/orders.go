package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mesero-nana/api/internal/domain"
	"github.com/mesero-nana/api/internal/filter"
	"github.com/mesero-nana/api/internal/lifecycle"
	"github.com/mesero-nana/api/internal/menu"
	"github.com/mesero-nana/api/internal/repository"
	"github.com/mesero-nana/api/internal/selection"
	"github.com/mesero-nana/api/internal/ws"

	"github.com/google/uuid"
)

// OrderStore defines the repository methods needed by order handlers.
// Satisfied by *repository.OrderRepository; narrow interface for testability.
type OrderStore interface {
	Create(ctx context.Context, items []domain.OrderItem, customer domain.CustomerInfo, source string) (domain.Order, error)
	Update(ctx context.Context, id string, params repository.UpdateOrderParams) error
	Delete(ctx context.Context, id string)
	Transition(ctx context.Context, id, target, reason string) (domain.Order, error)
	Archive(ctx context.Context, id string) (domain.Order, error)
	Get(id string) (domain.Order, error)
	List() []domain.Order
	ListArchived() []domain.Order
	Stats() repository.Stats
	Customers() []repository.CustomerSummary
}

// Broadcaster pushes board events to connected clients. Satisfied by
// *ws.Hub; nil disables broadcasting.
type Broadcaster interface {
	Broadcast(event ws.Event)
}

// OrderHandler handles order endpoints.
type OrderHandler struct {
	store OrderStore
	hub   Broadcaster
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(store OrderStore, hub Broadcaster) *OrderHandler {
	return &OrderHandler{store: store, hub: hub}
}

// RegisterRoutes registers order endpoints on the given Chi router.
func (h *OrderHandler) RegisterRoutes(r chi.Router) {
	r.Post("/orders", h.Create)
	r.Get("/orders", h.List)
	r.Get("/orders/stats", h.Stats)
	r.Get("/orders/customers", h.Customers)
	r.Get("/orders/archived", h.ListArchived)
	r.Get("/orders/{id}", h.Get)
	r.Patch("/orders/{id}", h.Update)
	r.Patch("/orders/{id}/status", h.UpdateStatus)
	r.Post("/orders/{id}/archive", h.Archive)
}

// RegisterAdminRoutes registers order endpoints restricted to admins.
func (h *OrderHandler) RegisterAdminRoutes(r chi.Router) {
	r.Delete("/orders/{id}", h.Delete)
}

// --- Request / Response types ---

type createOrderRequest struct {
	Source       string                   `json:"source"`
	CustomerInfo domain.CustomerInfo      `json:"customerInfo"`
	Items        []createOrderItemRequest `json:"items"`
}

type createOrderItemRequest struct {
	MenuItemID string                `json:"menuItemId"`
	Quantity   int                   `json:"quantity"`
	Comments   string                `json:"comments"`
	Modifiers  []itemModifierRequest `json:"modifiers"`
}

type itemModifierRequest struct {
	ModifierID string   `json:"modifierId"`
	Value      int      `json:"value"`
	Options    []string `json:"options"`
}

type updateOrderRequest struct {
	Items                *[]createOrderItemRequest `json:"items"`
	CustomerInfo         *domain.CustomerInfo      `json:"customerInfo"`
	Notes                *string                   `json:"notes"`
	EstimatedTimeMinutes *int                      `json:"estimatedTimeMinutes"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}

type orderListResponse struct {
	Orders []domain.Order `json:"orders"`
}

// --- Handlers ---

// Create handles POST /orders.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	items, err := buildItems(req.Items)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	order, err := h.store.Create(r.Context(), items, req.CustomerInfo, req.Source)
	if err != nil {
		if isValidationError(err) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		log.Printf("ERROR: create order: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	h.broadcast("order.created", order)
	writeJSON(w, http.StatusCreated, order)
}

// List handles GET /orders. Supports ?status=, ?source=, ?search=,
// ?date_from= and ?date_to= (YYYY-MM-DD, inclusive).
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	criteria := filter.Criteria{
		Status:     r.URL.Query().Get("status"),
		Source:     r.URL.Query().Get("source"),
		SearchTerm: r.URL.Query().Get("search"),
	}

	if s := r.URL.Query().Get("date_from"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid date_from format, use YYYY-MM-DD"})
			return
		}
		criteria.DateFrom = &t
	}
	if s := r.URL.Query().Get("date_to"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid date_to format, use YYYY-MM-DD"})
			return
		}
		// Push to end of day so the bound stays inclusive.
		end := t.Add(24*time.Hour - time.Nanosecond)
		criteria.DateTo = &end
	}

	writeJSON(w, http.StatusOK, orderListResponse{
		Orders: filter.Orders(h.store.List(), criteria),
	})
}

// Get handles GET /orders/{id}.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	order, err := h.store.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "order not found"})
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// Update handles PATCH /orders/{id}. Only the provided fields change; the
// total is always recomputed from the resulting items.
func (h *OrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if _, err := h.store.Get(id); err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "order not found"})
		return
	}

	params := repository.UpdateOrderParams{
		CustomerInfo:         req.CustomerInfo,
		Notes:                req.Notes,
		EstimatedTimeMinutes: req.EstimatedTimeMinutes,
	}
	if req.Items != nil {
		items, err := buildItems(*req.Items)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		params.Items = &items
	}

	if err := h.store.Update(r.Context(), id, params); err != nil {
		if isValidationError(err) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		log.Printf("ERROR: update order: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	if order, err := h.store.Get(id); err == nil {
		h.broadcast("order.updated", order)
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /orders/{id}.
func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.store.Delete(r.Context(), id)
	h.broadcast("order.deleted", map[string]string{"id": id})
	w.WriteHeader(http.StatusNoContent)
}

// UpdateStatus handles PATCH /orders/{id}/status.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if req.Status == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "status is required"})
		return
	}
	if !lifecycle.IsValidStatus(req.Status) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid status"})
		return
	}

	order, err := h.store.Transition(r.Context(), chi.URLParam(r, "id"), req.Status, req.Reason)
	if err != nil {
		var invalid *lifecycle.InvalidTransitionError
		switch {
		case errors.As(err, &invalid):
			writeJSON(w, http.StatusConflict, map[string]string{"error": invalid.Error()})
		case errors.Is(err, lifecycle.ErrReasonRequired):
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "reason is required to cancel an order"})
		case errors.Is(err, repository.ErrNotFound):
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "order not found"})
		default:
			log.Printf("ERROR: update order status: %v", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		}
		return
	}

	h.broadcast("order.status_changed", order)
	writeJSON(w, http.StatusOK, order)
}

// Archive handles POST /orders/{id}/archive.
func (h *OrderHandler) Archive(w http.ResponseWriter, r *http.Request) {
	order, err := h.store.Archive(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		var invalid *lifecycle.InvalidTransitionError
		switch {
		case errors.As(err, &invalid):
			writeJSON(w, http.StatusConflict, map[string]string{"error": invalid.Error()})
		case errors.Is(err, repository.ErrNotFound):
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "order not found"})
		default:
			log.Printf("ERROR: archive order: %v", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		}
		return
	}

	h.broadcast("order.archived", order)
	writeJSON(w, http.StatusOK, order)
}

// ListArchived handles GET /orders/archived.
func (h *OrderHandler) ListArchived(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, orderListResponse{Orders: h.store.ListArchived()})
}

// Stats handles GET /orders/stats.
func (h *OrderHandler) Stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Stats())
}

// Customers handles GET /orders/customers.
func (h *OrderHandler) Customers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"customers": h.store.Customers()})
}

// --- Helpers ---

func (h *OrderHandler) broadcast(eventType string, payload interface{}) {
	if h.hub == nil {
		return
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		log.Printf("ERROR: marshal %s event: %v", eventType, err)
		return
	}
	h.hub.Broadcast(ws.Event{Type: eventType, Payload: raw})
}

func formatItemError(idx int, msg string) error {
	return errors.New("items[" + strconv.Itoa(idx) + "]: " + msg)
}

// buildItems resolves each requested line against the catalog and applies
// its modifier selections.
func buildItems(reqs []createOrderItemRequest) ([]domain.OrderItem, error) {
	items := make([]domain.OrderItem, 0, len(reqs))
	for i, req := range reqs {
		if req.MenuItemID == "" {
			return nil, formatItemError(i, "menuItemId is required")
		}
		if req.Quantity <= 0 {
			return nil, formatItemError(i, "quantity must be > 0")
		}

		menuItem, ok := menu.FindItem(req.MenuItemID)
		if !ok {
			return nil, formatItemError(i, "unknown menu item "+req.MenuItemID)
		}

		var sels []domain.ModifierSelection
		for _, m := range req.Modifiers {
			mod, ok := menu.FindModifier(menuItem, m.ModifierID)
			if !ok {
				return nil, formatItemError(i, "unknown modifier "+m.ModifierID)
			}

			if len(m.Options) > 0 {
				for _, opt := range m.Options {
					var err error
					sels, err = selection.ToggleOption(sels, mod, opt)
					if err != nil {
						return nil, formatItemError(i, err.Error())
					}
				}
			}
			if m.Value != 0 {
				sels = selection.ApplyAdditiveDelta(sels, mod, m.Value)
			}
		}

		items = append(items, domain.OrderItem{
			ID:        uuid.New().String(),
			Name:      menuItem.Name,
			UnitPrice: menuItem.BasePrice,
			Quantity:  req.Quantity,
			Modifiers: sels,
			Comments:  req.Comments,
		})
	}
	return items, nil
}

// isValidationError checks if the error is a known validation error from
// the repository that should result in 400 Bad Request.
func isValidationError(err error) bool {
	return errors.Is(err, repository.ErrEmptyItems) ||
		errors.Is(err, repository.ErrInvalidSource) ||
		errors.Is(err, repository.ErrInvalidDeliveryType) ||
		errors.Is(err, repository.ErrMissingDeliveryAddress)
}
