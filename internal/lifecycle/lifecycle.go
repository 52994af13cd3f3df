// Package lifecycle is the order status state machine. Every status change
// in the system, whether triggered by a button or a drag-and-drop onto a
// board column, goes through Transition.
package lifecycle

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mesero-nana/api/internal/domain"
	"github.com/mesero-nana/api/internal/enum"
)

// ErrReasonRequired is returned when a cancellation carries no reason.
var ErrReasonRequired = errors.New("a reason is required to cancel an order")

// InvalidTransitionError reports a status change not permitted by the
// transition table.
type InvalidTransitionError struct {
	From string
	To   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot transition from %s to %s", e.From, e.To)
}

// allowedTransitions defines valid status transitions.
// Key is current status, value is the set of statuses it can transition to.
// COOKING→PENDING and READY→COOKING are the board's "move back" edges;
// DELIVERED and CANCELLED are terminal.
var allowedTransitions = map[string][]string{
	enum.OrderStatusPending: {enum.OrderStatusCooking, enum.OrderStatusCancelled},
	enum.OrderStatusCooking: {enum.OrderStatusPending, enum.OrderStatusReady},
	enum.OrderStatusReady:   {enum.OrderStatusCooking, enum.OrderStatusDelivered},
}

// IsValidStatus reports whether s is a known order status.
func IsValidStatus(s string) bool {
	switch s {
	case enum.OrderStatusPending,
		enum.OrderStatusCooking,
		enum.OrderStatusReady,
		enum.OrderStatusDelivered,
		enum.OrderStatusCancelled:
		return true
	}
	return false
}

// CanTransition reports whether the table permits moving from from to to.
func CanTransition(from, to string) bool {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Transition returns a copy of order moved to target with UpdatedAt set to
// now. Dropping an order onto its own column is a no-op: the order comes
// back unchanged, UpdatedAt included. Cancellations require a non-empty
// reason, which is persisted into the order's notes. On an invalid pair
// the order is returned untouched alongside an *InvalidTransitionError so
// the caller can silently ignore the request.
func Transition(order domain.Order, target, reason string, now time.Time) (domain.Order, error) {
	if target == order.Status {
		return order, nil
	}
	if !IsValidStatus(target) || !CanTransition(order.Status, target) {
		return order, &InvalidTransitionError{From: order.Status, To: target}
	}

	if target == enum.OrderStatusCancelled {
		reason = strings.TrimSpace(reason)
		if reason == "" {
			return order, ErrReasonRequired
		}
		note := "Rechazada: " + reason
		if order.Notes != "" {
			order.Notes = order.Notes + "\n" + note
		} else {
			order.Notes = note
		}
	}

	order.Status = target
	order.UpdatedAt = now
	return order, nil
}
