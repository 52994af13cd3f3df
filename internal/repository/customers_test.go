package repository

import (
	"context"
	"testing"
	"time"

	"github.com/mesero-nana/api/internal/domain"
	"github.com/mesero-nana/api/internal/enum"
)

func TestCustomersGroupsByPhone(t *testing.T) {
	r, _ := testRepo(t)
	ctx := context.Background()

	maria := domain.CustomerInfo{Name: "María González", Phone: "+52 55 1234 5678", DeliveryType: enum.DeliveryTypeRecoger}
	carlos := domain.CustomerInfo{Name: "Carlos Rodríguez", Phone: "+52 55 9876 5432", DeliveryType: enum.DeliveryTypeRecoger}

	r.Create(ctx, pizzaItems(), maria, enum.OrderSourceWhatsApp)
	r.Create(ctx, pizzaItems(), maria, enum.OrderSourceWhatsApp)
	r.Create(ctx, pizzaItems(), carlos, enum.OrderSourcePhone)

	customers := r.Customers()
	if len(customers) != 2 {
		t.Fatalf("customers: got %d, want 2", len(customers))
	}

	// Sorted by most orders first.
	if customers[0].Name != "María González" || customers[0].TotalOrders != 2 {
		t.Errorf("top customer: %+v", customers[0])
	}
	if !customers[0].TotalSpent.Equal(d("31.98")) {
		t.Errorf("total spent: got %s, want 31.98", customers[0].TotalSpent)
	}
}

func TestCustomersIncludesArchivedOrders(t *testing.T) {
	r, _ := testRepo(t)
	ctx := context.Background()

	ana := domain.CustomerInfo{Name: "Ana", Phone: "+52 55 0000 0001", DeliveryType: enum.DeliveryTypeRecoger}
	order, _ := r.Create(ctx, pizzaItems(), ana, enum.OrderSourcePhone)
	r.Transition(ctx, order.ID, enum.OrderStatusCooking, "")
	r.Transition(ctx, order.ID, enum.OrderStatusReady, "")
	r.Archive(ctx, order.ID)

	customers := r.Customers()
	if len(customers) != 1 || customers[0].TotalOrders != 1 {
		t.Errorf("customers: %+v", customers)
	}
}

func TestCustomersFallsBackToName(t *testing.T) {
	r, _ := testRepo(t)
	ctx := context.Background()

	r.Create(ctx, pizzaItems(), domain.CustomerInfo{Name: "Mesa 3", DeliveryType: enum.DeliveryTypeMesa, TableNumber: "3"}, enum.OrderSourceInternal)
	r.Create(ctx, pizzaItems(), domain.CustomerInfo{Name: "Mesa 3", DeliveryType: enum.DeliveryTypeMesa, TableNumber: "3"}, enum.OrderSourceInternal)

	customers := r.Customers()
	if len(customers) != 1 || customers[0].TotalOrders != 2 {
		t.Errorf("customers: %+v", customers)
	}
}

func TestCustomersTracksLastOrder(t *testing.T) {
	r, _ := testRepo(t)
	ctx := context.Background()

	ana := domain.CustomerInfo{Name: "Ana", Phone: "+52 55 0000 0001", DeliveryType: enum.DeliveryTypeRecoger}

	first := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	second := time.Date(2026, 8, 29, 18, 0, 0, 0, time.UTC)

	r.now = func() time.Time { return first }
	r.Create(ctx, pizzaItems(), ana, enum.OrderSourcePhone)
	r.now = func() time.Time { return second }
	r.Create(ctx, pizzaItems(), ana, enum.OrderSourcePhone)

	customers := r.Customers()
	if !customers[0].LastOrder.Equal(second) {
		t.Errorf("last order: got %v, want %v", customers[0].LastOrder, second)
	}
}
