package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/mesero-nana/api/internal/domain"
	"github.com/mesero-nana/api/internal/enum"
	"github.com/mesero-nana/api/internal/handler"
	"github.com/mesero-nana/api/internal/repository"
	"github.com/mesero-nana/api/internal/store"
)

func newOrderRouter(t *testing.T) (chi.Router, *repository.OrderRepository) {
	t.Helper()
	repo := repository.New(context.Background(), store.NewMemory(), false)
	h := handler.NewOrderHandler(repo, nil)

	r := chi.NewRouter()
	h.RegisterRoutes(r)
	h.RegisterAdminRoutes(r)
	return r, repo
}

func createOrder(t *testing.T, r chi.Router, body string) domain.Order {
	t.Helper()
	req := httptest.NewRequest("POST", "/orders", bytes.NewBufferString(body))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("create status: got %d, body %s", rr.Code, rr.Body.String())
	}
	var order domain.Order
	if err := json.Unmarshal(rr.Body.Bytes(), &order); err != nil {
		t.Fatalf("decode order: %v", err)
	}
	return order
}

const validOrderBody = `{
	"source": "INTERNAL",
	"customerInfo": {"name": "Mesa 4", "deliveryType": "MESA", "tableNumber": "4"},
	"items": [
		{"menuItemId": "pizza-margherita", "quantity": 1,
		 "modifiers": [{"modifierId": "queso", "value": 2}]}
	]
}`

func TestCreateOrderEndpoint(t *testing.T) {
	r, _ := newOrderRouter(t)

	order := createOrder(t, r, validOrderBody)

	if order.Status != enum.OrderStatusPending {
		t.Errorf("status: got %s", order.Status)
	}
	if order.Items[0].Name != "Pizza Margherita" {
		t.Errorf("item name: got %s", order.Items[0].Name)
	}
	// 12.99 + 1.50*2
	if order.Total.StringFixed(2) != "15.99" {
		t.Errorf("total: got %s, want 15.99", order.Total)
	}
}

func TestCreateOrderUnknownMenuItem(t *testing.T) {
	r, _ := newOrderRouter(t)

	body := `{"source":"INTERNAL","customerInfo":{"name":"Mesa 1"},"items":[{"menuItemId":"sushi","quantity":1}]}`
	req := httptest.NewRequest("POST", "/orders", bytes.NewBufferString(body))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestCreateOrderEmptyItems(t *testing.T) {
	r, _ := newOrderRouter(t)

	body := `{"source":"INTERNAL","customerInfo":{"name":"Mesa 1"},"items":[]}`
	req := httptest.NewRequest("POST", "/orders", bytes.NewBufferString(body))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestListOrdersWithSearch(t *testing.T) {
	r, _ := newOrderRouter(t)

	createOrder(t, r, validOrderBody)
	createOrder(t, r, `{"source":"INTERNAL","customerInfo":{"name":"Mesa 2"},"items":[{"menuItemId":"coca-cola","quantity":1}]}`)

	req := httptest.NewRequest("GET", "/orders?search=pizza", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d", rr.Code)
	}
	var resp struct {
		Orders []domain.Order `json:"orders"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Orders) != 1 || resp.Orders[0].Items[0].Name != "Pizza Margherita" {
		t.Errorf("search results: %+v", resp.Orders)
	}
}

func TestGetOrderNotFound(t *testing.T) {
	r, _ := newOrderRouter(t)

	req := httptest.NewRequest("GET", "/orders/no-such-id", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want %d", rr.Code, http.StatusNotFound)
	}
}

func TestUpdateOrderEndpoint(t *testing.T) {
	r, repo := newOrderRouter(t)
	order := createOrder(t, r, validOrderBody)

	body := `{"notes": "sin servilletas", "estimatedTimeMinutes": 30}`
	req := httptest.NewRequest("PATCH", "/orders/"+order.ID, bytes.NewBufferString(body))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("status: got %d, body %s", rr.Code, rr.Body.String())
	}

	got, err := repo.Get(order.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Notes != "sin servilletas" || got.EstimatedTimeMinutes != 30 {
		t.Errorf("order after update: %+v", got)
	}
}

func TestUpdateOrderInvalidCustomerInfo(t *testing.T) {
	r, repo := newOrderRouter(t)
	order := createOrder(t, r, validOrderBody)

	body := `{"customerInfo": {"name": "Ana", "deliveryType": "DOMICILIO"}}`
	req := httptest.NewRequest("PATCH", "/orders/"+order.ID, bytes.NewBufferString(body))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, body %s", rr.Code, rr.Body.String())
	}

	// Nothing committed.
	got, _ := repo.Get(order.ID)
	if got.CustomerInfo.DeliveryType != enum.DeliveryTypeMesa {
		t.Errorf("delivery type changed: %s", got.CustomerInfo.DeliveryType)
	}
}

func TestUpdateOrderNotFound(t *testing.T) {
	r, _ := newOrderRouter(t)

	req := httptest.NewRequest("PATCH", "/orders/no-such-id", bytes.NewBufferString(`{"notes":"x"}`))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want %d", rr.Code, http.StatusNotFound)
	}
}

func TestUpdateStatusEndpoint(t *testing.T) {
	r, _ := newOrderRouter(t)
	order := createOrder(t, r, validOrderBody)

	req := httptest.NewRequest("PATCH", "/orders/"+order.ID+"/status", bytes.NewBufferString(`{"status":"COOKING"}`))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", rr.Code, rr.Body.String())
	}
	var updated domain.Order
	json.Unmarshal(rr.Body.Bytes(), &updated)
	if updated.Status != enum.OrderStatusCooking {
		t.Errorf("order status: got %s", updated.Status)
	}
}

func TestUpdateStatusInvalidTransition(t *testing.T) {
	r, _ := newOrderRouter(t)
	order := createOrder(t, r, validOrderBody)

	// PENDING cannot skip straight to READY.
	req := httptest.NewRequest("PATCH", "/orders/"+order.ID+"/status", bytes.NewBufferString(`{"status":"READY"}`))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusConflict {
		t.Errorf("status: got %d, want %d", rr.Code, http.StatusConflict)
	}
}

func TestUpdateStatusCancellationNeedsReason(t *testing.T) {
	r, _ := newOrderRouter(t)
	order := createOrder(t, r, validOrderBody)

	req := httptest.NewRequest("PATCH", "/orders/"+order.ID+"/status", bytes.NewBufferString(`{"status":"CANCELLED"}`))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("without reason: got %d, want %d", rr.Code, http.StatusBadRequest)
	}

	req = httptest.NewRequest("PATCH", "/orders/"+order.ID+"/status", bytes.NewBufferString(`{"status":"CANCELLED","reason":"duplicada"}`))
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("with reason: got %d, body %s", rr.Code, rr.Body.String())
	}
}

func TestUpdateStatusUnknownStatus(t *testing.T) {
	r, _ := newOrderRouter(t)
	order := createOrder(t, r, validOrderBody)

	req := httptest.NewRequest("PATCH", "/orders/"+order.ID+"/status", bytes.NewBufferString(`{"status":"DONE"}`))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestArchiveFlow(t *testing.T) {
	r, _ := newOrderRouter(t)
	order := createOrder(t, r, validOrderBody)

	for _, status := range []string{"COOKING", "READY"} {
		req := httptest.NewRequest("PATCH", "/orders/"+order.ID+"/status", bytes.NewBufferString(`{"status":"`+status+`"}`))
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			t.Fatalf("move to %s: got %d", status, rr.Code)
		}
	}

	req := httptest.NewRequest("POST", "/orders/"+order.ID+"/archive", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("archive: got %d, body %s", rr.Code, rr.Body.String())
	}

	// Gone from the board, present in the archive.
	req = httptest.NewRequest("GET", "/orders", nil)
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	var active struct {
		Orders []domain.Order `json:"orders"`
	}
	json.Unmarshal(rr.Body.Bytes(), &active)
	if len(active.Orders) != 0 {
		t.Errorf("board still has %d orders", len(active.Orders))
	}

	req = httptest.NewRequest("GET", "/orders/archived", nil)
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	var archived struct {
		Orders []domain.Order `json:"orders"`
	}
	json.Unmarshal(rr.Body.Bytes(), &archived)
	if len(archived.Orders) != 1 || archived.Orders[0].Status != enum.OrderStatusDelivered {
		t.Errorf("archive contents: %+v", archived.Orders)
	}
}

func TestDeleteOrderEndpoint(t *testing.T) {
	r, repo := newOrderRouter(t)
	order := createOrder(t, r, validOrderBody)

	req := httptest.NewRequest("DELETE", "/orders/"+order.ID, nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("status: got %d", rr.Code)
	}
	if _, err := repo.Get(order.ID); err == nil {
		t.Error("order still present after delete")
	}
}

func TestStatsEndpoint(t *testing.T) {
	r, _ := newOrderRouter(t)
	createOrder(t, r, validOrderBody)

	req := httptest.NewRequest("GET", "/orders/stats", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d", rr.Code)
	}
	var stats repository.Stats
	if err := json.Unmarshal(rr.Body.Bytes(), &stats); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if stats.Total != 1 || stats.Pending != 1 {
		t.Errorf("stats: %+v", stats)
	}
}

func TestListOrdersBadDateFormat(t *testing.T) {
	r, _ := newOrderRouter(t)

	req := httptest.NewRequest("GET", "/orders?date_from=29-08-2026", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want %d", rr.Code, http.StatusBadRequest)
	}
}
