package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/TheACJ/ShopWCandy/internal/orders"
)

func newOrdersRouter(dynamo *mockDynamo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterOrdersRoutes(r, OrdersConfig{
		DynamoDBClient: dynamo,
		OrdersTable:    "orders",
	})
	return r
}

func TestCreateOrder_ThenFetch(t *testing.T) {
	dynamo := newMockDynamo()
	r := newOrdersRouter(dynamo)

	payload := `{
		"email": "buyer@example.com",
		"items": [{"product_id":"p1","name":"Candy Box","quantity":2,"price":1000}],
		"shipping_fee": 500,
		"total_amount": 2500
	}`
	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var created struct {
		OrderID     string `json:"order_id"`
		OrderNumber string `json:"order_number"`
		Status      string `json:"status"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if created.OrderID == "" || !strings.HasPrefix(created.OrderNumber, "SWC-") {
		t.Fatalf("unexpected ids: %+v", created)
	}
	if created.Status != orders.StatusPending {
		t.Fatalf("new orders must be pending, got %s", created.Status)
	}

	get := httptest.NewRequest(http.MethodGet, "/orders/"+created.OrderID, nil)
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, get)
	if w2.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w2.Code)
	}
	var fetched orders.Order
	if err := json.Unmarshal(w2.Body.Bytes(), &fetched); err != nil {
		t.Fatalf("decode order: %v", err)
	}
	if fetched.Paid || fetched.TotalAmount != 2500 || fetched.Currency != "NGN" {
		t.Fatalf("unexpected order: %+v", fetched)
	}
}

func TestCreateOrder_RejectsTotalMismatch(t *testing.T) {
	r := newOrdersRouter(newMockDynamo())

	payload := `{
		"email": "buyer@example.com",
		"items": [{"product_id":"p1","name":"Candy Box","quantity":1,"price":1000}],
		"total_amount": 9999
	}`
	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestGetOrder_NotFound(t *testing.T) {
	r := newOrdersRouter(newMockDynamo())

	req := httptest.NewRequest(http.MethodGet, "/orders/missing", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestConfirmByReference(t *testing.T) {
	dynamo := newMockDynamo()
	dynamo.seedPendingOrder("O1")
	r := newOrdersRouter(dynamo)

	// reconcile O1 the way the webhook would
	store := orders.NewStore(dynamo, "orders")
	if err := store.MarkPaid(context.Background(), "O1", "TX123", orders.MethodPaystack); err != nil {
		t.Fatalf("mark paid: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/payments/confirm/TX123", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		OrderID string `json:"order_id"`
		Paid    bool   `json:"paid"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.OrderID != "O1" || !resp.Paid {
		t.Fatalf("unexpected confirmation: %+v", resp)
	}

	miss := httptest.NewRequest(http.MethodGet, "/payments/confirm/TX404", nil)
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, miss)
	if w2.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown reference, got %d", w2.Code)
	}
}
