package rest

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaanCaman/simple-pos-full-stack/internal/domain/order"
)

// recordingHandler captures the last request and replies with a fixed envelope.
type recordingHandler struct {
	method string
	path   string
	query  url.Values
	body   []byte
	reply  envelope
}

func (h *recordingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.method = r.Method
	h.path = r.URL.Path
	h.query = r.URL.Query()
	h.body, _ = io.ReadAll(r.Body)
	writeEnvelope(w, http.StatusOK, h.reply)
}

func TestOrderService_Create(t *testing.T) {
	h := &recordingHandler{reply: envelope{
		Success: true,
		Code:    "OK",
		Data:    json.RawMessage(`{"id": 42, "order_number": "ORD-0042", "table_id": 3, "waiter_id": 9, "status": "OPEN"}`),
	}}
	c, _ := newTestClient(t, h)
	svc := NewOrderService(c)

	o, err := svc.Create(context.Background(), 3, 9)

	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, h.method)
	assert.Equal(t, "/api/v1/orders", h.path)
	assert.JSONEq(t, `{"table_id": 3, "waiter_id": 9}`, string(h.body))
	assert.Equal(t, int64(42), o.ID)
	assert.Equal(t, order.StatusOpen, o.Status)
}

func TestOrderService_ItemPaths(t *testing.T) {
	h := &recordingHandler{reply: envelope{Success: true, Code: "OK"}}
	c, _ := newTestClient(t, h)
	svc := NewOrderService(c)
	ctx := context.Background()

	require.NoError(t, svc.AddItem(ctx, 42, order.AddItemRequest{ProductID: 5, Quantity: 2, Note: "no onions"}))
	assert.Equal(t, http.MethodPost, h.method)
	assert.Equal(t, "/api/v1/orders/42/items", h.path)
	assert.JSONEq(t, `{"product_id": 5, "quantity": 2, "note": "no onions"}`, string(h.body))

	require.NoError(t, svc.UpdateItem(ctx, 42, 7, 3))
	assert.Equal(t, http.MethodPut, h.method)
	assert.Equal(t, "/api/v1/orders/42/items/7", h.path)
	assert.JSONEq(t, `{"quantity": 3}`, string(h.body))

	require.NoError(t, svc.RemoveItem(ctx, 42, 7))
	assert.Equal(t, http.MethodDelete, h.method)
	assert.Equal(t, "/api/v1/orders/42/items/7", h.path)
}

func TestOrderService_CloseAndCancel(t *testing.T) {
	h := &recordingHandler{reply: envelope{Success: true, Code: "OK"}}
	c, _ := newTestClient(t, h)
	svc := NewOrderService(c)
	ctx := context.Background()

	require.NoError(t, svc.Close(ctx, 42, order.PaymentCash))
	assert.Equal(t, "/api/v1/orders/42/close", h.path)
	assert.JSONEq(t, `{"payment_method": "CASH"}`, string(h.body))

	require.NoError(t, svc.Cancel(ctx, 42))
	assert.Equal(t, http.MethodDelete, h.method)
	assert.Equal(t, "/api/v1/orders/42", h.path)
}

func TestOrderService_ApplyDiscount(t *testing.T) {
	h := &recordingHandler{reply: envelope{Success: true, Code: "OK"}}
	c, _ := newTestClient(t, h)
	svc := NewOrderService(c)

	req := order.DiscountRequest{Type: order.DiscountPercentage, Value: 10, Reason: "regular"}
	require.NoError(t, svc.ApplyDiscount(context.Background(), 42, req))

	assert.Equal(t, http.MethodPut, h.method)
	assert.Equal(t, "/api/v1/orders/42/discount", h.path)
	assert.JSONEq(t, `{"type": "PERCENTAGE", "value": 10, "reason": "regular"}`, string(h.body))
}

func TestOrderService_ListByTable(t *testing.T) {
	h := &recordingHandler{reply: envelope{
		Success: true,
		Code:    "OK",
		Data:    json.RawMessage(`[{"id": 1, "status": "OPEN"}, {"id": 2, "status": "OPEN"}]`),
	}}
	c, _ := newTestClient(t, h)
	svc := NewOrderService(c)

	orders, err := svc.ListByTable(context.Background(), 3)

	require.NoError(t, err)
	assert.Equal(t, "/api/v1/orders/table/3", h.path)
	require.Len(t, orders, 2)
	assert.Equal(t, int64(1), orders[0].ID)
}
