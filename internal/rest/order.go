package rest

import (
	"context"
	"fmt"

	"github.com/KaanCaman/simple-pos-full-stack/internal/domain/order"
)

var _ order.API = (*OrderService)(nil)

// OrderService implements order.API against the backend /orders endpoints.
type OrderService struct {
	c *Client
}

// NewOrderService returns an OrderService using the given client.
func NewOrderService(c *Client) *OrderService {
	return &OrderService{c: c}
}

func (s *OrderService) Create(ctx context.Context, tableID, waiterID int64) (*order.Order, error) {
	body := struct {
		TableID  int64 `json:"table_id"`
		WaiterID int64 `json:"waiter_id"`
	}{TableID: tableID, WaiterID: waiterID}

	var o order.Order
	if err := s.c.post(ctx, apiV1+"/orders", body, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (s *OrderService) Get(ctx context.Context, id int64) (*order.Order, error) {
	var o order.Order
	if err := s.c.get(ctx, fmt.Sprintf("%s/orders/%d", apiV1, id), &o); err != nil {
		return nil, err
	}
	return &o, nil
}

// ListByTable returns the non-terminal orders currently open on a table.
func (s *OrderService) ListByTable(ctx context.Context, tableID int64) ([]order.Order, error) {
	var orders []order.Order
	if err := s.c.get(ctx, fmt.Sprintf("%s/orders/table/%d", apiV1, tableID), &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *OrderService) AddItem(ctx context.Context, orderID int64, req order.AddItemRequest) error {
	return s.c.post(ctx, fmt.Sprintf("%s/orders/%d/items", apiV1, orderID), req, nil)
}

func (s *OrderService) UpdateItem(ctx context.Context, orderID, itemID int64, quantity int) error {
	body := struct {
		Quantity int `json:"quantity"`
	}{Quantity: quantity}
	return s.c.put(ctx, fmt.Sprintf("%s/orders/%d/items/%d", apiV1, orderID, itemID), body, nil)
}

func (s *OrderService) RemoveItem(ctx context.Context, orderID, itemID int64) error {
	return s.c.delete(ctx, fmt.Sprintf("%s/orders/%d/items/%d", apiV1, orderID, itemID))
}

func (s *OrderService) ApplyDiscount(ctx context.Context, orderID int64, req order.DiscountRequest) error {
	return s.c.put(ctx, fmt.Sprintf("%s/orders/%d/discount", apiV1, orderID), req, nil)
}

func (s *OrderService) Close(ctx context.Context, orderID int64, method order.PaymentMethod) error {
	body := struct {
		PaymentMethod order.PaymentMethod `json:"payment_method"`
	}{PaymentMethod: method}
	return s.c.post(ctx, fmt.Sprintf("%s/orders/%d/close", apiV1, orderID), body, nil)
}

func (s *OrderService) Cancel(ctx context.Context, orderID int64) error {
	return s.c.delete(ctx, fmt.Sprintf("%s/orders/%d", apiV1, orderID))
}
