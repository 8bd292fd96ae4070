// Package order holds the client-side order model and the contract for
// talking to the backend order endpoints. All totals carried by Order are
// server-computed; the client never substitutes its own arithmetic for them.
package order

import (
	"context"
	"time"

	"github.com/KaanCaman/simple-pos-full-stack/pkg/money"
)

// Status is the lifecycle state of an order.
type Status string

const (
	StatusOpen      Status = "OPEN"
	StatusClosed    Status = "CLOSED"
	StatusCancelled Status = "CANCELLED"
	StatusCompleted Status = "COMPLETED"
)

// PaymentMethod identifies how a closed order was paid.
type PaymentMethod string

const (
	PaymentNone       PaymentMethod = ""
	PaymentCash       PaymentMethod = "CASH"
	PaymentCreditCard PaymentMethod = "CREDIT_CARD"
)

// DiscountType identifies how DiscountValue is interpreted.
type DiscountType string

const (
	DiscountNone       DiscountType = "NONE"
	DiscountPercentage DiscountType = "PERCENTAGE"
	DiscountAmount     DiscountType = "AMOUNT"
)

// Order is one open or closed tab against a table.
//
// Invariant (server-guaranteed): TotalAmount == Subtotal - DiscountAmount + TaxAmount.
type Order struct {
	ID             int64         `json:"id"`
	OrderNumber    string        `json:"order_number"`
	WorkPeriodID   int64         `json:"work_period_id"`
	TableID        int64         `json:"table_id"`
	WaiterID       int64         `json:"waiter_id"`
	Status         Status        `json:"status"`
	Subtotal       money.Amount  `json:"subtotal"`
	TaxAmount      money.Amount  `json:"tax_amount"`
	DiscountType   DiscountType  `json:"discount_type"`
	DiscountValue  int64         `json:"discount_value"`
	DiscountAmount money.Amount  `json:"discount_amount"`
	DiscountReason string        `json:"discount_reason"`
	TotalAmount    money.Amount  `json:"total_amount"`
	PaymentMethod  PaymentMethod `json:"payment_method"`
	Items          []Item        `json:"items,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
	CompletedAt    *time.Time    `json:"completed_at"`
	DeletedAt      *time.Time    `json:"deleted_at,omitempty"`
}

// Item is one product line within an order. ProductName and UnitPrice are
// snapshots captured at add time; Subtotal is server-computed.
type Item struct {
	ID          int64        `json:"id"`
	OrderID     int64        `json:"order_id"`
	ProductID   int64        `json:"product_id"`
	ProductName string       `json:"product_name"`
	Quantity    int          `json:"quantity"`
	UnitPrice   money.Amount `json:"unit_price"`
	Subtotal    money.Amount `json:"subtotal"`
	Note        string       `json:"note,omitempty"`
}

// AddItemRequest is the payload for adding a line to an order.
type AddItemRequest struct {
	ProductID int64  `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Note      string `json:"note,omitempty"`
}

// API defines the backend order operations consumed by the session layer.
type API interface {
	Create(ctx context.Context, tableID, waiterID int64) (*Order, error)
	Get(ctx context.Context, id int64) (*Order, error)
	ListByTable(ctx context.Context, tableID int64) ([]Order, error)
	AddItem(ctx context.Context, orderID int64, req AddItemRequest) error
	UpdateItem(ctx context.Context, orderID, itemID int64, quantity int) error
	RemoveItem(ctx context.Context, orderID, itemID int64) error
	ApplyDiscount(ctx context.Context, orderID int64, req DiscountRequest) error
	Close(ctx context.Context, orderID int64, method PaymentMethod) error
	Cancel(ctx context.Context, orderID int64) error
}
