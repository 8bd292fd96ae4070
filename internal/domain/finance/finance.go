// Package finance holds expense tracking and daily report models.
package finance

import (
	"context"
	"time"

	"github.com/KaanCaman/simple-pos-full-stack/pkg/money"
)

// PaymentMethod identifies how an expense was paid. Mirrors the order-side
// enum but lives here so finance flows do not import order.
type PaymentMethod string

const (
	PaymentCash       PaymentMethod = "CASH"
	PaymentCreditCard PaymentMethod = "CREDIT_CARD"
)

// Expense is a cash-register outflow recorded during the open day.
type Expense struct {
	ID            int64         `json:"id"`
	Category      string        `json:"category,omitempty"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	Amount        money.Amount  `json:"amount"`
	Description   string        `json:"description"`
	WorkPeriodID  int64         `json:"work_period_id"`
	CreatedBy     int64         `json:"created_by"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// ExpenseRequest is the create/update payload for an expense.
type ExpenseRequest struct {
	Category      string        `json:"category,omitempty"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	Amount        money.Amount  `json:"amount"`
	Description   string        `json:"description"`
}

// DailyReport is the aggregated snapshot for one report date.
type DailyReport struct {
	ReportDate    string       `json:"report_date"`
	TotalOrders   int          `json:"total_orders"`
	TotalSales    money.Amount `json:"total_sales"`
	CashSales     money.Amount `json:"cash_sales"`
	PosSales      money.Amount `json:"pos_sales"`
	TotalExpenses money.Amount `json:"total_expenses"`
	NetProfit     money.Amount `json:"net_profit"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// ProductSalesStat is per-product performance within a report date.
type ProductSalesStat struct {
	ID           int64        `json:"id"`
	ReportDate   string       `json:"report_date"`
	ProductID    int64        `json:"product_id"`
	ProductName  string       `json:"product_name"`
	QuantitySold int          `json:"quantity_sold"`
	TotalRevenue money.Amount `json:"total_revenue"`
}

// ExpensesAPI defines the backend expense operations.
type ExpensesAPI interface {
	List(ctx context.Context) ([]Expense, error)
	Add(ctx context.Context, req ExpenseRequest) (*Expense, error)
	Update(ctx context.Context, id int64, req ExpenseRequest) (*Expense, error)
	Delete(ctx context.Context, id int64) error
}

// ReportsAPI defines the backend analytics operations. Scope selects the
// reporting window: "active" for the open period or "period_<id>" for a
// specific closed one.
type ReportsAPI interface {
	Daily(ctx context.Context, date string, scope string) (*DailyReport, error)
	ProductSales(ctx context.Context, date string, scope string) ([]ProductSalesStat, error)
	History(ctx context.Context) ([]DailyReport, error)
}
