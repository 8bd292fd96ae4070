package rest

import (
	"context"
	"fmt"
	"net/url"

	"github.com/KaanCaman/simple-pos-full-stack/internal/domain/finance"
)

var _ finance.ExpensesAPI = (*ExpenseService)(nil)

// ExpenseService implements finance.ExpensesAPI against the backend
// /transactions/expense endpoints.
type ExpenseService struct {
	c *Client
}

// NewExpenseService returns an ExpenseService using the given client.
func NewExpenseService(c *Client) *ExpenseService {
	return &ExpenseService{c: c}
}

func (s *ExpenseService) List(ctx context.Context) ([]finance.Expense, error) {
	var expenses []finance.Expense
	if err := s.c.get(ctx, apiV1+"/transactions/expense", &expenses); err != nil {
		return nil, err
	}
	return expenses, nil
}

func (s *ExpenseService) Add(ctx context.Context, req finance.ExpenseRequest) (*finance.Expense, error) {
	var e finance.Expense
	if err := s.c.post(ctx, apiV1+"/transactions/expense", req, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *ExpenseService) Update(ctx context.Context, id int64, req finance.ExpenseRequest) (*finance.Expense, error) {
	var e finance.Expense
	if err := s.c.put(ctx, fmt.Sprintf("%s/transactions/expense/%d", apiV1, id), req, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *ExpenseService) Delete(ctx context.Context, id int64) error {
	return s.c.delete(ctx, fmt.Sprintf("%s/transactions/expense/%d", apiV1, id))
}

var _ finance.ReportsAPI = (*ReportService)(nil)

// ReportService implements finance.ReportsAPI against the backend /analytics
// endpoints.
type ReportService struct {
	c *Client
}

// NewReportService returns a ReportService using the given client.
func NewReportService(c *Client) *ReportService {
	return &ReportService{c: c}
}

// Daily returns the aggregated report for a date (YYYY-MM-DD). Scope is
// "active" for the open period or "period_<id>" for a closed one; empty
// lets the backend pick its default.
func (s *ReportService) Daily(ctx context.Context, date, scope string) (*finance.DailyReport, error) {
	q := url.Values{}
	if date != "" {
		q.Set("date", date)
	}
	if scope != "" {
		q.Set("scope", scope)
	}

	path := apiV1 + "/analytics/daily"
	if encoded := q.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var report finance.DailyReport
	if err := s.c.get(ctx, path, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// ProductSales returns per-product performance for a date, same date/scope
// semantics as Daily.
func (s *ReportService) ProductSales(ctx context.Context, date, scope string) ([]finance.ProductSalesStat, error) {
	q := url.Values{}
	if date != "" {
		q.Set("date", date)
	}
	if scope != "" {
		q.Set("scope", scope)
	}

	path := apiV1 + "/analytics/products"
	if encoded := q.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var stats []finance.ProductSalesStat
	if err := s.c.get(ctx, path, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *ReportService) History(ctx context.Context) ([]finance.DailyReport, error) {
	var reports []finance.DailyReport
	if err := s.c.get(ctx, apiV1+"/analytics/history", &reports); err != nil {
		return nil, err
	}
	return reports, nil
}
