package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaanCaman/simple-pos-full-stack/pkg/money"
)

func TestReportService_Daily(t *testing.T) {
	h := &recordingHandler{reply: envelope{
		Success: true,
		Code:    "OK",
		Data:    json.RawMessage(`{"report_date": "2026-09-01", "total_orders": 7, "total_sales": 123456}`),
	}}
	c, _ := newTestClient(t, h)
	svc := NewReportService(c)

	report, err := svc.Daily(context.Background(), "2026-09-01", "active")

	require.NoError(t, err)
	assert.Equal(t, http.MethodGet, h.method)
	assert.Equal(t, "/api/v1/analytics/daily", h.path)
	assert.Equal(t, "2026-09-01", h.query.Get("date"))
	assert.Equal(t, "active", h.query.Get("scope"))
	assert.Equal(t, 7, report.TotalOrders)
	assert.Equal(t, money.Amount(123456), report.TotalSales)
}

func TestReportService_ProductSales(t *testing.T) {
	h := &recordingHandler{reply: envelope{
		Success: true,
		Code:    "OK",
		Data:    json.RawMessage(`[{"product_id": 10, "product_name": "Latte", "quantity_sold": 5, "total_revenue": 6250}]`),
	}}
	c, _ := newTestClient(t, h)
	svc := NewReportService(c)

	stats, err := svc.ProductSales(context.Background(), "2026-09-01", "active")

	require.NoError(t, err)
	assert.Equal(t, http.MethodGet, h.method)
	assert.Equal(t, "/api/v1/analytics/products", h.path)
	assert.Equal(t, "2026-09-01", h.query.Get("date"))
	assert.Equal(t, "active", h.query.Get("scope"))
	require.Len(t, stats, 1)
	assert.Equal(t, "Latte", stats[0].ProductName)
	assert.Equal(t, 5, stats[0].QuantitySold)
	assert.Equal(t, money.Amount(6250), stats[0].TotalRevenue)
}

func TestReportService_ProductSalesOmitsEmptyQuery(t *testing.T) {
	h := &recordingHandler{reply: envelope{Success: true, Code: "OK", Data: json.RawMessage(`[]`)}}
	c, _ := newTestClient(t, h)
	svc := NewReportService(c)

	stats, err := svc.ProductSales(context.Background(), "", "")

	require.NoError(t, err)
	assert.Empty(t, stats)
	assert.Empty(t, h.query)
}
