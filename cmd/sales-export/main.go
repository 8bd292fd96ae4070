// Command sales-export pulls the daily report history from the backend and
// writes it as a gzip-compressed CSV for spreadsheet import or archival.
//
// The history endpoint may serve aggregates cached at close time, so each
// report date is re-fetched individually (bounded concurrency) to pick up
// late corrections before export.
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/go-faster/errors"
	pgzip "github.com/klauspost/pgzip"
	"golang.org/x/sync/errgroup"

	"github.com/KaanCaman/simple-pos-full-stack/internal/domain/finance"
	"github.com/KaanCaman/simple-pos-full-stack/internal/rest"
)

const fetchConcurrency = 4

func main() {
	var (
		baseURL string
		token   string
		outPath string
		timeout time.Duration
	)

	flag.StringVar(&baseURL, "base-url", "http://localhost:8080", "backend API origin")
	flag.StringVar(&token, "token", "", "bearer token (or POS_TOKEN env)")
	flag.StringVar(&outPath, "out", "sales-history.csv.gz", "output file path")
	flag.DurationVar(&timeout, "request-timeout", 30*time.Second, "per-request timeout")
	flag.Parse()

	if token == "" {
		token = os.Getenv("POS_TOKEN")
	}
	if token == "" {
		slog.Error("token is required: set --token or POS_TOKEN")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, baseURL, token, outPath, timeout); err != nil {
		slog.Error("sales export failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("sales export completed", slog.String("out", outPath))
}

func run(ctx context.Context, baseURL, token, outPath string, timeout time.Duration) error {
	client, err := rest.NewClient(rest.Config{BaseURL: baseURL, Timeout: timeout})
	if err != nil {
		return errors.Wrap(err, "create client")
	}
	client.SetToken(token)
	reports := rest.NewReportService(client)

	history, err := reports.History(ctx)
	if err != nil {
		return errors.Wrap(err, "fetch history")
	}
	slog.Info("history fetched", slog.Int("days", len(history)))

	fresh, err := refetchDays(ctx, reports, history)
	if err != nil {
		return errors.Wrap(err, "refetch days")
	}

	return writeCSV(outPath, fresh)
}

// refetchDays re-reads each historical date and falls back to the history
// row when the per-date read fails.
func refetchDays(ctx context.Context, reports *rest.ReportService, history []finance.DailyReport) ([]finance.DailyReport, error) {
	out := make([]finance.DailyReport, len(history))

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchConcurrency)
	for i, row := range history {
		i, row := i, row
		g.Go(func() error {
			report, err := reports.Daily(ctx, row.ReportDate, "")
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				slog.Warn("per-date fetch failed, using history row",
					slog.String("date", row.ReportDate),
					slog.String("error", err.Error()))
				out[i] = row
				return nil
			}
			out[i] = *report
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ReportDate < out[j].ReportDate })
	return out, nil
}

func writeCSV(path string, reports []finance.DailyReport) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create output file")
	}
	defer f.Close()

	gz := pgzip.NewWriter(f)
	w := csv.NewWriter(gz)

	header := []string{"date", "total_orders", "total_sales", "cash_sales", "pos_sales", "total_expenses", "net_profit"}
	if err := w.Write(header); err != nil {
		return errors.Wrap(err, "write header")
	}

	for _, r := range reports {
		record := []string{
			r.ReportDate,
			strconv.Itoa(r.TotalOrders),
			r.TotalSales.String(),
			r.CashSales.String(),
			r.PosSales.String(),
			r.TotalExpenses.String(),
			r.NetProfit.String(),
		}
		if err := w.Write(record); err != nil {
			return errors.Wrapf(err, "write row %s", r.ReportDate)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return errors.Wrap(err, "flush csv")
	}
	if err := gz.Close(); err != nil {
		return errors.Wrap(err, "close gzip stream")
	}
	return f.Close()
}
