// Package app wires the terminal application: configuration, the REST
// client, the session state containers, the reachability probe, and the
// interactive command loop.
package app

import (
	"context"
	"net/http"
	"os"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/app"
	"github.com/go-faster/sdk/zctx"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/KaanCaman/simple-pos-full-stack/internal/localstore"
	"github.com/KaanCaman/simple-pos-full-stack/internal/rest"
	"github.com/KaanCaman/simple-pos-full-stack/internal/session"
	"github.com/KaanCaman/simple-pos-full-stack/internal/terminal"
	"github.com/KaanCaman/simple-pos-full-stack/pkg/connectivity"
)

// Run creates all dependencies and drives the interactive terminal until
// the input ends or the context is cancelled. It is the single wiring point
// for the application.
func Run(ctx context.Context, lg *zap.Logger, m *app.Metrics, cfg *Config) error {
	lg.Info("Initializing", zap.String("base_url", cfg.BaseURL))

	// REST client with instrumented transport.
	transport := otelhttp.NewTransport(http.DefaultTransport,
		otelhttp.WithTracerProvider(m.TracerProvider()),
		otelhttp.WithMeterProvider(m.MeterProvider()),
	)
	client, err := rest.NewClient(rest.Config{
		BaseURL:   cfg.BaseURL,
		Timeout:   cfg.RequestTimeout,
		Transport: transport,
		Logger:    zctx.From(ctx).Named("rest"),
	})
	if err != nil {
		return errors.Wrap(err, "create rest client")
	}

	// Persisted session snapshot.
	statePath := cfg.StatePath
	if statePath == "" {
		statePath, err = localstore.DefaultPath()
		if err != nil {
			return errors.Wrap(err, "resolve state path")
		}
	}
	store := localstore.New(statePath)

	// Session state containers over the per-resource services.
	sess := session.New(session.Backend{
		Auth:     rest.NewAuthService(client),
		Users:    rest.NewUserService(client),
		Orders:   rest.NewOrderService(client),
		Tables:   rest.NewTableService(client),
		Catalog:  rest.NewCatalogService(client),
		Shift:    rest.NewManagementService(client),
		Expenses: rest.NewExpenseService(client),
		Reports:  rest.NewReportService(client),
	}, client, store, lg.Named("session"))

	// A rejected token anywhere tears the whole session down.
	client.SetOnUnauthorized(sess.HandleUnauthorized)

	// Backend reachability probe feeding the offline banner.
	probe := connectivity.New(
		connectivity.HTTPProbe(&http.Client{Timeout: cfg.Probe.Timeout}, cfg.BaseURL+"/health"),
		lg.Named("connectivity"),
		connectivity.Options{
			Timeout:          cfg.Probe.Timeout,
			FailureThreshold: cfg.Probe.FailureThreshold,
			SuccessThreshold: cfg.Probe.SuccessThreshold,
		},
	)
	probe.Start(ctx, cfg.Probe.Interval)
	defer probe.Stop()

	// Restore and verify any persisted session. A verification failure is
	// not fatal: the command loop lands on the login screen.
	if err := sess.Initialize(ctx); err != nil {
		lg.Warn("Session restore failed", zap.Error(err))
	}

	term := terminal.New(sess, probe, os.Stdin, os.Stdout, lg.Named("terminal"))
	if err := term.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return errors.Wrap(err, "terminal")
	}
	return nil
}
