package connectivity

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func passingProbe() ProbeFunc {
	return func(context.Context) error { return nil }
}

func failingProbe(msg string) ProbeFunc {
	return func(context.Context) error { return errors.New(msg) }
}

func TestMonitorStartsOnline(t *testing.T) {
	m := New(passingProbe(), zap.NewNop(), Options{})
	assert.True(t, m.Online())
	assert.NoError(t, m.LastError())
}

func TestMonitorFailureThreshold(t *testing.T) {
	m := New(failingProbe("connection refused"), zap.NewNop(), Options{FailureThreshold: 3})
	ctx := context.Background()

	m.run(ctx)
	m.run(ctx)
	assert.True(t, m.Online(), "below the threshold the state must not flip")

	m.run(ctx)
	assert.False(t, m.Online())
	require.Error(t, m.LastError())
	assert.Contains(t, m.LastError().Error(), "connection refused")
}

func TestMonitorRecovery(t *testing.T) {
	var fail bool
	probe := func(context.Context) error {
		if fail {
			return errors.New("down")
		}
		return nil
	}

	var transitions []bool
	m := New(probe, zap.NewNop(), Options{FailureThreshold: 2, SuccessThreshold: 2})
	m.OnChange(func(online bool) { transitions = append(transitions, online) })
	ctx := context.Background()

	fail = true
	m.run(ctx)
	m.run(ctx)
	assert.False(t, m.Online())

	fail = false
	m.run(ctx)
	assert.False(t, m.Online(), "one success is below the recovery threshold")
	m.run(ctx)
	assert.True(t, m.Online())

	// One callback per transition, not per probe.
	assert.Equal(t, []bool{false, true}, transitions)
}

func TestMonitorStartAndStop(t *testing.T) {
	probed := make(chan struct{}, 1)
	probe := func(context.Context) error {
		select {
		case probed <- struct{}{}:
		default:
		}
		return nil
	}

	m := New(probe, zap.NewNop(), Options{})
	m.Start(context.Background(), 10*time.Millisecond)
	defer m.Stop()

	select {
	case <-probed:
	case <-time.After(time.Second):
		t.Fatal("probe never ran")
	}

	m.Stop()
	m.Stop() // idempotent
}

func TestHTTPProbe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	probe := HTTPProbe(srv.Client(), srv.URL)
	// A completed response is reachable even when the status is a 500.
	assert.NoError(t, probe(context.Background()))

	srv.Close()
	assert.Error(t, probe(context.Background()))
}
