// Package connectivity tracks whether the backend is reachable from the
// terminal.
//
// The probe runs in a single background goroutine at a configurable
// interval. Transitions use failure/success thresholds to avoid flapping: a
// probe must fail consecutively failureThreshold times before the monitor
// reports offline, and succeed successThreshold times before it reports
// online again. A single slow request therefore never flips the terminal
// into offline mode.
package connectivity

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-faster/errors"
	"go.uber.org/zap"
)

// ProbeFunc checks backend reachability once. It returns nil when the
// backend answered, or an error describing why it did not.
type ProbeFunc func(ctx context.Context) error

// Options tunes the monitor. Zero values take the defaults below.
type Options struct {
	// Timeout bounds a single probe. Default 3s.
	Timeout time.Duration
	// FailureThreshold is the number of consecutive failures before the
	// monitor reports offline. Default 2.
	FailureThreshold int
	// SuccessThreshold is the number of consecutive successes before the
	// monitor reports online again. Default 1.
	SuccessThreshold int
}

// Monitor periodically probes the backend and exposes the smoothed
// online/offline state.
type Monitor struct {
	probe   ProbeFunc
	lg      *zap.Logger
	timeout time.Duration

	failureThreshold int
	successThreshold int

	// online is read by views from arbitrary goroutines and written only
	// by run().
	online  atomic.Bool
	lastErr atomic.Pointer[error]

	// onChange is invoked from the probe goroutine on every transition.
	onChange atomic.Pointer[func(online bool)]

	// counters are only touched from the single run() goroutine.
	consecutiveFails int
	consecutiveOK    int

	mu     sync.Mutex
	cancel context.CancelFunc
}

// New creates a monitor in the online state: the terminal assumes the
// backend is reachable until probes prove otherwise.
func New(probe ProbeFunc, lg *zap.Logger, opts Options) *Monitor {
	if opts.Timeout <= 0 {
		opts.Timeout = 3 * time.Second
	}
	if opts.FailureThreshold <= 0 {
		opts.FailureThreshold = 2
	}
	if opts.SuccessThreshold <= 0 {
		opts.SuccessThreshold = 1
	}

	m := &Monitor{
		probe:            probe,
		lg:               lg,
		timeout:          opts.Timeout,
		failureThreshold: opts.FailureThreshold,
		successThreshold: opts.SuccessThreshold,
	}
	m.online.Store(true)
	return m
}

// HTTPProbe returns a ProbeFunc that issues a GET against the given URL.
// Any completed response counts as reachable, server errors included: a
// backend answering 500 is unhealthy but not unreachable, and the
// distinction matters for what the terminal tells the operator.
func HTTPProbe(client *http.Client, url string) ProbeFunc {
	return func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return errors.Wrap(err, "build probe request")
		}
		resp, err := client.Do(req)
		if err != nil {
			return errors.Wrap(err, "probe backend")
		}
		_ = resp.Body.Close()
		return nil
	}
}

// Online returns the smoothed reachability state.
func (m *Monitor) Online() bool {
	return m.online.Load()
}

// LastError returns the most recent probe error, or nil.
func (m *Monitor) LastError() error {
	if p := m.lastErr.Load(); p != nil {
		return *p
	}
	return nil
}

// OnChange registers a callback invoked from the probe goroutine whenever
// the smoothed state transitions. At most one callback is held; a later
// registration replaces the earlier one.
func (m *Monitor) OnChange(fn func(online bool)) {
	m.onChange.Store(&fn)
}

// Start begins probing at the given interval until the context is cancelled
// or Stop is called. The first probe runs immediately.
func (m *Monitor) Start(ctx context.Context, interval time.Duration) {
	ctx, cancel := context.WithCancel(ctx)

	m.mu.Lock()
	if m.cancel != nil {
		m.mu.Unlock()
		cancel()
		return
	}
	m.cancel = cancel
	m.mu.Unlock()

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		m.run(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.run(ctx)
			}
		}
	}()
}

// Stop cancels the probe goroutine. Safe to call multiple times.
func (m *Monitor) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
}

// run executes one probe and updates the thresholds. Called from a single
// goroutine.
func (m *Monitor) run(ctx context.Context) {
	probeCtx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	err := m.probe(probeCtx)
	m.lastErr.Store(&err)

	if err != nil {
		m.consecutiveOK = 0
		m.consecutiveFails++
		if m.consecutiveFails >= m.failureThreshold && m.online.Load() {
			m.online.Store(false)
			m.lg.Warn("Backend unreachable", zap.Error(err))
			m.fire(false)
		}
		return
	}

	m.consecutiveFails = 0
	m.consecutiveOK++
	if m.consecutiveOK >= m.successThreshold && !m.online.Load() {
		m.online.Store(true)
		m.lg.Info("Backend reachable again")
		m.fire(true)
	}
}

func (m *Monitor) fire(online bool) {
	if fn := m.onChange.Load(); fn != nil {
		(*fn)(online)
	}
}
