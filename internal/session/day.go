package session

import (
	"context"
	"sync"
	"time"

	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"github.com/KaanCaman/simple-pos-full-stack/internal/domain/auth"
	"github.com/KaanCaman/simple-pos-full-stack/internal/domain/finance"
	"github.com/KaanCaman/simple-pos-full-stack/internal/domain/shift"
)

// Phase is the day-gating state.
//
// Uninitialized → Initializing → {DayClosed, DayOpen}; any authorization
// loss forces Unauthenticated from every phase.
type Phase int

const (
	PhaseUninitialized Phase = iota
	PhaseInitializing
	PhaseDayClosed
	PhaseDayOpen
	PhaseUnauthenticated
)

func (p Phase) String() string {
	switch p {
	case PhaseUninitialized:
		return "uninitialized"
	case PhaseInitializing:
		return "initializing"
	case PhaseDayClosed:
		return "day-closed"
	case PhaseDayOpen:
		return "day-open"
	case PhaseUnauthenticated:
		return "unauthenticated"
	}
	return "unknown"
}

// DayState tracks whether the operational day is open. The backend is the
// authority; this mirror exists for navigation gating.
type DayState struct {
	api shift.API
	lg  *zap.Logger

	mu        sync.RWMutex
	phase     Phase
	startTime *time.Time
}

// NewDayState returns a DayState in the uninitialized phase.
func NewDayState(api shift.API, lg *zap.Logger) *DayState {
	return &DayState{api: api, lg: lg, phase: PhaseUninitialized}
}

// Phase returns the current gating phase.
func (d *DayState) Phase() Phase {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.phase
}

// IsDayOpen reports whether the work period is open.
func (d *DayState) IsDayOpen() bool {
	return d.Phase() == PhaseDayOpen
}

// StartTime returns the server-confirmed day start, nil while closed.
func (d *DayState) StartTime() *time.Time {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.startTime
}

// MarkInitializing records that a persisted session was restored
// optimistically and verification is underway.
func (d *DayState) MarkInitializing() {
	d.mu.Lock()
	d.phase = PhaseInitializing
	d.mu.Unlock()
}

// ApplyStatus resolves the phase from a backend day status.
func (d *DayState) ApplyStatus(status *shift.DayStatus) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if status.IsDayOpen {
		d.phase = PhaseDayOpen
		d.startTime = status.StartTime
	} else {
		d.phase = PhaseDayClosed
		d.startTime = nil
	}
}

// Refresh fetches the authoritative day status and applies it.
func (d *DayState) Refresh(ctx context.Context) error {
	status, err := d.api.Status(ctx)
	if err != nil {
		return errors.Wrap(err, "fetch day status")
	}
	d.ApplyStatus(status)
	return nil
}

// StartDay opens the work period. The transition only lands when the
// backend confirms it.
func (d *DayState) StartDay(ctx context.Context, userID int64) error {
	status, err := d.api.StartDay(ctx, userID)
	if err != nil {
		return errors.Wrap(err, "start day")
	}
	d.ApplyStatus(status)
	d.lg.Info("Day started", zap.Int64("user_id", userID))
	return nil
}

// EndDay closes the work period and returns the finalized report snapshot.
func (d *DayState) EndDay(ctx context.Context, userID int64) (*finance.DailyReport, error) {
	report, err := d.api.EndDay(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "end day")
	}

	d.mu.Lock()
	d.phase = PhaseDayClosed
	d.startTime = nil
	d.mu.Unlock()

	d.lg.Info("Day ended", zap.Int64("user_id", userID))
	return report, nil
}

// ForceUnauthenticated is the session-wide reaction to authorization loss:
// whatever the day state was, the operator is back at the login gate.
func (d *DayState) ForceUnauthenticated() {
	d.mu.Lock()
	d.phase = PhaseUnauthenticated
	d.startTime = nil
	d.mu.Unlock()
}

// Steer returns the route the terminal must actually show for a navigation
// request, applying day gating and role capabilities in one place:
//
//   - unauthenticated (or never initialized): login
//   - initializing: the request passes through optimistically; background
//     verification may still bounce it
//   - day closed: admins are steered to start-day, everyone else to the
//     system-closed screen
//   - day open: start-day and system-closed bounce to the role's landing
//     route, as does any route the role may not visit
func Steer(phase Phase, role auth.Role, requested auth.Route) auth.Route {
	caps := auth.Resolve(role)

	switch phase {
	case PhaseInitializing:
		return requested
	case PhaseDayClosed:
		return caps.ClosedDayRoute
	case PhaseDayOpen:
		if requested == auth.RouteStartDay || requested == auth.RouteSystemClosed {
			return caps.Landing
		}
		if !caps.Allows(requested) {
			return caps.Landing
		}
		return requested
	default:
		return auth.RouteLogin
	}
}
