// Package session holds the client-side state containers that mirror
// backend state: the current order, the table and catalog caches, the
// authenticated operator, and the day-open gate. Containers are constructed
// once by the app and injected into the terminal; there is no package-level
// singleton.
package session

import (
	"context"
	"sync"

	"github.com/go-faster/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/KaanCaman/simple-pos-full-stack/internal/domain/auth"
	"github.com/KaanCaman/simple-pos-full-stack/internal/domain/catalog"
	"github.com/KaanCaman/simple-pos-full-stack/internal/domain/finance"
	"github.com/KaanCaman/simple-pos-full-stack/internal/domain/order"
	"github.com/KaanCaman/simple-pos-full-stack/internal/domain/shift"
	"github.com/KaanCaman/simple-pos-full-stack/internal/domain/table"
	"github.com/KaanCaman/simple-pos-full-stack/internal/localstore"
)

// ErrCredentialsRequired rejects a login attempt with a blank username or
// password before any network call.
var ErrCredentialsRequired = errors.New("username and password are required")

// TokenCarrier is the transport-side bearer token slot. Implemented by
// rest.Client.
type TokenCarrier interface {
	SetToken(token string)
	ClearToken()
}

// Backend bundles the per-resource backend APIs the session layer consumes.
type Backend struct {
	Auth     auth.API
	Users    auth.UsersAPI
	Orders   order.API
	Tables   table.API
	Catalog  catalog.API
	Shift    shift.API
	Expenses finance.ExpensesAPI
	Reports  finance.ReportsAPI
}

// AuthState holds the authenticated operator and the opaque bearer token.
type AuthState struct {
	carrier TokenCarrier
	lg      *zap.Logger

	mu    sync.RWMutex
	user  *auth.User
	token string
}

// User returns the authenticated operator, nil when logged out.
func (a *AuthState) User() *auth.User {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.user
}

// Role returns the operator's role, empty when logged out.
func (a *AuthState) Role() auth.Role {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.user == nil {
		return ""
	}
	return a.user.Role
}

// Token returns the bearer token, empty when logged out.
func (a *AuthState) Token() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.token
}

// IsAuthenticated reports whether a token is held. During initialization
// this is optimistic: the persisted token is trusted until verification
// says otherwise.
func (a *AuthState) IsAuthenticated() bool {
	return a.Token() != ""
}

func (a *AuthState) set(token string, user *auth.User) {
	a.mu.Lock()
	a.token = token
	a.user = user
	a.mu.Unlock()
	if token != "" {
		a.carrier.SetToken(token)
	} else {
		a.carrier.ClearToken()
	}
}

// Session is the root state container, constructed once at process start
// and passed to whatever owns the UI tree.
type Session struct {
	Auth    *AuthState
	Day     *DayState
	Orders  *OrderSession
	Tables  *TableCache
	Catalog *CatalogCache

	// Thin passthroughs with no local state worth caching.
	Expenses finance.ExpensesAPI
	Reports  finance.ReportsAPI
	Users    auth.UsersAPI

	backend Backend
	store   *localstore.Store
	lg      *zap.Logger
}

// New wires the state containers. The caller is expected to register
// HandleUnauthorized as the transport's 401 callback.
func New(b Backend, carrier TokenCarrier, store *localstore.Store, lg *zap.Logger) *Session {
	authState := &AuthState{carrier: carrier, lg: lg.Named("auth")}
	tables := NewTableCache(b.Tables, lg.Named("tables"))

	return &Session{
		Auth:     authState,
		Day:      NewDayState(b.Shift, lg.Named("day")),
		Orders:   NewOrderSession(b.Orders, tables, lg.Named("orders")),
		Tables:   tables,
		Catalog:  NewCatalogCache(b.Catalog, lg.Named("catalog")),
		Expenses: b.Expenses,
		Reports:  b.Reports,
		Users:    b.Users,
		backend:  b,
		store:    store,
		lg:       lg,
	}
}

// Initialize restores the persisted session, optimistically trusts it, and
// verifies it against the backend: identity, day status, and catalog warmup
// are fetched concurrently and awaited jointly.
//
// With no persisted session it resolves directly to the unauthenticated
// gate. When verification cannot be reached, the persisted day flag decides
// the phase so the operator is not stuck initializing, and the error is
// returned for display.
func (s *Session) Initialize(ctx context.Context) error {
	state, err := s.store.Load()
	if err != nil {
		s.lg.Warn("Loading persisted session failed", zap.Error(err))
	}
	if state == nil {
		s.Day.ForceUnauthenticated()
		return nil
	}

	user := state.User
	s.Auth.set(state.Token, &user)
	s.Day.MarkInitializing()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		verified, err := s.backend.Auth.Me(gctx)
		if err != nil {
			return errors.Wrap(err, "verify identity")
		}
		s.Auth.mu.Lock()
		s.Auth.user = verified
		s.Auth.mu.Unlock()
		return nil
	})
	g.Go(func() error {
		return s.Day.Refresh(gctx)
	})
	g.Go(func() error {
		// Catalog warmup is a non-critical read; the menu loads on demand
		// if this fails.
		if err := s.Catalog.Refresh(gctx); err != nil {
			s.lg.Warn("Catalog warmup failed", zap.Error(err))
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		if s.Day.Phase() == PhaseInitializing {
			s.Day.ApplyStatus(&shift.DayStatus{IsDayOpen: state.DayOpen})
		}
		return errors.Wrap(err, "verify session")
	}

	s.persist()
	return nil
}

// Login authenticates, stores the token, applies the reported day flag, and
// persists the session. Blank credentials are rejected before any network
// call.
func (s *Session) Login(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return ErrCredentialsRequired
	}

	result, err := s.backend.Auth.Login(ctx, auth.Credentials{
		Username: username,
		Password: password,
	})
	if err != nil {
		return errors.Wrap(err, "login")
	}

	// The login payload carries only id and role; the full record arrives
	// with the next /auth/me verification.
	s.Auth.set(result.Token, &auth.User{
		ID:       result.UserID,
		Name:     username,
		Role:     result.Role,
		IsActive: true,
	})
	s.Day.ApplyStatus(&shift.DayStatus{IsDayOpen: result.IsDayOpen})
	s.persist()

	s.lg.Info("Logged in",
		zap.String("username", username),
		zap.String("role", string(result.Role)))
	return nil
}

// Logout clears the session entirely: token, operator, persisted snapshot,
// and any loaded order.
func (s *Session) Logout() {
	s.Auth.set("", nil)
	s.Orders.Reset()
	s.Day.ForceUnauthenticated()
	if err := s.store.Clear(); err != nil {
		s.lg.Warn("Clearing persisted session failed", zap.Error(err))
	}
	s.lg.Info("Logged out")
}

// HandleUnauthorized is the transport's 401 callback: authorization loss
// anywhere tears down the whole session. Safe to call repeatedly.
func (s *Session) HandleUnauthorized() {
	if !s.Auth.IsAuthenticated() {
		return
	}
	s.lg.Warn("Authorization rejected, tearing down session")
	s.Logout()
}

// StartDay opens the work period as the current operator.
func (s *Session) StartDay(ctx context.Context) error {
	user := s.Auth.User()
	if user == nil {
		return auth.ErrUnauthenticated
	}
	if err := s.Day.StartDay(ctx, user.ID); err != nil {
		return err
	}
	s.persist()
	return nil
}

// EndDay closes the work period and returns the finalized report. The
// session is cleared afterwards: a new shift starts with a fresh login.
func (s *Session) EndDay(ctx context.Context) (*finance.DailyReport, error) {
	user := s.Auth.User()
	if user == nil {
		return nil, auth.ErrUnauthenticated
	}
	report, err := s.Day.EndDay(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	s.Logout()
	return report, nil
}

// Steer resolves where a navigation request actually lands given the
// current phase and operator role.
func (s *Session) Steer(requested auth.Route) auth.Route {
	return Steer(s.Day.Phase(), s.Auth.Role(), requested)
}

// persist snapshots the current token, operator, and day flag.
func (s *Session) persist() {
	user := s.Auth.User()
	if user == nil {
		return
	}
	err := s.store.Save(localstore.State{
		Token:   s.Auth.Token(),
		User:    *user,
		DayOpen: s.Day.IsDayOpen(),
	})
	if err != nil {
		s.lg.Warn("Persisting session failed", zap.Error(err))
	}
}
