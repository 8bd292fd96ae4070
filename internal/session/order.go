package session

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"github.com/KaanCaman/simple-pos-full-stack/internal/domain/order"
	"github.com/KaanCaman/simple-pos-full-stack/pkg/money"
)

// ErrNoCurrentOrder is returned by mutations that require an order to be
// loaded first.
var ErrNoCurrentOrder = errors.New("no current order")

// TableRefresher re-fetches the table list after operations that change
// table occupancy. Implemented by TableCache.
type TableRefresher interface {
	Refresh(ctx context.Context) error
}

// MutationResult is the outcome of a state-changing order operation.
//
// Applied reports whether the backend accepted the mutation. When true,
// Order normally holds the refreshed authoritative state; if the follow-up
// reload failed, Err is set and Order retains the last-loaded state instead.
// When false, nothing changed on the server and Order is the retained prior
// state (nil if none was current).
type MutationResult struct {
	Applied bool
	Order   *order.Order
	Err     error
}

// OrderSession holds the single order the operator is working on.
//
// Every mutation is posted to the backend and followed by a full reload of
// the order; the container never patches items or totals locally, so the
// displayed subtotal, tax, discount, and total are always exactly what the
// server computed. Mutations are serialized through one mutex; overlapping
// loads resolve last-requested-wins via a monotonic sequence that discards
// stale in-flight results.
type OrderSession struct {
	api    order.API
	tables TableRefresher
	lg     *zap.Logger

	mu      sync.Mutex
	current *order.Order
	lastErr error

	inflight atomic.Int32
	loadSeq  atomic.Uint64
}

// NewOrderSession returns an empty container. tables may be nil when table
// occupancy tracking is not wanted (tests).
func NewOrderSession(api order.API, tables TableRefresher, lg *zap.Logger) *OrderSession {
	return &OrderSession{api: api, tables: tables, lg: lg}
}

// Current returns the order being edited, or nil.
func (s *OrderSession) Current() *order.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Loading reports whether any call is in flight. The flag is set before
// every backend call and cleared when it finishes regardless of outcome, so
// views can use it to disable duplicate submissions.
func (s *OrderSession) Loading() bool {
	return s.inflight.Load() > 0
}

// Err returns the most recent operation error, nil after a success.
func (s *OrderSession) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// CartTotal sums the current items' server-computed subtotals. It exists for
// pre-discount display and discount validation only and is never sent to the
// backend as authoritative.
func (s *OrderSession) CartTotal() money.Amount {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total money.Amount
	if s.current != nil {
		for _, item := range s.current.Items {
			total += item.Subtotal
		}
	}
	return total
}

// ItemCount returns the number of line items (not summed quantities).
func (s *OrderSession) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return 0
	}
	return len(s.current.Items)
}

// Load fetches an order and replaces the current one wholesale. On failure
// the prior state is left untouched. Overlapping loads are not queued: if a
// newer load (or a mutation's reload) starts before this one resolves, the
// stale result is discarded.
func (s *OrderSession) Load(ctx context.Context, orderID int64) error {
	seq := s.loadSeq.Add(1)
	s.begin()
	defer s.end()

	o, err := s.api.Get(ctx, orderID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.lastErr = err
		return err
	}
	if s.loadSeq.Load() != seq {
		s.lg.Debug("Discarding stale order load", zap.Int64("order_id", orderID))
		return nil
	}
	s.setCurrentLocked(o)
	s.lastErr = nil
	return nil
}

// Create opens a new order on a table and makes it current. The table list
// is refreshed regardless of outcome because occupancy may have changed.
// Unlike item mutations, a creation failure is rethrown: the caller needs to
// know the order does not exist.
func (s *OrderSession) Create(ctx context.Context, tableID, waiterID int64) (*order.Order, error) {
	s.begin()
	defer s.end()

	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.refreshTables(ctx)

	o, err := s.api.Create(ctx, tableID, waiterID)
	if err != nil {
		s.lastErr = err
		return nil, errors.Wrap(err, "create order")
	}

	s.loadSeq.Add(1)
	s.setCurrentLocked(o)
	s.lastErr = nil
	return s.current, nil
}

// AddItem posts a line addition and reloads the order.
func (s *OrderSession) AddItem(ctx context.Context, productID int64, quantity int, note string) MutationResult {
	return s.mutate(ctx, "add_item", func(ctx context.Context, orderID int64) error {
		return s.api.AddItem(ctx, orderID, order.AddItemRequest{
			ProductID: productID,
			Quantity:  quantity,
			Note:      note,
		})
	})
}

// UpdateItemQuantity posts a quantity change and reloads the order. The
// container applies no lower bound; the view layer converts quantities
// below one into a removal flow before calling here.
func (s *OrderSession) UpdateItemQuantity(ctx context.Context, itemID int64, quantity int) MutationResult {
	return s.mutate(ctx, "update_item", func(ctx context.Context, orderID int64) error {
		return s.api.UpdateItem(ctx, orderID, itemID, quantity)
	})
}

// RemoveItem deletes a line and reloads the order.
func (s *OrderSession) RemoveItem(ctx context.Context, itemID int64) MutationResult {
	return s.mutate(ctx, "remove_item", func(ctx context.Context, orderID int64) error {
		return s.api.RemoveItem(ctx, orderID, itemID)
	})
}

// ApplyDiscount posts a discount and reloads the order. Input validation
// (percentage range, amount against the cart total) is the caller's
// contract, performed at the presentation layer before any network call.
func (s *OrderSession) ApplyDiscount(ctx context.Context, req order.DiscountRequest) MutationResult {
	return s.mutate(ctx, "apply_discount", func(ctx context.Context, orderID int64) error {
		return s.api.ApplyDiscount(ctx, orderID, req)
	})
}

// Close completes payment on the current order. On success the table list is
// refreshed and the container switches to the first remaining open order on
// the same table, or clears if none remain (returning the operator to table
// selection). On failure the current order is unchanged.
func (s *OrderSession) Close(ctx context.Context, method order.PaymentMethod) MutationResult {
	s.begin()
	defer s.end()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return MutationResult{Err: ErrNoCurrentOrder}
	}

	prior := s.current
	if err := s.api.Close(ctx, prior.ID, method); err != nil {
		s.lastErr = err
		return MutationResult{Order: prior, Err: err}
	}

	s.refreshTables(ctx)
	s.switchToRemainingLocked(ctx, prior.TableID)
	s.lastErr = nil
	return MutationResult{Applied: true, Order: s.current}
}

// Cancel voids an order without payment. Cancelling the current order runs
// the same successor selection as Close; cancelling any other order (from a
// list view) leaves the current order untouched.
func (s *OrderSession) Cancel(ctx context.Context, orderID int64) MutationResult {
	s.begin()
	defer s.end()

	s.mu.Lock()
	defer s.mu.Unlock()

	isCurrent := s.current != nil && s.current.ID == orderID
	var tableID int64
	if isCurrent {
		tableID = s.current.TableID
	}

	if err := s.api.Cancel(ctx, orderID); err != nil {
		s.lastErr = err
		return MutationResult{Order: s.current, Err: err}
	}

	s.refreshTables(ctx)
	if isCurrent {
		s.switchToRemainingLocked(ctx, tableID)
	}
	s.lastErr = nil
	return MutationResult{Applied: true, Order: s.current}
}

// TableOrders returns the open orders on a table. Callers use it to decide
// whether tapping an occupied table resumes an existing order or opens a new
// one. A failed lookup is reported as an error, distinct from an empty
// list, so the caller can retry instead of accidentally opening a duplicate
// order.
func (s *OrderSession) TableOrders(ctx context.Context, tableID int64) ([]order.Order, error) {
	s.begin()
	defer s.end()

	orders, err := s.api.ListByTable(ctx, tableID)
	if err != nil {
		return nil, errors.Wrap(err, "list table orders")
	}
	return orders, nil
}

// Reset clears the current order and error state. Called when leaving the
// order workflow. Safe to call repeatedly.
func (s *OrderSession) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadSeq.Add(1)
	s.current = nil
	s.lastErr = nil
}

// mutate runs one backend mutation against the current order and, on
// success, reloads the full order so totals stay server-authoritative.
func (s *OrderSession) mutate(ctx context.Context, op string, fn func(ctx context.Context, orderID int64) error) MutationResult {
	s.begin()
	defer s.end()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return MutationResult{Err: ErrNoCurrentOrder}
	}

	prior := s.current
	if err := fn(ctx, prior.ID); err != nil {
		s.lastErr = err
		s.lg.Warn("Order mutation failed",
			zap.String("op", op),
			zap.Int64("order_id", prior.ID),
			zap.Error(err))
		return MutationResult{Order: prior, Err: err}
	}

	s.loadSeq.Add(1)
	o, err := s.api.Get(ctx, prior.ID)
	if err != nil {
		// The mutation landed but the refresh did not; keep the stale
		// last-loaded state rather than guessing at totals.
		s.lastErr = err
		s.lg.Warn("Order reload after mutation failed",
			zap.String("op", op),
			zap.Int64("order_id", prior.ID),
			zap.Error(err))
		return MutationResult{Applied: true, Order: prior, Err: err}
	}

	s.setCurrentLocked(o)
	s.lastErr = nil
	return MutationResult{Applied: true, Order: s.current}
}

// switchToRemainingLocked picks the successor order after a close or cancel:
// the first remaining open order on the table, fully loaded, or nothing.
func (s *OrderSession) switchToRemainingLocked(ctx context.Context, tableID int64) {
	remaining, err := s.api.ListByTable(ctx, tableID)
	if err != nil {
		s.lg.Warn("Fetching remaining table orders failed",
			zap.Int64("table_id", tableID),
			zap.Error(err))
		s.current = nil
		return
	}
	if len(remaining) == 0 {
		s.current = nil
		return
	}

	s.loadSeq.Add(1)
	o, err := s.api.Get(ctx, remaining[0].ID)
	if err != nil {
		s.lg.Warn("Loading successor order failed",
			zap.Int64("order_id", remaining[0].ID),
			zap.Error(err))
		s.current = nil
		return
	}
	s.setCurrentLocked(o)
}

func (s *OrderSession) setCurrentLocked(o *order.Order) {
	if o.Items == nil {
		o.Items = []order.Item{}
	}
	s.current = o
}

func (s *OrderSession) refreshTables(ctx context.Context) {
	if s.tables == nil {
		return
	}
	if err := s.tables.Refresh(ctx); err != nil {
		s.lg.Warn("Table list refresh failed", zap.Error(err))
	}
}

func (s *OrderSession) begin() { s.inflight.Add(1) }
func (s *OrderSession) end()   { s.inflight.Add(-1) }
