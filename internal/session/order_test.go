package session

import (
	"context"
	"sync"
	"testing"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/KaanCaman/simple-pos-full-stack/internal/domain/order"
	"github.com/KaanCaman/simple-pos-full-stack/pkg/money"
)

// orderBackend is an in-memory stand-in for the backend order API. It
// recomputes totals server-side on every mutation so tests can verify that
// the session displays server-computed numbers rather than local ones.
type orderBackend struct {
	mu         sync.Mutex
	nextID     int64
	nextItemID int64
	orders     map[int64]*order.Order
	prices     map[int64]money.Amount
	taxPercent int64

	getErr   error
	addErr   error
	closeErr error
	listErr  error
	onGet    func()
	getCalls int
}

func newOrderBackend(prices map[int64]money.Amount) *orderBackend {
	return &orderBackend{
		orders:     map[int64]*order.Order{},
		prices:     prices,
		taxPercent: 10,
	}
}

var _ order.API = (*orderBackend)(nil)

func (b *orderBackend) Create(_ context.Context, tableID, waiterID int64) (*order.Order, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	o := &order.Order{
		ID:       b.nextID,
		TableID:  tableID,
		WaiterID: waiterID,
		Status:   order.StatusOpen,
		Items:    []order.Item{},
	}
	b.orders[o.ID] = o
	return b.copyLocked(o.ID), nil
}

func (b *orderBackend) Get(_ context.Context, id int64) (*order.Order, error) {
	b.mu.Lock()
	hook := b.onGet
	b.getCalls++
	b.mu.Unlock()
	if hook != nil {
		hook()
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.getErr != nil {
		return nil, b.getErr
	}
	if _, ok := b.orders[id]; !ok {
		return nil, errors.New("order not found")
	}
	return b.copyLocked(id), nil
}

func (b *orderBackend) ListByTable(_ context.Context, tableID int64) ([]order.Order, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.listErr != nil {
		return nil, b.listErr
	}
	var out []order.Order
	for id, o := range b.orders {
		if o.TableID == tableID && o.Status == order.StatusOpen {
			out = append(out, *b.copyLocked(id))
		}
	}
	return out, nil
}

func (b *orderBackend) AddItem(_ context.Context, orderID int64, req order.AddItemRequest) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.addErr != nil {
		return b.addErr
	}
	o, ok := b.orders[orderID]
	if !ok {
		return errors.New("order not found")
	}
	price := b.prices[req.ProductID]
	b.nextItemID++
	o.Items = append(o.Items, order.Item{
		ID:        b.nextItemID,
		OrderID:   orderID,
		ProductID: req.ProductID,
		UnitPrice: price,
		Quantity:  req.Quantity,
		Subtotal:  price * money.Amount(req.Quantity),
		Note:      req.Note,
	})
	b.recomputeLocked(o)
	return nil
}

func (b *orderBackend) UpdateItem(_ context.Context, orderID, itemID int64, quantity int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	o, ok := b.orders[orderID]
	if !ok {
		return errors.New("order not found")
	}
	for i := range o.Items {
		if o.Items[i].ID == itemID {
			o.Items[i].Quantity = quantity
			o.Items[i].Subtotal = o.Items[i].UnitPrice * money.Amount(quantity)
			b.recomputeLocked(o)
			return nil
		}
	}
	return errors.New("item not found")
}

func (b *orderBackend) RemoveItem(_ context.Context, orderID, itemID int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	o, ok := b.orders[orderID]
	if !ok {
		return errors.New("order not found")
	}
	for i := range o.Items {
		if o.Items[i].ID == itemID {
			o.Items = append(o.Items[:i], o.Items[i+1:]...)
			b.recomputeLocked(o)
			return nil
		}
	}
	return errors.New("item not found")
}

func (b *orderBackend) ApplyDiscount(_ context.Context, orderID int64, req order.DiscountRequest) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	o, ok := b.orders[orderID]
	if !ok {
		return errors.New("order not found")
	}
	o.DiscountType = req.Type
	o.DiscountValue = req.Value
	o.DiscountReason = req.Reason
	b.recomputeLocked(o)
	return nil
}

func (b *orderBackend) Close(_ context.Context, orderID int64, method order.PaymentMethod) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closeErr != nil {
		return b.closeErr
	}
	o, ok := b.orders[orderID]
	if !ok {
		return errors.New("order not found")
	}
	o.Status = order.StatusClosed
	o.PaymentMethod = method
	return nil
}

func (b *orderBackend) Cancel(_ context.Context, orderID int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	o, ok := b.orders[orderID]
	if !ok {
		return errors.New("order not found")
	}
	o.Status = order.StatusCancelled
	return nil
}

func (b *orderBackend) recomputeLocked(o *order.Order) {
	var subtotal money.Amount
	for _, it := range o.Items {
		subtotal += it.Subtotal
	}
	o.Subtotal = subtotal
	o.TaxAmount = subtotal * money.Amount(b.taxPercent) / 100

	switch o.DiscountType {
	case order.DiscountPercentage:
		o.DiscountAmount = subtotal * money.Amount(o.DiscountValue) / 100
	case order.DiscountAmount:
		o.DiscountAmount = money.Amount(o.DiscountValue)
	default:
		o.DiscountAmount = 0
	}
	o.TotalAmount = o.Subtotal + o.TaxAmount - o.DiscountAmount
}

func (b *orderBackend) copyLocked(id int64) *order.Order {
	o := *b.orders[id]
	o.Items = append([]order.Item(nil), b.orders[id].Items...)
	return &o
}

type countingRefresher struct {
	calls int
}

func (r *countingRefresher) Refresh(context.Context) error {
	r.calls++
	return nil
}

func newTestOrderSession(t *testing.T, backend *orderBackend) (*OrderSession, *countingRefresher) {
	t.Helper()
	tables := &countingRefresher{}
	return NewOrderSession(backend, tables, zap.NewNop()), tables
}

func TestOrderSessionCreate(t *testing.T) {
	backend := newOrderBackend(nil)
	sess, tables := newTestOrderSession(t, backend)

	o, err := sess.Create(context.Background(), 4, 7)
	require.NoError(t, err)
	require.Equal(t, int64(4), o.TableID)
	require.Equal(t, int64(7), o.WaiterID)
	require.Equal(t, order.StatusOpen, o.Status)
	require.NotNil(t, o.Items)

	require.Same(t, o, sess.Current())
	require.Equal(t, 1, tables.calls, "table occupancy must refresh after create")
	require.False(t, sess.Loading())
}

func TestOrderSessionAddItemUsesServerTotals(t *testing.T) {
	backend := newOrderBackend(map[int64]money.Amount{
		10: 1250, // 12.50
		11: 400,  // 4.00
	})
	sess, _ := newTestOrderSession(t, backend)

	_, err := sess.Create(context.Background(), 1, 1)
	require.NoError(t, err)

	res := sess.AddItem(context.Background(), 10, 2, "")
	require.True(t, res.Applied)
	require.NoError(t, res.Err)

	res = sess.AddItem(context.Background(), 11, 3, "no ice")
	require.True(t, res.Applied)
	require.NoError(t, res.Err)

	cur := sess.Current()
	require.Len(t, cur.Items, 2)
	require.Equal(t, money.Amount(2500), cur.Items[0].Subtotal)
	require.Equal(t, money.Amount(1200), cur.Items[1].Subtotal)
	require.Equal(t, "no ice", cur.Items[1].Note)

	// Totals come from the reload, tax included, not from local arithmetic.
	require.Equal(t, money.Amount(3700), cur.Subtotal)
	require.Equal(t, money.Amount(370), cur.TaxAmount)
	require.Equal(t, money.Amount(4070), cur.TotalAmount)
	require.Equal(t, money.Amount(3700), sess.CartTotal())
	require.Equal(t, 2, sess.ItemCount())
}

func TestOrderSessionMutationWithoutCurrent(t *testing.T) {
	backend := newOrderBackend(nil)
	sess, _ := newTestOrderSession(t, backend)

	res := sess.AddItem(context.Background(), 1, 1, "")
	require.False(t, res.Applied)
	require.ErrorIs(t, res.Err, ErrNoCurrentOrder)
	require.Nil(t, res.Order)
	require.Nil(t, sess.Current())
}

func TestOrderSessionMutationFailureKeepsPrior(t *testing.T) {
	backend := newOrderBackend(map[int64]money.Amount{10: 500})
	sess, _ := newTestOrderSession(t, backend)

	_, err := sess.Create(context.Background(), 1, 1)
	require.NoError(t, err)
	require.True(t, sess.AddItem(context.Background(), 10, 1, "").Applied)
	prior := sess.Current()

	backend.addErr = errors.New("boom")
	res := sess.AddItem(context.Background(), 10, 1, "")
	require.False(t, res.Applied)
	require.Error(t, res.Err)
	require.Same(t, prior, res.Order)
	require.Same(t, prior, sess.Current())
	require.Error(t, sess.Err())
}

func TestOrderSessionReloadFailureAfterMutation(t *testing.T) {
	backend := newOrderBackend(map[int64]money.Amount{10: 500})
	sess, _ := newTestOrderSession(t, backend)

	_, err := sess.Create(context.Background(), 1, 1)
	require.NoError(t, err)
	prior := sess.Current()

	backend.getErr = errors.New("refresh unavailable")
	res := sess.AddItem(context.Background(), 10, 2, "")

	// The mutation landed but the refresh did not: applied with the stale
	// last-loaded state retained.
	require.True(t, res.Applied)
	require.Error(t, res.Err)
	require.Same(t, prior, res.Order)
	require.Same(t, prior, sess.Current())
	require.Empty(t, sess.Current().Items)

	// Server-side the item exists; the next successful reload converges.
	backend.getErr = nil
	require.NoError(t, sess.Load(context.Background(), prior.ID))
	require.Len(t, sess.Current().Items, 1)
	require.Equal(t, money.Amount(1000), sess.Current().Subtotal)
}

func TestOrderSessionUpdateAndRemoveItem(t *testing.T) {
	backend := newOrderBackend(map[int64]money.Amount{10: 1250})
	sess, _ := newTestOrderSession(t, backend)

	_, err := sess.Create(context.Background(), 1, 1)
	require.NoError(t, err)
	require.True(t, sess.AddItem(context.Background(), 10, 1, "").Applied)
	itemID := sess.Current().Items[0].ID

	res := sess.UpdateItemQuantity(context.Background(), itemID, 3)
	require.True(t, res.Applied)
	require.Equal(t, money.Amount(3750), sess.Current().Items[0].Subtotal)

	res = sess.RemoveItem(context.Background(), itemID)
	require.True(t, res.Applied)
	require.Empty(t, sess.Current().Items)
	require.Equal(t, money.Amount(0), sess.Current().TotalAmount)
}

func TestOrderSessionApplyDiscount(t *testing.T) {
	backend := newOrderBackend(map[int64]money.Amount{10: 2500})
	sess, _ := newTestOrderSession(t, backend)

	_, err := sess.Create(context.Background(), 1, 1)
	require.NoError(t, err)
	require.True(t, sess.AddItem(context.Background(), 10, 2, "").Applied)

	res := sess.ApplyDiscount(context.Background(), order.DiscountRequest{
		Type:   order.DiscountPercentage,
		Value:  10,
		Reason: "regular",
	})
	require.True(t, res.Applied)

	cur := sess.Current()
	require.Equal(t, money.Amount(5000), cur.Subtotal)
	require.Equal(t, money.Amount(500), cur.DiscountAmount)
	require.Equal(t, cur.Subtotal+cur.TaxAmount-cur.DiscountAmount, cur.TotalAmount)
}

func TestOrderSessionCloseClearsWhenTableEmpty(t *testing.T) {
	backend := newOrderBackend(map[int64]money.Amount{10: 500})
	sess, tables := newTestOrderSession(t, backend)

	_, err := sess.Create(context.Background(), 1, 1)
	require.NoError(t, err)
	require.True(t, sess.AddItem(context.Background(), 10, 1, "").Applied)

	refreshes := tables.calls
	res := sess.Close(context.Background(), order.PaymentCash)
	require.True(t, res.Applied)
	require.Nil(t, res.Order)
	require.Nil(t, sess.Current())
	require.Greater(t, tables.calls, refreshes)
}

func TestOrderSessionCloseSwitchesToRemaining(t *testing.T) {
	backend := newOrderBackend(map[int64]money.Amount{10: 500})
	sess, _ := newTestOrderSession(t, backend)

	first, err := sess.Create(context.Background(), 1, 1)
	require.NoError(t, err)
	second, err := backend.Create(context.Background(), 1, 2)
	require.NoError(t, err)
	require.NoError(t, backend.AddItem(context.Background(), second.ID, order.AddItemRequest{ProductID: 10, Quantity: 2}))

	require.NoError(t, sess.Load(context.Background(), first.ID))
	res := sess.Close(context.Background(), order.PaymentCreditCard)
	require.True(t, res.Applied)

	// The remaining open order is loaded in full, items included.
	cur := sess.Current()
	require.NotNil(t, cur)
	require.Equal(t, second.ID, cur.ID)
	require.Len(t, cur.Items, 1)
	require.Equal(t, money.Amount(1000), cur.Subtotal)
}

func TestOrderSessionCloseFailureKeepsCurrent(t *testing.T) {
	backend := newOrderBackend(nil)
	sess, _ := newTestOrderSession(t, backend)

	_, err := sess.Create(context.Background(), 1, 1)
	require.NoError(t, err)
	prior := sess.Current()

	backend.closeErr = errors.New("payment rejected")
	res := sess.Close(context.Background(), order.PaymentCash)
	require.False(t, res.Applied)
	require.Error(t, res.Err)
	require.Same(t, prior, sess.Current())
}

func TestOrderSessionCancelNonCurrent(t *testing.T) {
	backend := newOrderBackend(nil)
	sess, _ := newTestOrderSession(t, backend)

	current, err := sess.Create(context.Background(), 1, 1)
	require.NoError(t, err)
	other, err := backend.Create(context.Background(), 2, 1)
	require.NoError(t, err)

	res := sess.Cancel(context.Background(), other.ID)
	require.True(t, res.Applied)
	require.Equal(t, current.ID, sess.Current().ID, "cancelling another order must not touch the current one")
}

func TestOrderSessionCancelCurrent(t *testing.T) {
	backend := newOrderBackend(nil)
	sess, _ := newTestOrderSession(t, backend)

	current, err := sess.Create(context.Background(), 1, 1)
	require.NoError(t, err)

	res := sess.Cancel(context.Background(), current.ID)
	require.True(t, res.Applied)
	require.Nil(t, sess.Current())
}

func TestOrderSessionTableOrders(t *testing.T) {
	backend := newOrderBackend(nil)
	sess, _ := newTestOrderSession(t, backend)

	orders, err := sess.TableOrders(context.Background(), 3)
	require.NoError(t, err)
	require.Empty(t, orders)

	_, err = backend.Create(context.Background(), 3, 1)
	require.NoError(t, err)
	orders, err = sess.TableOrders(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, orders, 1)

	// A failed lookup is an error, never an empty success.
	backend.listErr = errors.New("backend down")
	_, err = sess.TableOrders(context.Background(), 3)
	require.Error(t, err)
}

func TestOrderSessionStaleLoadDiscarded(t *testing.T) {
	backend := newOrderBackend(nil)
	sess, _ := newTestOrderSession(t, backend)

	o, err := backend.Create(context.Background(), 1, 1)
	require.NoError(t, err)

	// A reset while the load is in flight supersedes it; the stale result
	// must not resurrect the order.
	backend.onGet = func() {
		backend.onGet = nil
		sess.Reset()
	}
	require.NoError(t, sess.Load(context.Background(), o.ID))
	require.Nil(t, sess.Current())
}

func TestOrderSessionReset(t *testing.T) {
	backend := newOrderBackend(nil)
	sess, _ := newTestOrderSession(t, backend)

	_, err := sess.Create(context.Background(), 1, 1)
	require.NoError(t, err)
	require.NotNil(t, sess.Current())

	sess.Reset()
	require.Nil(t, sess.Current())
	require.NoError(t, sess.Err())

	sess.Reset()
	require.Nil(t, sess.Current())
}
