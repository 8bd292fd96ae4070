package session

import (
	"context"
	"sync"

	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"github.com/KaanCaman/simple-pos-full-stack/internal/domain/table"
)

// TableCache mirrors the backend table list. Occupancy is server-computed;
// the cache only ever replaces what the backend returned.
type TableCache struct {
	api table.API
	lg  *zap.Logger

	mu      sync.RWMutex
	tables  []table.Table
	lastErr error
}

// NewTableCache returns an empty cache.
func NewTableCache(api table.API, lg *zap.Logger) *TableCache {
	return &TableCache{api: api, lg: lg}
}

var _ TableRefresher = (*TableCache)(nil)

// Refresh replaces the cached list with the backend's.
func (c *TableCache) Refresh(ctx context.Context) error {
	tables, err := c.api.List(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.lastErr = err
		return errors.Wrap(err, "fetch tables")
	}
	c.tables = tables
	c.lastErr = nil
	return nil
}

// Tables returns a copy of the cached list.
func (c *TableCache) Tables() []table.Table {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]table.Table, len(c.tables))
	copy(out, c.tables)
	return out
}

// Get returns a cached table by id.
func (c *TableCache) Get(id int64) (table.Table, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, t := range c.tables {
		if t.ID == id {
			return t, true
		}
	}
	return table.Table{}, false
}

// Err returns the most recent refresh error, nil after a success.
func (c *TableCache) Err() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastErr
}

// Create adds a table and appends the backend's version to the cache.
func (c *TableCache) Create(ctx context.Context, req table.Request) (*table.Table, error) {
	t, err := c.api.Create(ctx, req)
	if err != nil {
		return nil, errors.Wrap(err, "create table")
	}

	c.mu.Lock()
	c.tables = append(c.tables, *t)
	c.mu.Unlock()
	return t, nil
}

// Update edits a table and replaces it in the cache.
func (c *TableCache) Update(ctx context.Context, id int64, req table.Request) (*table.Table, error) {
	t, err := c.api.Update(ctx, id, req)
	if err != nil {
		return nil, errors.Wrap(err, "update table")
	}

	c.mu.Lock()
	for i := range c.tables {
		if c.tables[i].ID == id {
			c.tables[i] = *t
			break
		}
	}
	c.mu.Unlock()
	return t, nil
}

// Delete removes a table and drops it from the cache.
func (c *TableCache) Delete(ctx context.Context, id int64) error {
	if err := c.api.Delete(ctx, id); err != nil {
		return errors.Wrap(err, "delete table")
	}

	c.mu.Lock()
	kept := c.tables[:0]
	for _, t := range c.tables {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	c.tables = kept
	c.mu.Unlock()
	return nil
}
