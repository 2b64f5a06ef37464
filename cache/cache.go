// Package cache holds the session-scoped resource collections behind the
// app's list screens. One ResourceCache instance owns the in-memory ordered
// collection for one resource type and mediates every create/update/delete,
// patching the collection only after the remote call has succeeded — there
// is no optimistic pre-application and therefore no rollback path.
package cache

import (
	"context"
	"sync"

	"github.com/imovelhub/agent_backend/gateway"
	"github.com/imovelhub/agent_backend/utils"
)

// Entity is any row managed by a ResourceCache.
type Entity interface {
	EntityID() string
}

// Patch is a per-type partial update with a statically known set of mutable
// fields. Validate runs against the current in-memory row before the remote
// call (status transition guards live there); Columns feeds the gateway
// update; Apply merges the patch into the cached row after success.
type Patch[T any] interface {
	Validate(prev T) error
	Columns() map[string]any
	Apply(*T)
}

type ownable interface {
	SetOwner(userId string)
}

// Config parameterizes the generic cache for one resource type.
type Config[T Entity, P Patch[T]] struct {
	Table  string
	Orders []gateway.Order

	// Fallback supplies the seed rows shown before the store has any data
	// for the agent. Nil for resource types without a seed dataset. The
	// supplier must return fresh copies; the cache never hands them back.
	Fallback func() []T

	// Less orders newly created rows into place (schedule-sorted
	// resources). When nil, created rows are prepended.
	Less func(a, b T) bool

	// Join enriches fetched rows with linked-entity summaries in place.
	Join func(ctx context.Context, gw gateway.Gateway, items []T) error

	// SerializeMutations funnels mutations on the same identifier through
	// a per-id lock. Off by default: concurrent mutations race and the
	// last resolution wins, matching the shipped app's behavior.
	SerializeMutations bool
}

// ResourceCache is the generic collection primitive. The internal lock is
// only ever held around state reads and patches, never across a gateway
// call, so in-flight mutations still interleave freely.
type ResourceCache[T Entity, P Patch[T]] struct {
	gw  gateway.Gateway
	cfg Config[T, P]

	mu            sync.Mutex
	items         []T
	inflight      int
	lastErr       error
	usingFallback bool

	idMu    sync.Mutex
	idLocks map[string]*sync.Mutex
}

func New[T Entity, P Patch[T]](gw gateway.Gateway, cfg Config[T, P]) *ResourceCache[T, P] {
	c := &ResourceCache[T, P]{gw: gw, cfg: cfg}
	if cfg.Fallback != nil {
		c.items = cfg.Fallback()
		c.usingFallback = true
	}
	if cfg.SerializeMutations {
		c.idLocks = make(map[string]*sync.Mutex)
	}
	return c
}

// Items returns a copy of the current collection in order.
func (c *ResourceCache[T, P]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Find returns a copy of the cached row with the given identifier.
func (c *ResourceCache[T, P]) Find(id string) (*T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	row, ok := c.findLocked(id)
	if !ok {
		return nil, false
	}
	return &row, true
}

// IsLoading reports whether any fetch or mutation round-trip is outstanding.
func (c *ResourceCache[T, P]) IsLoading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inflight > 0
}

// LastError returns the error from the most recent failed operation, if any.
func (c *ResourceCache[T, P]) LastError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// UsingFallbackData reports whether the collection still holds the seed
// dataset. Once cleared it never reverts for the lifetime of the cache.
func (c *ResourceCache[T, P]) UsingFallbackData() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.usingFallback
}

func (c *ResourceCache[T, P]) beginOp() {
	c.mu.Lock()
	c.inflight++
	c.mu.Unlock()
}

func (c *ResourceCache[T, P]) endOp(err error) {
	c.mu.Lock()
	c.inflight--
	if err != nil {
		c.lastErr = err
	}
	c.mu.Unlock()
}

// Refresh replaces the collection with the store's current rows for the
// session agent. A failed fetch keeps the previous rows on display and only
// records the error. For seed-backed resources an empty result set (always
// the case without a session) leaves the current rows in place.
func (c *ResourceCache[T, P]) Refresh(ctx context.Context) error {
	var err error
	c.beginOp()
	defer func() { c.endOp(err) }()

	userId, authenticated := utils.GetUserIdFromContext(ctx)

	if c.cfg.Fallback == nil {
		if !authenticated {
			c.mu.Lock()
			c.items = []T{}
			c.mu.Unlock()
			return nil
		}
		var rows []T
		if err = c.gw.Select(ctx, c.cfg.Table, map[string]any{"user_id": userId}, c.cfg.Orders, &rows); err != nil {
			return err
		}
		if c.cfg.Join != nil {
			if err = c.cfg.Join(ctx, c.gw, rows); err != nil {
				return err
			}
		}
		c.mu.Lock()
		c.items = rows
		c.mu.Unlock()
		return nil
	}

	filters := map[string]any{}
	if authenticated {
		filters["user_id"] = userId
	}
	var rows []T
	if err = c.gw.Select(ctx, c.cfg.Table, filters, c.cfg.Orders, &rows); err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	if c.cfg.Join != nil {
		if err = c.cfg.Join(ctx, c.gw, rows); err != nil {
			return err
		}
	}
	c.mu.Lock()
	c.items = rows
	c.usingFallback = false
	c.mu.Unlock()
	return nil
}

// Create persists row for the session agent and inserts the returned row —
// identifier assigned by the store — into the collection. Requires a
// session; without one the gateway is never contacted.
func (c *ResourceCache[T, P]) Create(ctx context.Context, row T) (*T, error) {
	userId, authenticated := utils.GetUserIdFromContext(ctx)
	if !authenticated {
		return nil, utils.ErrorNotAuthenticated
	}

	var err error
	c.beginOp()
	defer func() { c.endOp(err) }()

	if o, ok := any(&row).(ownable); ok {
		o.SetOwner(userId)
	}
	if err = c.gw.Insert(ctx, c.cfg.Table, &row); err != nil {
		return nil, err
	}
	if c.cfg.Join != nil {
		one := []T{row}
		if err = c.cfg.Join(ctx, c.gw, one); err != nil {
			return nil, err
		}
		row = one[0]
	}

	c.mu.Lock()
	c.insertLocked(row)
	c.usingFallback = false
	c.mu.Unlock()
	return &row, nil
}

// insertLocked places row into the collection, dropping any stale entry
// with the same identifier first so the id-uniqueness invariant holds.
func (c *ResourceCache[T, P]) insertLocked(row T) {
	c.removeLocked(row.EntityID())
	if c.cfg.Less == nil {
		c.items = append([]T{row}, c.items...)
		return
	}
	at := len(c.items)
	for i := range c.items {
		if c.cfg.Less(row, c.items[i]) {
			at = i
			break
		}
	}
	c.items = append(c.items[:at], append([]T{row}, c.items[at:]...)...)
}

func (c *ResourceCache[T, P]) removeLocked(id string) bool {
	for i := range c.items {
		if c.items[i].EntityID() == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return true
		}
	}
	return false
}

func (c *ResourceCache[T, P]) findLocked(id string) (T, bool) {
	for i := range c.items {
		if c.items[i].EntityID() == id {
			return c.items[i], true
		}
	}
	var zero T
	return zero, false
}

func (c *ResourceCache[T, P]) lockId(id string) func() {
	if c.idLocks == nil {
		return func() {}
	}
	c.idMu.Lock()
	l, ok := c.idLocks[id]
	if !ok {
		l = &sync.Mutex{}
		c.idLocks[id] = l
	}
	c.idMu.Unlock()
	l.Lock()
	return l.Unlock
}

// Update applies patch to the row with the given identifier. When the row
// is cached, patch.Validate guards the change (status transition table)
// before the gateway is contacted; an uncached identifier is forwarded and
// the store decides. On success the patch is merged into the cached row in
// place; on failure the collection is untouched.
func (c *ResourceCache[T, P]) Update(ctx context.Context, id string, patch P) (*T, error) {
	unlock := c.lockId(id)
	defer unlock()

	c.mu.Lock()
	prev, cached := c.findLocked(id)
	c.mu.Unlock()
	if cached {
		if guardErr := patch.Validate(prev); guardErr != nil {
			return nil, guardErr
		}
	}

	var err error
	c.beginOp()
	defer func() { c.endOp(err) }()

	if err = c.gw.Update(ctx, c.cfg.Table, id, patch.Columns(), new(T)); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].EntityID() == id {
			patch.Apply(&c.items[i])
			updated := c.items[i]
			return &updated, nil
		}
	}
	// Not cached; the store accepted the change and there is nothing to
	// patch locally.
	return nil, nil
}

// Delete removes the row with the given identifier. While the collection
// still holds seed data the removal is purely local — seed rows do not
// exist in the store, so no gateway call is made.
func (c *ResourceCache[T, P]) Delete(ctx context.Context, id string) error {
	unlock := c.lockId(id)
	defer unlock()

	c.mu.Lock()
	fallbackOnly := c.usingFallback
	c.mu.Unlock()
	if fallbackOnly {
		c.mu.Lock()
		c.removeLocked(id)
		c.mu.Unlock()
		return nil
	}

	var err error
	c.beginOp()
	defer func() { c.endOp(err) }()

	if err = c.gw.Delete(ctx, c.cfg.Table, id, new(T)); err != nil {
		return err
	}

	c.mu.Lock()
	c.removeLocked(id)
	c.mu.Unlock()
	return nil
}
