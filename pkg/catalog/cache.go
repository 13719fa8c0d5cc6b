// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"context"
	"fmt"
	"io"
	"iter"
	"sync"

	"github.com/charmbracelet/log"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"
)

// DefaultMaxEntries is the default number of snapshots a Cache retains.
const DefaultMaxEntries = 1024

// Cache states of a static provider.
const (
	// StateUncached means no snapshot exists and no scan is running.
	StateUncached CacheState = iota
	// StateRefreshing means a scan is running.
	StateRefreshing
	// StateCached means a snapshot is available and no scan is running.
	StateCached
)

type (
	// CacheState is the caching state of one canonical id.
	CacheState int

	// CacheOptions configures a Cache.
	CacheOptions struct {
		// MaxEntries bounds the number of retained snapshots. Evicted ids
		// return to StateUncached. Zero means DefaultMaxEntries.
		MaxEntries int
		// Logger receives scan progress. Nil discards it.
		Logger *log.Logger
	}

	// Cache holds snapshots of static providers keyed by canonical id.
	//
	// At most one scan per id runs at a time; concurrent requests for the
	// same id wait for that scan and share its snapshot. A caller whose
	// context is canceled stops waiting, but the scan continues for the
	// others and still publishes its snapshot. A nil *Cache caches nothing.
	Cache struct {
		group    singleflight.Group
		store    *lru.Cache[string, *snapshot]
		logger   *log.Logger
		mu       sync.Mutex
		inflight map[string]int
	}

	// snapshot is the immutable result of one scan.
	snapshot struct {
		entries []entry
	}

	entry struct {
		item Item
		err  error
	}

	cacheContextKey struct{}
)

// String returns a readable state name.
func (s CacheState) String() string {
	switch s {
	case StateUncached:
		return "uncached"
	case StateRefreshing:
		return "refreshing"
	case StateCached:
		return "cached"
	default:
		return fmt.Sprintf("CacheState(%d)", int(s))
	}
}

// NewCache returns an empty Cache.
func NewCache(opts CacheOptions) (*Cache, error) {
	size := opts.MaxEntries
	if size <= 0 {
		size = DefaultMaxEntries
	}
	store, err := lru.New[string, *snapshot](size)
	if err != nil {
		return nil, fmt.Errorf("create snapshot store: %w", err)
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Cache{store: store, logger: logger, inflight: make(map[string]int)}, nil
}

// WithCache returns a context carrying c. Composite providers enumerate
// their children through the cache found in their context.
func WithCache(ctx context.Context, c *Cache) context.Context {
	return context.WithValue(ctx, cacheContextKey{}, c)
}

// CacheFrom returns the cache carried by ctx, or nil.
func CacheFrom(ctx context.Context) *Cache {
	c, _ := ctx.Value(cacheContextKey{}).(*Cache)
	return c
}

// Enumerate returns the items of p. A static provider is scanned on first
// request and served from its snapshot afterwards; a dynamic provider is
// enumerated afresh. The returned error is non-nil only when ctx ends
// before a snapshot is available.
func (c *Cache) Enumerate(ctx context.Context, p Provider) (iter.Seq2[Item, error], error) {
	return c.enumerate(ctx, p, false)
}

// Refresh rescans a static provider, or joins a scan already in flight,
// and returns the resulting items. Dynamic providers behave as in Enumerate.
func (c *Cache) Refresh(ctx context.Context, p Provider) (iter.Seq2[Item, error], error) {
	return c.enumerate(ctx, p, true)
}

// Rescan refreshes a static provider and reports whether a rescan was
// performed. It is a no-op returning false for dynamic providers.
func (c *Cache) Rescan(ctx context.Context, p Provider) (bool, error) {
	if p.IsDynamic() || c == nil {
		return false, nil
	}
	if _, err := c.Refresh(ctx, p); err != nil {
		return false, err
	}
	return true, nil
}

// State returns the caching state of p. Dynamic providers are always uncached.
func (c *Cache) State(p Provider) CacheState {
	if c == nil || p.IsDynamic() {
		return StateUncached
	}
	id := p.CanonicalID()
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inflight[id] > 0 {
		return StateRefreshing
	}
	if c.store.Contains(id) {
		return StateCached
	}
	return StateUncached
}

// Forget drops the snapshot of p, returning it to StateUncached.
func (c *Cache) Forget(p Provider) {
	if c == nil {
		return
	}
	c.store.Remove(p.CanonicalID())
}

// Len returns the number of retained snapshots.
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	return c.store.Len()
}

func (c *Cache) enumerate(ctx context.Context, p Provider, force bool) (iter.Seq2[Item, error], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ctx = WithCache(ctx, c)
	if c == nil || p.IsDynamic() {
		return items(ctx, p), nil
	}

	id := p.CanonicalID()
	if !force {
		if snap, ok := c.store.Get(id); ok {
			return snap.all(), nil
		}
	}

	scanCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(id, func() (any, error) {
		if !force {
			// A scan may have published between the lookup and this flight.
			if snap, ok := c.store.Get(id); ok {
				return snap, nil
			}
		}
		return c.scan(scanCtx, id, p), nil
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*snapshot).all(), nil
	}
}

func (c *Cache) scan(ctx context.Context, id string, p Provider) *snapshot {
	c.mu.Lock()
	c.inflight[id]++
	c.mu.Unlock()

	logger := c.logger.With("catalog", p.Name())
	logger.Debug("loading", "id", id)

	snap := &snapshot{}
	failed := 0
	for item, err := range items(ctx, p) {
		if err != nil {
			failed++
			logger.Warn("skipping item", "err", err)
		}
		snap.entries = append(snap.entries, entry{item: item, err: err})
	}
	logger.Debug("loaded", "items", len(snap.entries)-failed, "errors", failed)

	c.mu.Lock()
	c.store.Add(id, snap)
	c.inflight[id]--
	if c.inflight[id] == 0 {
		delete(c.inflight, id)
	}
	c.mu.Unlock()
	return snap
}

func (s *snapshot) all() iter.Seq2[Item, error] {
	return func(yield func(Item, error) bool) {
		for _, e := range s.entries {
			if !yield(e.item, e.err) {
				return
			}
		}
	}
}

// items guards against providers returning a nil sequence.
func items(ctx context.Context, p Provider) iter.Seq2[Item, error] {
	seq := p.Items(ctx)
	if seq == nil {
		return Items()
	}
	return seq
}
