// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"context"
	"errors"
	"slices"
	"sync"
	"testing"
)

func TestCache_EnumerateScansStaticProviderOnce(t *testing.T) {
	t.Parallel()

	c := mustCache(t, CacheOptions{})
	p := newTestProvider("static", "a", "b")
	ctx := context.Background()

	if got := c.State(p); got != StateUncached {
		t.Fatalf("State() before scan = %v, want %v", got, StateUncached)
	}

	var runs [][]string
	for range 3 {
		seq, err := c.Enumerate(ctx, p)
		if err != nil {
			t.Fatalf("Enumerate() error = %v", err)
		}
		items, _ := Collect(seq)
		runs = append(runs, names(items))
	}

	for i, run := range runs {
		if !slices.Equal(run, []string{"a", "b"}) {
			t.Errorf("run %d = %v, want [a b]", i, run)
		}
	}
	if got := p.scans.Load(); got != 1 {
		t.Errorf("scans = %d, want 1", got)
	}
	if got := c.State(p); got != StateCached {
		t.Errorf("State() = %v, want %v", got, StateCached)
	}
}

func TestCache_RefreshRescans(t *testing.T) {
	t.Parallel()

	c := mustCache(t, CacheOptions{})
	p := newTestProvider("static", "a")
	ctx := context.Background()

	if _, err := c.Enumerate(ctx, p); err != nil {
		t.Fatalf("Enumerate() error = %v", err)
	}
	p.entries = append(p.entries, entry{item: newTestItem("b")})

	seq, err := c.Refresh(ctx, p)
	if err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	items, _ := Collect(seq)
	if got := names(items); !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("Refresh() items = %v, want [a b]", got)
	}
	if got := p.scans.Load(); got != 2 {
		t.Errorf("scans = %d, want 2", got)
	}

	seq, _ = c.Enumerate(ctx, p)
	items, _ = Collect(seq)
	if got := names(items); !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("Enumerate() after refresh = %v, want [a b]", got)
	}
}

func TestCache_DynamicProviderIsNeverCached(t *testing.T) {
	t.Parallel()

	c := mustCache(t, CacheOptions{})
	p := newTestProvider("dynamic", "a")
	p.dynamic = true
	ctx := context.Background()

	for range 2 {
		seq, err := c.Enumerate(ctx, p)
		if err != nil {
			t.Fatalf("Enumerate() error = %v", err)
		}
		Collect(seq)
	}

	if got := p.scans.Load(); got != 2 {
		t.Errorf("scans = %d, want 2", got)
	}
	if got := c.State(p); got != StateUncached {
		t.Errorf("State() = %v, want %v", got, StateUncached)
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}

	rescanned, err := c.Rescan(ctx, p)
	if err != nil || rescanned {
		t.Errorf("Rescan() = %v, %v, want false, nil", rescanned, err)
	}
}

func TestCache_ConcurrentRequestsShareOneScan(t *testing.T) {
	t.Parallel()

	c := mustCache(t, CacheOptions{})
	p := newTestProvider("shared", "a", "b", "c").gated()
	ctx := context.Background()

	const workers = 8
	results := make([][]string, workers)
	var wg sync.WaitGroup
	for i := range workers {
		wg.Go(func() {
			seq, err := c.Enumerate(ctx, p)
			if err != nil {
				t.Errorf("Enumerate() error = %v", err)
				return
			}
			items, _ := Collect(seq)
			results[i] = names(items)
		})
	}

	<-p.started
	if got := c.State(p); got != StateRefreshing {
		t.Errorf("State() during scan = %v, want %v", got, StateRefreshing)
	}
	p.release()
	wg.Wait()

	if got := p.scans.Load(); got != 1 {
		t.Errorf("scans = %d, want 1", got)
	}
	for i, r := range results {
		if !slices.Equal(r, []string{"a", "b", "c"}) {
			t.Errorf("worker %d got %v", i, r)
		}
	}
}

func TestCache_CanceledWaiterLeavesScanRunning(t *testing.T) {
	t.Parallel()

	c := mustCache(t, CacheOptions{})
	p := newTestProvider("slow", "a").gated()

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() {
		_, err := c.Enumerate(ctx, p)
		errc <- err
	}()

	<-p.started
	cancel()
	if err := <-errc; !errors.Is(err, context.Canceled) {
		t.Fatalf("Enumerate() error = %v, want context.Canceled", err)
	}
	if got := c.State(p); got != StateRefreshing {
		t.Errorf("State() after cancel = %v, want %v", got, StateRefreshing)
	}

	p.release()
	seq, err := c.Enumerate(context.Background(), p)
	if err != nil {
		t.Fatalf("Enumerate() error = %v", err)
	}
	items, _ := Collect(seq)
	if got := names(items); !slices.Equal(got, []string{"a"}) {
		t.Errorf("items = %v, want [a]", got)
	}
	if got := p.scans.Load(); got != 1 {
		t.Errorf("scans = %d, want 1", got)
	}
}

func TestCache_EnumerateWithDoneContext(t *testing.T) {
	t.Parallel()

	c := mustCache(t, CacheOptions{})
	p := newTestProvider("static", "a")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := c.Enumerate(ctx, p); !errors.Is(err, context.Canceled) {
		t.Errorf("Enumerate() error = %v, want context.Canceled", err)
	}
	if got := p.scans.Load(); got != 0 {
		t.Errorf("scans = %d, want 0", got)
	}
}

func TestCache_SnapshotReplaysItemErrors(t *testing.T) {
	t.Parallel()

	bad := &InvalidDataError{Value: "broken"}
	p := newTestProvider("mixed")
	p.entries = []entry{
		{item: newTestItem("a")},
		{err: bad},
		{item: newTestItem("b")},
	}
	c := mustCache(t, CacheOptions{})

	for range 2 {
		seq, err := c.Enumerate(context.Background(), p)
		if err != nil {
			t.Fatalf("Enumerate() error = %v", err)
		}
		items, errs := Collect(seq)
		if got := names(items); !slices.Equal(got, []string{"a", "b"}) {
			t.Errorf("items = %v, want [a b]", got)
		}
		if len(errs) != 1 || !errors.Is(errs[0], ErrInvalidData) {
			t.Errorf("errs = %v, want one ErrInvalidData", errs)
		}
	}
}

func TestCache_EvictionReturnsToUncached(t *testing.T) {
	t.Parallel()

	c := mustCache(t, CacheOptions{MaxEntries: 1})
	a := newTestProvider("a", "x")
	b := newTestProvider("b", "y")
	ctx := context.Background()

	_, _ = c.Enumerate(ctx, a)
	_, _ = c.Enumerate(ctx, b)

	if got := c.State(a); got != StateUncached {
		t.Errorf("State(a) = %v, want %v", got, StateUncached)
	}
	if got := c.State(b); got != StateCached {
		t.Errorf("State(b) = %v, want %v", got, StateCached)
	}

	c.Forget(b)
	if got := c.State(b); got != StateUncached {
		t.Errorf("State(b) after Forget = %v, want %v", got, StateUncached)
	}
}

func TestCache_EqualProvidersShareSnapshot(t *testing.T) {
	t.Parallel()

	c := mustCache(t, CacheOptions{})
	first := newTestProvider("same", "a")
	second := newTestProvider("same", "a")
	ctx := context.Background()

	_, _ = c.Enumerate(ctx, first)
	_, _ = c.Enumerate(ctx, second)

	if got := first.scans.Load() + second.scans.Load(); got != 1 {
		t.Errorf("total scans = %d, want 1", got)
	}
}

func TestCache_NilCachePassesThrough(t *testing.T) {
	t.Parallel()

	var c *Cache
	p := newTestProvider("static", "a")
	ctx := context.Background()

	for range 2 {
		seq, err := c.Enumerate(ctx, p)
		if err != nil {
			t.Fatalf("Enumerate() error = %v", err)
		}
		Collect(seq)
	}
	if got := p.scans.Load(); got != 2 {
		t.Errorf("scans = %d, want 2", got)
	}
	if got := c.State(p); got != StateUncached {
		t.Errorf("State() = %v, want %v", got, StateUncached)
	}
}

func TestCacheState_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		state CacheState
		want  string
	}{
		{StateUncached, "uncached"},
		{StateRefreshing, "refreshing"},
		{StateCached, "cached"},
		{CacheState(9), "CacheState(9)"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
