// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"context"
	"iter"
	"sync"
	"sync/atomic"
)

type (
	testItem struct {
		Leaf
	}

	// testProvider counts enumerations and can hold them open on a gate.
	testProvider struct {
		Source
		entries []entry
		dynamic bool
		parent  Provider

		scans   atomic.Int32
		gate    chan struct{}
		started chan struct{}
		once    sync.Once
	}
)

func newTestItem(name string) *testItem {
	return &testItem{Leaf: NewLeaf(name, name, "", (*testItem)(nil))}
}

func (*testItem) Operations() []Operation { return []Operation{NoAction{}} }

func newTestProvider(id string, names ...string) *testProvider {
	p := &testProvider{Source: NewSource(id, id, "", (*testProvider)(nil))}
	for _, n := range names {
		p.entries = append(p.entries, entry{item: newTestItem(n)})
	}
	return p
}

// gated makes enumeration block until release is called.
func (p *testProvider) gated() *testProvider {
	p.gate = make(chan struct{})
	p.started = make(chan struct{})
	return p
}

func (p *testProvider) release() { close(p.gate) }

func (p *testProvider) IsDynamic() bool { return p.dynamic }

func (p *testProvider) HasParent() bool { return p.parent != nil }

func (p *testProvider) Parent() (Provider, error) {
	if p.parent == nil {
		return p.Source.Parent()
	}
	return p.parent, nil
}

func (p *testProvider) Items(ctx context.Context) iter.Seq2[Item, error] {
	return func(yield func(Item, error) bool) {
		p.scans.Add(1)
		if p.gate != nil {
			p.once.Do(func() { close(p.started) })
			<-p.gate
		}
		for _, e := range p.entries {
			if !yield(e.item, e.err) {
				return
			}
		}
	}
}

func names(items []Item) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Name()
	}
	return out
}

func mustCache(t interface{ Fatalf(string, ...any) }, opts CacheOptions) *Cache {
	c, err := NewCache(opts)
	if err != nil {
		t.Fatalf("NewCache() error = %v", err)
	}
	return c
}
