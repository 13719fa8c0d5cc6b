// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"context"
	"iter"
	"slices"
)

// Navigator tracks the provider being browsed and the path that led to it.
// It is not safe for concurrent use.
type Navigator struct {
	cache *Cache
	stack []Provider
}

// NewNavigator returns a Navigator positioned at root.
func NewNavigator(cache *Cache, root Provider) *Navigator {
	return &Navigator{cache: cache, stack: []Provider{root}}
}

// Current returns the provider being browsed.
func (n *Navigator) Current() Provider { return n.stack[len(n.stack)-1] }

// Path returns the providers from root to Current.
func (n *Navigator) Path() []Provider { return slices.Clone(n.stack) }

// Depth returns the number of steps below root.
func (n *Navigator) Depth() int { return len(n.stack) - 1 }

// Items enumerates the current provider through the cache.
func (n *Navigator) Items(ctx context.Context) (iter.Seq2[Item, error], error) {
	return n.cache.Enumerate(ctx, n.Current())
}

// Activate applies op to item. When op produces a provider, the navigator
// descends into it.
func (n *Navigator) Activate(ctx context.Context, item Item, op Operation) (Outcome, error) {
	out, err := Apply(WithCache(ctx, n.cache), op, item)
	if err != nil {
		return Outcome{}, err
	}
	if p, ok := out.Provider(); ok {
		n.stack = append(n.stack, p)
	}
	return out, nil
}

// ActivateDefault applies the first operation of item.
func (n *Navigator) ActivateDefault(ctx context.Context, item Item) (Outcome, error) {
	ops := item.Operations()
	if len(ops) == 0 {
		return Outcome{}, &InvalidLeafError{Operation: "default", Item: item.Name(), Reason: "item has no operations"}
	}
	return n.Activate(ctx, item, ops[0])
}

// Back returns to the previous provider. It reports false at the root.
func (n *Navigator) Back() bool {
	if len(n.stack) == 1 {
		return false
	}
	n.stack = n.stack[:len(n.stack)-1]
	return true
}

// Up replaces the current provider with its parent.
func (n *Navigator) Up() error {
	cur := n.Current()
	if !cur.HasParent() {
		return &NoParentError{Provider: cur.Name()}
	}
	parent, err := cur.Parent()
	if err != nil {
		return err
	}
	n.stack[len(n.stack)-1] = parent
	return nil
}
