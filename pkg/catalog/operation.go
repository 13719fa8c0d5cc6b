// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"context"
	"fmt"
)

// Outcome kinds.
const (
	// OutcomeEffect means the operation performed a side effect and produced nothing.
	OutcomeEffect OutcomeKind = iota
	// OutcomeNavigate means the operation produced a provider to navigate into.
	OutcomeNavigate
)

type (
	// OutcomeKind tags an Outcome.
	OutcomeKind int

	// Outcome is the result of applying an Operation.
	Outcome struct {
		kind     OutcomeKind
		provider Provider
	}

	// Operation is an action applicable to an Item.
	//
	// A factory operation produces a Provider (OutcomeNavigate); any other
	// operation performs a side effect (OutcomeEffect). Use Apply to run an
	// operation with that contract enforced.
	Operation interface {
		Describable
		IsFactory() bool
		Apply(ctx context.Context, item Item) (Outcome, error)
	}

	// Action is an embeddable base for side-effect operations.
	Action struct {
		Described
	}

	// NoAction does nothing. It is the only operation of a Placeholder.
	NoAction struct{}

	// Browse navigates into an item's content provider.
	Browse struct{}

	// Rescan forces a refresh of the static provider an item wraps.
	Rescan struct{}
)

// String returns a readable outcome kind.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeEffect:
		return "effect"
	case OutcomeNavigate:
		return "navigate"
	default:
		return fmt.Sprintf("OutcomeKind(%d)", int(k))
	}
}

// Effect returns the outcome of a side-effect operation.
func Effect() Outcome { return Outcome{kind: OutcomeEffect} }

// Navigate returns the outcome of a factory operation producing p.
func Navigate(p Provider) Outcome { return Outcome{kind: OutcomeNavigate, provider: p} }

// Kind returns the outcome kind.
func (o Outcome) Kind() OutcomeKind { return o.kind }

// Provider returns the produced provider for OutcomeNavigate outcomes.
func (o Outcome) Provider() (Provider, bool) {
	if o.kind != OutcomeNavigate || o.provider == nil {
		return nil, false
	}
	return o.provider, true
}

// Apply runs op on item and checks the outcome against op.IsFactory.
// A factory that produces no provider, or a non-factory that produces one,
// fails with a *ContractError.
func Apply(ctx context.Context, op Operation, item Item) (Outcome, error) {
	if err := ctx.Err(); err != nil {
		return Outcome{}, err
	}
	out, err := op.Apply(ctx, item)
	if err != nil {
		return Outcome{}, err
	}
	_, navigates := out.Provider()
	switch {
	case op.IsFactory() && !navigates:
		return Outcome{}, &ContractError{Operation: op.Name(), Reason: "factory produced no provider"}
	case !op.IsFactory() && out.kind != OutcomeEffect:
		return Outcome{}, &ContractError{Operation: op.Name(), Reason: "side-effect operation produced a provider"}
	}
	return out, nil
}

// NewAction returns an Action base.
func NewAction(name, description string, owner any) Action {
	return Action{Described: NewDescribed(name, description, owner)}
}

// IsFactory is false for side-effect operations.
func (Action) IsFactory() bool { return false }

// IconName implements IconNamer.
func (Action) IconName() string { return "system-run" }

// Name implements Describable.
func (NoAction) Name() string { return "No action" }

// Description implements Describable.
func (NoAction) Description() string { return "" }

// IsFactory implements Operation.
func (NoAction) IsFactory() bool { return false }

// Apply implements Operation.
func (NoAction) Apply(context.Context, Item) (Outcome, error) { return Effect(), nil }

// Name implements Describable.
func (Browse) Name() string { return "Search content..." }

// Description implements Describable.
func (Browse) Description() string { return "Browse the contents of this item" }

// IconName implements IconNamer.
func (Browse) IconName() string { return "system-search" }

// IsFactory implements Operation.
func (Browse) IsFactory() bool { return true }

// Apply returns the item's content provider.
func (b Browse) Apply(_ context.Context, item Item) (Outcome, error) {
	if !item.HasContent() {
		return Outcome{}, &InvalidLeafError{Operation: b.Name(), Item: item.Name(), Reason: "item has no content"}
	}
	p, err := item.ContentProvider()
	if err != nil {
		return Outcome{}, err
	}
	return Navigate(p), nil
}

// Name implements Describable.
func (Rescan) Name() string { return "Rescan" }

// Description implements Describable.
func (Rescan) Description() string { return "Force reindex of this catalog" }

// IconName implements IconNamer.
func (Rescan) IconName() string { return "view-refresh" }

// IsFactory implements Operation.
func (Rescan) IsFactory() bool { return false }

// Apply refreshes the provider wrapped by item through the context cache.
// Dynamic providers hold no snapshot, so for them it does nothing.
func (r Rescan) Apply(ctx context.Context, item Item) (Outcome, error) {
	p, ok := item.Value().(Provider)
	if !ok || !item.HasContent() {
		return Outcome{}, &InvalidLeafError{Operation: r.Name(), Item: item.Name(), Reason: "item does not wrap a catalog"}
	}
	if _, err := CacheFrom(ctx).Rescan(ctx, p); err != nil {
		return Outcome{}, err
	}
	return Effect(), nil
}
