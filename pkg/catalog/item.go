// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"iter"
)

type (
	// Item is a displayable object wrapping a domain value.
	//
	// HasContent reports whether ContentProvider succeeds; a leaf returns a
	// *NoContentError. Operations is non-empty for every well-formed item
	// and its first element is the default action.
	Item interface {
		Describable
		Value() any
		HasContent() bool
		ContentProvider() (Provider, error)
		Operations() []Operation
	}

	// Leaf is an embeddable base for items without content.
	Leaf struct {
		Described
		value any
	}

	// Placeholder is shown in place of an empty result list.
	Placeholder struct {
		Leaf
	}
)

// NewLeaf returns a Leaf wrapping value.
func NewLeaf(value any, name, description string, owner any) Leaf {
	return Leaf{Described: NewDescribed(name, description, owner), value: value}
}

// Value returns the wrapped domain value.
func (l Leaf) Value() any { return l.value }

// HasContent is always false for a leaf.
func (Leaf) HasContent() bool { return false }

// ContentProvider always fails for a leaf.
func (l Leaf) ContentProvider() (Provider, error) {
	return nil, &NoContentError{Item: l.Name()}
}

// NewPlaceholder returns the "No matches" placeholder item.
func NewPlaceholder() *Placeholder {
	return &Placeholder{Leaf: NewLeaf(nil, "No matches", "", (*Placeholder)(nil))}
}

// IconName implements IconNamer.
func (*Placeholder) IconName() string { return "dialog-warning" }

// Operations implements Item.
func (*Placeholder) Operations() []Operation { return []Operation{NoAction{}} }

// Collect drains seq, returning the items and the per-item errors separately.
func Collect(seq iter.Seq2[Item, error]) ([]Item, []error) {
	var (
		items []Item
		errs  []error
	)
	for item, err := range seq {
		if err != nil {
			errs = append(errs, err)
			continue
		}
		items = append(items, item)
	}
	return items, errs
}

// Items returns a sequence yielding each of items in order.
func Items(items ...Item) iter.Seq2[Item, error] {
	return func(yield func(Item, error) bool) {
		for _, item := range items {
			if !yield(item, nil) {
				return
			}
		}
	}
}
