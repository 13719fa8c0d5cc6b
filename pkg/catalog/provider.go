// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"context"
	"iter"
	"maps"
	"slices"
	"strconv"
	"strings"
)

type (
	// Provider is a source of Items.
	//
	// CanonicalID is a pure function of the provider's kind and
	// configuration; providers with equal ids are interchangeable. A dynamic
	// provider is enumerated on every request and never cached. Items is
	// lazy: nothing is read until the returned sequence is iterated. An item
	// that cannot be built is yielded as a non-nil error and enumeration
	// continues with the next one.
	Provider interface {
		Describable
		CanonicalID() string
		IsDynamic() bool
		Items(ctx context.Context) iter.Seq2[Item, error]
		HasParent() bool
		Parent() (Provider, error)
	}

	// Source is an embeddable base for static providers without a parent.
	Source struct {
		Described
		id string
	}

	// ProviderSet is an insertion-ordered set of providers keyed by canonical id.
	ProviderSet struct {
		order []Provider
		index map[string]int
	}
)

// NewSource returns a Source with the given canonical id.
func NewSource(id, name, description string, owner any) Source {
	return Source{Described: NewDescribed(name, description, owner), id: id}
}

// CanonicalID implements Provider.
func (s Source) CanonicalID() string { return s.id }

// IsDynamic implements Provider.
func (Source) IsDynamic() bool { return false }

// HasParent implements Provider.
func (Source) HasParent() bool { return false }

// Parent implements Provider.
func (s Source) Parent() (Provider, error) {
	return nil, &NoParentError{Provider: s.Name()}
}

// Equal reports whether a and b denote the same logical provider.
func Equal(a, b Provider) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.CanonicalID() == b.CanonicalID()
}

// FormatID renders a canonical id from a provider kind, its parameters and
// an unordered collection of inputs. Inputs are sorted, so
// FormatID("files", p, "/b", "/a") == FormatID("files", p, "/a", "/b").
func FormatID(kind string, params map[string]string, inputs ...string) string {
	return formatID(kind, params, slices.Sorted(slices.Values(inputs)))
}

// SequenceID is FormatID for providers whose inputs are ordered.
func SequenceID(kind string, params map[string]string, parts ...string) string {
	return formatID(kind, params, parts)
}

func formatID(kind string, params map[string]string, inputs []string) string {
	var b strings.Builder
	b.WriteString(kind)
	if len(params) > 0 {
		b.WriteByte('(')
		for i, k := range slices.Sorted(maps.Keys(params)) {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(k)
			b.WriteByte('=')
			b.WriteString(strconv.Quote(params[k]))
		}
		b.WriteByte(')')
	}
	b.WriteByte('[')
	for i, in := range inputs {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.Quote(in))
	}
	b.WriteByte(']')
	return b.String()
}

// NewProviderSet returns a set holding providers, dropping duplicates.
func NewProviderSet(providers ...Provider) *ProviderSet {
	s := &ProviderSet{index: make(map[string]int, len(providers))}
	for _, p := range providers {
		s.Add(p)
	}
	return s
}

// Add inserts p unless a provider with the same canonical id is present.
// It reports whether p was added.
func (s *ProviderSet) Add(p Provider) bool {
	if s.index == nil {
		s.index = make(map[string]int)
	}
	id := p.CanonicalID()
	if _, ok := s.index[id]; ok {
		return false
	}
	s.index[id] = len(s.order)
	s.order = append(s.order, p)
	return true
}

// Contains reports whether a provider equal to p is in the set.
func (s *ProviderSet) Contains(p Provider) bool {
	_, ok := s.index[p.CanonicalID()]
	return ok
}

// Lookup returns the provider with the given canonical id.
func (s *ProviderSet) Lookup(id string) (Provider, bool) {
	i, ok := s.index[id]
	if !ok {
		return nil, false
	}
	return s.order[i], true
}

// Len returns the number of providers in the set.
func (s *ProviderSet) Len() int { return len(s.order) }

// Providers returns the providers in insertion order.
func (s *ProviderSet) Providers() []Provider { return slices.Clone(s.order) }
