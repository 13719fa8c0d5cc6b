// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"context"
	"image"
	"iter"
	"slices"
)

const catalogIcon = "folder-saved-search"

type (
	// Union concatenates the items of its children in order. It is dynamic:
	// the union itself is never cached, while each static child is served
	// from the cache carried by the enumeration context.
	Union struct {
		Source
		children []Provider
	}

	// Catalogs lists its children as browsable items.
	Catalogs struct {
		Source
		children []Provider
	}

	// ProviderItem presents a provider as an item whose content is the provider.
	ProviderItem struct {
		provider Provider
	}
)

// NewUnion returns the union of children, in the given order.
func NewUnion(children ...Provider) *Union {
	return &Union{
		Source:   NewSource(SequenceID("union", nil, ids(children)...), "Catalog", "Root catalog", (*Union)(nil)),
		children: slices.Clone(children),
	}
}

// IsDynamic implements Provider.
func (*Union) IsDynamic() bool { return true }

// IconName implements IconNamer.
func (*Union) IconName() string { return catalogIcon }

// Children returns the union's children in order.
func (u *Union) Children() []Provider { return slices.Clone(u.children) }

// Items streams each child's items as soon as that child is available. A
// child that cannot be enumerated yields one *ChildError and the union
// moves on; enumeration stops once ctx is done.
func (u *Union) Items(ctx context.Context) iter.Seq2[Item, error] {
	return func(yield func(Item, error) bool) {
		cache := CacheFrom(ctx)
		for _, child := range u.children {
			seq, err := cache.Enumerate(ctx, child)
			if err != nil {
				if !yield(nil, &ChildError{Provider: child.Name(), Err: err}) || ctx.Err() != nil {
					return
				}
				continue
			}
			for item, err := range seq {
				if !yield(item, err) {
					return
				}
			}
		}
	}
}

// NewCatalogs returns a catalog listing children. A blank name defaults to
// "Catalog of Catalogs".
func NewCatalogs(name string, children ...Provider) *Catalogs {
	if name == "" {
		name = "Catalog of Catalogs"
	}
	return &Catalogs{
		Source:   NewSource(SequenceID("catalogs", map[string]string{"name": name}, ids(children)...), name, "An index of all available sources", (*Catalogs)(nil)),
		children: slices.Clone(children),
	}
}

// IconName implements IconNamer.
func (*Catalogs) IconName() string { return catalogIcon }

// Children returns the listed providers in order.
func (c *Catalogs) Children() []Provider { return slices.Clone(c.children) }

// Items yields one ProviderItem per child.
func (c *Catalogs) Items(context.Context) iter.Seq2[Item, error] {
	return func(yield func(Item, error) bool) {
		for _, child := range c.children {
			if !yield(NewProviderItem(child), nil) {
				return
			}
		}
	}
}

// NewProviderItem wraps p as an item.
func NewProviderItem(p Provider) *ProviderItem { return &ProviderItem{provider: p} }

// Name implements Describable.
func (i *ProviderItem) Name() string { return i.provider.Name() }

// Description implements Describable.
func (i *ProviderItem) Description() string { return i.provider.Description() }

// IconImage delegates to the wrapped provider.
func (i *ProviderItem) IconImage() image.Image {
	if im, ok := i.provider.(IconImager); ok {
		return im.IconImage()
	}
	return nil
}

// IconName delegates to the wrapped provider.
func (i *ProviderItem) IconName() string {
	if n, ok := i.provider.(IconNamer); ok {
		return n.IconName()
	}
	return ""
}

// Value returns the wrapped provider.
func (i *ProviderItem) Value() any { return i.provider }

// HasContent implements Item.
func (*ProviderItem) HasContent() bool { return true }

// ContentProvider returns the wrapped provider.
func (i *ProviderItem) ContentProvider() (Provider, error) { return i.provider, nil }

// Operations offers Browse, and Rescan for static providers.
func (i *ProviderItem) Operations() []Operation {
	if i.provider.IsDynamic() {
		return []Operation{Browse{}}
	}
	return []Operation{Browse{}, Rescan{}}
}

func ids(providers []Provider) []string {
	out := make([]string, len(providers))
	for i, p := range providers {
		out[i] = p.CanonicalID()
	}
	return out
}
