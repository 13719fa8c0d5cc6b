// SPDX-License-Identifier: MPL-2.0

package sources

import (
	"context"
	"iter"
	"net/url"
	"path"
	"strconv"
	"time"

	"github.com/trove-launcher/trove/pkg/catalog"
)

// DefaultRecentDays is the default age limit of recently used documents.
const DefaultRecentDays = 14

type (
	// Recents lists recently used documents that still exist.
	Recents struct {
		catalog.Source
		store  BookmarkStore
		maxAge time.Duration
		env    *Env
	}

	// Places lists bookmarked locations.
	Places struct {
		catalog.Source
		store BookmarkStore
		env   *Env
	}
)

// NewRecents returns a provider over store, keeping documents used within
// the last maxDays days. A non-positive maxDays means DefaultRecentDays.
func NewRecents(env *Env, store BookmarkStore, maxDays int) *Recents {
	if maxDays <= 0 {
		maxDays = DefaultRecentDays
	}
	id := catalog.FormatID("recents", map[string]string{"max_days": strconv.Itoa(maxDays)}, store.Location())
	return &Recents{
		Source: catalog.NewSource(id, "Recent items", "Recently used documents", (*Recents)(nil)),
		store:  store,
		maxAge: time.Duration(maxDays) * 24 * time.Hour,
		env:    env,
	}
}

// IconName implements catalog.IconNamer.
func (*Recents) IconName() string { return "document-open-recent" }

// Items yields the recent documents, newest first as stored.
func (r *Recents) Items(ctx context.Context) iter.Seq2[catalog.Item, error] {
	return func(yield func(catalog.Item, error) bool) {
		marks, err := r.store.Bookmarks(ctx)
		if err != nil {
			yield(nil, &catalog.InvalidDataError{Value: r.store.Location(), Err: err})
			return
		}
		for _, m := range marks {
			if m.Age > r.maxAge {
				continue
			}
			item, ok, err := newURIItem(r.env, m.URI, m.Title, true)
			if !ok && err == nil {
				continue
			}
			if !yield(item, err) {
				return
			}
		}
	}
}

// NewPlaces returns a provider over the bookmarks in store.
func NewPlaces(env *Env, store BookmarkStore) *Places {
	return &Places{
		Source: catalog.NewSource(catalog.FormatID("places", nil, store.Location()), "Places", "Bookmarked locations", (*Places)(nil)),
		store:  store,
		env:    env,
	}
}

// IconName implements catalog.IconNamer.
func (*Places) IconName() string { return "user-bookmarks" }

// Items yields one item per bookmark. Untitled bookmarks are named after
// the last element of their unescaped URI.
func (p *Places) Items(ctx context.Context) iter.Seq2[catalog.Item, error] {
	return func(yield func(catalog.Item, error) bool) {
		marks, err := p.store.Bookmarks(ctx)
		if err != nil {
			yield(nil, &catalog.InvalidDataError{Value: p.store.Location(), Err: err})
			return
		}
		for _, m := range marks {
			title := m.Title
			if title == "" {
				title = bookmarkTitle(m.URI)
			}
			item, ok, err := newURIItem(p.env, m.URI, title, false)
			if !ok && err == nil {
				continue
			}
			if !yield(item, err) {
				return
			}
		}
	}
}

func bookmarkTitle(uri string) string {
	unescaped, err := url.PathUnescape(uri)
	if err != nil {
		unescaped = uri
	}
	if base := path.Base(unescaped); base != "." && base != "/" {
		return base
	}
	return unescaped
}
