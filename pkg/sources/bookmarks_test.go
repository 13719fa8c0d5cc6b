// SPDX-License-Identifier: MPL-2.0

package sources

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/trove-launcher/trove/pkg/catalog"
)

func TestRecents(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	fresh := filepath.Join(dir, "fresh.txt")
	stale := filepath.Join(dir, "stale.txt")
	for _, p := range []string{fresh, stale} {
		if err := os.WriteFile(p, nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	day := 24 * time.Hour
	store := &fakeStore{location: "/recent.xbel", marks: []Bookmark{
		{URI: fileURI(fresh), Age: day},
		{URI: fileURI(stale), Age: 20 * day},
		{URI: fileURI(filepath.Join(dir, "gone.txt")), Age: day},
		{URI: "https://example.org/", Title: "Example", Age: 2 * day},
	}}

	r := NewRecents(&Env{}, store, 0)
	items, errs := catalog.Collect(r.Items(context.Background()))
	if len(errs) != 0 {
		t.Fatalf("errs = %v", errs)
	}
	if len(items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(items))
	}
	if f, ok := items[0].(*FileItem); !ok || f.Path() != fresh {
		t.Errorf("items[0] = %#v, want file %s", items[0], fresh)
	}
	if _, ok := items[1].(*URLItem); !ok || items[1].Name() != "Example" {
		t.Errorf("items[1] = %#v, want URL item Example", items[1])
	}
}

func TestRecents_Identity(t *testing.T) {
	t.Parallel()

	store := &fakeStore{location: "/recent.xbel"}
	if !catalog.Equal(NewRecents(nil, store, 0), NewRecents(nil, store, DefaultRecentDays)) {
		t.Error("default age limit changed identity")
	}
	if catalog.Equal(NewRecents(nil, store, 7), NewRecents(nil, store, 14)) {
		t.Error("age limit does not affect identity")
	}
}

func TestPlaces(t *testing.T) {
	t.Parallel()

	store := &fakeStore{location: "/bookmarks", marks: []Bookmark{
		{URI: "file:///home/u/My%20Projects"},
		{URI: "file:///srv/media", Title: "Media"},
		{URI: "sftp://host/share"},
		{URI: "file://%zz"},
	}}
	items, errs := catalog.Collect(NewPlaces(&Env{}, store).Items(context.Background()))

	if len(errs) != 1 || !errors.Is(errs[0], catalog.ErrInvalidData) {
		t.Errorf("errs = %v, want one ErrInvalidData", errs)
	}
	want := []string{"My Projects", "Media", "share"}
	if len(items) != len(want) {
		t.Fatalf("len(items) = %d, want %d", len(items), len(want))
	}
	for i, w := range want {
		if items[i].Name() != w {
			t.Errorf("items[%d].Name() = %q, want %q", i, items[i].Name(), w)
		}
	}
	if f, ok := items[0].(*FileItem); !ok || f.Path() != "/home/u/My Projects" {
		t.Errorf("items[0] = %#v, want file item", items[0])
	}
	if _, ok := items[2].(*URLItem); !ok {
		t.Errorf("items[2] = %T, want *URLItem", items[2])
	}
}

func TestPlaces_StoreFailure(t *testing.T) {
	t.Parallel()

	store := &fakeStore{location: "/bookmarks", err: errors.New("unreadable")}
	items, errs := catalog.Collect(NewPlaces(&Env{}, store).Items(context.Background()))
	if len(items) != 0 || len(errs) != 1 {
		t.Errorf("got %d items, %d errors, want 0 and 1", len(items), len(errs))
	}
}
