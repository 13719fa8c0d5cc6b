// SPDX-License-Identifier: MPL-2.0

package bookmarks

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/trove-launcher/trove/pkg/sources"
)

type (
	// XBELStore reads a recently-used.xbel file.
	XBELStore struct {
		path string
		now  func() time.Time
	}

	xbelDocument struct {
		Bookmarks []xbelBookmark `xml:"bookmark"`
	}

	xbelBookmark struct {
		Href     string `xml:"href,attr"`
		Added    string `xml:"added,attr"`
		Modified string `xml:"modified,attr"`
		Visited  string `xml:"visited,attr"`
		Title    string `xml:"title"`
	}
)

var _ sources.BookmarkStore = (*XBELStore)(nil)

// NewXBELStore returns a store reading path. Ages are measured against
// now; nil means time.Now.
func NewXBELStore(path string, now func() time.Time) *XBELStore {
	if now == nil {
		now = time.Now
	}
	return &XBELStore{path: path, now: now}
}

// DefaultXBELFile returns $XDG_DATA_HOME/recently-used.xbel.
func DefaultXBELFile() string {
	if data := os.Getenv("XDG_DATA_HOME"); data != "" {
		return filepath.Join(data, "recently-used.xbel")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "share", "recently-used.xbel")
}

// Location implements sources.BookmarkStore.
func (s *XBELStore) Location() string { return s.path }

// Bookmarks returns the recorded documents, most recently used first. A
// missing file has no bookmarks.
func (s *XBELStore) Bookmarks(ctx context.Context) ([]sources.Bookmark, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read recent documents %s: %w", s.path, err)
	}
	var doc xbelDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse recent documents %s: %w", s.path, err)
	}

	type dated struct {
		mark sources.Bookmark
		used time.Time
	}
	now := s.now()
	entries := make([]dated, 0, len(doc.Bookmarks))
	for _, b := range doc.Bookmarks {
		if b.Href == "" {
			continue
		}
		used := latest(b.Added, b.Modified, b.Visited)
		mark := sources.Bookmark{URI: b.Href, Title: b.Title}
		if !used.IsZero() {
			mark.Age = now.Sub(used)
		}
		entries = append(entries, dated{mark: mark, used: used})
	}
	slices.SortStableFunc(entries, func(a, b dated) int { return b.used.Compare(a.used) })

	out := make([]sources.Bookmark, len(entries))
	for i, e := range entries {
		out[i] = e.mark
	}
	return out, nil
}

// latest returns the most recent of the RFC 3339 timestamps, ignoring
// malformed ones.
func latest(stamps ...string) time.Time {
	var t time.Time
	for _, s := range stamps {
		parsed, err := time.Parse(time.RFC3339Nano, s)
		if err == nil && parsed.After(t) {
			t = parsed
		}
	}
	return t
}
