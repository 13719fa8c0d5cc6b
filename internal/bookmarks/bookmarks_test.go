// SPDX-License-Identifier: MPL-2.0

package bookmarks

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/trove-launcher/trove/internal/testutil"
	"github.com/trove-launcher/trove/pkg/sources"
)

const recentlyUsed = `<?xml version="1.0" encoding="UTF-8"?>
<xbel version="1.0"
      xmlns:bookmark="http://www.freedesktop.org/standards/desktop-bookmarks"
      xmlns:mime="http://www.freedesktop.org/standards/shared-mime-info">
  <bookmark href="file:///home/u/old.txt" added="2019-12-01T10:00:00Z" modified="2019-12-01T10:00:00Z" visited="2019-12-01T10:00:00Z">
  </bookmark>
  <bookmark href="file:///home/u/report.odt" added="2019-12-20T10:00:00Z" modified="2019-12-30T12:00:00.123456Z" visited="2019-12-21T10:00:00Z">
    <title>Report</title>
  </bookmark>
  <bookmark href="https://example.org/" added="bogus" modified="2019-12-31T00:00:00Z" visited="bogus">
  </bookmark>
</xbel>
`

func TestXBELStore(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "recently-used.xbel")
	if err := os.WriteFile(path, []byte(recentlyUsed), 0o644); err != nil {
		t.Fatal(err)
	}
	clock := testutil.NewFakeClock(time.Time{})
	store := NewXBELStore(path, clock.Now)

	marks, err := store.Bookmarks(context.Background())
	if err != nil {
		t.Fatalf("Bookmarks() error = %v", err)
	}
	var uris []string
	for _, m := range marks {
		uris = append(uris, m.URI)
	}
	want := []string{"https://example.org/", "file:///home/u/report.odt", "file:///home/u/old.txt"}
	if !slices.Equal(uris, want) {
		t.Fatalf("URIs = %v, want %v", uris, want)
	}
	if marks[0].Age != 24*time.Hour {
		t.Errorf("Age = %v, want 24h", marks[0].Age)
	}
	if marks[1].Title != "Report" {
		t.Errorf("Title = %q, want Report", marks[1].Title)
	}
	if marks[2].Age <= 30*24*time.Hour {
		t.Errorf("old Age = %v, want over 30 days", marks[2].Age)
	}

	clock.Advance(time.Hour)
	marks, _ = store.Bookmarks(context.Background())
	if marks[0].Age != 25*time.Hour {
		t.Errorf("Age after Advance = %v, want 25h", marks[0].Age)
	}

	clock.Set(time.Date(2020, time.January, 2, 0, 0, 0, 0, time.UTC))
	marks, _ = store.Bookmarks(context.Background())
	if marks[0].Age != 48*time.Hour {
		t.Errorf("Age after Set = %v, want 48h", marks[0].Age)
	}
}

func TestXBELStore_MissingAndMalformed(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	marks, err := NewXBELStore(filepath.Join(dir, "none.xbel"), nil).Bookmarks(context.Background())
	if err != nil || len(marks) != 0 {
		t.Errorf("missing file: Bookmarks() = %v, %v, want empty, nil", marks, err)
	}

	bad := filepath.Join(dir, "bad.xbel")
	if err := os.WriteFile(bad, []byte("<xbel><bookmark"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewXBELStore(bad, nil).Bookmarks(context.Background()); err == nil {
		t.Error("malformed file: Bookmarks() error = nil")
	}
}

func TestGTKStore(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	first := filepath.Join(dir, "bookmarks")
	content := strings.Join([]string{
		"file:///home/u/Projects",
		"file:///srv/media Media Library",
		"",
		"sftp://host/share Remote",
	}, "\n")
	if err := os.WriteFile(first, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	store := NewGTKStore(first, filepath.Join(dir, "missing"))

	marks, err := store.Bookmarks(context.Background())
	if err != nil {
		t.Fatalf("Bookmarks() error = %v", err)
	}
	want := []sources.Bookmark{
		{URI: "file:///home/u/Projects"},
		{URI: "file:///srv/media", Title: "Media Library"},
		{URI: "sftp://host/share", Title: "Remote"},
	}
	if !slices.Equal(marks, want) {
		t.Errorf("Bookmarks() = %+v, want %+v", marks, want)
	}
	if !strings.Contains(store.Location(), first) {
		t.Errorf("Location() = %q", store.Location())
	}
}

func TestDefaultLocations(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	t.Setenv("XDG_DATA_HOME", "/data")
	t.Cleanup(testutil.SetHomeDir(t, "/home/u"))

	if got := DefaultXBELFile(); got != "/data/recently-used.xbel" {
		t.Errorf("DefaultXBELFile() = %q", got)
	}
	want := []string{"/cfg/gtk-3.0/bookmarks", "/home/u/.gtk-bookmarks"}
	if got := DefaultGTKFiles(); !slices.Equal(got, want) {
		t.Errorf("DefaultGTKFiles() = %v, want %v", got, want)
	}
}
