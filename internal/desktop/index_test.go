// SPDX-License-Identifier: MPL-2.0

package desktop

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"testing"

	"github.com/trove-launcher/trove/internal/fslist"
	"github.com/trove-launcher/trove/internal/testutil"
)

func TestIndex_AppsFor(t *testing.T) {
	t.Parallel()

	user := t.TempDir()
	system := t.TempDir()
	write := func(dir, name, content string) {
		t.Helper()
		apps := filepath.Join(dir, "applications")
		if err := os.MkdirAll(apps, 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(apps, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write(user, "editor.desktop", "[Desktop Entry]\nType=Application\nName=My Editor\nExec=ed\nMimeType=text/plain;\n")
	write(system, "editor.desktop", "[Desktop Entry]\nType=Application\nName=Editor\nExec=ed\nMimeType=text/plain;\n")
	write(system, "viewer.desktop", "[Desktop Entry]\nType=Application\nName=Viewer\nExec=view\nMimeType=text/plain;image/png;\n")
	write(system, "hidden.desktop", "[Desktop Entry]\nType=Application\nName=Hidden\nNoDisplay=true\nMimeType=text/plain;\n")

	lister, err := fslist.New(fslist.Options{})
	if err != nil {
		t.Fatal(err)
	}
	idx := NewIndex([]string{user, filepath.Join(t.TempDir(), "none"), system}, lister, NewResolver(""), nil)

	var got []string
	for _, e := range idx.AppsFor(context.Background(), "text/plain") {
		got = append(got, e.Name)
	}
	if want := []string{"My Editor", "Viewer"}; !slices.Equal(got, want) {
		t.Errorf("AppsFor(text/plain) = %v, want %v", got, want)
	}
	if apps := idx.AppsFor(context.Background(), "image/png"); len(apps) != 1 || apps[0].Name != "Viewer" {
		t.Errorf("AppsFor(image/png) = %v", apps)
	}
	if apps := idx.AppsFor(context.Background(), "video/mp4"); len(apps) != 0 {
		t.Errorf("AppsFor(video/mp4) = %v, want none", apps)
	}
}

func TestIndex_LoadIsOnce(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	apps := filepath.Join(dir, "applications")
	if err := os.MkdirAll(apps, 0o755); err != nil {
		t.Fatal(err)
	}
	entry := "[Desktop Entry]\nType=Application\nName=Viewer\nExec=view\nMimeType=image/png;\n"
	if err := os.WriteFile(filepath.Join(apps, "viewer.desktop"), []byte(entry), 0o644); err != nil {
		t.Fatal(err)
	}
	lister, err := fslist.New(fslist.Options{})
	if err != nil {
		t.Fatal(err)
	}
	idx := NewIndex([]string{dir}, lister, NewResolver(""), nil)

	if idx.Loaded() {
		t.Fatal("Loaded() before Load")
	}
	idx.Load(t.Context())
	if !idx.Loaded() {
		t.Fatal("Loaded() = false after Load")
	}
	// Entries added after the build are not seen: the index is built once.
	if err := os.WriteFile(filepath.Join(apps, "other.desktop"), []byte(entry), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := idx.AppsFor(t.Context(), "image/png"); len(got) != 1 {
		t.Errorf("AppsFor(image/png) = %d entries, want 1", len(got))
	}
}

func TestIndex_CancelledCallerGetsNothing(t *testing.T) {
	t.Parallel()

	lister, err := fslist.New(fslist.Options{})
	if err != nil {
		t.Fatal(err)
	}
	idx := NewIndex([]string{t.TempDir()}, lister, NewResolver(""), nil)
	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	// Either the build won the race or the caller gave up; neither panics
	// and a later caller sees the complete index.
	_ = idx.AppsFor(ctx, "text/plain")
	idx.Load(t.Context())
	if !idx.Loaded() {
		t.Error("Loaded() = false after an uncancelled Load")
	}
}

func TestDataDirs(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/data/home")
	t.Setenv("XDG_DATA_DIRS", "/usr/share:/data/home::/opt/share")

	want := []string{"/data/home", "/usr/share", "/opt/share"}
	if got := DataDirs(); !slices.Equal(got, want) {
		t.Errorf("DataDirs() = %v, want %v", got, want)
	}
}

func TestDataDirs_Defaults(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("XDG defaults only apply on Unix-like systems")
	}
	home := t.TempDir()
	t.Cleanup(testutil.SetHomeDir(t, home))
	t.Cleanup(testutil.MustUnsetenv(t, "XDG_DATA_HOME"))
	t.Cleanup(testutil.MustUnsetenv(t, "XDG_DATA_DIRS"))

	want := []string{filepath.Join(home, ".local", "share"), "/usr/local/share", "/usr/share"}
	if got := DataDirs(); !slices.Equal(got, want) {
		t.Errorf("DataDirs() = %v, want %v", got, want)
	}
}
