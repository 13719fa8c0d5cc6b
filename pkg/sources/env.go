// SPDX-License-Identifier: MPL-2.0

package sources

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

var (
	// ErrNoLister is returned by providers whose environment has no FileLister.
	ErrNoLister = errors.New("no file lister configured")
	// ErrNoResolver is returned by providers whose environment has no
	// DesktopResolver.
	ErrNoResolver = errors.New("no desktop entry resolver configured")
)

type (
	// ExcludeFunc reports whether a directory entry name is skipped while listing.
	ExcludeFunc func(name string) bool

	// FileLister lists the entries below root, up to maxDepth levels of
	// subdirectories (0 lists root's children only). Excluded directories
	// are not descended into. Results are absolute paths in a stable order.
	FileLister interface {
		List(ctx context.Context, root string, maxDepth int, exclude ExcludeFunc) ([]string, error)
	}

	// DesktopResolver parses desktop entry files. It returns nil and no
	// error for files that are not usable desktop entries.
	DesktopResolver interface {
		Resolve(path string) (*DesktopEntry, error)
	}

	// AppIndex finds the installed applications that handle a mime type.
	AppIndex interface {
		AppsFor(ctx context.Context, mimeType string) []*DesktopEntry
	}

	// Launcher starts processes detached from the launcher.
	Launcher interface {
		// Launch runs a desktop entry, passing uris as its file arguments.
		Launch(ctx context.Context, entry *DesktopEntry, uris []string, terminal bool) error
		// Spawn runs argv in dir. With terminal set, argv runs inside a
		// terminal emulator; an empty argv opens just the terminal.
		Spawn(ctx context.Context, argv []string, dir string, terminal bool) error
		// OpenURI opens uri with the desktop's default handler.
		OpenURI(ctx context.Context, uri string) error
	}

	// BookmarkStore reads a list of bookmarked or recently used URIs.
	BookmarkStore interface {
		// Location identifies the store in canonical ids.
		Location() string
		Bookmarks(ctx context.Context) ([]Bookmark, error)
	}

	// Bookmark is one entry of a BookmarkStore.
	Bookmark struct {
		URI   string
		Title string
		// Age is the time since the bookmark was last used. Zero when unknown.
		Age time.Duration
	}

	// DesktopEntry is the launch-relevant part of a .desktop file.
	DesktopEntry struct {
		Path          string
		Type          string
		Name          string
		LocalizedName string
		Comment       string
		Icon          string
		Exec          string
		Terminal      bool
		Hidden        bool
		NoDisplay     bool
		MimeTypes     []string
	}

	// Env bundles the collaborators shared by all items and providers.
	// Providers that list files need Lister; Applications also needs
	// Desktop. A provider missing one yields an InvalidDataError wrapping
	// ErrNoLister or ErrNoResolver instead of items.
	Env struct {
		Lister   FileLister
		Desktop  DesktopResolver
		Apps     AppIndex
		Launcher Launcher
		Logger   *log.Logger
	}
)

// ExcludeDotfiles skips hidden entries.
func ExcludeDotfiles(name string) bool { return strings.HasPrefix(name, ".") }

// ID returns the desktop file id, the basename of its path.
func (e *DesktopEntry) ID() string { return filepath.Base(e.Path) }

// DisplayName returns "Localized (Name)" when the localized name differs
// from the untranslated one, and the name alone otherwise.
func (e *DesktopEntry) DisplayName() string {
	if e.LocalizedName != "" && e.LocalizedName != e.Name {
		return fmt.Sprintf("%s (%s)", e.LocalizedName, e.Name)
	}
	return e.Name
}

// Launchable reports whether the entry is an application meant to be shown.
func (e *DesktopEntry) Launchable() bool {
	return e.Type == "Application" && !e.Hidden && !e.NoDisplay
}

func (e *Env) logger() *log.Logger {
	if e == nil || e.Logger == nil {
		return log.New(io.Discard)
	}
	return e.Logger
}

func (e *Env) lister() (FileLister, error) {
	if e == nil || e.Lister == nil {
		return nil, ErrNoLister
	}
	return e.Lister, nil
}

func (e *Env) resolver() (DesktopResolver, error) {
	if e == nil || e.Desktop == nil {
		return nil, ErrNoResolver
	}
	return e.Desktop, nil
}
