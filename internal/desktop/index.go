// SPDX-License-Identifier: MPL-2.0

package desktop

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/trove-launcher/trove/pkg/sources"
)

// Index maps mime types to the applications that declare them. It is
// built lazily on first use and is safe for concurrent use.
type Index struct {
	dataDirs []string
	lister   sources.FileLister
	resolver sources.DesktopResolver
	logger   *log.Logger

	once   sync.Once
	loaded atomic.Bool
	byMime map[string][]*sources.DesktopEntry
}

var _ sources.AppIndex = (*Index)(nil)

// NewIndex returns an index over the applications below dataDirs.
func NewIndex(dataDirs []string, lister sources.FileLister, resolver sources.DesktopResolver, logger *log.Logger) *Index {
	return &Index{dataDirs: slices.Clone(dataDirs), lister: lister, resolver: resolver, logger: logger}
}

// Load builds the index if it has not been built yet. The index is built
// once; a caller whose ctx is cancelled stops waiting but does not leave a
// partial index behind.
func (x *Index) Load(ctx context.Context) {
	if x.Loaded() {
		return
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		x.once.Do(func() { x.build(context.WithoutCancel(ctx)) })
	}()
	select {
	case <-done:
	case <-ctx.Done():
	}
}

// Loaded reports whether the index has been built.
func (x *Index) Loaded() bool { return x.loaded.Load() }

// AppsFor returns the launchable applications handling mimeType. Once
// the index is built it answers from memory without blocking.
func (x *Index) AppsFor(ctx context.Context, mimeType string) []*sources.DesktopEntry {
	x.Load(ctx)
	if !x.Loaded() {
		return nil
	}
	return slices.Clone(x.byMime[mimeType])
}

func (x *Index) build(ctx context.Context) {
	defer x.loaded.Store(true)
	x.byMime = make(map[string][]*sources.DesktopEntry)
	seen := make(map[string]bool)
	for _, dir := range x.dataDirs {
		paths, err := x.lister.List(ctx, filepath.Join(dir, "applications"), 0, sources.ExcludeDotfiles)
		if err != nil {
			continue
		}
		for _, p := range paths {
			id := filepath.Base(p)
			if !strings.HasSuffix(id, ".desktop") || seen[id] {
				continue
			}
			seen[id] = true
			entry, err := x.resolver.Resolve(p)
			if err != nil {
				if x.logger != nil {
					x.logger.Debug("skipping desktop entry", "path", p, "err", err)
				}
				continue
			}
			if entry == nil || !entry.Launchable() {
				continue
			}
			for _, mt := range entry.MimeTypes {
				x.byMime[mt] = append(x.byMime[mt], entry)
			}
		}
	}
}

// DataDirs returns the XDG data directories in precedence order:
// $XDG_DATA_HOME (default ~/.local/share) followed by $XDG_DATA_DIRS
// (default /usr/local/share:/usr/share).
func DataDirs() []string {
	var dirs []string
	if home := os.Getenv("XDG_DATA_HOME"); home != "" {
		dirs = append(dirs, home)
	} else if userHome, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(userHome, ".local", "share"))
	}
	system := os.Getenv("XDG_DATA_DIRS")
	if system == "" {
		system = "/usr/local/share:/usr/share"
	}
	for _, d := range filepath.SplitList(system) {
		if d != "" && !slices.Contains(dirs, d) {
			dirs = append(dirs, d)
		}
	}
	return dirs
}
