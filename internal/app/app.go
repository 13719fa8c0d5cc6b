// SPDX-License-Identifier: MPL-2.0

package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/trove-launcher/trove/internal/bookmarks"
	"github.com/trove-launcher/trove/internal/config"
	"github.com/trove-launcher/trove/internal/desktop"
	"github.com/trove-launcher/trove/internal/fslist"
	"github.com/trove-launcher/trove/internal/icons"
	"github.com/trove-launcher/trove/internal/launch"
	"github.com/trove-launcher/trove/pkg/catalog"
	"github.com/trove-launcher/trove/pkg/sources"
	"github.com/trove-launcher/trove/pkg/types"
)

var (
	// ErrCatalogNotFound is returned by Find when nothing matches.
	ErrCatalogNotFound = errors.New("catalog not found")
	// ErrAmbiguousCatalog is returned by Find when a name matches several catalogs.
	ErrAmbiguousCatalog = errors.New("ambiguous catalog name")
)

type (
	// Options configures an App.
	Options struct {
		// Config selects the sources. nil uses config.DefaultConfig().
		Config *config.Config
		// Logger is shared by the cache and the sources. nil discards.
		Logger *log.Logger
		// Now is the clock used to age recent documents. nil uses time.Now.
		Now func() time.Time
		// Launcher replaces the process launcher, mostly for tests.
		Launcher sources.Launcher
	}

	// CatalogNotFoundError reports a Find query that matched no catalog.
	CatalogNotFoundError struct {
		Query string
	}

	// AmbiguousCatalogError reports a Find query that matched several catalogs.
	AmbiguousCatalogError struct {
		Query      string
		Candidates []string
	}

	// App holds the assembled catalogs and their shared collaborators.
	App struct {
		cfg      *config.Config
		logger   *log.Logger
		env      *sources.Env
		cache    *catalog.Cache
		icons    *icons.Resolver
		apps     *desktop.Index
		sources  []catalog.Provider
		catalogs *catalog.Catalogs
		root     *catalog.Union
	}
)

// New builds every source enabled in the configuration. Paths are expanded
// and sources that cannot be built, such as a tree without a usable root,
// are skipped with a warning.
func New(opts Options) (*App, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	cache, err := catalog.NewCache(catalog.CacheOptions{
		MaxEntries: cfg.Cache.MaxCatalogs,
		Logger:     logger.WithPrefix("cache"),
	})
	if err != nil {
		return nil, err
	}

	lister, err := fslist.New(fslist.Options{Exclude: cfg.Exclude})
	if err != nil {
		return nil, err
	}

	dataDirs, err := expandAll(cfg.Applications.DataDirs)
	if err != nil {
		return nil, err
	}
	if len(dataDirs) == 0 {
		dataDirs = desktop.DataDirs()
	}

	launcher := opts.Launcher
	if launcher == nil {
		l, err := launch.New(launch.Options{Terminal: cfg.Terminal.Command, Logger: logger.WithPrefix("launch")})
		if err != nil {
			return nil, err
		}
		launcher = l
	}

	resolver := desktop.NewResolver(desktop.LocaleFromEnv())
	apps := desktop.NewIndex(dataDirs, lister, resolver, logger.WithPrefix("desktop"))
	env := &sources.Env{
		Lister:   lister,
		Desktop:  resolver,
		Apps:     apps,
		Launcher: launcher,
		Logger:   logger,
	}

	a := &App{
		cfg:    cfg,
		logger: logger,
		env:    env,
		cache:  cache,
		icons:  icons.NewResolver(dataDirs, cfg.UI.IconTheme),
		apps:   apps,
	}
	if err := a.buildSources(dataDirs, now); err != nil {
		return nil, err
	}
	a.catalogs = catalog.NewCatalogs("", a.sources...)
	a.root = catalog.NewUnion(append(slices.Clone(a.sources), a.catalogs)...)
	return a, nil
}

func (a *App) buildSources(dataDirs []string, now func() time.Time) error {
	cfg := a.cfg
	for _, tree := range cfg.Trees {
		root, err := config.ExpandPath(tree.Path)
		if err != nil {
			return err
		}
		t, err := sources.NewFileTree(a.env, []string{root}, tree.Depth)
		if err != nil {
			a.logger.Warn("skipping tree", "path", tree.Path, "err", err)
			continue
		}
		a.sources = append(a.sources, t)
	}

	for _, dir := range cfg.Directories {
		p, err := config.ExpandPath(dir)
		if err != nil {
			return err
		}
		a.sources = append(a.sources, sources.NewDirectory(a.env, p))
	}

	if cfg.Applications.Enabled {
		a.sources = append(a.sources, sources.NewApplications(a.env, dataDirs))
	}

	if cfg.Places.Enabled {
		files, err := expandAll(cfg.Places.Files)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			files = bookmarks.DefaultGTKFiles()
		}
		a.sources = append(a.sources, sources.NewPlaces(a.env, bookmarks.NewGTKStore(files...)))
	}

	if cfg.Recents.Enabled {
		file := bookmarks.DefaultXBELFile()
		if cfg.Recents.File != "" {
			p, err := config.ExpandPath(cfg.Recents.File)
			if err != nil {
				return err
			}
			file = p
		}
		store := bookmarks.NewXBELStore(file, now)
		a.sources = append(a.sources, sources.NewRecents(a.env, store, cfg.Recents.MaxDays))
	}

	// Equal sources would share a snapshot anyway; keep the first.
	set := catalog.NewProviderSet()
	a.sources = slices.DeleteFunc(a.sources, func(p catalog.Provider) bool {
		if set.Contains(p) {
			a.logger.Debug("dropping duplicate source", "id", p.CanonicalID())
			return true
		}
		set.Add(p)
		return false
	})
	return nil
}

// Root returns the root catalog.
func (a *App) Root() catalog.Provider { return a.root }

// Catalogs returns the catalog of catalogs.
func (a *App) Catalogs() *catalog.Catalogs { return a.catalogs }

// Sources returns the configured sources in configuration order.
func (a *App) Sources() []catalog.Provider { return slices.Clone(a.sources) }

// Cache returns the shared snapshot cache.
func (a *App) Cache() *catalog.Cache { return a.cache }

// Env returns the collaborators shared by items and providers.
func (a *App) Env() *sources.Env { return a.env }

// Icons returns the icon theme resolver.
func (a *App) Icons() *icons.Resolver { return a.icons }

// Logger returns the application logger.
func (a *App) Logger() *log.Logger { return a.logger }

// Context attaches the shared cache to ctx for operations such as Rescan.
func (a *App) Context(ctx context.Context) context.Context {
	return catalog.WithCache(ctx, a.cache)
}

// Navigator starts a navigation session at the root catalog.
func (a *App) Navigator() *catalog.Navigator {
	return catalog.NewNavigator(a.cache, a.root)
}

// Enumerate lists p through the shared cache.
func (a *App) Enumerate(ctx context.Context, p catalog.Provider, refresh bool) ([]catalog.Item, []error, error) {
	ctx = a.Context(ctx)
	seq := a.cache.Enumerate
	if refresh {
		seq = a.cache.Refresh
	}
	items, err := seq(ctx, p)
	if err != nil {
		return nil, nil, err
	}
	got, errs := catalog.Collect(items)
	return got, errs, nil
}

// Find returns the catalog whose canonical id equals query, or else the
// one whose name matches it case-insensitively. The root and the catalog
// of catalogs are found by name too.
func (a *App) Find(query string) (catalog.Provider, error) {
	all := append(a.Sources(), a.catalogs, a.root)
	for _, p := range all {
		if p.CanonicalID() == query {
			return p, nil
		}
	}

	var matches []catalog.Provider
	for _, p := range all {
		if strings.EqualFold(p.Name(), query) {
			matches = append(matches, p)
		}
	}
	switch len(matches) {
	case 0:
		return nil, &CatalogNotFoundError{Query: query}
	case 1:
		return matches[0], nil
	default:
		ids := make([]string, len(matches))
		for i, p := range matches {
			ids[i] = p.CanonicalID()
		}
		return nil, &AmbiguousCatalogError{Query: query, Candidates: ids}
	}
}

// ItemForPath returns the item for a file, directory or desktop entry.
func (a *App) ItemForPath(path string) (catalog.Item, error) {
	return sources.ItemForPath(a.env, path)
}

// Error implements the error interface.
func (e *CatalogNotFoundError) Error() string {
	return fmt.Sprintf("no catalog named %q", e.Query)
}

// Unwrap returns ErrCatalogNotFound for errors.Is() compatibility.
func (e *CatalogNotFoundError) Unwrap() error { return ErrCatalogNotFound }

// Error implements the error interface.
func (e *AmbiguousCatalogError) Error() string {
	return fmt.Sprintf("%q matches %d catalogs, use an id: %s", e.Query, len(e.Candidates), strings.Join(e.Candidates, ", "))
}

// Unwrap returns ErrAmbiguousCatalog for errors.Is() compatibility.
func (e *AmbiguousCatalogError) Unwrap() error { return ErrAmbiguousCatalog }

func expandAll(paths []types.FilesystemPath) ([]string, error) {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		s, err := config.ExpandPath(p)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
