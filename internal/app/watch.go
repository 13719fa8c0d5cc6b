// SPDX-License-Identifier: MPL-2.0

package app

import (
	"context"
	"errors"
	"path/filepath"
	"runtime"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/trove-launcher/trove/internal/issue"
	"github.com/trove-launcher/trove/internal/watch"
	"github.com/trove-launcher/trove/pkg/catalog"
	"github.com/trove-launcher/trove/pkg/sources"
)

// WatchRoots returns the directories listed by the static sources, each
// with the depth it is listed at. Roots shared by several sources appear
// once with the largest depth.
func (a *App) WatchRoots() []watch.Root {
	depths := make(map[string]int)
	var order []string
	for _, p := range a.sources {
		for _, r := range rootsOf(p) {
			d, seen := depths[r.Path]
			if !seen {
				order = append(order, r.Path)
			}
			if !seen || r.Depth > d {
				depths[r.Path] = r.Depth
			}
		}
	}
	out := make([]watch.Root, len(order))
	for i, path := range order {
		out[i] = watch.Root{Path: path, Depth: depths[path]}
	}
	return out
}

// RescanRoots rescans every static source listing one of roots. It keeps
// going after a failed rescan and returns the joined errors.
func (a *App) RescanRoots(ctx context.Context, roots []string) error {
	ctx = a.Context(ctx)
	var errs []error
	for _, p := range a.sources {
		if !slices.ContainsFunc(rootsOf(p), func(r watch.Root) bool { return slices.Contains(roots, r.Path) }) {
			continue
		}
		a.logger.Info("rescanning", "catalog", p.Name())
		if _, err := a.cache.Rescan(ctx, p); err != nil {
			errs = append(errs, issue.WrapWithContext(err, "rescan catalog", p.Name()))
		}
	}
	return errors.Join(errs...)
}

// Warm loads every static source into the cache and builds the mime
// index, concurrently. Item errors are logged by the cache; only
// cancellation is returned.
func (a *App) Warm(ctx context.Context) error {
	ctx = a.Context(ctx)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	g.Go(func() error {
		a.apps.Load(gctx)
		return nil
	})
	for _, p := range a.sources {
		if p.IsDynamic() {
			continue
		}
		g.Go(func() error {
			_, err := a.cache.Enumerate(gctx, p)
			if err != nil && gctx.Err() != nil {
				return err
			}
			return nil
		})
	}
	return g.Wait()
}

// Watch warms the cache, then rescans sources whenever their roots change,
// until ctx is cancelled.
func (a *App) Watch(ctx context.Context) error {
	roots := a.WatchRoots()
	if len(roots) == 0 {
		return errors.New("no directories to watch")
	}
	w, err := watch.New(watch.Config{
		Roots:    roots,
		Ignore:   a.cfg.Exclude,
		Debounce: time.Duration(a.cfg.Watch.DebounceMS) * time.Millisecond,
		OnChange: a.RescanRoots,
		Logger:   a.logger.WithPrefix("watch"),
	})
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return w.Run(gctx) })
	g.Go(func() error {
		if err := a.Warm(gctx); err != nil {
			return nil //nolint:nilerr // cancellation is reported by Run
		}
		a.logger.Info("watching", "roots", len(roots), "catalogs", a.cache.Len())
		return nil
	})
	return g.Wait()
}

// rootsOf returns the absolute directories p lists and their depth.
func rootsOf(p catalog.Provider) []watch.Root {
	var out []watch.Root
	add := func(path string, depth int) {
		if abs, err := filepath.Abs(path); err == nil {
			out = append(out, watch.Root{Path: abs, Depth: depth})
		}
	}
	switch s := p.(type) {
	case *sources.FileTree:
		for _, r := range s.Roots() {
			add(r, s.Depth())
		}
	case *sources.Directory:
		add(s.Dir(), 0)
	case *sources.Applications:
		for _, d := range s.DataDirs() {
			add(filepath.Join(d, "applications"), 0)
		}
	}
	return out
}
