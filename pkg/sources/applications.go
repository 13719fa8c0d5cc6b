// SPDX-License-Identifier: MPL-2.0

package sources

import (
	"context"
	"errors"
	"io/fs"
	"iter"
	"path/filepath"
	"slices"
	"strings"

	"github.com/trove-launcher/trove/pkg/catalog"
)

// Applications lists the installed applications found in the
// "applications" subdirectory of each XDG data directory. Earlier data
// directories take precedence over later ones for the same desktop file id.
type Applications struct {
	catalog.Source
	dataDirs []string
	env      *Env
}

// NewApplications returns a provider over dataDirs, in precedence order.
func NewApplications(env *Env, dataDirs []string) *Applications {
	dirs := make([]string, len(dataDirs))
	for i, d := range dataDirs {
		dirs[i] = filepath.Clean(d)
	}
	return &Applications{
		Source:   catalog.NewSource(catalog.SequenceID("applications", nil, dirs...), "All Applications", "All applications and preferences", (*Applications)(nil)),
		dataDirs: dirs,
		env:      env,
	}
}

// DataDirs returns the scanned data directories.
func (a *Applications) DataDirs() []string { return slices.Clone(a.dataDirs) }

// IconName implements catalog.IconNamer.
func (*Applications) IconName() string { return "gnome-applications" }

// Items yields one AppItem per launchable desktop entry. Missing data
// directories are skipped silently.
func (a *Applications) Items(ctx context.Context) iter.Seq2[catalog.Item, error] {
	return func(yield func(catalog.Item, error) bool) {
		lister, err := a.env.lister()
		if err != nil {
			yield(nil, &catalog.InvalidDataError{Value: a.Name(), Err: err})
			return
		}
		resolver, err := a.env.resolver()
		if err != nil {
			yield(nil, &catalog.InvalidDataError{Value: a.Name(), Err: err})
			return
		}
		seen := make(map[string]bool)
		for _, dir := range a.dataDirs {
			appsDir := filepath.Join(dir, "applications")
			paths, err := lister.List(ctx, appsDir, 0, ExcludeDotfiles)
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			if err != nil {
				if !yield(nil, &catalog.InvalidDataError{Value: appsDir, Err: err}) {
					return
				}
				continue
			}
			for _, p := range paths {
				id := filepath.Base(p)
				if !strings.HasSuffix(id, desktopSuffix) || seen[id] {
					continue
				}
				seen[id] = true
				entry, err := resolver.Resolve(p)
				if err != nil {
					if !yield(nil, &catalog.InvalidDataError{Value: p, Err: err}) {
						return
					}
					continue
				}
				if entry == nil || !entry.Launchable() {
					continue
				}
				if !yield(NewAppItem(a.env, entry), nil) {
					return
				}
			}
		}
	}
}
