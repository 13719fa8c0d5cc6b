// SPDX-License-Identifier: MPL-2.0

package sources

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/trove-launcher/trove/pkg/catalog"
)

// ErrNoRoots is returned when a FileTree is built without root directories.
var ErrNoRoots = errors.New("file tree needs at least one root")

type (
	// FileTree lists the files below a set of root directories, down to a
	// fixed depth. Hidden entries are skipped.
	FileTree struct {
		catalog.Source
		roots []string
		depth int
		env   *Env
	}

	// Directory lists the immediate children of one directory.
	Directory struct {
		catalog.Source
		dir string
		env *Env
	}
)

// NewFileTree returns a provider over roots. Roots are cleaned, sorted and
// deduplicated, so providers over the same set of roots are equal.
func NewFileTree(env *Env, roots []string, depth int) (*FileTree, error) {
	if depth < 0 {
		return nil, &catalog.InvalidDataError{Value: strconv.Itoa(depth), Err: errors.New("depth must be non-negative")}
	}
	cleaned := make([]string, 0, len(roots))
	for _, r := range roots {
		if r == "" {
			continue
		}
		cleaned = append(cleaned, filepath.Clean(r))
	}
	if len(cleaned) == 0 {
		return nil, ErrNoRoots
	}
	slices.Sort(cleaned)
	cleaned = slices.Compact(cleaned)

	name := displayBase(cleaned[0])
	if len(cleaned) > 1 {
		name += " et al"
	}
	desc := fmt.Sprintf("Recursive source of %s, (%d levels)", name, depth)
	id := catalog.FormatID("files", map[string]string{"depth": strconv.Itoa(depth)}, cleaned...)
	return &FileTree{
		Source: catalog.NewSource(id, name, desc, (*FileTree)(nil)),
		roots:  cleaned,
		depth:  depth,
		env:    env,
	}, nil
}

// Roots returns the normalized root directories.
func (t *FileTree) Roots() []string { return slices.Clone(t.roots) }

// Depth returns the maximum listing depth.
func (t *FileTree) Depth() int { return t.depth }

// IconName implements catalog.IconNamer.
func (*FileTree) IconName() string { return "folder-saved-search" }

// Items lists every root in turn. A root that cannot be listed yields one
// error and the remaining roots are still listed.
func (t *FileTree) Items(ctx context.Context) iter.Seq2[catalog.Item, error] {
	return func(yield func(catalog.Item, error) bool) {
		lister, err := t.env.lister()
		if err != nil {
			yield(nil, &catalog.InvalidDataError{Value: t.Name(), Err: err})
			return
		}
		for _, root := range t.roots {
			paths, err := lister.List(ctx, root, t.depth, ExcludeDotfiles)
			if err != nil {
				if !yield(nil, &catalog.InvalidDataError{Value: root, Err: err}) {
					return
				}
				continue
			}
			for _, p := range paths {
				if !yield(NewFileItem(t.env, p, ""), nil) {
					return
				}
			}
		}
	}
}

// NewDirectory returns a provider over the children of dir.
func NewDirectory(env *Env, dir string) *Directory {
	dir = filepath.Clean(dir)
	return &Directory{
		Source: catalog.NewSource(catalog.FormatID("directory", nil, dir), displayBase(dir), "Directory source "+dir, (*Directory)(nil)),
		dir:    dir,
		env:    env,
	}
}

// Dir returns the listed directory.
func (d *Directory) Dir() string { return d.dir }

// IconName implements catalog.IconNamer.
func (*Directory) IconName() string { return "folder" }

// Items lists the directory's children. Desktop files become applications.
func (d *Directory) Items(ctx context.Context) iter.Seq2[catalog.Item, error] {
	return func(yield func(catalog.Item, error) bool) {
		lister, err := d.env.lister()
		if err != nil {
			yield(nil, &catalog.InvalidDataError{Value: d.dir, Err: err})
			return
		}
		paths, err := lister.List(ctx, d.dir, 0, ExcludeDotfiles)
		if err != nil {
			yield(nil, &catalog.InvalidDataError{Value: d.dir, Err: err})
			return
		}
		for _, p := range paths {
			if !yield(newPathItem(d.env, p)) {
				return
			}
		}
	}
}

// HasParent reports whether the directory has a distinct parent. The
// filesystem root is its own parent and so has none.
func (d *Directory) HasParent() bool {
	parent := filepath.Dir(d.dir)
	if parent == d.dir {
		return false
	}
	return !sameFile(parent, d.dir)
}

// Parent returns the provider of the enclosing directory.
func (d *Directory) Parent() (catalog.Provider, error) {
	if !d.HasParent() {
		return nil, &catalog.NoParentError{Provider: d.Name()}
	}
	return NewDirectory(d.env, filepath.Dir(d.dir)), nil
}
