// SPDX-License-Identifier: MPL-2.0

// Package fslist lists directory trees for the file providers.
package fslist

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charlievieth/fastwalk"

	"github.com/trove-launcher/trove/pkg/sources"
)

type (
	// Options configures a Lister.
	Options struct {
		// Exclude holds doublestar patterns matched against paths relative
		// to the listed root. Matching directories are not descended into.
		Exclude []string
		// Follow makes the walk descend into symlinked directories.
		Follow bool
	}

	// Lister implements sources.FileLister with a parallel directory walk.
	Lister struct {
		exclude []string
		follow  bool
	}
)

var _ sources.FileLister = (*Lister)(nil)

// New returns a Lister. It fails when an exclude pattern is malformed.
func New(opts Options) (*Lister, error) {
	for _, p := range opts.Exclude {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid exclude pattern %q", p)
		}
	}
	return &Lister{exclude: slices.Clone(opts.Exclude), follow: opts.Follow}, nil
}

// List returns the absolute paths below root, at most maxDepth directory
// levels deep, sorted lexically. Unreadable subdirectories are skipped;
// an unreadable or missing root is an error.
func (l *Lister) List(ctx context.Context, root string, maxDepth int, exclude sources.ExcludeFunc) ([]string, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", root, err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("list %s: not a directory", root)
	}

	var (
		mu  sync.Mutex
		out []string
	)
	conf := fastwalk.Config{Follow: l.follow}
	err = fastwalk.Walk(&conf, root, func(path string, d os.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil || path == root {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		depth := strings.Count(rel, string(os.PathSeparator))
		if depth > maxDepth || (exclude != nil && exclude(d.Name())) || l.excluded(rel) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		mu.Lock()
		out = append(out, path)
		mu.Unlock()

		if d.IsDir() && depth == maxDepth {
			return filepath.SkipDir
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", root, err)
	}
	slices.Sort(out)
	return out, nil
}

func (l *Lister) excluded(rel string) bool {
	rel = filepath.ToSlash(rel)
	for _, p := range l.exclude {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}
