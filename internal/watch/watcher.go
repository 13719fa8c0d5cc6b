// SPDX-License-Identifier: MPL-2.0

// Package watch reports debounced changes below a set of indexed roots.
//
// Each root is watched down to the depth it is indexed at. Events within the
// debounce window are coalesced so the callback fires once with every root
// that saw a change.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync/atomic"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charlievieth/fastwalk"
	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// defaultDebounce is the delay before firing the onChange callback after the
// last filesystem event.
const defaultDebounce = 500 * time.Millisecond

// defaultIgnores lists path patterns that never trigger a rescan: VCS
// metadata, editor swap files and OS metadata files.
var defaultIgnores = []string{
	"**/.git/**",
	"**/*.swp",
	"**/*.swo",
	"**/*~",
	"**/.DS_Store",
}

var (
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid watch config")
	// ErrAlreadyRunning is returned by a second call to Run.
	ErrAlreadyRunning = errors.New("watch: Run called more than once")
)

type (
	// Root is a directory indexed Depth levels deep.
	Root struct {
		Path  string
		Depth int
	}

	// Config holds the parameters for a Watcher.
	Config struct {
		// Roots are the directories to watch. Overlapping roots are allowed;
		// an event is reported for every root that covers it.
		Roots []Root

		// Ignore are additional doublestar patterns, matched against paths
		// relative to their root, that never trigger callbacks.
		Ignore []string

		// Debounce is the quiet period after the last event before the callback
		// fires. Zero or negative values fall back to defaultDebounce.
		Debounce time.Duration

		// OnChange is called after the debounce window closes with the sorted
		// paths of the roots that changed. A nil callback is a no-op.
		OnChange func(ctx context.Context, roots []string) error

		// Logger receives diagnostics. nil discards them.
		Logger *log.Logger
	}

	// InvalidConfigError collects the invalid fields of a Config.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Watcher monitors roots and fires a debounced callback when they
	// change. Run must be called exactly once.
	Watcher struct {
		cfg      Config
		fsw      *fsnotify.Watcher
		roots    []Root
		ignores  []string
		logger   *log.Logger
		debounce time.Duration
		started  atomic.Bool
	}
)

// Validate reports missing roots, negative depths and malformed patterns.
func (c Config) Validate() error {
	var errs []error
	if len(c.Roots) == 0 {
		errs = append(errs, errors.New("no roots to watch"))
	}
	for _, r := range c.Roots {
		if r.Path == "" {
			errs = append(errs, errors.New("root path is empty"))
		}
		if r.Depth < 0 {
			errs = append(errs, fmt.Errorf("root %q: negative depth %d", r.Path, r.Depth))
		}
	}
	for _, p := range c.Ignore {
		if !doublestar.ValidatePattern(p) {
			errs = append(errs, fmt.Errorf("invalid ignore pattern %q", p))
		}
	}
	if len(errs) > 0 {
		return &InvalidConfigError{FieldErrors: errs}
	}
	return nil
}

// Error implements the error interface.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, len(e.FieldErrors))
	for i, err := range e.FieldErrors {
		msgs[i] = err.Error()
	}
	return "invalid watch config: " + strings.Join(msgs, "; ")
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// New validates cfg, resolves the roots to absolute paths and registers
// every directory within their depth for monitoring. Missing roots are
// logged and skipped.
func New(cfg Config) (*Watcher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	roots := make([]Root, 0, len(cfg.Roots))
	for _, r := range cfg.Roots {
		abs, err := filepath.Abs(r.Path)
		if err != nil {
			return nil, fmt.Errorf("watch: resolve root %q: %w", r.Path, err)
		}
		roots = append(roots, Root{Path: abs, Depth: r.Depth})
	}

	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: create fsnotify watcher: %w", err)
	}

	w := &Watcher{
		cfg:      cfg,
		fsw:      fsw,
		roots:    roots,
		ignores:  slices.Concat(defaultIgnores, cfg.Ignore),
		logger:   logger,
		debounce: debounce,
	}

	for _, r := range roots {
		if err := w.addRoot(r); err != nil {
			if closeErr := fsw.Close(); closeErr != nil {
				logger.Warn("close after init failure", "err", closeErr)
			}
			return nil, err
		}
	}

	return w, nil
}

// Run blocks until ctx is cancelled, processing filesystem events and
// dispatching debounced callbacks. It returns nil on clean context
// cancellation and propagates fatal watcher errors.
func (w *Watcher) Run(ctx context.Context) error {
	if !w.started.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}

	pending := newBatch(w.debounce, func(changed []string) {
		if ctx.Err() != nil || w.cfg.OnChange == nil {
			return
		}
		w.logger.Debug("roots changed", "roots", changed)
		if err := w.cfg.OnChange(ctx, changed); err != nil {
			w.logger.Error("rescan failed", "err", err)
		}
	})
	defer func() {
		pending.stop()
		if err := w.fsw.Close(); err != nil {
			w.logger.Warn("close fsnotify", "err", err)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case evt, ok := <-w.fsw.Events:
			if !ok {
				return errors.New("watch: fsnotify event channel closed unexpectedly")
			}

			hit := w.rootsFor(evt.Name)
			if len(hit) == 0 {
				continue
			}
			if evt.Has(fsnotify.Create) {
				w.maybeAddDir(evt.Name)
			}
			pending.add(hit...)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return errors.New("watch: fsnotify error channel closed unexpectedly")
			}
			if limitReached(err) {
				return fmt.Errorf("watch: watch limit reached: %w", err)
			}
			w.logger.Warn("fsnotify error", "err", err)
		}
	}
}

// Roots returns the absolute roots being watched.
func (w *Watcher) Roots() []Root {
	return slices.Clone(w.roots)
}

// addRoot registers r and every non-ignored directory less than r.Depth
// levels below it. The directories at r.Depth are listed but their contents
// are not, so they need no watch of their own.
func (w *Watcher) addRoot(r Root) error {
	if _, err := os.Stat(r.Path); err != nil {
		w.logger.Warn("not watching missing root", "root", r.Path, "err", err)
		return nil
	}

	var conf fastwalk.Config
	walkErr := fastwalk.Walk(&conf, r.Path, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			w.logger.Debug("skipping inaccessible path", "path", path, "err", err)
			return nil //nolint:nilerr // inaccessible paths are not watched
		}
		if !d.IsDir() {
			return nil
		}

		depth, rel := levelOf(r.Path, path)
		if path != r.Path && (depth >= r.Depth || w.isIgnored(rel) || w.isIgnored(rel+"/")) {
			return filepath.SkipDir
		}
		if addErr := w.fsw.Add(path); addErr != nil {
			return fmt.Errorf("watch: add directory %q: %w", path, addErr)
		}
		return nil
	})
	if walkErr != nil {
		return fmt.Errorf("watch: walk %s: %w", r.Path, walkErr)
	}
	return nil
}

// maybeAddDir watches a directory created after the initial walk when some
// root indexes below it.
func (w *Watcher) maybeAddDir(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}
	for _, r := range w.roots {
		depth, rel := levelOf(r.Path, path)
		if depth < 0 || depth >= r.Depth || w.isIgnored(rel) {
			continue
		}
		if addErr := w.fsw.Add(path); addErr != nil {
			w.logger.Warn("add new directory", "path", path, "err", addErr)
		}
		return
	}
}

// rootsFor returns the roots whose listing includes path.
func (w *Watcher) rootsFor(path string) []string {
	var out []string
	for _, r := range w.roots {
		depth, rel := levelOf(r.Path, path)
		if depth < 0 || depth > r.Depth || w.isIgnored(rel) {
			continue
		}
		out = append(out, r.Path)
	}
	return out
}

func (w *Watcher) isIgnored(rel string) bool {
	normalized := filepath.ToSlash(rel)
	for _, pat := range w.ignores {
		if matched, matchErr := doublestar.Match(pat, normalized); matchErr == nil && matched {
			return true
		}
	}
	return false
}

// levelOf returns how many directory levels path lies below root, counting
// root's own entries as level 0, and the relative path. The level is -1
// when path is root itself or outside it.
func levelOf(root, path string) (int, string) {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
		return -1, rel
	}
	return strings.Count(rel, string(os.PathSeparator)), rel
}

// DefaultIgnores returns a copy of the built-in ignore patterns.
func DefaultIgnores() []string {
	return slices.Clone(defaultIgnores)
}
