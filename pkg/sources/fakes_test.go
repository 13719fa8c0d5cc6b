// SPDX-License-Identifier: MPL-2.0

package sources

import (
	"context"
	"fmt"
	"io/fs"
	"sync"
)

type (
	listCall struct {
		root  string
		depth int
	}

	fakeLister struct {
		mu      sync.Mutex
		entries map[string][]string
		fail    map[string]error
		calls   []listCall
	}

	fakeResolver map[string]*DesktopEntry

	fakeApps map[string][]*DesktopEntry

	launchCall struct {
		kind     string
		argv     []string
		dir      string
		uris     []string
		terminal bool
		entry    *DesktopEntry
	}

	fakeLauncher struct {
		calls []launchCall
	}

	fakeStore struct {
		location string
		marks    []Bookmark
		err      error
	}
)

func (l *fakeLister) List(_ context.Context, root string, maxDepth int, _ ExcludeFunc) ([]string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, listCall{root: root, depth: maxDepth})
	if err := l.fail[root]; err != nil {
		return nil, err
	}
	paths, ok := l.entries[root]
	if !ok {
		return nil, fmt.Errorf("list %s: %w", root, fs.ErrNotExist)
	}
	return paths, nil
}

func (r fakeResolver) Resolve(path string) (*DesktopEntry, error) {
	return r[path], nil
}

func (a fakeApps) AppsFor(_ context.Context, mimeType string) []*DesktopEntry {
	return a[mimeType]
}

func (l *fakeLauncher) Launch(_ context.Context, entry *DesktopEntry, uris []string, terminal bool) error {
	l.calls = append(l.calls, launchCall{kind: "launch", entry: entry, uris: uris, terminal: terminal})
	return nil
}

func (l *fakeLauncher) Spawn(_ context.Context, argv []string, dir string, terminal bool) error {
	l.calls = append(l.calls, launchCall{kind: "spawn", argv: argv, dir: dir, terminal: terminal})
	return nil
}

func (l *fakeLauncher) OpenURI(_ context.Context, uri string) error {
	l.calls = append(l.calls, launchCall{kind: "open", uris: []string{uri}})
	return nil
}

func (s *fakeStore) Location() string { return s.location }

func (s *fakeStore) Bookmarks(context.Context) ([]Bookmark, error) { return s.marks, s.err }

func app(path, name string) *DesktopEntry {
	return &DesktopEntry{Path: path, Type: "Application", Name: name, Exec: name}
}
