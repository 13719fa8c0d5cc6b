// SPDX-License-Identifier: MPL-2.0

package fslist

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/trove-launcher/trove/pkg/sources"
)

func makeTree(t *testing.T, paths ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, p := range paths {
		full := filepath.Join(root, filepath.FromSlash(p))
		if filepath.Ext(p) == "" {
			if err := os.MkdirAll(full, 0o755); err != nil {
				t.Fatal(err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func rel(t *testing.T, root string, paths []string) []string {
	t.Helper()
	out := make([]string, len(paths))
	for i, p := range paths {
		r, err := filepath.Rel(root, p)
		if err != nil {
			t.Fatal(err)
		}
		out[i] = filepath.ToSlash(r)
	}
	return out
}

func TestList_Depth(t *testing.T) {
	t.Parallel()

	root := makeTree(t, "a.txt", "sub/b.txt", "sub/deeper/c.txt", ".hidden/d.txt", ".rc.txt")
	l, err := New(Options{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	tests := []struct {
		depth int
		want  []string
	}{
		{0, []string{"a.txt", "sub"}},
		{1, []string{"a.txt", "sub", "sub/b.txt", "sub/deeper"}},
		{2, []string{"a.txt", "sub", "sub/b.txt", "sub/deeper", "sub/deeper/c.txt"}},
	}
	for _, tt := range tests {
		got, err := l.List(context.Background(), root, tt.depth, sources.ExcludeDotfiles)
		if err != nil {
			t.Fatalf("List(depth %d) error = %v", tt.depth, err)
		}
		if r := rel(t, root, got); !slices.Equal(r, tt.want) {
			t.Errorf("List(depth %d) = %v, want %v", tt.depth, r, tt.want)
		}
	}
}

func TestList_ExcludePatterns(t *testing.T) {
	t.Parallel()

	root := makeTree(t, "keep.txt", "node_modules/x.js", "build/out.bin", "src/main.go")
	l, err := New(Options{Exclude: []string{"node_modules", "**/*.bin"}})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	got, err := l.List(context.Background(), root, 3, nil)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	want := []string{"build", "keep.txt", "src", "src/main.go"}
	if r := rel(t, root, got); !slices.Equal(r, want) {
		t.Errorf("List() = %v, want %v", r, want)
	}
}

func TestList_MissingRoot(t *testing.T) {
	t.Parallel()

	l, _ := New(Options{})
	_, err := l.List(context.Background(), filepath.Join(t.TempDir(), "missing"), 0, nil)
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("List() error = %v, want fs.ErrNotExist", err)
	}
}

func TestList_Canceled(t *testing.T) {
	t.Parallel()

	root := makeTree(t, "a.txt")
	l, _ := New(Options{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := l.List(ctx, root, 0, nil); !errors.Is(err, context.Canceled) {
		t.Errorf("List() error = %v, want context.Canceled", err)
	}
}

func TestNew_InvalidPattern(t *testing.T) {
	t.Parallel()

	if _, err := New(Options{Exclude: []string{"[unclosed"}}); err == nil {
		t.Error("New() accepted a malformed pattern")
	}
}
