// SPDX-License-Identifier: MPL-2.0

package bookmarks

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/trove-launcher/trove/pkg/sources"
)

// GTKStore reads GTK bookmark files. Each line holds a URI optionally
// followed by a space and a title.
type GTKStore struct {
	files []string
}

var _ sources.BookmarkStore = (*GTKStore)(nil)

// NewGTKStore returns a store reading files in order. Missing files are
// treated as empty.
func NewGTKStore(files ...string) *GTKStore {
	return &GTKStore{files: files}
}

// DefaultGTKFiles returns the GTK 3 and legacy bookmark locations.
func DefaultGTKFiles() []string {
	var files []string
	config := os.Getenv("XDG_CONFIG_HOME")
	home, err := os.UserHomeDir()
	if config == "" && err == nil {
		config = filepath.Join(home, ".config")
	}
	if config != "" {
		files = append(files, filepath.Join(config, "gtk-3.0", "bookmarks"))
	}
	if err == nil {
		files = append(files, filepath.Join(home, ".gtk-bookmarks"))
	}
	return files
}

// Location implements sources.BookmarkStore.
func (s *GTKStore) Location() string { return strings.Join(s.files, string(os.PathListSeparator)) }

// Bookmarks reads every file in turn.
func (s *GTKStore) Bookmarks(ctx context.Context) ([]sources.Bookmark, error) {
	var out []sources.Bookmark
	for _, f := range s.files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := os.ReadFile(f)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read bookmarks %s: %w", f, err)
		}
		out = append(out, parseGTK(data)...)
	}
	return out, nil
}

func parseGTK(data []byte) []sources.Bookmark {
	var out []sources.Bookmark
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		uri, title, _ := strings.Cut(line, " ")
		out = append(out, sources.Bookmark{URI: uri, Title: strings.TrimSpace(title)})
	}
	return out
}
