// SPDX-License-Identifier: MPL-2.0

package sources

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/trove-launcher/trove/pkg/catalog"
)

const desktopSuffix = ".desktop"

type (
	// FileItem is a file or directory on the local filesystem.
	FileItem struct {
		catalog.Described
		path string
		env  *Env
	}

	// AppItem is an installed application described by a desktop entry.
	AppItem struct {
		catalog.Leaf
		entry *DesktopEntry
		env   *Env
	}

	// URLItem is a non-local URI.
	URLItem struct {
		catalog.Leaf
		env *Env
	}
)

// NewFileItem returns an item for path. A blank name defaults to the basename.
func NewFileItem(env *Env, path, name string) *FileItem {
	path = filepath.Clean(path)
	if strings.TrimSpace(name) == "" {
		name = displayBase(path)
	}
	return &FileItem{Described: catalog.NewDescribed(name, path, (*FileItem)(nil)), path: path, env: env}
}

// Path returns the absolute path of the file.
func (f *FileItem) Path() string { return f.path }

// Value returns the path.
func (f *FileItem) Value() any { return f.path }

// HasContent reports whether the path is a directory.
func (f *FileItem) HasContent() bool {
	info, err := os.Stat(f.path)
	return err == nil && info.IsDir()
}

// ContentProvider returns a Directory provider for directories.
func (f *FileItem) ContentProvider() (catalog.Provider, error) {
	if !f.HasContent() {
		return nil, &catalog.NoContentError{Item: f.Name()}
	}
	return NewDirectory(f.env, f.path), nil
}

// IconName derives an icon name from the file's mime type.
func (f *FileItem) IconName() string {
	if f.HasContent() {
		return "folder"
	}
	mt := f.MimeType()
	if mt == "" {
		return "text-x-generic"
	}
	return strings.ReplaceAll(mt, "/", "-")
}

// MimeType returns the detected mime type without parameters, or "" when
// the file cannot be read.
func (f *FileItem) MimeType() string {
	m, err := mimetype.DetectFile(f.path)
	if err != nil {
		return ""
	}
	return baseMime(m.String())
}

// Operations lists the file operations; the first is the default.
func (f *FileItem) Operations() []catalog.Operation {
	info, err := os.Stat(f.path)
	if err != nil {
		return []catalog.Operation{reveal{env: f.env}, inspect{env: f.env}}
	}
	if info.IsDir() {
		return []catalog.Operation{
			open{env: f.env},
			reveal{env: f.env},
			inspect{env: f.env},
			terminalHere{env: f.env},
			catalog.Browse{},
		}
	}

	ops := []catalog.Operation{open{env: f.env}}
	for _, entry := range f.handlers() {
		ops = append(ops, openWith{env: f.env, entry: entry})
	}
	ops = append(ops, reveal{env: f.env}, inspect{env: f.env})
	if info.Mode()&0o111 != 0 {
		ops = append(ops, execute{env: f.env}, execute{env: f.env, terminal: true})
	}
	return ops
}

// handlers returns the applications registered for the file's mime type
// or any of its parent types, most specific first. Operations has no
// context, so the index is queried with a background one; the index is
// built once, normally while warming, and afterwards answers from memory.
func (f *FileItem) handlers() []*DesktopEntry {
	if f.env == nil || f.env.Apps == nil {
		return nil
	}
	m, err := mimetype.DetectFile(f.path)
	if err != nil {
		return nil
	}
	seen := make(map[string]bool)
	var out []*DesktopEntry
	for ; m != nil; m = m.Parent() {
		for _, entry := range f.env.Apps.AppsFor(context.Background(), baseMime(m.String())) {
			if !seen[entry.ID()] {
				seen[entry.ID()] = true
				out = append(out, entry)
			}
		}
	}
	return out
}

// NewAppItem returns an item for a desktop entry.
func NewAppItem(env *Env, entry *DesktopEntry) *AppItem {
	return &AppItem{
		Leaf:  catalog.NewLeaf(entry, entry.DisplayName(), entry.Comment, (*AppItem)(nil)),
		entry: entry,
		env:   env,
	}
}

// Entry returns the desktop entry.
func (a *AppItem) Entry() *DesktopEntry { return a.entry }

// IconName returns the entry's icon, or a generic executable icon.
func (a *AppItem) IconName() string {
	if a.entry.Icon == "" {
		return "application-x-executable"
	}
	return a.entry.Icon
}

// Operations implements catalog.Item.
func (a *AppItem) Operations() []catalog.Operation {
	return []catalog.Operation{
		launch{env: a.env},
		launch{env: a.env, terminal: true},
		inspect{env: a.env},
	}
}

// NewURLItem returns an item for uri. A blank name defaults to the URI.
func NewURLItem(env *Env, uri, name string) *URLItem {
	if strings.TrimSpace(name) == "" {
		name = uri
	}
	return &URLItem{Leaf: catalog.NewLeaf(uri, name, uri, (*URLItem)(nil)), env: env}
}

// IconName implements catalog.IconNamer.
func (*URLItem) IconName() string { return "text-html" }

// Operations implements catalog.Item.
func (u *URLItem) Operations() []catalog.Operation {
	return []catalog.Operation{openURL{env: u.env}, inspect{env: u.env}}
}

// newPathItem builds the item for a listed path. Desktop files that
// resolve to a usable entry become application items.
func newPathItem(env *Env, path string) (catalog.Item, error) {
	if strings.HasSuffix(path, desktopSuffix) && env != nil && env.Desktop != nil {
		entry, err := env.Desktop.Resolve(path)
		if err != nil {
			return nil, &catalog.InvalidDataError{Value: path, Err: err}
		}
		if entry != nil && entry.Launchable() {
			return NewAppItem(env, entry), nil
		}
	}
	return NewFileItem(env, path, ""), nil
}

// ItemForPath returns the item for an existing file or directory, an
// AppItem for launchable desktop entries.
func ItemForPath(env *Env, path string) (catalog.Item, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(abs); err != nil {
		return nil, err
	}
	return newPathItem(env, abs)
}

// newURIItem builds the item for a bookmarked URI. With mustExist set,
// local files that no longer exist produce no item.
func newURIItem(env *Env, uri, title string, mustExist bool) (catalog.Item, bool, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return nil, false, &catalog.InvalidDataError{Value: uri, Err: err}
	}
	if u.Scheme != "file" {
		return NewURLItem(env, uri, title), true, nil
	}
	if u.Path == "" {
		return nil, false, &catalog.InvalidDataError{Value: uri}
	}
	if mustExist {
		if _, err := os.Stat(u.Path); err != nil {
			return nil, false, nil
		}
	}
	return NewFileItem(env, u.Path, title), true, nil
}

// fileURI returns the file:// URI of an absolute path.
func fileURI(path string) string {
	return (&url.URL{Scheme: "file", Path: path}).String()
}

func displayBase(path string) string {
	base := filepath.Base(path)
	if base == "." || base == "" {
		return path
	}
	return base
}

func baseMime(mt string) string {
	base, _, _ := strings.Cut(mt, ";")
	return strings.TrimSpace(base)
}
