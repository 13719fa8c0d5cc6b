// SPDX-License-Identifier: MPL-2.0

// Package icons resolves icon names to files of the installed icon themes.
package icons

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/trove-launcher/trove/pkg/catalog"
)

// FallbackTheme is searched after the configured theme.
const FallbackTheme = "hicolor"

// Resolver looks up icons in "<data dir>/icons/<theme>/<size>x<size>/<context>/"
// and "<data dir>/pixmaps/". Only PNG icons are decoded.
type Resolver struct {
	dataDirs []string
	themes   []string
}

// NewResolver returns a resolver over dataDirs preferring theme.
func NewResolver(dataDirs []string, theme string) *Resolver {
	themes := []string{FallbackTheme}
	if theme != "" && theme != FallbackTheme {
		themes = []string{theme, FallbackTheme}
	}
	return &Resolver{dataDirs: slices.Clone(dataDirs), themes: themes}
}

// Lookup returns the file of the icon name at size, preferring the
// requested size over any other. Absolute names are used as is.
func (r *Resolver) Lookup(name string, size int) (string, bool) {
	if name == "" {
		return "", false
	}
	if filepath.IsAbs(name) {
		return name, fileExists(name)
	}
	file := name
	if filepath.Ext(name) == "" {
		file += ".png"
	}

	for _, theme := range r.themes {
		for _, dir := range r.dataDirs {
			if p, ok := findSized(filepath.Join(dir, "icons", theme), file, size); ok {
				return p, true
			}
		}
	}
	for _, dir := range r.dataDirs {
		p := filepath.Join(dir, "pixmaps", file)
		if fileExists(p) {
			return p, true
		}
	}
	return "", false
}

// Load decodes the icon name at size.
func (r *Resolver) Load(name string, size int) (image.Image, error) {
	p, ok := r.Lookup(name, size)
	if !ok {
		return nil, fmt.Errorf("icon %q not found", name)
	}
	return decode(p)
}

// IconFor returns the file of d's symbolic icon. Objects carrying a raw
// image or no icon at all do not resolve.
func (r *Resolver) IconFor(d catalog.Describable, size int) (string, bool) {
	icon := catalog.IconOf(d)
	if icon.Name == "" {
		return "", false
	}
	return r.Lookup(icon.Name, size)
}

func findSized(themeDir, file string, size int) (string, bool) {
	exact := filepath.Join(themeDir, fmt.Sprintf("%dx%d", size, size))
	if p, ok := findInContexts(exact, file); ok {
		return p, true
	}
	entries, err := os.ReadDir(themeDir)
	if err != nil {
		return "", false
	}
	for _, e := range entries {
		if !e.IsDir() || !strings.Contains(e.Name(), "x") {
			continue
		}
		if p, ok := findInContexts(filepath.Join(themeDir, e.Name()), file); ok {
			return p, true
		}
	}
	return "", false
}

func findInContexts(sizeDir, file string) (string, bool) {
	contexts, err := os.ReadDir(sizeDir)
	if err != nil {
		return "", false
	}
	for _, c := range contexts {
		p := filepath.Join(sizeDir, c.Name(), file)
		if fileExists(p) {
			return p, true
		}
	}
	return "", false
}

func decode(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode icon %s: %w", path, err)
	}
	return img, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
