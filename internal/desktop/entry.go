// SPDX-License-Identifier: MPL-2.0

package desktop

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/ini.v1"

	"github.com/trove-launcher/trove/pkg/sources"
)

const entrySection = "Desktop Entry"

// Resolver parses desktop entry files, picking localized names for a locale.
type Resolver struct {
	locales []string
}

var _ sources.DesktopResolver = (*Resolver)(nil)

// NewResolver returns a resolver for locale, a POSIX locale name such as
// "de_DE.UTF-8". An empty locale resolves untranslated names only.
func NewResolver(locale string) *Resolver {
	return &Resolver{locales: localeKeys(locale)}
}

// LocaleFromEnv returns the message locale of the environment.
func LocaleFromEnv() string {
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return ""
}

// Resolve parses the desktop entry at path. Files without a
// "[Desktop Entry]" group or without a name resolve to nil.
func (r *Resolver) Resolve(path string) (*sources.DesktopEntry, error) {
	f, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment:     true,
		KeyValueDelimiters:      "=",
		SkipUnrecognizableLines: true,
	}, path)
	if err != nil {
		return nil, fmt.Errorf("parse desktop entry %s: %w", path, err)
	}
	sec, err := f.GetSection(entrySection)
	if err != nil {
		return nil, nil
	}
	name := sec.Key("Name").String()
	if name == "" {
		return nil, nil
	}

	entry := &sources.DesktopEntry{
		Path:          path,
		Type:          sec.Key("Type").String(),
		Name:          name,
		LocalizedName: r.localized(sec, "Name"),
		Comment:       r.localized(sec, "Comment"),
		Icon:          sec.Key("Icon").String(),
		Exec:          sec.Key("Exec").String(),
		Terminal:      sec.Key("Terminal").MustBool(false),
		Hidden:        sec.Key("Hidden").MustBool(false),
		NoDisplay:     sec.Key("NoDisplay").MustBool(false),
	}
	for _, mt := range strings.Split(sec.Key("MimeType").String(), ";") {
		if mt = strings.TrimSpace(mt); mt != "" {
			entry.MimeTypes = append(entry.MimeTypes, mt)
		}
	}
	return entry, nil
}

// localized returns key[locale] for the most specific matching locale,
// falling back to the untranslated key.
func (r *Resolver) localized(sec *ini.Section, key string) string {
	for _, loc := range r.locales {
		if v := sec.Key(key + "[" + loc + "]").String(); v != "" {
			return v
		}
	}
	return sec.Key(key).String()
}

// localeKeys expands "lang_COUNTRY.ENCODING@MODIFIER" into the lookup
// order of the desktop entry specification.
func localeKeys(locale string) []string {
	if locale == "" || locale == "C" || locale == "POSIX" {
		return nil
	}
	rest, modifier, _ := strings.Cut(locale, "@")
	rest, _, _ = strings.Cut(rest, ".")
	lang, country, _ := strings.Cut(rest, "_")

	var keys []string
	if country != "" && modifier != "" {
		keys = append(keys, lang+"_"+country+"@"+modifier)
	}
	if country != "" {
		keys = append(keys, lang+"_"+country)
	}
	if modifier != "" {
		keys = append(keys, lang+"@"+modifier)
	}
	return append(keys, lang)
}
