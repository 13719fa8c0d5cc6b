// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pelletier/go-toml/v2"

	"github.com/trove-launcher/trove/internal/icons"
	"github.com/trove-launcher/trove/pkg/catalog"
)

// Output formats.
const (
	formatText outputFormat = "text"
	formatJSON outputFormat = "json"
	formatTOML outputFormat = "toml"

	// iconSize is the pixel size looked up for icon files.
	iconSize = 48
)

type (
	// outputFormat selects how items are written.
	outputFormat string

	// itemView is the serialized form of an item.
	itemView struct {
		Name        string          `json:"name" toml:"name"`
		Description string          `json:"description,omitempty" toml:"description,omitempty"`
		Kind        string          `json:"kind" toml:"kind"`
		Icon        string          `json:"icon,omitempty" toml:"icon,omitempty"`
		IconFile    string          `json:"icon_file,omitempty" toml:"icon_file,omitempty"`
		HasContent  bool            `json:"has_content" toml:"has_content"`
		Operations  []operationView `json:"operations,omitempty" toml:"operations,omitempty"`
	}

	// operationView is the serialized form of an operation.
	operationView struct {
		Index       int    `json:"index" toml:"index"`
		Name        string `json:"name" toml:"name"`
		Description string `json:"description,omitempty" toml:"description,omitempty"`
		Factory     bool   `json:"factory" toml:"factory"`
	}

	// listing is the serialized form of an enumeration.
	listing struct {
		Items  []itemView `json:"items" toml:"items"`
		Errors []string   `json:"errors,omitempty" toml:"errors,omitempty"`
	}
)

// parseFormat validates s against the allowed formats.
func parseFormat(s string, allowed ...outputFormat) (outputFormat, error) {
	f := outputFormat(strings.ToLower(s))
	if slices.Contains(allowed, f) {
		return f, nil
	}
	names := make([]string, len(allowed))
	for i, a := range allowed {
		names[i] = string(a)
	}
	return "", usageError("invalid format %q (must be one of: %s)", s, strings.Join(names, ", "))
}

// newItemView describes item. Operations are only included when withOps is set.
func newItemView(item catalog.Item, resolver *icons.Resolver, withOps bool) itemView {
	v := itemView{
		Name:        item.Name(),
		Description: item.Description(),
		Kind:        catalog.TypeName(item),
		Icon:        catalog.IconOf(item).Name,
		HasContent:  item.HasContent(),
	}
	if resolver != nil {
		if file, ok := resolver.IconFor(item, iconSize); ok {
			v.IconFile = file
		}
	}
	if withOps {
		for i, op := range item.Operations() {
			v.Operations = append(v.Operations, operationView{
				Index:       i,
				Name:        op.Name(),
				Description: op.Description(),
				Factory:     op.IsFactory(),
			})
		}
	}
	return v
}

// writeItems writes an enumeration result in the given format. In text
// mode the item errors go to errw as warnings.
func writeItems(w, errw io.Writer, items []catalog.Item, errs []error, format outputFormat) error {
	if format != formatText {
		out := listing{Items: make([]itemView, 0, len(items))}
		for _, item := range items {
			out.Items = append(out.Items, newItemView(item, nil, false))
		}
		for _, err := range errs {
			out.Errors = append(out.Errors, err.Error())
		}
		return encode(w, out, format)
	}

	for _, err := range errs {
		fmt.Fprintln(errw, WarningStyle.Render("skipped: ")+err.Error())
	}
	if len(items) == 0 {
		fmt.Fprintln(w, SubtitleStyle.Render(catalog.NewPlaceholder().Name()))
		return nil
	}

	width := 0
	for _, item := range items {
		width = max(width, lipgloss.Width(item.Name()))
	}
	nameStyle := CmdStyle.Width(width + 2)
	for _, item := range items {
		line := nameStyle.Render(item.Name())
		if desc := item.Description(); desc != "" {
			line += SubtitleStyle.Render(desc)
		}
		fmt.Fprintln(w, strings.TrimRight(line, " "))
	}
	return nil
}

// encode writes v as JSON or TOML.
func encode(w io.Writer, v any, format outputFormat) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatTOML:
		return toml.NewEncoder(w).Encode(v)
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}
