// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"image"
	"reflect"
	"strings"
)

const fallbackName = "Object"

type (
	// Describable is implemented by everything shown to the user.
	// Name is never empty; Description may be.
	Describable interface {
		Name() string
		Description() string
	}

	// IconImager is implemented by objects that carry a raw icon image.
	IconImager interface {
		IconImage() image.Image
	}

	// IconNamer is implemented by objects that have a symbolic icon name.
	IconNamer interface {
		IconName() string
	}

	// Icon is a resolved icon reference. At most one field is set.
	Icon struct {
		Image image.Image
		Name  string
	}

	// Described is an embeddable Describable with fixed name and description.
	Described struct {
		name        string
		description string
	}
)

// IsZero reports whether the icon resolved to nothing.
func (i Icon) IsZero() bool { return i.Image == nil && i.Name == "" }

// IconOf resolves the icon of d. A raw image wins over a symbolic name;
// objects with neither resolve to the zero Icon.
func IconOf(d Describable) Icon {
	if im, ok := d.(IconImager); ok {
		if img := im.IconImage(); img != nil {
			return Icon{Image: img}
		}
	}
	if n, ok := d.(IconNamer); ok {
		if name := n.IconName(); name != "" {
			return Icon{Name: name}
		}
	}
	return Icon{}
}

// NewDescribed returns a Described. A blank name falls back to the type
// name of owner, so NewDescribed("", "", (*Bookmark)(nil)) is named "Bookmark".
func NewDescribed(name, description string, owner any) Described {
	if strings.TrimSpace(name) == "" {
		name = TypeName(owner)
	}
	return Described{name: name, description: description}
}

// Name returns the display name.
func (d Described) Name() string {
	if d.name == "" {
		return fallbackName
	}
	return d.name
}

// Description returns the secondary display text.
func (d Described) Description() string { return d.description }

// String returns the display name.
func (d Described) String() string { return d.Name() }

// TypeName returns the bare type name of v, dereferencing pointers.
func TypeName(v any) string {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Name() == "" {
		return fallbackName
	}
	return t.Name()
}
