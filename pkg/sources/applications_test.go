// SPDX-License-Identifier: MPL-2.0

package sources

import (
	"context"
	"slices"
	"testing"

	"github.com/trove-launcher/trove/pkg/catalog"
)

func TestApplications(t *testing.T) {
	t.Parallel()

	env := &Env{
		Lister: &fakeLister{entries: map[string][]string{
			"/home/u/.local/share/applications": {
				"/home/u/.local/share/applications/editor.desktop",
			},
			"/usr/share/applications": {
				"/usr/share/applications/editor.desktop",
				"/usr/share/applications/hidden.desktop",
				"/usr/share/applications/link.desktop",
				"/usr/share/applications/mimeinfo.cache",
				"/usr/share/applications/viewer.desktop",
			},
		}},
		Desktop: fakeResolver{
			"/home/u/.local/share/applications/editor.desktop": app("/home/u/.local/share/applications/editor.desktop", "My Editor"),
			"/usr/share/applications/editor.desktop":           app("/usr/share/applications/editor.desktop", "Editor"),
			"/usr/share/applications/hidden.desktop":           {Type: "Application", Name: "Hidden", Hidden: true},
			"/usr/share/applications/link.desktop":             {Type: "Link", Name: "Link"},
			"/usr/share/applications/viewer.desktop":           app("/usr/share/applications/viewer.desktop", "Viewer"),
		},
	}
	apps := NewApplications(env, []string{"/home/u/.local/share", "/missing", "/usr/share"})

	items, errs := catalog.Collect(apps.Items(context.Background()))
	if len(errs) != 0 {
		t.Fatalf("errs = %v", errs)
	}
	var got []string
	for _, item := range items {
		got = append(got, item.Name())
	}
	if want := []string{"My Editor", "Viewer"}; !slices.Equal(got, want) {
		t.Errorf("items = %v, want %v", got, want)
	}
	if apps.Name() != "All Applications" || catalog.IconOf(apps).Name != "gnome-applications" {
		t.Errorf("Name(), icon = %q, %q", apps.Name(), catalog.IconOf(apps).Name)
	}
}

func TestApplications_IdentityIsOrdered(t *testing.T) {
	t.Parallel()

	a := NewApplications(nil, []string{"/a", "/b"})
	b := NewApplications(nil, []string{"/b", "/a"})
	if catalog.Equal(a, b) {
		t.Error("data directory precedence does not affect identity")
	}
}
