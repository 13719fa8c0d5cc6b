// SPDX-License-Identifier: MPL-2.0

package sources

import (
	"context"
	"errors"
	"testing"

	"github.com/trove-launcher/trove/pkg/catalog"
)

func TestProviders_MissingCollaborators(t *testing.T) {
	t.Parallel()

	tree, err := NewFileTree(nil, []string{"/home/u/Documents"}, 1)
	if err != nil {
		t.Fatalf("NewFileTree() error = %v", err)
	}

	tests := []struct {
		name     string
		provider catalog.Provider
		want     error
	}{
		{"file tree without env", tree, ErrNoLister},
		{"directory without lister", NewDirectory(&Env{}, "/home/u"), ErrNoLister},
		{"applications without lister", NewApplications(&Env{Desktop: fakeResolver{}}, []string{"/usr/share"}), ErrNoLister},
		{"applications without resolver", NewApplications(&Env{Lister: &fakeLister{}}, []string{"/usr/share"}), ErrNoResolver},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			items, errs := catalog.Collect(tt.provider.Items(context.Background()))
			if len(items) != 0 || len(errs) != 1 {
				t.Fatalf("got %d items and %d errors, want one error", len(items), len(errs))
			}
			if !errors.Is(errs[0], catalog.ErrInvalidData) || !errors.Is(errs[0], tt.want) {
				t.Errorf("error = %v, want ErrInvalidData wrapping %v", errs[0], tt.want)
			}
		})
	}
}
