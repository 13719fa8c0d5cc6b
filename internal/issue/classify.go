// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"io/fs"
	"os/exec"

	"github.com/trove-launcher/trove/pkg/catalog"
)

// Classify returns the issue that explains err, or nil when none does.
// Catalog errors take precedence over the filesystem errors they may wrap.
func Classify(err error) *Issue {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, catalog.ErrNoContent):
		return Get(NoContentId)
	case errors.Is(err, catalog.ErrNoParent):
		return Get(NoParentId)
	case errors.Is(err, catalog.ErrInvalidLeaf):
		return Get(InvalidLeafId)
	case errors.Is(err, catalog.ErrInvalidData):
		return Get(InvalidDataId)
	case errors.Is(err, exec.ErrNotFound):
		return Get(LaunchFailedId)
	case errors.Is(err, fs.ErrPermission):
		return Get(PermissionDeniedId)
	case errors.Is(err, fs.ErrNotExist):
		return Get(FileNotFoundId)
	default:
		return nil
	}
}
