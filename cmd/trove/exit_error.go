// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io/fs"

	trove "github.com/trove-launcher/trove/internal/app"
	"github.com/trove-launcher/trove/pkg/catalog"
	"github.com/trove-launcher/trove/pkg/types"
)

// ExitError signals a non-zero exit code without forcing os.Exit in RunE handlers.
type ExitError struct {
	Code types.ExitCode
	Err  error
}

// Error returns the error message for ExitError.
func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

// Unwrap returns the underlying error, if any.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// exitCodeFor maps err to the process exit code.
func exitCodeFor(err error) types.ExitCode {
	var exitErr *ExitError
	switch {
	case err == nil:
		return types.ExitOK
	case errors.As(err, &exitErr):
		return exitErr.Code
	case errors.Is(err, trove.ErrCatalogNotFound), errors.Is(err, fs.ErrNotExist):
		return types.ExitNotFound
	case errors.Is(err, trove.ErrAmbiguousCatalog):
		return types.ExitUsage
	case errors.Is(err, catalog.ErrNoContent),
		errors.Is(err, catalog.ErrNoParent),
		errors.Is(err, catalog.ErrInvalidLeaf):
		return types.ExitUnavailable
	default:
		return types.ExitFailure
	}
}

// usageError wraps err with ExitUsage.
func usageError(format string, args ...any) error {
	return &ExitError{Code: types.ExitUsage, Err: fmt.Errorf(format, args...)}
}
