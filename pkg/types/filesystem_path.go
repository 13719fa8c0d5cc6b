// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidFilesystemPath is wrapped by every InvalidFilesystemPathError.
var ErrInvalidFilesystemPath = errors.New("invalid filesystem path")

type (
	// FilesystemPath is a path as written in the configuration or on the
	// command line. It may be relative or start with "~"; it is expanded
	// only when used.
	FilesystemPath string

	// InvalidFilesystemPathError rejects a blank path or one containing a
	// NUL byte, which no filesystem accepts.
	InvalidFilesystemPathError struct {
		Value  FilesystemPath
		Reason string
	}
)

func (p FilesystemPath) String() string { return string(p) }

// HomeRelative reports whether p starts with "~" and so needs expanding.
func (p FilesystemPath) HomeRelative() bool {
	return p == "~" || strings.HasPrefix(string(p), "~/")
}

// IsValid reports whether p can name a file.
func (p FilesystemPath) IsValid() (bool, []error) {
	switch {
	case strings.TrimSpace(string(p)) == "":
		return false, []error{&InvalidFilesystemPathError{Value: p, Reason: "must be non-empty"}}
	case strings.ContainsRune(string(p), 0):
		return false, []error{&InvalidFilesystemPathError{Value: p, Reason: "contains a NUL byte"}}
	}
	return true, nil
}

func (e *InvalidFilesystemPathError) Error() string {
	return fmt.Sprintf("invalid filesystem path %q: %s", e.Value, e.Reason)
}

func (e *InvalidFilesystemPathError) Unwrap() error { return ErrInvalidFilesystemPath }
