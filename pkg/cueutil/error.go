// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"
	"strings"

	"cuelang.org/go/cue/errors"
)

type (
	// Problem is one rejected field.
	Problem struct {
		// Path locates the field, for example "trees[0].depth". It is empty
		// for syntax errors.
		Path    string
		Message string
	}

	// ValidationError reports every problem CUE found in one file.
	ValidationError struct {
		File     string
		Problems []Problem
		cause    error
	}

	// SizeError rejects input larger than the configured limit.
	SizeError struct {
		File  string
		Size  int64
		Limit int64
	}
)

func newValidationError(file string, err error) *ValidationError {
	ve := &ValidationError{File: file, cause: err}
	for _, e := range errors.Errors(err) {
		path := fieldPath(errors.Path(e))
		msg := e.Error()
		if path != "" {
			// CUE may prefix the message with the path it already reports.
			msg = strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(msg, path), ":"))
		}
		ve.Problems = append(ve.Problems, Problem{Path: path, Message: msg})
	}
	if len(ve.Problems) == 0 {
		ve.Problems = []Problem{{Message: err.Error()}}
	}
	return ve
}

func (p Problem) String() string {
	if p.Path == "" {
		return p.Message
	}
	return p.Path + ": " + p.Message
}

func (e *ValidationError) Error() string {
	if len(e.Problems) == 1 {
		return fmt.Sprintf("%s: %s", e.File, e.Problems[0])
	}
	lines := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		lines[i] = p.String()
	}
	return fmt.Sprintf("%s: %d problems:\n  %s", e.File, len(lines), strings.Join(lines, "\n  "))
}

// Unwrap returns the underlying CUE error.
func (e *ValidationError) Unwrap() error { return e.cause }

// Paths returns the paths of the rejected fields, skipping syntax errors.
func (e *ValidationError) Paths() []string {
	var out []string
	for _, p := range e.Problems {
		if p.Path != "" {
			out = append(out, p.Path)
		}
	}
	return out
}

func (e *SizeError) Error() string {
	return fmt.Sprintf("%s: %d bytes exceeds the %d byte limit", e.File, e.Size, e.Limit)
}

// fieldPath joins CUE path selectors, writing list indices in brackets:
// ["trees", "0", "depth"] becomes "trees[0].depth".
func fieldPath(sels []string) string {
	var b strings.Builder
	for i, sel := range sels {
		switch {
		case i > 0 && isIndex(sel):
			b.WriteString("[" + sel + "]")
		case i > 0:
			b.WriteString("." + sel)
		default:
			b.WriteString(sel)
		}
	}
	return b.String()
}

func isIndex(sel string) bool {
	if sel == "" {
		return false
	}
	for _, c := range sel {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
