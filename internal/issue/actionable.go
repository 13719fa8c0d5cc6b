// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"strings"
)

type (
	// ActionableError is a user-facing error naming the failed operation,
	// the resource involved and hints for fixing it.
	//
	//	err := issue.NewErrorContext().
	//		WithOperation("load configuration").
	//		WithResource("~/.config/trove/config.cue").
	//		WithSuggestion("Run 'trove config init' to create one").
	//		WithIssue(issue.ConfigLoadFailedId).
	//		Wrap(originalErr).
	//		BuildError()
	ActionableError struct {
		// Operation is a verb phrase such as "load configuration".
		Operation string
		// Resource names the file, item or catalog involved.
		Resource string
		// Suggestions are shown as a bulleted list by Format.
		Suggestions []string
		// Issue selects the long-form guide. Zero defers to Classify.
		Issue Id
		// Cause is the underlying error.
		Cause error
	}

	// ErrorContext builds an ActionableError incrementally. A context may
	// be reused; every Build returns an independent error.
	ErrorContext struct {
		err ActionableError
	}
)

// NewErrorContext returns an empty builder.
func NewErrorContext() *ErrorContext {
	return &ErrorContext{}
}

// WrapWithContext wraps err with an operation and a resource. It returns
// nil for a nil err.
func WrapWithContext(err error, operation, resource string) *ActionableError {
	if err == nil {
		return nil
	}
	return &ActionableError{Operation: operation, Resource: resource, Cause: err}
}

// Error renders "failed to <operation>[: <resource>][: <cause>]".
func (e *ActionableError) Error() string {
	parts := []string{"failed to " + e.Operation}
	if e.Resource != "" {
		parts = append(parts, e.Resource)
	}
	if e.Cause != nil {
		parts = append(parts, e.Cause.Error())
	}
	return strings.Join(parts, ": ")
}

// Unwrap returns the cause.
func (e *ActionableError) Unwrap() error { return e.Cause }

// HasSuggestions reports whether Format will list any hints.
func (e *ActionableError) HasSuggestions() bool { return len(e.Suggestions) > 0 }

// Guide returns the issue explaining e: the one set with WithIssue, or
// else the one Classify finds for the cause. It may be nil.
func (e *ActionableError) Guide() *Issue {
	if e.Issue != 0 {
		if iss := Get(e.Issue); iss != nil {
			return iss
		}
	}
	return Classify(e.Cause)
}

// Format renders Error followed by the suggestions as bullets. Verbose
// output appends the numbered chain of wrapped causes.
func (e *ActionableError) Format(verbose bool) string {
	var b strings.Builder
	b.WriteString(e.Error())
	if e.HasSuggestions() {
		b.WriteString("\n")
		for _, s := range e.Suggestions {
			fmt.Fprintf(&b, "\n  • %s", s)
		}
	}
	if !verbose || e.Cause == nil {
		return b.String()
	}
	b.WriteString("\n\nError chain:")
	for i, err := 1, e.Cause; err != nil; i, err = i+1, errors.Unwrap(err) {
		fmt.Fprintf(&b, "\n  %d. %s", i, err)
	}
	return b.String()
}

// WithOperation sets the failed operation, a verb phrase.
func (c *ErrorContext) WithOperation(op string) *ErrorContext {
	c.err.Operation = op
	return c
}

// WithResource sets the file, item or catalog involved.
func (c *ErrorContext) WithResource(res string) *ErrorContext {
	c.err.Resource = res
	return c
}

// WithSuggestion appends one hint.
func (c *ErrorContext) WithSuggestion(sug string) *ErrorContext {
	c.err.Suggestions = append(c.err.Suggestions, sug)
	return c
}

// WithSuggestions appends several hints.
func (c *ErrorContext) WithSuggestions(sugs ...string) *ErrorContext {
	c.err.Suggestions = append(c.err.Suggestions, sugs...)
	return c
}

// WithIssue selects the long-form guide shown for the error.
func (c *ErrorContext) WithIssue(id Id) *ErrorContext {
	c.err.Issue = id
	return c
}

// Wrap sets the cause.
func (c *ErrorContext) Wrap(err error) *ErrorContext {
	c.err.Cause = err
	return c
}

// Build returns the error, or nil when no operation was set.
func (c *ErrorContext) Build() *ActionableError {
	if c.err.Operation == "" {
		return nil
	}
	ae := c.err
	ae.Suggestions = append([]string(nil), c.err.Suggestions...)
	return &ae
}

// BuildError is Build typed as error, so that a missing operation yields
// a true nil interface.
func (c *ErrorContext) BuildError() error {
	if ae := c.Build(); ae != nil {
		return ae
	}
	return nil
}
