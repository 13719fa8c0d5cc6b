// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrNoParent is returned when Parent is requested from a provider that has none.
	ErrNoParent = errors.New("provider has no parent")

	// ErrNoContent is returned when the content provider is requested from a leaf item.
	ErrNoContent = errors.New("item has no content")

	// ErrInvalidLeaf is returned when an operation is applied to an item it cannot handle.
	ErrInvalidLeaf = errors.New("invalid item for operation")

	// ErrInvalidData is returned when an item or provider is built from malformed data.
	ErrInvalidData = errors.New("invalid data")

	// ErrContract is returned when an operation's outcome does not match its factory flag.
	ErrContract = errors.New("operation contract violated")
)

type (
	// NoParentError reports a Parent request on a provider without a parent.
	NoParentError struct {
		Provider string
	}

	// NoContentError reports a content request on an item without content.
	NoContentError struct {
		Item string
	}

	// InvalidLeafError reports an operation applied to an item it does not support.
	InvalidLeafError struct {
		Operation string
		Item      string
		Reason    string
	}

	// InvalidDataError reports malformed input found while building items.
	// Err carries the underlying cause when there is one.
	InvalidDataError struct {
		Value string
		Err   error
	}

	// ContractError reports an operation whose outcome kind disagrees with IsFactory.
	ContractError struct {
		Operation string
		Reason    string
	}

	// ChildError reports a failure to enumerate one child of a composite provider.
	ChildError struct {
		Provider string
		Err      error
	}
)

// Error implements the error interface.
func (e *NoParentError) Error() string {
	return fmt.Sprintf("%q has no parent", e.Provider)
}

// Unwrap returns ErrNoParent for errors.Is() compatibility.
func (e *NoParentError) Unwrap() error { return ErrNoParent }

// Error implements the error interface.
func (e *NoContentError) Error() string {
	return fmt.Sprintf("%q has no content", e.Item)
}

// Unwrap returns ErrNoContent for errors.Is() compatibility.
func (e *NoContentError) Unwrap() error { return ErrNoContent }

// Error implements the error interface.
func (e *InvalidLeafError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("cannot apply %q to %q", e.Operation, e.Item)
	}
	return fmt.Sprintf("cannot apply %q to %q: %s", e.Operation, e.Item, e.Reason)
}

// Unwrap returns ErrInvalidLeaf for errors.Is() compatibility.
func (e *InvalidLeafError) Unwrap() error { return ErrInvalidLeaf }

// Error implements the error interface.
func (e *InvalidDataError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("invalid data %q", e.Value)
	}
	return fmt.Sprintf("invalid data %q: %v", e.Value, e.Err)
}

// Unwrap returns ErrInvalidData and the underlying cause, if any.
func (e *InvalidDataError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrInvalidData}
	}
	return []error{ErrInvalidData, e.Err}
}

// Error implements the error interface.
func (e *ContractError) Error() string {
	return fmt.Sprintf("operation %q: %s", e.Operation, e.Reason)
}

// Unwrap returns ErrContract for errors.Is() compatibility.
func (e *ContractError) Unwrap() error { return ErrContract }

// Error implements the error interface.
func (e *ChildError) Error() string {
	return fmt.Sprintf("catalog %q: %v", e.Provider, e.Err)
}

// Unwrap returns the underlying enumeration error.
func (e *ChildError) Unwrap() error { return e.Err }
