// SPDX-License-Identifier: MPL-2.0

// Package issue turns failures into actionable messages.
//
// ActionableError carries the failed operation, the resource and hints.
// Issue holds Markdown guidance rendered with glamour, and Classify maps
// catalog and filesystem errors to the matching Issue.
package issue
