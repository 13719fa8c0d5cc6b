// SPDX-License-Identifier: MPL-2.0

// Package cueutil validates user CUE files against an embedded schema.
//
// A Schema is compiled once and selects one root definition. Decode unifies
// user data with that definition, validates it and decodes the result.
// Failures are reported as a *ValidationError listing each offending field
// by its JSON-style path.
//
//	//go:embed config_schema.cue
//	var src string
//
//	schema := cueutil.MustCompile(src, "#Config")
//	values, err := cueutil.Decode[map[string]any](schema, data,
//	    cueutil.WithFilename(path),
//	    cueutil.WithConcrete(false),
//	)
package cueutil
