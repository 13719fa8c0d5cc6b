// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// Schema is a compiled CUE definition. It is safe for concurrent use.
type Schema struct {
	mu   sync.Mutex
	ctx  *cue.Context
	def  cue.Value
	path string
}

// Compile compiles src and selects the definition at path, for example
// "#Config".
func Compile(src, path string) (*Schema, error) {
	ctx := cuecontext.New()
	root := ctx.CompileString(src)
	if err := root.Err(); err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	def := root.LookupPath(cue.ParsePath(path))
	if err := def.Err(); err != nil {
		return nil, fmt.Errorf("schema definition %s not found: %w", path, err)
	}
	return &Schema{ctx: ctx, def: def, path: path}, nil
}

// MustCompile is Compile for embedded schemas; it panics on error.
func MustCompile(src, path string) *Schema {
	s, err := Compile(src, path)
	if err != nil {
		panic(err)
	}
	return s
}

// Path returns the selected definition path.
func (s *Schema) Path() string { return s.path }

// Definition returns the selected definition.
func (s *Schema) Definition() cue.Value { return s.def }

// Decode validates data against s and decodes it into a T. Oversized
// input is rejected before it is compiled.
func Decode[T any](s *Schema, data []byte, opts ...Option) (T, error) {
	var out T
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if int64(len(data)) > o.maxFileSize {
		return out, &SizeError{File: o.filename, Size: int64(len(data)), Limit: o.maxFileSize}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user := s.ctx.CompileBytes(data, cue.Filename(o.filename))
	if err := user.Err(); err != nil {
		return out, newValidationError(o.filename, err)
	}
	unified := s.def.Unify(user)
	if err := unified.Validate(cue.Concrete(o.concrete)); err != nil {
		return out, newValidationError(o.filename, err)
	}
	if err := unified.Decode(&out); err != nil {
		return out, newValidationError(o.filename, err)
	}
	return out, nil
}
