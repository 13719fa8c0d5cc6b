// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"slices"
	"strings"
	"sync"
	"testing"
)

const testSchema = `
#Source: {
	name:         string
	depth:        int & >=0 & <=4
	enabled:      bool
	description?: string
}

#Partial: {
	name?:  string
	depth?: int & >=0
}
`

type testSource struct {
	Name        string `json:"name"`
	Depth       int    `json:"depth"`
	Enabled     bool   `json:"enabled"`
	Description string `json:"description,omitempty"`
}

func TestCompile(t *testing.T) {
	t.Parallel()

	s, err := Compile(testSchema, "#Source")
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if s.Path() != "#Source" || !s.Definition().Exists() {
		t.Errorf("schema = %q, exists %v", s.Path(), s.Definition().Exists())
	}

	if _, err := Compile(testSchema, "#Missing"); err == nil || !strings.Contains(err.Error(), "#Missing") {
		t.Errorf("Compile(#Missing) error = %v", err)
	}
	if _, err := Compile("#X: {", "#X"); err == nil {
		t.Error("Compile() accepted an invalid schema")
	}
}

func TestMustCompilePanics(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("MustCompile() did not panic")
		}
	}()
	MustCompile(testSchema, "#Missing")
}

func TestDecode(t *testing.T) {
	t.Parallel()

	schema := MustCompile(testSchema, "#Source")

	tests := []struct {
		name      string
		data      string
		want      testSource
		wantErr   bool
		wantPaths []string
	}{
		{
			name: "valid",
			data: "name: \"documents\"\ndepth: 2\nenabled: true\ndescription: \"My documents\"\n",
			want: testSource{Name: "documents", Depth: 2, Enabled: true, Description: "My documents"},
		},
		{
			name: "optional field omitted",
			data: "name: \"home\"\ndepth: 0\nenabled: false\n",
			want: testSource{Name: "home"},
		},
		{
			name:      "constraint violation",
			data:      "name: \"deep\"\ndepth: 9\nenabled: true\n",
			wantErr:   true,
			wantPaths: []string{"depth"},
		},
		{name: "unknown field", data: "name: \"x\"\ndepth: 1\nenabled: true\ncolor: \"red\"\n", wantErr: true},
		{name: "missing required fields", data: `name: "x"`, wantErr: true},
		{name: "syntax error", data: `name: "unterminated`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Decode[testSource](schema, []byte(tt.data), WithFilename("sources.cue"))
			if tt.wantErr {
				var ve *ValidationError
				if !errors.As(err, &ve) {
					t.Fatalf("Decode() error = %v, want a ValidationError", err)
				}
				if ve.File != "sources.cue" || !strings.HasPrefix(err.Error(), "sources.cue: ") {
					t.Errorf("error should name the file, got %v", err)
				}
				for _, p := range tt.wantPaths {
					if !slices.Contains(ve.Paths(), p) {
						t.Errorf("Paths() = %v, want %q", ve.Paths(), p)
					}
				}
				return
			}
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Decode() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDecode_NonConcrete(t *testing.T) {
	t.Parallel()

	schema := MustCompile(testSchema, "#Partial")
	got, err := Decode[map[string]any](schema, []byte(`depth: 3`), WithConcrete(false))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if _, ok := got["depth"]; !ok || len(got) != 1 {
		t.Errorf("Decode() = %v, want only depth", got)
	}
}

func TestDecode_SizeLimit(t *testing.T) {
	t.Parallel()

	schema := MustCompile(testSchema, "#Source")
	_, err := Decode[testSource](schema, []byte(strings.Repeat(" ", 64)), WithMaxFileSize(16))
	var se *SizeError
	if !errors.As(err, &se) {
		t.Fatalf("Decode() error = %v, want a SizeError", err)
	}
	if se.File != "<input>" || se.Size != 64 || se.Limit != 16 {
		t.Errorf("SizeError = %+v", se)
	}
}

func TestDecode_Concurrent(t *testing.T) {
	t.Parallel()

	schema := MustCompile(testSchema, "#Source")
	var wg sync.WaitGroup
	for i := range 8 {
		wg.Go(func() {
			data := []byte("name: \"n\"\nenabled: true\ndepth: " + string(rune('0'+i%5)) + "\n")
			got, err := Decode[testSource](schema, data)
			if err != nil {
				t.Errorf("Decode() error = %v", err)
				return
			}
			if got.Depth != i%5 {
				t.Errorf("Depth = %d, want %d", got.Depth, i%5)
			}
		})
	}
	wg.Wait()
}
