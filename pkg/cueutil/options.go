// SPDX-License-Identifier: MPL-2.0

package cueutil

// DefaultMaxFileSize bounds the input accepted by Decode.
const DefaultMaxFileSize int64 = 1 << 20

type (
	decodeOptions struct {
		maxFileSize int64
		concrete    bool
		filename    string
	}

	// Option configures Decode.
	Option func(*decodeOptions)
)

func defaultOptions() decodeOptions {
	return decodeOptions{maxFileSize: DefaultMaxFileSize, concrete: true, filename: "<input>"}
}

// WithMaxFileSize overrides DefaultMaxFileSize.
func WithMaxFileSize(size int64) Option {
	return func(o *decodeOptions) { o.maxFileSize = size }
}

// WithConcrete sets whether every value must be concrete after
// unification. Files whose fields are all optional pass false.
func WithConcrete(concrete bool) Option {
	return func(o *decodeOptions) { o.concrete = concrete }
}

// WithFilename names the input in positions and errors.
func WithFilename(name string) Option {
	return func(o *decodeOptions) {
		if name != "" {
			o.filename = name
		}
	}
}
