package logger

import "io"

type options struct {
	out  io.Writer
	file string
	json bool
}

// Option configures Init.
type Option func(*options)

// WithOutput replaces stdout as the primary destination.
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		if w != nil {
			o.out = w
		}
	}
}

// WithFile additionally appends every record to the named file.
func WithFile(path string) Option {
	return func(o *options) { o.file = path }
}

// WithJSON switches the output to JSON records.
func WithJSON(enabled bool) Option {
	return func(o *options) { o.json = enabled }
}
