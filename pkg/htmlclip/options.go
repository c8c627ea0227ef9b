package htmlclip

import (
	"bytes"

	"github.com/rs/zerolog"
)

// Buffers hands out the scratch buffers descriptors are built in.
// *pool.ObjectPool[*bytes.Buffer] satisfies it.
type Buffers interface {
	Acquire() *bytes.Buffer
	Release(*bytes.Buffer)
}

type Options struct {
	Logger    zerolog.Logger
	SourceURL string
	Buffers   Buffers
}

type Option func(*Options)

var DefaultOptions = Options{
	Logger: zerolog.Nop(),
}

func NewOptions(opts ...Option) Options {
	options := DefaultOptions

	for _, opt := range opts {
		opt(&options)
	}

	return options
}

func WithLogger(logger zerolog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithSourceURL records where the fragment came from in the descriptor.
func WithSourceURL(url string) Option {
	return func(o *Options) {
		o.SourceURL = url
	}
}

func WithBuffers(b Buffers) Option {
	return func(o *Options) {
		o.Buffers = b
	}
}
