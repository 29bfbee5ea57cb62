package amira

import (
	"io"
	"log/slog"
)

// Option configures parsing.
type Option func(*config)

type config struct {
	formatBytes int
	headerBytes int
	streamBytes int
	logger      *slog.Logger
}

func defaultConfig() *config {
	return &config{
		formatBytes: 50,
		headerBytes: 16384,
		streamBytes: 32768,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func newConfig(opts []Option) *config {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithFormatBytes sets the minimum number of bytes read when sniffing the
// file format. Values below the 50-byte default are ignored.
func WithFormatBytes(n int) Option {
	return func(c *config) {
		if n > 50 {
			c.formatBytes = n
		}
	}
}

// WithHeaderBytes sets the chunk size used while scanning for the header
// boundary.
func WithHeaderBytes(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.headerBytes = n
		}
	}
}

// WithStreamBytes sets the chunk size used while walking data streams.
func WithStreamBytes(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.streamBytes = n
		}
	}
}

// WithLogger directs diagnostic logging to the given logger. By default
// diagnostics are discarded.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}
