package curve

import "github.com/zeusync/curve/internal/core/observability/log"

type options struct {
	cacheSize int
	logger    log.Log
	name      string
}

// Option configures a Store and the curves built on top of it.
type Option func(*options)

// WithCacheSize sets the number of position cache slots. It must be a power of two.
func WithCacheSize(size int) Option {
	return func(o *options) {
		o.cacheSize = size
	}
}

// WithLogger attaches a logger. Stores only log at debug level, off the query path.
func WithLogger(logger log.Log) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithName labels the store in log output, usually with the attribute it tracks.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

func buildOptions(opts []Option) options {
	o := options{
		cacheSize: DefaultCacheSize,
		logger:    log.NewNop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
