package zip

import "log/slog"

// Option configures Build and ZipWriter.
type Option func(*config)

type config struct {
	logger      *slog.Logger
	concurrency int
	limits      limits
}

// limits are the field widths of the classic format. Tests shrink them.
type limits struct {
	entries uint64
	name    uint64
	size    uint64
	offset  uint64
}

var formatLimits = limits{
	entries: maxUint16,
	name:    maxUint16,
	size:    maxUint32,
	offset:  maxUint32,
}

// WithLogger sets the logger for debug output. By default nothing is logged.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithConcurrency computes entry checksums and local headers on up to n
// goroutines. Values below 2 keep Build sequential. ZipWriter ignores it.
func WithConcurrency(n int) Option {
	return func(c *config) {
		c.concurrency = n
	}
}

func withLimits(l limits) Option {
	return func(c *config) {
		c.limits = l
	}
}

func newConfig(opts []Option) config {
	cfg := config{concurrency: 1, limits: formatLimits}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

func (c *config) log() *slog.Logger {
	if c.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.logger
}
