package worker

import (
	"github.com/okian/squadmaker/pkg/logger"
)

type config struct {
	name   string
	logger logger.Logger
}

func newConfig(opts ...Option) config {
	cfg := config{name: "worker"}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = logger.Get()
	}
	return cfg
}

// Option applies a configuration option to a worker or pool.
type Option func(*config)

// WithName sets the worker name for identification and logging. Pool workers
// are named after it with their index appended.
func WithName(name string) Option {
	return func(c *config) {
		if name != "" {
			c.name = name
		}
	}
}

// WithLogger sets a custom logger for the worker.
func WithLogger(l logger.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}
