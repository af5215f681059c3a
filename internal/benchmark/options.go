package benchmark

import (
	"github.com/okian/squadmaker/internal/domain/balance"
	"github.com/okian/squadmaker/pkg/logger"
)

const defaultQueueSize = 1024

// Option applies a configuration option to the Runner.
type Option func(*Runner)

// WithBaseline replaces the random baseline strategy.
func WithBaseline(s balance.Strategy) Option {
	return func(r *Runner) {
		if s != nil {
			r.baseline = s
		}
	}
}

// WithHeuristic replaces the strategy under test.
func WithHeuristic(s balance.Strategy) Option {
	return func(r *Runner) {
		if s != nil {
			r.heuristic = s
		}
	}
}

// WithWorkers sets the worker pool size. Non-positive values use one worker
// per CPU.
func WithWorkers(n int) Option {
	return func(r *Runner) { r.workers = n }
}

// WithQueueSize sets the capacity of the experiment queue.
func WithQueueSize(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.queueSize = n
		}
	}
}

// WithLogger sets a custom logger for the runner.
func WithLogger(l logger.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}
