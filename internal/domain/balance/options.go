package balance

import "math/rand"

// Option configures strategies built by New.
type Option func(*options)

type options struct {
	rng *rand.Rand
}

// WithRand injects the random source used by randomized strategies.
func WithRand(rng *rand.Rand) Option {
	return func(o *options) {
		if rng != nil {
			o.rng = rng
		}
	}
}

func newOptions(opts ...Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
