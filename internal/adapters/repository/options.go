// Package repository persists players in PostgreSQL through gorm.
package repository

import (
	"time"

	gormlogger "gorm.io/gorm/logger"

	"github.com/okian/squadmaker/pkg/logger"
)

const (
	defaultSlowThreshold   = 200 * time.Millisecond
	defaultConnMaxIdleTime = 230 * time.Second
	defaultConnMaxLifetime = 30 * time.Minute
)

type options struct {
	log           logger.Logger
	logLevel      gormlogger.LogLevel
	slowThreshold time.Duration
	dryRun        bool
}

// Option applies a configuration option to the PostgresStore.
type Option func(*options)

// WithLogger routes gorm's query log through l.
func WithLogger(l logger.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithLogLevel sets gorm's log level.
func WithLogLevel(level gormlogger.LogLevel) Option {
	return func(o *options) {
		if level > 0 {
			o.logLevel = level
		}
	}
}

// WithSlowThreshold sets the duration above which queries are logged as slow.
func WithSlowThreshold(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.slowThreshold = d
		}
	}
}

// WithDryRun builds statements without executing them.
func WithDryRun(enabled bool) Option {
	return func(o *options) { o.dryRun = enabled }
}

func newOptions(opts []Option) options {
	o := options{
		log:           logger.Nop(),
		logLevel:      gormlogger.Warn,
		slowThreshold: defaultSlowThreshold,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
