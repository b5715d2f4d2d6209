package stack

import (
	"go.uber.org/zap"

	"github.com/observe-l/rlnc/internal/metrics"
)

// Option configures a Factory or a Pool.
type Option func(*options)

type options struct {
	name     string
	logger   *zap.Logger
	observer Observer
	maxIdle  int // 0 means unbounded
}

func newOptions(opts []Option) options {
	o := options{
		name:     "coder",
		observer: metrics.Observer{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o *options) log() *zap.Logger {
	if o.logger != nil {
		return o.logger
	}
	return Logger()
}

// WithName labels the stack in logs and metrics.
func WithName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.name = name
		}
	}
}

// WithLogger overrides the package logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithObserver replaces the Prometheus observer.
func WithObserver(obs Observer) Option {
	return func(o *options) {
		if obs != nil {
			o.observer = obs
		}
	}
}

// WithMaxIdle bounds the number of coders a Pool keeps in its free list.
// Coders released beyond the bound are left to the garbage collector.
// Factories ignore it.
func WithMaxIdle(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxIdle = n
		}
	}
}
