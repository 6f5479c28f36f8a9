package bsp

import (
	"io"
	"runtime"

	"github.com/sirupsen/logrus"
)

// Options configures a Manager.
//
// PoolSize – maximum PE tasks in flight per stage (default runtime.GOMAXPROCS(0)).
// Logger   – structured logger (default discards).
// Observer – stage/flush hook (default NopObserver).
type Options struct {
	PoolSize int
	Logger   logrus.FieldLogger
	Observer Observer
}

// Option represents a functional option for configuring a Manager.
type Option func(*Options)

// WithPoolSize bounds the number of concurrent PE tasks. Values < 1 are treated as 1.
func WithPoolSize(k int) Option {
	return func(o *Options) {
		if k < 1 {
			k = 1
		}
		o.PoolSize = k
	}
}

// WithLogger sets the logger. A nil logger keeps the default.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithObserver installs an observer. Combine several with Observers.
func WithObserver(obs Observer) Option {
	return func(o *Options) {
		if obs != nil {
			o.Observer = obs
		}
	}
}

// DefaultOptions returns the defaults listed on Options.
func DefaultOptions() Options {
	return Options{
		PoolSize: runtime.GOMAXPROCS(0),
		Logger:   discardLogger(),
		Observer: NopObserver{},
	}
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)

	return l
}
