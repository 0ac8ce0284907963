package lume

import "github.com/gogpu/lume/backend"

// Option configures a Context during creation.
// Use functional options to customize Context behavior.
//
// Example:
//
//	// Best available driver
//	ctx, err := lume.New()
//
//	// Custom driver (dependency injection)
//	ctx, err := lume.New(lume.WithDriver(myDriver))
type Option func(*contextOptions)

// contextOptions holds optional configuration for Context creation.
type contextOptions struct {
	driver     backend.Driver
	driverName string
}

// defaultOptions returns the default context options.
func defaultOptions() contextOptions {
	return contextOptions{
		driver: nil, // Will be resolved through the registry if nil
	}
}

// WithDriver injects a driver instance. New initializes it; the registry is
// bypassed entirely.
func WithDriver(d backend.Driver) Option {
	return func(o *contextOptions) {
		o.driver = d
	}
}

// WithDriverName selects a registered driver by name instead of the
// priority default.
//
// Example:
//
//	ctx, err := lume.New(lume.WithDriverName(backend.DriverHeadless))
func WithDriverName(name string) Option {
	return func(o *contextOptions) {
		o.driverName = name
	}
}
