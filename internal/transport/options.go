// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package transport

import (
	"fmt"
	"log"
	"net/http"
	"time"
)

// options = how options are represented
type Options struct {
	WithMaxAttempts int
	WithRetryDelay  time.Duration
	WithTransport   http.RoundTripper
	WithLogger      *log.Logger
}

// getOpts - iterate the inbound Options and return a struct
func getOpts(opts ...Option) (*Options, error) {
	defaultOptions := getDefaultOptions()
	for _, opt := range opts {
		if err := opt(defaultOptions); err != nil {
			return nil, err
		}
	}
	return defaultOptions, nil
}

// Option - how Options are passed as arguments
type Option func(*Options) error

func getDefaultOptions() *Options {
	return &Options{
		WithMaxAttempts: DefaultMaxAttempts,
		WithRetryDelay:  DefaultRetryDelay,
	}
}

// WithMaxAttempts sets the total number of GET attempts made before the
// retry budget is exhausted.
func WithMaxAttempts(n int) Option {
	return func(o *Options) error {
		if n < 1 {
			return fmt.Errorf("max attempts must be at least 1, got %d", n)
		}
		o.WithMaxAttempts = n
		return nil
	}
}

// WithRetryDelay sets the fixed delay between attempts.
func WithRetryDelay(d time.Duration) Option {
	return func(o *Options) error {
		if d < 0 {
			return fmt.Errorf("retry delay must not be negative, got %s", d)
		}
		o.WithRetryDelay = d
		return nil
	}
}

// WithTransport replaces the client-certificate transport, primarily to
// control test behavior.
func WithTransport(rt http.RoundTripper) Option {
	return func(o *Options) error {
		o.WithTransport = rt
		return nil
	}
}

// WithLogger attaches a logger for per-attempt retry diagnostics. The
// session is silent without one.
func WithLogger(l *log.Logger) Option {
	return func(o *Options) error {
		o.WithLogger = l
		return nil
	}
}
