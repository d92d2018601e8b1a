// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package inventory

import (
	"fmt"

	"github.com/cons3rt/cons3rt.core/internal/cache"
	"github.com/cons3rt/cons3rt.core/internal/transport"
)

// options = how fetch options are represented
type FetchOptions struct {
	WithCache          cache.Cache
	WithCacheKey       string
	WithFlushCache     bool
	WithMaxWorkers     int
	WithSessionOptions []transport.Option
}

// getFetchOpts - iterate the inbound FetchOptions and return a struct
func getFetchOpts(opts ...FetchOption) (*FetchOptions, error) {
	defaultOptions := getDefaultFetchOptions()
	for _, opt := range opts {
		if err := opt(defaultOptions); err != nil {
			return nil, err
		}
	}
	return defaultOptions, nil
}

// FetchOption - how FetchOptions are passed as arguments
type FetchOption func(*FetchOptions) error

func getDefaultFetchOptions() *FetchOptions {
	return &FetchOptions{
		WithMaxWorkers: DefaultMaxWorkers,
	}
}

// WithCache attaches an explicit cache handle and the opaque key the
// snapshot is stored under. Key derivation belongs to the caller.
func WithCache(c cache.Cache, key string) FetchOption {
	return func(o *FetchOptions) error {
		if c == nil {
			return fmt.Errorf("cache must not be nil")
		}
		if key == "" {
			return fmt.Errorf("cache key must not be empty")
		}
		o.WithCache = c
		o.WithCacheKey = key
		return nil
	}
}

// WithFlushCache skips the cache lookup and refreshes the stored snapshot
// after a successful fetch.
func WithFlushCache() FetchOption {
	return func(o *FetchOptions) error {
		o.WithFlushCache = true
		return nil
	}
}

// WithMaxWorkers overrides the per-stage worker pool bound.
func WithMaxWorkers(n int) FetchOption {
	return func(o *FetchOptions) error {
		if n < 1 {
			return fmt.Errorf("max workers must be at least 1, got %d", n)
		}
		o.WithMaxWorkers = n
		return nil
	}
}

// WithSessionOptions passes options through to the underlying transport
// session, primarily to control test behavior.
func WithSessionOptions(opts ...transport.Option) FetchOption {
	return func(o *FetchOptions) error {
		o.WithSessionOptions = append(o.WithSessionOptions, opts...)
		return nil
	}
}
