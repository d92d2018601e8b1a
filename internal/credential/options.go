// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package credential

// options = how options are represented
type Options struct {
	WithCertificateFile     string
	WithCertificatePassword string
	WithToken               string
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
	return &Options{}
}

func WithCertificateFile(p string) Option {
	return func(o *Options) error {
		o.WithCertificateFile = p
		return nil
	}
}

func WithCertificatePassword(p string) Option {
	return func(o *Options) error {
		o.WithCertificatePassword = p
		return nil
	}
}

func WithToken(t string) Option {
	return func(o *Options) error {
		o.WithToken = t
		return nil
	}
}
