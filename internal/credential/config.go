// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

// Package credential holds the CONS3RT credential bundle: the P12 client
// certificate, its passphrase, and the API project token.
package credential

import (
	"crypto/tls"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/cons3rt/cons3rt.core/internal/errors"
	"golang.org/x/crypto/pkcs12"
)

// Config is the configuration for the CONS3RT credential. All three fields
// are required; Validate is called before any network activity.
type Config struct {
	// CertFilePath is the path to the P12 certificate bundle presented as
	// the TLS client certificate.
	CertFilePath string
	// CertPassword is the passphrase for the certificate bundle.
	CertPassword string
	// Token is the CONS3RT API project token for the user.
	Token string

	mu      sync.Mutex
	tlsConf *tls.Config
}

// NewConfig - create a validated Config
func NewConfig(opt ...Option) (*Config, error) {
	opts, err := getOpts(opt...)
	if err != nil {
		return nil, err
	}
	c := &Config{
		CertFilePath: opts.WithCertificateFile,
		CertPassword: opts.WithCertificatePassword,
		Token:        opts.WithToken,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks that every required credential is present.
func (c *Config) Validate() error {
	var missing []string
	for _, f := range []struct {
		name  string
		value string
	}{
		{ConstCertFilePath, c.CertFilePath},
		{ConstCertPassword, c.CertPassword},
		{ConstToken, c.Token},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return errors.ConfigurationError("insufficient credentials: missing %s", strings.Join(missing, ", "))
	}
	return nil
}

// TLSClientConfig decodes the certificate bundle and returns a TLS
// configuration presenting it as the client certificate. The decoded bundle
// is cached on the config; the config is safe for concurrent read-only use
// by every transport worker once the session is constructed.
func (c *Config) TLSClientConfig() (*tls.Config, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.tlsConf != nil {
		return c.tlsConf, nil
	}

	data, err := os.ReadFile(c.CertFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading certificate bundle: %w", err)
	}

	key, cert, err := pkcs12.Decode(data, c.CertPassword)
	if err != nil {
		return nil, fmt.Errorf("error decoding certificate bundle %s: %w", c.CertFilePath, err)
	}

	c.tlsConf = &tls.Config{
		Certificates: []tls.Certificate{{
			Certificate: [][]byte{cert.Raw},
			PrivateKey:  key,
			Leaf:        cert,
		}},
		MinVersion: tls.VersionTLS12,
	}
	return c.tlsConf, nil
}
