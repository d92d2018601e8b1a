// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package credential

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name        string
		config      *Config
		expectedErr string
	}{
		{
			name: "complete",
			config: &Config{
				CertFilePath: "/etc/pki/user.p12",
				CertPassword: "secret",
				Token:        "project-token",
			},
		},
		{
			name: "missing certificate path",
			config: &Config{
				CertPassword: "secret",
				Token:        "project-token",
			},
			expectedErr: "insufficient credentials: missing cert_file_path",
		},
		{
			name: "missing password and token",
			config: &Config{
				CertFilePath: "/etc/pki/user.p12",
			},
			expectedErr: "insufficient credentials: missing cert_password, cons3rt_token",
		},
		{
			name:        "missing everything",
			config:      &Config{},
			expectedErr: "insufficient credentials: missing cert_file_path, cert_password, cons3rt_token",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			require := require.New(t)
			err := tc.config.Validate()
			if tc.expectedErr != "" {
				require.EqualError(err, tc.expectedErr)
				return
			}
			require.NoError(err)
		})
	}
}

func TestNewConfig(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		require := require.New(t)
		c, err := NewConfig(
			WithCertificateFile("/etc/pki/user.p12"),
			WithCertificatePassword("secret"),
			WithToken("project-token"),
		)
		require.NoError(err)
		require.Equal("/etc/pki/user.p12", c.CertFilePath)
		require.Equal("secret", c.CertPassword)
		require.Equal("project-token", c.Token)
	})

	t.Run("incomplete", func(t *testing.T) {
		require := require.New(t)
		_, err := NewConfig(WithToken("project-token"))
		require.ErrorContains(err, "insufficient credentials")
	})
}

func TestTLSClientConfig(t *testing.T) {
	t.Run("missing bundle", func(t *testing.T) {
		require := require.New(t)
		c := &Config{
			CertFilePath: filepath.Join(t.TempDir(), "does-not-exist.p12"),
			CertPassword: "secret",
			Token:        "project-token",
		}
		_, err := c.TLSClientConfig()
		require.ErrorContains(err, "error reading certificate bundle")
	})

	t.Run("malformed bundle", func(t *testing.T) {
		require := require.New(t)
		path := filepath.Join(t.TempDir(), "user.p12")
		require.NoError(os.WriteFile(path, []byte("not a pkcs12 bundle"), 0o600))

		c := &Config{
			CertFilePath: path,
			CertPassword: "secret",
			Token:        "project-token",
		}
		_, err := c.TLSClientConfig()
		require.ErrorContains(err, "error decoding certificate bundle")
	})
}
