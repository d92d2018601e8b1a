// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/cons3rt/cons3rt.core/internal/credential"
	"github.com/stretchr/testify/require"
)

func testCredentials() *credential.Config {
	return &credential.Config{
		CertFilePath: "/etc/pki/user.p12",
		CertPassword: "secret",
		Token:        "project-token",
	}
}

// flakyTransport fails the first failures round trips with a network error,
// then serves the configured response.
type flakyTransport struct {
	mu       sync.Mutex
	failures int
	status   int
	body     string

	attempts int
	headers  []http.Header
}

func (t *flakyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.attempts++
	t.headers = append(t.headers, req.Header.Clone())
	if t.attempts <= t.failures {
		return nil, fmt.Errorf("connection refused (attempt %d)", t.attempts)
	}
	return &http.Response{
		StatusCode: t.status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(t.body)),
	}, nil
}

func TestValidateTarget(t *testing.T) {
	require := require.New(t)
	require.NoError(ValidateTarget("/api/drs"))
	err := ValidateTarget("")
	require.ErrorContains(err, "Invalid target arg provided")
	require.ErrorContains(err, "target: must not be empty")
}

func TestNewSession(t *testing.T) {
	cases := []struct {
		name        string
		base        string
		creds       *credential.Config
		opts        []Option
		expectedErr string
	}{
		{
			name:  "valid",
			base:  "https://api.example.com/rest",
			creds: testCredentials(),
			opts:  []Option{WithTransport(http.DefaultTransport)},
		},
		{
			name:        "empty base",
			creds:       testCredentials(),
			expectedErr: "base: must not be empty",
		},
		{
			name:        "nil credentials",
			base:        "https://api.example.com/rest",
			expectedErr: "credentials: must not be nil",
		},
		{
			name: "incomplete credentials",
			base: "https://api.example.com/rest",
			creds: &credential.Config{
				Token: "project-token",
			},
			expectedErr: "insufficient credentials",
		},
		{
			name:        "bad option",
			base:        "https://api.example.com/rest",
			creds:       testCredentials(),
			opts:        []Option{WithMaxAttempts(0)},
			expectedErr: "max attempts must be at least 1",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			require := require.New(t)
			s, err := NewSession(tc.base, tc.creds, tc.opts...)
			if tc.expectedErr != "" {
				require.ErrorContains(err, tc.expectedErr)
				require.ErrorContains(err, "unable to create a CONS3RT session")

				var sessErr *SessionError
				require.ErrorAs(err, &sessErr)
				return
			}
			require.NoError(err)
			require.NotNil(s)
		})
	}
}

func TestSessionGetRetriesThenSucceeds(t *testing.T) {
	require := require.New(t)

	rt := &flakyTransport{failures: 3, status: http.StatusOK, body: `[]`}
	s, err := NewSession("https://api.example.com/rest", testCredentials(),
		WithTransport(rt),
		WithRetryDelay(10*time.Millisecond),
	)
	require.NoError(err)

	start := time.Now()
	resp, err := s.Get(context.Background(), "/api/drs")
	require.NoError(err)
	require.Equal(http.StatusOK, resp.StatusCode)
	require.Equal([]byte(`[]`), resp.Body)

	// 3 failures before success => 3 inter-attempt delays.
	require.Equal(4, rt.attempts)
	require.GreaterOrEqual(time.Since(start), 30*time.Millisecond)
}

func TestSessionGetSetsAuthHeaders(t *testing.T) {
	require := require.New(t)

	rt := &flakyTransport{status: http.StatusOK, body: `[]`}
	s, err := NewSession("https://api.example.com/rest", testCredentials(),
		WithTransport(rt),
		WithRetryDelay(0),
	)
	require.NoError(err)

	_, err = s.Get(context.Background(), "/api/drs")
	require.NoError(err)
	require.Len(rt.headers, 1)
	require.Equal("project-token", rt.headers[0].Get("token"))
	require.Equal("application/json", rt.headers[0].Get("Accept"))
}

func TestSessionGetExhaustsRetries(t *testing.T) {
	require := require.New(t)

	var logBuf bytes.Buffer
	rt := &flakyTransport{failures: DefaultMaxAttempts + 1}
	s, err := NewSession("https://api.example.com/rest", testCredentials(),
		WithTransport(rt),
		WithRetryDelay(0),
		WithLogger(log.New(&logBuf, "", 0)),
	)
	require.NoError(err)

	_, err = s.Get(context.Background(), "/api/drs")
	require.Error(err)

	var clientErr *ClientError
	require.ErrorAs(err, &clientErr)
	require.Equal(DefaultMaxAttempts, clientErr.Attempts)
	require.Equal(DefaultMaxAttempts, rt.attempts)

	// The tally carries every attempt's failure message.
	for i := 1; i <= DefaultMaxAttempts; i++ {
		require.ErrorContains(err, fmt.Sprintf("GET attempt #%d", i))
	}
	require.ErrorContains(err, "max attempts exceeded for GET /api/drs")
	require.Contains(logBuf.String(), "GET attempt #1 failed")
	require.Contains(logBuf.String(), fmt.Sprintf("GET attempt #%d failed", DefaultMaxAttempts))
}

func TestSessionGetHonorsContextDuringDelay(t *testing.T) {
	require := require.New(t)

	rt := &flakyTransport{failures: DefaultMaxAttempts + 1}
	s, err := NewSession("https://api.example.com/rest", testCredentials(),
		WithTransport(rt),
		WithRetryDelay(time.Hour),
	)
	require.NoError(err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err = s.Get(ctx, "/api/drs")
	require.Error(err)
	require.ErrorIs(err, context.DeadlineExceeded)
	require.Less(time.Since(start), time.Minute)

	var clientErr *ClientError
	require.ErrorAs(err, &clientErr)
	require.Equal(1, clientErr.Attempts)
}

func TestSessionGetInvalidTarget(t *testing.T) {
	require := require.New(t)

	s, err := NewSession("https://api.example.com/rest", testCredentials(),
		WithTransport(http.DefaultTransport),
	)
	require.NoError(err)

	_, err = s.Get(context.Background(), "")
	require.ErrorContains(err, "Invalid target arg provided")
}

func TestParseResponse(t *testing.T) {
	cases := []struct {
		name        string
		resp        *Response
		expected    string
		expectedErr string
	}{
		{
			name:     "ok with body",
			resp:     &Response{StatusCode: http.StatusOK, Body: []byte(`{"id": 1}`)},
			expected: `{"id": 1}`,
		},
		{
			name:     "accepted without body",
			resp:     &Response{StatusCode: http.StatusAccepted},
			expected: "",
		},
		{
			name: "not found",
			resp: &Response{
				StatusCode: http.StatusNotFound,
				Headers:    http.Header{"Content-Type": []string{"text/plain"}},
				Body:       []byte("no such deployment run"),
			},
			expectedErr: "received HTTP code [404]",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			require := require.New(t)
			actual, err := ParseResponse(tc.resp)
			if tc.expectedErr != "" {
				require.ErrorContains(err, tc.expectedErr)
				require.ErrorContains(err, "no such deployment run")

				var statusErr *StatusError
				require.ErrorAs(err, &statusErr)
				require.Equal(tc.resp.StatusCode, statusErr.StatusCode)
				return
			}
			require.NoError(err)
			require.Equal(tc.expected, actual)
		})
	}
}
