// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

// Package transport implements the authenticated, retrying HTTP GET
// primitive the CONS3RT API client is built on. Every request presents the
// P12 client certificate and the project token header; transient network
// and TLS failures are absorbed up to the retry budget, then escalated with
// the full tally of attempt failures. Nothing above this package retries.
package transport

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cons3rt/cons3rt.core/internal/credential"
	"github.com/cons3rt/cons3rt.core/internal/errors"
	"github.com/hashicorp/go-multierror"
)

const (
	// DefaultMaxAttempts is the total number of attempts made for one GET
	// before it fails with a ClientError.
	DefaultMaxAttempts = 10

	// DefaultRetryDelay is the fixed wait between attempts. A fully failing
	// endpoint therefore blocks a GET for roughly
	// DefaultMaxAttempts * DefaultRetryDelay.
	DefaultRetryDelay = 5 * time.Second
)

// Response is a fully read HTTP response, returned uninterpreted.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Session is an immutable handle to the CONS3RT API: base URL, credential
// bundle, and retry policy. It owns no persistent connection; each GET
// opens and tears down its own authenticated channel. A Session is safe for
// concurrent use.
type Session struct {
	base        string
	credentials *credential.Config
	maxAttempts int
	retryDelay  time.Duration
	transport   http.RoundTripper
	logger      *Logger
}

// NewSession validates the base URL and credentials and returns a Session.
// Construction failures are wrapped in a SessionError; no network activity
// happens here.
func NewSession(base string, creds *credential.Config, opt ...Option) (*Session, error) {
	opts, err := getOpts(opt...)
	if err != nil {
		return nil, &SessionError{Err: err}
	}

	badFields := make(map[string]string)
	if base == "" {
		badFields["base"] = "must not be empty"
	}
	if creds == nil {
		badFields["credentials"] = "must not be nil"
	}
	if len(badFields) > 0 {
		return nil, &SessionError{Err: errors.InvalidArgumentError("Invalid session arguments", badFields)}
	}

	if err := creds.Validate(); err != nil {
		return nil, &SessionError{Err: err}
	}

	rt := opts.WithTransport
	if rt == nil {
		tlsConf, err := creds.TLSClientConfig()
		if err != nil {
			return nil, &SessionError{Err: err}
		}
		rt = &http.Transport{TLSClientConfig: tlsConf}
	}

	return &Session{
		base:        base,
		credentials: creds,
		maxAttempts: opts.WithMaxAttempts,
		retryDelay:  opts.WithRetryDelay,
		transport:   rt,
		logger:      newLogger(opts.WithLogger),
	}, nil
}

// ValidateTarget checks that a request target was provided.
func ValidateTarget(target string) error {
	if target == "" {
		return errors.InvalidArgumentError("Invalid target arg provided", map[string]string{
			"target": "must not be empty",
		})
	}
	return nil
}

// Get issues an authenticated GET against base+target. Network-level
// failures are retried after the fixed delay until the attempt budget is
// spent; the resulting ClientError carries every attempt's failure. A
// response, whatever its status code, is returned uninterpreted.
//
// The inter-attempt sleep honors ctx cancellation, but an attempt already
// in flight runs to completion.
func (s *Session) Get(ctx context.Context, target string) (*Response, error) {
	if err := ValidateTarget(target); err != nil {
		return nil, err
	}
	url := s.base + target

	var tally *multierror.Error
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-time.After(s.retryDelay):
			case <-ctx.Done():
				return nil, &ClientError{
					Target:   target,
					Attempts: attempt - 1,
					Err:      multierror.Append(tally, ctx.Err()),
				}
			}
		}

		resp, err := s.do(ctx, url)
		if err == nil {
			return resp, nil
		}
		s.logger.Printf("GET attempt #%d failed: %s", attempt, err)
		tally = multierror.Append(tally, fmt.Errorf("GET attempt #%d: %w", attempt, err))
	}

	return nil, &ClientError{Target: target, Attempts: s.maxAttempts, Err: tally}
}

// do performs a single attempt over a fresh channel.
func (s *Session) do(ctx context.Context, url string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("token", s.credentials.Token)
	req.Header.Set("Accept", "application/json")

	client := &http.Client{Transport: s.transport}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if c, ok := s.transport.(interface{ CloseIdleConnections() }); ok {
		defer c.CloseIdleConnections()
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       body,
	}, nil
}

// ParseResponse decodes the response body as text and enforces the success
// status contract: anything other than 200 or 202 is a StatusError carrying
// the status, headers, and decoded body. It is a diagnostic helper; the API
// client uses it as a status gate and decodes JSON from the raw body
// itself.
func ParseResponse(resp *Response) (string, error) {
	var decoded string
	if len(resp.Body) > 0 {
		decoded = string(resp.Body)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		return "", &StatusError{
			StatusCode: resp.StatusCode,
			Headers:    resp.Headers,
			Body:       decoded,
		}
	}

	return decoded, nil
}
