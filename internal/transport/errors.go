// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package transport

import (
	"fmt"
	"net/http"
)

// SessionError wraps a lower-level failure encountered while constructing a
// Session.
type SessionError struct {
	Err error
}

func (e *SessionError) Error() string {
	return fmt.Sprintf("unable to create a CONS3RT session: %s", e.Err)
}

func (e *SessionError) Unwrap() error { return e.Err }

// ClientError reports a GET whose retry budget is exhausted. Err carries
// the tally of every attempt's failure for diagnosis.
type ClientError struct {
	Target   string
	Attempts int
	Err      error
}

func (e *ClientError) Error() string {
	return fmt.Sprintf("max attempts exceeded for GET %s: %d\n%s", e.Target, e.Attempts, e.Err)
}

func (e *ClientError) Unwrap() error { return e.Err }

// StatusError reports a response with a non-success HTTP status.
type StatusError struct {
	StatusCode int
	Headers    http.Header
	Body       string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("received HTTP code [%d] with headers:\n%v", e.StatusCode, e.Headers)
	if e.Body != "" {
		msg += fmt.Sprintf("\nand content:\n%s", e.Body)
	}
	return msg
}
