// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

// Package errors holds the error constructors shared across the plugin
// packages.
package errors

import (
	"fmt"
	"sort"
	"strings"
)

// ArgumentError reports one or more invalid fields in a caller-supplied
// argument or attribute set. It is a fatal, pre-network error.
type ArgumentError struct {
	Msg    string
	Fields map[string]string
}

func (e *ArgumentError) Error() string {
	if len(e.Fields) == 0 {
		return e.Msg
	}
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(e.Msg)
	b.WriteString(":")
	for _, name := range names {
		fmt.Fprintf(&b, "\n\t%s: %s", name, e.Fields[name])
	}
	return b.String()
}

// InvalidArgumentError returns an ArgumentError with the given message and
// field violation details. Fields are rendered in sorted order so the
// message is stable.
func InvalidArgumentError(msg string, badFields map[string]string) error {
	return &ArgumentError{Msg: msg, Fields: badFields}
}

// ConfigError reports required configuration that is missing or unusable.
// It is always raised before any network activity.
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string { return e.Msg }

// ConfigurationError returns a ConfigError with a formatted message.
func ConfigurationError(format string, args ...any) error {
	return &ConfigError{Msg: fmt.Sprintf(format, args...)}
}
