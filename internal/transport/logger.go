// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package transport

import "log"

// Logger is a nil-safe wrapper around a *log.Logger. Sessions are silent
// unless one is attached with WithLogger.
type Logger struct {
	l *log.Logger
}

func newLogger(l *log.Logger) *Logger {
	return &Logger{l: l}
}

func (l *Logger) Printf(format string, args ...any) {
	if l == nil || l.l == nil {
		return
	}
	l.l.Printf(format, args...)
}
