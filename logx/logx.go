// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logx provides the structured logging setup: a colored
// [slog.Handler] for terminals, a user-facing log level selected by build
// tags, and one-time warnings.
package logx

import (
	"io"
	"log/slog"
	"os"
	"sync"
)

// UserLevel is the verbosity [slog.Level] that the user has selected for
// what logging and printing messages should be shown. Messages at levels at
// or above this level will be shown. It is Info by default, Debug with the
// debug build tag and Warn with the release build tag.
var UserLevel = defaultUserLevel

// Init installs a [Handler] writing to stderr at [UserLevel] as the default
// slog logger.
func Init() {
	slog.SetDefault(slog.New(NewHandler(os.Stderr, UserLevel)))
}

// SetOutput installs a [Handler] writing to w as the default slog logger,
// and returns the previous default.
func SetOutput(w io.Writer, level slog.Leveler) *slog.Logger {
	prev := slog.Default()
	slog.SetDefault(slog.New(NewHandler(w, level)))
	return prev
}

var warned sync.Map

// WarnOnce logs a warning the first time it is called with the given key
// in the process, and does nothing after that.
func WarnOnce(key, msg string, args ...any) {
	if _, loaded := warned.LoadOrStore(key, true); loaded {
		return
	}
	slog.Warn(msg, args...)
}

// ResetWarnings forgets which one-time warnings have been issued.
func ResetWarnings() {
	warned.Clear()
}
