// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package draw

import (
	"strings"
	"sync"
)

// Recorder is a [Renderer] that keeps every command it executes.
// It is safe for concurrent use.
type Recorder struct {
	mu       sync.Mutex
	commands []Command

	// Errors are returned once by CheckErrors, then cleared.
	Errors []string
}

func (r *Recorder) Execute(cmd Command) {
	r.mu.Lock()
	r.commands = append(r.commands, cmd)
	r.mu.Unlock()
}

// CheckErrors returns and clears the pending errors.
func (r *Recorder) CheckErrors() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	errs := r.Errors
	r.Errors = nil
	return errs
}

// Commands returns a copy of the recorded commands.
func (r *Recorder) Commands() []Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Command(nil), r.commands...)
}

// Reset forgets all recorded commands.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.commands = r.commands[:0]
	r.mu.Unlock()
}

// String returns the recorded commands, one per line.
func (r *Recorder) String() string {
	var b strings.Builder
	for _, c := range r.Commands() {
		b.WriteString(c.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// Filter returns the recorded commands of type T, in order.
func Filter[T Command](r *Recorder) []T {
	var out []T
	for _, c := range r.Commands() {
		if t, ok := c.(T); ok {
			out = append(out, t)
		}
	}
	return out
}
