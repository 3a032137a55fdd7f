// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nodepath

import (
	"slices"
)

// List is an ordered list of paths.
type List struct {
	paths []*Path
}

// NewList returns a list holding the given paths.
func NewList(paths ...*Path) *List {
	return &List{paths: paths}
}

// Append adds a path to the end of the list.
func (l *List) Append(p *Path) {
	l.paths = append(l.paths, p)
}

// Len returns the number of paths.
func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(l.paths)
}

// At returns the path at index i.
func (l *List) At(i int) *Path {
	return l.paths[i]
}

// Paths returns the underlying slice; it must not be modified.
func (l *List) Paths() []*Path {
	return l.paths
}

// Reset empties the list, keeping its storage.
func (l *List) Reset() {
	clear(l.paths)
	l.paths = l.paths[:0]
}

// Copy returns a shallow copy of the list; the paths are shared.
func (l *List) Copy() *List {
	return &List{paths: slices.Clone(l.paths)}
}

// Sort sorts the paths by head and then by child indices; see [Compare].
func (l *List) Sort() {
	slices.SortStableFunc(l.paths, Compare)
}

// Uniquify removes duplicate paths and paths that continue below another
// path in the list. The list must be sorted.
func (l *List) Uniquify() {
	if len(l.paths) < 2 {
		return
	}
	out := l.paths[:1]
	for _, p := range l.paths[1:] {
		if p.ContainsPath(out[len(out)-1]) {
			continue
		}
		out = append(out, p)
	}
	clear(l.paths[len(out):])
	l.paths = out
}

// SameHead reports whether every path in the list starts at the same node.
func (l *List) SameHead() bool {
	if len(l.paths) < 2 {
		return true
	}
	for _, p := range l.paths[1:] {
		if p.Head() != l.paths[0].Head() {
			return false
		}
	}
	return true
}

// FindIndex returns the index of the first path equal to p, or -1.
func (l *List) FindIndex(p *Path) int {
	return slices.IndexFunc(l.paths, p.Equal)
}
