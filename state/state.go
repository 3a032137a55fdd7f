// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package state provides the traversal state: a stack of element values
// per enabled element type, pushed and popped as traversal enters and
// leaves separators, plus the dependency tracking used by caches.
package state

import (
	"fmt"
	"reflect"
)

// Tracker is implemented by caches that are being built during traversal.
// While a tracker is open, every element read from outside of its scope is
// reported as a dependency.
type Tracker interface {

	// AddDependency records that the cache depends on the given element.
	AddDependency(e Element)

	// Invalidate marks the cache as not usable; it is discarded when closed.
	Invalidate()
}

type openTracker struct {
	tracker Tracker
	depth   int
}

// State is the set of element stacks used by one action. Only the element
// types enabled for the action have stacks.
type State struct {

	// Owner is the action that owns this state.
	Owner any

	reg    *Registry
	stacks [][]Element

	// depth is the current push depth; root elements are at depth 0.
	depth int

	// changed holds the element indices written at each depth, so that Pop
	// only touches those stacks.
	changed [][]int

	open []openTracker

	// invalidations counts calls to InvalidateOpenCaches.
	invalidations uint64
}

// New returns a new state with default values for the given enabled types.
func New(reg *Registry, enabled []*ElementType, owner any) *State {
	s := &State{Owner: owner, reg: reg}
	s.stacks = make([][]Element, reg.Len())
	for _, et := range enabled {
		e := et.New()
		e.AsElement().index = et.Index
		s.stacks[et.Index] = []Element{e}
	}
	s.changed = make([][]int, 1, 16)
	return s
}

// Depth returns the current push depth.
func (s *State) Depth() int {
	return s.depth
}

// Push starts a new scope; elements written after it are restored by [State.Pop].
func (s *State) Push() {
	s.depth++
	if len(s.changed) <= s.depth {
		s.changed = append(s.changed, nil)
	}
}

// Pop restores every element written since the matching [State.Push].
func (s *State) Pop() {
	if s.depth == 0 {
		panic("state.State.Pop: unbalanced pop")
	}
	for _, idx := range s.changed[s.depth] {
		st := s.stacks[idx]
		clear(st[len(st)-1:])
		s.stacks[idx] = st[:len(st)-1]
	}
	s.changed[s.depth] = s.changed[s.depth][:0]
	s.depth--
}

// IsEnabled reports whether the element type has a stack in this state.
func (s *State) IsEnabled(et *ElementType) bool {
	return et.Index < len(s.stacks) && s.stacks[et.Index] != nil
}

// Peek returns the current element at the given index without recording a
// cache dependency, or nil if the type is not enabled.
func (s *State) Peek(index int) Element {
	if index >= len(s.stacks) {
		return nil
	}
	st := s.stacks[index]
	if st == nil {
		return nil
	}
	return st[len(st)-1]
}

func (s *State) stack(rt reflect.Type) int {
	et := s.reg.mustType(rt)
	if s.stacks[et.Index] == nil {
		panic(fmt.Sprintf("state: element %s is not enabled for %T", et.Name, s.Owner))
	}
	return et.Index
}

// Get returns the current value of element T, recording it as a dependency
// of every open cache whose scope it was set outside of. The result must not
// be modified; use [Writable] for that.
func Get[T Element](s *State) T {
	idx := s.stack(reflect.TypeFor[T]())
	st := s.stacks[idx]
	e := st[len(st)-1]
	if len(s.open) > 0 {
		d := e.AsElement().depth
		for _, o := range s.open {
			if d < o.depth {
				o.tracker.AddDependency(e)
			}
		}
	}
	return e.(T)
}

// Writable returns element T for modification in the current scope. The
// first write in a scope copies the element, leaving the outer value intact.
func Writable[T Element](s *State) T {
	idx := s.stack(reflect.TypeFor[T]())
	st := s.stacks[idx]
	e := st[len(st)-1]
	if e.AsElement().depth == s.depth {
		return e.(T)
	}
	ne := e.Copy()
	ne.AsElement().depth = s.depth
	s.stacks[idx] = append(st, ne)
	s.changed[s.depth] = append(s.changed[s.depth], idx)
	return ne.(T)
}

// Has reports whether element T is enabled in this state.
func Has[T Element](s *State) bool {
	return s.IsEnabled(s.reg.mustType(reflect.TypeFor[T]()))
}

// OpenCache starts tracking dependencies for t at the current depth.
func (s *State) OpenCache(t Tracker) {
	s.open = append(s.open, openTracker{tracker: t, depth: s.depth})
}

// CloseCache stops tracking dependencies for t, which must be the
// innermost open cache.
func (s *State) CloseCache(t Tracker) {
	n := len(s.open)
	if n == 0 || s.open[n-1].tracker != t {
		panic("state.State.CloseCache: cache is not the innermost open cache")
	}
	s.open[n-1] = openTracker{}
	s.open = s.open[:n-1]
}

// IsCacheOpen reports whether any cache is being built.
func (s *State) IsCacheOpen() bool {
	return len(s.open) > 0
}

// OpenCaches returns the open caches, innermost last.
func (s *State) OpenCaches() []Tracker {
	ts := make([]Tracker, len(s.open))
	for i, o := range s.open {
		ts[i] = o.tracker
	}
	return ts
}

// InnermostCache returns the innermost open cache, or nil.
func (s *State) InnermostCache() Tracker {
	if len(s.open) == 0 {
		return nil
	}
	return s.open[len(s.open)-1].tracker
}

// InvalidateOpenCaches marks every open cache invalid. Traversal calls this
// when the content being recorded depends on something outside the state,
// such as an abort or a deferred transparent object.
func (s *State) InvalidateOpenCaches() {
	s.invalidations++
	for _, o := range s.open {
		o.tracker.Invalidate()
	}
}

// Invalidations returns the number of calls to [State.InvalidateOpenCaches]
// so far, whether or not a cache was open. Comparing two values tells
// whether a traversal did something that could not have been cached.
func (s *State) Invalidations() uint64 {
	return s.invalidations
}

// AddDependencies records the given element snapshots as dependencies of
// every open cache whose scope they were set outside of. A cache that is
// reused inside another cache being built passes its own dependencies here.
func (s *State) AddDependencies(snapshots []Element) {
	for _, o := range s.open {
		for _, e := range snapshots {
			if e.AsElement().depth < o.depth {
				o.tracker.AddDependency(e)
			}
		}
	}
}
