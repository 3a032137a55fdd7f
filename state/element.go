// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package state

import (
	"fmt"
	"reflect"
	"sync"
)

// Element is one kind of traversal state, such as the current model matrix
// or material. A [State] keeps a stack of each enabled element type; nodes
// read the top with [Get] and change it with [Writable].
type Element interface {

	// AsElement returns the [ElementBase] embedded in the element.
	AsElement() *ElementBase

	// Copy returns a copy of the element, including its [ElementBase].
	Copy() Element

	// Matches reports whether the element has the same value as the given
	// snapshot of the same type, which was previously returned by Copy.
	// Caches use this to check that the state they were built under still holds.
	Matches(snapshot Element) bool
}

// ElementBase holds the bookkeeping shared by all elements. It must be
// embedded in every [Element] implementation.
type ElementBase struct {
	index int
	depth int
}

// AsElement returns the ElementBase.
func (e *ElementBase) AsElement() *ElementBase {
	return e
}

// Index returns the registry index of the element type.
func (e *ElementBase) Index() int {
	return e.index
}

// Depth returns the state depth at which the element was set.
func (e *ElementBase) Depth() int {
	return e.depth
}

// ElementType describes a registered element type.
type ElementType struct {

	// Name is the name of the Go type.
	Name string

	// Index is the stack index in every [State] built from the registry.
	Index int

	// Type is the Go pointer type of the element.
	Type reflect.Type

	// New returns an element with its default value.
	New func() Element
}

// Registry holds the registered element types. It is populated when the
// library is set up and is read-only afterwards.
type Registry struct {
	mu    sync.RWMutex
	types []*ElementType
	index map[reflect.Type]*ElementType
}

// Register adds the element type T to the registry, returning its
// description. Registering a type twice returns the existing entry.
func Register[T Element](r *Registry, newFn func() T) *ElementType {
	rt := reflect.TypeFor[T]()
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.index == nil {
		r.index = make(map[reflect.Type]*ElementType)
	}
	if et, ok := r.index[rt]; ok {
		return et
	}
	et := &ElementType{
		Name:  rt.String(),
		Index: len(r.types),
		Type:  rt,
		New:   func() Element { return newFn() },
	}
	r.types = append(r.types, et)
	r.index[rt] = et
	return et
}

// TypeFor returns the registered description of T.
// It panics if T has not been registered.
func TypeFor[T Element](r *Registry) *ElementType {
	return r.mustType(reflect.TypeFor[T]())
}

// Len returns the number of registered element types.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.types)
}

func (r *Registry) mustType(rt reflect.Type) *ElementType {
	r.mu.RLock()
	et, ok := r.index[rt]
	r.mu.RUnlock()
	if !ok {
		panic(fmt.Sprintf("state: element type %v is not registered", rt))
	}
	return et
}
