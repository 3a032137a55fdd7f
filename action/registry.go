// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package action

import (
	"reflect"
	"sync"

	"github.com/scenekit/core/tree"
)

// Method is the function run when an action visits a node.
type Method func(a Action, n tree.Node)

// NullMethod does nothing.
func NullMethod(a Action, n tree.Node) {}

// Registry maps (action type, node type) pairs to methods. When no method is
// registered for a pair, the default for the action type is used, and
// [NullMethod] when there is none. Methods are registered while the library
// is set up, before traversal starts.
type Registry struct {
	mu       sync.RWMutex
	methods  map[reflect.Type]map[reflect.Type]Method
	defaults map[reflect.Type]Method
}

// Add registers the method for the action and node types.
func (r *Registry) Add(actionType, nodeType reflect.Type, m Method) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.methods == nil {
		r.methods = make(map[reflect.Type]map[reflect.Type]Method)
	}
	byNode := r.methods[actionType]
	if byNode == nil {
		byNode = make(map[reflect.Type]Method)
		r.methods[actionType] = byNode
	}
	byNode[nodeType] = m
}

// SetDefault registers the method used for node types of the action type
// that have no method of their own.
func (r *Registry) SetDefault(actionType reflect.Type, m Method) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.defaults == nil {
		r.defaults = make(map[reflect.Type]Method)
	}
	r.defaults[actionType] = m
}

// Lookup returns the method for the action and node types.
func (r *Registry) Lookup(actionType, nodeType reflect.Type) Method {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if m, ok := r.methods[actionType][nodeType]; ok {
		return m
	}
	if m, ok := r.defaults[actionType]; ok {
		return m
	}
	return NullMethod
}

// AddMethod registers a typed method for action type A and node type N.
func AddMethod[A Action, N tree.Node](r *Registry, m func(a A, n N)) {
	r.Add(reflect.TypeFor[A](), reflect.TypeFor[N](), func(a Action, n tree.Node) {
		m(a.(A), n.(N))
	})
}

// SetDefaultMethod registers a typed default method for action type A.
func SetDefaultMethod[A Action](r *Registry, m func(a A, n tree.Node)) {
	r.SetDefault(reflect.TypeFor[A](), func(a Action, n tree.Node) {
		m(a.(A), n)
	})
}
