// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package search provides the action that finds paths to nodes by
// identity, type or name.
package search

import (
	"reflect"

	"github.com/scenekit/core/action"
	"github.com/scenekit/core/nodepath"
	"github.com/scenekit/core/tree"
)

// Find is a set of flags selecting the search criteria; a node must
// match all of them.
type Find uint8

const (
	// ByNode matches the node [Action.Node].
	ByNode Find = 1 << iota

	// ByType matches nodes of type [Action.Type].
	ByType

	// ByName matches nodes named [Action.Name].
	ByName
)

// Interest selects which matches are kept.
type Interest int32

const (
	// First stops at the first match.
	First Interest = iota

	// Last keeps the last match.
	Last

	// All keeps every match.
	All
)

// Action searches the graph for nodes.
type Action struct {
	action.Base

	// Find selects the criteria.
	Find Find

	// Interest selects which matches are kept.
	Interest Interest

	// Node is the node to find with ByNode.
	Node tree.Node

	// Type is the node type to find with ByType.
	Type reflect.Type

	// Name is the name to find with ByName.
	Name string

	path  *nodepath.Path
	paths nodepath.List
	found bool
}

// New returns a new search action.
func New(lib *action.Library) *Action {
	a := &Action{}
	a.Init(a, lib)
	return a
}

// Register sets the default method of the search action.
func Register(lib *action.Library) {
	action.SetDefaultMethod(lib.Methods, Visit)
}

// FindType sets up a search for nodes of type T.
func FindType[T tree.Node](a *Action, interest Interest) {
	a.Find = ByType
	a.Type = reflect.TypeFor[T]()
	a.Interest = interest
}

// BeginTraversal clears the previous results and traverses the node.
func (a *Action) BeginTraversal(n tree.Node) {
	a.path = nil
	a.paths.Reset()
	a.found = false
	a.Traverse(n)
}

// IsFound returns whether a match was found.
func (a *Action) IsFound() bool {
	return a.found
}

// Path returns the path to the match for First and Last, or nil.
func (a *Action) Path() *nodepath.Path {
	return a.path
}

// Paths returns the paths to all matches for All.
func (a *Action) Paths() *nodepath.List {
	return &a.paths
}

// Matches reports whether n meets all of the criteria.
func (a *Action) Matches(n tree.Node) bool {
	if a.Find == 0 {
		return false
	}
	if a.Find&ByNode != 0 && n != a.Node {
		return false
	}
	if a.Find&ByType != 0 && reflect.TypeOf(n) != a.Type {
		return false
	}
	if a.Find&ByName != 0 && n.AsTree().Name != a.Name {
		return false
	}
	return true
}

// Visit checks the node and then searches its children.
func Visit(a *Action, n tree.Node) {
	if a.Matches(n) {
		p := a.CurPath().Copy()
		a.found = true
		switch a.Interest {
		case First:
			a.path = p
			a.SetTerminated(true)
			return
		case Last:
			a.path = p
		case All:
			a.paths.Append(p)
		}
	}
	if g, ok := n.(tree.Grouper); ok {
		action.TraverseChildren(a, g)
	}
}
