// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package printer provides an action that prints the nodes it traverses as
// an indented tree, for debugging.
package printer

import (
	"fmt"
	"reflect"

	"github.com/xlab/treeprint"

	"github.com/scenekit/core/action"
	"github.com/scenekit/core/tree"
)

// Action builds a printable tree of the traversed nodes.
type Action struct {
	action.Base

	// ShowPathCodes adds the path code of each node that is not NoPath.
	ShowPathCodes bool

	root  treeprint.Tree
	stack []treeprint.Tree
}

// New returns a new printer action.
func New(lib *action.Library) *Action {
	a := &Action{}
	a.Init(a, lib)
	return a
}

// Register sets the default method of the printer action.
func Register(lib *action.Library) {
	action.SetDefaultMethod(lib.Methods, Visit)
}

// BeginTraversal starts a new tree and traverses the node.
func (a *Action) BeginTraversal(n tree.Node) {
	a.root = nil
	a.stack = a.stack[:0]
	a.Traverse(n)
}

// String returns the printed tree of the last apply.
func (a *Action) String() string {
	if a.root == nil {
		return ""
	}
	return a.root.String()
}

// Label returns the label printed for a node.
func Label(n tree.Node) string {
	typ := reflect.TypeOf(n)
	if typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	if name := n.AsTree().Name; name != "" {
		return fmt.Sprintf("%s %q", typ.Name(), name)
	}
	return typ.Name()
}

// Visit adds the node to the tree and visits its children.
func Visit(a *Action, n tree.Node) {
	label := Label(n)
	if code := a.CurPathCode(); a.ShowPathCodes && code != action.NoPath {
		label += " [" + code.String() + "]"
	}
	g, isGroup := n.(tree.Grouper)
	var br treeprint.Tree
	switch {
	case len(a.stack) == 0:
		a.root = treeprint.NewWithRoot(label)
		br = a.root
	case isGroup:
		br = a.stack[len(a.stack)-1].AddBranch(label)
	default:
		a.stack[len(a.stack)-1].AddNode(label)
		return
	}
	if !isGroup {
		return
	}
	a.stack = append(a.stack, br)
	action.TraverseChildren(a, g)
	a.stack = a.stack[:len(a.stack)-1]
}
