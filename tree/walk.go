// Copyright (c) 2020, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tree

import (
	"reflect"

	"github.com/jinzhu/copier"

	"cogentcore.org/core/base/errors"
)

// WalkDown calls the given function on the node and all of its descendants
// in depth-first pre-order. Returning [Break] stops descent into the children
// of that node. A node that is shared by several parents is visited once
// per occurrence.
func WalkDown(n Node, fun func(n Node) bool) {
	if n == nil {
		return
	}
	if !fun(n) {
		return
	}
	g, ok := n.(Grouper)
	if !ok {
		return
	}
	for i := range g.NumChildren() {
		WalkDown(g.Child(i), fun)
	}
}

// Count returns the number of node occurrences in the graph under n,
// including n itself.
func Count(n Node) int {
	c := 0
	WalkDown(n, func(Node) bool {
		c++
		return Continue
	})
	return c
}

// ChildAdder is implemented by container nodes that support [Clone].
type ChildAdder interface {
	Grouper
	AddChild(child Node)
}

// CloneResetter is implemented by nodes with internal state that a copy
// made by [Clone] must not share with its source, such as child lists and
// caches. copier copies unexported fields regardless of their tags, so
// [Clone] calls ResetClone on the new node right after copying into it.
type CloneResetter interface {
	ResetClone()
}

// Clone returns a deep copy of the graph under n. Exported fields are copied
// with copier; fields tagged `copier:"-"` are skipped. Sub-graphs that are
// shared within the source are shared in the same way within the copy.
func Clone(n Node) Node {
	return clone(n, map[Node]Node{})
}

func clone(n Node, done map[Node]Node) Node {
	if c, ok := done[n]; ok {
		return c
	}
	nb := n.AsTree()
	c := reflect.New(reflect.TypeOf(nb.This).Elem()).Interface().(Node)
	errors.Log(copier.CopyWithOption(c, nb.This, copier.Option{DeepCopy: true}))
	if r, ok := c.(CloneResetter); ok {
		r.ResetClone()
	}
	InitNode(c, nb.Name)
	done[n] = c
	g, ok := n.(Grouper)
	if !ok {
		return c
	}
	ca, ok := c.(ChildAdder)
	if !ok {
		return c
	}
	for i := range g.NumChildren() {
		ca.AddChild(clone(g.Child(i), done))
	}
	return c
}
