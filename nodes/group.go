// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package nodes provides the standard scene graph node types and registers
// their traversal methods with an [action.Library].
package nodes

import (
	"fmt"
	"slices"

	"cogentcore.org/core/base/errors"

	"github.com/scenekit/core/tree"
)

// Group is a node with an ordered list of children. State changes made by
// its children are seen by the children that follow them, and by the nodes
// after the group.
type Group struct {
	tree.NodeBase

	children []tree.Node
}

// NewGroup returns a new group.
func NewGroup(name ...string) *Group {
	g := &Group{}
	tree.InitNode(g, name...)
	return g
}

// NumChildren returns the number of children.
func (g *Group) NumChildren() int {
	return len(g.children)
}

// Child returns the child at index i.
func (g *Group) Child(i int) tree.Node {
	return g.children[i]
}

// Children returns a copy of the children.
func (g *Group) Children() []tree.Node {
	return slices.Clone(g.children)
}

// AffectsState returns whether any child affects state.
func (g *Group) AffectsState() bool {
	for _, c := range g.children {
		if c.AffectsState() {
			return true
		}
	}
	return false
}

// FindChild returns the index of the first occurrence of c, or -1.
func (g *Group) FindChild(c tree.Node) int {
	return slices.Index(g.children, c)
}

// AddChild appends a child.
func (g *Group) AddChild(c tree.Node) {
	g.InsertChild(c, len(g.children))
}

// InsertChild inserts a child before index i; i may equal the number of
// children to append.
func (g *Group) InsertChild(c tree.Node, i int) {
	if c == nil {
		errors.Log(fmt.Errorf("nodes.Group.InsertChild: nil child for %v", g))
		return
	}
	if i < 0 || i > len(g.children) {
		errors.Log(fmt.Errorf("nodes.Group.InsertChild: index %d out of range [0, %d] for %v", i, len(g.children), g))
		return
	}
	c.AsTree().AddParent(&g.NodeBase)
	g.children = slices.Insert(g.children, i, c)
	g.Touch()
}

// RemoveChild removes the child at index i.
func (g *Group) RemoveChild(i int) {
	if i < 0 || i >= len(g.children) {
		errors.Log(fmt.Errorf("nodes.Group.RemoveChild: index %d out of range [0, %d) for %v", i, len(g.children), g))
		return
	}
	c := g.children[i]
	g.children = slices.Delete(g.children, i, i+1)
	g.Touch()
	c.AsTree().RemoveParent(&g.NodeBase)
}

// RemoveChildNode removes the first occurrence of c.
func (g *Group) RemoveChildNode(c tree.Node) {
	i := g.FindChild(c)
	if i < 0 {
		errors.Log(fmt.Errorf("nodes.Group.RemoveChildNode: %v is not a child of %v", c, g))
		return
	}
	g.RemoveChild(i)
}

// RemoveAllChildren removes every child.
func (g *Group) RemoveAllChildren() {
	if len(g.children) == 0 {
		return
	}
	old := g.children
	g.children = nil
	g.Touch()
	for _, c := range old {
		c.AsTree().RemoveParent(&g.NodeBase)
	}
}

// ReplaceChild replaces the child at index i with c.
func (g *Group) ReplaceChild(i int, c tree.Node) {
	if c == nil {
		errors.Log(fmt.Errorf("nodes.Group.ReplaceChild: nil child for %v", g))
		return
	}
	if i < 0 || i >= len(g.children) {
		errors.Log(fmt.Errorf("nodes.Group.ReplaceChild: index %d out of range [0, %d) for %v", i, len(g.children), g))
		return
	}
	old := g.children[i]
	if old == c {
		return
	}
	c.AsTree().AddParent(&g.NodeBase)
	g.children[i] = c
	g.Touch()
	old.AsTree().RemoveParent(&g.NodeBase)
}

// ResetClone drops the children copied from the source of a [tree.Clone];
// Clone adds copies of them back.
func (g *Group) ResetClone() {
	g.NodeBase.ResetClone()
	g.children = nil
}

// Destroy releases the children.
func (g *Group) Destroy() {
	old := g.children
	g.children = nil
	for _, c := range old {
		c.AsTree().RemoveParent(&g.NodeBase)
	}
}
