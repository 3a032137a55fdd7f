// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/scenekit/core/tree"
)

type leaf struct {
	NodeBase
	Value    int
	notified int
}

func (l *leaf) NodeNotify(from Node) { l.notified++ }

type group struct {
	NodeBase
	kids     []Node
	notified []Node
}

func (g *group) NumChildren() int { return len(g.kids) }
func (g *group) Child(i int) Node { return g.kids[i] }
func (g *group) AddChild(c Node) {
	g.kids = append(g.kids, c)
	c.AsTree().AddParent(&g.NodeBase)
}
func (g *group) NodeNotify(from Node) { g.notified = append(g.notified, from) }
func (g *group) ResetClone() {
	g.NodeBase.ResetClone()
	g.kids = nil
	g.notified = nil
}

func newLeaf(name string) *leaf {
	l := &leaf{}
	InitNode(l, name)
	return l
}

func newGroup(name string) *group {
	g := &group{}
	InitNode(g, name)
	return g
}

func TestInitNode(t *testing.T) {
	a := newLeaf("a")
	b := newLeaf("")
	assert.Equal(t, a, a.This)
	assert.NotEqual(t, a.ID(), b.ID())
	assert.Equal(t, "a", a.String())
	assert.Contains(t, b.String(), "#")
}

func TestTouchPropagates(t *testing.T) {
	root := newGroup("root")
	mid := newGroup("mid")
	other := newGroup("other")
	l := newLeaf("l")
	root.AddChild(mid)
	mid.AddChild(l)
	root.AddChild(other)

	rg, mg, og := root.Generation(), mid.Generation(), other.Generation()
	l.Touch()
	assert.NotEqual(t, rg, root.Generation())
	assert.NotEqual(t, mg, mid.Generation())
	assert.Equal(t, og, other.Generation())
	assert.Equal(t, 1, l.notified)
	assert.Equal(t, []Node{l}, mid.notified)
	assert.Equal(t, []Node{l}, root.notified)
	assert.Empty(t, other.notified)
}

func TestSharedChildNotifiesAllParents(t *testing.T) {
	a := newGroup("a")
	b := newGroup("b")
	l := newLeaf("shared")
	a.AddChild(l)
	b.AddChild(l)
	b.AddChild(l)
	assert.Equal(t, 3, l.NumParents())
	assert.Equal(t, 3, l.RefCount())
	l.Touch()
	assert.Len(t, a.notified, 1)
	assert.Len(t, b.notified, 2)

	l.RemoveParent(&b.NodeBase)
	assert.Equal(t, 2, l.NumParents())
	assert.Equal(t, 2, l.RefCount())
}

func TestWalkDownAndCount(t *testing.T) {
	root := newGroup("root")
	g := newGroup("g")
	root.AddChild(g)
	root.AddChild(newLeaf("x"))
	g.AddChild(newLeaf("y"))
	var names []string
	WalkDown(root, func(n Node) bool {
		names = append(names, n.AsTree().Name)
		return n != Node(g)
	})
	assert.Equal(t, []string{"root", "g", "x"}, names)
	assert.Equal(t, 4, Count(root))
}

func TestClonePreservesSharing(t *testing.T) {
	root := newGroup("root")
	l := newLeaf("l")
	l.Value = 7
	root.AddChild(l)
	root.AddChild(l)

	c := Clone(root).(*group)
	assert.NotEqual(t, root.ID(), c.ID())
	assert.Equal(t, "root", c.Name)
	assert.Equal(t, 2, c.NumChildren())
	cl := c.Child(0).(*leaf)
	assert.Same(t, cl, c.Child(1))
	assert.NotSame(t, l, cl)
	assert.Equal(t, 7, cl.Value)
	assert.Equal(t, 2, cl.NumParents())
	assert.Equal(t, 2, l.NumParents())
	assert.Equal(t, 2, l.RefCount())
	assert.Equal(t, 0, c.RefCount())
	assert.Empty(t, c.notified)
}
