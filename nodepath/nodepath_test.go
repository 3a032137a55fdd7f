// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nodepath_test

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/scenekit/core/nodepath"
	"github.com/scenekit/core/tree"
)

type node struct {
	tree.NodeBase
	kids []tree.Node
}

func (n *node) NumChildren() int      { return len(n.kids) }
func (n *node) Child(i int) tree.Node { return n.kids[i] }

func newNode(name string, kids ...tree.Node) *node {
	n := &node{kids: kids}
	tree.InitNode(n, name)
	return n
}

// randomGraph builds a tree with the given fanout and depth and returns
// its root and every path from the root to one of its nodes.
func randomGraph(fanout, depth int) (*node, []*Path) {
	root := newNode("root")
	var all []*Path
	var grow func(n *node, p *Path, d int)
	grow = func(n *node, p *Path, d int) {
		if d == depth {
			return
		}
		for i := range fanout {
			c := newNode("")
			n.kids = append(n.kids, c)
			cp := p.Copy()
			cp.Append(i)
			all = append(all, cp)
			grow(c, cp, d+1)
		}
	}
	grow(root, New(root), 0)
	return root, all
}

func TestPathPushPop(t *testing.T) {
	c := newNode("c")
	b := newNode("b", newNode("x"), c)
	a := newNode("a", b)
	p := New(a)
	p.Append(0)
	p.Append(1)
	assert.Equal(t, 3, p.Length())
	assert.Equal(t, tree.Node(c), p.Tail())
	assert.Equal(t, 1, p.Index(2))
	assert.Equal(t, -1, p.Index(0))
	assert.Equal(t, "/a/0:b/1:c", p.String())

	p.PushPlaceholder()
	assert.Equal(t, 4, p.FullLength())
	assert.Equal(t, 3, p.Length())
	assert.Equal(t, 3, p.Copy().FullLength())
	p.Pop()
	p.Pop()
	assert.Equal(t, tree.Node(b), p.Tail())
	p.ReplaceTail(c, 5)
	assert.Equal(t, 5, p.Index(1))

	assert.Panics(t, func() { New(newNode("leaf")).Append(0) })
}

func TestPathContainsAndCompare(t *testing.T) {
	root, all := randomGraph(2, 2)
	ab := all[1].Copy()
	a := New(root)
	a.Append(0)
	assert.True(t, ab.ContainsPath(a))
	assert.False(t, a.ContainsPath(ab))
	assert.True(t, a.ContainsNode(root))
	assert.Negative(t, Compare(a, ab))
	assert.Zero(t, Compare(a, a.Copy()))
	assert.True(t, a.Equal(a.Copy()))

	other := New(newNode("other"))
	assert.NotZero(t, Compare(a, other))
}

func TestListSortUniquify(t *testing.T) {
	root, _ := randomGraph(3, 3)
	mk := func(idx ...int) *Path {
		p := New(root)
		for _, i := range idx {
			p.Append(i)
		}
		return p
	}
	l := NewList(mk(2, 1), mk(0, 1, 2), mk(0), mk(2, 1), mk(1, 1), mk(0, 2))
	l.Sort()
	l.Uniquify()
	require.Equal(t, 3, l.Len())
	assert.True(t, l.At(0).Equal(mk(0)))
	assert.True(t, l.At(1).Equal(mk(1, 1)))
	assert.True(t, l.At(2).Equal(mk(2, 1)))
	assert.True(t, l.SameHead())
	assert.Equal(t, 1, l.FindIndex(mk(1, 1)))

	l.Append(New(newNode("other")))
	assert.False(t, l.SameHead())
}

// bruteCode classifies the path cur against the list by scanning every path.
// It returns 0 for off-path, 1 for in-path and 2 for below-path, along with
// the in-path child indices.
func bruteCode(list *List, cur *Path) (int, []int) {
	var kids []int
	for _, p := range list.Paths() {
		if cur.ContainsPath(p) {
			return 2, nil
		}
		if p.ContainsPath(cur) {
			kids = append(kids, p.Index(cur.Length()))
		}
	}
	if len(kids) == 0 {
		return 0, nil
	}
	slices.Sort(kids)
	return 1, slices.Compact(kids)
}

func TestCompactMatchesBruteForce(t *testing.T) {
	for _, count := range []int{1, 2, 10, 100} {
		rng := rand.New(rand.NewPCG(uint64(count), 99))
		root, all := randomGraph(4, 4)
		list := NewList()
		for range count {
			list.Append(all[rng.IntN(len(all))])
		}
		list.Sort()
		list.Uniquify()
		c := NewCompact(list)
		assert.Equal(t, 1, c.Depth())

		cur := New(root)
		visited := 0
		var walk func(n *node)
		walk = func(n *node) {
			_, want := bruteCode(list, cur)
			assert.Equal(t, want, slices.Clone(c.Children()), "children at %v", cur)
			for i, k := range n.kids {
				cur.Push(k, i)
				in := c.Push(i)
				assert.Equal(t, cur.Length(), c.Depth())
				code, _ := bruteCode(list, cur)
				visited++
				switch {
				case !in:
					assert.Equal(t, 0, code, "off path at %v", cur)
				case c.NumChildren() == 0:
					assert.Equal(t, 2, code, "below path at %v", cur)
				default:
					assert.Equal(t, 1, code, "in path at %v", cur)
					walk(k.(*node))
				}
				c.Pop()
				cur.Pop()
			}
		}
		walk(root)
		assert.Positive(t, visited)
		assert.Equal(t, 1, c.Depth())
	}
}

func TestCompactUnsortedInput(t *testing.T) {
	root, _ := randomGraph(3, 2)
	mk := func(idx ...int) *Path {
		p := New(root)
		for _, i := range idx {
			p.Append(i)
		}
		return p
	}
	c := NewCompact(NewList(mk(2, 0), mk(0, 1), mk(2, 2)))
	assert.Equal(t, []int{0, 2}, slices.Clone(c.Children()))
	assert.True(t, c.Push(2))
	assert.Equal(t, []int{0, 2}, slices.Clone(c.Children()))
	assert.False(t, c.Push(1))
	assert.False(t, c.Push(0))
	c.Pop()
	c.Pop()
	c.Pop()
	assert.Equal(t, 2, c.NumChildren())
}

func TestCompactPanics(t *testing.T) {
	assert.Panics(t, func() { NewCompact(NewList()) })
	assert.Panics(t, func() {
		NewCompact(NewList(New(newNode("a")), New(newNode("b"))))
	})
}
