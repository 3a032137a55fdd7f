// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package nodepath provides paths through a scene graph, sorted lists of
// paths, and the compact lookup table used to traverse many paths at once.
package nodepath

import (
	"fmt"
	"strings"

	"github.com/scenekit/core/tree"
)

// Path is a chain of nodes from a head node downward, where each entry after
// the head records the child index it was reached through. A path is always
// anchored at its head, so the index of the head is -1.
//
// During traversal, a trailing placeholder entry (nil node, index -1) may be
// pushed and then overwritten in place for each child; see
// [Path.PushPlaceholder] and [Path.ReplaceTail].
type Path struct {
	nodes   []tree.Node
	indices []int
}

// New returns a new path with the given head, which may be nil.
func New(head tree.Node) *Path {
	p := &Path{}
	if head != nil {
		p.SetHead(head)
	}
	return p
}

// SetHead truncates the path and sets its head.
func (p *Path) SetHead(head tree.Node) {
	p.nodes = append(p.nodes[:0], head)
	p.indices = append(p.indices[:0], -1)
}

// Append adds the child at the given index of the current tail.
// It panics if the tail is not a [tree.Grouper] or the index is out of range.
func (p *Path) Append(index int) {
	g, ok := p.Tail().(tree.Grouper)
	if !ok {
		panic(fmt.Sprintf("nodepath.Path.Append: tail %v has no children", p.Tail()))
	}
	p.Push(g.Child(index), index)
}

// Push appends the given node reached through the given index without
// checking that it is actually a child of the tail.
func (p *Path) Push(n tree.Node, index int) {
	p.nodes = append(p.nodes, n)
	p.indices = append(p.indices, index)
}

// PushPlaceholder appends an empty entry to be filled with [Path.ReplaceTail].
func (p *Path) PushPlaceholder() {
	p.Push(nil, -1)
}

// ReplaceTail overwrites the last entry.
func (p *Path) ReplaceTail(n tree.Node, index int) {
	last := len(p.nodes) - 1
	p.nodes[last] = n
	p.indices[last] = index
}

// Pop removes the last entry.
func (p *Path) Pop() {
	last := len(p.nodes) - 1
	p.nodes = p.nodes[:last]
	p.indices = p.indices[:last]
}

// Truncate shortens the path to the given full length.
func (p *Path) Truncate(length int) {
	p.nodes = p.nodes[:length]
	p.indices = p.indices[:length]
}

// FullLength returns the number of entries including the head and any
// trailing placeholder.
func (p *Path) FullLength() int {
	return len(p.nodes)
}

// Length returns the number of real entries, which excludes a trailing
// placeholder.
func (p *Path) Length() int {
	n := len(p.nodes)
	if n > 0 && p.nodes[n-1] == nil {
		return n - 1
	}
	return n
}

// Head returns the first node, or nil if the path is empty.
func (p *Path) Head() tree.Node {
	if len(p.nodes) == 0 {
		return nil
	}
	return p.nodes[0]
}

// Tail returns the last node, or nil if the path is empty.
func (p *Path) Tail() tree.Node {
	if len(p.nodes) == 0 {
		return nil
	}
	return p.nodes[len(p.nodes)-1]
}

// Node returns the node at the given depth, where 0 is the head.
func (p *Path) Node(depth int) tree.Node {
	return p.nodes[depth]
}

// Index returns the child index at the given depth; the head has index -1.
func (p *Path) Index(depth int) int {
	return p.indices[depth]
}

// Indices returns the child indices for depths [from, to). The returned
// slice aliases the path and must not be modified.
func (p *Path) Indices(from, to int) []int {
	return p.indices[from:to:to]
}

// Copy returns a copy of the real entries of the path.
func (p *Path) Copy() *Path {
	n := p.Length()
	return &Path{
		nodes:   append([]tree.Node(nil), p.nodes[:n]...),
		indices: append([]int(nil), p.indices[:n]...),
	}
}

// ContainsPath reports whether other is a prefix of p, meaning that p passes
// through the same head, nodes and child indices as other.
func (p *Path) ContainsPath(other *Path) bool {
	n := other.Length()
	if n == 0 || p.Length() < n {
		return false
	}
	for i := range n {
		if p.nodes[i] != other.nodes[i] || p.indices[i] != other.indices[i] {
			return false
		}
	}
	return true
}

// Equal reports whether both paths have the same real entries.
func (p *Path) Equal(other *Path) bool {
	return p.Length() == other.Length() && p.ContainsPath(other)
}

// ContainsNode reports whether n appears anywhere on the path.
func (p *Path) ContainsNode(n tree.Node) bool {
	for _, pn := range p.nodes[:p.Length()] {
		if pn == n {
			return true
		}
	}
	return false
}

// Compare orders paths first by the id of their heads, then by their child
// indices, with a path sorting before any longer path it is a prefix of.
func Compare(a, b *Path) int {
	ah, bh := a.Head(), b.Head()
	switch {
	case ah == nil && bh != nil:
		return -1
	case ah != nil && bh == nil:
		return 1
	case ah != nil && bh != nil:
		ai, bi := ah.AsTree().ID(), bh.AsTree().ID()
		if ai != bi {
			if ai < bi {
				return -1
			}
			return 1
		}
	}
	al, bl := a.Length(), b.Length()
	for i := 1; i < min(al, bl); i++ {
		if d := a.indices[i] - b.indices[i]; d != 0 {
			return d
		}
	}
	return al - bl
}

// String returns the path as a slash-separated list of node names.
func (p *Path) String() string {
	var b strings.Builder
	for i, n := range p.nodes {
		b.WriteByte('/')
		if n == nil {
			b.WriteString("-")
			continue
		}
		if i > 0 {
			fmt.Fprintf(&b, "%d:", p.indices[i])
		}
		b.WriteString(n.AsTree().String())
	}
	return b.String()
}
