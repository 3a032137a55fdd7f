// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nodepath

import (
	"fmt"
	"slices"
)

// Compact is a lookup table built from a list of paths sharing one head,
// used to find the in-path children of the current node in constant time per
// step while traversing. The table is a flat slice of records, one per node
// on some path:
//
//	[numChildren, childIndex..., childRecordOffset...]
//
// with child indices in ascending order. Traversal walks it with
// [Compact.Push] and [Compact.Pop], which must mirror the pushes and pops of
// the current path.
type Compact struct {
	table  []int
	cursor int
	stack  []int
}

// NewCompact builds the lookup table for a non-empty list of paths that all
// start at the same head. The list should be sorted and uniquified.
func NewCompact(l *List) *Compact {
	if l.Len() == 0 {
		panic("nodepath.NewCompact: empty path list")
	}
	if !l.SameHead() {
		panic(fmt.Sprintf("nodepath.NewCompact: paths do not share a head: %v", l.At(0).Head()))
	}
	c := &Compact{}
	c.build(l.paths, 0)
	return c
}

// build appends the record for the node at the given depth, which is common
// to all of the given paths, and returns its offset.
func (c *Compact) build(paths []*Path, depth int) int {
	var indices []int
	for _, p := range paths {
		if p.Length() > depth+1 {
			indices = append(indices, p.Index(depth+1))
		}
	}
	slices.Sort(indices)
	indices = slices.Compact(indices)

	off := len(c.table)
	n := len(indices)
	c.table = append(c.table, n)
	c.table = append(c.table, indices...)
	start := len(c.table)
	c.table = append(c.table, make([]int, n)...)
	for i, idx := range indices {
		var sub []*Path
		for _, p := range paths {
			if p.Length() > depth+1 && p.Index(depth+1) == idx {
				sub = append(sub, p)
			}
		}
		c.table[start+i] = c.build(sub, depth+1)
	}
	return off
}

// Reset moves the cursor back to the head.
func (c *Compact) Reset() {
	c.cursor = 0
	c.stack = c.stack[:0]
}

// Depth returns the depth of the cursor, counting the head as 1, so that it
// matches the length of the current path during traversal.
func (c *Compact) Depth() int {
	return len(c.stack) + 1
}

// Push moves the cursor to the child with the given index and reports
// whether that child lies on some path. Once the cursor has left all paths,
// further pushes stay off-path until popped back.
func (c *Compact) Push(index int) bool {
	c.stack = append(c.stack, c.cursor)
	if c.cursor < 0 {
		return false
	}
	n := c.table[c.cursor]
	kids := c.table[c.cursor+1 : c.cursor+1+n]
	i, found := slices.BinarySearch(kids, index)
	if !found {
		c.cursor = -1
		return false
	}
	c.cursor = c.table[c.cursor+1+n+i]
	return true
}

// Pop moves the cursor back to the parent.
func (c *Compact) Pop() {
	last := len(c.stack) - 1
	c.cursor = c.stack[last]
	c.stack = c.stack[:last]
}

// NumChildren returns the number of in-path children of the cursor node.
// Zero means that a path ends at the cursor.
func (c *Compact) NumChildren() int {
	if c.cursor < 0 {
		return 0
	}
	return c.table[c.cursor]
}

// Children returns the ascending in-path child indices of the cursor node.
// The returned slice aliases the table and must not be modified.
func (c *Compact) Children() []int {
	if c.cursor < 0 {
		return nil
	}
	n := c.table[c.cursor]
	return c.table[c.cursor+1 : c.cursor+1+n]
}
