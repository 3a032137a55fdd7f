// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package action

import (
	"github.com/scenekit/core/tree"
)

// TraverseChildren traverses the children of g according to the current
// path code. For [InPath], only the children on a path and the children
// before them that affect state are traversed; for [OffPath], only the
// children that affect state; otherwise all children. It stops as soon as
// the action terminates.
func TraverseChildren(a Action, g tree.Grouper) {
	TraverseChildrenFunc(a, g, nil)
}

// TraverseChildrenFunc is like [TraverseChildren], but calls visit instead
// of [Base.Traverse] for each child when visit is not nil.
func TraverseChildrenFunc(a Action, g tree.Grouper, visit func(c tree.Node)) {
	b := a.AsAction()
	n := g.NumChildren()
	if n == 0 {
		return
	}
	if visit == nil {
		visit = b.Traverse
	}
	code, indices := b.PathCode()
	if code == InPath {
		if len(indices) == 0 {
			return
		}
		last := min(indices[len(indices)-1], n-1)
		k := 0
		for i := 0; i <= last && !b.terminated; i++ {
			c := g.Child(i)
			onPath := k < len(indices) && indices[k] == i
			if onPath {
				k++
			} else if !c.AffectsState() {
				continue
			}
			b.PushCurPath(i, c)
			visit(c)
			b.PopCurPath(code)
		}
		return
	}
	b.PushCurPathFast()
	for i := 0; i < n && !b.terminated; i++ {
		c := g.Child(i)
		if code == OffPath && !c.AffectsState() {
			continue
		}
		b.PopPushCurPath(i, c)
		visit(c)
	}
	b.PopCurPathFast()
}

// LastInPathIndex returns the last child index on a path, clamped to the
// number of children, or -1 when the node is not [InPath].
func LastInPathIndex(a Action, numChildren int) int {
	code, indices := a.AsAction().PathCode()
	if code != InPath || len(indices) == 0 {
		return -1
	}
	return min(indices[len(indices)-1], numChildren-1)
}
