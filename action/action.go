// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package action provides scene graph traversal: an [Action] is applied to a
// node, a path or a list of paths, and visits nodes by looking up a method
// for each (action type, node type) pair in a [Registry]. While traversing,
// the action keeps the current path and a [PathCode] telling nodes whether
// they are on, below or off the paths being applied to.
package action

import (
	"github.com/scenekit/core/tree"
)

// Action is implemented by all traversal actions, by embedding [Base].
type Action interface {

	// AsAction returns the embedded [Base].
	AsAction() *Base

	// BeginTraversal is called to traverse the head node of an apply.
	// The default traverses it; actions override this to set up before
	// and clean up after the traversal.
	BeginTraversal(n tree.Node)

	// EndTraversal is called after BeginTraversal returns.
	EndTraversal(n tree.Node)

	// ShouldCompactPathList returns whether path lists are traversed using
	// a [nodepath.Compact] lookup table, rather than scanning the list.
	ShouldCompactPathList() bool

	// AbortNow is called by groups before traversing each child, and
	// returns whether the child should be skipped.
	AbortNow() bool
}

// PathCode describes how the node being traversed relates to the path or
// paths the action is applied to.
type PathCode int32

const (
	// NoPath is used when the action is applied to a node.
	NoPath PathCode = iota

	// InPath means the node is on a path and some path continues below it.
	InPath

	// BelowPath means a path ends at or above the node, so everything
	// under it is traversed.
	BelowPath

	// OffPath means the node is not on any path; only children that
	// affect state are traversed.
	OffPath
)

func (c PathCode) String() string {
	switch c {
	case NoPath:
		return "NoPath"
	case InPath:
		return "InPath"
	case BelowPath:
		return "BelowPath"
	case OffPath:
		return "OffPath"
	}
	return "PathCode(?)"
}

// AppliedTo is what an action is currently applied to.
type AppliedTo int32

const (
	AppliedToNode AppliedTo = iota
	AppliedToPath
	AppliedToPathList
)

func (a AppliedTo) String() string {
	switch a {
	case AppliedToNode:
		return "Node"
	case AppliedToPath:
		return "Path"
	case AppliedToPathList:
		return "PathList"
	}
	return "AppliedTo(?)"
}
