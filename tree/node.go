// Copyright (c) 2018, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tree provides the shared, reference-counted node type that
// scene graphs are built from. A node may appear under several parents,
// so the graph is a DAG rather than a strict tree; every node carries a
// generation id that changes on each modification, and notifications
// travel from a modified node up through all of its parents.
package tree

// Node is an interface that all scene graph nodes satisfy. The only method
// that must be implemented is AsTree, which [NodeBase] provides; all other
// methods have default implementations on NodeBase that higher-level types
// can override.
type Node interface {

	// AsTree returns the [NodeBase] of this Node. Most core
	// tree functionality is implemented on NodeBase.
	AsTree() *NodeBase

	// AffectsState reports whether traversing this node can change the
	// traversal state seen by later siblings. Nodes that do not affect
	// state are skipped on off-path traversals.
	AffectsState() bool
}

// Grouper is implemented by nodes that hold an ordered list of children.
type Grouper interface {
	Node

	// NumChildren returns the number of children.
	NumChildren() int

	// Child returns the child at the given index. It panics if the
	// index is out of range.
	Child(i int) Node
}

// Notifier is an optional interface for nodes that need to react when
// they or one of their descendants are modified, such as nodes that own
// caches. It is called once per notification before the notification
// continues on to the parents.
type Notifier interface {
	NodeNotify(from Node)
}

// Destroyer is an optional interface called when the reference count of
// a node drops to zero.
type Destroyer interface {
	Destroy()
}

// Walk constants that are used in walking functions
// to indicate whether to continue walking.
const (
	// Continue = true can be returned from tree iteration functions to continue
	// processing down the tree, as compared to Break = false which stops this branch.
	Continue = true

	// Break = false can be returned from tree iteration functions to stop processing
	// this branch of the tree.
	Break = false
)
