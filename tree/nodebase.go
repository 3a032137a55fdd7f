// Copyright (c) 2018, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tree

import (
	"log/slog"
	"slices"
	"strconv"
	"sync"
	"sync/atomic"
	"weak"
)

// lastID is the source of unique node ids.
var lastID atomic.Uint64

// NodeBase implements the [Node] interface and provides the core functionality
// shared by all scene graph nodes. You must use NodeBase as an embedded struct
// in all higher-level node types, and initialize it with [InitNode] so that
// the [NodeBase.This] field and the node id are set.
type NodeBase struct {

	// Name is an optional name used for searching and printing.
	Name string `copier:"-"`

	// This is the value of this Node as its true underlying type. This allows
	// methods defined on base types to call methods defined on higher-level types.
	This Node `copier:"-" json:"-"`

	// id is the unique identity of this node, assigned once.
	id uint64

	// generation changes every time this node or one of its
	// descendants is modified.
	generation atomic.Uint64

	// refs is the reference count held by parents, paths and actions.
	refs atomic.Int32

	// mu protects parents.
	mu sync.Mutex

	// parents are weak back-references to the nodes holding this one as a child,
	// with one entry per occurrence.
	parents []weak.Pointer[NodeBase]
}

// InitNode initializes the given node: it sets [NodeBase.This], assigns a new
// unique id and the first generation, and sets the name if one is given.
// It must be called exactly once on every new node.
func InitNode(n Node, name ...string) {
	nb := n.AsTree()
	nb.This = n
	nb.id = lastID.Add(1)
	nb.generation.Store(lastID.Add(1))
	if len(name) > 0 {
		nb.Name = name[0]
	}
}

// AsTree returns the [NodeBase] for this Node.
func (n *NodeBase) AsTree() *NodeBase {
	return n
}

// AffectsState returns false; state-changing node types override this.
func (n *NodeBase) AffectsState() bool {
	return false
}

// ID returns the unique identity of the node, which never changes.
func (n *NodeBase) ID() uint64 {
	return n.id
}

// Generation returns the current generation id of the node. It is
// replaced with a new process-unique value whenever the node or one of its
// descendants is modified, so two equal generations imply no change.
func (n *NodeBase) Generation() uint64 {
	return n.generation.Load()
}

// String returns the name of the node, or its id if it has no name.
func (n *NodeBase) String() string {
	if n == nil || n.This == nil {
		return "nil"
	}
	if n.Name != "" {
		return n.Name
	}
	return "#" + strconv.FormatUint(n.id, 10)
}

// Touch marks the node as modified and notifies it and all of its
// ancestors. Node types call this from every field setter.
func (n *NodeBase) Touch() {
	if n.This == nil {
		slog.Error("tree.NodeBase.Touch: node is not initialized; use InitNode", "node", n.Name)
		return
	}
	n.Notify(n.This)
}

// Notify bumps the generation of this node, lets it react through
// [Notifier], and forwards the notification to every parent.
// from is the node that was originally modified.
func (n *NodeBase) Notify(from Node) {
	n.generation.Store(lastID.Add(1))
	if nf, ok := n.This.(Notifier); ok {
		nf.NodeNotify(from)
	}
	for _, p := range n.Parents() {
		p.Notify(from)
	}
}

// Parents returns the live parents of the node, one entry per occurrence
// as a child. Parents that have been garbage collected are dropped.
func (n *NodeBase) Parents() []*NodeBase {
	n.mu.Lock()
	defer n.mu.Unlock()
	ps := make([]*NodeBase, 0, len(n.parents))
	n.parents = slices.DeleteFunc(n.parents, func(w weak.Pointer[NodeBase]) bool {
		p := w.Value()
		if p == nil {
			return true
		}
		ps = append(ps, p)
		return false
	})
	return ps
}

// NumParents returns the number of parent occurrences.
func (n *NodeBase) NumParents() int {
	return len(n.Parents())
}

// AddParent records p as a parent and takes a reference on this node.
// Container nodes call this when they insert a child.
func (n *NodeBase) AddParent(p *NodeBase) {
	n.mu.Lock()
	n.parents = append(n.parents, weak.Make(p))
	n.mu.Unlock()
	n.Ref()
}

// RemoveParent removes one occurrence of p from the parents and releases
// the reference taken by [NodeBase.AddParent].
func (n *NodeBase) RemoveParent(p *NodeBase) {
	wp := weak.Make(p)
	n.mu.Lock()
	i := slices.Index(n.parents, wp)
	if i >= 0 {
		n.parents = slices.Delete(n.parents, i, i+1)
	}
	n.mu.Unlock()
	if i < 0 {
		slog.Error("tree.NodeBase.RemoveParent: not a parent", "node", n, "parent", p)
		return
	}
	n.Unref()
}

// ResetClone clears the parents and the reference count copied from the
// source of a [Clone].
func (n *NodeBase) ResetClone() {
	n.mu = sync.Mutex{}
	n.parents = nil
	n.refs.Store(0)
}

// Ref increments the reference count.
func (n *NodeBase) Ref() {
	n.refs.Add(1)
}

// Unref decrements the reference count, destroying the node through
// [Destroyer] when it drops to zero.
func (n *NodeBase) Unref() {
	c := n.refs.Add(-1)
	if c < 0 {
		slog.Error("tree.NodeBase.Unref: reference count below zero", "node", n)
		n.refs.Store(0)
		return
	}
	if c == 0 {
		if d, ok := n.This.(Destroyer); ok {
			d.Destroy()
		}
	}
}

// UnrefNoDelete decrements the reference count without destroying the
// node when it reaches zero.
func (n *NodeBase) UnrefNoDelete() {
	if n.refs.Add(-1) < 0 {
		n.refs.Store(0)
	}
}

// RefCount returns the current reference count.
func (n *NodeBase) RefCount() int {
	return int(n.refs.Load())
}
