// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package action

import (
	"reflect"
	"slices"

	"github.com/scenekit/core/nodepath"
	"github.com/scenekit/core/state"
	"github.com/scenekit/core/tree"
)

// Base provides the traversal machinery of all actions. It must be embedded
// in every action type and initialized with [Base.Init].
//
// An action may be applied again from within its own traversal, for example
// to replay deferred paths; what it is applied to is saved and restored
// around every apply.
type Base struct {

	// This is the action as its true underlying type.
	This Action

	// Lib is the library of methods and elements used.
	Lib *Library

	typ reflect.Type

	state          *state.State
	enabledCounter uint64

	curPath  nodepath.Path
	pathCode PathCode

	appliedTo   AppliedTo
	appliedNode tree.Node
	appliedPath *nodepath.Path
	appliedList *nodepath.List
	origList    *nodepath.List
	compact     *nodepath.Compact

	terminated bool

	applyDepth int
	locked     bool
	lender     *Base
}

// Init sets up the action. this must be the action that embeds b.
func (b *Base) Init(this Action, lib *Library) {
	b.This = this
	b.Lib = lib
	b.typ = reflect.TypeOf(this)
}

// AsAction returns the Base.
func (b *Base) AsAction() *Base {
	return b
}

// Type returns the type of the action used for method lookup.
func (b *Base) Type() reflect.Type {
	return b.typ
}

// BeginTraversal traverses the node.
func (b *Base) BeginTraversal(n tree.Node) {
	b.Traverse(n)
}

// EndTraversal does nothing.
func (b *Base) EndTraversal(n tree.Node) {}

// ShouldCompactPathList returns true.
func (b *Base) ShouldCompactPathList() bool {
	return true
}

// AbortNow returns whether the action has terminated.
func (b *Base) AbortNow() bool {
	return b.terminated
}

// HasTerminated returns whether the traversal has been terminated.
func (b *Base) HasTerminated() bool {
	return b.terminated
}

// SetTerminated sets whether the traversal is terminated. Once set, groups
// stop visiting children until the current apply returns.
func (b *Base) SetTerminated(v bool) {
	b.terminated = v
}

// Traverse runs the method registered for the node with this action.
func (b *Base) Traverse(n tree.Node) {
	b.Lib.Methods.Lookup(b.typ, reflect.TypeOf(n))(b.This, n)
}

// State returns the traversal state, creating it if needed or if the set of
// enabled elements has changed since it was created.
func (b *Base) State() *state.State {
	c := b.Lib.EnabledCounter()
	if b.state == nil || c != b.enabledCounter {
		b.state = state.New(b.Lib.Elements, b.Lib.EnabledElements(b.typ), b.This)
		b.enabledCounter = c
	}
	return b.state
}

// InvalidateState forces a new state to be created on the next apply.
func (b *Base) InvalidateState() {
	b.state = nil
}

// ShareLock makes applies of this action that happen while parent is being
// applied rely on the scene lock parent already holds, for sub-actions run
// from within another traversal on the same goroutine.
func (b *Base) ShareLock(parent Action) {
	b.lender = parent.AsAction()
}

// AppliedTo returns what the action is applied to.
func (b *Base) AppliedTo() AppliedTo {
	return b.appliedTo
}

// NodeAppliedTo returns the node the action is applied to, if applied to a node.
func (b *Base) NodeAppliedTo() tree.Node {
	return b.appliedNode
}

// PathAppliedTo returns the path the action is applied to, if applied to a path.
func (b *Base) PathAppliedTo() *nodepath.Path {
	return b.appliedPath
}

// PathListAppliedTo returns the path list being traversed, which is a
// sorted subset of the original list when that had to be split by head.
func (b *Base) PathListAppliedTo() *nodepath.List {
	return b.appliedList
}

// OriginalPathListAppliedTo returns the list passed to [Base.ApplyList].
func (b *Base) OriginalPathListAppliedTo() *nodepath.List {
	return b.origList
}

// CompactPathList returns the lookup table of the current path list run,
// or nil.
func (b *Base) CompactPathList() *nodepath.Compact {
	return b.compact
}

// CurPath returns the path from the head to the node being traversed.
// It must not be modified; copy it to keep it.
func (b *Base) CurPath() *nodepath.Path {
	return &b.curPath
}

// CurPathCode returns the path code of the node being traversed.
func (b *Base) CurPathCode() PathCode {
	return b.pathCode
}

// PathCode returns the path code of the node being traversed, and for
// [InPath] the ascending indices of its children that are on a path. The
// indices must not be modified.
func (b *Base) PathCode() (PathCode, []int) {
	if b.pathCode != InPath {
		return b.pathCode, nil
	}
	return InPath, b.inPathIndices()
}

func (b *Base) inPathIndices() []int {
	depth := b.curPath.FullLength()
	if b.appliedTo == AppliedToPath {
		return b.appliedPath.Indices(depth, depth+1)
	}
	if b.compact != nil {
		return b.compact.Children()
	}
	var idx []int
	for _, p := range b.appliedList.Paths() {
		if p.Length() > depth && p.ContainsPath(&b.curPath) {
			idx = append(idx, p.Index(depth))
		}
	}
	slices.Sort(idx)
	return slices.Compact(idx)
}

// PushCurPath appends the child at the given index to the current path and
// updates the path code.
func (b *Base) PushCurPath(index int, child tree.Node) {
	b.curPath.Push(child, index)
	if b.pathCode != InPath {
		return
	}
	curlen := b.curPath.FullLength()
	switch b.appliedTo {
	case AppliedToPath:
		if b.appliedPath.Index(curlen-1) != index {
			b.pathCode = OffPath
		} else if curlen == b.appliedPath.Length() {
			b.pathCode = BelowPath
		}
	case AppliedToPathList:
		if b.compact != nil {
			switch {
			case !b.compact.Push(index):
				b.pathCode = OffPath
			case b.compact.NumChildren() == 0:
				b.pathCode = BelowPath
			}
			return
		}
		code := OffPath
		for _, p := range b.appliedList.Paths() {
			if !p.ContainsPath(&b.curPath) {
				continue
			}
			if p.Length() == curlen {
				code = BelowPath
				break
			}
			code = InPath
		}
		b.pathCode = code
	}
}

// PopCurPath removes the last node of the current path, restoring the path
// code that was current before the matching [Base.PushCurPath].
func (b *Base) PopCurPath(prev PathCode) {
	b.curPath.Pop()
	if prev == InPath && b.appliedTo == AppliedToPathList && b.compact != nil {
		b.compact.Pop()
	}
	b.pathCode = prev
}

// PushCurPathFast appends a placeholder to the current path, to be filled
// with [Base.PopPushCurPath] for each child. It is only valid when the
// path code is not [InPath], which it leaves unchanged.
func (b *Base) PushCurPathFast() {
	b.curPath.PushPlaceholder()
}

// PopPushCurPath replaces the last node of the current path.
func (b *Base) PopPushCurPath(index int, child tree.Node) {
	b.curPath.ReplaceTail(child, index)
}

// PopCurPathFast removes the entry added by [Base.PushCurPathFast].
func (b *Base) PopCurPathFast() {
	b.curPath.Pop()
}

type applied struct {
	to       AppliedTo
	node     tree.Node
	path     *nodepath.Path
	list     *nodepath.List
	origList *nodepath.List
	compact  *nodepath.Compact
	code     PathCode
	curPath  nodepath.Path
}

func (b *Base) begin() applied {
	if b.applyDepth == 0 && (b.lender == nil || b.lender.applyDepth == 0) {
		b.Lib.scene.RLock()
		b.locked = true
	}
	b.applyDepth++
	sv := applied{to: b.appliedTo, node: b.appliedNode, path: b.appliedPath, list: b.appliedList,
		origList: b.origList, compact: b.compact, code: b.pathCode, curPath: b.curPath}
	b.curPath = nodepath.Path{}
	return sv
}

func (b *Base) end(sv applied) {
	b.appliedTo, b.appliedNode, b.appliedPath = sv.to, sv.node, sv.path
	b.appliedList, b.origList, b.compact = sv.list, sv.origList, sv.compact
	b.pathCode, b.curPath = sv.code, sv.curPath
	b.applyDepth--
	if b.applyDepth == 0 && b.locked {
		b.locked = false
		b.Lib.scene.RUnlock()
	}
}

// run traverses from the head inside a state scope.
func (b *Base) run(head tree.Node) {
	nb := head.AsTree()
	nb.Ref()
	defer nb.UnrefNoDelete()
	b.curPath.SetHead(head)
	st := b.State()
	st.Push()
	defer st.Pop()
	b.This.BeginTraversal(head)
	b.This.EndTraversal(head)
}

// Apply traverses the graph under the node.
func (b *Base) Apply(root tree.Node) {
	sv := b.begin()
	defer b.end(sv)
	b.terminated = false
	b.appliedTo = AppliedToNode
	b.appliedNode = root
	b.appliedPath, b.appliedList, b.origList, b.compact = nil, nil, nil, nil
	b.pathCode = NoPath
	if root == nil {
		return
	}
	b.run(root)
}

// ApplyPath traverses the nodes on the path, the nodes that affect state
// before them, and the whole graph under the tail of the path.
// It panics if the path is empty.
func (b *Base) ApplyPath(p *nodepath.Path) {
	if p == nil || p.Length() == 0 || p.Head() == nil {
		panic("action.Base.ApplyPath: empty path")
	}
	sv := b.begin()
	defer b.end(sv)
	b.terminated = false
	b.appliedTo = AppliedToPath
	b.appliedPath = p
	b.appliedNode, b.appliedList, b.origList, b.compact = nil, nil, nil, nil
	b.pathCode = BelowPath
	if p.Length() > 1 {
		b.pathCode = InPath
	}
	b.run(p.Head())
}

// ApplyList traverses all of the paths in the list. When obeysRules is
// true, the caller guarantees that the list is sorted, has no duplicates or
// paths continuing below other paths, and that all paths share one head.
// Otherwise the list is sorted and uniquified first, and traversed once
// for each distinct head, stopping early if the traversal terminates.
func (b *Base) ApplyList(list *nodepath.List, obeysRules bool) {
	if list.Len() == 0 {
		return
	}
	sv := b.begin()
	defer b.end(sv)
	b.terminated = false
	b.appliedTo = AppliedToPathList
	b.origList = list
	b.appliedNode, b.appliedPath = nil, nil
	if !obeysRules {
		list = list.Copy()
		list.Sort()
		list.Uniquify()
	}
	if obeysRules || list.SameHead() {
		b.runList(list)
		return
	}
	paths := list.Paths()
	start := 0
	for i := 1; i <= len(paths); i++ {
		if i < len(paths) && paths[i].Head() == paths[start].Head() {
			continue
		}
		b.runList(nodepath.NewList(paths[start:i]...))
		if b.terminated {
			break
		}
		start = i
	}
}

func (b *Base) runList(list *nodepath.List) {
	b.appliedList = list
	b.compact = nil
	b.pathCode = BelowPath
	if list.At(0).Length() > 1 {
		b.pathCode = InPath
	}
	if b.This.ShouldCompactPathList() {
		b.compact = nodepath.NewCompact(list)
	}
	b.run(list.At(0).Head())
}

// ApplyTo applies this action to whatever other is currently applied to.
func (b *Base) ApplyTo(other Action) {
	o := other.AsAction()
	switch o.appliedTo {
	case AppliedToNode:
		b.Apply(o.appliedNode)
	case AppliedToPath:
		b.ApplyPath(o.appliedPath)
	case AppliedToPathList:
		b.ApplyList(o.origList, false)
	}
}
