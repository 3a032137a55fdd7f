// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package action_test

import (
	"image/color"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scenekit/core/action"
	"github.com/scenekit/core/config"
	"github.com/scenekit/core/element"
	"github.com/scenekit/core/nodepath"
	"github.com/scenekit/core/nodes"
	"github.com/scenekit/core/state"
	"github.com/scenekit/core/tree"
)

// visitAction records every node it visits and the path code it had.
type visitAction struct {
	action.Base

	visits   []string
	codes    []action.PathCode
	compacts []*nodepath.Compact
	stopAt   string
	onVisit  func(a *visitAction, n tree.Node)

	noCompact bool
}

func (a *visitAction) ShouldCompactPathList() bool {
	return !a.noCompact
}

func newVisitAction(lib *action.Library) *visitAction {
	a := &visitAction{}
	a.Init(a, lib)
	return a
}

func (a *visitAction) BeginTraversal(n tree.Node) {
	a.compacts = append(a.compacts, a.CompactPathList())
	a.Traverse(n)
}

func newLibrary() *action.Library {
	lib := nodes.NewLibrary(config.New(), nil)
	action.SetDefaultMethod(lib.Methods, func(a *visitAction, n tree.Node) {
		a.visits = append(a.visits, n.AsTree().Name)
		a.codes = append(a.codes, a.CurPathCode())
		if a.onVisit != nil {
			a.onVisit(a, n)
		}
		if n.AsTree().Name == a.stopAt {
			a.SetTerminated(true)
			return
		}
		if g, ok := n.(tree.Grouper); ok {
			action.TraverseChildren(a, g)
		}
	})
	return lib
}

// testScene returns root{m, s1{c1}, s2{c2, c3}}.
func testScene() *nodes.Group {
	root := nodes.NewGroup("root")
	root.AddChild(nodes.NewMaterial(color.RGBA{A: 255}, "m"))
	s1 := nodes.NewSeparator("s1")
	s1.AddChild(nodes.NewCube("c1"))
	s2 := nodes.NewSeparator("s2")
	s2.AddChild(nodes.NewCube("c2"))
	s2.AddChild(nodes.NewCube("c3"))
	root.AddChild(s1)
	root.AddChild(s2)
	return root
}

func path(head tree.Node, indices ...int) *nodepath.Path {
	p := nodepath.New(head)
	for _, i := range indices {
		p.Append(i)
	}
	return p
}

func TestApplyNode(t *testing.T) {
	a := newVisitAction(newLibrary())
	a.Apply(testScene())
	assert.Equal(t, []string{"root", "m", "s1", "c1", "s2", "c2", "c3"}, a.visits)
	for _, c := range a.codes {
		assert.Equal(t, action.NoPath, c)
	}
	assert.Nil(t, a.NodeAppliedTo(), "applied data is restored after the apply")
}

func TestApplyPath(t *testing.T) {
	root := testScene()
	a := newVisitAction(newLibrary())
	a.ApplyPath(path(root, 2, 0))
	assert.Equal(t, []string{"root", "m", "s2", "c2"}, a.visits)
	assert.Equal(t, []action.PathCode{action.InPath, action.OffPath, action.InPath, action.BelowPath}, a.codes)

	a = newVisitAction(a.Lib)
	a.ApplyPath(path(root, 1))
	assert.Equal(t, []string{"root", "m", "s1", "c1"}, a.visits)
	assert.Equal(t, []action.PathCode{action.InPath, action.OffPath, action.BelowPath, action.BelowPath}, a.codes)

	a = newVisitAction(a.Lib)
	a.ApplyPath(nodepath.New(root))
	assert.Len(t, a.visits, 7)
	for _, c := range a.codes {
		assert.Equal(t, action.BelowPath, c)
	}

	assert.Panics(t, func() { a.ApplyPath(&nodepath.Path{}) })
}

func TestApplyList(t *testing.T) {
	root := testScene()
	a := newVisitAction(newLibrary())
	list := nodepath.NewList(path(root, 2, 1), path(root, 1, 0))
	a.ApplyList(list, false)
	assert.Equal(t, []string{"root", "m", "s1", "c1", "s2", "c3"}, a.visits)
	assert.Equal(t, []action.PathCode{action.InPath, action.OffPath, action.InPath, action.BelowPath,
		action.InPath, action.BelowPath}, a.codes)
	require.Len(t, a.compacts, 1)
	assert.NotNil(t, a.compacts[0])
	assert.Equal(t, path(root, 2, 1), list.At(0), "the caller's list is not reordered")

	a = newVisitAction(a.Lib)
	a.ApplyList(nodepath.NewList(path(root, 2), path(root, 2, 0)), false)
	assert.Equal(t, []string{"root", "m", "s2", "c2", "c3"}, a.visits, "paths below another path are dropped")

	a = newVisitAction(a.Lib)
	a.ApplyList(&nodepath.List{}, false)
	assert.Empty(t, a.visits)
}

func TestApplyListHeads(t *testing.T) {
	ra := nodes.NewGroup("ra")
	ra.AddChild(nodes.NewCube("a1"))
	ra.AddChild(nodes.NewCube("a2"))
	rb := nodes.NewGroup("rb")
	rb.AddChild(nodes.NewCube("b1"))
	list := nodepath.NewList(path(rb, 0), path(ra, 1), path(ra, 0))

	a := newVisitAction(newLibrary())
	a.ApplyList(list, false)
	assert.Equal(t, []string{"ra", "a1", "a2", "rb", "b1"}, a.visits)
	require.Len(t, a.compacts, 2)
	assert.NotSame(t, a.compacts[0], a.compacts[1])
	assert.Nil(t, a.OriginalPathListAppliedTo(), "the list is only kept while applying")

	a = newVisitAction(a.Lib)
	a.stopAt = "a2"
	a.ApplyList(list, false)
	assert.Equal(t, []string{"ra", "a1", "a2"}, a.visits)
	assert.True(t, a.HasTerminated())
	assert.Len(t, a.compacts, 1)
}

func TestApplyListWithoutCompaction(t *testing.T) {
	root := testScene()
	tests := []struct {
		name string
		list *nodepath.List
	}{
		{"two branches", nodepath.NewList(path(root, 2, 1), path(root, 1, 0))},
		{"shared prefix", nodepath.NewList(path(root, 2, 0), path(root, 2, 1))},
		{"path below another", nodepath.NewList(path(root, 2), path(root, 2, 0))},
		{"head only", nodepath.NewList(nodepath.New(root))},
	}
	lib := newLibrary()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			compacted := newVisitAction(lib)
			compacted.ApplyList(tt.list, false)

			scanned := newVisitAction(lib)
			scanned.noCompact = true
			scanned.ApplyList(tt.list, false)

			require.Len(t, scanned.compacts, 1)
			assert.Nil(t, scanned.compacts[0])
			assert.Equal(t, compacted.visits, scanned.visits)
			assert.Equal(t, compacted.codes, scanned.codes)
		})
	}
}

func TestTerminationStopsAncestorSiblings(t *testing.T) {
	root := testScene()
	root.AddChild(nodes.NewMaterial(color.RGBA{A: 255}, "tail"))
	tests := []struct {
		name      string
		noCompact bool
		apply     func(a *visitAction)
		want      []string
	}{
		{"node", false, func(a *visitAction) { a.Apply(root) },
			[]string{"root", "m", "s1", "c1", "s2", "c2"}},
		{"path", false, func(a *visitAction) { a.ApplyPath(path(root, 2)) },
			[]string{"root", "m", "s2", "c2"}},
		{"list", false, func(a *visitAction) {
			a.ApplyList(nodepath.NewList(path(root, 1), path(root, 2), path(root, 3)), false)
		}, []string{"root", "m", "s1", "c1", "s2", "c2"}},
		{"list without compaction", true, func(a *visitAction) {
			a.ApplyList(nodepath.NewList(path(root, 1), path(root, 2), path(root, 3)), false)
		}, []string{"root", "m", "s1", "c1", "s2", "c2"}},
	}
	lib := newLibrary()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newVisitAction(lib)
			a.noCompact = tt.noCompact
			a.stopAt = "c2"
			tt.apply(a)
			assert.Equal(t, tt.want, a.visits)
			assert.True(t, a.HasTerminated())
		})
	}
}

func TestApplyTo(t *testing.T) {
	root := testScene()
	lib := newLibrary()
	outer := newVisitAction(lib)
	inner := newVisitAction(lib)
	inner.ShareLock(outer)
	outer.onVisit = func(a *visitAction, n tree.Node) {
		if n.AsTree().Name == "c2" {
			inner.ApplyTo(a)
		}
	}
	outer.ApplyPath(path(root, 2, 0))
	assert.Equal(t, []string{"root", "m", "s2", "c2"}, inner.visits)
	assert.Equal(t, outer.codes, inner.codes)
}

func TestNestedApplyRestores(t *testing.T) {
	root := testScene()
	other := nodes.NewCube("other")
	a := newVisitAction(newLibrary())
	var code action.PathCode
	var tail tree.Node
	var appliedPath *nodepath.Path
	a.onVisit = func(a *visitAction, n tree.Node) {
		if n.AsTree().Name != "s2" {
			return
		}
		a.onVisit = nil
		a.Apply(other)
		code = a.CurPathCode()
		tail = a.CurPath().Tail()
		appliedPath = a.PathAppliedTo()
	}
	p := path(root, 2, 0)
	a.ApplyPath(p)
	assert.Equal(t, []string{"root", "m", "s2", "other", "c2"}, a.visits)
	assert.Equal(t, action.InPath, code)
	assert.Equal(t, root.Child(2), tail)
	assert.Same(t, p, appliedPath)
}

func TestEditWaitsForApply(t *testing.T) {
	lib := newLibrary()
	a := newVisitAction(lib)
	done := make(chan struct{})
	a.onVisit = func(a *visitAction, n tree.Node) {
		if n.AsTree().Name != "c1" {
			return
		}
		go lib.Edit(func() { close(done) })
		select {
		case <-done:
			t.Error("scene edited during traversal")
		case <-time.After(20 * time.Millisecond):
		}
	}
	a.Apply(testScene())
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("edit did not run after traversal")
	}
}

func TestRegistryLookup(t *testing.T) {
	r := &action.Registry{}
	at := reflect.TypeFor[*visitAction]()
	cube := reflect.TypeFor[*nodes.Cube]()
	sphere := reflect.TypeFor[*nodes.Sphere]()
	var got []string
	action.AddMethod(r, func(a *visitAction, c *nodes.Cube) { got = append(got, "cube") })
	r.Lookup(at, sphere)(nil, nil)
	assert.Empty(t, got, "null method without a default")

	action.SetDefaultMethod(r, func(a *visitAction, n tree.Node) { got = append(got, "default") })
	a := &visitAction{}
	r.Lookup(at, cube)(a, nodes.NewCube())
	r.Lookup(at, sphere)(a, nodes.NewSphere())
	assert.Equal(t, []string{"cube", "default"}, got)
}

func TestEnabledElements(t *testing.T) {
	lib := newLibrary()
	a := newVisitAction(lib)
	st := a.State()
	assert.False(t, state.Has[*element.Material](st))
	assert.Same(t, st, a.State())

	action.EnableElements[*visitAction](lib, state.TypeFor[*element.Material](lib.Elements))
	st2 := a.State()
	assert.NotSame(t, st, st2)
	assert.True(t, state.Has[*element.Material](st2))
	assert.Len(t, lib.EnabledElements(reflect.TypeFor[*visitAction]()), 1)
}
