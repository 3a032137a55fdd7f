// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bbox provides the action that computes the bounding box and
// center point of a scene graph, a path or a list of paths.
package bbox

import (
	"cogentcore.org/core/math32"

	"github.com/scenekit/core/action"
	"github.com/scenekit/core/element"
	"github.com/scenekit/core/nodepath"
	"github.com/scenekit/core/state"
	"github.com/scenekit/core/tree"
)

// Action computes a world-space bounding box, or a camera-space one when
// InCameraSpace is set.
type Action struct {
	action.Base

	// InCameraSpace computes the box in the space of the current camera.
	InCameraSpace bool

	// ResetPath, if set, empties the box when traversal reaches the tail of
	// the path: before traversing it when ResetBefore is set, after otherwise.
	ResetPath *nodepath.Path

	// ResetBefore selects when to reset at ResetPath.
	ResetBefore bool

	box       math32.Box3
	center    math32.Vector3
	centerSet bool
}

// New returns a new bounding box action.
func New(lib *action.Library) *Action {
	a := &Action{box: math32.B3Empty()}
	a.Init(a, lib)
	return a
}

// Register enables the elements used by the action and sets its default
// method, which visits the children of groups.
func Register(lib *action.Library) {
	action.EnableElements[*Action](lib,
		state.TypeFor[*element.ModelMatrix](lib.Elements),
		state.TypeFor[*element.ViewVolume](lib.Elements))
	action.SetDefaultMethod(lib.Methods, func(a *Action, n tree.Node) {
		if g, ok := n.(tree.Grouper); ok {
			GroupBoundingBox(a, g)
		}
	})
}

// BeginTraversal resets the results and traverses the node.
func (a *Action) BeginTraversal(n tree.Node) {
	a.box.SetEmpty()
	a.ResetCenter()
	a.Visit(n)
}

// Visit traverses n, handling ResetPath.
func (a *Action) Visit(n tree.Node) {
	atReset := a.ResetPath != nil && a.CurPath().Equal(a.ResetPath)
	if atReset && a.ResetBefore {
		a.box.SetEmpty()
		a.ResetCenter()
	}
	a.Traverse(n)
	if atReset && !a.ResetBefore {
		a.box.SetEmpty()
		a.ResetCenter()
	}
}

// BoundingBox returns the computed box.
func (a *Action) BoundingBox() math32.Box3 {
	return a.box
}

// SetBoundingBox replaces the computed box.
func (a *Action) SetBoundingBox(b math32.Box3) {
	a.box = b
}

// Center returns the center point set by the nodes, or the center of the
// box if none was set.
func (a *Action) Center() math32.Vector3 {
	if a.centerSet {
		return a.center
	}
	return a.box.Center()
}

// IsCenterSet returns whether a node has set the center point.
func (a *Action) IsCenterSet() bool {
	return a.centerSet
}

// ResetCenter forgets the center point.
func (a *Action) ResetCenter() {
	a.centerSet = false
	a.center = math32.Vector3{}
}

// toOutput returns the transform from object space to the output space.
func (a *Action) toOutput() math32.Matrix4 {
	st := a.State()
	m := element.ModelMatrixOf(st)
	if !a.InCameraSpace {
		return m
	}
	vv := element.ViewVolumeOf(st)
	if !vv.Valid {
		return m
	}
	view := vv.ViewMatrix()
	var out math32.Matrix4
	out.MulMatrices(&view, &m)
	return out
}

// ExtendBy extends the result by a box in object space.
func (a *Action) ExtendBy(b math32.Box3) {
	if b.IsEmpty() {
		return
	}
	m := a.toOutput()
	a.box.ExpandByBox(b.MulMatrix4(&m))
}

// ExtendByOutput extends the result by a box already in the output space.
func (a *Action) ExtendByOutput(b math32.Box3) {
	if b.IsEmpty() {
		return
	}
	a.box.ExpandByBox(b)
}

// SetCenter sets the center point. When transform is set, c is in object
// space and is transformed to the output space.
func (a *Action) SetCenter(c math32.Vector3, transform bool) {
	if transform {
		m := a.toOutput()
		c = element.TransformPoint(&m, c)
	}
	a.center = c
	a.centerSet = true
}

// GroupBoundingBox traverses the children of g, and sets the center point
// to the average of the centers the children set.
func GroupBoundingBox(a *Action, g tree.Grouper) {
	var sum math32.Vector3
	num := 0
	action.TraverseChildrenFunc(a, g, func(c tree.Node) {
		a.Visit(c)
		if a.centerSet {
			sum = sum.Add(a.center)
			num++
			a.ResetCenter()
		}
	})
	if num > 0 {
		a.SetCenter(sum.MulScalar(1/float32(num)), false)
	}
}
