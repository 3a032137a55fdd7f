// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nodes

import (
	"cogentcore.org/core/math32"

	"github.com/scenekit/core/bbox"
	"github.com/scenekit/core/draw"
	"github.com/scenekit/core/element"
	"github.com/scenekit/core/render"
	"github.com/scenekit/core/tree"
)

// Shape is a node that draws geometry.
type Shape interface {
	tree.Node

	// ComputeBBox returns the bounds and center of the geometry in object
	// space.
	ComputeBBox() (box math32.Box3, center math32.Vector3)

	// Primitives returns the number of triangles drawn.
	Primitives() int
}

// Cube is an axis-aligned box centered on the origin.
type Cube struct {
	tree.NodeBase

	// Size is the extent on each axis.
	Size math32.Vector3
}

// NewCube returns a new cube with sides of length 2.
func NewCube(name ...string) *Cube {
	c := &Cube{Size: math32.Vec3(2, 2, 2)}
	tree.InitNode(c, name...)
	return c
}

// SetSize sets the extent on each axis.
func (c *Cube) SetSize(v math32.Vector3) *Cube {
	c.Size = v
	c.Touch()
	return c
}

func (c *Cube) ComputeBBox() (math32.Box3, math32.Vector3) {
	h := c.Size.MulScalar(0.5)
	return math32.Box3{Min: h.Negate(), Max: h}, math32.Vector3{}
}

func (c *Cube) Primitives() int { return 12 }

// Sphere is a sphere centered on the origin.
type Sphere struct {
	tree.NodeBase

	// Radius is the radius.
	Radius float32

	// Slices and Stacks are the tessellation around and along the axis.
	Slices, Stacks int
}

// NewSphere returns a new sphere of radius 1.
func NewSphere(name ...string) *Sphere {
	s := &Sphere{Radius: 1, Slices: 32, Stacks: 16}
	tree.InitNode(s, name...)
	return s
}

// SetRadius sets the radius.
func (s *Sphere) SetRadius(r float32) *Sphere {
	s.Radius = r
	s.Touch()
	return s
}

// SetTessellation sets the number of slices and stacks.
func (s *Sphere) SetTessellation(slices, stacks int) *Sphere {
	s.Slices, s.Stacks = slices, stacks
	s.Touch()
	return s
}

func (s *Sphere) ComputeBBox() (math32.Box3, math32.Vector3) {
	r := math32.Vec3(s.Radius, s.Radius, s.Radius)
	return math32.Box3{Min: r.Negate(), Max: r}, math32.Vector3{}
}

func (s *Sphere) Primitives() int {
	return 2 * s.Slices * max(s.Stacks-1, 0)
}

// RenderShape draws a shape with the current material and transform.
func RenderShape(a *render.Action, sh Shape) {
	st := a.State()
	mat := element.MaterialOf(st)
	if a.HandleTransparency(mat.IsTransparent()) {
		return
	}
	if !a.IsRenderingTranspPaths() {
		a.Emit(draw.CullFace{Enabled: element.IsSolid(st), Face: draw.FaceBack})
	}
	nb := sh.AsTree()
	a.Emit(draw.DrawShape{
		Node:       nb.ID(),
		Kind:       kindOf(sh),
		Matrix:     element.ModelMatrixOf(st),
		Color:      mat.Color,
		Primitives: sh.Primitives(),
	})
	a.ShapeRendered(sh.Primitives())
}

// BoundingBoxShape extends the box by the shape and sets its center.
func BoundingBoxShape(a *bbox.Action, sh Shape) {
	box, center := sh.ComputeBBox()
	a.ExtendBy(box)
	a.SetCenter(center, true)
}

func kindOf(sh Shape) string {
	switch sh.(type) {
	case *Cube:
		return "cube"
	case *Sphere:
		return "sphere"
	}
	return "shape"
}
