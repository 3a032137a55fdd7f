// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nodes

import (
	"image/color"

	"cogentcore.org/core/math32"

	"github.com/scenekit/core/bbox"
	"github.com/scenekit/core/draw"
	"github.com/scenekit/core/element"
	"github.com/scenekit/core/render"
	"github.com/scenekit/core/state"
	"github.com/scenekit/core/tree"
)

// Transform applies a scale, then a rotation, then a translation to the
// nodes after it.
type Transform struct {
	tree.NodeBase

	// Translation is the offset.
	Translation math32.Vector3

	// Rotation is the orientation.
	Rotation math32.Quat

	// Scale is the scale factor on each axis.
	Scale math32.Vector3
}

// NewTransform returns a new identity transform.
func NewTransform(name ...string) *Transform {
	t := &Transform{Rotation: math32.NewQuat(0, 0, 0, 1), Scale: math32.Vec3(1, 1, 1)}
	tree.InitNode(t, name...)
	return t
}

func (t *Transform) AffectsState() bool { return true }

// SetTranslation sets the translation.
func (t *Transform) SetTranslation(v math32.Vector3) *Transform {
	t.Translation = v
	t.Touch()
	return t
}

// SetRotation sets the rotation about axis by angle radians.
func (t *Transform) SetRotation(axis math32.Vector3, angle float32) *Transform {
	t.Rotation = math32.NewQuatAxisAngle(axis.Normal(), angle)
	t.Touch()
	return t
}

// SetScale sets the scale factors.
func (t *Transform) SetScale(v math32.Vector3) *Transform {
	t.Scale = v
	t.Touch()
	return t
}

// Matrix returns the transform matrix.
func (t *Transform) Matrix() math32.Matrix4 {
	var m math32.Matrix4
	m.SetTransform(t.Translation, t.Rotation, t.Scale)
	return m
}

func (t *Transform) apply(s *state.State) {
	m := t.Matrix()
	element.MultModelMatrix(s, &m)
}

// Material sets the color of the shapes after it. A color with alpha
// below 255 is transparent.
type Material struct {
	tree.NodeBase

	// Color is the diffuse color.
	Color color.RGBA
}

// NewMaterial returns a new material of the given color.
func NewMaterial(c color.RGBA, name ...string) *Material {
	m := &Material{Color: c}
	tree.InitNode(m, name...)
	return m
}

func (m *Material) AffectsState() bool { return true }

// SetColor sets the color.
func (m *Material) SetColor(c color.RGBA) *Material {
	m.Color = c
	m.Touch()
	return m
}

// ShapeHints tells the renderer whether the shapes after it are closed.
type ShapeHints struct {
	tree.NodeBase

	// Solid is whether shapes are closed, so their back faces are never seen.
	Solid bool
}

// NewShapeHints returns new shape hints.
func NewShapeHints(solid bool, name ...string) *ShapeHints {
	h := &ShapeHints{Solid: solid}
	tree.InitNode(h, name...)
	return h
}

func (h *ShapeHints) AffectsState() bool { return true }

// SetSolid sets whether shapes are closed.
func (h *ShapeHints) SetSolid(solid bool) *ShapeHints {
	h.Solid = solid
	h.Touch()
	return h
}

// Camera is a perspective camera that sets the view volume for the nodes
// after it.
type Camera struct {
	tree.NodeBase

	// Position is the eye point.
	Position math32.Vector3

	// Direction is the viewing direction.
	Direction math32.Vector3

	// Up is the approximate up direction.
	Up math32.Vector3

	// FieldOfView is the vertical field of view in radians.
	FieldOfView float32

	// Aspect is the width over height ratio of the view.
	Aspect float32

	// Near and Far are the distances of the clipping planes.
	Near, Far float32
}

// NewCamera returns a camera at z = 10 looking down the negative Z axis.
func NewCamera(name ...string) *Camera {
	c := &Camera{
		Position:    math32.Vec3(0, 0, 10),
		Direction:   math32.Vec3(0, 0, -1),
		Up:          math32.Vec3(0, 1, 0),
		FieldOfView: math32.DegToRad(45),
		Aspect:      1,
		Near:        1,
		Far:         100,
	}
	tree.InitNode(c, name...)
	return c
}

func (c *Camera) AffectsState() bool { return true }

// LookAt points the camera from eye toward target.
func (c *Camera) LookAt(eye, target math32.Vector3) *Camera {
	c.Position = eye
	c.Direction = target.Sub(eye).Normal()
	c.Touch()
	return c
}

// ViewVolume returns the view volume of the camera.
func (c *Camera) ViewVolume() *element.ViewVolume {
	vv := element.NewViewVolume()
	vv.SetPerspective(c.Position, c.Direction, c.Up, c.FieldOfView, c.Aspect, c.Near, c.Far)
	return vv
}

func (c *Camera) apply(s *state.State) {
	element.SetViewVolume(s, c.ViewVolume())
	state.Writable[*element.Cull](s).Inside = 0
}

func renderTransform(a *render.Action, t *Transform) { t.apply(a.State()) }

func boundingBoxTransform(a *bbox.Action, t *Transform) { t.apply(a.State()) }

func renderMaterial(a *render.Action, m *Material) {
	element.SetMaterial(a.State(), m.Color)
}

func renderShapeHints(a *render.Action, h *ShapeHints) {
	element.SetSolid(a.State(), h.Solid)
}

func renderCamera(a *render.Action, c *Camera) {
	c.apply(a.State())
	a.Emit(draw.Camera{Eye: c.Position, Direction: c.Direction.Normal()})
}

func boundingBoxCamera(a *bbox.Action, c *Camera) {
	st := a.State()
	element.SetViewVolume(st, c.ViewVolume())
}
