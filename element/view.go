// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package element

import (
	fmath "github.com/chewxy/math32"

	"cogentcore.org/core/math32"

	"github.com/scenekit/core/state"
)

// Plane is an oriented plane; points p with Normal·p + Offset >= 0 are inside.
type Plane struct {
	Normal math32.Vector3
	Offset float32
}

// PlaneFromPoint returns the plane through p with the given normal.
func PlaneFromPoint(normal, p math32.Vector3) Plane {
	return Plane{Normal: normal, Offset: -normal.Dot(p)}
}

// Distance returns the signed distance of p from the plane.
func (pl Plane) Distance(p math32.Vector3) float32 {
	return pl.Normal.Dot(p) + pl.Offset
}

// Frustum plane indices.
const (
	PlaneNear = iota
	PlaneFar
	PlaneLeft
	PlaneRight
	PlaneBottom
	PlaneTop
	NumPlanes
)

// AllPlanes is the cull mask with every frustum plane set.
const AllPlanes = 1<<NumPlanes - 1

// ViewVolume is the current camera frustum, in world space.
type ViewVolume struct {
	state.ElementBase

	// Valid is false until a camera has been traversed.
	Valid bool

	// Eye is the camera position.
	Eye math32.Vector3

	// Direction is the unit viewing direction.
	Direction math32.Vector3

	// Up is the unit up direction, perpendicular to Direction.
	Up math32.Vector3

	// Near and Far are the clipping distances along Direction.
	Near, Far float32

	// Planes are the frustum planes with inward normals.
	Planes [NumPlanes]Plane
}

// NewViewVolume returns an unset view volume.
func NewViewVolume() *ViewVolume {
	return &ViewVolume{}
}

func (e *ViewVolume) Copy() state.Element {
	c := *e
	return &c
}

func (e *ViewVolume) Matches(s state.Element) bool {
	o := s.(*ViewVolume)
	return e.Valid == o.Valid && e.Eye == o.Eye && e.Direction == o.Direction &&
		e.Up == o.Up && e.Near == o.Near && e.Far == o.Far && e.Planes == o.Planes
}

// SetPerspective sets a perspective frustum. fovY is the full vertical field
// of view in radians and aspect is width over height.
func (e *ViewVolume) SetPerspective(eye, dir, up math32.Vector3, fovY, aspect, near, far float32) {
	dir = dir.Normal()
	right := dir.Cross(up).Normal()
	trueUp := right.Cross(dir)
	half := fovY / 2
	halfW := fmath.Atan(fmath.Tan(half) * aspect)

	e.Valid = true
	e.Eye = eye
	e.Direction = dir
	e.Up = trueUp
	e.Near = near
	e.Far = far
	e.Planes[PlaneNear] = PlaneFromPoint(dir, eye.Add(dir.MulScalar(near)))
	e.Planes[PlaneFar] = PlaneFromPoint(dir.Negate(), eye.Add(dir.MulScalar(far)))
	side := func(edge, axis math32.Vector3) Plane {
		n := edge.Cross(axis).Normal()
		if n.Dot(dir) < 0 {
			n = n.Negate()
		}
		return PlaneFromPoint(n, eye)
	}
	cw, sw := fmath.Cos(halfW), fmath.Sin(halfW)
	ch, sh := fmath.Cos(half), fmath.Sin(half)
	e.Planes[PlaneLeft] = side(dir.MulScalar(cw).Sub(right.MulScalar(sw)), trueUp)
	e.Planes[PlaneRight] = side(dir.MulScalar(cw).Add(right.MulScalar(sw)), trueUp)
	e.Planes[PlaneBottom] = side(dir.MulScalar(ch).Sub(trueUp.MulScalar(sh)), right)
	e.Planes[PlaneTop] = side(dir.MulScalar(ch).Add(trueUp.MulScalar(sh)), right)
}

// Distance returns the distance of p in front of the eye along the viewing
// direction; larger values are further away.
func (e *ViewVolume) Distance(p math32.Vector3) float32 {
	return e.Direction.Dot(p.Sub(e.Eye))
}

// ViewMatrix returns the world-to-camera transform, with the camera
// looking down its negative Z axis.
func (e *ViewVolume) ViewMatrix() math32.Matrix4 {
	r := e.Direction.Cross(e.Up)
	u := e.Up
	f := e.Direction.Negate()
	m := *math32.Identity4()
	m[0], m[4], m[8], m[12] = r.X, r.Y, r.Z, -r.Dot(e.Eye)
	m[1], m[5], m[9], m[13] = u.X, u.Y, u.Z, -u.Dot(e.Eye)
	m[2], m[6], m[10], m[14] = f.X, f.Y, f.Z, -f.Dot(e.Eye)
	return m
}

// ViewVolumeOf returns the current view volume.
func ViewVolumeOf(s *state.State) *ViewVolume {
	return state.Get[*ViewVolume](s)
}

// SetViewVolume sets the current view volume.
func SetViewVolume(s *state.State, vv *ViewVolume) {
	w := state.Writable[*ViewVolume](s)
	base := w.ElementBase
	*w = *vv
	w.ElementBase = base
}

// Cull records which frustum planes the current scope is known to be
// entirely inside of, so nested tests can skip them.
type Cull struct {
	state.ElementBase

	// Inside is a bit mask of frustum plane indices.
	Inside uint8
}

// NewCull returns an empty cull state.
func NewCull() *Cull {
	return &Cull{}
}

func (e *Cull) Copy() state.Element {
	c := *e
	return &c
}

func (e *Cull) Matches(s state.Element) bool {
	return e.Inside == s.(*Cull).Inside
}

// CullBox tests the world-space box against the current view volume and
// reports whether it is entirely outside. Planes the box is entirely inside
// of are recorded for the current scope.
func CullBox(s *state.State, box math32.Box3) bool {
	vv := state.Get[*ViewVolume](s)
	if !vv.Valid || box.IsEmpty() {
		return false
	}
	c := state.Get[*Cull](s)
	if c.Inside == AllPlanes {
		return false
	}
	corners := Corners(box)
	inside := c.Inside
	for i := range NumPlanes {
		if inside&(1<<i) != 0 {
			continue
		}
		in := 0
		for _, p := range corners {
			if vv.Planes[i].Distance(p) >= 0 {
				in++
			}
		}
		switch in {
		case 0:
			return true
		case len(corners):
			inside |= 1 << i
		}
	}
	if inside != c.Inside {
		state.Writable[*Cull](s).Inside = inside
	}
	return false
}

// BoxDistance returns the distance of the point of the box selected by pick
// from the eye; pick receives the distances of the eight corners.
func BoxDistance(vv *ViewVolume, corners [8]math32.Vector3, pick func(a, b float32) float32) float32 {
	d := vv.Distance(corners[0])
	for _, p := range corners[1:] {
		d = pick(d, vv.Distance(p))
	}
	return d
}

// Nearer and Farther are the pick functions for [BoxDistance].
func Nearer(a, b float32) float32 { return fmath.Min(a, b) }

func Farther(a, b float32) float32 { return fmath.Max(a, b) }
