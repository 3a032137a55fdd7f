// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package element

import (
	"image/color"
	"testing"

	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"

	"github.com/scenekit/core/state"
)

func newState() *state.State {
	reg := &state.Registry{}
	Register(reg)
	mm, mat, sh, vv, cull := Types(reg)
	return state.New(reg, []*state.ElementType{mm, mat, sh, vv, cull}, nil)
}

func translation(x, y, z float32) *math32.Matrix4 {
	m := math32.Identity4()
	m[12], m[13], m[14] = x, y, z
	return m
}

func TestModelMatrix(t *testing.T) {
	s := newState()
	s.Push()
	MultModelMatrix(s, translation(1, 2, 3))
	MultModelMatrix(s, translation(1, 0, 0))
	m := ModelMatrixOf(s)
	assert.Equal(t, math32.Vec3(2, 2, 3), TransformPoint(&m, math32.Vec3(0, 0, 0)))
	s.Pop()
	m = ModelMatrixOf(s)
	assert.Equal(t, *math32.Identity4(), m)
}

func TestMaterialAndHints(t *testing.T) {
	s := newState()
	assert.False(t, MaterialOf(s).IsTransparent())
	s.Push()
	SetMaterial(s, color.RGBA{255, 0, 0, 128})
	SetSolid(s, true)
	assert.True(t, MaterialOf(s).IsTransparent())
	assert.True(t, IsSolid(s))
	s.Pop()
	assert.False(t, IsSolid(s))
}

func camera() *ViewVolume {
	vv := NewViewVolume()
	vv.SetPerspective(math32.Vec3(0, 0, 10), math32.Vec3(0, 0, -1), math32.Vec3(0, 1, 0),
		math32.DegToRad(60), 1, 1, 100)
	return vv
}

func TestViewVolumeDistance(t *testing.T) {
	vv := camera()
	assert.InDelta(t, 10, vv.Distance(math32.Vec3(0, 0, 0)), 1e-5)
	assert.InDelta(t, 15, vv.Distance(math32.Vec3(3, 0, -5)), 1e-5)
	for i := range NumPlanes {
		assert.Greater(t, vv.Planes[i].Distance(math32.Vec3(0, 0, 0)), float32(0), "plane %d", i)
	}
	cs := Corners(math32.B3(-1, -1, -1, 1, 1, 1))
	assert.InDelta(t, 9, BoxDistance(vv, cs, Nearer), 1e-5)
	assert.InDelta(t, 11, BoxDistance(vv, cs, Farther), 1e-5)
}

func TestViewMatrix(t *testing.T) {
	vv := camera()
	m := vv.ViewMatrix()
	p := TransformPoint(&m, math32.Vec3(1, 2, 0))
	assert.InDelta(t, 1, p.X, 1e-5)
	assert.InDelta(t, 2, p.Y, 1e-5)
	assert.InDelta(t, -10, p.Z, 1e-5)
}

func TestCullBox(t *testing.T) {
	s := newState()
	assert.False(t, CullBox(s, math32.B3(100, 100, 100, 101, 101, 101)), "no camera")

	s.Push()
	SetViewVolume(s, camera())
	assert.True(t, CullBox(s, math32.B3(100, 100, 100, 101, 101, 101)))
	assert.True(t, CullBox(s, math32.B3(-1, -1, 20, 1, 1, 21)), "behind the eye")
	assert.False(t, CullBox(s, math32.B3(-1, -1, -1, 1, 1, 1)))
	assert.Equal(t, uint8(AllPlanes), state.Get[*Cull](s).Inside)
	s.Pop()
	assert.Zero(t, state.Get[*Cull](s).Inside)
}

func TestViewVolumeMatches(t *testing.T) {
	vv := camera()
	assert.True(t, vv.Matches(camera()))

	wide := NewViewVolume()
	wide.SetPerspective(math32.Vec3(0, 0, 10), math32.Vec3(0, 0, -1), math32.Vec3(0, 1, 0),
		math32.DegToRad(90), 1, 1, 100)
	assert.False(t, vv.Matches(wide), "field of view")

	rolled := NewViewVolume()
	rolled.SetPerspective(math32.Vec3(0, 0, 10), math32.Vec3(0, 0, -1), math32.Vec3(1, 0, 0),
		math32.DegToRad(60), 1, 1, 100)
	assert.False(t, vv.Matches(rolled), "roll")
}
