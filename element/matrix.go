// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package element

import (
	"cogentcore.org/core/math32"

	"github.com/scenekit/core/state"
)

// ModelMatrix is the object-to-world transform.
type ModelMatrix struct {
	state.ElementBase

	// Matrix is the current transform.
	Matrix math32.Matrix4
}

// NewModelMatrix returns the identity model matrix.
func NewModelMatrix() *ModelMatrix {
	return &ModelMatrix{Matrix: *math32.Identity4()}
}

func (e *ModelMatrix) Copy() state.Element {
	c := *e
	return &c
}

func (e *ModelMatrix) Matches(s state.Element) bool {
	return e.Matrix == s.(*ModelMatrix).Matrix
}

// ModelMatrixOf returns the current model matrix.
func ModelMatrixOf(s *state.State) math32.Matrix4 {
	return state.Get[*ModelMatrix](s).Matrix
}

// MultModelMatrix post-multiplies the current model matrix by m, so that m
// is applied to geometry before the transforms above it. The result depends
// on the outer matrix, so open caches record it as a dependency.
func MultModelMatrix(s *state.State, m *math32.Matrix4) {
	parent := state.Get[*ModelMatrix](s).Matrix
	w := state.Writable[*ModelMatrix](s)
	w.Matrix.MulMatrices(&parent, m)
}

// TransformPoint applies the affine transform m to p.
func TransformPoint(m *math32.Matrix4, p math32.Vector3) math32.Vector3 {
	return math32.Vec3(
		m[0]*p.X+m[4]*p.Y+m[8]*p.Z+m[12],
		m[1]*p.X+m[5]*p.Y+m[9]*p.Z+m[13],
		m[2]*p.X+m[6]*p.Y+m[10]*p.Z+m[14],
	)
}

// Corners returns the eight corners of the box.
func Corners(b math32.Box3) [8]math32.Vector3 {
	return [8]math32.Vector3{
		math32.Vec3(b.Min.X, b.Min.Y, b.Min.Z),
		math32.Vec3(b.Min.X, b.Min.Y, b.Max.Z),
		math32.Vec3(b.Min.X, b.Max.Y, b.Min.Z),
		math32.Vec3(b.Max.X, b.Min.Y, b.Min.Z),
		math32.Vec3(b.Max.X, b.Max.Y, b.Max.Z),
		math32.Vec3(b.Max.X, b.Max.Y, b.Min.Z),
		math32.Vec3(b.Max.X, b.Min.Y, b.Max.Z),
		math32.Vec3(b.Min.X, b.Max.Y, b.Max.Z),
	}
}
