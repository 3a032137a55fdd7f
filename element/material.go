// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package element

import (
	"image/color"

	"github.com/scenekit/core/state"
)

// Material is the current surface material.
type Material struct {
	state.ElementBase

	// Color is the diffuse color; an alpha below 255 makes the material transparent.
	Color color.RGBA
}

// NewMaterial returns the default light gray opaque material.
func NewMaterial() *Material {
	return &Material{Color: color.RGBA{204, 204, 204, 255}}
}

func (e *Material) Copy() state.Element {
	c := *e
	return &c
}

func (e *Material) Matches(s state.Element) bool {
	return e.Color == s.(*Material).Color
}

// IsTransparent returns whether the material is not fully opaque.
func (e *Material) IsTransparent() bool {
	return e.Color.A < 255
}

// MaterialOf returns the current material.
func MaterialOf(s *state.State) *Material {
	return state.Get[*Material](s)
}

// SetMaterial sets the current material color.
func SetMaterial(s *state.State, c color.RGBA) {
	state.Writable[*Material](s).Color = c
}

// ShapeHints holds hints about the geometry that follows.
type ShapeHints struct {
	state.ElementBase

	// Solid is whether shapes are closed, so their back faces are never visible.
	Solid bool
}

// NewShapeHints returns the default shape hints.
func NewShapeHints() *ShapeHints {
	return &ShapeHints{}
}

func (e *ShapeHints) Copy() state.Element {
	c := *e
	return &c
}

func (e *ShapeHints) Matches(s state.Element) bool {
	return e.Solid == s.(*ShapeHints).Solid
}

// IsSolid returns whether the current shapes are flagged as solid.
func IsSolid(s *state.State) bool {
	return state.Get[*ShapeHints](s).Solid
}

// SetSolid sets the solid shape hint.
func SetSolid(s *state.State, solid bool) {
	state.Writable[*ShapeHints](s).Solid = solid
}
