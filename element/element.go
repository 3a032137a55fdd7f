// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package element provides the standard traversal state elements: the
// model matrix, material, shape hints, view volume and culling state.
package element

import (
	"github.com/scenekit/core/state"
)

// Register adds all of the standard element types to the registry.
func Register(reg *state.Registry) {
	state.Register(reg, NewModelMatrix)
	state.Register(reg, NewMaterial)
	state.Register(reg, NewShapeHints)
	state.Register(reg, NewViewVolume)
	state.Register(reg, NewCull)
}

// Types returns the descriptions of the given element types, which must
// have been registered with [Register].
func Types(reg *state.Registry) (modelMatrix, material, shapeHints, viewVolume, cull *state.ElementType) {
	return state.TypeFor[*ModelMatrix](reg), state.TypeFor[*Material](reg),
		state.TypeFor[*ShapeHints](reg), state.TypeFor[*ViewVolume](reg),
		state.TypeFor[*Cull](reg)
}
