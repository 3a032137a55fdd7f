// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nodes

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/scenekit/core/action"
	"github.com/scenekit/core/bbox"
	"github.com/scenekit/core/config"
	"github.com/scenekit/core/printer"
	"github.com/scenekit/core/render"
	"github.com/scenekit/core/search"
)

// NewLibrary returns a library with the standard actions and nodes
// registered. Metrics are registered with reg if it is not nil.
func NewLibrary(cfg *config.Config, reg prometheus.Registerer) *action.Library {
	lib := action.NewLibrary(cfg, reg)
	Register(lib)
	return lib
}

// Register registers the standard actions and the methods of the standard
// nodes with the library.
func Register(lib *action.Library) {
	render.Register(lib)
	bbox.Register(lib)
	search.Register(lib)
	printer.Register(lib)

	m := lib.Methods
	action.AddMethod(m, renderSeparator)
	action.AddMethod(m, boundingBoxSeparator)

	action.AddMethod(m, renderTransform)
	action.AddMethod(m, boundingBoxTransform)
	action.AddMethod(m, renderMaterial)
	action.AddMethod(m, renderShapeHints)
	action.AddMethod(m, renderCamera)
	action.AddMethod(m, boundingBoxCamera)

	action.AddMethod(m, func(a *render.Action, c *Cube) { RenderShape(a, c) })
	action.AddMethod(m, func(a *bbox.Action, c *Cube) { BoundingBoxShape(a, c) })
	action.AddMethod(m, func(a *render.Action, s *Sphere) { RenderShape(a, s) })
	action.AddMethod(m, func(a *bbox.Action, s *Sphere) { BoundingBoxShape(a, s) })
}
