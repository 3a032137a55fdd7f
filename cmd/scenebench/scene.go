// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"image/color"

	"cogentcore.org/core/math32"

	"github.com/scenekit/core/nodes"
)

type sceneOptions struct {
	size        int
	transparent float32
	caching     string
	culling     string
}

func parseMode(s string) nodes.CacheMode {
	switch s {
	case "on":
		return nodes.On
	case "off":
		return nodes.Off
	}
	return nodes.Auto
}

// buildScene returns a camera looking at a size by size grid of
// separators, each holding a transform, a material and a shape. Every
// n-th cell is transparent, where n follows from the transparent fraction.
func buildScene(o sceneOptions) *nodes.Separator {
	root := nodes.NewSeparator("root")
	root.SetRenderCaching(nodes.Off)
	span := float32(o.size) * 3
	cam := nodes.NewCamera("camera").LookAt(math32.Vec3(0, 0, span), math32.Vec3(0, 0, 0))
	cam.Far = span * 3
	root.AddChild(cam)

	every := 0
	if o.transparent > 0 {
		every = max(int(1/o.transparent), 1)
	}
	half := float32(o.size-1) / 2
	for i := range o.size * o.size {
		x, y := float32(i%o.size)-half, float32(i/o.size)-half
		cell := nodes.NewSeparator()
		cell.SetRenderCaching(parseMode(o.caching))
		cell.SetRenderCulling(parseMode(o.culling))
		cell.AddChild(nodes.NewTransform().SetTranslation(math32.Vec3(x*3, y*3, 0)))
		c := color.RGBA{uint8(40 + 200*i/(o.size*o.size)), 120, 200, 255}
		if every > 0 && i%every == 0 {
			c.A = 128
		}
		cell.AddChild(nodes.NewMaterial(c))
		if i%2 == 0 {
			cell.AddChild(nodes.NewCube())
		} else {
			cell.AddChild(nodes.NewSphere())
		}
		root.AddChild(cell)
	}
	return root
}
