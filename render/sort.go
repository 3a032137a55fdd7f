// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"cogentcore.org/core/math32"

	"github.com/scenekit/core/element"
	"github.com/scenekit/core/nodepath"
)

// Shape is a node with local geometry bounds, used to sort transparent
// shapes without a bounding box traversal.
type Shape interface {
	ComputeBBox() (box math32.Box3, center math32.Vector3)
}

// pathDistance returns the sort distance of the object at the tail of p,
// which is being traversed.
func (a *Action) pathDistance(p *nodepath.Path) float32 {
	if a.SortStrategy == CustomCallback {
		if a.SortCallback == nil {
			return 0
		}
		return a.SortCallback(a)
	}
	st := a.State()
	vv := element.ViewVolumeOf(st)
	if !vv.Valid {
		return 0
	}
	var box math32.Box3
	var center math32.Vector3
	if sh, ok := p.Tail().(Shape); ok {
		mm := element.ModelMatrixOf(st)
		box, center = sh.ComputeBBox()
		box = box.MulMatrix4(&mm)
		center = element.TransformPoint(&mm, center)
	} else {
		a.bbox.InCameraSpace = false
		a.bbox.ApplyPath(p)
		box, center = a.bbox.BoundingBox(), a.bbox.Center()
	}
	switch a.SortStrategy {
	case BBoxClosestCorner:
		return element.BoxDistance(vv, element.Corners(box), element.Nearer)
	case BBoxFarthestCorner:
		return element.BoxDistance(vv, element.Corners(box), element.Farther)
	}
	return vv.Distance(center)
}

// sortFarthestFirst sorts paths by decreasing distance with a shell sort.
// The order of equal distances is unspecified.
func sortFarthestFirst(paths []*nodepath.Path, dist []float32) {
	n := len(paths)
	h := 1
	for h <= n/9 {
		h = 3*h + 1
	}
	for ; h > 0; h /= 3 {
		for i := h; i < n; i++ {
			p, d := paths[i], dist[i]
			j := i
			for j >= h && dist[j-h] < d {
				paths[j], dist[j] = paths[j-h], dist[j-h]
				j -= h
			}
			paths[j], dist[j] = p, d
		}
	}
}
