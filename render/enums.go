// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

// TransparencyType selects how transparent objects are drawn.
type TransparencyType int32

const (
	// ScreenDoor draws transparent objects as opaque.
	ScreenDoor TransparencyType = iota

	// Add blends transparent objects additively in traversal order.
	Add

	// DelayedAdd defers transparent objects and blends them additively
	// after the opaque ones.
	DelayedAdd

	// SortedObjectAdd defers transparent objects, sorts them farthest
	// first and blends them additively.
	SortedObjectAdd

	// Blend blends transparent objects in traversal order.
	Blend

	// DelayedBlend defers transparent objects and blends them after the
	// opaque ones.
	DelayedBlend

	// SortedObjectBlend defers transparent objects, sorts them farthest
	// first and blends them.
	SortedObjectBlend

	// SortedObjectSortedTriangleAdd is SortedObjectAdd with per-triangle
	// sorting left to the shapes.
	SortedObjectSortedTriangleAdd

	// SortedObjectSortedTriangleBlend is SortedObjectBlend with
	// per-triangle sorting left to the shapes.
	SortedObjectSortedTriangleBlend

	// None ignores transparency.
	None

	// SortedLayersBlend uses order-independent depth peeling.
	SortedLayersBlend
)

var transparencyNames = [...]string{"ScreenDoor", "Add", "DelayedAdd", "SortedObjectAdd",
	"Blend", "DelayedBlend", "SortedObjectBlend", "SortedObjectSortedTriangleAdd",
	"SortedObjectSortedTriangleBlend", "None", "SortedLayersBlend"}

func (t TransparencyType) String() string {
	if t < 0 || int(t) >= len(transparencyNames) {
		return "TransparencyType(?)"
	}
	return transparencyNames[t]
}

// IsAdditive returns whether the type blends additively.
func (t TransparencyType) IsAdditive() bool {
	switch t {
	case Add, DelayedAdd, SortedObjectAdd, SortedObjectSortedTriangleAdd:
		return true
	}
	return false
}

// IsDelayed returns whether the type defers transparent objects unsorted.
func (t TransparencyType) IsDelayed() bool {
	return t == DelayedAdd || t == DelayedBlend
}

// IsSorted returns whether the type defers and sorts transparent objects.
func (t TransparencyType) IsSorted() bool {
	switch t {
	case SortedObjectAdd, SortedObjectBlend, SortedObjectSortedTriangleAdd, SortedObjectSortedTriangleBlend:
		return true
	}
	return false
}

// TransparentDelayedType selects how deferred transparent objects are
// drawn.
type TransparentDelayedType int32

const (
	// OnePass draws each deferred object once.
	OnePass TransparentDelayedType = iota

	// NonsolidSeparateBackfacePass draws the back faces of non-solid
	// objects in a first pass and the front faces in a second.
	NonsolidSeparateBackfacePass
)

// SortStrategy selects the distance used to sort transparent objects.
type SortStrategy int32

const (
	// BBoxCenter uses the distance to the bounding box center.
	BBoxCenter SortStrategy = iota

	// BBoxClosestCorner uses the nearest bounding box corner.
	BBoxClosestCorner

	// BBoxFarthestCorner uses the farthest bounding box corner.
	BBoxFarthestCorner

	// CustomCallback asks [Action.SortCallback].
	CustomCallback
)

// AbortCode is returned by an abort callback to steer traversal.
type AbortCode int32

const (
	// Continue traverses the node.
	Continue AbortCode = iota

	// Abort terminates the traversal.
	Abort

	// Prune skips the node.
	Prune

	// Delay skips the node and draws it after the rest of the scene.
	Delay
)

func (c AbortCode) String() string {
	switch c {
	case Continue:
		return "Continue"
	case Abort:
		return "Abort"
	case Prune:
		return "Prune"
	case Delay:
		return "Delay"
	}
	return "AbortCode(?)"
}
