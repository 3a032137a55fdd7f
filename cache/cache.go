// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cache provides the caches kept for scene graph subtrees: recorded
// render command lists and bounding boxes. A cache remembers the state
// elements it was built under and is reused only while they still match.
package cache

import (
	"cogentcore.org/core/math32"

	"github.com/scenekit/core/state"
)

// Cache is the dependency bookkeeping shared by all caches. It implements
// [state.Tracker].
type Cache struct {
	deps    []state.Element
	invalid bool
}

// AddDependency records a snapshot of the element, once per element type.
func (c *Cache) AddDependency(e state.Element) {
	idx := e.AsElement().Index()
	for _, d := range c.deps {
		if d.AsElement().Index() == idx {
			return
		}
	}
	c.deps = append(c.deps, e.Copy())
}

// Invalidate marks the cache as unusable.
func (c *Cache) Invalidate() {
	c.invalid = true
}

// IsInvalid returns whether [Cache.Invalidate] has been called.
func (c *Cache) IsInvalid() bool {
	return c.invalid
}

// Dependencies returns the element snapshots the cache depends on.
func (c *Cache) Dependencies() []state.Element {
	return c.deps
}

// IsValid returns whether the cache has not been invalidated and every
// element it depends on has the same value in s.
func (c *Cache) IsValid(s *state.State) bool {
	if c.invalid {
		return false
	}
	for _, d := range c.deps {
		cur := s.Peek(d.AsElement().Index())
		if cur == nil || !cur.Matches(d) {
			return false
		}
	}
	return true
}

// BBoxCache holds the world-space bounding box of a subtree.
type BBoxCache struct {
	Cache

	// Box is the bounding box.
	Box math32.Box3

	// Center is the center point, if CenterSet.
	Center math32.Vector3

	// CenterSet is whether the subtree defined a center point.
	CenterSet bool
}

// NewBBoxCache returns a new empty bounding box cache.
func NewBBoxCache() *BBoxCache {
	return &BBoxCache{Box: math32.B3Empty()}
}

// Set stores the results of a bounding box traversal.
func (c *BBoxCache) Set(box math32.Box3, center math32.Vector3, centerSet bool) {
	c.Box = box
	c.Center = center
	c.CenterSet = centerSet
}
