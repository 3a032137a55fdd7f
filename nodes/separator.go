// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nodes

import (
	"math/rand/v2"
	"slices"
	"sync"

	"cogentcore.org/core/math32"
	"github.com/google/uuid"

	"github.com/scenekit/core/action"
	"github.com/scenekit/core/bbox"
	"github.com/scenekit/core/cache"
	"github.com/scenekit/core/element"
	"github.com/scenekit/core/render"
	"github.com/scenekit/core/tree"
)

// CacheMode selects whether a separator caches or culls.
type CacheMode int32

const (
	// Auto decides from the history of the subtree.
	Auto CacheMode = iota

	// On always caches or culls.
	On

	// Off never caches or culls.
	Off
)

func (m CacheMode) String() string {
	switch m {
	case Auto:
		return "Auto"
	case On:
		return "On"
	case Off:
		return "Off"
	}
	return "CacheMode(?)"
}

// Separator is a group that isolates the state changes of its children
// from the rest of the graph. It caches the render commands and bounding
// box of its subtree, and can skip rendering it when its bounding box is
// outside of the view volume.
type Separator struct {
	Group

	// RenderCaching selects render caching.
	RenderCaching CacheMode

	// BoundingBoxCaching selects bounding box caching.
	BoundingBoxCaching CacheMode

	// RenderCulling selects view volume culling. In auto mode the subtree
	// is only culled when its bounding box is already cached.
	RenderCulling CacheMode

	mu          sync.Mutex
	bboxCache   *cache.BBoxCache
	bboxUses    int
	bboxDropped int
	tables      []*cache.SideTable
}

// NewSeparator returns a new separator with every mode set to auto.
func NewSeparator(name ...string) *Separator {
	s := &Separator{}
	tree.InitNode(s, name...)
	return s
}

// AffectsState returns false.
func (s *Separator) AffectsState() bool {
	return false
}

// SetRenderCaching sets the render caching mode.
func (s *Separator) SetRenderCaching(m CacheMode) {
	s.RenderCaching = m
	s.Touch()
}

// SetBoundingBoxCaching sets the bounding box caching mode.
func (s *Separator) SetBoundingBoxCaching(m CacheMode) {
	s.BoundingBoxCaching = m
	s.Touch()
}

// SetRenderCulling sets the culling mode.
func (s *Separator) SetRenderCulling(m CacheMode) {
	s.RenderCulling = m
	s.Touch()
}

// NodeNotify invalidates the caches of the separator.
func (s *Separator) NodeNotify(from tree.Node) {
	s.mu.Lock()
	if s.bboxCache != nil {
		s.bboxCache.Invalidate()
		s.bboxCache = nil
		s.bboxDropped++
	}
	tables := slices.Clone(s.tables)
	s.mu.Unlock()
	for _, t := range tables {
		t.InvalidateNode(s.ID())
	}
}

// ResetClone drops the caches and statistics copied from the source of a
// [tree.Clone].
func (s *Separator) ResetClone() {
	s.Group.ResetClone()
	s.mu = sync.Mutex{}
	s.bboxCache = nil
	s.bboxUses = 0
	s.bboxDropped = 0
	s.tables = nil
}

// Destroy releases the caches and the children.
func (s *Separator) Destroy() {
	s.mu.Lock()
	tables := s.tables
	s.tables = nil
	s.bboxCache = nil
	s.mu.Unlock()
	for _, t := range tables {
		t.DropNode(s.ID())
	}
	s.Group.Destroy()
}

// renderCaches returns the render cache list of the separator for the
// context.
func (s *Separator) renderCaches(t *cache.SideTable, ctx uuid.UUID) *cache.RenderCacheList {
	s.mu.Lock()
	if !slices.Contains(s.tables, t) {
		s.tables = append(s.tables, t)
	}
	s.mu.Unlock()
	return t.List(s.ID(), ctx)
}

// validBBoxCache returns the bounding box cache if it is valid in the
// state of the traversal.
func (s *Separator) validBBoxCache(a action.Action) *cache.BBoxCache {
	s.mu.Lock()
	bc := s.bboxCache
	s.mu.Unlock()
	if bc == nil || !bc.IsValid(a.AsAction().State()) {
		return nil
	}
	return bc
}

// shouldCacheBBox decides whether to record a bounding box cache. In auto
// mode caching stops once caches are dropped more often than the configured
// ratio of uses.
func (s *Separator) shouldCacheBBox(minUses int) bool {
	switch s.BoundingBoxCaching {
	case Off:
		return false
	case On:
		return true
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bboxDropped == 0 || s.bboxUses >= minUses*s.bboxDropped
}

// renderMode returns the render caching mode for this traversal.
func (s *Separator) renderMode(a *render.Action) CacheMode {
	if a.Lib.Config.RandomizeRenderCaching {
		return CacheMode(rand.IntN(3))
	}
	return s.RenderCaching
}

// cull reports whether the subtree is outside of the view volume.
func (s *Separator) cull(a *render.Action) bool {
	if s.RenderCulling == Off {
		return false
	}
	var box math32.Box3
	if bc := s.validBBoxCache(a); bc != nil {
		box = bc.Box
	} else if s.RenderCulling == On {
		ba := a.BoundingBoxAction()
		ba.InCameraSpace = false
		ba.ResetPath = nil
		ba.ApplyPath(a.CurPath().Copy())
		box = ba.BoundingBox()
	} else {
		return false
	}
	return element.CullBox(a.State(), box)
}

func renderSeparator(a *render.Action, s *Separator) {
	st := a.State()
	code := a.CurPathCode()
	if code == action.OffPath {
		return
	}
	st.Push()
	defer st.Pop()
	if code == action.InPath {
		render.RenderChildren(a, s)
		return
	}
	if !st.IsCacheOpen() && s.cull(a) {
		return
	}
	mode := s.renderMode(a)
	if mode == Off || a.Lib.Config.RenderCacheMax <= 0 {
		render.RenderChildren(a, s)
		return
	}
	list := s.renderCaches(a.Lib.Caches, a.Context)
	if list.Call(st, a.Context, a.Renderer) {
		return
	}
	list.Open(st, a.Context, &a.Stats, mode == Auto)
	render.RenderChildren(a, s)
	list.Close(st, &a.Stats)
}

func boundingBoxSeparator(a *bbox.Action, s *Separator) {
	st := a.State()
	code := a.CurPathCode()
	if code == action.OffPath {
		return
	}
	st.Push()
	defer st.Pop()
	if code == action.InPath {
		bbox.GroupBoundingBox(a, s)
		return
	}
	caching := !a.InCameraSpace && a.ResetPath == nil &&
		s.shouldCacheBBox(a.Lib.Config.BBoxCacheAutoMinUses)
	if caching {
		if bc := s.validBBoxCache(a); bc != nil {
			s.mu.Lock()
			s.bboxUses++
			s.mu.Unlock()
			a.Lib.Metrics.BBoxHit()
			st.AddDependencies(bc.Dependencies())
			a.ExtendByOutput(bc.Box)
			if bc.CenterSet {
				a.SetCenter(bc.Center, false)
			}
			return
		}
		a.Lib.Metrics.BBoxMiss()
	}

	prevBox := a.BoundingBox()
	prevSet := a.IsCenterSet()
	prevCenter := a.Center()
	a.SetBoundingBox(math32.B3Empty())
	a.ResetCenter()

	var bc *cache.BBoxCache
	invalids := st.Invalidations()
	if caching {
		bc = cache.NewBBoxCache()
		st.OpenCache(bc)
	}
	bbox.GroupBoundingBox(a, s)
	box, centerSet, center := a.BoundingBox(), a.IsCenterSet(), a.Center()
	if bc != nil {
		st.CloseCache(bc)
		if st.Invalidations() == invalids && !bc.IsInvalid() {
			bc.Set(box, center, centerSet)
			s.mu.Lock()
			s.bboxCache = bc
			s.mu.Unlock()
		}
	}

	prevBox.ExpandByBox(box)
	a.SetBoundingBox(prevBox)
	switch {
	case centerSet:
		a.SetCenter(center, false)
	case prevSet:
		a.SetCenter(prevCenter, false)
	}
}
