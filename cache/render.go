// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cache

import (
	"slices"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/scenekit/core/config"
	"github.com/scenekit/core/draw"
	"github.com/scenekit/core/state"
)

var lastID atomic.Uint64

type entry struct {
	cmd    draw.Command
	nested *RenderCache
}

// RenderCache is a recorded list of render commands for one context. It can
// contain calls to other render caches recorded inside it.
type RenderCache struct {
	Cache

	// Context is the graphics context the commands were recorded for.
	Context uuid.UUID

	id      uint64
	entries []entry
}

// NewRenderCache returns a new empty render cache for the context.
func NewRenderCache(ctx uuid.UUID) *RenderCache {
	return &RenderCache{Context: ctx, id: lastID.Add(1)}
}

// ID returns the unique id of the cache.
func (c *RenderCache) ID() uint64 {
	return c.id
}

// Record appends a command.
func (c *RenderCache) Record(cmd draw.Command) {
	c.entries = append(c.entries, entry{cmd: cmd})
}

// RecordNested appends a call to another cache.
func (c *RenderCache) RecordNested(n *RenderCache) {
	c.entries = append(c.entries, entry{nested: n})
}

// Len returns the number of entries, counting a nested call as one.
func (c *RenderCache) Len() int {
	return len(c.entries)
}

// Nested returns the caches called from this one, in order.
func (c *RenderCache) Nested() []*RenderCache {
	var ns []*RenderCache
	for _, e := range c.entries {
		if e.nested != nil {
			ns = append(ns, e.nested)
		}
	}
	return ns
}

// IsValid returns whether the cache and every cache it calls can be used in s.
func (c *RenderCache) IsValid(s *state.State) bool {
	if !c.Cache.IsValid(s) {
		return false
	}
	for _, e := range c.entries {
		if e.nested != nil && e.nested.IsInvalid() {
			return false
		}
	}
	return true
}

// Call replays the cache on r: a [draw.CallList] marker and then every
// recorded command, with nested caches replayed in place.
func (c *RenderCache) Call(r draw.Renderer) {
	r.Execute(draw.CallList{ID: c.id})
	for _, e := range c.entries {
		if e.nested != nil {
			e.nested.Call(r)
			continue
		}
		r.Execute(e.cmd)
	}
}

// Recording returns the innermost render cache being recorded in s, or nil.
func Recording(s *state.State) *RenderCache {
	rc, _ := s.InnermostCache().(*RenderCache)
	return rc
}

// AutoBits are the votes of shapes on whether their subtree is worth
// caching automatically.
type AutoBits uint8

const (
	// DoAutoCache is set when a shape is cheap to cache.
	DoAutoCache AutoBits = 1 << iota

	// DontAutoCache is set when a shape should not be cached.
	DontAutoCache
)

// Stats accumulates what was drawn during a traversal. Each render cache
// list starts a fresh Stats for its subtree and merges it back on close.
type Stats struct {
	AutoBits   AutoBits
	Shapes     int
	Primitives int
}

// AddShape records a drawn shape and its vote under the policy.
func (s *Stats) AddShape(primitives int, policy *config.AutoCache) {
	s.Shapes++
	s.Primitives += primitives
	switch {
	case primitives > policy.LargePrimitives:
		s.AutoBits |= DontAutoCache
	case primitives <= policy.SmallPrimitives:
		s.AutoBits |= DoAutoCache
	}
}

func (s *Stats) merge(o Stats) {
	s.AutoBits |= o.AutoBits
	s.Shapes += o.Shapes
	s.Primitives += o.Primitives
}

// RenderCacheList holds the render caches of one separator for one context,
// most recently used last, and decides when to build new ones.
//
// In on mode a cache is recorded on the first traversal. In auto mode the
// subtree must first be traversed unchanged for a number of frames set by
// [config.AutoCache], and subtrees whose caches keep being thrown away stop
// being cached.
type RenderCacheList struct {
	cfg     *config.Config
	metrics *Metrics
	caches  []*RenderCache

	open          *RenderCache
	needClose     bool
	saved         Stats
	savedInvalids uint64

	// subtree is what the subtree drew during its last traversal.
	subtree Stats

	numFramesOK  int
	numUsed      int
	numDiscarded int
}

// NewRenderCacheList returns a new list using the given settings.
func NewRenderCacheList(cfg *config.Config, metrics *Metrics) *RenderCacheList {
	if metrics == nil {
		metrics = NewMetrics(nil)
	}
	return &RenderCacheList{cfg: cfg, metrics: metrics}
}

// Len returns the number of caches in the list.
func (l *RenderCacheList) Len() int {
	return len(l.caches)
}

// Caches returns the caches, most recently used last.
func (l *RenderCacheList) Caches() []*RenderCache {
	return l.caches
}

// Call replays a valid cache for the context, if there is one, and reports
// whether it did. The replayed cache becomes the most recently used one, and
// a cache being recorded around it records a call to it.
func (l *RenderCacheList) Call(s *state.State, ctx uuid.UUID, r draw.Renderer) bool {
	for i := len(l.caches) - 1; i >= 0; i-- {
		c := l.caches[i]
		if c.Context != ctx || !c.IsValid(s) {
			continue
		}
		if i != len(l.caches)-1 {
			l.caches = append(slices.Delete(l.caches, i, i+1), c)
		}
		s.AddDependencies(c.Dependencies())
		if rec := Recording(s); rec != nil {
			rec.RecordNested(c)
		}
		c.Call(r)
		l.numUsed++
		l.metrics.renderHits.Inc()
		return true
	}
	l.metrics.renderMisses.Inc()
	return false
}

// Open starts a traversal of the subtree, recording a new cache if the
// caching mode and history allow it. stats is the running [Stats] of the
// traversal; it is reset for the subtree and restored by [RenderCacheList.Close].
// Every Open must be matched by a Close after the subtree is traversed.
func (l *RenderCacheList) Open(s *state.State, ctx uuid.UUID, stats *Stats, auto bool) {
	l.open = nil
	l.needClose = false
	if l.cfg.RenderCacheMax <= 0 {
		return
	}
	l.needClose = true
	l.saved = *stats
	*stats = Stats{}
	l.savedInvalids = s.Invalidations()
	if !l.shouldCreate(auto) {
		return
	}
	if len(l.caches) >= l.cfg.RenderCacheMax {
		l.caches = slices.Delete(l.caches, 0, 1)
		l.numDiscarded++
		l.metrics.renderEvicted.Inc()
	}
	c := NewRenderCache(ctx)
	if rec := Recording(s); rec != nil {
		rec.RecordNested(c)
	}
	s.OpenCache(c)
	l.open = c
	l.metrics.renderCreated.Inc()
}

func (l *RenderCacheList) shouldCreate(auto bool) bool {
	if !auto {
		return true
	}
	if !l.cfg.AutoCaching {
		return false
	}
	if l.numDiscarded > 0 && l.numDiscarded*l.numDiscarded >= l.numFramesOK+l.numUsed {
		return false
	}
	policy := &l.cfg.AutoCache
	sub := l.subtree
	if sub.AutoBits&DontAutoCache != 0 || sub.Primitives > policy.LargePrimitives {
		return false
	}
	if sub.Primitives <= policy.SmallPrimitives {
		return l.numFramesOK >= policy.MinStableFrames
	}
	return l.numFramesOK >= policy.StaticFrames && sub.AutoBits&DoAutoCache != 0
}

// Close finishes the traversal started by [RenderCacheList.Open]. The
// recorded cache is kept unless something invalidated it during traversal.
func (l *RenderCacheList) Close(s *state.State, stats *Stats) {
	if !l.needClose {
		return
	}
	l.needClose = false
	l.subtree = *stats
	*stats = l.saved
	stats.merge(l.subtree)

	invalid := s.Invalidations() != l.savedInvalids
	if c := l.open; c != nil {
		l.open = nil
		s.CloseCache(c)
		if invalid || c.IsInvalid() {
			c.Invalidate()
			l.numDiscarded++
			l.metrics.renderDiscarded.Inc()
		} else {
			l.caches = append(l.caches, c)
		}
	}
	if invalid {
		l.numFramesOK = 0
	} else {
		l.numFramesOK++
	}
}

// InvalidateAll invalidates and removes every cache, including one being
// recorded, and restarts the auto caching observation.
func (l *RenderCacheList) InvalidateAll() {
	for _, c := range l.caches {
		c.Invalidate()
	}
	l.metrics.renderInvalidated.Add(float64(len(l.caches)))
	clear(l.caches)
	l.caches = l.caches[:0]
	if l.open != nil {
		l.open.Invalidate()
	}
	l.numFramesOK = 0
}
