// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cache

import (
	"image/color"
	"testing"

	"cogentcore.org/core/math32"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scenekit/core/config"
	"github.com/scenekit/core/draw"
	"github.com/scenekit/core/element"
	"github.com/scenekit/core/state"
)

func newState() *state.State {
	reg := &state.Registry{}
	element.Register(reg)
	mm, mat, sh, vv, cull := element.Types(reg)
	return state.New(reg, []*state.ElementType{mm, mat, sh, vv, cull}, nil)
}

func shape(id uint64) draw.DrawShape {
	return draw.DrawShape{Node: id, Kind: "cube"}
}

func TestCacheValidity(t *testing.T) {
	s := newState()
	s.Push()
	element.SetMaterial(s, color.RGBA{1, 2, 3, 255})
	c := NewBBoxCache()
	assert.True(t, c.Box.IsEmpty())
	s.Push()
	s.OpenCache(c)
	element.MaterialOf(s)
	element.MaterialOf(s)
	s.CloseCache(c)
	s.Pop()
	require.Len(t, c.Dependencies(), 1)
	assert.True(t, c.IsValid(s))

	element.SetMaterial(s, color.RGBA{9, 9, 9, 255})
	assert.False(t, c.IsValid(s))
	element.SetMaterial(s, color.RGBA{1, 2, 3, 255})
	assert.True(t, c.IsValid(s))
	c.Invalidate()
	assert.False(t, c.IsValid(s))
}

func TestRenderCacheListOn(t *testing.T) {
	cfg := config.New()
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	l := NewRenderCacheList(cfg, m)
	s := newState()
	ctx := uuid.New()
	var stats Stats
	r := &draw.Recorder{}

	assert.False(t, l.Call(s, ctx, r))
	s.Push()
	l.Open(s, ctx, &stats, false)
	require.NotNil(t, Recording(s))
	Recording(s).Record(shape(1))
	s.Pop()
	l.Close(s, &stats)
	assert.Nil(t, Recording(s))
	require.Equal(t, 1, l.Len())

	assert.True(t, l.Call(s, ctx, r))
	cmds := r.Commands()
	require.Len(t, cmds, 2)
	assert.Equal(t, draw.CallList{ID: l.Caches()[0].ID()}, cmds[0])
	assert.Equal(t, shape(1), cmds[1])
	assert.False(t, l.Call(s, uuid.New(), r), "other context")

	for range 3 {
		l.Open(s, ctx, &stats, false)
		l.Close(s, &stats)
	}
	assert.Equal(t, cfg.RenderCacheMax, l.Len())
	assert.Equal(t, 4.0, testutil.ToFloat64(m.RenderCreated()))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RenderHits()))

	l.InvalidateAll()
	assert.Zero(t, l.Len())
	assert.Equal(t, 2.0, testutil.ToFloat64(m.RenderInvalidated()))
}

func TestRenderCacheListDisabled(t *testing.T) {
	cfg := config.New()
	cfg.RenderCacheMax = 0
	l := NewRenderCacheList(cfg, nil)
	s := newState()
	var stats Stats
	stats.Shapes = 3
	l.Open(s, uuid.New(), &stats, false)
	assert.Nil(t, Recording(s))
	assert.Equal(t, 3, stats.Shapes)
	l.Close(s, &stats)
	assert.Zero(t, l.Len())
}

func TestRenderCacheInvalidatedWhileRecording(t *testing.T) {
	l := NewRenderCacheList(config.New(), nil)
	s := newState()
	ctx := uuid.New()
	var stats Stats
	l.Open(s, ctx, &stats, false)
	s.InvalidateOpenCaches()
	l.Close(s, &stats)
	assert.Zero(t, l.Len())
	assert.Equal(t, 1, l.numDiscarded)
	assert.Zero(t, l.numFramesOK)
}

func TestAutoCaching(t *testing.T) {
	cfg := config.New()
	l := NewRenderCacheList(cfg, nil)
	s := newState()
	ctx := uuid.New()
	var stats Stats
	frame := func() {
		l.Open(s, ctx, &stats, true)
		stats.AddShape(12, &cfg.AutoCache)
		l.Close(s, &stats)
	}
	frame()
	frame()
	assert.Zero(t, l.Len(), "not yet stable")
	frame()
	assert.Equal(t, 1, l.Len())
	assert.Equal(t, 36, stats.Primitives)
	assert.Equal(t, DoAutoCache, stats.AutoBits)

	cfg.AutoCaching = false
	l.InvalidateAll()
	for range 5 {
		frame()
	}
	assert.Zero(t, l.Len())
}

func TestAutoCachingLargeSubtree(t *testing.T) {
	cfg := config.New()
	l := NewRenderCacheList(cfg, nil)
	s := newState()
	ctx := uuid.New()
	var stats Stats
	for range 10 {
		l.Open(s, ctx, &stats, true)
		stats.AddShape(cfg.AutoCache.LargePrimitives+1, &cfg.AutoCache)
		l.Close(s, &stats)
	}
	assert.Zero(t, l.Len())
	assert.Equal(t, DontAutoCache, l.subtree.AutoBits)
}

func TestNestedRecording(t *testing.T) {
	cfg := config.New()
	outer := NewRenderCacheList(cfg, nil)
	inner := NewRenderCacheList(cfg, nil)
	s := newState()
	ctx := uuid.New()
	var stats Stats

	s.Push()
	outer.Open(s, ctx, &stats, false)
	Recording(s).Record(shape(1))
	s.Push()
	inner.Open(s, ctx, &stats, false)
	Recording(s).Record(shape(2))
	s.Pop()
	inner.Close(s, &stats)
	Recording(s).Record(shape(3))
	s.Pop()
	outer.Close(s, &stats)

	require.Equal(t, 1, outer.Len())
	require.Equal(t, 1, inner.Len())
	oc, ic := outer.Caches()[0], inner.Caches()[0]
	assert.Equal(t, []*RenderCache{ic}, oc.Nested())

	r := &draw.Recorder{}
	require.True(t, outer.Call(s, ctx, r))
	assert.Equal(t, []draw.Command{
		draw.CallList{ID: oc.ID()}, shape(1),
		draw.CallList{ID: ic.ID()}, shape(2),
		shape(3),
	}, r.Commands())

	inner.InvalidateAll()
	assert.False(t, oc.IsValid(s))
}

func TestSideTable(t *testing.T) {
	tb := NewSideTable(config.New(), nil)
	a, b := uuid.New(), uuid.New()
	l := tb.List(1, a)
	assert.Same(t, l, tb.List(1, a))
	tb.List(1, b)
	tb.List(2, a)
	assert.Equal(t, 3, tb.Len())
	got, ok := tb.Lookup(2, a)
	assert.True(t, ok)
	assert.NotNil(t, got)

	tb.DestroyContext(a)
	assert.Equal(t, 1, tb.Len())
	_, ok = tb.Lookup(1, a)
	assert.False(t, ok)
	tb.DropNode(1)
	assert.Zero(t, tb.Len())
}

func TestBBoxCacheSet(t *testing.T) {
	c := NewBBoxCache()
	c.Set(math32.B3(0, 0, 0, 1, 1, 1), math32.Vec3(1, 1, 1), true)
	assert.True(t, c.CenterSet)
	assert.Equal(t, math32.Vec3(0.5, 0.5, 0.5), c.Box.Center())
}
