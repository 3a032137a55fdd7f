// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cache

import (
	"sync"

	"github.com/google/uuid"

	"github.com/scenekit/core/config"
)

// SideTable holds the render cache lists of all separators, keyed by node
// id and graphics context. The lists themselves are only used by the
// traversal of their own context; the table is safe for concurrent use.
type SideTable struct {
	cfg     *config.Config
	metrics *Metrics

	mu    sync.Mutex
	lists map[uint64]map[uuid.UUID]*RenderCacheList
}

// NewSideTable returns a new empty table.
func NewSideTable(cfg *config.Config, metrics *Metrics) *SideTable {
	if metrics == nil {
		metrics = NewMetrics(nil)
	}
	return &SideTable{cfg: cfg, metrics: metrics, lists: make(map[uint64]map[uuid.UUID]*RenderCacheList)}
}

// List returns the list for the node and context, creating it if needed.
func (t *SideTable) List(node uint64, ctx uuid.UUID) *RenderCacheList {
	t.mu.Lock()
	defer t.mu.Unlock()
	byCtx := t.lists[node]
	if byCtx == nil {
		byCtx = make(map[uuid.UUID]*RenderCacheList)
		t.lists[node] = byCtx
	}
	l := byCtx[ctx]
	if l == nil {
		l = NewRenderCacheList(t.cfg, t.metrics)
		byCtx[ctx] = l
	}
	return l
}

// Lookup returns the list for the node and context, if there is one.
func (t *SideTable) Lookup(node uint64, ctx uuid.UUID) (*RenderCacheList, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	l, ok := t.lists[node][ctx]
	return l, ok
}

// InvalidateNode invalidates the caches of the node in every context.
func (t *SideTable) InvalidateNode(node uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, l := range t.lists[node] {
		l.InvalidateAll()
	}
}

// DropNode invalidates and forgets the lists of the node in every context.
func (t *SideTable) DropNode(node uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, l := range t.lists[node] {
		l.InvalidateAll()
	}
	delete(t.lists, node)
}

// DestroyContext forgets every list of the context, after the context's
// graphics resources have been released.
func (t *SideTable) DestroyContext(ctx uuid.UUID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for node, byCtx := range t.lists {
		if l, ok := byCtx[ctx]; ok {
			l.InvalidateAll()
			delete(byCtx, ctx)
		}
		if len(byCtx) == 0 {
			delete(t.lists, node)
		}
	}
}

// Len returns the number of lists in the table.
func (t *SideTable) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := 0
	for _, byCtx := range t.lists {
		n += len(byCtx)
	}
	return n
}
