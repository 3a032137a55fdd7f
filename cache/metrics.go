// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cache

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts cache events.
type Metrics struct {
	renderHits        prometheus.Counter
	renderMisses      prometheus.Counter
	renderCreated     prometheus.Counter
	renderDiscarded   prometheus.Counter
	renderEvicted     prometheus.Counter
	renderInvalidated prometheus.Counter
	bboxHits          prometheus.Counter
	bboxMisses        prometheus.Counter
}

// NewMetrics returns new cache metrics, registered with reg if it is not nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	counter := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "scenekit",
			Subsystem: "cache",
			Name:      name,
			Help:      help,
		})
	}
	m := &Metrics{
		renderHits:        counter("render_hits_total", "Render caches replayed."),
		renderMisses:      counter("render_misses_total", "Render cache lookups that found no valid cache."),
		renderCreated:     counter("render_created_total", "Render caches opened for recording."),
		renderDiscarded:   counter("render_discarded_total", "Render caches thrown away because recording was invalidated."),
		renderEvicted:     counter("render_evicted_total", "Render caches evicted to make room for a new one."),
		renderInvalidated: counter("render_invalidated_total", "Render caches invalidated by scene changes."),
		bboxHits:          counter("bbox_hits_total", "Bounding box caches reused."),
		bboxMisses:        counter("bbox_misses_total", "Bounding box traversals that could not use a cache."),
	}
	if reg != nil {
		reg.MustRegister(m.renderHits, m.renderMisses, m.renderCreated, m.renderDiscarded,
			m.renderEvicted, m.renderInvalidated, m.bboxHits, m.bboxMisses)
	}
	return m
}

// BBoxHit counts a reused bounding box cache.
func (m *Metrics) BBoxHit() {
	m.bboxHits.Inc()
}

// BBoxMiss counts a bounding box traversal without a usable cache.
func (m *Metrics) BBoxMiss() {
	m.bboxMisses.Inc()
}

// RenderHits returns the counter of replayed render caches.
func (m *Metrics) RenderHits() prometheus.Counter {
	return m.renderHits
}

// RenderCreated returns the counter of render caches opened for recording.
func (m *Metrics) RenderCreated() prometheus.Counter {
	return m.renderCreated
}

// RenderInvalidated returns the counter of render caches invalidated by changes.
func (m *Metrics) RenderInvalidated() prometheus.Counter {
	return m.renderInvalidated
}

// BBoxHits returns the counter of reused bounding box caches.
func (m *Metrics) BBoxHits() prometheus.Counter {
	return m.bboxHits
}
