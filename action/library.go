// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package action

import (
	"reflect"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/scenekit/core/cache"
	"github.com/scenekit/core/config"
	"github.com/scenekit/core/element"
	"github.com/scenekit/core/state"
)

// Library holds everything that actions over one scene share: settings,
// the method and element registries, the render cache side table and the
// scene lock. It replaces process-wide registration; create one with
// [NewLibrary] and register node and action packages with it.
type Library struct {

	// Config holds the settings.
	Config *config.Config

	// Methods is the traversal method registry.
	Methods *Registry

	// Elements is the state element registry.
	Elements *state.Registry

	// Metrics counts cache events.
	Metrics *cache.Metrics

	// Caches holds the render caches of separators per graphics context.
	Caches *cache.SideTable

	// scene is held for reading during every apply and for writing by Edit.
	scene sync.RWMutex

	enabledMu sync.RWMutex
	enabled   map[reflect.Type][]*state.ElementType
	counter   atomic.Uint64
}

// NewLibrary returns a new library with the standard elements registered.
// Metrics are registered with reg if it is not nil.
func NewLibrary(cfg *config.Config, reg prometheus.Registerer) *Library {
	if cfg == nil {
		cfg = config.New()
	}
	l := &Library{
		Config:   cfg,
		Methods:  &Registry{},
		Elements: &state.Registry{},
		Metrics:  cache.NewMetrics(reg),
		enabled:  make(map[reflect.Type][]*state.ElementType),
	}
	l.Caches = cache.NewSideTable(cfg, l.Metrics)
	element.Register(l.Elements)
	return l
}

// Enable makes the element types available in the state of the action type.
func (l *Library) Enable(actionType reflect.Type, types ...*state.ElementType) {
	l.enabledMu.Lock()
	defer l.enabledMu.Unlock()
	cur := l.enabled[actionType]
	for _, et := range types {
		if !slices.Contains(cur, et) {
			cur = append(cur, et)
		}
	}
	l.enabled[actionType] = cur
	l.counter.Add(1)
}

// EnableElements makes the element types available for action type A.
func EnableElements[A Action](l *Library, types ...*state.ElementType) {
	l.Enable(reflect.TypeFor[A](), types...)
}

// EnabledElements returns the element types enabled for the action type.
func (l *Library) EnabledElements(actionType reflect.Type) []*state.ElementType {
	l.enabledMu.RLock()
	defer l.enabledMu.RUnlock()
	return slices.Clone(l.enabled[actionType])
}

// EnabledCounter changes every time an element is enabled, so actions know
// to rebuild their state.
func (l *Library) EnabledCounter() uint64 {
	return l.counter.Load()
}

// Edit runs fn while holding the scene lock for writing, waiting for all
// traversals to finish. Scene modifications that may run concurrently with
// traversal must be made inside Edit.
func (l *Library) Edit(fn func()) {
	l.scene.Lock()
	defer l.scene.Unlock()
	fn()
}

// DestroyContext releases the render caches of the graphics context.
func (l *Library) DestroyContext(ctx uuid.UUID) {
	l.Caches.DestroyContext(ctx)
}
