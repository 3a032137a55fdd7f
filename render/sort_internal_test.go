// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/scenekit/core/nodepath"
)

func TestSortFarthestFirst(t *testing.T) {
	for _, n := range []int{0, 1, 2, 10, 100, 1000} {
		paths := make([]*nodepath.Path, n)
		dist := make([]float32, n)
		byPath := map[*nodepath.Path]float32{}
		for i := range n {
			paths[i] = &nodepath.Path{}
			dist[i] = rand.Float32() * 100
			byPath[paths[i]] = dist[i]
		}
		sortFarthestFirst(paths, dist)
		assert.True(t, slices.IsSortedFunc(dist, func(a, b float32) int {
			switch {
			case a > b:
				return -1
			case a < b:
				return 1
			}
			return 0
		}))
		for i, p := range paths {
			assert.Equal(t, byPath[p], dist[i])
		}
	}
}
