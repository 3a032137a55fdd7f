// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	c := New()
	assert.Equal(t, 2, c.RenderCacheMax)
	assert.Equal(t, 4, c.SortedLayersPasses)
	assert.True(t, c.AutoCaching)
	assert.NoError(t, c.Validate())
}

func TestOpenTOML(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "scene.toml")
	require.NoError(t, os.WriteFile(fn, []byte(`
render_cache_max = 5
sorted_layers_passes = 8

[auto_cache]
small_primitives = 10
`), 0o644))
	c := New()
	require.NoError(t, c.Open(fn))
	assert.Equal(t, 5, c.RenderCacheMax)
	assert.Equal(t, 8, c.SortedLayersPasses)
	assert.Equal(t, 10, c.AutoCache.SmallPrimitives)
	assert.Equal(t, 100000, c.AutoCache.LargePrimitives)
}

func TestOpenYAML(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "scene.yaml")
	require.NoError(t, os.WriteFile(fn, []byte("render_cache_max: 0\ngl_error_debugging: true\n"), 0o644))
	c := New()
	require.NoError(t, c.Open(fn))
	assert.Zero(t, c.RenderCacheMax)
	assert.True(t, c.GLErrorDebugging)
}

func TestOpenErrors(t *testing.T) {
	dir := t.TempDir()
	c := New()
	assert.Error(t, c.Open(filepath.Join(dir, "missing.toml")))

	fn := filepath.Join(dir, "scene.json")
	require.NoError(t, os.WriteFile(fn, []byte("{}"), 0o644))
	assert.Error(t, c.Open(fn))

	fn = filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(fn, []byte("sorted_layers_passes = 0\n"), 0o644))
	assert.Error(t, c.Open(fn))
}

func TestSaveRoundTrip(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "scene.toml")
	c := New()
	c.RenderCacheMax = 7
	require.NoError(t, c.Save(fn))
	d := New()
	require.NoError(t, d.Open(fn))
	assert.Equal(t, c, d)
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	homedir.DisableCache = true
	t.Cleanup(func() { homedir.DisableCache = false })

	c := New()
	c.SortedLayersPasses = 6
	require.NoError(t, c.Save("~/scene.yaml"))
	assert.FileExists(t, filepath.Join(home, "scene.yaml"))
	d := New()
	require.NoError(t, d.Open("~/scene.yaml"))
	assert.Equal(t, 6, d.SortedLayersPasses)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvSeparatorMaxCaches, "3")
	t.Setenv(EnvRandomizeRenderCache, "1")
	t.Setenv(EnvAutoCaching, "0")
	t.Setenv(EnvSortedLayersPasses, "bogus")
	t.Setenv(EnvGLErrorDebugging, "true")
	c := New()
	c.ApplyEnv()
	assert.Equal(t, 3, c.RenderCacheMax)
	assert.True(t, c.RandomizeRenderCaching)
	assert.False(t, c.AutoCaching)
	assert.True(t, c.GLErrorDebugging)
	assert.Equal(t, 4, c.SortedLayersPasses)
}
